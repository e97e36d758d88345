package tokenize

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "keeps hashtags and drops stopwords",
			text: "Check this out http://example.com #great #great amazing",
			want: []string{"check", "#great", "#great", "amazing"},
		},
		{
			name: "mentions survive length filter",
			text: "@jo hi",
			want: []string{"@jo"},
		},
		{
			name: "numeric and short tokens dropped",
			text: "top 100 of 2024 ok",
			want: []string{"top"},
		},
		{
			name: "www urls stripped",
			text: "see www.example.com/page details",
			want: []string{"see", "details"},
		},
		{
			name: "bangla stopwords dropped",
			text: "আমি খেলা ভালোবাসি",
			want: []string{"খেলা", "ভালোবাসি"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTopKeywords(t *testing.T) {
	texts := []string{
		"Check this out http://example.com #great #great amazing",
		"amazing product, truly amazing",
	}

	got := TopKeywords(texts, 3)

	want := []KeywordCount{
		{Word: "amazing", Count: 3},
		{Word: "#great", Count: 2},
		{Word: "check", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopKeywords = %v, want %v", got, want)
	}
}

func TestTopKeywordsTieOrder(t *testing.T) {
	// Equal counts keep first-encounter order.
	got := TopKeywords([]string{"alpha beta", "beta alpha"}, 0)
	want := []KeywordCount{{Word: "alpha", Count: 2}, {Word: "beta", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopKeywords = %v, want %v", got, want)
	}
}

func TestStripURLs(t *testing.T) {
	got := StripURLs("before https://a.example/x?q=1 after")
	if got != "before  after" {
		t.Errorf("StripURLs = %q", got)
	}
}

func TestWordsNoFiltering(t *testing.T) {
	got := Words("This is 42 #ok")
	want := []string{"This", "is", "42", "#ok"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words = %v, want %v", got, want)
	}
}
