package intel

import (
	"testing"
	"time"

	"github.com/pagepulse/comment-insights/internal/model"
)

func row(text string, likes, replies int, when time.Time) model.ClassifiedComment {
	c := model.ClassifiedComment{
		Comment: model.Comment{
			UserName:    "user",
			Text:        text,
			CreatedTime: &when,
			LikeCount:   likes,
			ReplyCount:  replies,
		},
	}
	return model.NormalizeClassified([]model.ClassifiedComment{c})[0]
}

func TestComputeSafety(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	comments := []model.ClassifiedComment{
		row("what a scam, total fraud", 1, 0, base),
		row("nice work everyone", 5, 0, base.Add(time.Minute)),
		row("you are a liar", 9, 2, base.Add(2*time.Minute)),
		row("love the update", 0, 0, base.Add(3*time.Minute)),
	}

	panel := ComputeSafety(comments, nil)

	if panel.ToxicityRate != 50 {
		t.Errorf("ToxicityRate = %v, want 50", panel.ToxicityRate)
	}
	if len(panel.Examples) != 2 {
		t.Fatalf("Examples = %v, want 2", panel.Examples)
	}
	// Highest engagement toxic comment leads.
	if panel.Examples[0].Engagement != 11 {
		t.Errorf("Examples[0].Engagement = %d, want 11", panel.Examples[0].Engagement)
	}
}

func TestComputeSafetyCustomLexicon(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	comments := []model.ClassifiedComment{
		row("this is bogus", 0, 0, base),
		row("perfectly fine", 0, 0, base),
	}

	panel := ComputeSafety(comments, Lexicon{"bogus"})

	if panel.ToxicityRate != 50 {
		t.Errorf("ToxicityRate = %v, want 50", panel.ToxicityRate)
	}
}

func TestComputeSafetyEmpty(t *testing.T) {
	panel := ComputeSafety(nil, nil)
	if panel.ToxicityRate != 0 || len(panel.Examples) != 0 {
		t.Errorf("empty panel = %+v", panel)
	}
}

func TestComputeContentIntel(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	comments := []model.ClassifiedComment{
		row("big launch #sale #sale today", 0, 0, base),
		row("subscribe now #sale", 0, 0, base),
		row("just saying hello", 0, 0, base),
	}

	intel := ComputeContentIntel(comments, nil)

	if len(intel.TopTags) != 1 {
		t.Fatalf("TopTags = %v, want one tag", intel.TopTags)
	}
	if intel.TopTags[0].Tag != "#sale" || intel.TopTags[0].Count != 3 {
		t.Errorf("TopTags[0] = %+v, want #sale x3", intel.TopTags[0])
	}
	if intel.CTAHits != 1 {
		t.Errorf("CTAHits = %d, want 1", intel.CTAHits)
	}
	if intel.Readability <= 0 {
		t.Errorf("Readability = %v, want positive", intel.Readability)
	}
}

func TestLexiconMatches(t *testing.T) {
	lex := Lexicon{"scam", "fraud"}

	tests := []struct {
		text string
		want bool
	}{
		{text: "total SCAM operation", want: true},
		{text: "fraudulent behavior", want: true},
		{text: "lovely day", want: false},
		{text: "", want: false},
	}

	for _, tt := range tests {
		if got := lex.Matches(tt.text); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
