package classify

import (
	"testing"

	"github.com/pagepulse/comment-insights/internal/model"
)

func TestTopLabel(t *testing.T) {
	tests := []struct {
		name  string
		preds []Prediction
		want  string
	}{
		{name: "winner lowercased", preds: []Prediction{{Label: "POSITIVE", Score: 0.9}, {Label: "negative", Score: 0.1}}, want: "positive"},
		{name: "empty list", preds: nil, want: "neutral"},
		{name: "empty label", preds: []Prediction{{Label: "", Score: 1}}, want: "neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TopLabel(tt.preds); got != tt.want {
				t.Errorf("TopLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

type fixedClassifier struct {
	label string
}

func (f fixedClassifier) Predict(string) []Prediction {
	return []Prediction{{Label: f.label, Score: 1}}
}

func TestAnnotate(t *testing.T) {
	comments := model.Normalize([]model.Comment{
		{ID: "c1", Text: "Great job 👍 team"},
		{ID: "c2", Text: "plain words only"},
	})

	out := Annotate(comments, fixedClassifier{label: "Positive"}, fixedClassifier{label: "JOY"})

	if len(out) != 2 {
		t.Fatalf("Annotate returned %d rows, want 2", len(out))
	}
	if out[0].Sentiment != "positive" || out[0].Emotion != "joy" {
		t.Errorf("labels = (%q, %q), want (positive, joy)", out[0].Sentiment, out[0].Emotion)
	}
	if out[0].EmojiCount != 1 {
		t.Errorf("c1 EmojiCount = %d, want 1", out[0].EmojiCount)
	}
	if out[0].WordCount != 3 {
		t.Errorf("c1 WordCount = %d, want 3", out[0].WordCount)
	}
	if out[1].EmojiCount != 0 {
		t.Errorf("c2 EmojiCount = %d, want 0", out[1].EmojiCount)
	}
}
