// Package classify defines the classifier boundary for the analytics
// engine. A Classifier returns a ranked list of (label, score) predictions,
// highest score first; TopLabel normalizes that shape once so the
// aggregation code never branches on classifier output.
package classify

import (
	"regexp"
	"strings"

	"github.com/pagepulse/comment-insights/internal/model"
	"github.com/pagepulse/comment-insights/internal/tokenize"
)

// Prediction is a single (label, score) pair from a classifier.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier maps text to a ranked list of predictions, highest score
// first. Implementations must return at least one prediction or nil.
type Classifier interface {
	Predict(text string) []Prediction
}

// TopLabel extracts the winning label from a ranked prediction list,
// falling back to "neutral" when the classifier returned nothing.
func TopLabel(preds []Prediction) string {
	if len(preds) == 0 || preds[0].Label == "" {
		return "neutral"
	}
	return strings.ToLower(preds[0].Label)
}

var emojiRE = regexp.MustCompile(`[\x{1F1E6}-\x{1F1FF}\x{1F300}-\x{1FAFF}\x{2600}-\x{27BF}\x{FE0F}]`)

// Annotate runs the sentiment and emotion classifiers over a normalized
// comment table and returns the classified table. Emoji and word counts are
// derived here so downstream aggregation treats them as plain columns.
func Annotate(comments []model.Comment, sentiment, emotion Classifier) []model.ClassifiedComment {
	out := make([]model.ClassifiedComment, len(comments))
	for i, c := range comments {
		out[i] = model.ClassifiedComment{
			Comment:    c,
			Sentiment:  TopLabel(sentiment.Predict(c.Text)),
			Emotion:    TopLabel(emotion.Predict(c.Text)),
			EmojiCount: len(emojiRE.FindAllString(c.Text, -1)),
			WordCount:  len(tokenize.Words(c.Text)),
		}
	}
	return out
}
