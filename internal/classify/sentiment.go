package classify

import (
	"sort"

	"github.com/jonreiter/govader"
)

// VADERSentiment is the default sentiment classifier, backed by the VADER
// lexicon model. It fills the Classifier contract so callers can swap in a
// remote model without touching the aggregation code.
type VADERSentiment struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVADERSentiment creates a VADER-backed sentiment classifier.
func NewVADERSentiment() *VADERSentiment {
	return &VADERSentiment{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

// Predict scores text and returns the three sentiment labels ranked. The
// winning label follows the compound-score thresholds (>= 0.3 positive,
// <= -0.3 negative, neutral otherwise); the remaining labels are ordered by
// their VADER proportions.
func (v *VADERSentiment) Predict(text string) []Prediction {
	scores := v.analyzer.PolarityScores(text)

	top := "neutral"
	if scores.Compound >= 0.3 {
		top = "positive"
	} else if scores.Compound <= -0.3 {
		top = "negative"
	}

	rest := []Prediction{
		{Label: "positive", Score: scores.Positive},
		{Label: "negative", Score: scores.Negative},
		{Label: "neutral", Score: scores.Neutral},
	}
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].Score > rest[j].Score })

	preds := make([]Prediction, 0, 3)
	compound := scores.Compound
	if compound < 0 {
		compound = -compound
	}
	preds = append(preds, Prediction{Label: top, Score: compound})
	for _, p := range rest {
		if p.Label != top {
			preds = append(preds, p)
		}
	}
	return preds
}
