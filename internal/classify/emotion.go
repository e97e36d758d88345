package classify

import (
	"sort"
	"strings"
)

// LexiconEmotion is a lexicon-backed emotion classifier used when no model
// endpoint is wired in. It is deliberately approximate: it counts term hits
// per emotion and ranks the emotions by hit count.
type LexiconEmotion struct {
	lexicons map[string][]string
	order    []string
}

// defaultEmotionLexicons covers the labels the dashboards chart most often.
var defaultEmotionLexicons = map[string][]string{
	"joy":       {"happy", "glad", "awesome", "amazing", "great", "love", "wonderful", "beautiful", "excellent", "congrats", "congratulations"},
	"anger":     {"angry", "furious", "hate", "disgusting", "stupid", "worst", "trash", "fraud", "scam"},
	"sadness":   {"sad", "sorry", "miss", "cry", "unfortunate", "heartbroken", "loss"},
	"surprise":  {"wow", "unbelievable", "incredible", "shocking", "unexpected", "omg"},
	"fear":      {"afraid", "scared", "worried", "terrified", "danger", "risk"},
	"gratitude": {"thanks", "thank", "grateful", "appreciate"},
	"curiosity": {"why", "how", "what", "when", "wondering", "curious"},
}

// NewLexiconEmotion creates a lexicon-backed emotion classifier. A nil
// lexicon map selects the built-in default.
func NewLexiconEmotion(lexicons map[string][]string) *LexiconEmotion {
	if lexicons == nil {
		lexicons = defaultEmotionLexicons
	}
	order := make([]string, 0, len(lexicons))
	for label := range lexicons {
		order = append(order, label)
	}
	sort.Strings(order)
	return &LexiconEmotion{lexicons: lexicons, order: order}
}

// Predict ranks emotions by lexicon hit count. Text matching no lexicon
// yields a single neutral prediction.
func (l *LexiconEmotion) Predict(text string) []Prediction {
	lowered := strings.ToLower(text)
	var preds []Prediction
	for _, label := range l.order {
		hits := 0
		for _, term := range l.lexicons[label] {
			hits += strings.Count(lowered, term)
		}
		if hits > 0 {
			preds = append(preds, Prediction{Label: label, Score: float64(hits)})
		}
	}
	if len(preds) == 0 {
		return []Prediction{{Label: "neutral", Score: 0}}
	}
	sort.SliceStable(preds, func(i, j int) bool { return preds[i].Score > preds[j].Score })
	return preds
}
