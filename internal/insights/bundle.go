// Package insights computes the primary analytics bundle for a classified
// comment set: KPIs, categorical distributions, timelines and ranked
// highlight lists. Bundles are recomputed fresh on every request and never
// mutated.
package insights

import (
	"time"

	"github.com/pagepulse/comment-insights/internal/tokenize"
)

// KPIs is the scalar metric block of a bundle.
type KPIs struct {
	TotalComments          int     `json:"total_comments"`
	UniqueUsers            int     `json:"unique_users"`
	TotalReactions         int     `json:"total_reactions"`
	AvgReactionsPerComment float64 `json:"avg_reactions_per_comment"`
	MedianReactions        float64 `json:"median_reactions"`
	MedianEngagement       float64 `json:"median_engagement"`
	EmojiPct               float64 `json:"emoji_pct"`
	LanguageDiversity      int     `json:"language_diversity"`
	PositivityRatio        float64 `json:"positivity_ratio"`
	SafetyScore            float64 `json:"safety_score"`
	Advocacy               float64 `json:"advocacy"`
	BestHour               *int    `json:"best_hour"`
	VelocityCPH            float64 `json:"velocity_cph"`
	TopEmotion             string  `json:"top_emotion"`
	TopKeyword             string  `json:"top_keyword"`
}

// Numeric returns the KPI values the benchmark tracker can rank.
func (k KPIs) Numeric() map[string]float64 {
	return map[string]float64{
		"total_comments":            float64(k.TotalComments),
		"unique_users":              float64(k.UniqueUsers),
		"total_reactions":           float64(k.TotalReactions),
		"avg_reactions_per_comment": k.AvgReactionsPerComment,
		"median_reactions":          k.MedianReactions,
		"median_engagement":         k.MedianEngagement,
		"emoji_pct":                 k.EmojiPct,
		"positivity_ratio":          k.PositivityRatio,
		"safety_score":              k.SafetyScore,
		"advocacy":                  k.Advocacy,
		"velocity_cph":              k.VelocityCPH,
	}
}

// LabelCount is one slice of a categorical distribution.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Distribution is a label→count mapping with deterministic order:
// descending count, ties broken by first-encountered label.
type Distribution []LabelCount

// SentimentSplit holds the three-way sentiment counts. Neutral is derived
// as total minus positive minus negative, floored at zero so unexpected
// labels cannot push it negative.
type SentimentSplit struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// TimelinePoint is one day of the daily comment timeline. Days with zero
// comments are omitted, so the timeline has one point per active day.
type TimelinePoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// HourlySentiment is the 24-bucket hour-of-day sentiment split (UTC),
// zero-filled for hours without comments.
type HourlySentiment struct {
	Positive [24]int `json:"pos"`
	Negative [24]int `json:"neg"`
	Neutral  [24]int `json:"neu"`
}

// RankedComment is one entry of a top-N highlight list.
type RankedComment struct {
	User       string `json:"user"`
	Text       string `json:"text"`
	Sentiment  string `json:"sentiment,omitempty"`
	Emotion    string `json:"emotion,omitempty"`
	Reactions  int    `json:"react"`
	Engagement int    `json:"eng"`
	Timestamp  string `json:"ts,omitempty"`
	Link       string `json:"link,omitempty"`
}

// Examples groups the strongest positive and negative comments.
type Examples struct {
	Positive []RankedComment `json:"positive"`
	Negative []RankedComment `json:"negative"`
}

// Bundle is the immutable analytics snapshot for one comment set.
type Bundle struct {
	KPIs      KPIs            `json:"kpis"`
	Sentiment SentimentSplit  `json:"sentiment"`
	Emotions  Distribution    `json:"emotions"`
	Languages Distribution    `json:"languages"`
	Reactions Distribution    `json:"reactions"`
	Timeline  []TimelinePoint `json:"timeline"`
	Hourly    HourlySentiment `json:"hourly"`

	KeywordsAll []tokenize.KeywordCount `json:"keywords_all"`
	KeywordsPos []tokenize.KeywordCount `json:"keywords_pos"`
	KeywordsNeg []tokenize.KeywordCount `json:"keywords_neg"`

	Examples   Examples        `json:"examples"`
	TopReacted []RankedComment `json:"top_reacted"`
	TopEngaged []RankedComment `json:"top_engaged"`
	TopLoved   []RankedComment `json:"top_loved"`
	TopHaha    []RankedComment `json:"top_haha"`
	Risks      []RankedComment `json:"risks"`

	GeneratedAt time.Time `json:"generated_at"`
}

// TopCommentsPanel carries the KPI strip of the top-comments view.
type TopCommentsPanel struct {
	Total          int     `json:"total"`
	AvgReacts      float64 `json:"avg_reacts"`
	Positivity     float64 `json:"positivity"`
	Negatives      int     `json:"negatives"`
	Questions      int     `json:"questions"`
	HighEngagement int     `json:"high_eng"`
	Unanswered     int     `json:"unanswered"`
}
