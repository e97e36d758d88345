// Package intel provides the lexicon-based content-safety and
// content-intelligence panels. Everything here is a fixed word-list match
// with no model dependency; approximate matches and false positives are
// acceptable for these panels.
package intel

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pagepulse/comment-insights/internal/insights"
	"github.com/pagepulse/comment-insights/internal/model"
)

// Lexicon is a pluggable term list matched case-insensitively as
// substrings, so lists can be swapped without touching the aggregation.
type Lexicon []string

// Matches reports whether text contains any lexicon term.
func (l Lexicon) Matches(text string) bool {
	lowered := strings.ToLower(text)
	for _, term := range l {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// DefaultToxicity is the built-in toxicity term list.
var DefaultToxicity = Lexicon{"stupid", "idiot", "hate", "kill", "trash", "shame", "fraud", "scam", "liar", "fake"}

// DefaultCTA is the built-in call-to-action term list.
var DefaultCTA = Lexicon{"buy", "order", "subscribe", "follow", "share", "signup", "call", "dm"}

// recentScan bounds how many of the most recent comments the toxic-example
// search walks.
const recentScan = 200

// SafetyPanel is the content-safety view: toxicity rate plus the
// highest-engagement toxic examples from the recent comments.
type SafetyPanel struct {
	ToxicityRate float64                  `json:"tox_rate"`
	Examples     []insights.RankedComment `json:"tox_examples"`
}

// ComputeSafety derives the safety panel for a comment table. A nil lexicon
// selects the default.
func ComputeSafety(comments []model.ClassifiedComment, toxicity Lexicon) SafetyPanel {
	if toxicity == nil {
		toxicity = DefaultToxicity
	}
	panel := SafetyPanel{Examples: []insights.RankedComment{}}
	if len(comments) == 0 {
		return panel
	}

	toxic := 0
	for _, c := range comments {
		if toxicity.Matches(c.Text) {
			toxic++
		}
	}
	panel.ToxicityRate = round1(100 * float64(toxic) / float64(len(comments)))

	recent := make([]model.ClassifiedComment, len(comments))
	copy(recent, comments)
	sort.SliceStable(recent, func(i, j int) bool {
		return laterTime(recent[i].CreatedTime).After(laterTime(recent[j].CreatedTime))
	})
	if len(recent) > recentScan {
		recent = recent[:recentScan]
	}

	var examples []model.ClassifiedComment
	for _, c := range recent {
		if toxicity.Matches(c.Text) {
			examples = append(examples, c)
		}
	}
	sort.SliceStable(examples, func(i, j int) bool {
		return examples[i].EngagementScore > examples[j].EngagementScore
	})
	if len(examples) > 5 {
		examples = examples[:5]
	}
	for _, c := range examples {
		panel.Examples = append(panel.Examples, insights.RankedComment{
			User:       c.UserName,
			Text:       c.Text,
			Reactions:  c.TotalReactions,
			Engagement: c.EngagementScore,
			Link:       c.Permalink,
		})
	}
	return panel
}

func laterTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// TagCount is one hashtag frequency entry.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ContentIntel is the content-intelligence view: hashtag ranking, CTA hit
// count and the characters-per-word readability proxy.
type ContentIntel struct {
	TopTags     []TagCount `json:"top_tags"`
	CTAHits     int        `json:"cta_hits"`
	Readability float64    `json:"readability"`
}

// ComputeContentIntel derives the content-intelligence panel. A nil lexicon
// selects the default CTA list.
func ComputeContentIntel(comments []model.ClassifiedComment, cta Lexicon) ContentIntel {
	if cta == nil {
		cta = DefaultCTA
	}
	intel := ContentIntel{TopTags: []TagCount{}}
	if len(comments) == 0 {
		return intel
	}

	tagCounts := make(map[string]int)
	tagOrder := make(map[string]int)
	meanSum := 0.0
	for _, c := range comments {
		for _, w := range strings.Fields(c.Text) {
			if strings.HasPrefix(w, "#") {
				if _, seen := tagOrder[w]; !seen {
					tagOrder[w] = len(tagOrder)
				}
				tagCounts[w]++
			}
		}
		if cta.Matches(c.Text) {
			intel.CTAHits++
		}
		meanSum += meanWordLength(c.Text)
	}

	tags := make([]TagCount, 0, len(tagCounts))
	for tag, n := range tagCounts {
		tags = append(tags, TagCount{Tag: tag, Count: n})
	}
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tagOrder[tags[i].Tag] < tagOrder[tags[j].Tag]
	})
	if len(tags) > 10 {
		tags = tags[:10]
	}
	intel.TopTags = tags
	intel.Readability = round2(meanSum / float64(len(comments)))
	return intel
}

func meanWordLength(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	chars := 0
	for _, w := range words {
		chars += len([]rune(w))
	}
	return float64(chars) / float64(len(words))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
