// Package report renders an insight bundle into the short text lines the
// story/share view presents.
package report

import (
	"fmt"
	"strings"

	"github.com/pagepulse/comment-insights/internal/insights"
)

// Highlights distills a bundle into one-line talking points.
func Highlights(b *insights.Bundle) []string {
	if b == nil {
		return nil
	}
	k := b.KPIs
	lines := []string{
		fmt.Sprintf("Advocacy %.1f%%", k.Advocacy),
		fmt.Sprintf("Safety %.1f", k.SafetyScore),
	}
	if k.BestHour != nil {
		lines = append(lines, fmt.Sprintf("Best hour %02d:00 UTC", *k.BestHour))
	}
	lines = append(lines, fmt.Sprintf("%.2f comments/hour", k.VelocityCPH))
	if k.TopEmotion != "" {
		lines = append(lines, fmt.Sprintf("Top emotion %s", k.TopEmotion))
	}
	if k.TopKeyword != "" {
		lines = append(lines, fmt.Sprintf("Top keyword %s", k.TopKeyword))
	}
	return lines
}

// Summary formats a bundle as a plain-text block for terminal output.
func Summary(b *insights.Bundle) string {
	if b == nil {
		return ""
	}
	var sb strings.Builder
	k := b.KPIs
	fmt.Fprintf(&sb, "%d comments from %d users, %d reactions (avg %.2f)\n",
		k.TotalComments, k.UniqueUsers, k.TotalReactions, k.AvgReactionsPerComment)
	fmt.Fprintf(&sb, "sentiment: %d positive / %d negative / %d neutral (positivity %.1f%%)\n",
		b.Sentiment.Positive, b.Sentiment.Negative, b.Sentiment.Neutral, k.PositivityRatio)
	for _, line := range Highlights(b) {
		fmt.Fprintf(&sb, "- %s\n", line)
	}
	return sb.String()
}
