package report

import (
	"strings"
	"testing"

	"github.com/pagepulse/comment-insights/internal/insights"
)

func testBundle() *insights.Bundle {
	hour := 14
	b := &insights.Bundle{}
	b.KPIs = insights.KPIs{
		TotalComments:          120,
		UniqueUsers:            80,
		TotalReactions:         500,
		AvgReactionsPerComment: 4.17,
		Advocacy:               66.7,
		SafetyScore:            91.2,
		BestHour:               &hour,
		VelocityCPH:            3.25,
		TopEmotion:             "joy",
		TopKeyword:             "#launch",
		PositivityRatio:        78.5,
	}
	b.Sentiment = insights.SentimentSplit{Positive: 70, Negative: 19, Neutral: 31}
	return b
}

func TestHighlights(t *testing.T) {
	lines := Highlights(testBundle())

	want := []string{
		"Advocacy 66.7%",
		"Safety 91.2",
		"Best hour 14:00 UTC",
		"3.25 comments/hour",
		"Top emotion joy",
		"Top keyword #launch",
	}
	if len(lines) != len(want) {
		t.Fatalf("Highlights() = %v, want %d lines", lines, len(want))
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestHighlightsOmitsMissing(t *testing.T) {
	b := testBundle()
	b.KPIs.BestHour = nil
	b.KPIs.TopEmotion = ""
	b.KPIs.TopKeyword = ""

	lines := Highlights(b)

	for _, line := range lines {
		if strings.HasPrefix(line, "Best hour") || strings.HasPrefix(line, "Top ") {
			t.Errorf("unexpected line %q", line)
		}
	}
}

func TestHighlightsNilBundle(t *testing.T) {
	if lines := Highlights(nil); lines != nil {
		t.Errorf("Highlights(nil) = %v, want nil", lines)
	}
}

func TestSummary(t *testing.T) {
	out := Summary(testBundle())

	for _, want := range []string{
		"120 comments from 80 users",
		"70 positive / 19 negative / 31 neutral",
		"- Advocacy 66.7%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary missing %q in:\n%s", want, out)
		}
	}
}
