package insights

import (
	"testing"
	"time"

	"github.com/pagepulse/comment-insights/internal/model"
)

func ts(value string) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	u := t.UTC()
	return &u
}

func classified(id, user, text, sentiment, emotion string, when *time.Time, likes, loves, replies int) model.ClassifiedComment {
	c := model.ClassifiedComment{
		Comment: model.Comment{
			ID:          id,
			UserID:      "u-" + user,
			UserName:    user,
			Text:        text,
			CreatedTime: when,
			LikeCount:   likes,
			LoveCount:   loves,
			ReplyCount:  replies,
		},
		Sentiment: sentiment,
		Emotion:   emotion,
	}
	return model.NormalizeClassified([]model.ClassifiedComment{c})[0]
}

func sampleComments() []model.ClassifiedComment {
	return []model.ClassifiedComment{
		classified("c1", "alice", "Amazing product, love it #launch", "positive", "joy", ts("2024-05-01T10:05:00Z"), 5, 2, 0),
		classified("c2", "bob", "Worst support ever, total scam", "negative", "anger", ts("2024-05-01T11:10:00Z"), 3, 0, 5),
		classified("c3", "carol", "Shipping was fine, arrived on time #launch", "positive", "joy", ts("2024-05-01T12:20:00Z"), 4, 0, 0),
	}
}

func TestComputeKPIs(t *testing.T) {
	b := Compute(sampleComments())
	k := b.KPIs

	if k.TotalComments != 3 {
		t.Errorf("TotalComments = %d, want 3", k.TotalComments)
	}
	if k.UniqueUsers != 3 {
		t.Errorf("UniqueUsers = %d, want 3", k.UniqueUsers)
	}
	if k.TotalReactions != 14 {
		t.Errorf("TotalReactions = %d, want 14", k.TotalReactions)
	}
	if k.AvgReactionsPerComment != 4.67 {
		t.Errorf("AvgReactionsPerComment = %v, want 4.67", k.AvgReactionsPerComment)
	}
	if k.MedianReactions != 4 {
		t.Errorf("MedianReactions = %v, want 4", k.MedianReactions)
	}
	if k.PositivityRatio != 66.7 {
		t.Errorf("PositivityRatio = %v, want 66.7", k.PositivityRatio)
	}
	if k.SafetyScore != 66.7 {
		t.Errorf("SafetyScore = %v, want 66.7", k.SafetyScore)
	}
	if k.Advocacy != 66.7 {
		t.Errorf("Advocacy = %v, want 66.7", k.Advocacy)
	}
	if k.TopEmotion != "joy" {
		t.Errorf("TopEmotion = %q, want joy", k.TopEmotion)
	}
	// Span 10:05 to 12:20 is 2.25h; velocity = 3 / 2.25.
	if k.VelocityCPH != 1.33 {
		t.Errorf("VelocityCPH = %v, want 1.33", k.VelocityCPH)
	}
}

func TestComputeSentimentSplit(t *testing.T) {
	b := Compute(sampleComments())

	if b.Sentiment.Positive != 2 || b.Sentiment.Negative != 1 || b.Sentiment.Neutral != 0 {
		t.Errorf("Sentiment = %+v, want 2/1/0", b.Sentiment)
	}
	sum := b.Sentiment.Positive + b.Sentiment.Negative + b.Sentiment.Neutral
	if sum != b.KPIs.TotalComments {
		t.Errorf("split sum = %d, want %d", sum, b.KPIs.TotalComments)
	}
}

func TestComputeRankedLists(t *testing.T) {
	b := Compute(sampleComments())

	if len(b.TopReacted) != 3 {
		t.Fatalf("TopReacted has %d rows, want 3", len(b.TopReacted))
	}
	wantOrder := []string{"alice", "carol", "bob"}
	for i, user := range wantOrder {
		if b.TopReacted[i].User != user {
			t.Errorf("TopReacted[%d].User = %q, want %q", i, b.TopReacted[i].User, user)
		}
	}

	if len(b.TopLoved) != 1 || b.TopLoved[0].User != "alice" {
		t.Errorf("TopLoved = %v, want only alice", b.TopLoved)
	}
	if len(b.TopHaha) != 0 {
		t.Errorf("TopHaha = %v, want empty", b.TopHaha)
	}
}

func TestComputeRisks(t *testing.T) {
	b := Compute(sampleComments())

	// bob's engagement (8) clears the p75 threshold (7.5), and he is the
	// only negative commenter.
	if len(b.Risks) != 1 || b.Risks[0].User != "bob" {
		t.Errorf("Risks = %v, want only bob", b.Risks)
	}
}

func TestComputeTimeline(t *testing.T) {
	comments := []model.ClassifiedComment{
		classified("c1", "a", "x", "positive", "joy", ts("2024-05-01T10:00:00Z"), 0, 0, 0),
		classified("c2", "b", "y", "neutral", "neutral", ts("2024-05-03T10:00:00Z"), 0, 0, 0),
		classified("c3", "c", "z", "neutral", "neutral", ts("2024-05-03T11:00:00Z"), 0, 0, 0),
	}
	b := Compute(comments)

	// Gap day 2024-05-02 is omitted, not zero-filled.
	if len(b.Timeline) != 2 {
		t.Fatalf("Timeline has %d points, want 2", len(b.Timeline))
	}
	if b.Timeline[0].Date != "2024-05-01" || b.Timeline[0].Count != 1 {
		t.Errorf("Timeline[0] = %+v", b.Timeline[0])
	}
	if b.Timeline[1].Date != "2024-05-03" || b.Timeline[1].Count != 2 {
		t.Errorf("Timeline[1] = %+v", b.Timeline[1])
	}

	if b.KPIs.BestHour == nil || *b.KPIs.BestHour != 10 {
		t.Errorf("BestHour = %v, want 10", b.KPIs.BestHour)
	}
}

func TestComputeHourlySplit(t *testing.T) {
	b := Compute(sampleComments())

	if b.Hourly.Positive[10] != 1 || b.Hourly.Negative[11] != 1 || b.Hourly.Positive[12] != 1 {
		t.Errorf("Hourly = %+v", b.Hourly)
	}
}

func TestComputeKeywords(t *testing.T) {
	b := Compute(sampleComments())

	if len(b.KeywordsAll) == 0 || b.KeywordsAll[0].Word != "#launch" {
		t.Errorf("KeywordsAll = %v, want #launch first", b.KeywordsAll)
	}
	if b.KPIs.TopKeyword != "#launch" {
		t.Errorf("TopKeyword = %q, want #launch", b.KPIs.TopKeyword)
	}
	for _, kw := range b.KeywordsNeg {
		if kw.Word == "#launch" {
			t.Errorf("negative keywords contain #launch: %v", b.KeywordsNeg)
		}
	}
}

func TestComputeEmptyInput(t *testing.T) {
	b := Compute(nil)

	if b.KPIs.TotalComments != 0 {
		t.Errorf("TotalComments = %d, want 0", b.KPIs.TotalComments)
	}
	if b.Timeline == nil || b.TopReacted == nil || b.Risks == nil {
		t.Error("empty bundle has nil lists")
	}
	if b.KPIs.BestHour != nil {
		t.Errorf("BestHour = %v, want nil", b.KPIs.BestHour)
	}
}

func TestComputeMissingTimestamps(t *testing.T) {
	comments := []model.ClassifiedComment{
		classified("c1", "a", "x", "positive", "joy", nil, 1, 0, 0),
		classified("c2", "b", "y", "neutral", "neutral", ts("2024-05-01T09:00:00Z"), 0, 0, 0),
	}
	b := Compute(comments)

	if len(b.Timeline) != 1 {
		t.Errorf("Timeline has %d points, want 1", len(b.Timeline))
	}
	// Velocity still counts the unstamped comment over the min 1h span.
	if b.KPIs.VelocityCPH != 2 {
		t.Errorf("VelocityCPH = %v, want 2", b.KPIs.VelocityCPH)
	}
}

func TestComputeTopCommentsPanel(t *testing.T) {
	comments := append(sampleComments(),
		classified("c4", "dave", "when does it restock?", "neutral", "curiosity", ts("2024-05-01T13:00:00Z"), 0, 0, 0))

	panel := ComputeTopCommentsPanel(comments)

	if panel.Total != 4 {
		t.Errorf("Total = %d, want 4", panel.Total)
	}
	if panel.Questions != 1 {
		t.Errorf("Questions = %d, want 1", panel.Questions)
	}
	if panel.Negatives != 1 {
		t.Errorf("Negatives = %d, want 1", panel.Negatives)
	}
	// Only bob has replies; the other three are unanswered.
	if panel.Unanswered != 3 {
		t.Errorf("Unanswered = %d, want 3", panel.Unanswered)
	}
	if panel.Positivity != 66.7 {
		t.Errorf("Positivity = %v, want 66.7", panel.Positivity)
	}
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		want   float64
	}{
		{name: "median odd", values: []float64{3, 1, 2}, q: 0.5, want: 2},
		{name: "median even interpolates", values: []float64{1, 2, 3, 4}, q: 0.5, want: 2.5},
		{name: "p75", values: []float64{1, 2, 3, 4}, q: 0.75, want: 3.25},
		{name: "single value", values: []float64{7}, q: 0.75, want: 7},
		{name: "empty", values: nil, q: 0.5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quantile(tt.values, tt.q); got != tt.want {
				t.Errorf("quantile(%v, %v) = %v, want %v", tt.values, tt.q, got, tt.want)
			}
		})
	}
}
