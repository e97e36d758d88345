package insights

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pagepulse/comment-insights/internal/model"
	"github.com/pagepulse/comment-insights/internal/tokenize"
)

// Compute aggregates a classified comment table into an insight bundle. An
// empty table yields a bundle with zeroed KPIs and empty lists, never an
// error.
func Compute(comments []model.ClassifiedComment) *Bundle {
	b := &Bundle{
		Emotions:    Distribution{},
		Languages:   Distribution{},
		Reactions:   Distribution{},
		Timeline:    []TimelinePoint{},
		KeywordsAll: []tokenize.KeywordCount{},
		KeywordsPos: []tokenize.KeywordCount{},
		KeywordsNeg: []tokenize.KeywordCount{},
		Examples:    Examples{Positive: []RankedComment{}, Negative: []RankedComment{}},
		TopReacted:  []RankedComment{},
		TopEngaged:  []RankedComment{},
		TopLoved:    []RankedComment{},
		TopHaha:     []RankedComment{},
		Risks:       []RankedComment{},
		GeneratedAt: time.Now().UTC(),
	}

	total := len(comments)
	b.KPIs.TotalComments = total
	if total == 0 {
		return b
	}

	b.KPIs.UniqueUsers = uniqueUsers(comments)

	reactions := make([]float64, total)
	engagement := make([]float64, total)
	emojiRows := 0
	for i, c := range comments {
		b.KPIs.TotalReactions += c.TotalReactions
		reactions[i] = float64(c.TotalReactions)
		engagement[i] = float64(c.EngagementScore)
		if c.EmojiCount > 0 {
			emojiRows++
		}
	}
	b.KPIs.AvgReactionsPerComment = round2(float64(b.KPIs.TotalReactions) / float64(total))
	b.KPIs.MedianReactions = median(reactions)
	b.KPIs.MedianEngagement = median(engagement)
	b.KPIs.EmojiPct = round1(100 * float64(emojiRows) / float64(total))

	// Sentiment split. Neutral absorbs every label outside positive and
	// negative and is floored at zero.
	pos, neg := 0, 0
	for _, c := range comments {
		switch sentimentBucket(c.Sentiment) {
		case "positive":
			pos++
		case "negative":
			neg++
		}
	}
	neu := total - pos - neg
	if neu < 0 {
		neu = 0
	}
	b.Sentiment = SentimentSplit{Positive: pos, Negative: neg, Neutral: neu}
	b.KPIs.PositivityRatio = round1(100 * float64(pos) / math.Max(1, float64(pos+neg)))
	b.KPIs.SafetyScore = math.Max(0, 100-round1(100*float64(neg)/math.Max(1, float64(total))))
	b.KPIs.Advocacy = round1(100 * float64(pos) / math.Max(1, float64(total)))

	b.Emotions = distribution(comments, 7, func(c model.ClassifiedComment) string {
		if c.Emotion == "" {
			return "neutral"
		}
		return strings.ToLower(c.Emotion)
	})
	if len(b.Emotions) > 0 {
		b.KPIs.TopEmotion = b.Emotions[0].Label
	} else {
		b.KPIs.TopEmotion = "neutral"
	}

	b.Languages = distribution(comments, 6, func(c model.ClassifiedComment) string {
		return canonicalLanguage(c.Language)
	})
	b.KPIs.LanguageDiversity = distinctLanguages(comments)

	b.Reactions = reactionMix(comments)

	b.Timeline, b.KPIs.BestHour, b.KPIs.VelocityCPH = timeline(comments, total)
	b.Hourly = hourlySplit(comments)

	texts := make([]string, 0, total)
	posTexts := make([]string, 0)
	negTexts := make([]string, 0)
	for _, c := range comments {
		texts = append(texts, c.Text)
		switch sentimentBucket(c.Sentiment) {
		case "positive":
			posTexts = append(posTexts, c.Text)
		case "negative":
			negTexts = append(negTexts, c.Text)
		}
	}
	b.KeywordsAll = tokenize.TopKeywords(texts, 15)
	b.KeywordsPos = tokenize.TopKeywords(posTexts, 10)
	b.KeywordsNeg = tokenize.TopKeywords(negTexts, 10)
	if len(b.KeywordsAll) > 0 {
		b.KPIs.TopKeyword = b.KeywordsAll[0].Word
	}

	byReactions := sortedBy(comments, func(c model.ClassifiedComment) int { return c.TotalReactions })
	byEngagement := sortedBy(comments, func(c model.ClassifiedComment) int { return c.EngagementScore })
	b.TopReacted = pickRows(byReactions, 5)
	b.TopEngaged = pickRows(byEngagement, 5)
	b.TopLoved = pickRows(filterComments(sortedBy(comments, func(c model.ClassifiedComment) int { return c.LoveCount }),
		func(c model.ClassifiedComment) bool { return c.LoveCount > 0 }), 5)
	b.TopHaha = pickRows(filterComments(sortedBy(comments, func(c model.ClassifiedComment) int { return c.HahaCount }),
		func(c model.ClassifiedComment) bool { return c.HahaCount > 0 }), 5)

	b.Examples.Positive = pickRows(filterComments(byEngagement,
		func(c model.ClassifiedComment) bool { return sentimentBucket(c.Sentiment) == "positive" }), 3)
	b.Examples.Negative = pickRows(filterComments(byEngagement,
		func(c model.ClassifiedComment) bool { return sentimentBucket(c.Sentiment) == "negative" }), 3)

	threshold := quantile(engagement, 0.75)
	b.Risks = pickRows(filterComments(byEngagement, func(c model.ClassifiedComment) bool {
		return sentimentBucket(c.Sentiment) == "negative" && float64(c.EngagementScore) >= threshold
	}), 5)

	return b
}

// ComputeTopCommentsPanel derives the KPI strip for the top-comments view.
func ComputeTopCommentsPanel(comments []model.ClassifiedComment) TopCommentsPanel {
	panel := TopCommentsPanel{Total: len(comments)}
	if panel.Total == 0 {
		return panel
	}

	totalReacts := 0
	pos, neg := 0, 0
	engagement := make([]float64, len(comments))
	for i, c := range comments {
		totalReacts += c.TotalReactions
		engagement[i] = float64(c.EngagementScore)
		switch sentimentBucket(c.Sentiment) {
		case "positive":
			pos++
		case "negative":
			neg++
		}
		if strings.Contains(c.Text, "?") {
			panel.Questions++
		}
		if c.ReplyCount == 0 {
			panel.Unanswered++
		}
	}
	panel.AvgReacts = round2(float64(totalReacts) / float64(panel.Total))
	panel.Positivity = round1(100 * float64(pos) / math.Max(1, float64(pos+neg)))
	panel.Negatives = neg

	threshold := quantile(engagement, 0.75)
	for _, c := range comments {
		if float64(c.EngagementScore) >= threshold {
			panel.HighEngagement++
		}
	}
	return panel
}

// sentimentBucket folds an open sentiment vocabulary into the three states
// the dashboards chart. Prefix matching tolerates model labels like
// "POSITIVE" or "pos".
func sentimentBucket(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.HasPrefix(l, "pos"):
		return "positive"
	case strings.HasPrefix(l, "neg"):
		return "negative"
	default:
		return "neutral"
	}
}

func uniqueUsers(comments []model.ClassifiedComment) int {
	haveIDs := false
	for _, c := range comments {
		if c.UserID != "" {
			haveIDs = true
			break
		}
	}
	seen := make(map[string]struct{})
	for _, c := range comments {
		key := c.UserName
		if haveIDs {
			key = c.UserID
		}
		if key == "" {
			continue
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}

func canonicalLanguage(lang string) string {
	l := strings.ToLower(strings.TrimSpace(lang))
	switch l {
	case "":
		return "unknown"
	case "bn":
		return "bangla"
	case "en":
		return "english"
	}
	return l
}

func distinctLanguages(comments []model.ClassifiedComment) int {
	seen := make(map[string]struct{})
	for _, c := range comments {
		seen[canonicalLanguage(c.Language)] = struct{}{}
	}
	return len(seen)
}

// distribution counts labels and orders them by descending count, ties by
// first-encountered label, truncated to cap entries.
func distribution(comments []model.ClassifiedComment, cap int, key func(model.ClassifiedComment) string) Distribution {
	counts := make(map[string]int)
	order := make(map[string]int)
	for _, c := range comments {
		label := key(c)
		if _, seen := order[label]; !seen {
			order[label] = len(order)
		}
		counts[label]++
	}
	dist := make(Distribution, 0, len(counts))
	for label, n := range counts {
		dist = append(dist, LabelCount{Label: label, Count: n})
	}
	sort.SliceStable(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return order[dist[i].Label] < order[dist[j].Label]
	})
	if cap > 0 && len(dist) > cap {
		dist = dist[:cap]
	}
	return dist
}

func reactionMix(comments []model.ClassifiedComment) Distribution {
	dist := make(Distribution, 0, len(model.ReactionKinds))
	for _, kind := range model.ReactionKinds {
		total := 0
		for _, c := range comments {
			total += c.ReactionCount(kind)
		}
		dist = append(dist, LabelCount{Label: strings.ToUpper(kind), Count: total})
	}
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].Count > dist[j].Count })
	return dist
}

// timeline builds the daily comment counts, the best hour-of-day and the
// comments-per-hour velocity. Rows without a parseable timestamp are
// excluded from the time aggregates; velocity still counts every comment.
func timeline(comments []model.ClassifiedComment, total int) ([]TimelinePoint, *int, float64) {
	byDay := make(map[string]int)
	var hourCounts [24]int
	var tmin, tmax *time.Time
	stamped := 0
	for _, c := range comments {
		if c.CreatedTime == nil {
			continue
		}
		stamped++
		t := c.CreatedTime.UTC()
		byDay[t.Format("2006-01-02")]++
		hourCounts[t.Hour()]++
		if tmin == nil || t.Before(*tmin) {
			u := t
			tmin = &u
		}
		if tmax == nil || t.After(*tmax) {
			u := t
			tmax = &u
		}
	}
	if stamped == 0 {
		return []TimelinePoint{}, nil, 0
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)
	points := make([]TimelinePoint, len(days))
	for i, d := range days {
		points[i] = TimelinePoint{Date: d, Count: byDay[d]}
	}

	bestHour := 0
	for h := 1; h < 24; h++ {
		if hourCounts[h] > hourCounts[bestHour] {
			bestHour = h
		}
	}

	hours := math.Max(1, tmax.Sub(*tmin).Hours())
	velocity := round2(float64(total) / hours)
	return points, &bestHour, velocity
}

func hourlySplit(comments []model.ClassifiedComment) HourlySentiment {
	var h HourlySentiment
	for _, c := range comments {
		if c.CreatedTime == nil {
			continue
		}
		hour := c.CreatedTime.UTC().Hour()
		switch sentimentBucket(c.Sentiment) {
		case "positive":
			h.Positive[hour]++
		case "negative":
			h.Negative[hour]++
		default:
			h.Neutral[hour]++
		}
	}
	return h
}

// sortedBy returns the comments ordered by the key descending, stable so
// equal keys keep input order.
func sortedBy(comments []model.ClassifiedComment, key func(model.ClassifiedComment) int) []model.ClassifiedComment {
	out := make([]model.ClassifiedComment, len(comments))
	copy(out, comments)
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) > key(out[j]) })
	return out
}

func filterComments(comments []model.ClassifiedComment, keep func(model.ClassifiedComment) bool) []model.ClassifiedComment {
	var out []model.ClassifiedComment
	for _, c := range comments {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func pickRows(comments []model.ClassifiedComment, cap int) []RankedComment {
	if len(comments) > cap {
		comments = comments[:cap]
	}
	rows := make([]RankedComment, len(comments))
	for i, c := range comments {
		ts := ""
		if c.CreatedTime != nil {
			ts = c.CreatedTime.UTC().Format(time.RFC3339)
		}
		rows[i] = RankedComment{
			User:       c.UserName,
			Text:       c.Text,
			Sentiment:  c.Sentiment,
			Emotion:    c.Emotion,
			Reactions:  c.TotalReactions,
			Engagement: c.EngagementScore,
			Timestamp:  ts,
			Link:       c.Permalink,
		}
	}
	return rows
}

func median(values []float64) float64 {
	return quantile(values, 0.5)
}

// quantile uses linear interpolation between closest ranks.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
