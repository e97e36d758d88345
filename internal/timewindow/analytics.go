package timewindow

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pagepulse/comment-insights/internal/model"
)

const (
	fineBucket     = 15 * time.Minute
	coarseBucket   = time.Hour
	fineSpanHours  = 6.0
	spikeWindow    = 3
	spikeZMin      = 2.0
	spikeCountMin  = 2
	spikeReportCap = 8
	contagionGap   = 30 * time.Minute
	decayEpsilon   = 1e-6
)

// TimelineSeries is the binned comment-count series with the optional
// exponential decay fit. Fit entries before the peak bucket are nil;
// TauBins is the fitted time constant in buckets, nil when the tail is not
// decaying.
type TimelineSeries struct {
	Labels  []string   `json:"labels"`
	Values  []int      `json:"values"`
	Fit     []*float64 `json:"fit"`
	TauBins *float64   `json:"tau_bins"`
}

// EmotionSeries is the per-bucket count series for one emotion label.
type EmotionSeries struct {
	Name   string `json:"name"`
	Values []int  `json:"values"`
}

// EmotionStack holds per-bucket series for the top emotions. Labels outside
// the top five are excluded from the stack rather than folded into an
// "other" series.
type EmotionStack struct {
	Labels []string        `json:"labels"`
	Series []EmotionSeries `json:"series"`
}

// Spike is a bucket whose emotion count deviates from its rolling baseline.
type Spike struct {
	Bucket  string  `json:"t"`
	Emotion string  `json:"emotion"`
	Z       float64 `json:"z"`
	Value   int     `json:"value"`
}

// Contagion is the 3x3 sentiment-transition lift matrix. Values above 1
// mean the transition occurs more often than the target's base rate would
// predict.
type Contagion struct {
	Labels []string    `json:"labels"`
	Matrix [][]float64 `json:"matrix"`
}

// ReactionCurve is the mean total reactions by integer hours since the
// first comment, one point per observed age bucket.
type ReactionCurve struct {
	AgeHours []int     `json:"labels"`
	Values   []float64 `json:"values"`
}

// Result is the full time-window analytics output.
type Result struct {
	Timeline       TimelineSeries `json:"timeline"`
	EmotionStack   EmotionStack   `json:"emotion_stack"`
	Spikes         []Spike        `json:"spikes"`
	HalfLifeHours  *float64       `json:"half_life_hours"`
	TimeToTenHours *float64       `json:"t_first10_hours"`
	Contagion      Contagion      `json:"contagion"`
	ReactionCurve  ReactionCurve  `json:"reaction_curve"`
	BucketMinutes  int            `json:"bucket_minutes"`
}

func emptyResult() *Result {
	return &Result{
		Timeline:      TimelineSeries{Labels: []string{}, Values: []int{}, Fit: []*float64{}},
		EmotionStack:  EmotionStack{Labels: []string{}, Series: []EmotionSeries{}},
		Spikes:        []Spike{},
		Contagion:     Contagion{Labels: []string{}, Matrix: [][]float64{}},
		ReactionCurve: ReactionCurve{AgeHours: []int{}, Values: []float64{}},
	}
}

// Compute derives the time analytics for a comment table already restricted
// to a window. Empty or timestamp-less input degrades to empty and nil
// fields, never an error.
func Compute(comments []model.ClassifiedComment) *Result {
	stamped := make([]model.ClassifiedComment, 0, len(comments))
	for _, c := range comments {
		if c.CreatedTime != nil {
			stamped = append(stamped, c)
		}
	}
	if len(stamped) == 0 {
		return emptyResult()
	}
	sort.SliceStable(stamped, func(i, j int) bool {
		return stamped[i].CreatedTime.Before(*stamped[j].CreatedTime)
	})

	tmin := stamped[0].CreatedTime.UTC()
	tmax := stamped[len(stamped)-1].CreatedTime.UTC()
	span := tmax.Sub(tmin).Hours()
	step := coarseBucket
	if span <= fineSpanHours {
		step = fineBucket
	}
	widthHours := step.Hours()

	res := emptyResult()
	res.BucketMinutes = int(step.Minutes())

	// Contiguous buckets from the first to the last comment; gaps stay as
	// zero counts so spike and decay math sees the real shape.
	start := tmin.Truncate(step)
	var buckets []time.Time
	for t := start; !t.After(tmax); t = t.Add(step) {
		buckets = append(buckets, t)
	}
	index := make(map[time.Time]int, len(buckets))
	for i, t := range buckets {
		index[t] = i
	}

	counts := make([]int, len(buckets))
	for _, c := range stamped {
		counts[index[c.CreatedTime.UTC().Truncate(step)]]++
	}

	labels := make([]string, len(buckets))
	for i, t := range buckets {
		labels[i] = t.Format("2006-01-02 15:04")
	}
	res.Timeline.Labels = labels
	res.Timeline.Values = counts

	topEmotions := topEmotionLabels(stamped, 5)
	res.EmotionStack = emotionStack(stamped, buckets, index, step, topEmotions)
	res.Spikes = detectSpikes(res.EmotionStack, labels)
	res.Timeline.Fit, res.Timeline.TauBins = decayFit(counts)
	res.HalfLifeHours, res.TimeToTenHours = cumulativeThresholds(counts, widthHours)
	res.Contagion = contagionMatrix(stamped)
	res.ReactionCurve = reactionCurve(stamped, tmin)
	return res
}

func topEmotionLabels(comments []model.ClassifiedComment, k int) []string {
	counts := make(map[string]int)
	order := make(map[string]int)
	for _, c := range comments {
		label := c.Emotion
		if label == "" {
			label = "neutral"
		}
		if _, seen := order[label]; !seen {
			order[label] = len(order)
		}
		counts[label]++
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.SliceStable(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return order[labels[i]] < order[labels[j]]
	})
	if len(labels) > k {
		labels = labels[:k]
	}
	return labels
}

func emotionStack(comments []model.ClassifiedComment, buckets []time.Time, index map[time.Time]int, step time.Duration, tracked []string) EmotionStack {
	layout := "2006-01-02 15:04"
	if step == fineBucket {
		layout = "15:04"
	}
	stack := EmotionStack{Labels: make([]string, len(buckets))}
	for i, t := range buckets {
		stack.Labels[i] = t.Format(layout)
	}

	series := make(map[string][]int, len(tracked))
	for _, label := range tracked {
		series[label] = make([]int, len(buckets))
	}
	for _, c := range comments {
		label := c.Emotion
		if label == "" {
			label = "neutral"
		}
		if values, ok := series[label]; ok {
			values[index[c.CreatedTime.UTC().Truncate(step)]]++
		}
	}
	for _, label := range tracked {
		stack.Series = append(stack.Series, EmotionSeries{Name: label, Values: series[label]})
	}
	return stack
}

// detectSpikes flags buckets whose count sits at least spikeZMin standard
// deviations above the rolling baseline of the preceding spikeWindow
// buckets. A flat zero-variance baseline uses a unit deviation so a jump
// off a quiet series still registers; the raw-count floor suppresses
// z-score blowups on near-zero baselines.
func detectSpikes(stack EmotionStack, bucketLabels []string) []Spike {
	var spikes []Spike
	for _, series := range stack.Series {
		for i := spikeWindow; i < len(series.Values); i++ {
			mu, sd := meanStd(series.Values[i-spikeWindow : i])
			if sd == 0 {
				sd = 1
			}
			value := series.Values[i]
			z := (float64(value) - mu) / sd
			if z >= spikeZMin && value >= spikeCountMin {
				spikes = append(spikes, Spike{
					Bucket:  bucketLabels[i],
					Emotion: series.Name,
					Z:       round2(z),
					Value:   value,
				})
			}
		}
	}
	sort.SliceStable(spikes, func(i, j int) bool { return spikes[i].Z > spikes[j].Z })
	if len(spikes) > spikeReportCap {
		spikes = spikes[:spikeReportCap]
	}
	return spikes
}

func meanStd(values []int) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += float64(v)
	}
	mu := sum / float64(len(values))
	variance := 0.0
	for _, v := range values {
		d := float64(v) - mu
		variance += d * d
	}
	return mu, math.Sqrt(variance / float64(len(values)))
}

// decayFit locates the peak bucket and fits count = exp(a + b*t) over the
// tail by least squares on log counts. Counts are floored to a small
// epsilon so empty buckets do not blow up the log.
func decayFit(counts []int) ([]*float64, *float64) {
	fit := make([]*float64, len(counts))
	if len(counts) < 4 {
		return fit, nil
	}

	peak := 0
	for i, v := range counts {
		if v > counts[peak] {
			peak = i
		}
	}

	n := len(counts) - peak
	var sumX, sumY, sumXY, sumXX float64
	logs := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i)
		y := math.Log(math.Max(decayEpsilon, float64(counts[peak+i])))
		logs[i] = y
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := float64(n)*sumXX - sumX*sumX
	if denom == 0 {
		return fit, nil
	}
	b := (float64(n)*sumXY - sumX*sumY) / denom
	a := (sumY - b*sumX) / float64(n)

	for i := 0; i < n; i++ {
		v := round2(math.Exp(a + b*float64(i)))
		fit[peak+i] = &v
	}
	var tau *float64
	if b < 0 {
		t := round2(-1.0 / b)
		tau = &t
	}
	return fit, tau
}

// cumulativeThresholds returns the half-life (first bucket where the
// cumulative count reaches 50% of the total) and the time to the first 10
// comments, both scaled to hours by the bucket width. Either is nil when
// the threshold is never reached.
func cumulativeThresholds(counts []int, widthHours float64) (*float64, *float64) {
	total := 0
	for _, v := range counts {
		total += v
	}
	if total == 0 {
		return nil, nil
	}

	var half, toTen *float64
	cum := 0
	halfTarget := float64(total) * 0.5
	for i, v := range counts {
		cum += v
		if half == nil && float64(cum) >= halfTarget {
			h := round2(float64(i) * widthHours)
			half = &h
		}
		if toTen == nil && cum >= 10 {
			t := round2(float64(i) * widthHours)
			toTen = &t
		}
		if half != nil && toTen != nil {
			break
		}
	}
	return half, toTen
}

var contagionLabels = []string{"positive", "neutral", "negative"}

// contagionMatrix counts sentiment transitions between consecutive comments
// within the contagion gap, then normalizes each transition probability by
// the target sentiment's base rate across the window. A row with no
// observed transitions keeps a divisor of 1 so the matrix never divides by
// zero.
func contagionMatrix(sorted []model.ClassifiedComment) Contagion {
	base := make(map[string]float64, 3)
	states := make([]string, len(sorted))
	for i, c := range sorted {
		states[i] = sentimentState(c.Sentiment)
		base[states[i]]++
	}
	for label := range base {
		base[label] /= float64(len(sorted))
	}

	trans := make(map[[2]string]int)
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].CreatedTime.Sub(*sorted[i-1].CreatedTime)
		if gap <= contagionGap {
			trans[[2]string{states[i-1], states[i]}]++
		}
	}

	matrix := make([][]float64, len(contagionLabels))
	for i, from := range contagionLabels {
		rowTotal := 0
		for _, to := range contagionLabels {
			rowTotal += trans[[2]string{from, to}]
		}
		if rowTotal == 0 {
			rowTotal = 1
		}
		row := make([]float64, len(contagionLabels))
		for j, to := range contagionLabels {
			p := float64(trans[[2]string{from, to}]) / float64(rowTotal)
			baseProb := base[to]
			if baseProb == 0 {
				baseProb = 1e-9
			}
			row[j] = round2(p / baseProb)
		}
		matrix[i] = row
	}
	return Contagion{Labels: contagionLabels, Matrix: matrix}
}

func sentimentState(label string) string {
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

func reactionCurve(sorted []model.ClassifiedComment, tmin time.Time) ReactionCurve {
	sums := make(map[int]int)
	counts := make(map[int]int)
	for _, c := range sorted {
		age := int(c.CreatedTime.UTC().Sub(tmin).Hours())
		sums[age] += c.TotalReactions
		counts[age]++
	}
	ages := make([]int, 0, len(sums))
	for age := range sums {
		ages = append(ages, age)
	}
	sort.Ints(ages)

	curve := ReactionCurve{AgeHours: ages, Values: make([]float64, len(ages))}
	for i, age := range ages {
		curve.Values[i] = round2(float64(sums[age]) / float64(counts[age]))
	}
	return curve
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
