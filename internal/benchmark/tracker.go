package benchmark

import (
	"context"
	"math"
	"sort"
	"time"
)

// historyWindow is how many of the most recently written snapshots a rank
// is computed against, inclusive of the just-written one.
const historyWindow = 20

// rankedMetrics is the fixed KPI subset benchmarked against history.
var rankedMetrics = []string{"advocacy", "safety_score", "avg_reactions_per_comment", "total_comments"}

// RankReport carries the percentile rank of the current run per metric.
// A nil percentile means no historical value exists for that metric.
type RankReport struct {
	Percentiles  map[string]*float64 `json:"percentiles"`
	HistoryCount int                 `json:"count_history"`
}

// Tracker records KPI snapshots and ranks the current run against the
// trailing history window.
type Tracker struct {
	store   Store
	metrics []string
	now     func() time.Time
}

// NewTracker creates a tracker over the given store with the default
// metric subset.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store, metrics: rankedMetrics, now: time.Now}
}

// RecordAndRank overwrites the stored snapshot for postID, persists it,
// then computes the percentile rank of each tracked metric among the 20
// most recently written snapshots. Percentile = 100 * count(historical <=
// current) / count(historical).
func (t *Tracker) RecordAndRank(ctx context.Context, postID string, kpis map[string]float64) (*RankReport, error) {
	if err := t.store.Put(ctx, postID, Snapshot{Timestamp: t.now().UTC(), KPIs: kpis}); err != nil {
		return nil, err
	}

	history, err := t.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	recent := trailingSnapshots(history, historyWindow)

	report := &RankReport{
		Percentiles:  make(map[string]*float64, len(t.metrics)),
		HistoryCount: len(recent),
	}
	for _, metric := range t.metrics {
		report.Percentiles[metric] = percentileOf(recent, metric, kpis[metric])
	}
	return report, nil
}

// trailingSnapshots orders history by write time and keeps the most recent
// n snapshots.
func trailingSnapshots(history map[string]Snapshot, n int) []Snapshot {
	snaps := make([]Snapshot, 0, len(history))
	for _, s := range history {
		if s.KPIs != nil {
			snaps = append(snaps, s)
		}
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Timestamp.Before(snaps[j].Timestamp) })
	if len(snaps) > n {
		snaps = snaps[len(snaps)-n:]
	}
	return snaps
}

func percentileOf(snaps []Snapshot, metric string, current float64) *float64 {
	var vals []float64
	for _, s := range snaps {
		if v, ok := s.KPIs[metric]; ok {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return nil
	}
	below := 0
	for _, v := range vals {
		if v <= current {
			below++
		}
	}
	pct := math.Round(100*float64(below)/float64(len(vals))*10) / 10
	return &pct
}
