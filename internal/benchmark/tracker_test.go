package benchmark

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func newTestTracker(t *testing.T) (*Tracker, *FileStore) {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "history.json"))
	tracker := NewTracker(store)

	// Deterministic, strictly increasing write times.
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	tracker.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	return tracker, store
}

func TestRecordAndRank(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTestTracker(t)

	for i, adv := range []float64{10, 30} {
		if _, err := tracker.RecordAndRank(ctx, fmt.Sprintf("post-%d", i), map[string]float64{"advocacy": adv}); err != nil {
			t.Fatalf("RecordAndRank() error = %v", err)
		}
	}

	report, err := tracker.RecordAndRank(ctx, "post-current", map[string]float64{"advocacy": 20})
	if err != nil {
		t.Fatalf("RecordAndRank() error = %v", err)
	}

	if report.HistoryCount != 3 {
		t.Errorf("HistoryCount = %d, want 3", report.HistoryCount)
	}
	// History is {10, 30, 20}; two of three values sit at or below 20.
	pct := report.Percentiles["advocacy"]
	if pct == nil || *pct != 66.7 {
		t.Errorf("advocacy percentile = %v, want 66.7", pct)
	}
}

func TestRecordAndRankFirstRun(t *testing.T) {
	tracker, _ := newTestTracker(t)

	report, err := tracker.RecordAndRank(context.Background(), "post-1", map[string]float64{"advocacy": 50})
	if err != nil {
		t.Fatalf("RecordAndRank() error = %v", err)
	}

	// The run ranks against itself: a single value is its own 100th
	// percentile.
	pct := report.Percentiles["advocacy"]
	if pct == nil || *pct != 100 {
		t.Errorf("advocacy percentile = %v, want 100", pct)
	}
}

func TestRecordAndRankMissingMetricIsNil(t *testing.T) {
	tracker, _ := newTestTracker(t)

	report, err := tracker.RecordAndRank(context.Background(), "post-1", map[string]float64{"advocacy": 50})
	if err != nil {
		t.Fatalf("RecordAndRank() error = %v", err)
	}

	if pct := report.Percentiles["safety_score"]; pct != nil {
		t.Errorf("safety_score percentile = %v, want nil (no history carries it)", *pct)
	}
}

func TestTrailingSnapshotsKeepsMostRecent(t *testing.T) {
	history := make(map[string]Snapshot)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		history[fmt.Sprintf("post-%d", i)] = Snapshot{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			KPIs:      map[string]float64{"advocacy": float64(i)},
		}
	}

	recent := trailingSnapshots(history, historyWindow)

	if len(recent) != historyWindow {
		t.Fatalf("kept %d snapshots, want %d", len(recent), historyWindow)
	}
	// Oldest five dropped; the first kept snapshot is post-5.
	if recent[0].KPIs["advocacy"] != 5 {
		t.Errorf("oldest kept advocacy = %v, want 5", recent[0].KPIs["advocacy"])
	}
	if recent[len(recent)-1].KPIs["advocacy"] != 24 {
		t.Errorf("newest kept advocacy = %v, want 24", recent[len(recent)-1].KPIs["advocacy"])
	}
}

func TestPercentileOf(t *testing.T) {
	snaps := []Snapshot{
		{KPIs: map[string]float64{"advocacy": 10}},
		{KPIs: map[string]float64{"advocacy": 20}},
		{KPIs: map[string]float64{"advocacy": 30}},
		{KPIs: map[string]float64{"advocacy": 40}},
	}

	tests := []struct {
		name    string
		current float64
		want    float64
	}{
		{name: "below all", current: 5, want: 0},
		{name: "middle", current: 25, want: 50},
		{name: "equal counts as at-or-below", current: 30, want: 75},
		{name: "above all", current: 99, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentileOf(snaps, "advocacy", tt.current)
			if got == nil || *got != tt.want {
				t.Errorf("percentileOf(%v) = %v, want %v", tt.current, got, tt.want)
			}
		})
	}
}
