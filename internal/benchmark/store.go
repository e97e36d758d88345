// Package benchmark persists per-post KPI snapshots and ranks the current
// run against the trailing history window.
package benchmark

import (
	"context"
	"time"
)

// Snapshot is the stored KPI state for one post: the most recent run only,
// since history tracks latest-per-post rather than every run.
type Snapshot struct {
	Timestamp time.Time          `json:"ts" dynamodbav:"ts"`
	KPIs      map[string]float64 `json:"kpis" dynamodbav:"kpis"`
}

// Store is the injected persistence boundary for benchmark history. Put
// overwrites any prior snapshot for the same post identifier.
//
// Known gap: none of the implementations guard against concurrent writers;
// two simultaneous Put calls are last-writer-wins, matching the single-user
// deployment this serves.
type Store interface {
	Load(ctx context.Context) (map[string]Snapshot, error)
	Get(ctx context.Context, postID string) (Snapshot, bool, error)
	Put(ctx context.Context, postID string, snap Snapshot) error
}
