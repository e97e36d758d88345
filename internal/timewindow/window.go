// Package timewindow restricts a classified comment table to a time window
// and derives the temporal-dynamics analytics: binned timelines, emotion
// spikes, decay fits, half-life thresholds, the sentiment contagion matrix
// and the reaction-accumulation curve.
package timewindow

import (
	"strconv"
	"strings"
	"time"

	"github.com/pagepulse/comment-insights/internal/model"
)

// Window describes the requested time restriction. Absolute bounds win;
// when only Range is set ("7d", "24h" style) it is resolved against the
// table's own max timestamp.
type Window struct {
	Start *time.Time
	End   *time.Time
	Range string
}

// ParseRange interprets a relative range token: an integer followed by "d"
// for days or "h" for hours.
func ParseRange(token string) (time.Duration, bool) {
	tok := strings.ToLower(strings.TrimSpace(token))
	if len(tok) < 2 {
		return 0, false
	}
	amount, err := strconv.Atoi(tok[:len(tok)-1])
	if err != nil || amount <= 0 {
		return 0, false
	}
	switch tok[len(tok)-1] {
	case 'd':
		return time.Duration(amount) * 24 * time.Hour, true
	case 'h':
		return time.Duration(amount) * time.Hour, true
	}
	return 0, false
}

// Apply filters the table to the window by inclusive timestamp bounds and
// recomputes the derived engagement fields on the slice. Rows without a
// parseable timestamp are excluded once any window applies; a zero-valued
// window keeps the whole table, unstamped rows included, so callers can run
// the same path with and without a restriction.
func Apply(comments []model.ClassifiedComment, w Window) []model.ClassifiedComment {
	if w.Start == nil && w.End == nil && w.Range == "" {
		return model.NormalizeClassified(comments)
	}

	var tmin, tmax *time.Time
	for _, c := range comments {
		if c.CreatedTime == nil {
			continue
		}
		t := c.CreatedTime.UTC()
		if tmin == nil || t.Before(*tmin) {
			u := t
			tmin = &u
		}
		if tmax == nil || t.After(*tmax) {
			u := t
			tmax = &u
		}
	}
	if tmax == nil {
		return []model.ClassifiedComment{}
	}

	start, end := w.Start, w.End
	if start == nil && end == nil && w.Range != "" {
		if d, ok := ParseRange(w.Range); ok {
			s := tmax.Add(-d)
			start, end = &s, tmax
		}
	}
	if start == nil {
		start = tmin
	}
	if end == nil {
		end = tmax
	}

	var out []model.ClassifiedComment
	for _, c := range comments {
		if c.CreatedTime == nil {
			continue
		}
		t := c.CreatedTime.UTC()
		if t.Before(*start) || t.After(*end) {
			continue
		}
		out = append(out, c)
	}
	return model.NormalizeClassified(out)
}
