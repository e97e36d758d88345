// Package sparkline renders the windowed comment timeline as a small PNG
// chart, with the fitted decay curve overlaid when one exists.
package sparkline

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/pagepulse/comment-insights/internal/timewindow"
)

// Config holds the chart dimensions and palette.
type Config struct {
	Width       int
	Height      int
	Padding     int
	LineWidth   float64
	PointRadius float64
	Background  color.RGBA
	CountLine   color.RGBA
	FitLine     color.RGBA
	SpikeMark   color.RGBA
	GridColor   color.RGBA
	TextColor   color.RGBA
}

// DefaultConfig returns the default chart configuration.
func DefaultConfig() *Config {
	return &Config{
		Width:       480,
		Height:      200,
		Padding:     24,
		LineWidth:   2.0,
		PointRadius: 2.5,
		Background:  color.RGBA{248, 249, 250, 255}, // Light gray
		CountLine:   color.RGBA{13, 110, 253, 255},  // Blue
		FitLine:     color.RGBA{253, 126, 20, 255},  // Orange
		SpikeMark:   color.RGBA{220, 53, 69, 255},   // Red
		GridColor:   color.RGBA{200, 200, 200, 255}, // Light gray
		TextColor:   color.RGBA{33, 37, 41, 255},    // Dark gray
	}
}

// Generator draws timeline sparkline images.
type Generator struct {
	config *Config
}

// NewGenerator creates a sparkline generator.
func NewGenerator(config *Config) *Generator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Generator{config: config}
}

// GenerateTimelineSparkline renders the bucketed comment counts as a line,
// overlays the decay fit where present, and marks spike buckets. Returns
// the encoded PNG bytes.
func (g *Generator) GenerateTimelineSparkline(res *timewindow.Result) ([]byte, error) {
	if res == nil || len(res.Timeline.Values) == 0 {
		return nil, fmt.Errorf("no timeline data provided")
	}

	dc := gg.NewContext(g.config.Width, g.config.Height)
	dc.SetColor(g.config.Background)
	dc.Clear()

	drawWidth := float64(g.config.Width - 2*g.config.Padding)
	drawHeight := float64(g.config.Height - 2*g.config.Padding)
	drawX := float64(g.config.Padding)
	drawY := float64(g.config.Padding)

	maxCount := maxValue(res.Timeline.Values, res.Timeline.Fit)

	g.drawGrid(dc, drawX, drawY, drawWidth, drawHeight)
	g.drawCountLine(dc, res.Timeline.Values, maxCount, drawX, drawY, drawWidth, drawHeight)
	g.drawFitLine(dc, res.Timeline.Fit, maxCount, drawX, drawY, drawWidth, drawHeight)
	g.drawSpikeMarks(dc, res, maxCount, drawX, drawY, drawWidth, drawHeight)
	g.drawLabels(dc, res, drawX, drawY, drawWidth, drawHeight)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode sparkline: %w", err)
	}
	return buf.Bytes(), nil
}

// maxValue finds the vertical scale across both the counts and the fit so
// neither series clips. Always at least 1 so a flat-zero series still draws.
func maxValue(values []int, fit []*float64) float64 {
	max := 1.0
	for _, v := range values {
		if float64(v) > max {
			max = float64(v)
		}
	}
	for _, f := range fit {
		if f != nil && *f > max {
			max = *f
		}
	}
	return max
}

func (g *Generator) pointAt(i, n int, v, maxCount, x, y, width, height float64) (float64, float64) {
	px := x
	if n > 1 {
		px = x + (float64(i)/float64(n-1))*width
	}
	py := y + height - (v/maxCount)*height
	return px, py
}

func (g *Generator) drawGrid(dc *gg.Context, x, y, width, height float64) {
	dc.SetColor(g.config.GridColor)
	dc.SetLineWidth(0.5)

	for _, frac := range []float64{0, 0.25, 0.5, 0.75, 1.0} {
		yPos := y + height - frac*height
		dc.DrawLine(x, yPos, x+width, yPos)
		dc.Stroke()
	}

	dc.SetLineWidth(1.0)
	dc.DrawLine(x, y+height, x+width, y+height)
	dc.Stroke()
}

func (g *Generator) drawCountLine(dc *gg.Context, values []int, maxCount, x, y, width, height float64) {
	dc.SetColor(g.config.CountLine)
	dc.SetLineWidth(g.config.LineWidth)

	n := len(values)
	for i := 0; i < n-1; i++ {
		x1, y1 := g.pointAt(i, n, float64(values[i]), maxCount, x, y, width, height)
		x2, y2 := g.pointAt(i+1, n, float64(values[i+1]), maxCount, x, y, width, height)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}
	for i, v := range values {
		px, py := g.pointAt(i, n, float64(v), maxCount, x, y, width, height)
		dc.DrawCircle(px, py, g.config.PointRadius)
		dc.Fill()
	}
}

// drawFitLine overlays the decay fit; nil entries (buckets before the peak)
// break the line rather than drawing through zero.
func (g *Generator) drawFitLine(dc *gg.Context, fit []*float64, maxCount, x, y, width, height float64) {
	dc.SetColor(g.config.FitLine)
	dc.SetLineWidth(g.config.LineWidth)

	n := len(fit)
	for i := 0; i < n-1; i++ {
		if fit[i] == nil || fit[i+1] == nil {
			continue
		}
		x1, y1 := g.pointAt(i, n, *fit[i], maxCount, x, y, width, height)
		x2, y2 := g.pointAt(i+1, n, *fit[i+1], maxCount, x, y, width, height)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}
}

// drawSpikeMarks circles the buckets flagged as emotion spikes, located by
// matching the spike's bucket label back to the timeline.
func (g *Generator) drawSpikeMarks(dc *gg.Context, res *timewindow.Result, maxCount, x, y, width, height float64) {
	if len(res.Spikes) == 0 {
		return
	}
	index := make(map[string]int, len(res.Timeline.Labels))
	for i, label := range res.Timeline.Labels {
		index[label] = i
	}

	dc.SetColor(g.config.SpikeMark)
	dc.SetLineWidth(1.5)
	n := len(res.Timeline.Values)
	for _, s := range res.Spikes {
		i, ok := index[s.Bucket]
		if !ok {
			continue
		}
		px, py := g.pointAt(i, n, float64(res.Timeline.Values[i]), maxCount, x, y, width, height)
		dc.DrawCircle(px, py, g.config.PointRadius*2.5)
		dc.Stroke()
	}
}

func (g *Generator) drawLabels(dc *gg.Context, res *timewindow.Result, x, y, width, height float64) {
	dc.SetColor(g.config.TextColor)
	dc.LoadFontFace("", 12)

	labels := res.Timeline.Labels
	if len(labels) > 0 {
		dc.DrawStringAnchored(labels[0], x, y+height+15, 0, 0)
		dc.DrawStringAnchored(labels[len(labels)-1], x+width, y+height+15, 1, 0)
	}

	dc.LoadFontFace("", 14)
	title := fmt.Sprintf("Comment Activity (%dm buckets)", res.BucketMinutes)
	if res.Timeline.TauBins != nil {
		title = fmt.Sprintf("%s, decay tau %.1f", title, *res.Timeline.TauBins)
	}
	dc.DrawStringAnchored(title, x+width/2, y-10, 0.5, 0)
}
