package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pagepulse/comment-insights/internal/benchmark"
	"github.com/pagepulse/comment-insights/internal/classify"
	"github.com/pagepulse/comment-insights/internal/config"
	"github.com/pagepulse/comment-insights/internal/insights"
	"github.com/pagepulse/comment-insights/internal/intel"
	"github.com/pagepulse/comment-insights/internal/model"
	"github.com/pagepulse/comment-insights/internal/report"
	"github.com/pagepulse/comment-insights/internal/source"
	"github.com/pagepulse/comment-insights/internal/sparkline"
	"github.com/pagepulse/comment-insights/internal/timewindow"
)

// output is the full analysis document written as JSON.
type output struct {
	Post        string                    `json:"post"`
	Insights    *insights.Bundle          `json:"insights"`
	TopComments insights.TopCommentsPanel `json:"top_comments"`
	TimeWindow  *timewindow.Result        `json:"time_window"`
	Safety      intel.SafetyPanel         `json:"safety"`
	Content     intel.ContentIntel        `json:"content"`
	Benchmark   *benchmark.RankReport     `json:"benchmark,omitempty"`
	Highlights  []string                  `json:"highlights"`
}

func main() {
	configPath := flag.String("config", "", "path to config.yaml (defaults to ./config.yaml, then env vars)")
	post := flag.String("post", "", "Facebook post URL or raw object ID to analyze")
	blueskyURI := flag.String("bluesky", "", "Bluesky post AT-URI to analyze")
	fixture := flag.String("fixture", "", "path to a JSON comment fixture (offline mode)")
	window := flag.String("window", "", "relative time window, e.g. 7d or 24h")
	startStr := flag.String("start", "", "window start (RFC3339), overrides -window")
	endStr := flag.String("end", "", "window end (RFC3339), overrides -window")
	rank := flag.Bool("benchmark", false, "record this run and rank KPIs against history")
	sparkOut := flag.String("sparkline", "", "write a timeline sparkline PNG to this path")
	outPath := flag.String("out", "", "write the JSON report to this path instead of stdout")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("No config file loaded (%v), falling back to environment", err)
		cfg = config.LoadConfigFromEnv()
	}

	postKey, comments, err := fetchComments(ctx, cfg, *post, *blueskyURI, *fixture)
	if err != nil {
		log.Fatalf("Failed to fetch comments: %v", err)
	}
	log.Printf("Loaded %d comments for %s", len(comments), postKey)

	classified := classify.Annotate(comments, classify.NewVADERSentiment(), classify.NewLexiconEmotion(nil))

	win, err := parseWindow(*window, *startStr, *endStr)
	if err != nil {
		log.Fatalf("Invalid window: %v", err)
	}
	windowed := timewindow.Apply(classified, win)
	log.Printf("Window keeps %d of %d comments", len(windowed), len(classified))

	bundle := insights.Compute(windowed)
	doc := output{
		Post:        postKey,
		Insights:    bundle,
		TopComments: insights.ComputeTopCommentsPanel(windowed),
		TimeWindow:  timewindow.Compute(windowed),
		Safety:      intel.ComputeSafety(windowed, nil),
		Content:     intel.ComputeContentIntel(windowed, nil),
		Highlights:  report.Highlights(bundle),
	}

	if *rank {
		doc.Benchmark, err = rankRun(ctx, cfg, postKey, bundle)
		if err != nil {
			log.Fatalf("Failed to benchmark run: %v", err)
		}
		log.Printf("Ranked against %d historical snapshots", doc.Benchmark.HistoryCount)
	}

	if *sparkOut != "" {
		png, err := sparkline.NewGenerator(nil).GenerateTimelineSparkline(doc.TimeWindow)
		if err != nil {
			log.Printf("Warning: sparkline not generated: %v", err)
		} else if err := os.WriteFile(*sparkOut, png, 0644); err != nil {
			log.Fatalf("Failed to write sparkline: %v", err)
		} else {
			log.Printf("Wrote sparkline to %s", *sparkOut)
		}
	}

	if err := writeReport(&doc, *outPath); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
}

// fetchComments selects the comment source: fixture file, Bluesky thread, or
// the Graph API, in that precedence order.
func fetchComments(ctx context.Context, cfg *config.Config, post, blueskyURI, fixture string) (string, []model.Comment, error) {
	switch {
	case fixture != "":
		comments, err := source.LoadFixture(fixture)
		return fixture, comments, err
	case blueskyURI != "":
		src := source.NewBlueskySource(cfg.Bluesky.Handle, cfg.Bluesky.Password)
		if cfg.Bluesky.Handle != "" {
			if err := src.Authenticate(ctx); err != nil {
				return "", nil, err
			}
		}
		comments, err := src.FetchReplies(ctx, blueskyURI)
		return blueskyURI, comments, err
	case post != "":
		token, err := cfg.ResolveGraphToken(ctx)
		if err != nil {
			return "", nil, err
		}
		oid := source.ExtractObjectID(post)
		if oid == "" {
			return "", nil, fmt.Errorf("could not extract an object ID from %q", post)
		}
		comments, err := source.NewGraphClient(token).FetchComments(ctx, post)
		return oid, comments, err
	}
	return "", nil, fmt.Errorf("one of -post, -bluesky or -fixture is required")
}

func parseWindow(rangeToken, startStr, endStr string) (timewindow.Window, error) {
	win := timewindow.Window{Range: rangeToken}
	if startStr != "" {
		t, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return win, fmt.Errorf("bad -start: %w", err)
		}
		win.Start = &t
	}
	if endStr != "" {
		t, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return win, fmt.Errorf("bad -end: %w", err)
		}
		win.End = &t
	}
	return win, nil
}

// rankRun records the KPI snapshot and ranks it. DynamoDB is used when a
// benchmark table is configured, the local history file otherwise.
func rankRun(ctx context.Context, cfg *config.Config, postKey string, bundle *insights.Bundle) (*benchmark.RankReport, error) {
	var store benchmark.Store
	if cfg.Analytics.BenchmarkTable != "" {
		ds, err := benchmark.NewDynamoStore(ctx, cfg.Analytics.BenchmarkTable)
		if err != nil {
			return nil, err
		}
		store = ds
	} else {
		store = benchmark.NewFileStore(cfg.Analytics.HistoryPath)
	}
	return benchmark.NewTracker(store).RecordAndRank(ctx, postKey, bundle.KPIs.Numeric())
}

func writeReport(doc *output, outPath string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')
	if outPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	log.Printf("Wrote report to %s", outPath)
	return nil
}
