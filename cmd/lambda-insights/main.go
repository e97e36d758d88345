package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/pagepulse/comment-insights/internal/benchmark"
	"github.com/pagepulse/comment-insights/internal/cache"
	"github.com/pagepulse/comment-insights/internal/classify"
	"github.com/pagepulse/comment-insights/internal/config"
	"github.com/pagepulse/comment-insights/internal/insights"
	"github.com/pagepulse/comment-insights/internal/intel"
	"github.com/pagepulse/comment-insights/internal/model"
	"github.com/pagepulse/comment-insights/internal/report"
	"github.com/pagepulse/comment-insights/internal/source"
	"github.com/pagepulse/comment-insights/internal/timewindow"
)

// Request is the invocation payload: a post to analyze plus an optional
// time restriction.
type Request struct {
	Post      string `json:"post"`
	Range     string `json:"range,omitempty"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	Benchmark bool   `json:"benchmark,omitempty"`
}

// Response is the full analysis document returned to the caller.
type Response struct {
	Post        string                    `json:"post"`
	Summary     string                    `json:"summary"`
	Insights    *insights.Bundle          `json:"insights"`
	TopComments insights.TopCommentsPanel `json:"top_comments"`
	TimeWindow  *timewindow.Result        `json:"time_window"`
	Safety      intel.SafetyPanel         `json:"safety"`
	Content     intel.ContentIntel        `json:"content"`
	Benchmark   *benchmark.RankReport     `json:"benchmark,omitempty"`
}

// postCache survives across warm invocations of the same container, so
// re-analyzing the same post with a different window skips the Graph fetch.
var postCache *cache.PostCache

func init() {
	var err error
	postCache, err = cache.New(cache.DefaultSize)
	if err != nil {
		log.Fatalf("Failed to create post cache: %v", err)
	}
}

// HandleRequest fetches (or reuses) the classified comment table for the
// requested post and computes the analysis document.
func HandleRequest(ctx context.Context, req Request) (*Response, error) {
	log.Printf("Received request for post %q (range=%q)", req.Post, req.Range)
	cfg := config.LoadConfigFromEnv()

	oid := source.ExtractObjectID(req.Post)
	if oid == "" {
		oid = req.Post
	}

	classified, err := classifiedComments(ctx, cfg, oid, req.Post)
	if err != nil {
		return nil, err
	}

	win := timewindow.Window{Range: req.Range}
	if t, err := time.Parse(time.RFC3339, req.Start); err == nil {
		win.Start = &t
	}
	if t, err := time.Parse(time.RFC3339, req.End); err == nil {
		win.End = &t
	}
	windowed := timewindow.Apply(classified, win)

	bundle := insights.Compute(windowed)
	resp := &Response{
		Post:        oid,
		Summary:     report.Summary(bundle),
		Insights:    bundle,
		TopComments: insights.ComputeTopCommentsPanel(windowed),
		TimeWindow:  timewindow.Compute(windowed),
		Safety:      intel.ComputeSafety(windowed, nil),
		Content:     intel.ComputeContentIntel(windowed, nil),
	}

	if req.Benchmark {
		store, err := benchmark.NewDynamoStore(ctx, cfg.Analytics.BenchmarkTable)
		if err != nil {
			return nil, err
		}
		resp.Benchmark, err = benchmark.NewTracker(store).RecordAndRank(ctx, oid, bundle.KPIs.Numeric())
		if err != nil {
			return nil, err
		}
	}

	log.Printf("Analysis completed for %s: %d comments in window", oid, len(windowed))
	return resp, nil
}

func classifiedComments(ctx context.Context, cfg *config.Config, oid, post string) ([]model.ClassifiedComment, error) {
	if entry, ok := postCache.Get(oid); ok {
		log.Printf("Cache hit for %s (%d comments)", oid, len(entry.Comments))
		return entry.Comments, nil
	}

	token, err := cfg.ResolveGraphToken(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := source.NewGraphClient(token).FetchComments(ctx, post)
	if err != nil {
		return nil, err
	}
	classified := classify.Annotate(comments, classify.NewVADERSentiment(), classify.NewLexiconEmotion(nil))
	postCache.Add(oid, &cache.Entry{Comments: classified, Bundle: insights.Compute(classified)})
	return classified, nil
}

func main() {
	lambda.Start(HandleRequest)
}
