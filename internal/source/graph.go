package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/pagepulse/comment-insights/internal/model"
)

const defaultGraphBaseURL = "https://graph.facebook.com/v19.0"

// reactionTypes are the Graph reaction breakdowns fetched per comment.
var reactionTypes = []string{"LIKE", "LOVE", "HAHA", "WOW", "SAD", "ANGRY", "CARE"}

// GraphClient fetches a post's top-level comments from the Graph API.
// Transient responses (429 and 5xx) are retried with incremental backoff
// (2s, 4s, 6s); when every attempt fails the last response is surfaced to
// the caller rather than swallowed.
type GraphClient struct {
	http    *retryablehttp.Client
	token   string
	baseURL string
}

// NewGraphClient creates a Graph API client with the retry policy above.
func NewGraphClient(token string) *GraphClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.Logger = nil
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.CheckRetry = transientRetryPolicy
	rc.Backoff = incrementalBackoff
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return &GraphClient{http: rc, token: token, baseURL: defaultGraphBaseURL}
}

func transientRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	switch resp.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true, nil
	}
	return false, nil
}

func incrementalBackoff(_, _ time.Duration, attemptNum int, _ *http.Response) time.Duration {
	return time.Duration(attemptNum+1) * 2 * time.Second
}

type graphComment struct {
	ID   string `json:"id"`
	From struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"from"`
	Message      string `json:"message"`
	CreatedTime  string `json:"created_time"`
	CommentCount int    `json:"comment_count"`
	PermalinkURL string `json:"permalink_url"`
}

type graphCommentPage struct {
	Data   []graphComment `json:"data"`
	Paging struct {
		Cursors struct {
			After string `json:"after"`
		} `json:"cursors"`
		Next string `json:"next"`
	} `json:"paging"`
}

type graphSummary struct {
	Summary struct {
		TotalCount int `json:"total_count"`
	} `json:"summary"`
}

// FetchComments retrieves all top-level comments for a post URL or raw
// object ID, including per-comment reaction breakdowns, and returns the
// normalized comment table.
func (g *GraphClient) FetchComments(ctx context.Context, postURL string) ([]model.Comment, error) {
	oid := ExtractObjectID(postURL)
	if oid == "" {
		return nil, fmt.Errorf("could not extract an object ID from %q", postURL)
	}

	var comments []model.Comment
	after := ""
	for {
		page, err := g.fetchCommentPage(ctx, oid, after)
		if err != nil {
			return nil, err
		}
		for _, gc := range page.Data {
			c := model.Comment{
				ID:          gc.ID,
				UserID:      gc.From.ID,
				UserName:    gc.From.Name,
				Text:        gc.Message,
				CreatedTime: model.ParseTimestamp(gc.CreatedTime),
				ReplyCount:  gc.CommentCount,
				Permalink:   gc.PermalinkURL,
			}
			g.fillReactionCounts(ctx, &c)
			comments = append(comments, c)
		}
		if page.Paging.Cursors.After == "" || page.Paging.Next == "" {
			break
		}
		after = page.Paging.Cursors.After
	}

	log.Printf("Fetched %d comments for object %s", len(comments), oid)
	return model.Normalize(comments), nil
}

func (g *GraphClient) fetchCommentPage(ctx context.Context, objectID, after string) (*graphCommentPage, error) {
	params := url.Values{}
	params.Set("access_token", g.token)
	params.Set("fields", "id,from{id,name},message,created_time,comment_count,permalink_url")
	params.Set("limit", "100")
	if after != "" {
		params.Set("after", after)
	}

	var page graphCommentPage
	if err := g.getJSON(ctx, fmt.Sprintf("%s/%s/comments", g.baseURL, objectID), params, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch comments for %s: %w", objectID, err)
	}
	return &page, nil
}

// fillReactionCounts fetches the per-type reaction summaries for one
// comment. A failed reaction lookup degrades that count to zero instead of
// failing the whole fetch.
func (g *GraphClient) fillReactionCounts(ctx context.Context, c *model.Comment) {
	for _, kind := range reactionTypes {
		params := url.Values{}
		params.Set("access_token", g.token)
		params.Set("type", kind)
		params.Set("summary", "total_count")
		params.Set("limit", "0")

		var summary graphSummary
		if err := g.getJSON(ctx, fmt.Sprintf("%s/%s/reactions", g.baseURL, c.ID), params, &summary); err != nil {
			log.Printf("Warning: could not fetch %s reactions for %s: %v", kind, c.ID, err)
			continue
		}
		switch strings.ToLower(kind) {
		case "like":
			c.LikeCount = summary.Summary.TotalCount
		case "love":
			c.LoveCount = summary.Summary.TotalCount
		case "haha":
			c.HahaCount = summary.Summary.TotalCount
		case "wow":
			c.WowCount = summary.Summary.TotalCount
		case "sad":
			c.SadCount = summary.Summary.TotalCount
		case "angry":
			c.AngryCount = summary.Summary.TotalCount
		case "care":
			c.CareCount = summary.Summary.TotalCount
		}
	}
}

func (g *GraphClient) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("graph API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
