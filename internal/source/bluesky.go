package source

import (
	"context"
	"fmt"
	"log"

	"github.com/bluesky-social/indigo/api/bsky"
	"github.com/bluesky-social/indigo/atproto/client"

	"github.com/pagepulse/comment-insights/internal/model"
)

const blueskyHost = "https://bsky.social"

// maxThreadDepth bounds how deep the reply tree fetch goes.
const maxThreadDepth = 1000

// BlueskySource fetches the reply thread of a Bluesky post and flattens it
// into a comment table. Likes map to the like reaction; the other reaction
// kinds stay zero since the platform has no equivalent.
type BlueskySource struct {
	client   *client.APIClient
	handle   string
	password string
}

// NewBlueskySource creates a Bluesky thread source.
func NewBlueskySource(handle, password string) *BlueskySource {
	return &BlueskySource{
		client:   client.NewAPIClient(blueskyHost),
		handle:   handle,
		password: password,
	}
}

// Authenticate logs in with the configured app password.
func (s *BlueskySource) Authenticate(ctx context.Context) error {
	authClient, err := client.LoginWithPasswordHost(ctx, blueskyHost, s.handle, s.password, "", nil)
	if err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}
	s.client = authClient
	return nil
}

// FetchReplies retrieves the full reply tree under a post URI and returns
// the normalized comment table, one row per reply.
func (s *BlueskySource) FetchReplies(ctx context.Context, postURI string) ([]model.Comment, error) {
	out, err := bsky.FeedGetPostThread(ctx, s.client, maxThreadDepth, 0, postURI)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread %s: %w", postURI, err)
	}
	if out.Thread == nil || out.Thread.FeedDefs_ThreadViewPost == nil {
		return nil, fmt.Errorf("thread not available for %s", postURI)
	}

	var comments []model.Comment
	collectReplies(out.Thread.FeedDefs_ThreadViewPost, postURI, &comments)
	log.Printf("Fetched %d replies for %s", len(comments), postURI)
	return model.Normalize(comments), nil
}

func collectReplies(node *bsky.FeedDefs_ThreadViewPost, parentURI string, out *[]model.Comment) {
	for _, elem := range node.Replies {
		if elem == nil || elem.FeedDefs_ThreadViewPost == nil {
			continue
		}
		child := elem.FeedDefs_ThreadViewPost
		if child.Post == nil {
			continue
		}
		*out = append(*out, postViewToComment(child.Post, parentURI))
		collectReplies(child, child.Post.Uri, out)
	}
}

// postViewToComment converts a PostView, handling pointer fields safely.
func postViewToComment(pv *bsky.FeedDefs_PostView, parentURI string) model.Comment {
	var author, authorID, text, createdAt string
	if pv.Author != nil {
		authorID = pv.Author.Did
		author = pv.Author.Handle
		if pv.Author.DisplayName != nil && *pv.Author.DisplayName != "" {
			author = *pv.Author.DisplayName
		}
	}
	if pv.Record != nil {
		if feedPost, ok := pv.Record.Val.(*bsky.FeedPost); ok {
			text = feedPost.Text
			createdAt = feedPost.CreatedAt
		}
	}
	if createdAt == "" {
		createdAt = pv.IndexedAt
	}

	likes := 0
	if pv.LikeCount != nil {
		likes = int(*pv.LikeCount)
	}
	replies := 0
	if pv.ReplyCount != nil {
		replies = int(*pv.ReplyCount)
	}

	return model.Comment{
		ID:          pv.Uri,
		UserID:      authorID,
		UserName:    author,
		Text:        text,
		CreatedTime: model.ParseTimestamp(createdAt),
		LikeCount:   likes,
		ReplyCount:  replies,
		ParentID:    parentURI,
	}
}
