package model

import (
	"strconv"
	"time"
)

// ReactionKinds lists the seven reaction types a comment can carry, in the
// order they are reported in distributions.
var ReactionKinds = []string{"like", "love", "haha", "wow", "sad", "angry", "care"}

// Comment is one row of the raw comment table. Reaction counts that were
// absent upstream are simply zero; TotalReactions and EngagementScore are
// derived and must be recomputed whenever the comment set is re-sliced.
type Comment struct {
	ID          string     `json:"comment_id"`
	UserID      string     `json:"user_id,omitempty"`
	UserName    string     `json:"user_name"`
	Text        string     `json:"comment_text"`
	CreatedTime *time.Time `json:"created_time,omitempty"`

	LikeCount  int `json:"like_count"`
	LoveCount  int `json:"love_count"`
	HahaCount  int `json:"haha_count"`
	WowCount   int `json:"wow_count"`
	SadCount   int `json:"sad_count"`
	AngryCount int `json:"angry_count"`
	CareCount  int `json:"care_count"`
	ReplyCount int `json:"reply_count"`

	Permalink string `json:"permalink_url,omitempty"`
	Language  string `json:"language,omitempty"`
	ParentID  string `json:"parent_comment_id,omitempty"`

	TotalReactions  int `json:"total_reactions"`
	EngagementScore int `json:"engagement_score"`
}

// ReactionCount returns the count for a single reaction kind.
func (c *Comment) ReactionCount(kind string) int {
	switch kind {
	case "like":
		return c.LikeCount
	case "love":
		return c.LoveCount
	case "haha":
		return c.HahaCount
	case "wow":
		return c.WowCount
	case "sad":
		return c.SadCount
	case "angry":
		return c.AngryCount
	case "care":
		return c.CareCount
	}
	return 0
}

// SumReactions adds up all seven reaction counts.
func (c *Comment) SumReactions() int {
	total := 0
	for _, kind := range ReactionKinds {
		total += c.ReactionCount(kind)
	}
	return total
}

// Normalize returns a copy of the comment table with TotalReactions and
// EngagementScore recomputed for every row. Applying it to an already
// normalized table is a no-op.
func Normalize(comments []Comment) []Comment {
	out := make([]Comment, len(comments))
	for i, c := range comments {
		c.TotalReactions = c.SumReactions()
		c.EngagementScore = c.TotalReactions + c.ReplyCount
		out[i] = c
	}
	return out
}

// ClassifiedComment is a Comment augmented with the labels produced by the
// external sentiment/emotion classifiers.
type ClassifiedComment struct {
	Comment
	Sentiment  string `json:"sentiment"`
	Emotion    string `json:"emotion"`
	EmojiCount int    `json:"emoji_count"`
	WordCount  int    `json:"word_count"`
}

// NormalizeClassified recomputes the derived engagement fields on a
// classified table, preserving the classification labels.
func NormalizeClassified(comments []ClassifiedComment) []ClassifiedComment {
	out := make([]ClassifiedComment, len(comments))
	for i, c := range comments {
		c.TotalReactions = c.SumReactions()
		c.EngagementScore = c.TotalReactions + c.ReplyCount
		out[i] = c
	}
	return out
}

// timestampLayouts are tried in order when coercing upstream timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp coerces an upstream timestamp string to UTC. Malformed
// values return nil so the row is excluded from time-based aggregates
// instead of aborting the batch.
func ParseTimestamp(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			u := t.UTC()
			return &u
		}
	}
	// Graph sometimes hands back epoch seconds as a bare number.
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil && secs > 0 {
		u := time.Unix(secs, 0).UTC()
		return &u
	}
	return nil
}
