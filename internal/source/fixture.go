package source

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pagepulse/comment-insights/internal/model"
)

// fixtureComment mirrors model.Comment but keeps the timestamp as a raw
// string so fixtures can carry the loose formats real exports use.
type fixtureComment struct {
	ID          string `json:"comment_id"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	Text        string `json:"comment_text"`
	CreatedTime string `json:"created_time"`
	LikeCount   int    `json:"like_count"`
	LoveCount   int    `json:"love_count"`
	HahaCount   int    `json:"haha_count"`
	WowCount    int    `json:"wow_count"`
	SadCount    int    `json:"sad_count"`
	AngryCount  int    `json:"angry_count"`
	CareCount   int    `json:"care_count"`
	ReplyCount  int    `json:"reply_count"`
	Permalink   string `json:"permalink_url"`
	Language    string `json:"language"`
	ParentID    string `json:"parent_comment_id"`
}

// LoadFixture reads a JSON array of comments for offline/demo analysis and
// returns the normalized table. Malformed timestamps are coerced to
// missing, not rejected.
func LoadFixture(path string) ([]model.Comment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	var rows []fixtureComment
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	comments := make([]model.Comment, len(rows))
	for i, r := range rows {
		comments[i] = model.Comment{
			ID:          r.ID,
			UserID:      r.UserID,
			UserName:    r.UserName,
			Text:        r.Text,
			CreatedTime: model.ParseTimestamp(r.CreatedTime),
			LikeCount:   r.LikeCount,
			LoveCount:   r.LoveCount,
			HahaCount:   r.HahaCount,
			WowCount:    r.WowCount,
			SadCount:    r.SadCount,
			AngryCount:  r.AngryCount,
			CareCount:   r.CareCount,
			ReplyCount:  r.ReplyCount,
			Permalink:   r.Permalink,
			Language:    r.Language,
			ParentID:    r.ParentID,
		}
	}
	return model.Normalize(comments), nil
}
