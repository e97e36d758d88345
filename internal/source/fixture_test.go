package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.json")
	content := `[
  {
    "comment_id": "c1",
    "user_name": "alice",
    "comment_text": "love it",
    "created_time": "2024-05-01 10:00:00",
    "like_count": 2,
    "love_count": 1,
    "reply_count": 1
  },
  {
    "comment_id": "c2",
    "user_name": "bob",
    "comment_text": "meh",
    "created_time": "not a timestamp"
  }
]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	comments, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture() error = %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}

	if comments[0].TotalReactions != 3 || comments[0].EngagementScore != 4 {
		t.Errorf("c1 totals = (%d, %d), want (3, 4)", comments[0].TotalReactions, comments[0].EngagementScore)
	}
	if comments[0].CreatedTime == nil {
		t.Error("c1 CreatedTime not parsed")
	}
	// Malformed timestamps coerce to missing rather than failing the load.
	if comments[1].CreatedTime != nil {
		t.Errorf("c2 CreatedTime = %v, want nil", comments[1].CreatedTime)
	}
}

func TestLoadFixtureMissingFile(t *testing.T) {
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("LoadFixture() on a missing file returned nil error")
	}
}

func TestLoadFixtureBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadFixture(path); err == nil {
		t.Error("LoadFixture() on invalid JSON returned nil error")
	}
}
