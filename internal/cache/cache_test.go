package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagepulse/comment-insights/internal/insights"
	"github.com/pagepulse/comment-insights/internal/model"
)

func TestPostCacheRoundTrip(t *testing.T) {
	pc, err := New(4)
	require.NoError(t, err)

	entry := &Entry{
		Comments: []model.ClassifiedComment{{Sentiment: "positive"}},
		Bundle:   &insights.Bundle{},
	}
	pc.Add("post-1", entry)

	got, ok := pc.Get("post-1")
	require.True(t, ok, "post-1 should be cached")
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "positive", got.Comments[0].Sentiment)
	assert.NotNil(t, got.Bundle)
}

func TestPostCacheEvictsLRU(t *testing.T) {
	pc, err := New(2)
	require.NoError(t, err)

	pc.Add("a", &Entry{})
	pc.Add("b", &Entry{})
	pc.Add("c", &Entry{})

	assert.Equal(t, 2, pc.Len())
	_, ok := pc.Get("a")
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok = pc.Get("c")
	assert.True(t, ok, "newest entry should survive")
}

func TestPostCacheDefaultSize(t *testing.T) {
	pc, err := New(0)
	require.NoError(t, err)

	for i := 0; i < DefaultSize+5; i++ {
		pc.Add(string(rune('a'+i)), &Entry{})
	}
	assert.Equal(t, DefaultSize, pc.Len())
}
