// Package cache memoizes per-post analysis results for the lifetime of a
// session. The cache is a bounded LRU rather than an unbounded map so its
// lifecycle and eviction are explicit and testable.
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pagepulse/comment-insights/internal/insights"
	"github.com/pagepulse/comment-insights/internal/model"
)

// DefaultSize bounds how many posts a session keeps analyzed at once.
const DefaultSize = 32

// Entry is the memoized analysis state for one post: the classified table
// plus the bundle computed from it.
type Entry struct {
	Comments []model.ClassifiedComment
	Bundle   *insights.Bundle
}

// PostCache is a bounded LRU cache keyed by post identifier.
type PostCache struct {
	lru *lru.Cache[string, *Entry]
}

// New creates a post cache holding at most size entries. Size zero or below
// selects DefaultSize.
func New(size int) (*PostCache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	l, err := lru.New[string, *Entry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create post cache: %w", err)
	}
	return &PostCache{lru: l}, nil
}

// Get returns the cached entry for postID, if present.
func (pc *PostCache) Get(postID string) (*Entry, bool) {
	return pc.lru.Get(postID)
}

// Add stores the entry for postID, evicting the least recently used post
// when the cache is full.
func (pc *PostCache) Add(postID string, entry *Entry) {
	pc.lru.Add(postID, entry)
}

// Len reports how many posts are currently cached.
func (pc *PostCache) Len() int {
	return pc.lru.Len()
}
