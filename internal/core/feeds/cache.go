package feeds

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"Yatube/internal/core/posts"
)

const indexKey = "index"

// IndexCache holds a snapshot of the global feed for a fixed time.
// Writes do not invalidate it, so new posts appear once the entry expires
// or Invalidate is called.
type IndexCache struct {
	lru    *expirable.LRU[string, []*posts.Post]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewIndexCache creates a cache whose entry lives for ttl.
// A non-positive ttl disables caching.
func NewIndexCache(ttl time.Duration) *IndexCache {
	if ttl <= 0 {
		return &IndexCache{}
	}
	return &IndexCache{
		lru: expirable.NewLRU[string, []*posts.Post](1, nil, ttl),
	}
}

// Get returns the cached snapshot if it is still fresh
func (c *IndexCache) Get() ([]*posts.Post, bool) {
	if c == nil || c.lru == nil {
		return nil, false
	}
	snapshot, ok := c.lru.Get(indexKey)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return snapshot, ok
}

// Set stores a new snapshot and restarts the expiry clock
func (c *IndexCache) Set(snapshot []*posts.Post) {
	if c == nil || c.lru == nil {
		return
	}
	c.lru.Add(indexKey, snapshot)
}

// Invalidate drops the snapshot so the next read goes to the store
func (c *IndexCache) Invalidate() {
	if c == nil || c.lru == nil {
		return
	}
	c.lru.Purge()
}

// Stats returns hit and miss counters
func (c *IndexCache) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}
