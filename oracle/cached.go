package oracle

import (
	"context"
	"slices"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/gsfs/engine"
)

// DefaultCacheSize is the default number of subsets to remember.
const DefaultCacheSize = 4096

// Cached wraps an oracle with an LRU cache keyed by the canonical subset.
// Concurrent evaluations of the same subset share one inner call. Errors
// are not cached.
type Cached struct {
	inner engine.Oracle
	cache *lru.Cache[string, float64]
	group singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

var _ engine.Oracle = (*Cached)(nil)

// NewCached creates a cached oracle wrapping inner.
func NewCached(inner engine.Oracle, size int) *Cached {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, _ := lru.New[string, float64](size)
	return &Cached{
		inner: inner,
		cache: cache,
	}
}

// cacheKey is independent of the order of features.
func cacheKey(features []string) string {
	s := slices.Clone(features)
	slices.Sort(s)
	return strings.Join(s, "\x00")
}

// Evaluate returns the cached score if available, otherwise evaluates and
// caches.
func (c *Cached) Evaluate(ctx context.Context, features []string) (float64, error) {
	key := cacheKey(features)

	if score, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return score, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		c.misses.Add(1)
		score, err := c.inner.Evaluate(ctx, features)
		if err != nil {
			return 0.0, err
		}
		c.cache.Add(key, score)
		return score, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// Stats returns the number of cache hits and inner evaluations.
func (c *Cached) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached subsets.
func (c *Cached) Len() int { return c.cache.Len() }

// Purge drops every cached score.
func (c *Cached) Purge() { c.cache.Purge() }

// Inner returns the wrapped oracle.
func (c *Cached) Inner() engine.Oracle { return c.inner }
