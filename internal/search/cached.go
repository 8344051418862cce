package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fundscout/fundscout/internal/cache"
)

// Cached decorates a Provider with a per-run response cache. Seed queries
// and expansion can surface the same query text more than once; the cache
// keeps repeats from hitting the provider again.
type Cached struct {
	inner  Provider
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCached wraps the provider with the given cache.
func NewCached(inner Provider, c cache.Cache, ttl time.Duration, logger *zap.Logger) *Cached {
	return &Cached{
		inner:  inner,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// Name returns the wrapped provider name
func (c *Cached) Name() string {
	return c.inner.Name()
}

// Search returns cached results when available, otherwise delegates to the
// wrapped provider and caches its answer. Provider failures are never cached.
func (c *Cached) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	key := cache.Key(fmt.Sprintf("%s|%s|%d", c.inner.Name(), query, maxResults))

	if data, found := c.cache.Get(key); found {
		var results []Result
		if err := json.Unmarshal(data, &results); err == nil {
			c.logger.Debug("search cache hit", zap.String("query", query))
			return results, nil
		}
		// Corrupt entry, drop it and fall through to the provider.
		c.cache.Delete(key)
	}

	results, err := c.inner.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(results); err == nil {
		c.cache.Set(key, data, c.ttl)
	}

	return results, nil
}
