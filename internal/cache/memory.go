package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the in-memory TTL store backing the run. Expired entries
// are swept at twice the default TTL; there is no persistence.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a memory cache whose entries default to the
// given TTL.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		store: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

// Get returns the stored bytes for the key, if present and unexpired.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.store.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores the bytes under the key for the given TTL. A non-positive
// TTL falls back to the cache default.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.store.Set(key, value, ttl)
}

// Delete drops the entry for the key, if any.
func (c *MemoryCache) Delete(key string) {
	c.store.Delete(key)
}
