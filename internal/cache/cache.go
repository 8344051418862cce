package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the per-run byte store for search responses. It holds opaque
// serialized values; entries expire on their TTL and nothing outlives the
// run, so the operations are infallible.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}

// Key generates a cache key from an arbitrary identifier such as a
// search query.
func Key(id string) string {
	hash := sha256.Sum256([]byte(id))
	return "fundscout:v1:" + hex.EncodeToString(hash[:])
}
