package data

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// ResponseCache keeps raw schedule documents for a fixed TTL.
//
// It is meant for local development, to avoid hammering the provider while
// iterating. A TTL longer than the refresh interval means refreshes will
// serve stale schedules.
type ResponseCache struct {
	store *cache.Cache
	ttl   time.Duration
}

// NewResponseCache returns nil (caching disabled) when ttl <= 0.
// All methods are safe to call on a nil cache.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		return nil
	}
	return &ResponseCache{
		store: cache.New(ttl, 5*time.Minute),
		ttl:   ttl,
	}
}

// Get retrieves a cached response if available and not expired
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	v, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	body, ok := v.([]byte)
	return body, ok
}

// Set stores a response in the cache
func (c *ResponseCache) Set(key string, body []byte) {
	if c == nil {
		return
	}
	c.store.Set(key, body, c.ttl)
}

// Clear removes all entries from the cache
func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}
	c.store.Flush()
}

func (c *ResponseCache) TTL() time.Duration {
	if c == nil {
		return 0
	}
	return c.ttl
}

// GenerateCacheKey creates a cache key from the request URL
func GenerateCacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])
}
