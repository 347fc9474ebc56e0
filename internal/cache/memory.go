package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps entries in process memory. It fronts the disk cache
// so repeated analyses in one run skip deserialization from disk.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache with the given default TTL and
// janitor interval.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get implements Cache.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set implements Cache.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete implements Cache.
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear implements Cache.
func (c *MemoryCache) Clear() (int, error) {
	n := c.cache.ItemCount()
	c.cache.Flush()
	return n, nil
}

// CleanupExpired implements Cache.
func (c *MemoryCache) CleanupExpired() (int, error) {
	before := c.cache.ItemCount()
	c.cache.DeleteExpired()
	return before - c.cache.ItemCount(), nil
}
