package cache

import (
	"time"

	"go.uber.org/zap"
)

// LayeredCache combines a memory layer with a disk layer. Reads check
// memory first and promote disk hits; writes go to both.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache builds the standard memory-over-disk cache.
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration, logger *zap.Logger) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL, logger),
	}
}

// Get implements Cache.
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}

	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0) // promote with default TTL
		return val, true
	}

	return nil, false
}

// Set implements Cache.
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

// Delete implements Cache.
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear implements Cache. The count reports persistent entries only; the
// memory layer mirrors the disk layer.
func (c *LayeredCache) Clear() (int, error) {
	_, _ = c.memory.Clear()
	return c.disk.Clear()
}

// CleanupExpired implements Cache. As with Clear, the count is the disk
// layer's.
func (c *LayeredCache) CleanupExpired() (int, error) {
	_, _ = c.memory.CleanupExpired()
	return c.disk.CleanupExpired()
}
