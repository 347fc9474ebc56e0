package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const entrySuffix = ".cache"

// DiskCache persists entries as JSON files under a single directory.
// Expired entries are removed lazily on the read that discovers them,
// or in bulk by CleanupExpired.
type DiskCache struct {
	dir    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewDiskCache creates a disk cache rooted at dir with the given default
// TTL.
func NewDiskCache(dir string, ttl time.Duration, logger *zap.Logger) *DiskCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiskCache{dir: dir, ttl: ttl, logger: logger}
}

type diskEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get implements Cache. A corrupt or expired entry is a miss; corrupt and
// expired files are removed on discovery.
func (c *DiskCache) Get(key string) ([]byte, bool) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("removing corrupt cache entry", zap.String("path", path), zap.Error(err))
		_ = os.Remove(path)
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}

	return entry.Data, true
}

// Set implements Cache.
func (c *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	entry := diskEntry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

// Delete implements Cache.
func (c *DiskCache) Delete(key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear implements Cache. It removes every entry file and reports the
// count.
func (c *DiskCache) Clear() (int, error) {
	entries, err := c.entryPaths()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, path := range entries {
		if err := os.Remove(path); err != nil {
			c.logger.Warn("failed to remove cache entry", zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
	}
	c.logger.Info("cleared cache", zap.Int("removed", removed))
	return removed, nil
}

// CleanupExpired implements Cache. It scans every entry and removes the
// ones past their TTL.
func (c *DiskCache) CleanupExpired() (int, error) {
	entries, err := c.entryPaths()
	if err != nil {
		return 0, err
	}

	now := time.Now()
	removed := 0
	for _, path := range entries {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var entry diskEntry
		if err := json.Unmarshal(data, &entry); err != nil || now.After(entry.ExpiresAt) {
			// Corrupt entries go too; they can never be served.
			if err := os.Remove(path); err == nil {
				removed++
			}
		}
	}
	c.logger.Info("removed expired cache entries", zap.Int("removed", removed))
	return removed, nil
}

func (c *DiskCache) entryPaths() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(c.dir, "*"+entrySuffix))
	if err != nil {
		return nil, fmt.Errorf("scan cache dir: %w", err)
	}
	return matches, nil
}

// path maps a key to its entry file. Keys are already hex digests, so
// they are safe as filenames; the replacement below only guards against
// a caller passing a raw key.
func (c *DiskCache) path(key string) string {
	safe := strings.ReplaceAll(key, string(filepath.Separator), "_")
	return filepath.Join(c.dir, safe+entrySuffix)
}
