// Package cache stores serialized analysis results keyed by source path
// and content hash, with a time-to-live. A byte change in the source file
// changes the key, so stale entries are never served for modified files.
//
// Failure policy: the cache must never fail an analysis. Implementations
// log read/write problems and report them as misses.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"
)

// Cache is the injected collaborator the pipeline consults before and
// after an analysis.
type Cache interface {
	// Get returns the serialized result for key, or false when the key is
	// absent, expired or unreadable.
	Get(key string) ([]byte, bool)

	// Set stores a serialized result. A zero ttl means the cache default.
	Set(key string, value []byte, ttl time.Duration) error

	// Delete removes a single entry.
	Delete(key string) error

	// Clear removes every entry and returns how many were removed.
	Clear() (int, error)

	// CleanupExpired removes entries past their TTL and returns how many
	// were removed.
	CleanupExpired() (int, error)
}

// Key derives the cache key for a source path and its content hash.
// Hashing the pair keeps keys filename-safe and fixed-length.
func Key(path, contentHash string) string {
	sum := sha256.Sum256([]byte(path + ":" + contentHash))
	return "bookscan:v1:" + hex.EncodeToString(sum[:])
}

// HashFile computes the hex sha256 of a file's full content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for hashing: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
