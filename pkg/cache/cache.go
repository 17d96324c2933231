// Package cache provides pluggable response caching for registry clients.
//
// Two backends are included:
//   - FileCache: file-based storage with TTL expiration, for normal CLI use
//   - NullCache: a no-op backend for --no-cache runs and tests
//
// Cache keys are arbitrary strings; backends hash them with SHA-256 so any
// key material (URLs, crate names, query strings) is safe to use directly.
package cache

import (
	"context"
	"time"
)

// Cache stores raw byte values with per-entry expiration.
//
// Implementations must tolerate concurrent use from multiple goroutines.
// A failed Get is indistinguishable from a miss for callers that only check
// the hit flag; callers that care about corruption can inspect the error.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// found and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
