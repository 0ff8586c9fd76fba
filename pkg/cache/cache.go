// Package cache stores remote lookups (descriptor downloads, license texts,
// rate-limit probes) so repeated runs over the same dependency set do not hit
// remote services again.
//
// Three backends are provided:
//   - [FileCache]: one JSON file per key under a directory (CLI default)
//   - [RedisCache]: shared cache for CI fleets, backed by go-redis
//   - [NullCache]: disables caching
//
// Keys are produced by a [Keyer] so every backend sees the same key layout.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached bytes for key. The boolean reports a hit;
	// expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
