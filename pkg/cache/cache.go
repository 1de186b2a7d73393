// Package cache provides byte caches for fetched records and rendered
// snapshots.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [NullCache]: stores nothing (--no-cache, tests)
//
// Keys are built by a [Keyer] so that every component derives the same key
// for the same input. [ScopedKeyer] prefixes keys when several deployments
// share one Redis.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry type.
const (
	// TTLSheet bounds how stale a published spreadsheet may be.
	TTLSheet = time.Hour

	// TTLArtifact applies to rendered snapshots. They are a pure function
	// of their key, so they can live long.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values with an optional time-to-live.
type Cache interface {
	// Get returns the value under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
