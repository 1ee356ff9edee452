// Package cache stores rendered frames.
//
// A frame is fully determined by its configuration, viewport, rotation, and
// output format, so one-shot renders and the live server's HTTP endpoint can
// skip the rebuild when an identical frame was produced before. Three
// backends implement Cache:
//
//   - FileCache: JSON entries under a directory, for the CLI
//   - RedisCache: shared entries in Redis, for servers
//   - NullCache: stores nothing
//
// Keys are produced by a Keyer so deployments can namespace them.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
