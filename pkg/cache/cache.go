// Package cache stores optimization results keyed by a content hash of the
// inputs that produced them.
//
// Backends implement [Cache]:
//
//   - [FileCache] keeps entries as JSON files under a directory (CLI default)
//   - [RedisCache] shares entries between processes through Redis
//   - [NullCache] stores nothing and is used when caching is disabled
//
// Keys come from a [Keyer] so that callers never build key strings by hand.
// [ScopedKeyer] prefixes every key, which keeps several tenants or floor-plan
// projects apart in a shared backend.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for cached entries.
const (
	TTLResult = 7 * 24 * time.Hour
	TTLZones  = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiration.
// Get reports a miss with (nil, false, nil); errors are reserved for
// backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
