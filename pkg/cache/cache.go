// Package cache stores generator lookups and rendered API responses.
//
// All backends implement [Cache], a byte-oriented key/value store with
// optional expiry. [FileCache] backs the CLI, [RedisCache] and [MongoCache]
// back shared deployments of the HTTP server, and [NullCache] disables
// caching. Keys are derived with a [Keyer] so every backend sees the same
// namespace layout.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for serialized results.
//
// Get reports a miss with ok == false and a nil error; errors are reserved
// for backend failures. A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default lifetimes per entry kind.
const (
	// TTLLookup applies to generator results. Analyzers change rarely, so
	// lookups are kept for a week.
	TTLLookup = 7 * 24 * time.Hour

	// TTLResponse applies to rendered HTTP responses.
	TTLResponse = 24 * time.Hour
)
