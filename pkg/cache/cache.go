// Package cache stores evaluation reports and solver results between runs.
//
// # Backends
//
// Three [Cache] implementations are provided:
//
//   - [FileCache]: JSON entries under a local directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the HTTP server
//   - [NullCache]: stores nothing, used with --no-cache and in tests
//
// # Keys
//
// Keys are built by a [Keyer] so that every caller derives the same key for
// the same puzzle and options. [ScopedKeyer] prefixes keys to give separate
// deployments their own namespace in a shared backend.
//
//	k := cache.NewDefaultKeyer()
//	key := k.ReportKey(cache.Hash(rows), cache.ReportKeyOpts{Explain: true})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Default lifetimes for cached values.
const (
	// TTLReport covers evaluation reports. Reports depend only on the
	// board, so the limit mostly bounds disk usage.
	TTLReport = 7 * 24 * time.Hour

	// TTLSolution covers optimal move counts from the solver.
	TTLSolution = 30 * 24 * time.Hour
)
