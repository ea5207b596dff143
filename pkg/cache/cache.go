// Package cache provides pluggable byte caches used to memoize plan
// documents between runs. Backends share one small interface so the CLI
// (file cache), tests (null cache), and the server (redis) are
// interchangeable.
package cache

import (
	"context"
	"time"
)

// TTLPlan is how long computed plan documents stay cached. Venue files
// change rarely, so a day keeps repeat CLI runs instant without letting
// stale geometry live forever.
const TTLPlan = 24 * time.Hour

// Cache is the storage interface for cached byte payloads.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (0 means no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// PlanKeyOpts are the inputs that change a plan's content besides the
// venue itself.
type PlanKeyOpts struct {
	RosterHash string `json:"roster_hash,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
}

// PlanKey generates a cache key for a computed plan document. Two runs
// with the same venue bytes, roster, and seed produce the same key.
func PlanKey(venueHash string, opts PlanKeyOpts) string {
	return hashKey("plan", venueHash, opts)
}

// Scoped wraps a cache so every key is prefixed, isolating namespaces
// that share one backend (e.g. per-session state on a shared redis).
func Scoped(inner Cache, prefix string) Cache {
	return &scopedCache{inner: inner, prefix: prefix}
}

type scopedCache struct {
	inner  Cache
	prefix string
}

func (c *scopedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

func (c *scopedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

func (c *scopedCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

func (c *scopedCache) Close() error {
	return c.inner.Close()
}

var _ Cache = (*scopedCache)(nil)
