// Package cache provides the result cache used by the order query service.
// The cache is a best-effort accelerator, never a source of truth: entries
// expire by TTL, expired entries are evicted lazily on lookup, and every
// order mutation clears the whole cache (coarse invalidation).
package cache

import (
	"context"
	"time"
)

type Cache interface {
	// Get returns the payload stored under key, or false when the key is
	// absent or its TTL has elapsed.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores payload under key for at most ttl.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration)
	// Clear removes all entries.
	Clear(ctx context.Context)
}
