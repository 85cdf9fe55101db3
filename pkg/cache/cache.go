// Package cache provides pluggable byte caches for the rendering engine.
//
// Two process-lifetime caches back the engine: the font cache (downloaded
// font assets, persisted across restarts) and the render cache (encoded
// pixel output keyed by slide content hash). Both speak the same Cache
// interface so callers can swap file, memory, Redis, or null backends
// without touching engine code.
//
// Cache entries never invalidate themselves based on document changes;
// keys are content hashes, so a mutated slide simply produces a new key.
// Explicit eviction goes through Delete.
package cache

import (
	"context"
	"time"
)

// TTL values for the different cache namespaces.
const (
	// TTLFont is the time-to-live for downloaded font assets.
	// Fonts are immutable per URL, so entries never expire.
	TTLFont = time.Duration(0)

	// TTLImage is the time-to-live for fetched remote image bytes.
	TTLImage = 24 * time.Hour

	// TTLRender is the time-to-live for rendered slide output.
	// Keys are content hashes, so entries never go stale; they are
	// only dropped under explicit eviction.
	TTLRender = time.Duration(0)
)

// Cache is the storage interface shared by all backends.
//
// Implementations must be safe for concurrent readers with a single
// writer per key; Get must never observe a partially written entry.
type Cache interface {
	// Get retrieves a value. The second return value reports whether
	// the key was present (and fresh, for TTL-aware backends).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
