// Package cache holds the interchangeable accelerators that sit in front of
// the context repository. A Cache only ever stores a derived copy of a
// record; the database stays the source of truth.
package cache

import (
	"context"

	"jarvis/internal/models"
)

// DefaultPrefix namespaces context entries in a shared cache.
const DefaultPrefix = "jarvis_ctx"

// Cache is implemented by MemoryCache and RedisCache.
type Cache interface {
	// Name identifies the variant in logs.
	Name() string
	// Get reports a miss with ok == false and a nil error.
	Get(ctx context.Context, key string) (fields models.Fields, ok bool, err error)
	Set(ctx context.Context, key string, fields models.Fields) error
	// Delete is a no-op for keys that are not cached.
	Delete(ctx context.Context, key string) error
	Close() error
}
