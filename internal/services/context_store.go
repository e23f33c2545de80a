package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"jarvis/internal/cache"
	"jarvis/internal/models"
	"jarvis/internal/repositories"
)

// ContextService is the read/write surface handed to tools and handlers.
type ContextService interface {
	Get(ctx context.Context, key string) (models.Fields, bool, error)
	Set(ctx context.Context, key string, data models.Payload) (models.Fields, error)
	Delete(ctx context.Context, key string) error
	Record(ctx context.Context, key string) (*models.ContextRecord, error)
}

const keyLockStripes = 64

// ContextStore composes the repository and a cache with write-through
// semantics: the database is written first and the cache only mirrors
// committed values. Writes to the same key are serialized within the process
// so cache updates land in commit order. Concurrent read misses for one key
// share a single repository lookup.
type ContextStore struct {
	repo   repositories.ContextRepository
	cache  cache.Cache
	logger *slog.Logger

	misses singleflight.Group
	locks  [keyLockStripes]sync.Mutex
}

func NewContextStore(repo repositories.ContextRepository, c cache.Cache, logger *slog.Logger) *ContextStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContextStore{
		repo:   repo,
		cache:  c,
		logger: logger.With("component", "context_store", "cache", c.Name()),
	}
}

func (s *ContextStore) lock(key string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	mu := &s.locks[h.Sum32()%keyLockStripes]
	mu.Lock()
	return mu.Unlock
}

type lookup struct {
	fields models.Fields
	found  bool
}

// Get serves key from the cache, falling back to the repository and
// populating the cache on a miss. Unknown keys report found == false, and so
// do keys that could never have been stored.
func (s *ContextStore) Get(ctx context.Context, key string) (models.Fields, bool, error) {
	if models.ValidateKey(key) != nil {
		return nil, false, nil
	}

	fields, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed, falling back to database", "key", key, "error", err)
	} else if ok {
		return fields, true, nil
	}

	// the shared lookup outlives any single caller; each caller only waits
	// on its own ctx
	shared := context.WithoutCancel(ctx)
	ch := s.misses.DoChan(key, func() (any, error) {
		// holding the key lock keeps a concurrent Set from being overwritten
		// by the value read here
		unlock := s.lock(key)
		defer unlock()

		fields, found, err := s.repo.Get(shared, key)
		if err != nil {
			return nil, err
		}
		if !found {
			return lookup{}, nil
		}
		if err := s.cache.Set(shared, key, fields); err != nil {
			s.logger.Warn("cache populate failed", "key", key, "error", err)
		}
		return lookup{fields: fields, found: true}, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, fmt.Errorf("load context %q: %w", key, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, false, fmt.Errorf("load context %q: %w", key, res.Err)
		}
		l := res.Val.(lookup)
		return l.fields.Clone(), l.found, nil
	}
}

// Set persists the recognized fields of data and then mirrors them into the
// cache. When the database rejects the write the cache is left untouched.
func (s *ContextStore) Set(ctx context.Context, key string, data models.Payload) (models.Fields, error) {
	if err := models.ValidateKey(key); err != nil {
		return nil, err
	}
	fields, err := models.Project(data)
	if err != nil {
		return nil, err
	}
	if unknown := models.UnknownKeys(data); len(unknown) > 0 {
		s.logger.Debug("dropping unrecognized context fields", "key", key, "fields", unknown)
	}

	unlock := s.lock(key)
	defer unlock()

	if err := s.repo.Set(ctx, key, fields.Payload()); err != nil {
		return nil, fmt.Errorf("persist context %q: %w", key, err)
	}
	if err := s.cache.Set(ctx, key, fields); err != nil {
		s.logger.Warn("cache write failed after commit, invalidating", "key", key, "error", err)
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Error("cache invalidation failed, entry may be stale", "key", key, "error", err)
		}
	}
	return fields.Clone(), nil
}

// Delete removes key from the repository and then from the cache. Deleting a
// key that was never stored is a no-op.
func (s *ContextStore) Delete(ctx context.Context, key string) error {
	if models.ValidateKey(key) != nil {
		return nil
	}

	unlock := s.lock(key)
	defer unlock()

	if err := s.repo.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete context %q: %w", key, err)
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("invalidate cached context %q: %w", key, err)
	}
	return nil
}

// Record reads the full row, timestamps included, straight from the repository.
// It returns nil when no row exists.
func (s *ContextStore) Record(ctx context.Context, key string) (*models.ContextRecord, error) {
	if models.ValidateKey(key) != nil {
		return nil, nil
	}
	return s.repo.Record(ctx, key)
}

// CacheName reports which cache variant was selected at startup.
func (s *ContextStore) CacheName() string {
	return s.cache.Name()
}
