package services

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm/logger"

	"jarvis/internal/cache"
	"jarvis/internal/config"
	"jarvis/internal/database"
	"jarvis/internal/repositories"
)

// InitContextStore opens the database, selects the cache variant and returns
// the write-through store together with a func that releases both. Call it
// once at startup; the cache choice is not revisited.
func InitContextStore(ctx context.Context, settings *config.Settings, log *slog.Logger) (*ContextStore, func() error, error) {
	return initContextStore(ctx, settings, log, 0)
}

func initContextStore(ctx context.Context, settings *config.Settings, log *slog.Logger, level logger.LogLevel) (*ContextStore, func() error, error) {
	if log == nil {
		log = slog.Default()
	}

	db, err := database.Init(database.Config{
		URL:      settings.DatabaseURL,
		LogLevel: level,
		Logger:   log,
	})
	if err != nil {
		return nil, nil, err
	}

	var c cache.Cache
	if settings.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			URL:    settings.RedisURL,
			Prefix: cache.DefaultPrefix,
			TTL:    settings.CacheTTL,
		})
		if err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
		c = rc
		log.Info("context store: database + redis cache", "prefix", cache.DefaultPrefix)
	} else {
		c = cache.NewMemoryCache(settings.CacheTTL)
		log.Warn("REDIS_URL not set, using in-process cache (dev mode only)")
	}

	store := NewContextStore(repositories.NewContextRepository(db), c, log)
	closeFn := func() error {
		return errors.Join(c.Close(), database.Close(db))
	}
	return store, closeFn, nil
}
