package services

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"jarvis/internal/config"
	"jarvis/internal/database"
	"jarvis/internal/models"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestInitContextStore_RequiresDatabaseURL(t *testing.T) {
	store, closeFn, err := InitContextStore(context.Background(), &config.Settings{RedisURL: "redis://unused"}, nil)
	assert.ErrorIs(t, err, database.ErrDatabaseURLRequired)
	assert.Nil(t, store)
	assert.Nil(t, closeFn)
}

func TestInitContextStore_FallsBackToMemoryCache(t *testing.T) {
	log, buf := bufferLogger()

	store, closeFn, err := initContextStore(context.Background(), &config.Settings{DatabaseURL: ":memory:"}, log, logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	assert.Equal(t, "memory", store.CacheName())
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "REDIS_URL not set")

	_, err = store.Set(context.Background(), "s1", models.Payload{"user_name": "alice"})
	require.NoError(t, err)
	fields, found, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, models.Fields{"user_name": "alice"}, fields)
}

func TestInitContextStore_UsesRedisWhenConfigured(t *testing.T) {
	mr := miniredis.RunT(t)
	log, buf := bufferLogger()

	store, closeFn, err := initContextStore(context.Background(), &config.Settings{
		DatabaseURL: ":memory:",
		RedisURL:    "redis://" + mr.Addr(),
	}, log, logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	assert.Equal(t, "redis", store.CacheName())
	assert.NotContains(t, buf.String(), "level=WARN")

	_, err = store.Set(context.Background(), "s1", models.Payload{"repo_name": "jarvis-repo"})
	require.NoError(t, err)
	assert.True(t, mr.Exists("jarvis_ctx:s1"))
}

func TestInitContextStore_UnreachableRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := initContextStore(context.Background(), &config.Settings{
		DatabaseURL: ":memory:",
		RedisURL:    "redis://" + addr,
	}, nil, logger.Silent)
	assert.ErrorContains(t, err, "failed to connect to redis")
}
