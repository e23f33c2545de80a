package integration_tests

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/config"
	"jarvis/internal/models"
	"jarvis/internal/services"
	"jarvis/internal/utils"
)

func openStore(t *testing.T, settings *config.Settings) (*services.ContextStore, func() error) {
	t.Helper()
	store, closeFn, err := services.InitContextStore(context.Background(), settings, utils.DiscardLogger())
	require.NoError(t, err)
	return store, closeFn
}

// TestContextStore_SurvivesRestart writes through redis into a sqlite file,
// drops the cache, reopens everything and reads the context back.
func TestContextStore_SurvivesRestart(t *testing.T) {
	mr := miniredis.RunT(t)
	settings := &config.Settings{
		DatabaseURL: "sqlite://" + filepath.Join(t.TempDir(), "jarvis.db"),
		RedisURL:    "redis://" + mr.Addr(),
		CacheTTL:    time.Hour,
	}
	ctx := context.Background()

	store, closeFn := openStore(t, settings)
	_, err := store.Set(ctx, "session-1", models.Payload{"user_id": "alice", "repo_name": "jarvis", "jira_number": "JARVIS-7"})
	require.NoError(t, err)

	raw, err := mr.Get("jarvis_ctx:session-1")
	require.NoError(t, err)
	var cached map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, map[string]string{"user_name": "alice", "repo_name": "jarvis", "jira_number": "JARVIS-7"}, cached)
	assert.Equal(t, time.Hour, mr.TTL("jarvis_ctx:session-1"))
	require.NoError(t, closeFn())

	mr.FlushAll()

	store, closeFn = openStore(t, settings)
	t.Cleanup(func() { _ = closeFn() })

	fields, found, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, models.Fields{"user_name": "alice", "repo_name": "jarvis", "jira_number": "JARVIS-7"}, fields)
	assert.True(t, mr.Exists("jarvis_ctx:session-1"), "read miss repopulates the cache")

	require.NoError(t, store.Delete(ctx, "session-1"))
	assert.False(t, mr.Exists("jarvis_ctx:session-1"))
	_, found, err = store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.False(t, found)
}

// TestContextStore_ConcurrentSessions drives several sessions in parallel and
// checks every final read matches the last committed write.
func TestContextStore_ConcurrentSessions(t *testing.T) {
	mr := miniredis.RunT(t)
	store, closeFn := openStore(t, &config.Settings{
		DatabaseURL: "sqlite://" + filepath.Join(t.TempDir(), "jarvis.db"),
		RedisURL:    "redis://" + mr.Addr(),
	})
	t.Cleanup(func() { _ = closeFn() })
	ctx := context.Background()

	sessions := []string{"a", "b", "c", "d"}
	var wg sync.WaitGroup
	for _, s := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				_, err := store.Set(ctx, s, models.Payload{"user_name": s, "jira_number": fmt.Sprintf("%s-%d", s, i)})
				assert.NoError(t, err)
				_, _, err = store.Get(ctx, s)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	for _, s := range sessions {
		fields, found, err := store.Get(ctx, s)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, models.Fields{"user_name": s, "jira_number": s + "-9"}, fields)

		rec, err := store.Record(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, fields, rec.Fields())
	}
}
