package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets map[string]string

func (f fakeSecrets) Secret(name string) (string, error) {
	if v, ok := f[name]; ok {
		return v, nil
	}
	return "", errors.New("secret not found")
}

// clearEnv unsets every jarvis variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envNames {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
}

func emptyEnvFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	s, err := Load(emptyEnvFile(t), nil)
	require.NoError(t, err)
	assert.Empty(t, s.DatabaseURL)
	assert.Empty(t, s.RedisURL)
	assert.Equal(t, time.Duration(0), s.CacheTTL)
	assert.Equal(t, "127.0.0.1:8080", s.HTTPAddr)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, []string{"joke_agent", "weather_agent"}, s.BatchAgents)
	assert.Equal(t, 4, s.BatchConcurrency)
	assert.False(t, s.UseKeyring)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("JARVIS_DATABASE_URL", "postgres://jarvis@db/jarvis")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("JARVIS_CACHE_TTL", "15m")
	t.Setenv("JARVIS_AGENT_RUNTIME_URL", "http://runtime:9000/")
	t.Setenv("JARVIS_BATCH_AGENTS", " joke_agent , , summary_agent")
	t.Setenv("JARVIS_BATCH_CONCURRENCY", "0")

	s, err := Load(emptyEnvFile(t), nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://jarvis@db/jarvis", s.DatabaseURL)
	assert.Equal(t, "redis://cache:6379/0", s.RedisURL)
	assert.Equal(t, 15*time.Minute, s.CacheTTL)
	assert.Equal(t, "http://runtime:9000", s.AgentRuntimeURL)
	assert.Equal(t, []string{"joke_agent", "summary_agent"}, s.BatchAgents)
	assert.Equal(t, 1, s.BatchConcurrency)
}

func TestLoad_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JARVIS_DATABASE_URL=sqlite://from-file.db\nREDIS_URL=redis://file:6379\n"), 0o600))
	t.Setenv("REDIS_URL", "redis://env:6379")

	s, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite://from-file.db", s.DatabaseURL)
	assert.Equal(t, "redis://env:6379", s.RedisURL)
}

func TestLoad_MissingExplicitEnvFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"), nil)
	assert.ErrorContains(t, err, "load env file")
}

func TestLoad_NegativeTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("JARVIS_CACHE_TTL", "-1m")
	_, err := Load(emptyEnvFile(t), nil)
	assert.ErrorContains(t, err, "JARVIS_CACHE_TTL")
}

func TestLoad_MalformedTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("JARVIS_CACHE_TTL", "10 minutes")
	_, err := Load(emptyEnvFile(t), nil)
	assert.ErrorContains(t, err, "JARVIS_CACHE_TTL")
}

func TestLoad_BareZeroTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("JARVIS_CACHE_TTL", "0")
	s, err := Load(emptyEnvFile(t), nil)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), s.CacheTTL)
}

func TestLoad_KeyringFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("JARVIS_USE_KEYRING", "true")

	s, err := Load(emptyEnvFile(t), fakeSecrets{KeyDatabaseURL: "postgres://from-keyring/jarvis"})
	require.NoError(t, err)
	assert.Equal(t, "postgres://from-keyring/jarvis", s.DatabaseURL)

	s, err = Load(emptyEnvFile(t), fakeSecrets{})
	require.NoError(t, err)
	assert.Empty(t, s.DatabaseURL)
}

func TestLoad_KeyringIgnoredWhenDisabled(t *testing.T) {
	clearEnv(t)

	s, err := Load(emptyEnvFile(t), fakeSecrets{KeyDatabaseURL: "postgres://from-keyring/jarvis"})
	require.NoError(t, err)
	assert.Empty(t, s.DatabaseURL)
}
