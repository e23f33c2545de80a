package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"jarvis/internal/utils"
)

const (
	KeyDatabaseURL      = "database_url"
	KeyRedisURL         = "redis_url"
	KeyCacheTTL         = "cache_ttl"
	KeyHTTPAddr         = "http_addr"
	KeyLogLevel         = "log_level"
	KeyAgentRuntimeURL  = "agent_runtime_url"
	KeyBatchAgents      = "batch_agents"
	KeyBatchConcurrency = "batch_concurrency"
	KeyUseKeyring       = "use_keyring"
)

// envNames maps each setting to the environment variable it is read from.
var envNames = map[string]string{
	KeyDatabaseURL:      "JARVIS_DATABASE_URL",
	KeyRedisURL:         "REDIS_URL",
	KeyCacheTTL:         "JARVIS_CACHE_TTL",
	KeyHTTPAddr:         "JARVIS_HTTP_ADDR",
	KeyLogLevel:         "JARVIS_LOG_LEVEL",
	KeyAgentRuntimeURL:  "JARVIS_AGENT_RUNTIME_URL",
	KeyBatchAgents:      "JARVIS_BATCH_AGENTS",
	KeyBatchConcurrency: "JARVIS_BATCH_CONCURRENCY",
	KeyUseKeyring:       "JARVIS_USE_KEYRING",
}

// Settings is resolved once at process start and passed down explicitly.
type Settings struct {
	DatabaseURL      string
	RedisURL         string
	CacheTTL         time.Duration
	HTTPAddr         string
	LogLevel         string
	AgentRuntimeURL  string
	BatchAgents      []string
	BatchConcurrency int
	UseKeyring       bool
}

// SecretSource resolves secrets that are not present in the environment.
type SecretSource interface {
	Secret(name string) (string, error)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyCacheTTL, "0s")
	v.SetDefault(KeyHTTPAddr, "127.0.0.1:8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyAgentRuntimeURL, "http://127.0.0.1:8000")
	v.SetDefault(KeyBatchAgents, "joke_agent,weather_agent")
	v.SetDefault(KeyBatchConcurrency, 4)
	v.SetDefault(KeyUseKeyring, false)
}

// Load reads envFile (see utils.LoadEnv) and then the process environment.
// secrets may be nil; it is only consulted for the database URL when
// JARVIS_USE_KEYRING is set and the variable itself is empty. A missing
// database URL is not an error here: commands that need the store fail when
// they initialize it.
func Load(envFile string, secrets SecretSource) (*Settings, error) {
	if err := utils.LoadEnv(envFile); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	v := viper.New()
	for key, env := range envNames {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}
	setDefaults(v)

	ttl, err := cast.ToDurationE(strings.TrimSpace(v.GetString(KeyCacheTTL)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", envNames[KeyCacheTTL], err)
	}

	s := &Settings{
		DatabaseURL:      strings.TrimSpace(v.GetString(KeyDatabaseURL)),
		RedisURL:         strings.TrimSpace(v.GetString(KeyRedisURL)),
		CacheTTL:         ttl,
		HTTPAddr:         v.GetString(KeyHTTPAddr),
		LogLevel:         v.GetString(KeyLogLevel),
		AgentRuntimeURL:  strings.TrimRight(v.GetString(KeyAgentRuntimeURL), "/"),
		BatchAgents:      splitList(v.GetString(KeyBatchAgents)),
		BatchConcurrency: v.GetInt(KeyBatchConcurrency),
		UseKeyring:       v.GetBool(KeyUseKeyring),
	}
	if s.CacheTTL < 0 {
		return nil, fmt.Errorf("%s must not be negative", envNames[KeyCacheTTL])
	}
	if s.BatchConcurrency < 1 {
		s.BatchConcurrency = 1
	}

	if s.DatabaseURL == "" && s.UseKeyring && secrets != nil {
		url, err := secrets.Secret(KeyDatabaseURL)
		if err != nil {
			slog.Warn("database url not found in keyring", "error", err)
		} else {
			s.DatabaseURL = strings.TrimSpace(url)
		}
	}
	return s, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
