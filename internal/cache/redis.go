package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jarvis/internal/models"
)

// RedisConfig configures the networked cache variant.
type RedisConfig struct {
	// URL is a redis:// or rediss:// connection string.
	URL    string
	Prefix string
	// TTL bounds how long an entry may serve reads. Zero disables expiry.
	TTL time.Duration
}

// RedisCache stores JSON-encoded fields under "<prefix>:<context key>".
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache connects to cfg.URL and verifies the connection with a ping.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{
		client: client,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
	}, nil
}

func (r *RedisCache) Name() string {
	return "redis"
}

func (r *RedisCache) key(contextKey string) string {
	return r.prefix + ":" + contextKey
}

func (r *RedisCache) Get(ctx context.Context, key string) (models.Fields, bool, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	fields := models.Fields{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, false, fmt.Errorf("decode cached context %q: %w", key, err)
	}
	return fields, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, fields models.Fields) error {
	if fields == nil {
		fields = models.Fields{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(key), data, r.ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
