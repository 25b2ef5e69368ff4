package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tokogitar/tokogitar/internal/config"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisPrefix string
)

// InitRedis initializes the Redis client. A nil or disabled config
// leaves the package inert; every helper then degrades to a no-op.
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		redisClient = nil
		return nil
	}

	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	redisPrefix = strings.TrimSpace(cfg.Prefix)
	if redisPrefix == "" {
		redisPrefix = "tg"
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return nil
}

// Enabled reports whether caching is active.
func Enabled() bool {
	return redisClient != nil
}

// Client returns the Redis client, nil when disabled.
func Client() *redis.Client {
	return redisClient
}

// Close shuts down the Redis connection.
func Close() error {
	if redisClient == nil {
		return nil
	}
	err := redisClient.Close()
	redisClient = nil
	return err
}

// GetJSON reads a cached JSON value into dest. The bool reports a hit.
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !Enabled() {
		return false, nil
	}
	val, err := redisClient.Get(ctx, buildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON writes a JSON value with a TTL.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return redisClient.Set(ctx, buildKey(key), payload, ttl).Err()
}

// Del removes cached values.
func Del(ctx context.Context, keys ...string) error {
	if !Enabled() || len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, buildKey(key))
	}
	return redisClient.Del(ctx, prefixed...).Err()
}

func buildKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return redisPrefix
	}
	return redisPrefix + ":" + trimmed
}
