package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

// RedisQueryCache implements QueryCache using Redis.
// This is suitable for deployments where several instances share the cache.
type RedisQueryCache struct {
	client    *redis.Client
	keyPrefix string
	scanCount int64
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisQueryCache connects to Redis and verifies the connection
func NewRedisQueryCache(cfg RedisConfig, keyPrefix string) (*RedisQueryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisQueryCacheWithClient(client, keyPrefix), nil
}

// NewRedisQueryCacheWithClient creates a cache with an existing Redis client
func NewRedisQueryCacheWithClient(client *redis.Client, keyPrefix string) *RedisQueryCache {
	return &RedisQueryCache{
		client:    client,
		keyPrefix: keyPrefix,
		scanCount: 200,
	}
}

// Get decodes the cached JSON value into dest. redis.Nil is a miss.
func (c *RedisQueryCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	b, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set stores value as JSON with ttl. A non-positive ttl is a no-op.
func (c *RedisQueryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, b, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes keys
func (c *RedisQueryCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.keyPrefix + k
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// DeletePrefix removes every key under prefix using SCAN, never KEYS
func (c *RedisQueryCache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+prefix+"*", c.scanCount).Iterator()
	batch := make([]string, 0, c.scanCount)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if int64(len(batch)) >= c.scanCount {
			if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("redis unlink: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan %s: %w", prefix, err)
	}
	if len(batch) > 0 {
		if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis unlink: %w", err)
		}
	}
	return nil
}

// Ping checks the Redis connection
func (c *RedisQueryCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (c *RedisQueryCache) Close() error {
	return c.client.Close()
}

var _ shared.QueryCache = (*RedisQueryCache)(nil)
