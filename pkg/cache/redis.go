package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Writes get one quick second chance; reads sit on the request path and
// fall back to rendering at the first failure.
const (
	writeAttempts = 2
	writePause    = 50 * time.Millisecond
)

// redisClient is the part of *redis.Client the cache uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// RedisCache stores entries in Redis. It is meant for the API server, where
// several processes share results.
type RedisCache struct {
	client redisClient
	pause  time.Duration
}

// NewRedisCache connects to the Redis server at url, for example
// "redis://localhost:6379/0", and verifies the connection.
func NewRedisCache(ctx context.Context, url string) (Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, backendError("ping", opts.Addr, err)
	}
	return &RedisCache{client: client, pause: writePause}, nil
}

// Get retrieves a value from Redis. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, backendError("get", key, err)
	}
	return data, true, nil
}

// Set stores a value in Redis, retrying a failed write once.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return retry(ctx, writeAttempts, c.pause, func() error {
		if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
			return backendError("set", key, err)
		}
		return nil
	})
}

// Delete removes a value from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return backendError("del", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
