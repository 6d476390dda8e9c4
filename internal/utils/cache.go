package utils

import (
	"context" // Context for Redis operations
	"errors"  // Cache miss detection
	"time"    // Time durations

	"github.com/go-redis/cache/v9" // Msgpack cache over Redis
	"github.com/redis/go-redis/v9" // Redis client
)

// RedisCache stores query results in Redis
type RedisCache struct {
	instance *cache.Cache
}

// NewRedisCache creates a cache on top of the Redis client
// localSize > 0 adds an in-process TinyLFU layer holding that many keys for up to a minute
func NewRedisCache(rdb redis.UniversalClient, localSize int) *RedisCache {
	var local cache.LocalCache
	if localSize > 0 {
		local = cache.NewTinyLFU(localSize, time.Minute)
	}
	return &RedisCache{instance: cache.New(&cache.Options{
		Redis:      rdb,
		LocalCache: local,
	})}
}

// Get retrieves a value from Redis into dest and reports whether the key existed
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	err := c.instance.Get(ctx, key, dest) // Decode value into dest
	if errors.Is(err, cache.ErrCacheMiss) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, nil
}

// Set stores a value in Redis with a specified TTL
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return c.instance.Set(&cache.Item{
		Ctx:   ctx,
		Key:   key,
		Value: value,
		TTL:   ttl,
	})
}
