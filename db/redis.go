package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis initializes the Redis client used for the degraded-mode cache
// and the event stream.
func InitRedis(addr, password string, dbNum int) error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       dbNum,
	})

	// Test connection
	if _, err := RedisClient.Ping(context.Background()).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return nil
}

// Cache is the local durable cache collaborator. It is never authoritative:
// reads fall back to it only when the record store is unreachable, and every
// recompute writes through so the fallback copy tracks the store.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache wraps a Redis client as a fallback cache.
func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb, ttl: 24 * time.Hour}
}

// Get returns the cached value for key, or "" when missing or Redis is down.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		log.Printf("Cache read failed for %s: %v", key, err)
		return "", false
	}
	return val, true
}

// Set stores a value write-through. Returns false on failure; callers treat
// the cache as best-effort and never propagate its errors.
func (c *Cache) Set(ctx context.Context, key, value string) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
		log.Printf("Cache write failed for %s: %v", key, err)
		return false
	}
	return true
}
