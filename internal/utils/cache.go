package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// GetCache retrieves a value from Redis and unmarshals it into dest.
// A nil client behaves like an empty cache.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil // Caching disabled
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil // Caching disabled
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// GetCounter reads an integer counter; a missing key reads as 0.
// ok is false when caching is disabled or Redis cannot be reached.
func GetCounter(ctx context.Context, rdb *redis.Client, key string) (n int64, ok bool) {
	if rdb == nil {
		return 0, false // Caching disabled
	}
	n, err := rdb.Get(ctx, key).Int64() // Read counter
	if err == redis.Nil {
		return 0, true // Never bumped
	} else if err != nil {
		return 0, false // Redis unavailable or value corrupt
	}
	return n, true
}

// BumpCounter increments a counter and refreshes its TTL
func BumpCounter(ctx context.Context, rdb *redis.Client, key string, ttl time.Duration) error {
	if rdb == nil {
		return nil // Caching disabled
	}
	if err := rdb.Incr(ctx, key).Err(); err != nil {
		return err
	}
	return rdb.Expire(ctx, key, ttl).Err() // Keep the counter alive longer than any entry keyed on it
}
