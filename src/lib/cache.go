package lib

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var Cache *redis.Client

// ConnectCache initializes the Redis client. The cache is optional: if Redis
// is unreachable the application keeps running without it.
func ConnectCache(addr string) {
	Cache = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Cache.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		Cache = nil
	} else {
		log.Println("Redis connected successfully")
	}
}

// CacheGetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func CacheGetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if Cache == nil {
		return false, nil
	}
	s, err := Cache.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// CacheSetJSON marshals v and sets the key with TTL.
func CacheSetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if Cache == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return Cache.Set(ctx, key, b, ttl).Err()
}

// CacheAside tries Redis first, on miss it calls fetch (which should populate dest),
// then stores the result in Redis with ttl. fetch must write into dest.
func CacheAside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := CacheGetJSON(ctx, key, dest)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = CacheSetJSON(ctx, key, dest, ttl)
	return nil
}

// CacheInvalidate removes keys from the cache, best-effort.
func CacheInvalidate(ctx context.Context, keys ...string) {
	if Cache == nil || len(keys) == 0 {
		return
	}
	if err := Cache.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Cache invalidation warning: %v", err)
	}
}
