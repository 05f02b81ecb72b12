package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// AdCachePrefix is the shared key prefix for cached public ad responses.
// Invalidation always clears the whole prefix: ads embed product and image
// data transitively, so tracking per-key dependencies is not worth it.
const AdCachePrefix = "ads_cache:"

// CacheStore is the key-value surface the app needs from Redis. Token
// blacklisting and reset tokens go through it too, so tests can swap in
// an in-memory implementation.
type CacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (rc *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return rc.client.Get(ctx, key).Result()
}

func (rc *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return rc.client.Set(ctx, key, value, ttl).Err()
}

func (rc *RedisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return rc.client.Del(ctx, keys...).Err()
}

func (rc *RedisCache) DeletePattern(ctx context.Context, pattern string) error {
	keys, err := rc.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	return rc.Del(ctx, keys...)
}

var cacheStore CacheStore

func SetCache(store CacheStore) {
	cacheStore = store
}

func GetCache() CacheStore {
	return cacheStore
}

// InvalidateAdCache drops every cached public ad response. Callers must
// invoke it only after the database write has committed, so a concurrent
// read cannot repopulate the cache with pre-write data.
func InvalidateAdCache(ctx context.Context) {
	if cacheStore == nil {
		return
	}
	if err := cacheStore.DeletePattern(ctx, AdCachePrefix+"*"); err != nil {
		LogError(err, "invalidate ad cache")
	}
}
