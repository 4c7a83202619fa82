package service

import (
	"context"
	"encoding/json"
	"time"

	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const courseCacheTTL = 10 * time.Minute

// Cache is a thin JSON cache on top of Redis. A nil client disables caching,
// so callers never have to branch on whether Redis is configured.
type Cache struct {
	Redis *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{Redis: rdb}
}

// Get loads the cached value for key into dest. Returns false on miss, on a
// disabled cache, or on any Redis error (errors are logged, not returned).
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.Redis == nil {
		return false
	}

	val, err := c.Redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logger.Log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		logger.Log.Warn("cached value is corrupt, dropping", zap.String("key", key), zap.Error(err))
		c.Redis.Del(ctx, key)
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil || c.Redis == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		logger.Log.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.Redis.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) Del(ctx context.Context, keys ...string) {
	if c == nil || c.Redis == nil || len(keys) == 0 {
		return
	}
	if err := c.Redis.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
