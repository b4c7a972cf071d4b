// Package cache is a thin JSON cache over Redis for the read-heavy
// directory views. A cache failure never fails a read; callers fall
// through to the database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"ms-booking/internal/logger"
)

// Cache keys for the directory views.
const (
	KeyVenueDirectory = "directory:venues"
	KeyArtistRoster   = "directory:artists"
)

type Cache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *logger.Logger
}

func New(client *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{Client: client, TTL: ttl, Logger: log}
}

// Get unmarshals the cached value for key into dest. It reports
// whether the key was present and readable.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	raw, err := c.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.Logger.Warn("CACHE", fmt.Sprintf("get %s failed: %v", key, err))
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		c.Logger.Warn("CACHE", fmt.Sprintf("corrupt entry at %s: %v", key, err))
		return false
	}
	return true
}

// Set stores value under key for the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.Logger.Warn("CACHE", fmt.Sprintf("marshal for %s failed: %v", key, err))
		return
	}
	if err := c.Client.Set(ctx, key, raw, c.TTL).Err(); err != nil {
		c.Logger.Warn("CACHE", fmt.Sprintf("set %s failed: %v", key, err))
	}
}

// Invalidate drops the given keys after a mutation.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.Client.Del(ctx, keys...).Err(); err != nil {
		c.Logger.Warn("CACHE", fmt.Sprintf("invalidate %v failed: %v", keys, err))
	}
}
