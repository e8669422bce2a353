package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// MacroCache implements macro.Cache using Redis. It keeps the last known
// index values so periods can still close while the feed is down.
type MacroCache struct {
	client *redis.Client
	prefix string
}

// NewMacroCache creates a new MacroCache.
func NewMacroCache(client *redis.Client) *MacroCache {
	return &MacroCache{
		client: client,
		prefix: "macro:",
	}
}

// Get retrieves a cached index value by key.
func (c *MacroCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, c.prefix+key).Result()
}

// Set stores an index value with TTL. A zero TTL keeps the value forever,
// which is what the stale-fallback path wants.
func (c *MacroCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}
