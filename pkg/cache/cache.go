// Package cache keeps decode results in Redis. Without a Redis address a
// no-op cache is used, and Redis failures only cost a log line.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/ssargent/mapcode/pkg/logger"
)

// Cache stores JSON values by key.
type Cache interface {
	// Get decodes the value at key into v and reports whether it was found.
	Get(ctx context.Context, key string, v any) bool
	// Set stores v at key.
	Set(ctx context.Context, key string, v any)
	Close() error
}

// Key builds the key of a decode of input under a context territory.
func Key(context, input string) string {
	return "mc:" + context + ":" + input
}

// New returns a Redis cache for addr, or a no-op cache when addr is empty.
func New(addr, password string, db int, ttl time.Duration) Cache {
	if addr == "" {
		return Noop{}
	}
	logger.L().Debug("redis_cache", "addr", addr, "db", db, "ttl", ttl.String())
	return NewRedis(redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}), ttl)
}

// Redis is a Cache on a go-redis client.
type Redis struct {
	rc  *redis.Client
	ttl time.Duration
}

// NewRedis wraps rc. A ttl of zero keeps entries until evicted.
func NewRedis(rc *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rc: rc, ttl: ttl}
}

func (c *Redis) Get(ctx context.Context, key string, v any) bool {
	s, err := c.rc.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		logger.L().Warn("cache_get_failed", "key", key, "err", err)
		return false
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		logger.L().Warn("cache_entry_invalid", "key", key, "err", err)
		return false
	}
	return true
}

func (c *Redis) Set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.L().Warn("cache_encode_failed", "key", key, "err", err)
		return
	}
	if err := c.rc.Set(ctx, key, string(b), c.ttl).Err(); err != nil {
		logger.L().Warn("cache_set_failed", "key", key, "err", err)
	}
}

// Ping checks the connection.
func (c *Redis) Ping(ctx context.Context) error {
	return c.rc.Ping(ctx).Err()
}

func (c *Redis) Close() error { return c.rc.Close() }

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, any) bool { return false }
func (Noop) Set(context.Context, string, any)      {}
func (Noop) Close() error                          { return nil }
