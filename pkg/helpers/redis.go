package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client. Short timeouts keep a slow
// Redis from stalling requests; callers treat Redis as optional.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}

// JSONCache stores JSON values under a key prefix with a fixed TTL.
// A nil *JSONCache is a valid, always-missing cache.
type JSONCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewJSONCache returns nil when rdb is nil or ttl is not positive.
func NewJSONCache(rdb *redis.Client, prefix string, ttl time.Duration) *JSONCache {
	if rdb == nil || ttl <= 0 {
		return nil
	}
	return &JSONCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *JSONCache) Key(key string) string { return c.prefix + key }

// Get decodes key into dest. The boolean is false on a miss.
func (c *JSONCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	res, err := c.rdb.Get(ctx, c.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(res, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *JSONCache) Set(ctx context.Context, key string, value any) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.Key(key), b, c.ttl).Err()
}
