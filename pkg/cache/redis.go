package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces artifact keys in a shared Redis.
const DefaultRedisPrefix = "gridtable:cache:"

// RedisCache stores artifacts in Redis. Connection failures are retried
// with [RetryWithBackoff].
type RedisCache struct {
	client redis.UniversalClient
	prefix string
	owned  bool
}

// NewRedisCache wraps an existing client. Close does not close it.
func NewRedisCache(client redis.UniversalClient, prefix string) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisCache{client: client, prefix: prefix}
}

// DialRedisCache connects to the Redis server at addr and checks that it
// answers.
func DialRedisCache(ctx context.Context, addr string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrNetwork, addr, err)
	}
	c := NewRedisCache(client, "")
	c.owned = true
	return c, nil
}

// Get retrieves a value. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	var hit bool
	err := RetryWithBackoff(ctx, func() error {
		b, err := c.client.Get(ctx, c.prefix+key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			return nil
		case err != nil:
			return netErr(err)
		}
		data, hit = b, true
		return nil
	})
	return data, hit, err
}

// Set stores a value. A ttl of zero keeps it until evicted.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return RetryWithBackoff(ctx, func() error {
		return netErr(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
	})
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return RetryWithBackoff(ctx, func() error {
		return netErr(c.client.Del(ctx, c.prefix+key).Err())
	})
}

// DeletePrefix removes every key starting with prefix (after the cache's
// own namespace).
func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) error {
	return RetryWithBackoff(ctx, func() error {
		iter := c.client.Scan(ctx, 0, c.prefix+prefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
				return netErr(err)
			}
		}
		return netErr(iter.Err())
	})
}

// Close closes the client if the cache created it.
func (c *RedisCache) Close() error {
	if c.owned {
		return c.client.Close()
	}
	return nil
}

func netErr(err error) error {
	if err == nil {
		return nil
	}
	return Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
}

var (
	_ Cache         = (*RedisCache)(nil)
	_ PrefixDeleter = (*RedisCache)(nil)
)
