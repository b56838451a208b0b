package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a [RedisCache].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache stores entries in Redis. Expiry is left to Redis.
type RedisCache struct {
	client *redis.Client
	addr   string
}

// NewRedisCache connects to Redis, retrying transient network failures a few
// times before giving up with an unavailable error.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	c := &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		addr: cfg.Addr,
	}
	if err := withRetry(ctx, func() error { return c.client.Ping(ctx).Err() }); err != nil {
		_ = c.client.Close()
		return nil, unavailable("redis", fmt.Errorf("connect %s: %w", cfg.Addr, err))
	}
	return c, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, c.wrap(err)
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.wrap(c.client.Set(ctx, key, data, ttl).Err())
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.wrap(c.client.Del(ctx, key).Err())
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.wrap(c.client.Ping(ctx).Err())
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// wrap marks network failures as outages and leaves command errors alone.
func (c *RedisCache) wrap(err error) error {
	if err == nil || !transient(err) {
		return err
	}
	return unavailable("redis", fmt.Errorf("%s: %w", c.addr, err))
}

var _ Cache = (*RedisCache)(nil)
