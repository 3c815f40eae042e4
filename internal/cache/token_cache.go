// Package cache keeps a short-lived token -> user id mapping in front of the
// tokens table.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"kanmind/internal/logger"
)

type TokenCache interface {
	// Get returns ok == false on a miss.
	Get(ctx context.Context, key string) (userID uint, ok bool, err error)
	Set(ctx context.Context, key string, userID uint) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NopTokenCache always misses. It is used when no Redis URL is configured.
type NopTokenCache struct{}

func (NopTokenCache) Get(context.Context, string) (uint, bool, error) { return 0, false, nil }
func (NopTokenCache) Set(context.Context, string, uint) error         { return nil }
func (NopTokenCache) Delete(context.Context, string) error            { return nil }
func (NopTokenCache) Close() error                                    { return nil }

type RedisTokenCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ TokenCache = (*RedisTokenCache)(nil)

// NewRedisTokenCache connects to url and pings it before returning.
func NewRedisTokenCache(url string, ttl time.Duration) (*RedisTokenCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	logger.Info("Redis token cache connected", "addr", opt.Addr, "ttl", ttl.String())

	return newRedisTokenCache(rdb, ttl), nil
}

func newRedisTokenCache(rdb *redis.Client, ttl time.Duration) *RedisTokenCache {
	return &RedisTokenCache{rdb: rdb, ttl: ttl}
}

func (c *RedisTokenCache) Get(ctx context.Context, key string) (uint, bool, error) {
	val, err := c.rdb.Get(ctx, cacheKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return uint(id), true, nil
}

func (c *RedisTokenCache) Set(ctx context.Context, key string, userID uint) error {
	return c.rdb.Set(ctx, cacheKey(key), strconv.FormatUint(uint64(userID), 10), c.ttl).Err()
}

func (c *RedisTokenCache) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, cacheKey(key)).Err()
}

func (c *RedisTokenCache) Close() error {
	return c.rdb.Close()
}

// cacheKey hashes the token so raw credentials never land in Redis.
func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "kanmind:token:" + hex.EncodeToString(sum[:])
}
