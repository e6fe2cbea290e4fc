package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/foodgram/pkg/logger"
)

const shortLinkKeyPrefix = "foodgram:shortlink:"

// RedisShortLinkCache implements domain.ShortLinkCache with Redis
type RedisShortLinkCache struct {
	client *redis.Client
}

// NewRedisShortLinkCache creates a short link cache on client
func NewRedisShortLinkCache(client *redis.Client) *RedisShortLinkCache {
	return &RedisShortLinkCache{client: client}
}

func shortLinkKey(token string) string {
	return shortLinkKeyPrefix + token
}

// Get returns the cached recipe id; a miss is (0, false, nil)
func (c *RedisShortLinkCache) Get(ctx context.Context, token string) (uint, bool, error) {
	val, err := c.client.Get(ctx, shortLinkKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		logger.Debug(ctx).Str("token", token).Msg("Short link cache miss")
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read short link cache: %w", err)
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		// corrupt entry, drop it and fall back to the database
		c.client.Del(ctx, shortLinkKey(token))
		return 0, false, nil
	}
	logger.Debug(ctx).Str("token", token).Msg("Short link cache hit")
	return uint(id), true, nil
}

// Set caches the recipe id of token for ttl
func (c *RedisShortLinkCache) Set(ctx context.Context, token string, recipeID uint, ttl time.Duration) error {
	if err := c.client.Set(ctx, shortLinkKey(token), strconv.FormatUint(uint64(recipeID), 10), ttl).Err(); err != nil {
		return fmt.Errorf("failed to write short link cache: %w", err)
	}
	return nil
}

// Delete evicts token
func (c *RedisShortLinkCache) Delete(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, shortLinkKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to evict short link cache: %w", err)
	}
	return nil
}

// NoopShortLinkCache is used when Redis is not configured
type NoopShortLinkCache struct{}

// Get always misses
func (NoopShortLinkCache) Get(context.Context, string) (uint, bool, error) { return 0, false, nil }

func (NoopShortLinkCache) Set(context.Context, string, uint, time.Duration) error { return nil }

func (NoopShortLinkCache) Delete(context.Context, string) error { return nil }
