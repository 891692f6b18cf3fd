// Package rediscache keeps computed trending-tag lists in Redis
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"Murmur/internal/core/tags"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "murmur:trending"

// kv is the subset of *redis.Client the cache needs
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// TrendingCache implements tags.TrendingCache with JSON values and a fixed TTL
type TrendingCache struct {
	rdb kv
	ttl time.Duration
}

// NewTrendingCache wraps a go-redis client
func NewTrendingCache(rdb *redis.Client, ttl time.Duration) *TrendingCache {
	return &TrendingCache{rdb: rdb, ttl: ttl}
}

// Open connects to addr and verifies the connection with PING
func Open(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func trendingKey(take, days int) string {
	return fmt.Sprintf("%s:%d:%d", keyPrefix, take, days)
}

func (c *TrendingCache) Get(ctx context.Context, take, days int) ([]*tags.TrendingTag, bool, error) {
	raw, err := c.rdb.Get(ctx, trendingKey(take, days)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read trending cache: %w", err)
	}

	var trending []*tags.TrendingTag
	if err := json.Unmarshal(raw, &trending); err != nil {
		return nil, false, fmt.Errorf("failed to decode trending cache: %w", err)
	}
	if trending == nil {
		trending = []*tags.TrendingTag{}
	}
	return trending, true, nil
}

func (c *TrendingCache) Set(ctx context.Context, take, days int, trending []*tags.TrendingTag) error {
	raw, err := json.Marshal(trending)
	if err != nil {
		return fmt.Errorf("failed to encode trending cache: %w", err)
	}
	if err := c.rdb.Set(ctx, trendingKey(take, days), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write trending cache: %w", err)
	}
	return nil
}
