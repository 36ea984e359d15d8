// Package rediscache caches per-user favored lists as JSON in Redis.
package rediscache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-finances/internal/application/favored"
	"github.com/oksasatya/go-finances/pkg/helpers"
)

type FavoredListCache struct {
	Redis redis.Cmdable
	TTL   time.Duration
}

func NewFavoredListCache(rdb redis.Cmdable, ttl time.Duration) *FavoredListCache {
	return &FavoredListCache{Redis: rdb, TTL: ttl}
}

func FavoredListKey(ownerUserID string) string {
	return "favoreds:list:" + ownerUserID
}

func (c *FavoredListCache) Get(ctx context.Context, ownerUserID string) ([]favored.View, bool, error) {
	var views []favored.View
	ok, err := helpers.RedisGetJSON(ctx, c.Redis, FavoredListKey(ownerUserID), &views)
	if err != nil || !ok {
		return nil, false, err
	}
	if views == nil {
		views = []favored.View{}
	}
	return views, true, nil
}

func (c *FavoredListCache) Set(ctx context.Context, ownerUserID string, views []favored.View) error {
	return helpers.RedisSetJSON(ctx, c.Redis, FavoredListKey(ownerUserID), views, c.TTL)
}

func (c *FavoredListCache) Invalidate(ctx context.Context, ownerUserID string) error {
	return helpers.RedisDel(ctx, c.Redis, FavoredListKey(ownerUserID))
}
