// Package cache holds the redis-backed read cache for assembled item views.
// The cache is optional: with a nil client every operation is a no-op and
// reads fall through to the store.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"shareit/internal/pkg/config"
	"shareit/internal/usecase/queries"
)

func NewRedisClient(cfg config.RedisConfig) (*redis.Client, func(), error) {
	if !cfg.Enabled {
		return nil, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

type ItemViewCache struct {
	client  *redis.Client
	ttl     time.Duration
	slogger *slog.Logger
}

func NewItemViewCache(client *redis.Client, ttl time.Duration, slogger *slog.Logger) *ItemViewCache {
	return &ItemViewCache{client: client, ttl: ttl, slogger: slogger}
}

func (c *ItemViewCache) Get(ctx context.Context, itemID int64, ownerView bool) (*queries.ItemView, bool) {
	if c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, itemViewKey(itemID, ownerView)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.slogger.Warn("item view cache read failed", "error", err)
		}
		return nil, false
	}

	var view queries.ItemView
	if err := json.Unmarshal(data, &view); err != nil {
		c.slogger.Warn("item view cache entry corrupted", "error", err)
		return nil, false
	}
	return &view, true
}

func (c *ItemViewCache) Set(ctx context.Context, itemID int64, ownerView bool, view *queries.ItemView) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, itemViewKey(itemID, ownerView), data, c.ttl).Err(); err != nil {
		c.slogger.Warn("item view cache write failed", "error", err)
	}
}

// InvalidateItem drops both variants of the item's cached view. Failures are
// logged and swallowed: the entry expires by TTL anyway.
func (c *ItemViewCache) InvalidateItem(ctx context.Context, itemID int64) {
	if c.client == nil {
		return
	}

	keys := []string{itemViewKey(itemID, true), itemViewKey(itemID, false)}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.slogger.Warn("item view cache invalidation failed", "error", err)
	}
}

func itemViewKey(itemID int64, ownerView bool) string {
	return fmt.Sprintf("item:%d:view:owner=%t", itemID, ownerView)
}
