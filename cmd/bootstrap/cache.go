package bootstrap

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"shareit/internal/infra/cache"
	"shareit/internal/pkg/config"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewRedis,
		fx.Annotate(
			NewItemViewCache,
			fx.As(new(queries.ItemViewCache)),
			fx.As(new(commands.ViewCacheInvalidator)),
		),
	),
)

// NewRedis yields a nil client when redis is disabled; the cache layer
// degrades to a pass-through.
func NewRedis(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	client, cleanup, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return client, nil
}

func NewItemViewCache(client *redis.Client, cfg config.Config, logger *slog.Logger) *cache.ItemViewCache {
	return cache.NewItemViewCache(client, cfg.Redis.ViewTTL, logger)
}
