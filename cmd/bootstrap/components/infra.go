package components

import (
	"context"

	"resource-scheduler/internal/infra/cache"
	"resource-scheduler/internal/infra/notify"
	"resource-scheduler/internal/pkg/config"
	"resource-scheduler/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		NewRedisClient,
		func(client *redis.Client, cfg config.Config) shared.AvailabilityCache {
			return cache.NewAvailabilityCache(client, cfg.Redis)
		},
		notify.NewSink,
	),
)

// NewRedisClient returns nil when REDIS_ADDR is unset; the cache then degrades to a no-op.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DB.ConnectTimeout)
	defer cancel()

	client, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client != nil {
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return client.Close()
			},
		})
	}
	return client, nil
}
