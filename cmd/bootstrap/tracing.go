package bootstrap

import (
	"context"
	"log/slog"

	"resource-scheduler/internal/infra/tracing"
	"resource-scheduler/internal/pkg/config"

	"go.uber.org/fx"
)

var TracingModule = fx.Module("tracing",
	fx.Invoke(RegisterTracing),
)

func RegisterTracing(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) {
	var shutdown func(context.Context) error
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			fn, err := tracing.Init(ctx, cfg.Tracing)
			if err != nil {
				return err
			}
			shutdown = fn
			if cfg.Tracing.Enabled {
				logger.Info("tracing enabled", slog.String("endpoint", cfg.Tracing.Endpoint))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(ctx)
		},
	})
}
