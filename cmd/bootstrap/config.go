package bootstrap

import (
	"log/slog"

	"resource-scheduler/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logEffectiveConfig),
)

// logEffectiveConfig records the admission limits and drivers in use; secrets are never logged.
func logEffectiveConfig(cfg config.Config, logger *slog.Logger) {
	logger.Info("scheduler configured",
		"max_active_bookings", cfg.Scheduler.MaxActiveBookings,
		"min_duration", cfg.Scheduler.MinDuration,
		"max_duration", cfg.Scheduler.MaxDuration,
		"reference_prefix", cfg.Scheduler.ReferencePrefix,
		"notify_driver", cfg.Notify.Driver,
		"availability_cache", cfg.Redis.Addr != "",
		"reaper_enabled", cfg.Reaper.Enabled,
	)
}
