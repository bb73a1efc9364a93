package bootstrap

import (
	"context"
	"log/slog"

	"resource-scheduler/internal/infra/db"
	"resource-scheduler/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// NewDB fails startup if the database is unreachable within the connect and ping budget.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DB.ConnectTimeout+cfg.DB.OperationTimeout)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected", "host", cfg.DB.Host, "db", cfg.DB.DBName, "max_conns", pool.Config().MaxConns)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			stat := pool.Stat()
			logger.Info("closing database pool",
				"acquired", stat.AcquiredConns(),
				"total_acquires", stat.AcquireCount(),
				"canceled_acquires", stat.CanceledAcquireCount(),
			)
			cleanup()
			return nil
		},
	})

	return pool, nil
}
