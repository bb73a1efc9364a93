// Command reaper runs the booking expiry sweep outside the API process.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"resource-scheduler/cmd/bootstrap"
	"resource-scheduler/internal/pkg/clock"
	"resource-scheduler/internal/pkg/config"
	"resource-scheduler/internal/reaper"
	"resource-scheduler/internal/usecase/commands"

	"github.com/spf13/pflag"
	"go.uber.org/fx"
)

func main() {
	once := pflag.Bool("once", false, "run a single sweep and exit")
	interval := pflag.Duration("interval", 0, "sweep interval (defaults to REAPER_INTERVAL)")
	complete := pflag.Bool("complete", false, "also move finished approved or in-use bookings to completed")
	pflag.Parse()

	var runner *reaper.Runner
	app := fx.New(
		bootstrap.CoreModule,
		fx.NopLogger,
		fx.Provide(func(sweeps commands.SweepCommands, cfg config.Config, clk clock.Clock, logger *slog.Logger) *reaper.Runner {
			opts := reaper.OptionsFromConfig(cfg.Reaper)
			opts.Clock = clk
			if *interval > 0 {
				opts.Interval = *interval
			}
			opts.Complete = *complete
			return reaper.NewRunner(sweeps, opts, logger)
		}),
		fx.Populate(&runner),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		slog.Error("failed to start reaper", "error", err)
		os.Exit(1)
	}

	if *once {
		n, err := runner.RunOnce(context.Background())
		stopApp(app)
		if err != nil {
			slog.Error("sweep failed", "error", err)
			os.Exit(1)
		}
		slog.Info("sweep finished", "transitioned", n)
		return
	}

	runner.Start()
	<-app.Done()
	runner.Stop()
	stopApp(app)
}

func stopApp(app *fx.App) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		slog.Error("failed to stop reaper cleanly", "error", err)
	}
}
