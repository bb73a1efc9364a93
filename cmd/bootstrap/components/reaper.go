package components

import (
	"log/slog"

	"resource-scheduler/internal/pkg/clock"
	"resource-scheduler/internal/pkg/config"
	"resource-scheduler/internal/reaper"
	"resource-scheduler/internal/usecase/commands"

	"go.uber.org/fx"
)

var ReaperModule = fx.Module("reaper",
	fx.Provide(NewReaperRunner),
	fx.Invoke(reaper.Register),
)

func NewReaperRunner(sweeps commands.SweepCommands, cfg config.Config, clk clock.Clock, logger *slog.Logger) *reaper.Runner {
	opts := reaper.OptionsFromConfig(cfg.Reaper)
	opts.Clock = clk
	return reaper.NewRunner(sweeps, opts, logger)
}
