package reaper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"resource-scheduler/internal/pkg/clock"
	"resource-scheduler/internal/pkg/config"
	"resource-scheduler/internal/usecase/commands"

	"go.uber.org/fx"
)

type Options struct {
	Interval time.Duration
	Timeout  time.Duration
	// Complete also runs the completion sweep before the expiry sweep.
	Complete bool
	// Clock drives the ticker; nil means wall time.
	Clock clock.Clock
}

func OptionsFromConfig(cfg config.ReaperConfig) Options {
	return Options{Interval: cfg.Interval, Timeout: cfg.Timeout}
}

// Runner drives the sweeps on a ticker. A failed sweep is logged and the next tick tries again.
type Runner struct {
	sweeps commands.SweepCommands
	opts   Options
	logger *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRunner(sweeps commands.SweepCommands, opts Options, logger *slog.Logger) *Runner {
	if opts.Interval <= 0 {
		opts.Interval = time.Hour
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Minute
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewRealClock()
	}
	return &Runner{sweeps: sweeps, opts: opts, logger: logger}
}

// RunOnce performs one pass and returns the number of bookings transitioned.
func (r *Runner) RunOnce(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	var total int64
	if r.opts.Complete {
		n, err := r.sweeps.RunCompletionSweep(ctx)
		if err != nil {
			return total, err
		}
		total += n
	}
	n, err := r.sweeps.RunExpirySweep(ctx)
	if err != nil {
		return total, err
	}
	return total + n, nil
}

// Run sweeps immediately, then on every tick until ctx is done.
func (r *Runner) Run(ctx context.Context) {
	ticker := r.opts.Clock.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	for {
		if n, err := r.RunOnce(ctx); err != nil {
			r.logger.Error("reaper pass failed", slog.String("error", err.Error()))
		} else {
			r.logger.Debug("reaper pass finished", slog.Int64("transitioned", n))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
		}
	}
}

func (r *Runner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.Run(ctx)
	}()
}

func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

// Register ties the runner to the fx lifecycle when REAPER_ENABLED is set.
func Register(lc fx.Lifecycle, cfg config.Config, r *Runner, logger *slog.Logger) {
	if !cfg.Reaper.Enabled {
		logger.Info("reaper disabled")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("reaper started", slog.Duration("interval", r.opts.Interval))
			r.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			r.Stop()
			logger.Info("reaper stopped")
			return nil
		},
	})
}
