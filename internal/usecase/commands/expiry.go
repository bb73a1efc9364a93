package commands

import (
	"context"
	"log/slog"
	"time"

	"resource-scheduler/internal/pkg/clock"
	"resource-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// SweepCommands move overdue bookings to their end states. Both sweeps are
// idempotent: a second run at the same instant transitions nothing.
type SweepCommands interface {
	RunExpirySweep(ctx context.Context) (int64, error)
	RunCompletionSweep(ctx context.Context) (int64, error)
}

type sweepCommandsImpl struct {
	uow        shared.UnitOfWork
	dispatcher *Dispatcher
	clock      clock.Clock
	logger     *slog.Logger
}

func NewSweepCommands(uow shared.UnitOfWork, dispatcher *Dispatcher, clock clock.Clock, logger *slog.Logger) SweepCommands {
	return &sweepCommandsImpl{
		uow:        uow,
		dispatcher: dispatcher,
		clock:      clock,
		logger:     logger,
	}
}

// RunExpirySweep expires live bookings whose end has passed.
func (c *sweepCommandsImpl) RunExpirySweep(ctx context.Context) (int64, error) {
	return c.sweep(ctx, "expiry", func(ctx context.Context, tx shared.Tx, now time.Time) ([]uuid.UUID, error) {
		return tx.Bookings().ExpireOverdue(ctx, now)
	})
}

// RunCompletionSweep completes approved or in-use bookings whose end has passed.
func (c *sweepCommandsImpl) RunCompletionSweep(ctx context.Context) (int64, error) {
	return c.sweep(ctx, "completion", func(ctx context.Context, tx shared.Tx, now time.Time) ([]uuid.UUID, error) {
		return tx.Bookings().CompleteOverdue(ctx, now)
	})
}

func (c *sweepCommandsImpl) sweep(
	ctx context.Context,
	name string,
	run func(ctx context.Context, tx shared.Tx, now time.Time) ([]uuid.UUID, error),
) (int64, error) {
	ctx, span := tracer.Start(ctx, "SweepCommands."+name)
	defer span.End()

	now := c.clock.Now()
	var transitioned int64
	fx := &effects{}
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx.reset()
		resourceIDs, err := run(ctx, tx, now)
		if err != nil {
			return infraErr(err, name+" sweep")
		}
		transitioned = int64(len(resourceIDs))
		fx.touch(resourceIDs...)
		return nil
	})
	if err != nil {
		return 0, failOperation(ctx, c.logger, span, name+" sweep", err)
	}

	if transitioned > 0 {
		c.logger.Info("sweep transitioned bookings",
			slog.String("sweep", name),
			slog.Int64("count", transitioned))
	}
	c.dispatcher.dispatch(ctx, fx)
	return transitioned, nil
}
