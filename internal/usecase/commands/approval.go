package commands

import (
	"context"
	"log/slog"

	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/pkg/clock"
	"resource-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ApprovalCommands are the admin decisions on a single booking.
type ApprovalCommands interface {
	ApproveBooking(ctx context.Context, bookingID, adminID uuid.UUID, notes string) (*booking.Booking, error)
	RejectBooking(ctx context.Context, bookingID, adminID uuid.UUID, reason, notes string) (*booking.Booking, error)
}

type approvalCommandsImpl struct {
	uow        shared.UnitOfWork
	dispatcher *Dispatcher
	clock      clock.Clock
	logger     *slog.Logger
}

func NewApprovalCommands(uow shared.UnitOfWork, dispatcher *Dispatcher, clock clock.Clock, logger *slog.Logger) ApprovalCommands {
	return &approvalCommandsImpl{
		uow:        uow,
		dispatcher: dispatcher,
		clock:      clock,
		logger:     logger,
	}
}

func (c *approvalCommandsImpl) ApproveBooking(ctx context.Context, bookingID, adminID uuid.UUID, notes string) (*booking.Booking, error) {
	ctx, span := tracer.Start(ctx, "ApprovalCommands.ApproveBooking", trace.WithAttributes(
		attribute.String("booking_id", bookingID.String()),
	))
	defer span.End()

	b, err := c.decideOn(ctx, bookingID, adminID, shared.EventApproved, func(b *booking.Booking) error {
		return b.Approve(adminID, notes, c.clock.Now())
	})
	if err != nil {
		return nil, failOperation(ctx, c.logger, span, "approve booking", err)
	}
	c.logger.Info("booking approved",
		slog.String("booking_id", bookingID.String()),
		slog.String("admin_id", adminID.String()))
	return b, nil
}

func (c *approvalCommandsImpl) RejectBooking(ctx context.Context, bookingID, adminID uuid.UUID, reason, notes string) (*booking.Booking, error) {
	ctx, span := tracer.Start(ctx, "ApprovalCommands.RejectBooking", trace.WithAttributes(
		attribute.String("booking_id", bookingID.String()),
	))
	defer span.End()

	b, err := c.decideOn(ctx, bookingID, adminID, shared.EventRejected, func(b *booking.Booking) error {
		return b.Reject(adminID, reason, notes, c.clock.Now())
	})
	if err != nil {
		return nil, failOperation(ctx, c.logger, span, "reject booking", err)
	}
	c.logger.Info("booking rejected by admin",
		slog.String("booking_id", bookingID.String()),
		slog.String("admin_id", adminID.String()))
	return b, nil
}

func (c *approvalCommandsImpl) decideOn(
	ctx context.Context,
	bookingID, adminID uuid.UUID,
	kind shared.EventKind,
	apply func(b *booking.Booking) error,
) (*booking.Booking, error) {
	var decided *booking.Booking
	fx := &effects{}
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx.reset()

		role, err := roleOf(ctx, tx, adminID)
		if err != nil {
			return err
		}
		if !role.IsAdmin() {
			return forbiddenErr(ErrAdminOnly)
		}
		b, err := loadBooking(ctx, tx, bookingID, true)
		if err != nil {
			return err
		}
		if err := apply(b); err != nil {
			return validationErr(err)
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return infraErr(err, "update booking decision")
		}

		fx.notify(b.RequesterID(), kind, eventFor(b, b.RejectionReason(), c.clock.Now()))
		fx.touch(b.ResourceID())
		decided = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.dispatcher.dispatch(ctx, fx)
	return decided, nil
}
