package notify

import (
	"context"

	"resource-scheduler/internal/pkg/clock"
	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// OutboxSink queues events as notification_jobs rows for an external relay.
type OutboxSink struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewOutboxSink(uow shared.UnitOfWork, clock clock.Clock) *OutboxSink {
	return &OutboxSink{uow: uow, clock: clock}
}

func (s *OutboxSink) Notify(ctx context.Context, userID uuid.UUID, kind shared.EventKind, payload shared.BookingEvent) error {
	body, err := encode(userID, kind, payload)
	if err != nil {
		return errs.Wrap(err, "encode booking event")
	}
	return s.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Notifications().Enqueue(ctx, shared.NotificationJob{
			Kind:    RoutingKey(kind),
			Topic:   userID.String(),
			Payload: body,
			RunAt:   s.clock.Now(),
		})
	})
}
