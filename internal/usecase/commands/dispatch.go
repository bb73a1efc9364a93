package commands

import (
	"context"
	"log/slog"
	"time"

	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

const defaultDispatchTimeout = 5 * time.Second

type pendingEvent struct {
	userID  uuid.UUID
	kind    shared.EventKind
	payload shared.BookingEvent
}

// effects buffers what a transaction wants to announce. A retried attempt
// starts from a fresh buffer, so only the committed attempt is dispatched.
type effects struct {
	events    []pendingEvent
	resources []uuid.UUID
}

func (e *effects) reset() {
	e.events = e.events[:0]
	e.resources = e.resources[:0]
}

func (e *effects) notify(userID uuid.UUID, kind shared.EventKind, payload shared.BookingEvent) {
	e.events = append(e.events, pendingEvent{userID: userID, kind: kind, payload: payload})
}

func (e *effects) touch(resourceIDs ...uuid.UUID) {
	e.resources = append(e.resources, resourceIDs...)
}

// Dispatcher runs post-commit side effects. Failures are logged and never surface to callers.
type Dispatcher struct {
	sink    shared.NotificationSink
	cache   shared.AvailabilityCache
	logger  *slog.Logger
	timeout time.Duration
}

func NewDispatcher(sink shared.NotificationSink, cache shared.AvailabilityCache, logger *slog.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}
	return &Dispatcher{sink: sink, cache: cache, logger: logger, timeout: timeout}
}

func (d *Dispatcher) dispatch(ctx context.Context, fx *effects) {
	// The request may already be cancelled; the booking is committed regardless.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	if len(fx.resources) > 0 && d.cache != nil {
		if err := d.cache.InvalidateResource(ctx, uniqueIDs(fx.resources)...); err != nil {
			d.logger.Warn("failed to invalidate availability cache",
				slog.Int("resources", len(fx.resources)),
				slog.String("error", err.Error()))
		}
	}

	if d.sink == nil {
		return
	}
	for _, ev := range fx.events {
		if err := d.sink.Notify(ctx, ev.userID, ev.kind, ev.payload); err != nil {
			d.logger.Error("failed to send booking notification",
				slog.String("kind", ev.kind.String()),
				slog.String("booking_id", ev.payload.BookingID.String()),
				slog.String("user_id", ev.userID.String()),
				slog.Any("stack", errs.ExtractStackLines(err, 5)))
		}
	}
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
