package notify

import (
	"context"
	"log/slog"

	"resource-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// LogSink writes events to the application log. It is the development default.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(ctx context.Context, userID uuid.UUID, kind shared.EventKind, payload shared.BookingEvent) error {
	s.logger.InfoContext(ctx, "booking notification",
		slog.String("routing_key", RoutingKey(kind)),
		slog.String("user_id", userID.String()),
		slog.String("booking_id", payload.BookingID.String()),
		slog.String("reference", payload.Reference),
		slog.String("status", payload.Status),
		slog.String("reason", payload.Reason))
	return nil
}
