package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type CancellationStats struct {
	Total               int64
	Cancelled           int64
	RecentCancellations int64
}

type EventKind string

const (
	EventApproved  EventKind = "approved"
	EventRejected  EventKind = "rejected"
	EventPreempted EventKind = "preempted"
	EventCancelled EventKind = "cancelled"
)

func (k EventKind) String() string {
	return string(k)
}

// BookingEvent is the payload handed to a NotificationSink after commit.
type BookingEvent struct {
	BookingID  uuid.UUID `json:"bookingId"`
	Reference  string    `json:"reference"`
	ResourceID uuid.UUID `json:"resourceId"`
	Start      time.Time `json:"startTime"`
	End        time.Time `json:"endTime"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NotificationSink is fire-and-forget: a returned error is logged, never rolled back.
type NotificationSink interface {
	Notify(ctx context.Context, userID uuid.UUID, kind EventKind, payload BookingEvent) error
}

// AvailabilityCache stores encoded availability reports grouped per resource.
type AvailabilityCache interface {
	Get(ctx context.Context, resourceID uuid.UUID, key string) ([]byte, bool, error)
	Set(ctx context.Context, resourceID uuid.UUID, key string, value []byte) error
	InvalidateResource(ctx context.Context, resourceIDs ...uuid.UUID) error
}
