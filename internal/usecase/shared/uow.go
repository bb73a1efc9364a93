package shared

import (
	"context"
	"time"

	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/domain/resource"
	"resource-scheduler/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Resources() ResourceRepository
	Users() UserRepository
	Notifications() NotificationRepository
}

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// FindByIDForUpdate row-locks the booking until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindConflicts(ctx context.Context, resourceID uuid.UUID, slot booking.TimeSlot, excludeID *uuid.UUID) ([]*booking.Booking, error)
	CountActiveByRequester(ctx context.Context, requesterID uuid.UUID, now time.Time) (int, error)
	ReferenceExists(ctx context.Context, ref booking.Reference) (bool, error)
	Insert(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	// ExpireOverdue and CompleteOverdue return the resource id of every transitioned row.
	ExpireOverdue(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	CompleteOverdue(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	// ListByRequesterFirstPage and ListByRequesterKeyset order by start_time DESC, id.
	ListByRequesterFirstPage(ctx context.Context, requesterID uuid.UUID, limit int32) ([]*booking.Booking, error)
	ListByRequesterKeyset(ctx context.Context, requesterID uuid.UUID, lastStart time.Time, lastID uuid.UUID, limit int32) ([]*booking.Booking, error)
	CancellationStats(ctx context.Context, requesterID uuid.UUID, since time.Time) (CancellationStats, error)
}

type ResourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	// LockForAdmission serializes admissions on the same resource for the rest of the transaction.
	LockForAdmission(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	RoleOf(ctx context.Context, userID uuid.UUID) (user.Role, error)
	// LockForQuota serializes quota checks for the same requester for the rest of the transaction.
	LockForQuota(ctx context.Context, userID uuid.UUID) error
}

// NotificationJob is an outbox row; Topic is the recipient user id.
type NotificationJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type NotificationRepository interface {
	Enqueue(ctx context.Context, job NotificationJob) error
}
