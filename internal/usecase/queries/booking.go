package queries

import (
	"context"
	"time"

	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/infra"
	"resource-scheduler/internal/pkg/clock"
	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

const recentCancellationWindow = 30 * 24 * time.Hour

var (
	ErrBookingNotFound = errs.Mark(errs.New("booking not found"), shared.ErrNotFound)
	ErrUserNotFound    = errs.Mark(errs.New("user not found"), shared.ErrNotFound)
	ErrBookingAccess   = errs.Mark(errs.New("booking access denied"), shared.ErrForbidden)
)

type BookingQueries interface {
	GetBooking(ctx context.Context, actorID, id uuid.UUID) (*BookingView, error)
	ListUserBookings(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]BookingView, *Cursor, error)
	CancellationStats(ctx context.Context, userID uuid.UUID) (*CancellationStatsView, error)
}

type bookingQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingQueries(uow shared.UnitOfWork, clock clock.Clock) BookingQueries {
	return &bookingQueriesImpl{uow: uow, clock: clock}
}

// GetBooking returns the booking if the actor owns it or is an admin.
func (q *bookingQueriesImpl) GetBooking(ctx context.Context, actorID, id uuid.UUID) (*BookingView, error) {
	var view *BookingView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, shared.ErrInfrastructure)
		}
		if !b.IsOwnedBy(actorID) {
			role, err := tx.Users().RoleOf(ctx, actorID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return ErrUserNotFound
				}
				return errs.Mark(err, shared.ErrInfrastructure)
			}
			if !role.IsAdmin() {
				return ErrBookingAccess
			}
		}
		v := NewBookingView(b)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ListUserBookings pages through the user's bookings, newest start first.
func (q *bookingQueriesImpl) ListUserBookings(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]BookingView, *Cursor, error) {
	limit = ValidateLimit(limit)

	var lastStart time.Time
	var lastID uuid.UUID
	keyset := after != nil && after.After != ""
	if keyset {
		var err error
		lastStart, lastID, err = DecodeAfterCursor(after.After)
		if err != nil {
			return nil, nil, errs.Mark(err, shared.ErrValidation)
		}
	}

	var rows []*booking.Booking
	err := q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if keyset {
			rows, err = tx.Bookings().ListByRequesterKeyset(ctx, userID, lastStart, lastID, int32(limit+1))
		} else {
			rows, err = tx.Bookings().ListByRequesterFirstPage(ctx, userID, int32(limit+1))
		}
		return err
	})
	if err != nil {
		return nil, nil, errs.Mark(err, shared.ErrInfrastructure)
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.Slot().Start(), last.ID())}
		rows = rows[:limit]
	}
	return NewBookingViews(rows), next, nil
}

func (q *bookingQueriesImpl) CancellationStats(ctx context.Context, userID uuid.UUID) (*CancellationStatsView, error) {
	since := q.clock.Now().Add(-recentCancellationWindow)

	var stats shared.CancellationStats
	err := q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		stats, err = tx.Bookings().CancellationStats(ctx, userID, since)
		return err
	})
	if err != nil {
		return nil, errs.Mark(err, shared.ErrInfrastructure)
	}
	return &CancellationStatsView{
		TotalBookings:       stats.Total,
		CancelledBookings:   stats.Cancelled,
		RecentCancellations: stats.RecentCancellations,
	}, nil
}
