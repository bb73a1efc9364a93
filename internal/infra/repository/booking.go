package repository

import (
	"context"
	"time"

	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/infra"
	"resource-scheduler/internal/infra/repository/converter"
	sqlc "resource-scheduler/internal/infra/sqlc/generated"
	"resource-scheduler/internal/pkg/pgconv"
	"resource-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingQueries interface {
	GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	GetBookingByIDForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	ListConflictingBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.ListConflictingBookingsParams) ([]sqlc.Bookings, error)
	CountActiveBookingsByRequester(ctx context.Context, db sqlc.DBTX, arg sqlc.CountActiveBookingsByRequesterParams) (int64, error)
	BookingReferenceExists(ctx context.Context, db sqlc.DBTX, reference string) (bool, error)
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) error
	UpdateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingParams) (int64, error)
	ExpireOverdueBookings(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) ([]uuid.UUID, error)
	CompleteOverdueBookings(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) ([]uuid.UUID, error)
	ListBookingsByRequesterFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByRequesterFirstPageParams) ([]sqlc.Bookings, error)
	ListBookingsByRequesterKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByRequesterKeysetParams) ([]sqlc.Bookings, error)
	GetCancellationStats(ctx context.Context, db sqlc.DBTX, arg sqlc.GetCancellationStatsParams) (sqlc.GetCancellationStatsRow, error)
}

type BookingRepository struct {
	queries BookingQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get booking", err)
	}
	return r.toDomain(row)
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByIDForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	return r.toDomain(row)
}

// FindConflicts filters in SQL and re-applies the overlap predicate to the loaded rows.
func (r *BookingRepository) FindConflicts(ctx context.Context, resourceID uuid.UUID, slot booking.TimeSlot, excludeID *uuid.UUID) ([]*booking.Booking, error) {
	rows, err := r.queries.ListConflictingBookings(ctx, r.db, sqlc.ListConflictingBookingsParams{
		ResourceID: resourceID,
		StartTime:  pgconv.TimeToPgtype(slot.Start()),
		EndTime:    pgconv.TimeToPgtype(slot.End()),
		ExcludeID:  pgconv.UUIDPtrToPgtype(excludeID),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list conflicting bookings", err)
	}
	bookings, err := converter.BookingsFromInfra(rows)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to convert conflicting bookings", err)
	}
	return booking.Overlapping(bookings, slot, excludeID), nil
}

func (r *BookingRepository) CountActiveByRequester(ctx context.Context, requesterID uuid.UUID, now time.Time) (int, error) {
	n, err := r.queries.CountActiveBookingsByRequester(ctx, r.db, sqlc.CountActiveBookingsByRequesterParams{
		RequesterID: requesterID,
		Now:         pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count active bookings", err)
	}
	return int(n), nil
}

func (r *BookingRepository) ReferenceExists(ctx context.Context, ref booking.Reference) (bool, error) {
	exists, err := r.queries.BookingReferenceExists(ctx, r.db, ref.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking reference", err)
	}
	return exists, nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	if err := r.queries.CreateBooking(ctx, r.db, converter.BookingToCreateParams(b)); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	n, err := r.queries.UpdateBooking(ctx, r.db, converter.BookingToUpdateParams(b))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if n == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "booking not found", nil)
	}
	return nil
}

func (r *BookingRepository) ExpireOverdue(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	ids, err := r.queries.ExpireOverdueBookings(ctx, r.db, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to expire overdue bookings", err)
	}
	return ids, nil
}

func (r *BookingRepository) CompleteOverdue(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	ids, err := r.queries.CompleteOverdueBookings(ctx, r.db, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to complete overdue bookings", err)
	}
	return ids, nil
}

func (r *BookingRepository) ListByRequesterFirstPage(ctx context.Context, requesterID uuid.UUID, limit int32) ([]*booking.Booking, error) {
	params := sqlc.ListBookingsByRequesterFirstPageParams{RequesterID: requesterID, Limit: limit}
	rows, err := r.queries.ListBookingsByRequesterFirstPage(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings first page", err)
	}
	return r.pageToDomain(rows)
}

func (r *BookingRepository) ListByRequesterKeyset(ctx context.Context, requesterID uuid.UUID, lastStart time.Time, lastID uuid.UUID, limit int32) ([]*booking.Booking, error) {
	params := sqlc.ListBookingsByRequesterKeysetParams{
		RequesterID: requesterID,
		StartTime:   pgconv.TimeToPgtype(lastStart),
		ID:          lastID,
		Limit:       limit,
	}
	rows, err := r.queries.ListBookingsByRequesterKeyset(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings keyset", err)
	}
	return r.pageToDomain(rows)
}

func (r *BookingRepository) pageToDomain(rows []sqlc.Bookings) ([]*booking.Booking, error) {
	bookings, err := converter.BookingsFromInfra(rows)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to convert bookings", err)
	}
	return bookings, nil
}

func (r *BookingRepository) CancellationStats(ctx context.Context, requesterID uuid.UUID, since time.Time) (shared.CancellationStats, error) {
	row, err := r.queries.GetCancellationStats(ctx, r.db, sqlc.GetCancellationStatsParams{
		Since:       pgconv.TimeToPgtype(since),
		RequesterID: requesterID,
	})
	if err != nil {
		return shared.CancellationStats{}, infra.WrapRepoErr("failed to get cancellation stats", err)
	}
	return shared.CancellationStats{
		Total:               row.TotalBookings,
		Cancelled:           row.CancelledBookings,
		RecentCancellations: row.RecentCancellations,
	}, nil
}

func (r *BookingRepository) toDomain(row sqlc.Bookings) (*booking.Booking, error) {
	b, err := converter.BookingFromInfra(row)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to convert booking", err)
	}
	return b, nil
}
