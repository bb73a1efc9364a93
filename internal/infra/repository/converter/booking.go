package converter

import (
	"fmt"
	"math"

	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/domain/resource"
	sqlc "resource-scheduler/internal/infra/sqlc/generated"
	"resource-scheduler/internal/pkg/pgconv"
)

func BookingFromInfra(row sqlc.Bookings) (*booking.Booking, error) {
	return booking.Reconstruct(booking.Snapshot{
		ID:                 row.ID,
		Reference:          booking.Reference(row.Reference),
		ResourceID:         row.ResourceID,
		RequesterID:        row.RequesterID,
		Start:              pgconv.TimeFromPgtype(row.StartTime),
		End:                pgconv.TimeFromPgtype(row.EndTime),
		Purpose:            row.Purpose,
		Category:           booking.Category(row.Category),
		Priority:           int(row.Priority),
		Status:             booking.Status(row.Status),
		CancellationReason: row.CancellationReason,
		RejectionReason:    row.RejectionReason,
		AdminNotes:         row.AdminNotes,
		DecidedBy:          pgconv.UUIDPtrFromPgtype(row.DecidedBy),
		DecidedAt:          pgconv.TimePtrFromPgtype(row.DecidedAt),
		CancelledBy:        pgconv.UUIDPtrFromPgtype(row.CancelledBy),
		CancelledAt:        pgconv.TimePtrFromPgtype(row.CancelledAt),
		CreatedAt:          pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:          pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}

func BookingsFromInfra(rows []sqlc.Bookings) ([]*booking.Booking, error) {
	out := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := BookingFromInfra(row)
		if err != nil {
			return nil, fmt.Errorf("booking %s: %w", row.ID, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func BookingToCreateParams(b *booking.Booking) sqlc.CreateBookingParams {
	s := b.Snapshot()
	return sqlc.CreateBookingParams{
		ID:          s.ID,
		Reference:   s.Reference.String(),
		ResourceID:  s.ResourceID,
		RequesterID: s.RequesterID,
		StartTime:   pgconv.TimeToPgtype(s.Start),
		EndTime:     pgconv.TimeToPgtype(s.End),
		Purpose:     s.Purpose,
		Category:    s.Category.String(),
		Priority:    priorityToInt32(s.Priority),
		Status:      s.Status.String(),
		CreatedAt:   pgconv.TimeToPgtype(s.CreatedAt),
		UpdatedAt:   pgconv.TimeToPgtype(s.UpdatedAt),
	}
}

func BookingToUpdateParams(b *booking.Booking) sqlc.UpdateBookingParams {
	s := b.Snapshot()
	return sqlc.UpdateBookingParams{
		ID:                 s.ID,
		StartTime:          pgconv.TimeToPgtype(s.Start),
		EndTime:            pgconv.TimeToPgtype(s.End),
		Purpose:            s.Purpose,
		Category:           s.Category.String(),
		Priority:           priorityToInt32(s.Priority),
		Status:             s.Status.String(),
		CancellationReason: s.CancellationReason,
		RejectionReason:    s.RejectionReason,
		AdminNotes:         s.AdminNotes,
		DecidedBy:          pgconv.UUIDPtrToPgtype(s.DecidedBy),
		DecidedAt:          pgconv.TimePtrToPgtype(s.DecidedAt),
		CancelledBy:        pgconv.UUIDPtrToPgtype(s.CancelledBy),
		CancelledAt:        pgconv.TimePtrToPgtype(s.CancelledAt),
		UpdatedAt:          pgconv.TimeToPgtype(s.UpdatedAt),
	}
}

func ResourceFromInfra(row sqlc.Resources) (*resource.Resource, error) {
	return resource.NewResource(row.ID, row.Name, int(row.Capacity), row.IsActive)
}

func priorityToInt32(p int) int32 {
	if p > math.MaxInt32 || p < math.MinInt32 {
		panic(fmt.Sprintf("priority out of int32 range: %d", p))
	}
	return int32(p)
}
