package queries

import (
	"time"

	"resource-scheduler/internal/domain/booking"

	"github.com/google/uuid"
)

// BookingView is the read-side shape of a booking.
type BookingView struct {
	ID                 uuid.UUID  `json:"id"`
	Reference          string     `json:"reference"`
	ResourceID         uuid.UUID  `json:"resource_id"`
	RequesterID        uuid.UUID  `json:"requester_id"`
	Start              time.Time  `json:"start_time"`
	End                time.Time  `json:"end_time"`
	Purpose            string     `json:"purpose"`
	Category           string     `json:"category"`
	Priority           int        `json:"priority"`
	Status             string     `json:"status"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	RejectionReason    string     `json:"rejection_reason,omitempty"`
	AdminNotes         string     `json:"admin_notes,omitempty"`
	DecidedBy          *uuid.UUID `json:"decided_by,omitempty"`
	DecidedAt          *time.Time `json:"decided_at,omitempty"`
	CancelledBy        *uuid.UUID `json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type AvailabilityReport struct {
	Available bool          `json:"available"`
	Message   string        `json:"message"`
	Conflicts []BookingView `json:"conflicts"`
}

type CancellationStatsView struct {
	TotalBookings       int64 `json:"total_bookings"`
	CancelledBookings   int64 `json:"cancelled_bookings"`
	RecentCancellations int64 `json:"recent_cancellations"`
}

func NewBookingView(b *booking.Booking) BookingView {
	return BookingView{
		ID:                 b.ID(),
		Reference:          b.Reference().String(),
		ResourceID:         b.ResourceID(),
		RequesterID:        b.RequesterID(),
		Start:              b.Slot().Start(),
		End:                b.Slot().End(),
		Purpose:            b.Purpose(),
		Category:           b.Category().String(),
		Priority:           b.Priority(),
		Status:             b.Status().String(),
		CancellationReason: b.CancellationReason(),
		RejectionReason:    b.RejectionReason(),
		AdminNotes:         b.AdminNotes(),
		DecidedBy:          b.DecidedBy(),
		DecidedAt:          b.DecidedAt(),
		CancelledBy:        b.CancelledBy(),
		CancelledAt:        b.CancelledAt(),
		CreatedAt:          b.CreatedAt(),
		UpdatedAt:          b.UpdatedAt(),
	}
}

func NewBookingViews(bs []*booking.Booking) []BookingView {
	views := make([]BookingView, 0, len(bs))
	for _, b := range bs {
		views = append(views, NewBookingView(b))
	}
	return views
}
