package response

import (
	"time"

	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/usecase/commands"
	"resource-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Reference          string     `json:"reference"`
	ResourceID         uuid.UUID  `json:"resourceId"`
	RequesterID        uuid.UUID  `json:"requesterId"`
	StartTime          time.Time  `json:"startTime"`
	EndTime            time.Time  `json:"endTime"`
	Purpose            string     `json:"purpose"`
	Category           string     `json:"category"`
	Priority           int        `json:"priority"`
	Status             string     `json:"status"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
	RejectionReason    string     `json:"rejectionReason,omitempty"`
	AdminNotes         string     `json:"adminNotes,omitempty"`
	DecidedAt          *time.Time `json:"decidedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	Items      []BookingResponse `json:"items"`
	NextCursor string            `json:"nextCursor,omitempty"`
}

type ConflictResponse struct {
	ID        uuid.UUID `json:"id"`
	Reference string    `json:"reference"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Priority  int       `json:"priority"`
	Status    string    `json:"status"`
}

type AvailabilityResponse struct {
	Available bool               `json:"available"`
	Message   string             `json:"message"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

type CancelFailureResponse struct {
	BookingID uuid.UUID `json:"bookingId"`
	Message   string    `json:"message"`
}

type CancelBookingsResponse struct {
	Cancelled int                     `json:"cancelled"`
	Requested int                     `json:"requested"`
	Errors    []CancelFailureResponse `json:"errors"`
}

type CancellationStatsResponse struct {
	TotalBookings       int64 `json:"totalBookings"`
	CancelledBookings   int64 `json:"cancelledBookings"`
	RecentCancellations int64 `json:"recentCancellations"`
}

type SweepResponse struct {
	Transitioned int64 `json:"transitioned"`
}

func FromBookingView(v queries.BookingView) BookingResponse {
	return BookingResponse{
		ID:                 v.ID,
		Reference:          v.Reference,
		ResourceID:         v.ResourceID,
		RequesterID:        v.RequesterID,
		StartTime:          v.Start,
		EndTime:            v.End,
		Purpose:            v.Purpose,
		Category:           v.Category,
		Priority:           v.Priority,
		Status:             v.Status,
		CancellationReason: v.CancellationReason,
		RejectionReason:    v.RejectionReason,
		AdminNotes:         v.AdminNotes,
		DecidedAt:          v.DecidedAt,
		CancelledAt:        v.CancelledAt,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func FromBooking(b *booking.Booking) BookingResponse {
	return FromBookingView(queries.NewBookingView(b))
}

func FromBookingViews(vs []queries.BookingView, next *queries.Cursor) BookingListResponse {
	items := make([]BookingResponse, 0, len(vs))
	for _, v := range vs {
		items = append(items, FromBookingView(v))
	}
	resp := BookingListResponse{Items: items}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}

func FromConflicts(bs []*booking.Booking) []ConflictResponse {
	out := make([]ConflictResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, ConflictResponse{
			ID:        b.ID(),
			Reference: b.Reference().String(),
			StartTime: b.Slot().Start(),
			EndTime:   b.Slot().End(),
			Priority:  b.Priority(),
			Status:    b.Status().String(),
		})
	}
	return out
}

func FromAvailability(r *queries.AvailabilityReport) AvailabilityResponse {
	conflicts := make([]ConflictResponse, 0, len(r.Conflicts))
	for _, v := range r.Conflicts {
		conflicts = append(conflicts, ConflictResponse{
			ID:        v.ID,
			Reference: v.Reference,
			StartTime: v.Start,
			EndTime:   v.End,
			Priority:  v.Priority,
			Status:    v.Status,
		})
	}
	return AvailabilityResponse{Available: r.Available, Message: r.Message, Conflicts: conflicts}
}

// FromCancelMany renders each failure through message so internal errors stay opaque.
func FromCancelMany(r commands.CancelManyResult, message func(error) string) CancelBookingsResponse {
	failures := make([]CancelFailureResponse, 0, len(r.Failures))
	for _, f := range r.Failures {
		failures = append(failures, CancelFailureResponse{BookingID: f.BookingID, Message: message(f.Err)})
	}
	return CancelBookingsResponse{Cancelled: r.Cancelled, Requested: r.Requested, Errors: failures}
}

func FromCancellationStats(v *queries.CancellationStatsView) CancellationStatsResponse {
	return CancellationStatsResponse{
		TotalBookings:       v.TotalBookings,
		CancelledBookings:   v.CancelledBookings,
		RecentCancellations: v.RecentCancellations,
	}
}
