package request

import (
	"time"

	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ResourceID uuid.UUID `json:"resource_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
	Purpose    string    `json:"purpose" binding:"required,max=500"`
	Category   string    `json:"category" binding:"required"`
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ResourceID: r.ResourceID,
		Start:      r.StartTime,
		End:        r.EndTime,
		Category:   booking.Category(r.Category),
		Purpose:    r.Purpose,
	}
}

// UpdateBookingRequest leaves omitted fields unchanged.
type UpdateBookingRequest struct {
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Purpose   *string    `json:"purpose,omitempty" binding:"omitempty,max=500"`
	Category  *string    `json:"category,omitempty"`
}

func (r UpdateBookingRequest) ToInput() commands.UpdateBookingInput {
	in := commands.UpdateBookingInput{
		Start:   r.StartTime,
		End:     r.EndTime,
		Purpose: r.Purpose,
	}
	if r.Category != nil {
		category := booking.Category(*r.Category)
		in.Category = &category
	}
	return in
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type CancelBookingsRequest struct {
	BookingIDs []uuid.UUID `json:"booking_ids" binding:"required,min=1,max=100"`
	Reason     string      `json:"reason" binding:"max=500"`
}

type ApproveBookingRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
	Notes  string `json:"notes" binding:"max=1000"`
}
