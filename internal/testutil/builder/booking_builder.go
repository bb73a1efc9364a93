//go:build unit || integration

package builder

import (
	"time"

	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/domain/resource"

	"github.com/google/uuid"
)

// BaseTime is a fixed "now" used across tests.
var BaseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	snap booking.Snapshot
}

// NewBookingBuilder starts from an approved class booking one hour after BaseTime.
func NewBookingBuilder() *BookingBuilder {
	start := BaseTime.Add(time.Hour)
	return &BookingBuilder{snap: booking.Snapshot{
		ID:          uuid.New(),
		Reference:   "RBS-02031000-ABC123",
		ResourceID:  uuid.New(),
		RequesterID: uuid.New(),
		Start:       start,
		End:         start.Add(time.Hour),
		Purpose:     "weekly seminar",
		Category:    booking.CategoryClass,
		Priority:    3,
		Status:      booking.StatusApproved,
		CreatedAt:   BaseTime,
		UpdatedAt:   BaseTime,
	}}
}

func (b *BookingBuilder) With(mutate func(*booking.Snapshot)) *BookingBuilder {
	mutate(&b.snap)
	return b
}

func (b *BookingBuilder) WithResource(id uuid.UUID) *BookingBuilder {
	b.snap.ResourceID = id
	return b
}

func (b *BookingBuilder) WithRequester(id uuid.UUID) *BookingBuilder {
	b.snap.RequesterID = id
	return b
}

func (b *BookingBuilder) WithPriority(p int) *BookingBuilder {
	b.snap.Priority = p
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.snap.Status = s
	return b
}

func (b *BookingBuilder) WithSlot(start, end time.Time) *BookingBuilder {
	b.snap.Start = start
	b.snap.End = end
	return b
}

func (b *BookingBuilder) WithReference(ref string) *BookingBuilder {
	b.snap.Reference = booking.Reference(ref)
	return b
}

// Build panics on an invalid snapshot; tests only build valid ones.
func (b *BookingBuilder) Build() *booking.Booking {
	bk, err := booking.Reconstruct(b.snap)
	if err != nil {
		panic(err)
	}
	return bk
}

func (b *BookingBuilder) Snapshot() booking.Snapshot {
	return b.snap
}

func NewResource(capacity int) *resource.Resource {
	r, err := resource.NewResource(uuid.New(), "Seminar Room", capacity, true)
	if err != nil {
		panic(err)
	}
	return r
}

func NewInactiveResource(capacity int) *resource.Resource {
	r, err := resource.NewResource(uuid.New(), "Closed Room", capacity, false)
	if err != nil {
		panic(err)
	}
	return r
}
