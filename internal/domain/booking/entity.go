package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEndNotAfterStart  = errors.New("end time must be greater than start time")
	ErrStartInPast       = errors.New("booking start time must be in the future")
	ErrDurationTooShort  = errors.New("booking duration is below the minimum")
	ErrDurationTooLong   = errors.New("booking duration exceeds the maximum")
	ErrInvalidCategory   = errors.New("invalid booking category")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrAlreadyStarted    = errors.New("cannot modify bookings that have already started or are in the past")
	ErrNotModifiable     = errors.New("booking can no longer be modified")
	ErrNotCancellable    = errors.New("booking can no longer be cancelled")
	ErrAlreadyEnded      = errors.New("cannot cancel bookings that have already completed")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

const DefaultCancellationReason = "User cancelled booking."

type Booking struct {
	id                 uuid.UUID
	reference          Reference
	resourceID         uuid.UUID
	requesterID        uuid.UUID
	slot               TimeSlot
	purpose            string
	category           Category
	priority           int
	status             Status
	cancellationReason string
	rejectionReason    string
	adminNotes         string
	decidedBy          *uuid.UUID
	decidedAt          *time.Time
	cancelledBy        *uuid.UUID
	cancelledAt        *time.Time
	createdAt          time.Time
	updatedAt          time.Time
}

type NewBookingParams struct {
	Reference   Reference
	ResourceID  uuid.UUID
	RequesterID uuid.UUID
	Slot        TimeSlot
	Purpose     string
	Category    Category
	Priority    int
}

// NewBooking creates an admitted booking; admission itself is decided by Decide.
func NewBooking(p NewBookingParams, now time.Time) (*Booking, error) {
	if !p.Category.IsValid() {
		return nil, ErrInvalidCategory
	}
	return &Booking{
		id:          uuid.New(),
		reference:   p.Reference,
		resourceID:  p.ResourceID,
		requesterID: p.RequesterID,
		slot:        p.Slot,
		purpose:     p.Purpose,
		category:    p.Category,
		priority:    p.Priority,
		status:      StatusApproved,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Snapshot is the persisted form of a Booking.
type Snapshot struct {
	ID                 uuid.UUID
	Reference          Reference
	ResourceID         uuid.UUID
	RequesterID        uuid.UUID
	Start              time.Time
	End                time.Time
	Purpose            string
	Category           Category
	Priority           int
	Status             Status
	CancellationReason string
	RejectionReason    string
	AdminNotes         string
	DecidedBy          *uuid.UUID
	DecidedAt          *time.Time
	CancelledBy        *uuid.UUID
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func Reconstruct(s Snapshot) (*Booking, error) {
	slot, err := NewTimeSlot(s.Start, s.End)
	if err != nil {
		return nil, err
	}
	if !s.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Booking{
		id:                 s.ID,
		reference:          s.Reference,
		resourceID:         s.ResourceID,
		requesterID:        s.RequesterID,
		slot:               slot,
		purpose:            s.Purpose,
		category:           s.Category,
		priority:           s.Priority,
		status:             s.Status,
		cancellationReason: s.CancellationReason,
		rejectionReason:    s.RejectionReason,
		adminNotes:         s.AdminNotes,
		decidedBy:          s.DecidedBy,
		decidedAt:          s.DecidedAt,
		cancelledBy:        s.CancelledBy,
		cancelledAt:        s.CancelledAt,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
	}, nil
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:                 b.id,
		Reference:          b.reference,
		ResourceID:         b.resourceID,
		RequesterID:        b.requesterID,
		Start:              b.slot.Start(),
		End:                b.slot.End(),
		Purpose:            b.purpose,
		Category:           b.category,
		Priority:           b.priority,
		Status:             b.status,
		CancellationReason: b.cancellationReason,
		RejectionReason:    b.rejectionReason,
		AdminNotes:         b.adminNotes,
		DecidedBy:          b.decidedBy,
		DecidedAt:          b.decidedAt,
		CancelledBy:        b.cancelledBy,
		CancelledAt:        b.cancelledAt,
		CreatedAt:          b.createdAt,
		UpdatedAt:          b.updatedAt,
	}
}

func (b *Booking) IsLive() bool {
	return b.status.IsLive()
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.requesterID == userID
}

// Preempt bumps a live booking in favour of a higher-priority one.
func (b *Booking) Preempt(reason string, now time.Time) error {
	if !b.status.CanTransitionTo(StatusPreempted) {
		return ErrInvalidTransition
	}
	b.status = StatusPreempted
	b.cancellationReason = reason
	b.cancelledAt = &now
	b.updatedAt = now
	return nil
}

func (b *Booking) CanModify(now time.Time) error {
	if !b.slot.Start().After(now) {
		return ErrAlreadyStarted
	}
	if b.status.IsTerminal() {
		return ErrNotModifiable
	}
	return nil
}

type Changes struct {
	Slot     TimeSlot
	Category Category
	Purpose  string
	Priority int
}

// Reschedule applies admitted changes and resets the status to approved.
func (b *Booking) Reschedule(c Changes, now time.Time) error {
	if err := b.CanModify(now); err != nil {
		return err
	}
	if !c.Category.IsValid() {
		return ErrInvalidCategory
	}
	b.slot = c.Slot
	b.category = c.Category
	b.purpose = c.Purpose
	b.priority = c.Priority
	b.status = StatusApproved
	b.updatedAt = now
	return nil
}

func (b *Booking) CanCancel(now time.Time) error {
	if !b.status.CanTransitionTo(StatusCancelled) {
		return ErrNotCancellable
	}
	if b.slot.End().Before(now) {
		return ErrAlreadyEnded
	}
	return nil
}

func (b *Booking) Cancel(actorID uuid.UUID, reason string, now time.Time) error {
	if err := b.CanCancel(now); err != nil {
		return err
	}
	if reason == "" {
		reason = DefaultCancellationReason
	}
	b.status = StatusCancelled
	b.cancellationReason = reason
	b.cancelledBy = &actorID
	b.cancelledAt = &now
	b.updatedAt = now
	return nil
}

func (b *Booking) Approve(adminID uuid.UUID, notes string, now time.Time) error {
	if !b.status.CanTransitionTo(StatusApproved) {
		return ErrInvalidTransition
	}
	b.status = StatusApproved
	b.decide(adminID, notes, now)
	return nil
}

// Reject is allowed from pending or approved only.
func (b *Booking) Reject(adminID uuid.UUID, reason, notes string, now time.Time) error {
	if b.status != StatusPending && b.status != StatusApproved {
		return ErrInvalidTransition
	}
	b.status = StatusRejected
	b.rejectionReason = reason
	b.decide(adminID, notes, now)
	return nil
}

func (b *Booking) decide(adminID uuid.UUID, notes string, now time.Time) {
	b.decidedBy = &adminID
	b.decidedAt = &now
	if notes != "" {
		b.adminNotes = notes
	}
	b.updatedAt = now
}

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) Reference() Reference       { return b.reference }
func (b *Booking) ResourceID() uuid.UUID      { return b.resourceID }
func (b *Booking) RequesterID() uuid.UUID     { return b.requesterID }
func (b *Booking) Slot() TimeSlot             { return b.slot }
func (b *Booking) Purpose() string            { return b.purpose }
func (b *Booking) Category() Category         { return b.category }
func (b *Booking) Priority() int              { return b.priority }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) CancellationReason() string { return b.cancellationReason }
func (b *Booking) RejectionReason() string    { return b.rejectionReason }
func (b *Booking) AdminNotes() string         { return b.adminNotes }
func (b *Booking) DecidedBy() *uuid.UUID      { return b.decidedBy }
func (b *Booking) DecidedAt() *time.Time      { return b.decidedAt }
func (b *Booking) CancelledBy() *uuid.UUID    { return b.cancelledBy }
func (b *Booking) CancelledAt() *time.Time    { return b.cancelledAt }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }
