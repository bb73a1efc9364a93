package commands

import (
	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/usecase/shared"
)

var (
	ErrValidation     = shared.ErrValidation
	ErrNotFound       = shared.ErrNotFound
	ErrConflict       = shared.ErrConflict
	ErrForbidden      = shared.ErrForbidden
	ErrInfrastructure = shared.ErrInfrastructure
)

var (
	ErrQuotaExceeded      = errs.New("max active bookings reached")
	ErrResourceNotFound   = errs.New("resource not found")
	ErrResourceInactive   = errs.New("the selected resource is currently not active")
	ErrBookingNotFound    = errs.New("booking not found")
	ErrRequesterNotFound  = errs.New("requester not found")
	ErrNotOwner           = errs.New("only the owner or an admin may change this booking")
	ErrAdminOnly          = errs.New("only admins may decide on bookings")
	ErrReferenceExhausted = errs.New("could not allocate a unique booking reference")
)

// ConflictError is an admission rejection. It carries the bookings that blocked it.
type ConflictError struct {
	Reason    string
	Conflicts []*booking.Booking
}

func (e *ConflictError) Error() string {
	return e.Reason
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

func IsValidation(err error) bool { return errs.Is(err, ErrValidation) }
func IsNotFound(err error) bool   { return errs.Is(err, ErrNotFound) }
func IsConflict(err error) bool   { return errs.Is(err, ErrConflict) }
func IsForbidden(err error) bool  { return errs.Is(err, ErrForbidden) }

func validationErr(err error) error {
	return errs.Mark(err, ErrValidation)
}

func notFoundErr(err error) error {
	return errs.Mark(err, ErrNotFound)
}

func forbiddenErr(err error) error {
	return errs.Mark(err, ErrForbidden)
}

func infraErr(err error, msg string) error {
	return errs.Mark(errs.Wrap(err, msg), ErrInfrastructure)
}

// isBusinessRejection reports errors that are decisions, not faults.
func isBusinessRejection(err error) bool {
	return IsValidation(err) || IsNotFound(err) || IsConflict(err) || IsForbidden(err)
}
