package shared

import "resource-scheduler/internal/pkg/errs"

// Error classes shared by the command and query sides. Every error a usecase
// returns is marked with exactly one of them.
var (
	ErrValidation     = errs.New("validation failed")
	ErrNotFound       = errs.New("not found")
	ErrConflict       = errs.New("booking conflict")
	ErrForbidden      = errs.New("forbidden")
	ErrInfrastructure = errs.New("infrastructure failure")
)
