package resource

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrInvalidCapacity     = errors.New("resource capacity must be at least 1")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
)

const (
	MaxResourceNameLength = 255
)

// Resource is read-only to the scheduler; it only consults capacity and active.
type Resource struct {
	id       uuid.UUID
	name     string
	capacity int
	active   bool
}

func NewResource(id uuid.UUID, name string, capacity int, active bool) (*Resource, error) {
	if err := validateResourceName(name); err != nil {
		return nil, err
	}

	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}

	return &Resource{
		id:       id,
		name:     strings.TrimSpace(name),
		capacity: capacity,
		active:   active,
	}, nil
}

// IsExclusive reports whether the resource admits a single booking per slot.
func (r *Resource) IsExclusive() bool {
	return r.capacity == 1
}

func validateResourceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return ErrResourceNameTooLong
	}
	return nil
}

func validateCapacity(capacity int) error {
	if capacity < 1 {
		return ErrInvalidCapacity
	}
	return nil
}

func (r *Resource) ID() uuid.UUID  { return r.id }
func (r *Resource) Name() string   { return r.name }
func (r *Resource) Capacity() int  { return r.capacity }
func (r *Resource) IsActive() bool { return r.active }
