package user

import (
	"errors"
	"strings"
)

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleLecturer Role = "lecturer"
	RoleStudent  Role = "student"
)

func (r Role) String() string {
	return string(r)
}

// Normalize lower-cases the role so "Admin" and "admin" compare equal.
func (r Role) Normalize() Role {
	return Role(strings.ToLower(strings.TrimSpace(string(r))))
}

func (r Role) IsValid() bool {
	switch r.Normalize() {
	case RoleAdmin, RoleStaff, RoleLecturer, RoleStudent:
		return true
	default:
		return false
	}
}

func (r Role) IsAdmin() bool {
	return r.Normalize() == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s).Normalize()
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
