package repository

import (
	"context"

	"resource-scheduler/internal/domain/user"
	"resource-scheduler/internal/infra"
	sqlc "resource-scheduler/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UserQueries interface {
	GetUserRoleByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (string, error)
	LockUserForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (uuid.UUID, error)
}

type UserRepository struct {
	queries UserQueries
	db      sqlc.DBTX
}

func NewUserRepository(queries UserQueries, db sqlc.DBTX) *UserRepository {
	return &UserRepository{
		queries: queries,
		db:      db,
	}
}

// RoleOf returns the stored role as-is; unknown values are scored by the priority calculator.
func (r *UserRepository) RoleOf(ctx context.Context, userID uuid.UUID) (user.Role, error) {
	role, err := r.queries.GetUserRoleByID(ctx, r.db, userID)
	if err != nil {
		return "", infra.WrapRepoErr("failed to get user role", err)
	}
	return user.Role(role), nil
}

// LockForQuota row-locks the user so concurrent admissions by the same
// requester count active bookings one at a time.
func (r *UserRepository) LockForQuota(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.queries.LockUserForUpdate(ctx, r.db, userID); err != nil {
		return infra.WrapRepoErr("failed to lock user", err)
	}
	return nil
}
