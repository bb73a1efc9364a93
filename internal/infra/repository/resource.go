package repository

import (
	"context"

	"resource-scheduler/internal/domain/resource"
	"resource-scheduler/internal/infra"
	"resource-scheduler/internal/infra/repository/converter"
	sqlc "resource-scheduler/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type ResourceQueries interface {
	GetResourceByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Resources, error)
	LockResourceForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (uuid.UUID, error)
}

type ResourceRepository struct {
	queries ResourceQueries
	db      sqlc.DBTX
}

func NewResourceRepository(queries ResourceQueries, db sqlc.DBTX) *ResourceRepository {
	return &ResourceRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	row, err := r.queries.GetResourceByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get resource", err)
	}
	res, err := converter.ResourceFromInfra(row)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to convert resource", err)
	}
	return res, nil
}

// LockForAdmission takes SELECT ... FOR UPDATE on the resource row. Only
// meaningful inside a transaction.
func (r *ResourceRepository) LockForAdmission(ctx context.Context, id uuid.UUID) error {
	if _, err := r.queries.LockResourceForUpdate(ctx, r.db, id); err != nil {
		return infra.WrapRepoErr("failed to lock resource", err)
	}
	return nil
}
