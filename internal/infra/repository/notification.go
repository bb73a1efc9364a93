package repository

import (
	"context"
	"encoding/json"

	"resource-scheduler/internal/infra"
	sqlc "resource-scheduler/internal/infra/sqlc/generated"
	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/pkg/pgconv"
	"resource-scheduler/internal/usecase/shared"
)

// Relays pick up queued rows and move them on; this side only ever inserts.
const jobStatusQueued = "queued"

var ErrMalformedJob = errs.New("notification job needs a kind, a topic and a JSON payload")

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateNotificationJobParams) error
}

type NotificationRepository struct {
	queries NotificationWriteQueries
	db      sqlc.DBTX
}

func NewNotificationRepository(queries NotificationWriteQueries, db sqlc.DBTX) *NotificationRepository {
	return &NotificationRepository{queries: queries, db: db}
}

// Enqueue rejects malformed jobs before they reach the payload jsonb column.
func (r *NotificationRepository) Enqueue(ctx context.Context, job shared.NotificationJob) error {
	if job.Kind == "" || job.Topic == "" || !json.Valid(job.Payload) {
		return ErrMalformedJob
	}

	err := r.queries.CreateNotificationJob(ctx, r.db, sqlc.CreateNotificationJobParams{
		Kind:    job.Kind,
		Topic:   job.Topic,
		Payload: job.Payload,
		RunAt:   pgconv.TimeToPgtype(job.RunAt),
		Status:  jobStatusQueued,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}
