//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"resource-scheduler/internal/infra"
	sqlc "resource-scheduler/internal/infra/sqlc/generated"
	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQueries struct {
	got sqlc.CreateNotificationJobParams
	err error
}

func (q *recordingQueries) CreateNotificationJob(_ context.Context, _ sqlc.DBTX, arg sqlc.CreateNotificationJobParams) error {
	q.got = arg
	return q.err
}

func TestNotificationRepository_Enqueue(t *testing.T) {
	runAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	valid := shared.NotificationJob{
		Kind:    "booking.preempted",
		Topic:   "5b0d3a7e-0c3f-4c55-9b2c-6a1e3c7d2f10",
		Payload: []byte(`{"booking_id":"x"}`),
		RunAt:   runAt,
	}

	testCases := []struct {
		name    string
		job     shared.NotificationJob
		dbErr   error
		wantErr error
	}{
		{name: "success: queued", job: valid},
		{name: "error: empty kind", job: shared.NotificationJob{Topic: valid.Topic, Payload: valid.Payload}, wantErr: ErrMalformedJob},
		{name: "error: payload is not JSON", job: shared.NotificationJob{Kind: valid.Kind, Topic: valid.Topic, Payload: []byte("{")}, wantErr: ErrMalformedJob},
		{name: "error: insert fails", job: valid, dbErr: errs.New("connection reset")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := &recordingQueries{err: tc.dbErr}
			repo := NewNotificationRepository(q, nil)

			err := repo.Enqueue(context.Background(), tc.job)

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.dbErr != nil:
				var repoErr infra.RepositoryError
				assert.True(t, errs.As(err, &repoErr))
			default:
				require.NoError(t, err)
				assert.Equal(t, jobStatusQueued, q.got.Status)
				assert.Equal(t, valid.Kind, q.got.Kind)
				assert.True(t, q.got.RunAt.Time.Equal(runAt))
			}
		})
	}
}
