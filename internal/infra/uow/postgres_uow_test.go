//go:build unit

package uow

import (
	"testing"
	"time"

	"resource-scheduler/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestShouldRetry(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		attempt int
		want    bool
	}{
		{name: "success: serialization failure is retried", err: &pgconn.PgError{Code: "40001"}, attempt: 0, want: true},
		{name: "success: wrapped deadlock is retried", err: errs.Wrap(&pgconn.PgError{Code: "40P01"}, "lock"), attempt: 2, want: true},
		{name: "error: last attempt is not retried", err: &pgconn.PgError{Code: "40001"}, attempt: 3, want: false},
		{name: "error: unique violation is not retried", err: &pgconn.PgError{Code: "23505"}, attempt: 0, want: false},
		{name: "error: plain error is not retried", err: errs.New("boom"), attempt: 0, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, shouldRetry(tc.err, tc.attempt, maxRetries))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 0; attempt < maxRetries; attempt++ {
		wait := calculateBackoff(attempt, base)
		floor := time.Duration(1<<attempt) * base
		assert.GreaterOrEqual(t, wait, floor)
		assert.Less(t, wait, floor+floor/5+time.Nanosecond)
	}
}

func TestPgTx_RepositoriesAreMemoized(t *testing.T) {
	tx := (&PostgresUoW{}).bind(nil)

	assert.Same(t, tx.Bookings(), tx.Bookings())
	assert.Same(t, tx.Resources(), tx.Resources())
	assert.Same(t, tx.Users(), tx.Users())
	assert.Same(t, tx.Notifications(), tx.Notifications())
}
