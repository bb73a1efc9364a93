//go:build unit

package infra_test

import (
	"context"
	"errors"
	"testing"

	"resource-scheduler/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, expectKind: infra.KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, expectKind: infra.KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, expectKind: infra.KindForeignKeyViolated},
		{name: "statement timeout", err: &pgconn.PgError{Code: "57014"}, expectKind: infra.KindTimeout},
		{name: "context deadline", err: context.DeadlineExceeded, expectKind: infra.KindTimeout},
		{name: "generic failure", err: errors.New("connection reset"), expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := infra.WrapRepoErr("failed to load booking", tc.err)

			assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
			assert.Contains(t, err.Error(), "failed to load booking")
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, infra.IsRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, infra.IsRetryable(infra.WrapRepoErr("lock", &pgconn.PgError{Code: "40P01"})))
	assert.False(t, infra.IsRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, infra.IsRetryable(errors.New("boom")))
}
