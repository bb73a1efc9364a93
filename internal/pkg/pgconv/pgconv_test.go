//go:build unit

package pgconv

import (
	"testing"
	"time"

	"resource-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestTime_NormalizesToUTC(t *testing.T) {
	jst := time.FixedZone("JST", 9*3600)
	local := time.Date(2026, 3, 2, 18, 0, 0, 0, jst)

	stored := TimeToPgtype(local)
	assert.True(t, stored.Valid)
	assert.Equal(t, time.UTC, stored.Time.Location())

	got := TimeFromPgtype(pgtype.Timestamptz{Time: local, Valid: true})
	assert.True(t, got.Equal(local))
	assert.Equal(t, time.UTC, got.Location())

	assert.True(t, TimeFromPgtype(pgtype.Timestamptz{}).IsZero())
}

func TestTimePtr(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Nil(t, TimePtrFromPgtype(pgtype.Timestamptz{}))
	got := TimePtrFromPgtype(TimePtrToPgtype(&now))
	if assert.NotNil(t, got) {
		assert.True(t, got.Equal(now))
	}
	assert.False(t, TimePtrToPgtype(nil).Valid)
}

func TestUUIDPtr(t *testing.T) {
	id := uuid.New()

	assert.Nil(t, UUIDPtrFromPgtype(pgtype.UUID{}))
	assert.Equal(t, &id, UUIDPtrFromPgtype(UUIDPtrToPgtype(&id)))
	assert.False(t, UUIDPtrToPgtype(nil).Valid)
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(pgx.ErrNoRows))
	assert.True(t, IsNoRows(errs.Wrap(pgx.ErrNoRows, "find booking")))
	assert.False(t, IsNoRows(nil))
}
