//go:build unit

package queries_test

import (
	"encoding/base64"
	"testing"
	"time"

	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterCursor(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 123456789, time.UTC)
	id := uuid.New()

	gotAt, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, id))
	require.NoError(t, err)
	assert.True(t, gotAt.Equal(at.Truncate(time.Microsecond)))
	assert.Equal(t, id, gotID)

	invalid := []string{
		"",
		"%%%",
		base64.URLEncoding.EncodeToString([]byte("v2:1-" + id.String())),
		base64.URLEncoding.EncodeToString([]byte("v1:nodash")),
		base64.URLEncoding.EncodeToString([]byte("v1:abc-" + id.String())),
		base64.URLEncoding.EncodeToString([]byte("v1:1-not-a-uuid")),
	}
	for _, c := range invalid {
		_, _, err := queries.DecodeAfterCursor(c)
		assert.True(t, errs.Is(err, queries.ErrInvalidCursor), "cursor %q", c)
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(-3))
	assert.Equal(t, 7, queries.ValidateLimit(7))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(1000))
}
