//go:build unit

package patch_test

import (
	"testing"
	"time"

	"resource-scheduler/internal/pkg/patch"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	v := "new"
	assert.Equal(t, "new", patch.Coalesce(&v, "old"))
	assert.Equal(t, "old", patch.Coalesce(nil, "old"))
}

func TestDiffers(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	sameInstant := at.In(time.FixedZone("JST", 9*3600))
	later := at.Add(time.Minute)

	assert.False(t, patch.Differs(nil, at, time.Time.Equal))
	assert.False(t, patch.Differs(&sameInstant, at, time.Time.Equal))
	assert.True(t, patch.Differs(&later, at, time.Time.Equal))
}
