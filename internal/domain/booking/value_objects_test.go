//go:build unit

package booking_test

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"resource-scheduler/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeSlot(t *testing.T) {
	start := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

	_, err := booking.NewTimeSlot(start, start)
	assert.ErrorIs(t, err, booking.ErrEndNotAfterStart)

	_, err = booking.NewTimeSlot(start, start.Add(-time.Minute))
	assert.ErrorIs(t, err, booking.ErrEndNotAfterStart)

	slot, err := booking.NewTimeSlot(start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, slot.Duration())
}

func TestTimeSlot_Overlaps(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2026, 3, 3, h, m, 0, 0, time.UTC) }
	mk := func(s, e time.Time) booking.TimeSlot {
		slot, err := booking.NewTimeSlot(s, e)
		require.NoError(t, err)
		return slot
	}
	base := mk(at(10, 0), at(11, 0))

	testCases := []struct {
		name  string
		other booking.TimeSlot
		want  bool
	}{
		{name: "partial overlap at end", other: mk(at(10, 30), at(11, 30)), want: true},
		{name: "partial overlap at start", other: mk(at(9, 30), at(10, 30)), want: true},
		{name: "contained", other: mk(at(10, 15), at(10, 45)), want: true},
		{name: "containing", other: mk(at(9, 0), at(12, 0)), want: true},
		{name: "identical", other: mk(at(10, 0), at(11, 0)), want: true},
		{name: "touching after", other: mk(at(11, 0), at(12, 0)), want: false},
		{name: "touching before", other: mk(at(9, 0), at(10, 0)), want: false},
		{name: "disjoint", other: mk(at(13, 0), at(14, 0)), want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

func TestReferenceGenerator_Generate(t *testing.T) {
	now := time.Date(2026, 3, 2, 14, 5, 0, 0, time.UTC)

	t.Run("format prefix-ddmmHHMM-suffix", func(t *testing.T) {
		gen := booking.NewReferenceGenerator("rbs")
		ref, err := gen.Generate(now)
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^RBS-02031405-[A-Z0-9]{6}$`), ref.String())
	})

	t.Run("deterministic with a fixed source", func(t *testing.T) {
		gen := booking.NewReferenceGeneratorWithSource("RBS", bytes.NewReader([]byte{0, 1, 25, 26, 35, 36}))
		ref, err := gen.Generate(now)
		require.NoError(t, err)
		assert.Equal(t, booking.Reference("RBS-02031405-ABZ09A"), ref)
	})

	t.Run("bytes past the last full alphabet cycle are redrawn", func(t *testing.T) {
		gen := booking.NewReferenceGeneratorWithSource("RBS", bytes.NewReader([]byte{252, 0, 255, 1, 25, 26, 251, 36, 253}))
		ref, err := gen.Generate(now)
		require.NoError(t, err)
		assert.Equal(t, booking.Reference("RBS-02031405-ABZ09A"), ref)
	})

	t.Run("error: source runs out while redrawing", func(t *testing.T) {
		gen := booking.NewReferenceGeneratorWithSource("RBS", bytes.NewReader([]byte{252, 253, 254, 255, 0, 1}))
		_, err := gen.Generate(now)
		assert.Error(t, err)
	})

	t.Run("error: short random source", func(t *testing.T) {
		gen := booking.NewReferenceGeneratorWithSource("RBS", bytes.NewReader([]byte{1, 2}))
		_, err := gen.Generate(now)
		assert.Error(t, err)
	})
}

func TestTimingRules_NewSlot(t *testing.T) {
	rules := booking.DefaultTimingRules()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name  string
		start time.Time
		end   time.Time
		errIs error
	}{
		{name: "valid", start: now.Add(time.Hour), end: now.Add(2 * time.Hour)},
		{name: "start within tolerance", start: now.Add(-30 * time.Second), end: now.Add(time.Hour)},
		{name: "end before start", start: now.Add(2 * time.Hour), end: now.Add(time.Hour), errIs: booking.ErrEndNotAfterStart},
		{name: "end equals start", start: now.Add(time.Hour), end: now.Add(time.Hour), errIs: booking.ErrEndNotAfterStart},
		{name: "start in the past", start: now.Add(-time.Hour), end: now.Add(time.Hour), errIs: booking.ErrStartInPast},
		{name: "too short", start: now.Add(time.Hour), end: now.Add(time.Hour + 29*time.Minute), errIs: booking.ErrDurationTooShort},
		{name: "minimum duration", start: now.Add(time.Hour), end: now.Add(time.Hour + 30*time.Minute)},
		{name: "maximum duration", start: now.Add(time.Hour), end: now.Add(9 * time.Hour)},
		{name: "too long", start: now.Add(time.Hour), end: now.Add(9*time.Hour + time.Minute), errIs: booking.ErrDurationTooLong},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rules.NewSlot(tc.start, tc.end, now)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}
