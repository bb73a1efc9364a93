package booking

import "time"

const (
	DefaultMinDuration    = 30 * time.Minute
	DefaultMaxDuration    = 8 * time.Hour
	DefaultStartTolerance = time.Minute
)

type TimingRules struct {
	MinDuration    time.Duration
	MaxDuration    time.Duration
	StartTolerance time.Duration
}

func DefaultTimingRules() TimingRules {
	return TimingRules{
		MinDuration:    DefaultMinDuration,
		MaxDuration:    DefaultMaxDuration,
		StartTolerance: DefaultStartTolerance,
	}
}

// Validate checks a requested slot against now. The tolerance absorbs request latency.
func (r TimingRules) Validate(slot TimeSlot, now time.Time) error {
	if slot.Start().Before(now.Add(-r.StartTolerance)) {
		return ErrStartInPast
	}
	d := slot.Duration()
	if d < r.MinDuration {
		return ErrDurationTooShort
	}
	if d > r.MaxDuration {
		return ErrDurationTooLong
	}
	return nil
}

// NewSlot is NewTimeSlot followed by Validate.
func (r TimingRules) NewSlot(start, end, now time.Time) (TimeSlot, error) {
	slot, err := NewTimeSlot(start, end)
	if err != nil {
		return TimeSlot{}, err
	}
	if err := r.Validate(slot, now); err != nil {
		return TimeSlot{}, err
	}
	return slot, nil
}
