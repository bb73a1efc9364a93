package booking

import "github.com/google/uuid"

// Overlapping filters existing to the live bookings overlapping slot, skipping excludeID.
func Overlapping(existing []*Booking, slot TimeSlot, excludeID *uuid.UUID) []*Booking {
	var out []*Booking
	for _, b := range existing {
		if excludeID != nil && b.ID() == *excludeID {
			continue
		}
		if !b.IsLive() {
			continue
		}
		if b.Slot().Overlaps(slot) {
			out = append(out, b)
		}
	}
	return out
}
