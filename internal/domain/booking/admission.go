package booking

import "fmt"

const ReasonUnavailable = "The resource is not available due to a higher or equal priority booking."

type Decision struct {
	Accepted  bool
	ToPreempt []*Booking
	Blocking  []*Booking
	Reason    string
}

// Decide partitions conflicts by priority. Equal priority blocks: the incumbent
// wins ties. Every preemptable conflict is bumped on acceptance, not only the
// minimum needed to fit.
func Decide(capacity int, newPriority int, conflicts []*Booking) Decision {
	var preemptable, blocking []*Booking
	for _, c := range conflicts {
		if c.Priority() < newPriority {
			preemptable = append(preemptable, c)
		} else {
			blocking = append(blocking, c)
		}
	}

	d := Decision{Blocking: blocking}
	switch {
	case capacity <= 1:
		if len(blocking) > 0 {
			d.Reason = ReasonUnavailable
			return d
		}
	default:
		if len(blocking)+1 > capacity {
			d.Reason = fmt.Sprintf("Resource capacity (%d) is fully booked by higher or equal priority bookings.", capacity)
			return d
		}
	}

	d.Accepted = true
	d.ToPreempt = preemptable
	return d
}
