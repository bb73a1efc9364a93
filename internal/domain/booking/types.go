package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusInUse     Status = "in_use"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusPreempted Status = "preempted"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
)

// LiveStatuses count toward resource capacity and conflict detection.
var LiveStatuses = []Status{StatusPending, StatusApproved, StatusInUse}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusInUse, StatusRejected,
		StatusCancelled, StatusPreempted, StatusCompleted, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) IsLive() bool {
	switch s {
	case StatusPending, StatusApproved, StatusInUse:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && !s.IsLive()
}

// CanTransitionTo encodes pending -> approved -> in_use -> completed, with any
// live status able to leave for cancelled, rejected, preempted or expired.
func (s Status) CanTransitionTo(next Status) bool {
	switch next {
	case StatusApproved:
		return s == StatusPending
	case StatusInUse:
		return s == StatusApproved
	case StatusCompleted:
		return s == StatusApproved || s == StatusInUse
	case StatusCancelled, StatusRejected, StatusPreempted, StatusExpired:
		return s.IsLive()
	default:
		return false
	}
}

func StatusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

type Category string

const (
	CategoryUniversityActivity Category = "university_activity"
	CategoryClass              Category = "class"
	CategoryStaffMeeting       Category = "staff_meeting"
	CategoryStudentMeeting     Category = "student_meeting"
	CategoryOther              Category = "other"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryUniversityActivity, CategoryClass, CategoryStaffMeeting,
		CategoryStudentMeeting, CategoryOther:
		return true
	default:
		return false
	}
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}
