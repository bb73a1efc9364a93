package booking

import (
	"log/slog"

	"resource-scheduler/internal/domain/user"
)

type PriorityCalculator interface {
	Priority(role user.Role, category Category) int
}

var categoryBase = map[Category]int{
	CategoryUniversityActivity: 4,
	CategoryClass:              3,
	CategoryStaffMeeting:       2,
	CategoryStudentMeeting:     1,
	CategoryOther:              0,
}

// DefaultPriorityCalculator scores base(category) + bonus(role). Unknown
// inputs score zero and are logged, since they point at misconfigured data.
type DefaultPriorityCalculator struct {
	logger *slog.Logger
}

func NewDefaultPriorityCalculator(logger *slog.Logger) *DefaultPriorityCalculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultPriorityCalculator{logger: logger}
}

func (pc *DefaultPriorityCalculator) Priority(role user.Role, category Category) int {
	base, ok := categoryBase[category]
	if !ok {
		pc.logger.Warn("unknown booking category, using base priority 0",
			slog.String("category", string(category)))
	}
	return base + pc.roleBonus(role)
}

func (pc *DefaultPriorityCalculator) roleBonus(role user.Role) int {
	switch role.Normalize() {
	case user.RoleAdmin:
		return 2
	case user.RoleStaff, user.RoleLecturer:
		return 1
	case user.RoleStudent:
		return 0
	default:
		pc.logger.Warn("unknown requester role, using role bonus 0",
			slog.String("role", string(role)))
		return 0
	}
}
