package components

import (
	"log/slog"

	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/pkg/clock"
	"resource-scheduler/internal/pkg/config"
	"resource-scheduler/internal/usecase"
	"resource-scheduler/internal/usecase/commands"
	"resource-scheduler/internal/usecase/queries"
	"resource-scheduler/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		booking.NewDefaultPriorityCalculator,
		fx.As(new(booking.PriorityCalculator)),
	),
	func(cfg config.Config) *booking.ReferenceGenerator {
		return booking.NewReferenceGenerator(cfg.Scheduler.ReferencePrefix)
	},
	NewTimingRules,
	NewSchedulerSettings,
	func(sink shared.NotificationSink, cache shared.AvailabilityCache, logger *slog.Logger, cfg config.Config) *commands.Dispatcher {
		return commands.NewDispatcher(sink, cache, logger, cfg.Notify.Timeout)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewApprovalCommands,
		commands.NewSweepCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewAvailabilityQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewTimingRules(cfg config.Config) booking.TimingRules {
	return booking.TimingRules{
		MinDuration:    cfg.Scheduler.MinDuration,
		MaxDuration:    cfg.Scheduler.MaxDuration,
		StartTolerance: cfg.Scheduler.StartTolerance,
	}
}

func NewSchedulerSettings(cfg config.Config, rules booking.TimingRules) commands.SchedulerSettings {
	return commands.SchedulerSettings{
		MaxActiveBookings: cfg.Scheduler.MaxActiveBookings,
		Rules:             rules,
	}
}
