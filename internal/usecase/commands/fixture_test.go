//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/pkg/clock"
	"resource-scheduler/internal/testutil/builder"
	sharedmock "resource-scheduler/internal/testutil/mock/shared"
	"resource-scheduler/internal/usecase/commands"
	"resource-scheduler/internal/usecase/shared"

	"go.uber.org/mock/gomock"
)

type fixture struct {
	ctrl      *gomock.Controller
	uow       *sharedmock.MockUnitOfWork
	tx        *sharedmock.MockTx
	bookings  *sharedmock.MockBookingRepository
	resources *sharedmock.MockResourceRepository
	users     *sharedmock.MockUserRepository
	sink      *sharedmock.MockNotificationSink
	cache     *sharedmock.MockAvailabilityCache
	clock     *clock.MockClock
	logger    *slog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		ctrl:      ctrl,
		uow:       sharedmock.NewMockUnitOfWork(ctrl),
		tx:        sharedmock.NewMockTx(ctrl),
		bookings:  sharedmock.NewMockBookingRepository(ctrl),
		resources: sharedmock.NewMockResourceRepository(ctrl),
		users:     sharedmock.NewMockUserRepository(ctrl),
		sink:      sharedmock.NewMockNotificationSink(ctrl),
		cache:     sharedmock.NewMockAvailabilityCache(ctrl),
		clock:     clock.NewMockClock(builder.BaseTime),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	f.tx.EXPECT().Bookings().Return(f.bookings).AnyTimes()
	f.tx.EXPECT().Resources().Return(f.resources).AnyTimes()
	f.tx.EXPECT().Users().Return(f.users).AnyTimes()
	return f
}

// runWithin makes Within execute fn once against the mocked transaction.
func (f *fixture) runWithin() {
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		})
}

func (f *fixture) dispatcher() *commands.Dispatcher {
	return commands.NewDispatcher(f.sink, f.cache, f.logger, time.Second)
}

func (f *fixture) bookingCommands() commands.BookingCommands {
	return commands.NewBookingCommands(
		f.uow,
		booking.NewDefaultPriorityCalculator(f.logger),
		booking.NewReferenceGenerator("RBS"),
		f.dispatcher(),
		f.clock,
		commands.DefaultSchedulerSettings(),
		f.logger,
	)
}
