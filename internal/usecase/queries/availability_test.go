//go:build unit

package queries_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/domain/resource"
	"resource-scheduler/internal/infra"
	"resource-scheduler/internal/pkg/clock"
	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/testutil/builder"
	sharedmock "resource-scheduler/internal/testutil/mock/shared"
	"resource-scheduler/internal/usecase/queries"
	"resource-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type queryFixture struct {
	uow       *sharedmock.MockUnitOfWork
	tx        *sharedmock.MockTx
	bookings  *sharedmock.MockBookingRepository
	resources *sharedmock.MockResourceRepository
	users     *sharedmock.MockUserRepository
	cache     *sharedmock.MockAvailabilityCache
	clock     *clock.MockClock
	logger    *slog.Logger
}

func newQueryFixture(t *testing.T) *queryFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &queryFixture{
		uow:       sharedmock.NewMockUnitOfWork(ctrl),
		tx:        sharedmock.NewMockTx(ctrl),
		bookings:  sharedmock.NewMockBookingRepository(ctrl),
		resources: sharedmock.NewMockResourceRepository(ctrl),
		users:     sharedmock.NewMockUserRepository(ctrl),
		cache:     sharedmock.NewMockAvailabilityCache(ctrl),
		clock:     clock.NewMockClock(builder.BaseTime),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	f.tx.EXPECT().Bookings().Return(f.bookings).AnyTimes()
	f.tx.EXPECT().Resources().Return(f.resources).AnyTimes()
	f.tx.EXPECT().Users().Return(f.users).AnyTimes()
	run := func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
		return fn(ctx, f.tx)
	}
	f.uow.EXPECT().WithinReadOnly(gomock.Any(), gomock.Any()).DoAndReturn(run).AnyTimes()
	f.uow.EXPECT().WithDB(gomock.Any(), gomock.Any()).DoAndReturn(run).AnyTimes()
	return f
}

func (f *queryFixture) availability() queries.AvailabilityQueries {
	return queries.NewAvailabilityQueries(f.uow, f.cache, booking.DefaultTimingRules(), f.clock, f.logger)
}

func liveBookings(res *resource.Resource, n int) []*booking.Booking {
	out := make([]*booking.Booking, n)
	for i := range out {
		out[i] = builder.NewBookingBuilder().WithResource(res.ID()).Build()
	}
	return out
}

func TestCheckAvailability_Messages(t *testing.T) {
	start := builder.BaseTime.Add(time.Hour)
	end := start.Add(time.Hour)

	testCases := []struct {
		name          string
		capacity      int
		conflicts     int
		wantAvailable bool
		wantMessage   string
	}{
		{name: "exclusive and free", capacity: 1, conflicts: 0, wantAvailable: true, wantMessage: queries.MessageAvailable},
		{name: "exclusive and taken", capacity: 1, conflicts: 1, wantMessage: "Resource is already fully booked during this time."},
		{name: "shared with room", capacity: 3, conflicts: 2, wantAvailable: true, wantMessage: queries.MessageAvailable},
		{name: "shared and full", capacity: 3, conflicts: 3, wantMessage: "Resource capacity (3) is fully booked for the selected time period."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newQueryFixture(t)
			res := builder.NewResource(tc.capacity)
			f.cache.EXPECT().Get(gomock.Any(), res.ID(), gomock.Any()).Return(nil, false, nil)
			f.resources.EXPECT().FindByID(gomock.Any(), res.ID()).Return(res, nil)
			f.bookings.EXPECT().FindConflicts(gomock.Any(), res.ID(), gomock.Any(), nil).Return(liveBookings(res, tc.conflicts), nil)
			f.cache.EXPECT().Set(gomock.Any(), res.ID(), gomock.Any(), gomock.Any()).Return(nil)

			report, err := f.availability().CheckAvailability(context.Background(), res.ID(), start, end, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.wantAvailable, report.Available)
			assert.Equal(t, tc.wantMessage, report.Message)
			assert.Len(t, report.Conflicts, tc.conflicts)
		})
	}
}

func TestCheckAvailability_Cache(t *testing.T) {
	start := builder.BaseTime.Add(time.Hour)
	end := start.Add(time.Hour)

	t.Run("success: cache hit skips the database", func(t *testing.T) {
		f := newQueryFixture(t)
		resourceID := uuid.New()
		cached, err := json.Marshal(queries.AvailabilityReport{Available: false, Message: "cached"})
		require.NoError(t, err)
		f.cache.EXPECT().Get(gomock.Any(), resourceID, gomock.Any()).Return(cached, true, nil)

		report, err := f.availability().CheckAvailability(context.Background(), resourceID, start, end, nil)
		require.NoError(t, err)
		assert.Equal(t, "cached", report.Message)
	})

	t.Run("success: cache read failure falls back to the database", func(t *testing.T) {
		f := newQueryFixture(t)
		res := builder.NewResource(1)
		f.cache.EXPECT().Get(gomock.Any(), res.ID(), gomock.Any()).Return(nil, false, assert.AnError)
		f.resources.EXPECT().FindByID(gomock.Any(), res.ID()).Return(res, nil)
		f.bookings.EXPECT().FindConflicts(gomock.Any(), res.ID(), gomock.Any(), nil).Return(nil, nil)
		f.cache.EXPECT().Set(gomock.Any(), res.ID(), gomock.Any(), gomock.Any()).Return(assert.AnError)

		report, err := f.availability().CheckAvailability(context.Background(), res.ID(), start, end, nil)
		require.NoError(t, err)
		assert.True(t, report.Available)
	})

	t.Run("success: exclude id is part of the cache key", func(t *testing.T) {
		f := newQueryFixture(t)
		res := builder.NewResource(1)
		exclude := uuid.New()
		var keys []string
		f.cache.EXPECT().Get(gomock.Any(), res.ID(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, key string) ([]byte, bool, error) {
				keys = append(keys, key)
				return nil, false, nil
			}).Times(2)
		f.resources.EXPECT().FindByID(gomock.Any(), res.ID()).Return(res, nil).Times(2)
		f.bookings.EXPECT().FindConflicts(gomock.Any(), res.ID(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
		f.cache.EXPECT().Set(gomock.Any(), res.ID(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		q := f.availability()
		_, err := q.CheckAvailability(context.Background(), res.ID(), start, end, nil)
		require.NoError(t, err)
		_, err = q.CheckAvailability(context.Background(), res.ID(), start, end, &exclude)
		require.NoError(t, err)

		require.Len(t, keys, 2)
		assert.NotEqual(t, keys[0], keys[1])
		assert.Contains(t, keys[1], exclude.String())
	})
}

func TestCheckAvailability_Errors(t *testing.T) {
	start := builder.BaseTime.Add(time.Hour)

	t.Run("error: invalid interval", func(t *testing.T) {
		f := newQueryFixture(t)
		_, err := f.availability().CheckAvailability(context.Background(), uuid.New(), start, start, nil)
		assert.True(t, errs.Is(err, shared.ErrValidation))
	})

	t.Run("error: unknown resource", func(t *testing.T) {
		f := newQueryFixture(t)
		id := uuid.New()
		f.cache.EXPECT().Get(gomock.Any(), id, gomock.Any()).Return(nil, false, nil)
		f.resources.EXPECT().FindByID(gomock.Any(), id).Return(nil, infra.NewRepoErr(infra.KindNotFound, "resource not found", nil))

		_, err := f.availability().CheckAvailability(context.Background(), id, start, start.Add(time.Hour), nil)
		assert.True(t, errs.Is(err, shared.ErrNotFound))
		assert.True(t, errs.Is(err, queries.ErrResourceNotFound))
	})

	t.Run("error: inactive resource", func(t *testing.T) {
		f := newQueryFixture(t)
		res := builder.NewInactiveResource(2)
		f.cache.EXPECT().Get(gomock.Any(), res.ID(), gomock.Any()).Return(nil, false, nil)
		f.resources.EXPECT().FindByID(gomock.Any(), res.ID()).Return(res, nil)

		_, err := f.availability().CheckAvailability(context.Background(), res.ID(), start, start.Add(time.Hour), nil)
		assert.True(t, errs.Is(err, shared.ErrValidation))
	})
}
