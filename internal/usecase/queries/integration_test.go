//go:build integration

package queries_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/infra/cache"
	"resource-scheduler/internal/infra/notify"
	sqlc "resource-scheduler/internal/infra/sqlc/generated"
	"resource-scheduler/internal/infra/uow"
	"resource-scheduler/internal/pkg/clock"
	"resource-scheduler/internal/pkg/config"
	"resource-scheduler/internal/testutil/dbtest"
	"resource-scheduler/internal/usecase/commands"
	"resource-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityCacheFollowsAdmissions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	pool, dbCfg := dbtest.NewDatabase(t)
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	cfg.Redis = config.RedisConfig{Addr: dbtest.RedisAddr(t), CacheTTL: time.Minute}

	client, err := cache.NewClient(ctx, cfg.Redis)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMockClock(now)
	work := uow.NewPostgresUoW(pool, sqlc.New(), cfg)
	reports := cache.NewAvailabilityCache(client, cfg.Redis)
	dispatcher := commands.NewDispatcher(notify.NewLogSink(logger), reports, logger, time.Second)
	bookings := commands.NewBookingCommands(work, booking.NewDefaultPriorityCalculator(logger),
		booking.NewReferenceGenerator("RBS"), dispatcher, clk, commands.DefaultSchedulerSettings(), logger)
	availability := queries.NewAvailabilityQueries(work, reports, booking.DefaultTimingRules(), clk, logger)

	resourceID := dbtest.CreateResource(t, pool, "Auditorium", 1)
	requester := dbtest.CreateUser(t, pool, "lecturer")
	start := now.Add(time.Hour)
	end := start.Add(time.Hour)

	before, err := availability.CheckAvailability(ctx, resourceID, start, end, nil)
	require.NoError(t, err)
	assert.True(t, before.Available)

	b, err := bookings.CreateBooking(ctx, commands.CreateBookingInput{
		ResourceID: resourceID, Start: start, End: end, Category: booking.CategoryClass, Purpose: "lecture",
	}, requester)
	require.NoError(t, err)

	after, err := availability.CheckAvailability(ctx, resourceID, start, end, nil)
	require.NoError(t, err)
	assert.False(t, after.Available, "stale cached report survived the admission")
	assert.Equal(t, "Resource is already fully booked during this time.", after.Message)
	require.Len(t, after.Conflicts, 1)
	assert.Equal(t, b.ID(), after.Conflicts[0].ID)

	excluded := b.ID()
	self, err := availability.CheckAvailability(ctx, resourceID, start, end, &excluded)
	require.NoError(t, err)
	assert.True(t, self.Available)
}

func TestListUserBookingsPagesInDatabaseOrder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	pool, dbCfg := dbtest.NewDatabase(t)
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMockClock(now)
	work := uow.NewPostgresUoW(pool, sqlc.New(), cfg)
	dispatcher := commands.NewDispatcher(notify.NewLogSink(logger), cache.NoopCache{}, logger, time.Second)
	bookings := commands.NewBookingCommands(work, booking.NewDefaultPriorityCalculator(logger),
		booking.NewReferenceGenerator("RBS"), dispatcher, clk, commands.DefaultSchedulerSettings(), logger)
	q := queries.NewBookingQueries(work, clk)

	requester := dbtest.CreateUser(t, pool, "staff")
	// Pairs share a start time so pages split across the id tiebreak.
	var created []*booking.Booking
	for i := range 5 {
		resourceID := dbtest.CreateResource(t, pool, "Room", 1)
		start := now.Add(time.Duration(i/2+1) * time.Hour)
		b, err := bookings.CreateBooking(ctx, commands.CreateBookingInput{
			ResourceID: resourceID, Start: start, End: start.Add(time.Hour), Category: booking.CategoryOther, Purpose: "slot",
		}, requester)
		require.NoError(t, err)
		created = append(created, b)
	}

	var got []uuid.UUID
	var after *queries.Cursor
	for {
		page, next, err := q.ListUserBookings(ctx, requester, after, 2)
		require.NoError(t, err)
		for _, v := range page {
			got = append(got, v.ID)
		}
		if next == nil {
			break
		}
		after = next
	}

	slices.SortFunc(created, func(a, b *booking.Booking) int {
		if c := b.Slot().Start().Compare(a.Slot().Start()); c != 0 {
			return c
		}
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	want := make([]uuid.UUID, len(created))
	for i, b := range created {
		want[i] = b.ID()
	}
	assert.Equal(t, want, got)

	stats, err := q.CancellationStats(ctx, requester)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalBookings)
	assert.Zero(t, stats.CancelledBookings)
}
