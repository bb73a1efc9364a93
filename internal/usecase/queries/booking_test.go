//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/domain/user"
	"resource-scheduler/internal/infra"
	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/testutil/builder"
	"resource-scheduler/internal/usecase/queries"
	"resource-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetBooking(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	testCases := []struct {
		name      string
		actor     uuid.UUID
		setupMock func(f *queryFixture, b *booking.Booking)
		wantErr   error
	}{
		{
			name:  "success: owner",
			actor: owner,
			setupMock: func(f *queryFixture, b *booking.Booking) {
				f.bookings.EXPECT().FindByID(gomock.Any(), b.ID()).Return(b, nil)
			},
		},
		{
			name:  "success: admin reads any booking",
			actor: other,
			setupMock: func(f *queryFixture, b *booking.Booking) {
				f.bookings.EXPECT().FindByID(gomock.Any(), b.ID()).Return(b, nil)
				f.users.EXPECT().RoleOf(gomock.Any(), other).Return(user.RoleAdmin, nil)
			},
		},
		{
			name:  "error: other user",
			actor: other,
			setupMock: func(f *queryFixture, b *booking.Booking) {
				f.bookings.EXPECT().FindByID(gomock.Any(), b.ID()).Return(b, nil)
				f.users.EXPECT().RoleOf(gomock.Any(), other).Return(user.RoleStaff, nil)
			},
			wantErr: shared.ErrForbidden,
		},
		{
			name:  "error: not found",
			actor: owner,
			setupMock: func(f *queryFixture, b *booking.Booking) {
				f.bookings.EXPECT().FindByID(gomock.Any(), b.ID()).Return(nil, infra.NewRepoErr(infra.KindNotFound, "booking not found", nil))
			},
			wantErr: shared.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newQueryFixture(t)
			b := builder.NewBookingBuilder().WithRequester(owner).Build()
			tc.setupMock(f, b)

			view, err := queries.NewBookingQueries(f.uow, f.clock).GetBooking(context.Background(), tc.actor, b.ID())
			if tc.wantErr != nil {
				assert.True(t, errs.Is(err, tc.wantErr))
				assert.Nil(t, view)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, b.ID(), view.ID)
			assert.Equal(t, b.Reference().String(), view.Reference)
		})
	}
}

func TestListUserBookings_Pagination(t *testing.T) {
	f := newQueryFixture(t)
	owner := uuid.New()
	all := make([]*booking.Booking, 5)
	for i := range all {
		start := builder.BaseTime.Add(time.Duration(10-i) * time.Hour)
		all[i] = builder.NewBookingBuilder().WithRequester(owner).WithSlot(start, start.Add(time.Hour)).Build()
	}
	gomock.InOrder(
		f.bookings.EXPECT().ListByRequesterFirstPage(gomock.Any(), owner, int32(3)).Return(all[0:3], nil),
		f.bookings.EXPECT().ListByRequesterKeyset(gomock.Any(), owner, all[1].Slot().Start(), all[1].ID(), int32(3)).Return(all[2:5], nil),
		f.bookings.EXPECT().ListByRequesterKeyset(gomock.Any(), owner, all[3].Slot().Start(), all[3].ID(), int32(3)).Return(all[4:5], nil),
	)
	q := queries.NewBookingQueries(f.uow, f.clock)

	page1, next, err := q.ListUserBookings(context.Background(), owner, nil, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.NotNil(t, next)
	assert.Equal(t, all[0].ID(), page1[0].ID)

	page2, next, err := q.ListUserBookings(context.Background(), owner, next, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, all[2].ID(), page2[0].ID)
	require.NotNil(t, next)

	page3, next, err := q.ListUserBookings(context.Background(), owner, next, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, all[4].ID(), page3[0].ID)
	assert.Nil(t, next)
}

func TestListUserBookings_Errors(t *testing.T) {
	owner := uuid.New()

	testCases := []struct {
		name      string
		after     *queries.Cursor
		setupMock func(f *queryFixture)
		wantErr   error
	}{
		{
			name:      "error: malformed cursor never reaches the database",
			after:     &queries.Cursor{After: "not-a-cursor"},
			setupMock: func(f *queryFixture) {},
			wantErr:   shared.ErrValidation,
		},
		{
			name: "error: first page query fails",
			setupMock: func(f *queryFixture) {
				f.bookings.EXPECT().ListByRequesterFirstPage(gomock.Any(), owner, int32(queries.DefaultListLimit+1)).
					Return(nil, infra.NewRepoErr(infra.KindDBFailure, "failed to list bookings first page", nil))
			},
			wantErr: shared.ErrInfrastructure,
		},
		{
			name:  "error: keyset query fails",
			after: &queries.Cursor{After: queries.EncodeAfterCursor(builder.BaseTime, uuid.New())},
			setupMock: func(f *queryFixture) {
				f.bookings.EXPECT().ListByRequesterKeyset(gomock.Any(), owner, gomock.Any(), gomock.Any(), int32(queries.DefaultListLimit+1)).
					Return(nil, infra.NewRepoErr(infra.KindTimeout, "failed to list bookings keyset", nil))
			},
			wantErr: shared.ErrInfrastructure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newQueryFixture(t)
			tc.setupMock(f)

			views, next, err := queries.NewBookingQueries(f.uow, f.clock).ListUserBookings(context.Background(), owner, tc.after, 0)
			assert.True(t, errs.Is(err, tc.wantErr))
			assert.Nil(t, views)
			assert.Nil(t, next)
		})
	}
}

func TestCancellationStats(t *testing.T) {
	f := newQueryFixture(t)
	owner := uuid.New()
	since := builder.BaseTime.Add(-30 * 24 * time.Hour)
	f.bookings.EXPECT().CancellationStats(gomock.Any(), owner, since).
		Return(shared.CancellationStats{Total: 10, Cancelled: 4, RecentCancellations: 1}, nil)

	stats, err := queries.NewBookingQueries(f.uow, f.clock).CancellationStats(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, &queries.CancellationStatsView{TotalBookings: 10, CancelledBookings: 4, RecentCancellations: 1}, stats)
}
