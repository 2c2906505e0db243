package dashboard_test

//go:generate mockgen -source=source.go -destination=mocks/source_mock.go -package=mocks BookingSource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"roomdesk/internal/backend"
	"roomdesk/internal/dashboard"
	"roomdesk/internal/dashboard/mocks"
)

// AggregatorSuite verifies the counter reduction and the all-or-nothing
// join behavior.
type AggregatorSuite struct {
	suite.Suite
	rooms   *fakeRoomsPort
	tenants *fakeTenantsPort
	source  *fakeSource
}

func TestAggregatorSuite(t *testing.T) {
	suite.Run(t, new(AggregatorSuite))
}

func (s *AggregatorSuite) SetupTest() {
	s.rooms = &fakeRoomsPort{rooms: []backend.Room{
		{ID: "r1", Status: backend.RoomAvailable},
		{ID: "r2", Status: backend.RoomOccupied},
		{ID: "r3", Status: backend.RoomAvailable},
		{ID: "r4", Status: backend.RoomMaintenance},
	}}
	s.tenants = &fakeTenantsPort{tenants: []backend.Tenant{
		{ID: "t1"}, {ID: "t2"},
	}}
	s.source = &fakeSource{result: dashboard.SourceResult{
		Bookings: []dashboard.BookingRef{
			{ID: "b1", Status: backend.StatusPending},
			{ID: "b2", Status: backend.StatusApproved},
			{ID: "b3", Status: backend.StatusPending},
			{ID: "b4", Status: backend.StatusRejected},
		},
		NotificationCount: 5,
	}}
}

func (s *AggregatorSuite) TestAggregateCountsEveryBucket() {
	agg := dashboard.New(s.rooms, s.source, s.tenants)

	stats, err := agg.Aggregate(context.Background())
	s.Require().NoError(err)

	s.Equal(4, stats.TotalRooms)
	s.Equal(2, stats.AvailableRooms)
	s.Equal(1, stats.OccupiedRooms)
	s.Equal(4, stats.TotalBookings)
	s.Equal(2, stats.PendingBookings)
	s.Equal(1, stats.ApprovedBookings)
	s.Equal(2, stats.TotalTenants)
	s.Equal(5, stats.TotalNotifications)
	s.Equal(stats.PendingBookings, stats.PendingNotifications)
}

func (s *AggregatorSuite) TestRoomCountsPartitionExactly() {
	agg := dashboard.New(s.rooms, s.source, s.tenants)

	stats, err := agg.Aggregate(context.Background())
	s.Require().NoError(err)

	other := stats.TotalRooms - stats.AvailableRooms - stats.OccupiedRooms
	s.Equal(1, other) // the maintenance room
	s.Equal(stats.TotalRooms, stats.AvailableRooms+stats.OccupiedRooms+other)
}

func (s *AggregatorSuite) TestAggregateIsIdempotent() {
	agg := dashboard.New(s.rooms, s.source, s.tenants)

	first, err := agg.Aggregate(context.Background())
	s.Require().NoError(err)
	second, err := agg.Aggregate(context.Background())
	s.Require().NoError(err)

	s.Equal(first, second)
}

func (s *AggregatorSuite) TestNilTenantPortCountsZero() {
	agg := dashboard.New(s.rooms, s.source, nil)

	stats, err := agg.Aggregate(context.Background())
	s.Require().NoError(err)
	s.Equal(0, stats.TotalTenants)
}

func (s *AggregatorSuite) TestAnyFetchFailureAbandonsAggregation() {
	s.Run("room fetch fails", func() {
		rooms := &fakeRoomsPort{err: errors.New("boom")}
		agg := dashboard.New(rooms, s.source, s.tenants)

		stats, err := agg.Aggregate(context.Background())
		s.Error(err)
		s.Nil(stats)
	})

	s.Run("booking source fails", func() {
		source := &fakeSource{err: errors.New("boom")}
		agg := dashboard.New(s.rooms, source, s.tenants)

		stats, err := agg.Aggregate(context.Background())
		s.Error(err)
		s.Nil(stats)
	})

	s.Run("tenant fetch fails", func() {
		tenants := &fakeTenantsPort{err: errors.New("boom")}
		agg := dashboard.New(s.rooms, s.source, tenants)

		stats, err := agg.Aggregate(context.Background())
		s.Error(err)
		s.Nil(stats)
	})
}

func (s *AggregatorSuite) TestJoinTimeoutBoundsSlowSource() {
	slow := &fakeSource{
		result: dashboard.SourceResult{},
		delay:  200 * time.Millisecond,
	}
	agg := dashboard.New(s.rooms, slow, s.tenants,
		dashboard.WithTimeout(20*time.Millisecond))

	start := time.Now()
	stats, err := agg.Aggregate(context.Background())
	s.Error(err)
	s.Nil(stats)
	s.Less(time.Since(start), 150*time.Millisecond)
}

func TestAggregatorWithMockedSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockBookingSource(ctrl)
	source.EXPECT().
		Fetch(gomock.Any()).
		Return(dashboard.SourceResult{
			Bookings:          []dashboard.BookingRef{{ID: "b1", Status: backend.StatusPending}},
			NotificationCount: 3,
		}, nil)

	rooms := &fakeRoomsPort{}
	agg := dashboard.New(rooms, source, nil)

	stats, err := agg.Aggregate(context.Background())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if stats.TotalBookings != 1 || stats.PendingBookings != 1 || stats.TotalNotifications != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestComputeIsOrderIndependent(t *testing.T) {
	rooms := []backend.Room{
		{Status: backend.RoomAvailable},
		{Status: backend.RoomOccupied},
		{Status: backend.RoomMaintenance},
	}
	reversed := []backend.Room{rooms[2], rooms[1], rooms[0]}

	a := dashboard.Compute(rooms, nil, 0, 0)
	b := dashboard.Compute(reversed, nil, 0, 0)
	if a != b {
		t.Fatalf("order dependence: %+v vs %+v", a, b)
	}
}

// =============================================================================
// Fakes
// =============================================================================

type fakeRoomsPort struct {
	rooms []backend.Room
	err   error
}

func (f *fakeRoomsPort) ListRooms(_ context.Context) ([]backend.Room, error) {
	return f.rooms, f.err
}

type fakeTenantsPort struct {
	tenants []backend.Tenant
	err     error
}

func (f *fakeTenantsPort) ListTenants(_ context.Context) ([]backend.Tenant, error) {
	return f.tenants, f.err
}

type fakeSource struct {
	result dashboard.SourceResult
	err    error
	delay  time.Duration
}

func (f *fakeSource) Fetch(ctx context.Context) (dashboard.SourceResult, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return dashboard.SourceResult{}, ctx.Err()
		}
	}
	return f.result, f.err
}
