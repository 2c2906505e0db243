// Package dashboard reduces raw entity collections into the summary
// counters shown on overview views.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"roomdesk/internal/backend"
	"roomdesk/internal/platform/metrics"
	"roomdesk/pkg/apperrors"
)

// defaultJoinTimeout bounds the three-way fetch so one slow dependency
// cannot hang the summary view indefinitely.
const defaultJoinTimeout = 5 * time.Second

// Stats is the fixed counter record consumed by overview views. Field names
// match what the views render. PendingNotifications mirrors PendingBookings;
// the duplicated name is a view convenience.
type Stats struct {
	TotalRooms           int `json:"totalRooms"`
	AvailableRooms       int `json:"availableRooms"`
	OccupiedRooms        int `json:"occupiedRooms"`
	TotalBookings        int `json:"totalBookings"`
	PendingBookings      int `json:"pendingBookings"`
	ApprovedBookings     int `json:"approvedBookings"`
	TotalTenants         int `json:"totalTenants"`
	TotalNotifications   int `json:"totalNotifications"`
	PendingNotifications int `json:"pendingNotifications"`
}

// RoomsPort lists rooms for counting.
type RoomsPort interface {
	ListRooms(ctx context.Context) ([]backend.Room, error)
}

// TenantsPort lists tenants for counting. Nil for non-admin aggregators:
// users cannot list tenants and their count renders as zero.
type TenantsPort interface {
	ListTenants(ctx context.Context) ([]backend.Tenant, error)
}

// Aggregator joins the three entity fetches and reduces them to counters.
// Aggregation is all-or-nothing: if any fetch fails the whole run is
// abandoned and no partial counters are produced.
type Aggregator struct {
	rooms   RoomsPort
	source  BookingSource
	tenants TenantsPort
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// Option configures the Aggregator.
type Option func(*Aggregator)

// WithTimeout overrides the join timeout.
func WithTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithMetrics sets the metrics collector for the aggregator.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Aggregator) {
		a.metrics = m
	}
}

// WithLogger sets the logger for the aggregator.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = l
	}
}

// New creates an aggregator over the given ports. Panics if rooms or source
// is nil - fail fast at startup. tenants may be nil for non-admin roles.
func New(rooms RoomsPort, source BookingSource, tenants TenantsPort, opts ...Option) *Aggregator {
	if rooms == nil {
		panic("dashboard.New: rooms port is required")
	}
	if source == nil {
		panic("dashboard.New: booking source is required")
	}
	a := &Aggregator{
		rooms:   rooms,
		source:  source,
		tenants: tenants,
		timeout: defaultJoinTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewForRole wires the role-appropriate booking source and tenant port over
// a backend client: admins derive bookings from notifications and count
// tenants, users read their own bookings directly.
func NewForRole(role string, client *backend.Client, opts ...Option) *Aggregator {
	var tenants TenantsPort
	if role == backend.RoleAdmin {
		tenants = client
	}
	return New(client, SourceForRole(role, client), tenants, opts...)
}

// fetchResult holds results from the three fetches. Each goroutine writes to
// its own field, avoiding data races.
type fetchResult struct {
	rooms   []backend.Room
	source  SourceResult
	tenants []backend.Tenant
}

// Aggregate runs the three-way fetch join and reduces the collections to
// counters. The fetches are issued concurrently with no ordering between
// them; reduction starts only once all three have resolved.
func (a *Aggregator) Aggregate(ctx context.Context) (*Stats, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	var result fetchResult

	g.Go(func() error {
		rooms, err := a.rooms.ListRooms(ctx)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CodeInternal, "room fetch failed")
		}
		result.rooms = rooms
		return nil
	})

	g.Go(func() error {
		src, err := a.source.Fetch(ctx)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CodeInternal, "booking fetch failed")
		}
		result.source = src
		return nil
	})

	g.Go(func() error {
		if a.tenants == nil {
			return nil
		}
		tenants, err := a.tenants.ListTenants(ctx)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CodeInternal, "tenant fetch failed")
		}
		result.tenants = tenants
		return nil
	})

	if err := g.Wait(); err != nil {
		if a.metrics != nil {
			a.metrics.IncrementAggregationsFailed()
		}
		if a.logger != nil {
			a.logger.WarnContext(ctx, "dashboard aggregation abandoned", "error", err)
		}
		return nil, err
	}

	stats := Compute(result.rooms, result.source.Bookings, len(result.tenants), result.source.NotificationCount)
	if a.metrics != nil {
		a.metrics.ObserveAggregationLatency(time.Since(start))
	}
	return &stats, nil
}

// Compute reduces fixed collections to the counter record. Pure and
// order-independent: every counter is an unordered predicate count, so each
// entity lands in exactly one status bucket and none is counted twice.
func Compute(rooms []backend.Room, bookings []BookingRef, tenantCount, notificationCount int) Stats {
	stats := Stats{
		TotalRooms:         len(rooms),
		TotalBookings:      len(bookings),
		TotalTenants:       tenantCount,
		TotalNotifications: notificationCount,
	}
	for _, room := range rooms {
		switch room.Status {
		case backend.RoomAvailable:
			stats.AvailableRooms++
		case backend.RoomOccupied:
			stats.OccupiedRooms++
		}
	}
	for _, b := range bookings {
		switch b.Status {
		case backend.StatusPending:
			stats.PendingBookings++
		case backend.StatusApproved:
			stats.ApprovedBookings++
		}
	}
	stats.PendingNotifications = stats.PendingBookings
	return stats
}
