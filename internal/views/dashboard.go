package views

import (
	"context"

	"roomdesk/internal/backend"
	"roomdesk/internal/dashboard"
)

// Dashboard exposes the fenced statistics refresher together with the
// role-shaped tile selection rendered on the overview screen.
type Dashboard struct {
	refresher *dashboard.Refresher
	role      string
}

// StatTile is one labeled counter on the overview screen.
type StatTile struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// DashboardState is the renderable snapshot of the overview.
type DashboardState struct {
	State LoadStateView    `json:"state"`
	Tiles []StatTile       `json:"tiles,omitempty"`
	Stats *dashboard.Stats `json:"stats,omitempty"`
	Error string           `json:"error,omitempty"`
}

// LoadStateView mirrors the refresher state machine on the wire.
type LoadStateView string

func NewDashboard(refresher *dashboard.Refresher, role string) *Dashboard {
	return &Dashboard{refresher: refresher, role: role}
}

// Refresh triggers one aggregation and returns the resulting snapshot.
// The stats rendered are whatever is current after the refresh resolves,
// which on failure means the last successful counters, frozen.
func (d *Dashboard) Refresh(ctx context.Context) DashboardState {
	d.refresher.Refresh(ctx)
	return d.Snapshot()
}

// Snapshot returns the current overview without triggering a refresh.
func (d *Dashboard) Snapshot() DashboardState {
	state, stats, err := d.refresher.Snapshot()
	out := DashboardState{State: LoadStateView(state), Stats: stats}
	if stats != nil {
		out.Tiles = tilesForRole(d.role, stats)
	}
	if err != nil {
		out.Error = err.Error()
	}
	return out
}

// tilesForRole selects which counters each role sees: administrators get
// the property-wide picture, users their own booking activity.
func tilesForRole(role string, s *dashboard.Stats) []StatTile {
	if role == backend.RoleAdmin {
		return []StatTile{
			{Label: "Total Rooms", Value: s.TotalRooms},
			{Label: "Available Rooms", Value: s.AvailableRooms},
			{Label: "Occupied Rooms", Value: s.OccupiedRooms},
			{Label: "Total Tenants", Value: s.TotalTenants},
			{Label: "Pending Requests", Value: s.PendingBookings},
			{Label: "Notifications", Value: s.TotalNotifications},
		}
	}
	return []StatTile{
		{Label: "My Bookings", Value: s.TotalBookings},
		{Label: "Pending", Value: s.PendingBookings},
		{Label: "Approved", Value: s.ApprovedBookings},
		{Label: "Available Rooms", Value: s.AvailableRooms},
	}
}
