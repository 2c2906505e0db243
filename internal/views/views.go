// Package views holds the per-user controller state behind roomdesk's HTTP
// surface. Each authenticated frontend session gets its own Session with one
// controller per screen: controllers fetch through the backend client,
// remember the last successfully rendered lists, and report user-facing
// feedback for every mutating action. The backend stays authoritative for
// all entity state; controllers re-fetch after each mutation they trigger
// instead of patching local copies.
package views

import (
	"log/slog"
	"time"

	"roomdesk/internal/backend"
	"roomdesk/internal/dashboard"
	"roomdesk/internal/platform/metrics"
)

// Session bundles the view controllers for one authenticated user. The set
// is role-agnostic; role checks live in the individual controllers and in
// the backend itself.
type Session struct {
	BookingForm   *BookingForm
	MyBookings    *MyBookings
	Rooms         *RoomsAdmin
	Tenants       *Tenants
	Notifications *Notifications
	Dashboard     *Dashboard
}

// NewSession builds the controller set for a user with the given role.
func NewSession(client *backend.Client, role string, logger *slog.Logger, m *metrics.Metrics, aggregationTimeout time.Duration) *Session {
	agg := dashboard.NewForRole(role, client,
		dashboard.WithTimeout(aggregationTimeout),
		dashboard.WithMetrics(m),
		dashboard.WithLogger(logger),
	)
	return &Session{
		BookingForm:   NewBookingForm(client, logger),
		MyBookings:    NewMyBookings(client, logger),
		Rooms:         NewRoomsAdmin(client, logger),
		Tenants:       NewTenants(client, logger),
		Notifications: NewNotifications(client, role, logger),
		Dashboard:     NewDashboard(dashboard.NewRefresher(agg, m, logger), role),
	}
}
