// Package httptransport is roomdesk's own HTTP surface: JSON view models and
// actions for a browser frontend, backed per session by the booking backend
// client. Handlers delegate to view controllers and never talk to the
// backend directly.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"roomdesk/internal/backend"
	"roomdesk/internal/platform/config"
	"roomdesk/internal/platform/health"
	"roomdesk/internal/platform/metrics"
	"roomdesk/internal/platform/middleware"
	"roomdesk/internal/session"
	"roomdesk/internal/views"
)

// ClientFactory builds a backend client bound to one session context. Tests
// substitute a factory pointing at a scripted backend.
type ClientFactory func(sess *session.Context) *backend.Client

// Handler owns the per-session state behind the HTTP surface: the frontend
// session store and one view-controller set per authenticated session.
type Handler struct {
	cfg       config.Server
	logger    *slog.Logger
	metrics   *metrics.Metrics
	store     *session.InMemoryStore
	newClient ClientFactory

	mu    sync.Mutex
	views map[string]*views.Session
}

func NewHandler(cfg config.Server, logger *slog.Logger, m *metrics.Metrics, store *session.InMemoryStore, newClient ClientFactory) *Handler {
	return &Handler{
		cfg:       cfg,
		logger:    logger,
		metrics:   m,
		store:     store,
		newClient: newClient,
		views:     make(map[string]*views.Session),
	}
}

// NewRouter wires all endpoints with the middleware stack.
func NewRouter(h *Handler, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	healthHandler.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/register", h.handleRegister)

	r.Group(func(r chi.Router) {
		r.Use(h.requireSession)

		r.Post("/auth/logout", h.handleLogout)
		r.Get("/auth/me", h.handleMe)

		r.Get("/dashboard", h.handleDashboard)
		r.Get("/dashboard/snapshot", h.handleDashboardSnapshot)

		r.Get("/booking-form", h.handleBookingForm)
		r.Post("/booking-form/dates", h.handleBookingFormDates)
		r.Post("/booking-form/room", h.handleBookingFormRoom)
		r.Post("/booking-form/duration", h.handleBookingFormDuration)
		r.Post("/bookings", h.handleBookingSubmit)

		r.Get("/bookings/my", h.handleMyBookings)
		r.Post("/bookings/{id}/cancel", h.handleCancelBooking)

		r.Get("/rooms", h.handleListRooms)
		r.Post("/rooms", h.handleCreateRoom)
		r.Delete("/rooms/{id}", h.handleDeleteRoom)

		r.Get("/tenants", h.handleListTenants)
		r.Post("/tenants", h.handleCreateTenant)

		r.Get("/notifications", h.handleListNotifications)
		r.Put("/notifications/{id}", h.handleDecideNotification)
	})

	return r
}

// dropSession tears down one frontend session: store entry, controllers,
// and the active-sessions gauge.
func (h *Handler) dropSession(id string) {
	_ = h.store.Delete(context.Background(), id)
	h.mu.Lock()
	delete(h.views, id)
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.SetActiveSessions(h.store.Count())
	}
}

func (h *Handler) viewSession(id string) (*views.Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	vs, ok := h.views[id]
	return vs, ok
}
