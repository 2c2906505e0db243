package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	BackendRequests *prometheus.CounterVec
	BackendLatency  *prometheus.HistogramVec
	AuthFailures    prometheus.Counter
	Logins          prometheus.Counter
	ActiveSessions  prometheus.Gauge

	AggregationLatency prometheus.Histogram
	AggregationsFailed prometheus.Counter
	StaleRefreshes     prometheus.Counter

	BookingsSubmitted  prometheus.Counter
	BookingsCancelled  prometheus.Counter
	NotificationsActed *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		BackendRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "roomdesk_backend_requests_total",
			Help: "Total backend requests, labeled by resource and outcome",
		}, []string{"resource", "outcome"}),
		BackendLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roomdesk_backend_latency_seconds",
			Help:    "Latency of backend requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource"}),
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "roomdesk_auth_failures_total",
			Help: "Total number of authentication failures (401 responses)",
		}),
		Logins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "roomdesk_logins_total",
			Help: "Total number of successful logins",
		}),
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "roomdesk_active_sessions",
			Help: "Current number of active frontend sessions",
		}),
		AggregationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "roomdesk_aggregation_latency_seconds",
			Help:    "Latency of dashboard aggregations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		AggregationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "roomdesk_aggregations_failed_total",
			Help: "Total number of abandoned dashboard aggregations",
		}),
		StaleRefreshes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "roomdesk_stale_refreshes_total",
			Help: "Total number of in-flight refreshes discarded by fencing",
		}),
		BookingsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "roomdesk_bookings_submitted_total",
			Help: "Total number of booking requests forwarded to the backend",
		}),
		BookingsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "roomdesk_bookings_cancelled_total",
			Help: "Total number of booking cancellations forwarded to the backend",
		}),
		NotificationsActed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "roomdesk_notifications_acted_total",
			Help: "Total number of notification decisions, labeled by status",
		}, []string{"status"}),
	}
}

// ObserveBackendRequest records one backend call with its outcome and latency.
func (m *Metrics) ObserveBackendRequest(resource, outcome string, d time.Duration) {
	m.BackendRequests.WithLabelValues(resource, outcome).Inc()
	m.BackendLatency.WithLabelValues(resource).Observe(d.Seconds())
}

func (m *Metrics) IncrementAuthFailures() {
	m.AuthFailures.Inc()
}

func (m *Metrics) IncrementLogins() {
	m.Logins.Inc()
}

func (m *Metrics) SetActiveSessions(n int) {
	m.ActiveSessions.Set(float64(n))
}

// ObserveAggregationLatency records the latency of one dashboard aggregation.
func (m *Metrics) ObserveAggregationLatency(d time.Duration) {
	m.AggregationLatency.Observe(d.Seconds())
}

func (m *Metrics) IncrementAggregationsFailed() {
	m.AggregationsFailed.Inc()
}

func (m *Metrics) IncrementStaleRefreshes() {
	m.StaleRefreshes.Inc()
}

func (m *Metrics) IncrementBookingsSubmitted() {
	m.BookingsSubmitted.Inc()
}

func (m *Metrics) IncrementBookingsCancelled() {
	m.BookingsCancelled.Inc()
}

// IncrementNotificationsActed counts an approve/reject decision.
func (m *Metrics) IncrementNotificationsActed(status string) {
	m.NotificationsActed.WithLabelValues(status).Inc()
}
