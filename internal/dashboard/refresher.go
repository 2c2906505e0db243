package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"roomdesk/internal/platform/metrics"
)

// LoadState is the view-level loading state machine:
// Idle -> Loading -> {Ready | Failed}; Failed -> Loading on retry;
// Ready -> Loading on every triggering event.
type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateFailed  LoadState = "failed"
)

// Refresher drives an Aggregator with request fencing: each refresh takes a
// monotonic sequence number, and a response is applied only if no newer
// refresh was issued while it was in flight. A stale response can therefore
// never overwrite a newer one, no matter how the fetches interleave.
//
// On failure the previously Ready stats stay frozen; callers keep rendering
// them alongside the error until a retry succeeds.
type Refresher struct {
	agg     *Aggregator
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu      sync.Mutex
	seq     uint64
	state   LoadState
	stats   *Stats
	lastErr error
}

// NewRefresher wraps an aggregator in fencing and state tracking.
func NewRefresher(agg *Aggregator, m *metrics.Metrics, logger *slog.Logger) *Refresher {
	return &Refresher{
		agg:     agg,
		metrics: m,
		logger:  logger,
		state:   StateIdle,
	}
}

// Refresh runs one aggregation. It returns the stats that are current after
// this call completes, which are this run's own results unless a newer
// refresh superseded it or it failed.
func (r *Refresher) Refresh(ctx context.Context) (*Stats, error) {
	r.mu.Lock()
	r.seq++
	ticket := r.seq
	r.state = StateLoading
	r.mu.Unlock()

	stats, err := r.agg.Aggregate(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if ticket != r.seq {
		// A newer refresh was issued while this one was in flight; its
		// outcome wins and ours is discarded.
		if r.metrics != nil {
			r.metrics.IncrementStaleRefreshes()
		}
		if r.logger != nil {
			r.logger.Debug("discarded stale refresh", "ticket", ticket, "current", r.seq)
		}
		return r.stats, r.lastErr
	}

	if err != nil {
		r.state = StateFailed
		r.lastErr = err
		// stats intentionally untouched: the last successful counters stay
		// frozen until a retry succeeds.
		return r.stats, err
	}

	r.state = StateReady
	r.stats = stats
	r.lastErr = nil
	return stats, nil
}

// Snapshot returns the current state, last applied stats, and last error
// without triggering a refresh.
func (r *Refresher) Snapshot() (LoadState, *Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.stats, r.lastErr
}
