package dashboard_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomdesk/internal/dashboard"
)

func TestRefresherStateTransitions(t *testing.T) {
	rooms := &fakeRoomsPort{}
	source := &fakeSource{result: dashboard.SourceResult{NotificationCount: 7}}
	agg := dashboard.New(rooms, source, nil)
	ref := dashboard.NewRefresher(agg, nil, nil)

	state, stats, err := ref.Snapshot()
	assert.Equal(t, dashboard.StateIdle, state)
	assert.Nil(t, stats)
	assert.NoError(t, err)

	got, err := ref.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.TotalNotifications)

	state, stats, err = ref.Snapshot()
	assert.Equal(t, dashboard.StateReady, state)
	assert.Equal(t, got, stats)
	assert.NoError(t, err)
}

func TestRefresherFailureFreezesLastStats(t *testing.T) {
	rooms := &fakeRoomsPort{}
	source := &fakeSource{result: dashboard.SourceResult{NotificationCount: 7}}
	agg := dashboard.New(rooms, source, nil)
	ref := dashboard.NewRefresher(agg, nil, nil)

	good, err := ref.Refresh(context.Background())
	require.NoError(t, err)

	source.err = errors.New("boom")
	got, err := ref.Refresh(context.Background())
	assert.Error(t, err)
	assert.Equal(t, good, got, "last successful stats stay visible on failure")

	state, stats, snapErr := ref.Snapshot()
	assert.Equal(t, dashboard.StateFailed, state)
	assert.Equal(t, good, stats)
	assert.Error(t, snapErr)

	// A successful retry replaces the frozen stats and clears the error.
	source.err = nil
	source.result.NotificationCount = 9
	got, err = ref.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, got.TotalNotifications)

	state, _, snapErr = ref.Snapshot()
	assert.Equal(t, dashboard.StateReady, state)
	assert.NoError(t, snapErr)
}

// blockingFirstSource stalls its first fetch until released, so a test can
// interleave a second refresh while the first is still in flight.
type blockingFirstSource struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (s *blockingFirstSource) Fetch(ctx context.Context) (dashboard.SourceResult, error) {
	if s.calls.Add(1) == 1 {
		close(s.started)
		select {
		case <-s.release:
		case <-ctx.Done():
			return dashboard.SourceResult{}, ctx.Err()
		}
		return dashboard.SourceResult{NotificationCount: 1}, nil
	}
	return dashboard.SourceResult{NotificationCount: 9}, nil
}

func TestRefresherDiscardsStaleResponse(t *testing.T) {
	rooms := &fakeRoomsPort{}
	source := &blockingFirstSource{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	agg := dashboard.New(rooms, source, nil)
	ref := dashboard.NewRefresher(agg, nil, nil)

	type outcome struct {
		stats *dashboard.Stats
		err   error
	}
	first := make(chan outcome, 1)
	go func() {
		stats, err := ref.Refresh(context.Background())
		first <- outcome{stats, err}
	}()

	<-source.started
	newer, err := ref.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, newer.TotalNotifications)

	close(source.release)
	stale := <-first

	// The slow first refresh resolved after the second; its results must not
	// overwrite the newer ones.
	require.NoError(t, stale.err)
	assert.Equal(t, 9, stale.stats.TotalNotifications)

	state, stats, err := ref.Snapshot()
	assert.Equal(t, dashboard.StateReady, state)
	assert.Equal(t, 9, stats.TotalNotifications)
	assert.NoError(t, err)
}
