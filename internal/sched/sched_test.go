package sched

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is a settable version counter
type fakeSource struct {
	version atomic.Uint64
}

func (f *fakeSource) Version() uint64 { return f.version.Load() }

func newTestScheduler(t *testing.T) (*Scheduler, *fakeSource, *quartz.Mock) {
	t.Helper()
	mock := quartz.NewMock(t)
	source := &fakeSource{}
	s := New(source, mock, log.New(io.Discard))
	return s, source, mock
}

func advance(t *testing.T, mock *quartz.Mock, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mock.Advance(d).MustWait(ctx)
}

func TestScheduleFiresWhenFresh(t *testing.T) {
	s, _, mock := newTestScheduler(t)

	var fired atomic.Bool
	s.Schedule(time.Second, func() { fired.Store(true) })
	require.Equal(t, 1, s.Pending())

	advance(t, mock, time.Second)
	assert.True(t, fired.Load())
	assert.Equal(t, 0, s.Pending())
}

func TestScheduleDropsStaleAction(t *testing.T) {
	s, source, mock := newTestScheduler(t)

	var fired atomic.Bool
	s.Schedule(time.Second, func() { fired.Store(true) })

	// The game moves on before the timer fires
	source.version.Add(1)

	advance(t, mock, time.Second)
	assert.False(t, fired.Load(), "stale action must be a no-op")
	assert.Equal(t, 0, s.Pending())
}

func TestDelayIgnoresVersion(t *testing.T) {
	s, source, mock := newTestScheduler(t)

	var fired atomic.Bool
	s.Delay(time.Second, func() { fired.Store(true) })
	source.version.Add(1)

	advance(t, mock, time.Second)
	assert.True(t, fired.Load())
}

func TestCancelStopsPendingAction(t *testing.T) {
	s, _, mock := newTestScheduler(t)

	var fired atomic.Bool
	id := s.Schedule(time.Second, func() { fired.Store(true) })
	s.Cancel(id)

	advance(t, mock, time.Second)
	assert.False(t, fired.Load())
	assert.Equal(t, 0, s.Pending())
}

func TestCancelAllStopsEverything(t *testing.T) {
	s, _, mock := newTestScheduler(t)

	var count atomic.Int32
	s.Schedule(time.Second, func() { count.Add(1) })
	s.Schedule(2*time.Second, func() { count.Add(1) })
	s.Delay(3*time.Second, func() { count.Add(1) })
	require.Equal(t, 3, s.Pending())

	s.CancelAll()
	advance(t, mock, 3*time.Second)
	assert.Equal(t, int32(0), count.Load())
}

func TestStopRefusesNewWork(t *testing.T) {
	s, _, mock := newTestScheduler(t)
	s.Stop()

	var fired atomic.Bool
	id := s.Schedule(time.Second, func() { fired.Store(true) })
	assert.Equal(t, uint64(0), id)
	assert.Equal(t, 0, s.Pending())

	// Advancing only works when a timer exists on the mock; nothing should
	// be registered at all after Stop.
	mock.Set(mock.Now().Add(time.Second))
	assert.False(t, fired.Load())
}

func TestChainedSchedulesSeeNewVersions(t *testing.T) {
	s, source, mock := newTestScheduler(t)

	var second atomic.Bool
	s.Schedule(time.Second, func() {
		// The action itself mutates state, then schedules a follow-up that
		// captures the new version
		source.version.Add(1)
		s.Schedule(time.Second, func() { second.Store(true) })
	})

	advance(t, mock, time.Second)
	require.Equal(t, 1, s.Pending())
	advance(t, mock, time.Second)
	assert.True(t, second.Load(), "follow-up captured the post-mutation version")
}
