// Package sched schedules time-deferred game transitions.
//
// Timed behaviors around the engine (deal pacing, bot thinking delays, the
// trick-reveal pause) are modeled as cancellable single-shot requests. Every
// guarded request captures the engine version when it is scheduled and
// re-checks it when the timer fires: if the game has moved on or been reset
// in the meantime, the deferred action is dropped instead of mutating stale
// state.
package sched

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// VersionSource exposes the monotonic version counter of the aggregate a
// scheduler guards
type VersionSource interface {
	Version() uint64
}

// Scheduler issues cancellable deferred actions against a single game
type Scheduler struct {
	mu      sync.Mutex
	clock   quartz.Clock
	logger  *log.Logger
	source  VersionSource
	timers  map[uint64]*quartz.Timer
	nextID  uint64
	stopped bool
}

// New creates a scheduler. The clock is injected so tests can drive time
// with a quartz mock.
func New(source VersionSource, clock quartz.Clock, logger *log.Logger) *Scheduler {
	return &Scheduler{
		clock:  clock,
		logger: logger.WithPrefix("sched"),
		source: source,
		timers: map[uint64]*quartz.Timer{},
	}
}

// Schedule runs fn after d, but only if the aggregate version is still the
// one observed now. Returns an id usable with Cancel.
func (s *Scheduler) Schedule(d time.Duration, fn func()) uint64 {
	return s.schedule(d, fn, true)
}

// Delay runs fn after d without a freshness guard. Use for purely cosmetic
// pacing where the action itself re-validates state.
func (s *Scheduler) Delay(d time.Duration, fn func()) uint64 {
	return s.schedule(d, fn, false)
}

func (s *Scheduler) schedule(d time.Duration, fn func(), guarded bool) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return 0
	}

	s.nextID++
	id := s.nextID
	version := s.source.Version()

	s.timers[id] = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, id)
		stopped := s.stopped
		s.mu.Unlock()

		if stopped {
			return
		}
		if guarded && s.source.Version() != version {
			s.logger.Debug("dropping stale deferred action",
				"id", id,
				"scheduledAt", version,
				"now", s.source.Version())
			return
		}
		fn()
	})
	return id
}

// Cancel stops a pending action. Canceling an id that already fired or was
// never issued is a no-op.
func (s *Scheduler) Cancel(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
}

// CancelAll stops every pending action, e.g. when the game is reset
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

// Stop cancels everything and refuses further scheduling
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

// Pending returns the number of actions waiting to fire
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
