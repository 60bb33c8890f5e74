package runner

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slimsherpa/rook13/internal/bot"
	"github.com/slimsherpa/rook13/internal/game"
	"github.com/slimsherpa/rook13/internal/randutil"
	"github.com/slimsherpa/rook13/internal/sched"
)

type fixture struct {
	engine *game.Engine
	runner *Runner
	sched  *sched.Scheduler
	mock   *quartz.Mock
}

func newFixture(t *testing.T, seed int64) *fixture {
	t.Helper()
	logger := log.New(io.Discard)
	engine := game.NewEngine(logger, randutil.New(seed))
	mock := quartz.NewMock(t)
	scheduler := sched.New(engine, mock, logger)
	r := New(engine, bot.NewBot(logger), scheduler, logger, DefaultOptions())
	return &fixture{engine: engine, runner: r, sched: scheduler, mock: mock}
}

func (f *fixture) seatTable(t *testing.T) {
	t.Helper()
	f.engine.CreateGame("player-1", "Alice")
	for _, seat := range []game.Seat{game.SeatB1, game.SeatA2, game.SeatB2} {
		require.True(t, f.engine.AddBot(seat))
	}
	require.True(t, f.engine.SetPlayerReady(game.SeatA1))
}

// step fires the next pending timer and waits for its callback to finish
func (f *fixture) step(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, w := f.mock.AdvanceNext()
	w.MustWait(ctx)
}

// runUntil steps timers until cond holds or the runner goes idle
func (f *fixture) runUntil(t *testing.T, cond func(*game.GameState) bool) *game.GameState {
	t.Helper()
	for i := 0; i < 2000; i++ {
		snap := f.engine.Snapshot()
		if cond(snap) {
			return snap
		}
		if f.sched.Pending() == 0 {
			return snap
		}
		f.step(t)
	}
	t.Fatal("condition not reached after 2000 timer steps")
	return nil
}

func TestRunnerPlaysFullHandUnattended(t *testing.T) {
	f := newFixture(t, 7)
	f.seatTable(t)
	f.runner.AutoPlay(game.SeatA1)
	f.runner.Kick()

	snap := f.runUntil(t, func(s *game.GameState) bool {
		return s.LastRecap != nil
	})
	recap := snap.LastRecap
	require.NotNil(t, recap, "runner must drive a full hand without intervention")

	assert.True(t, recap.Bid.OnLadder())
	assert.Equal(t, game.TricksPerHand, recap.TrickCounts[game.TeamA]+recap.TrickCounts[game.TeamB])
	assert.True(t, recap.BidWinner.Valid())
}

func TestRunnerContinuesIntoNextHand(t *testing.T) {
	f := newFixture(t, 7)
	f.seatTable(t)
	f.runner.AutoPlay(game.SeatA1)
	f.runner.Kick()

	f.runUntil(t, func(s *game.GameState) bool { return s.LastRecap != nil })
	firstDealer := f.engine.Snapshot().Dealer

	snap := f.runUntil(t, func(s *game.GameState) bool {
		// A fresh hand has been dealt after the recap
		return s.LastRecap != nil && s.Hand != nil && s.Phase == game.PhaseBidding &&
			s.Dealer != firstDealer
	})
	if snap.Status == game.StatusCompleted {
		return // close fought game ended inside the first hand window
	}
	assert.Equal(t, firstDealer.Next(), snap.Dealer, "dealer rotates clockwise between hands")
}

func TestRunnerWaitsForHumanTurn(t *testing.T) {
	f := newFixture(t, 3)
	f.seatTable(t)
	// A1 stays human-driven
	f.runner.Kick()

	snap := f.runUntil(t, func(s *game.GameState) bool {
		return s.Phase == game.PhaseBidding && s.CurrentTurn == game.SeatA1
	})
	require.Equal(t, game.SeatA1, snap.CurrentTurn)
	require.Equal(t, 0, f.sched.Pending(), "runner idles on the human's turn")

	// The human acts through the same entry point, then kicks the runner
	require.True(t, f.engine.PlaceBid(game.SeatA1, game.Pass))
	f.runner.Kick()

	snap = f.runUntil(t, func(s *game.GameState) bool {
		return s.Phase != game.PhaseBidding || s.CurrentTurn == game.SeatA1
	})
	assert.NotEqual(t, game.PhaseSetup, snap.Phase)
}

func TestRunnerNotifiesObserver(t *testing.T) {
	f := newFixture(t, 7)
	f.seatTable(t)
	f.runner.AutoPlay(game.SeatA1)

	updates := 0
	f.runner.OnChange(func(snap *game.GameState) {
		require.NotNil(t, snap)
		updates++
	})
	f.runner.Kick()

	f.runUntil(t, func(s *game.GameState) bool { return s.Hand != nil })
	assert.Greater(t, updates, 0)
}

func TestRunnerStopCancelsPendingWork(t *testing.T) {
	f := newFixture(t, 7)
	f.seatTable(t)
	f.runner.AutoPlay(game.SeatA1)
	f.runner.Kick()
	require.Greater(t, f.sched.Pending(), 0)

	f.runner.Stop()
	assert.Equal(t, 0, f.sched.Pending())

	version := f.engine.Version()
	f.mock.Set(f.mock.Now().Add(time.Minute))
	assert.Equal(t, version, f.engine.Version(), "no transition applies after Stop")
}
