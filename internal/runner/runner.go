// Package runner drives a game forward between human actions.
//
// The engine never schedules anything itself; the runner watches snapshots
// and issues time-deferred transitions through the scheduler: dealing pace,
// a thinking pause before each bot action, and the reveal pause that keeps a
// completed trick on the table before it is cleared. Every deferred action
// is freshness-guarded, so a reset or an intervening human action makes it a
// no-op.
package runner

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/slimsherpa/rook13/internal/bot"
	"github.com/slimsherpa/rook13/internal/game"
	"github.com/slimsherpa/rook13/internal/sched"
)

// Options sets the pacing delays. Zero values are valid and make every
// transition immediate, which is what the simulator wants.
type Options struct {
	DealDelay   time.Duration // pause before dealing once the table is in the dealing phase
	ThinkDelay  time.Duration // pause before a bot acts
	RevealDelay time.Duration // how long a completed trick stays on the table
}

// DefaultOptions returns the pacing used for interactive play
func DefaultOptions() Options {
	return Options{
		DealDelay:   200 * time.Millisecond,
		ThinkDelay:  time.Second,
		RevealDelay: 3 * time.Second,
	}
}

// Runner feeds bot decisions and paced transitions into an engine
type Runner struct {
	engine *game.Engine
	bot    *bot.Bot
	sched  *sched.Scheduler
	logger *log.Logger
	opts   Options

	mu       sync.Mutex
	auto     map[game.Seat]bool
	pending  uint64
	onChange func(*game.GameState)
}

// New creates a runner. Bot seats are driven automatically; add the human
// seat with AutoPlay to run unattended games.
func New(engine *game.Engine, b *bot.Bot, scheduler *sched.Scheduler, logger *log.Logger, opts Options) *Runner {
	return &Runner{
		engine: engine,
		bot:    b,
		sched:  scheduler,
		logger: logger.WithPrefix("runner"),
		opts:   opts,
		auto:   map[game.Seat]bool{},
	}
}

// AutoPlay marks a seat as runner-driven even if a human occupies it
func (r *Runner) AutoPlay(seat game.Seat) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auto[seat] = true
}

// OnChange registers a callback invoked with a fresh snapshot after every
// observed transition. Used by renderers; must not block.
func (r *Runner) OnChange(fn func(*game.GameState)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// Stop cancels all pending deferred transitions
func (r *Runner) Stop() {
	r.sched.CancelAll()
}

// Kick re-evaluates the game and schedules whatever deferred transition the
// current state calls for. Call it after every externally applied action.
func (r *Runner) Kick() {
	snap := r.engine.Snapshot()
	if snap == nil {
		return
	}
	r.notify(snap)

	if snap.Status == game.StatusWaiting {
		return
	}

	// A completed trick stays visible for the reveal pause, even on the
	// final trick of a completed game.
	if snap.Hand != nil && snap.Hand.Trick.Complete {
		winner := snap.Hand.Trick.Winner
		r.deferNext(r.opts.RevealDelay, func() {
			if r.engine.ClearTrick(winner) {
				r.Kick()
			}
		})
		return
	}

	if snap.Status == game.StatusCompleted {
		return
	}

	switch snap.Phase {
	case game.PhaseDealing:
		r.deferNext(r.opts.DealDelay, func() {
			if r.engine.StartNewHand() {
				r.Kick()
			}
		})

	case game.PhasePlaying:
		if snap.Hand != nil && handsEmpty(snap) {
			// Hand scored; rotate the deal after the reveal pause.
			r.deferNext(r.opts.RevealDelay, func() {
				if r.engine.StartNextHandWithNewDealer() {
					r.Kick()
				}
			})
			return
		}
		r.maybeAct(snap)

	case game.PhaseBidding, game.PhaseWidow, game.PhaseTrump:
		r.maybeAct(snap)
	}
}

// maybeAct schedules a bot decision for the seat on turn when that seat is
// runner-driven
func (r *Runner) maybeAct(snap *game.GameState) {
	seat := snap.CurrentTurn
	player := snap.Players[seat]
	if player == nil {
		return
	}
	if !player.IsBot() && !r.isAuto(seat) {
		return
	}

	r.deferNext(r.opts.ThinkDelay, func() {
		r.act(seat)
		r.Kick()
	})
}

// act applies one bot decision for seat against the current state
func (r *Runner) act(seat game.Seat) {
	snap := r.engine.Snapshot()
	if snap == nil || snap.CurrentTurn != seat {
		return
	}

	switch snap.Phase {
	case game.PhaseBidding:
		bid := r.bot.Bid(seat, snap)
		if !r.engine.PlaceBid(seat, bid) {
			r.logger.Warn("bot bid rejected", "seat", seat, "bid", bid.String())
		}

	case game.PhaseWidow:
		goDown := r.bot.GoDown(seat, snap)
		if !r.engine.SelectGoDown(seat, goDown) {
			r.logger.Warn("bot go-down rejected", "seat", seat)
		}

	case game.PhaseTrump:
		suit := r.bot.Trump(seat, snap)
		if !r.engine.SelectTrump(seat, suit) {
			r.logger.Warn("bot trump rejected", "seat", seat)
		}

	case game.PhasePlaying:
		r.playCard(seat, snap)
	}
}

// playCard plays the bot's chosen card, falling back once to the first legal
// card if the engine rejects the choice. The fallback is a safety net; a
// correct policy never needs it.
func (r *Runner) playCard(seat game.Seat, snap *game.GameState) {
	card, err := r.bot.Card(seat, snap)
	if err != nil {
		r.logger.Error("bot cannot act", "seat", seat, "error", err)
		return
	}
	if r.engine.PlayCard(seat, card) {
		return
	}

	r.logger.Warn("bot card rejected, retrying with first legal card",
		"seat", seat, "card", card.String())
	legal := game.LegalPlays(snap.Players[seat].Hand, snap.Hand.Trick.LeadSuit())
	if len(legal) == 0 {
		return
	}
	if !r.engine.PlayCard(seat, legal[0]) {
		r.logger.Error("fallback card rejected", "seat", seat, "card", legal[0].String())
	}
}

// deferNext replaces the runner's pending deferred transition. Only one is ever
// outstanding: each applied transition triggers a new Kick, which schedules
// the next one.
func (r *Runner) deferNext(d time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending != 0 {
		r.sched.Cancel(r.pending)
	}
	r.pending = r.sched.Schedule(d, fn)
}

func (r *Runner) isAuto(seat game.Seat) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.auto[seat]
}

func (r *Runner) notify(snap *game.GameState) {
	r.mu.Lock()
	fn := r.onChange
	r.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

func handsEmpty(snap *game.GameState) bool {
	for _, seat := range game.SeatOrder {
		if p := snap.Players[seat]; p != nil && len(p.Hand) > 0 {
			return false
		}
	}
	return true
}
