// Package simulator plays complete bot-vs-bot games synchronously, without
// a runner or delays, and aggregates the outcomes. Each game gets its own
// seed derived from the base seed so any single game can be replayed.
package simulator

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/slimsherpa/rook13/internal/bot"
	"github.com/slimsherpa/rook13/internal/game"
	"github.com/slimsherpa/rook13/internal/randutil"
	"github.com/slimsherpa/rook13/internal/statistics"
)

// A game that needs this many transitions has stopped making progress
const maxSteps = 50000

// Config holds configuration for running simulations
type Config struct {
	Games   int
	Seed    int64
	Timeout time.Duration
	Workers int // concurrent games; 0 means GOMAXPROCS
	Logger  *log.Logger
}

// Simulator runs full games to completion
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	return &Simulator{config: config}
}

// Run executes the simulation and returns aggregate results
func (s *Simulator) Run() (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}

	workers := s.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Games run concurrently but results land in seed order, so aggregates
	// are identical regardless of worker count.
	results := make([]statistics.GameResult, s.config.Games)
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < s.config.Games; i++ {
		g.Go(func() error {
			gameSeed := s.config.Seed + int64(i)
			result, err := s.playGameWithTimeout(gameSeed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, gameSeed, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := statistics.New()
	for i, result := range results {
		stats.Add(result)
		s.config.Logger.Debug("game finished",
			"game", i+1,
			"winner", result.Winner,
			"hands", result.Hands,
			"margin", result.Margin())
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playGameWithTimeout runs a single game with hang protection
func (s *Simulator) playGameWithTimeout(seed int64) (statistics.GameResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	resultCh := make(chan statistics.GameResult, 1)
	errCh := make(chan error, 1)
	go func() {
		result, err := s.playGame(seed)
		if err != nil {
			errCh <- err
			return
		}
		resultCh <- result
	}()

	select {
	case result := <-resultCh:
		return result, nil
	case err := <-errCh:
		return statistics.GameResult{}, err
	case <-ctx.Done():
		return statistics.GameResult{}, fmt.Errorf("game timed out after %v", s.config.Timeout)
	}
}

// playGame drives one game to completion, all four seats played by the
// shared bot policy
func (s *Simulator) playGame(seed int64) (statistics.GameResult, error) {
	eng := game.NewEngine(s.config.Logger, randutil.New(seed))
	b := bot.NewBot(s.config.Logger)

	eng.CreateGame("sim", "Sim")
	for _, seat := range []game.Seat{game.SeatB1, game.SeatA2, game.SeatB2} {
		eng.AddBot(seat)
	}
	eng.SetPlayerReady(game.SeatA1)

	result := statistics.GameResult{
		Seed:    seed,
		Sets:    map[game.Team]int{game.TeamA: 0, game.TeamB: 0},
		BidsWon: map[game.Team]int{game.TeamA: 0, game.TeamB: 0},
	}

	for step := 0; step < maxSteps; step++ {
		snap := eng.Snapshot()

		// A completed trick with empty hands is the scoring moment; it
		// occurs exactly once per hand, before the trick is cleared or
		// the game completes.
		if snap.Hand != nil && snap.Hand.Trick.Complete && handsEmpty(snap) {
			recap := snap.LastRecap
			result.Hands++
			result.BidsWon[recap.BidWinner.Team()]++
			if !recap.Made {
				result.Sets[recap.BidWinner.Team()]++
			}
		}

		if snap.Status == game.StatusCompleted {
			result.FinalScores = snap.Scores
			result.Winner = game.TeamA
			if snap.Scores[game.TeamB] > snap.Scores[game.TeamA] {
				result.Winner = game.TeamB
			}
			return result, nil
		}

		if err := s.advance(eng, b, snap); err != nil {
			return statistics.GameResult{}, err
		}
	}
	return statistics.GameResult{}, fmt.Errorf("no progress after %d steps", maxSteps)
}

// advance applies exactly one transition for the current snapshot
func (s *Simulator) advance(eng *game.Engine, b *bot.Bot, snap *game.GameState) error {
	turn := snap.CurrentTurn
	switch snap.Phase {
	case game.PhaseDealing:
		if !eng.StartNewHand() {
			return fmt.Errorf("deal rejected")
		}
	case game.PhaseBidding:
		if !eng.PlaceBid(turn, b.Bid(turn, snap)) {
			return fmt.Errorf("bid rejected for %s", turn)
		}
	case game.PhaseWidow:
		if !eng.SelectGoDown(turn, b.GoDown(turn, snap)) {
			return fmt.Errorf("go-down rejected for %s", turn)
		}
	case game.PhaseTrump:
		if !eng.SelectTrump(turn, b.Trump(turn, snap)) {
			return fmt.Errorf("trump rejected for %s", turn)
		}
	case game.PhasePlaying:
		if snap.Hand.Trick.Complete {
			if !eng.ClearTrick(snap.Hand.Trick.Winner) {
				return fmt.Errorf("trick clear rejected")
			}
			return nil
		}
		if handsEmpty(snap) {
			if !eng.StartNextHandWithNewDealer() {
				return fmt.Errorf("hand rotation rejected")
			}
			return nil
		}
		card, err := b.Card(turn, snap)
		if err != nil {
			return fmt.Errorf("card decision for %s: %w", turn, err)
		}
		if !eng.PlayCard(turn, card) {
			return fmt.Errorf("play %s rejected for %s", card, turn)
		}
	default:
		return fmt.Errorf("unexpected phase %s", snap.Phase)
	}
	return nil
}

func handsEmpty(snap *game.GameState) bool {
	for _, seat := range game.SeatOrder {
		p := snap.Players[seat]
		if p != nil && len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

// Report renders the aggregate results as a readable block of text
func Report(stats *statistics.Statistics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Games:           %d\n", stats.Games)
	fmt.Fprintf(&b, "Hands per game:  %.1f (min %d, max %d)\n",
		stats.HandsPerGame(), stats.MinHands, stats.MaxHands)
	for _, team := range game.Teams {
		fmt.Fprintf(&b, "Team %s:          %d wins (%.1f%%), %d auctions, %d sets\n",
			team, stats.Wins[team], stats.WinRate(team)*100,
			stats.BidsWon[team], stats.Sets[team])
	}
	lo, hi := stats.MarginConfidence95()
	fmt.Fprintf(&b, "Winner margin:   mean %.1f, median %.1f, 95%% CI [%.1f, %.1f]\n",
		stats.MeanMargin(), stats.MedianMargin(), lo, hi)
	return b.String()
}
