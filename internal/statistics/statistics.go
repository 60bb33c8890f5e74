// Package statistics aggregates results from simulated games.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/slimsherpa/rook13/internal/game"
)

// GameResult is the outcome of a single simulated game
type GameResult struct {
	Winner      game.Team
	Hands       int               // hands played before the game ended
	FinalScores map[game.Team]int // totals when the game ended
	Sets        map[game.Team]int // hands each team bid and got set
	BidsWon     map[game.Team]int // auctions each team won
	Seed        int64             // RNG seed for replay
}

// Margin is the winner's lead over the loser in points
func (r GameResult) Margin() int {
	return r.FinalScores[r.Winner] - r.FinalScores[r.Winner.Opponent()]
}

// Statistics tracks aggregates across many simulated games
type Statistics struct {
	Games int
	Hands int

	Wins    map[game.Team]int
	Sets    map[game.Team]int
	BidsWon map[game.Team]int

	// Winner margin moments, for mean/variance over games
	MarginSum  float64
	MarginSum2 float64
	Margins    []float64

	MinHands int
	MaxHands int
}

// New creates empty statistics
func New() *Statistics {
	return &Statistics{
		Wins:    map[game.Team]int{game.TeamA: 0, game.TeamB: 0},
		Sets:    map[game.Team]int{game.TeamA: 0, game.TeamB: 0},
		BidsWon: map[game.Team]int{game.TeamA: 0, game.TeamB: 0},
	}
}

// Add incorporates one game result
func (s *Statistics) Add(result GameResult) {
	s.Games++
	s.Hands += result.Hands

	s.Wins[result.Winner]++
	for _, team := range game.Teams {
		s.Sets[team] += result.Sets[team]
		s.BidsWon[team] += result.BidsWon[team]
	}

	margin := float64(result.Margin())
	s.MarginSum += margin
	s.MarginSum2 += margin * margin
	s.Margins = append(s.Margins, margin)

	if s.MinHands == 0 || result.Hands < s.MinHands {
		s.MinHands = result.Hands
	}
	if result.Hands > s.MaxHands {
		s.MaxHands = result.Hands
	}
}

// WinRate returns the fraction of games won by team
func (s *Statistics) WinRate(team game.Team) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins[team]) / float64(s.Games)
}

// HandsPerGame returns the mean number of hands a game took
func (s *Statistics) HandsPerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Hands) / float64(s.Games)
}

// MeanMargin returns the mean winner margin in points
func (s *Statistics) MeanMargin() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.MarginSum / float64(s.Games)
}

// MarginVariance returns the sample variance of the winner margin
func (s *Statistics) MarginVariance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.MeanMargin()
	return (s.MarginSum2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// MarginStdDev returns the sample standard deviation of the winner margin
func (s *Statistics) MarginStdDev() float64 {
	return math.Sqrt(s.MarginVariance())
}

// MarginStdError returns the standard error of the mean margin
func (s *Statistics) MarginStdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.MarginStdDev() / math.Sqrt(float64(s.Games))
}

// MarginConfidence95 returns the 95% confidence interval for the mean margin
func (s *Statistics) MarginConfidence95() (float64, float64) {
	mean := s.MeanMargin()
	margin := 1.96 * s.MarginStdError()
	return mean - margin, mean + margin
}

// MedianMargin returns the median winner margin
func (s *Statistics) MedianMargin() float64 {
	if len(s.Margins) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Margins))
	copy(sorted, s.Margins)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Validate checks the aggregates for internal consistency
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid game count: %d", s.Games)
	}
	if len(s.Margins) != s.Games {
		return fmt.Errorf("margins length (%d) does not match game count (%d)",
			len(s.Margins), s.Games)
	}
	if s.Wins[game.TeamA]+s.Wins[game.TeamB] != s.Games {
		return fmt.Errorf("wins (%d+%d) do not sum to game count (%d)",
			s.Wins[game.TeamA], s.Wins[game.TeamB], s.Games)
	}
	bidsWon := s.BidsWon[game.TeamA] + s.BidsWon[game.TeamB]
	if bidsWon != s.Hands {
		return fmt.Errorf("auctions won (%d) do not match hands played (%d)", bidsWon, s.Hands)
	}
	sets := s.Sets[game.TeamA] + s.Sets[game.TeamB]
	if sets > s.Hands {
		return fmt.Errorf("sets (%d) exceed hands played (%d)", sets, s.Hands)
	}
	return nil
}
