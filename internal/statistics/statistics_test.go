package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slimsherpa/rook13/internal/game"
)

func result(winner game.Team, hands, winnerScore, loserScore int) GameResult {
	scores := map[game.Team]int{winner: winnerScore, winner.Opponent(): loserScore}
	return GameResult{
		Winner:      winner,
		Hands:       hands,
		FinalScores: scores,
		Sets:        map[game.Team]int{game.TeamA: 1, game.TeamB: 0},
		BidsWon:     map[game.Team]int{game.TeamA: hands / 2, game.TeamB: hands - hands/2},
		Seed:        1,
	}
}

func TestAddAccumulates(t *testing.T) {
	s := New()
	s.Add(result(game.TeamA, 10, 520, 300))
	s.Add(result(game.TeamB, 8, 510, 410))

	assert.Equal(t, 2, s.Games)
	assert.Equal(t, 18, s.Hands)
	assert.Equal(t, 1, s.Wins[game.TeamA])
	assert.Equal(t, 1, s.Wins[game.TeamB])
	assert.Equal(t, 8, s.MinHands)
	assert.Equal(t, 10, s.MaxHands)
	assert.InDelta(t, 0.5, s.WinRate(game.TeamA), 1e-9)
	assert.InDelta(t, 9.0, s.HandsPerGame(), 1e-9)
}

func TestMarginMoments(t *testing.T) {
	s := New()
	s.Add(result(game.TeamA, 10, 520, 320)) // margin 200
	s.Add(result(game.TeamA, 10, 510, 410)) // margin 100
	s.Add(result(game.TeamB, 10, 530, 230)) // margin 300

	assert.InDelta(t, 200.0, s.MeanMargin(), 1e-9)
	assert.InDelta(t, 200.0, s.MedianMargin(), 1e-9)
	assert.InDelta(t, 10000.0, s.MarginVariance(), 1e-6)
	assert.InDelta(t, 100.0, s.MarginStdDev(), 1e-6)

	lo, hi := s.MarginConfidence95()
	assert.Less(t, lo, s.MeanMargin())
	assert.Greater(t, hi, s.MeanMargin())
}

func TestValidate(t *testing.T) {
	s := New()
	require.Error(t, s.Validate(), "empty statistics are invalid")

	s.Add(result(game.TeamA, 10, 520, 300))
	require.NoError(t, s.Validate())

	s.Hands++ // desync auctions from hands
	assert.Error(t, s.Validate())
}

func TestMargin(t *testing.T) {
	r := result(game.TeamB, 6, 505, 480)
	assert.Equal(t, 25, r.Margin())
}
