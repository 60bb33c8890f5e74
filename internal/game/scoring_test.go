package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slimsherpa/rook13/internal/deck"
)

// scoredState builds a finished-hand aggregate ready for scoreHand
func scoredState(bidWinner Seat, bid Bid, captured map[Team]int, tricks map[Team]int, goDown []deck.Card) *GameState {
	trump := deck.Black
	return &GameState{
		Status:  StatusActive,
		Phase:   PhasePlaying,
		Dealer:  SeatA1,
		Scores:  map[Team]int{TeamA: 0, TeamB: 0},
		Players: map[Seat]*Player{},
		Hand: &HandState{
			GoDown: goDown,
			Bidding: BiddingState{
				Bids:       map[Seat]Bid{bidWinner: bid},
				CurrentBid: bid,
				Winner:     bidWinner,
			},
			Trump:       &trump,
			Trick:       newTrickState(),
			TrickCounts: tricks,
			Captured:    captured,
		},
	}
}

func TestScoreHandBidMade(t *testing.T) {
	// Team A bids 70 and captures 80 of the 100 counter points incl go-down
	gs := scoredState(SeatA1, 70,
		map[Team]int{TeamA: 70, TeamB: 20},
		map[Team]int{TeamA: 6, TeamB: 3},
		[]deck.Card{deck.NewCard(deck.Red, 10)}, // 10 points
	)
	recap := scoreHand(gs, TeamA)

	require.True(t, recap.Made)
	// 70 captured + 10 go-down = 80, plus 20 for six tricks
	assert.Equal(t, 100, recap.Deltas[TeamA])
	assert.Equal(t, 20, recap.Deltas[TeamB])
	assert.Equal(t, 100, gs.Scores[TeamA])
	assert.Equal(t, 20, gs.Scores[TeamB])
	assert.Equal(t, 10, recap.GoDownPoints)
}

func TestScoreHandSet(t *testing.T) {
	// Bid 75, captured only 70: team is set back the full bid
	gs := scoredState(SeatB1, 75,
		map[Team]int{TeamA: 30, TeamB: 70},
		map[Team]int{TeamA: 4, TeamB: 5},
		nil,
	)
	recap := scoreHand(gs, TeamB)

	require.False(t, recap.Made)
	assert.Equal(t, -75, recap.Deltas[TeamB], "set costs the bid, no bonus even with 5 tricks")
	assert.Equal(t, 30, recap.Deltas[TeamA])
	assert.Equal(t, -75, gs.Scores[TeamB])
	assert.Equal(t, 30, gs.Scores[TeamA])
}

func TestScoreHandGoDownDecidesContract(t *testing.T) {
	// Captured 60 on a 65 bid; the go-down's 10 points land on the bidding
	// team because it won the last trick, lifting it over the bid
	goDown := []deck.Card{deck.NewCard(deck.Green, 5), deck.NewCard(deck.Yellow, 5)}
	gs := scoredState(SeatA2, 65,
		map[Team]int{TeamA: 60, TeamB: 40},
		map[Team]int{TeamA: 4, TeamB: 5},
		goDown,
	)
	recap := scoreHand(gs, TeamA)

	assert.True(t, recap.Made)
	assert.Equal(t, 70, recap.Deltas[TeamA])
	// Five tricks earn the defenders the bonus on top of their points
	assert.Equal(t, 60, recap.Deltas[TeamB])
}

func TestScoreHandOpponentUnaffectedByBidOutcome(t *testing.T) {
	// The defending team banks its own points whether or not the bid made
	for _, capturedByBidder := range []int{50, 90} {
		gs := scoredState(SeatA1, 80,
			map[Team]int{TeamA: capturedByBidder, TeamB: 45},
			map[Team]int{TeamA: 4, TeamB: 5},
			nil,
		)
		scoreHand(gs, TeamA)
		assert.Equal(t, 45+TrickBonus, gs.Scores[TeamB])
	}
}

func TestGameOverThresholdsAreStrict(t *testing.T) {
	assert.False(t, gameOver(map[Team]int{TeamA: 500, TeamB: 0}))
	assert.True(t, gameOver(map[Team]int{TeamA: 501, TeamB: 0}))
	assert.False(t, gameOver(map[Team]int{TeamA: 0, TeamB: -250}))
	assert.True(t, gameOver(map[Team]int{TeamA: 0, TeamB: -251}))
	assert.False(t, gameOver(map[Team]int{TeamA: 120, TeamB: -120}))
}

func TestCompletedGameBlocksFurtherHands(t *testing.T) {
	e, _ := playingEngine(t, 21)

	// Both teams sit far past the win line, so whatever this hand scores the
	// game ends when it is tallied.
	e.mu.Lock()
	e.state.Scores[TeamA] = 2000
	e.state.Scores[TeamB] = 2000
	e.mu.Unlock()

	playOutHand(t, e)

	snap := e.Snapshot()
	require.Equal(t, StatusCompleted, snap.Status)
	assert.False(t, e.StartNextHandWithNewDealer(),
		"completed game must not start another hand")
	assert.False(t, e.StartNewHand())
}
