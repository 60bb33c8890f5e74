package display

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/slimsherpa/rook13/internal/deck"
	"github.com/slimsherpa/rook13/internal/game"
	"github.com/slimsherpa/rook13/internal/randutil"
)

func activeSnapshot(t *testing.T, seed int64) *game.GameState {
	t.Helper()
	logger := log.New(io.Discard)
	e := game.NewEngine(logger, randutil.New(seed))
	e.CreateGame("p1", "Alice")
	for _, seat := range []game.Seat{game.SeatB1, game.SeatA2, game.SeatB2} {
		e.AddBot(seat)
	}
	e.SetPlayerReady(game.SeatA1)
	e.StartNewHand()
	return e.Snapshot()
}

func TestHandSortsBySuitThenRank(t *testing.T) {
	out := Hand([]deck.Card{
		deck.NewCard(deck.Green, 5),
		deck.NewCard(deck.Red, 14),
		deck.NewCard(deck.Red, 6),
	})
	assert.Contains(t, out, "R6")
	assert.Less(t,
		indexOf(out, "R6"), indexOf(out, "R14"),
		"ranks within a suit should ascend")
	assert.Less(t,
		indexOf(out, "R14"), indexOf(out, "G5"),
		"red should come before green")
}

func TestCardsEmpty(t *testing.T) {
	assert.Contains(t, Cards(nil), "none")
}

func TestTableShowsBiddingAndHand(t *testing.T) {
	snap := activeSnapshot(t, 7)
	out := Table(snap, game.SeatA1)

	assert.Contains(t, out, "bidding")
	assert.Contains(t, out, "Team A 0 | Team B 0")
	assert.Contains(t, out, "Your hand:")
}

func TestTableMarksViewersTurn(t *testing.T) {
	snap := activeSnapshot(t, 7)
	out := Table(snap, snap.CurrentTurn)
	assert.Contains(t, out, "Your turn")

	out = Table(snap, snap.CurrentTurn.Next())
	assert.NotContains(t, out, "Your turn")
}

func TestTableNilSnapshot(t *testing.T) {
	assert.Contains(t, Table(nil, game.SeatA1), "no game")
}

func TestRecap(t *testing.T) {
	r := &game.HandRecap{
		Dealer:      game.SeatA1,
		BidWinner:   game.SeatB1,
		Bid:         80,
		Trump:       deck.Black,
		TrickCounts: map[game.Team]int{game.TeamA: 4, game.TeamB: 5},
		Points:      map[game.Team]int{game.TeamA: 55, game.TeamB: 85},
		Deltas:      map[game.Team]int{game.TeamA: 55, game.TeamB: 85},
		Made:        true,
	}
	out := Recap(r)
	assert.Contains(t, out, "B1 bid 80 in Black")
	assert.Contains(t, out, "MADE")

	r.Made = false
	r.Deltas[game.TeamB] = -80
	assert.Contains(t, Recap(r), "SET")

	assert.Equal(t, "", Recap(nil))
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
