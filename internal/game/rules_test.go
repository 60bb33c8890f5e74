package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slimsherpa/rook13/internal/deck"
)

func suitPtr(s deck.Suit) *deck.Suit { return &s }

func TestCanPlayCardMustFollowSuit(t *testing.T) {
	hand := []deck.Card{
		deck.NewCard(deck.Red, 7),
		deck.NewCard(deck.Red, 12),
		deck.NewCard(deck.Black, 9),
	}

	// Holding the lead suit: only lead-suit cards are legal
	lead := suitPtr(deck.Red)
	assert.True(t, CanPlayCard(deck.NewCard(deck.Red, 7), lead, hand))
	assert.True(t, CanPlayCard(deck.NewCard(deck.Red, 12), lead, hand))
	assert.False(t, CanPlayCard(deck.NewCard(deck.Black, 9), lead, hand))
}

func TestCanPlayCardVoidInLeadSuit(t *testing.T) {
	hand := []deck.Card{
		deck.NewCard(deck.Yellow, 6),
		deck.NewCard(deck.Black, 14),
	}

	// Void in the lead suit: everything is legal, trump included
	lead := suitPtr(deck.Green)
	for _, c := range hand {
		assert.True(t, CanPlayCard(c, lead, hand))
	}
}

func TestCanPlayCardLeading(t *testing.T) {
	hand := []deck.Card{
		deck.NewCard(deck.Yellow, 6),
		deck.NewCard(deck.Black, 14),
	}
	for _, c := range hand {
		assert.True(t, CanPlayCard(c, nil, hand))
	}
}

func TestLegalPlays(t *testing.T) {
	hand := []deck.Card{
		deck.NewCard(deck.Red, 7),
		deck.NewCard(deck.Red, 12),
		deck.NewCard(deck.Black, 9),
	}
	legal := LegalPlays(hand, suitPtr(deck.Red))
	assert.Len(t, legal, 2)
	for _, c := range legal {
		assert.Equal(t, deck.Red, c.Suit)
	}

	assert.Len(t, LegalPlays(hand, suitPtr(deck.Green)), 3)
	assert.Len(t, LegalPlays(hand, nil), 3)
}

func TestDetermineTrickWinnerHighestLeadSuit(t *testing.T) {
	cards := map[Seat]deck.Card{
		SeatA1: deck.NewCard(deck.Red, 9),
		SeatB1: deck.NewCard(deck.Red, 13),
		SeatA2: deck.NewCard(deck.Red, 5),
		SeatB2: deck.NewCard(deck.Yellow, 14), // off-suit, never wins
	}
	winner := DetermineTrickWinner(cards, deck.Red, nil)
	assert.Equal(t, SeatB1, winner)
}

func TestDetermineTrickWinnerTrumpBeatsLead(t *testing.T) {
	// Trump is Black; A1 leads R5, B1 plays B10. B1 wins regardless of any
	// other red card in the trick, trump beats lead suit unconditionally.
	cards := map[Seat]deck.Card{
		SeatA1: deck.NewCard(deck.Red, 5),
		SeatB1: deck.NewCard(deck.Black, 10),
		SeatA2: deck.NewCard(deck.Red, 14),
		SeatB2: deck.NewCard(deck.Red, 13),
	}
	winner := DetermineTrickWinner(cards, deck.Red, suitPtr(deck.Black))
	assert.Equal(t, SeatB1, winner)
}

func TestDetermineTrickWinnerHighestTrump(t *testing.T) {
	cards := map[Seat]deck.Card{
		SeatA1: deck.NewCard(deck.Red, 14),
		SeatB1: deck.NewCard(deck.Black, 6),
		SeatA2: deck.NewCard(deck.Black, 11),
		SeatB2: deck.NewCard(deck.Yellow, 10),
	}
	winner := DetermineTrickWinner(cards, deck.Red, suitPtr(deck.Black))
	assert.Equal(t, SeatA2, winner)
}

func TestDetermineTrickWinnerOrderInvariant(t *testing.T) {
	cards := map[Seat]deck.Card{
		SeatA1: deck.NewCard(deck.Green, 8),
		SeatB1: deck.NewCard(deck.Green, 12),
		SeatA2: deck.NewCard(deck.Yellow, 13),
		SeatB2: deck.NewCard(deck.Green, 11),
	}

	// Rebuild the map in different insertion orders; the winner is a
	// function of the set of (seat, card) pairs, not their presentation.
	orders := [][]Seat{
		{SeatA1, SeatB1, SeatA2, SeatB2},
		{SeatB2, SeatA2, SeatB1, SeatA1},
		{SeatA2, SeatA1, SeatB2, SeatB1},
	}
	for _, order := range orders {
		m := make(map[Seat]deck.Card, len(order))
		for _, seat := range order {
			m[seat] = cards[seat]
		}
		assert.Equal(t, SeatB1, DetermineTrickWinner(m, deck.Green, suitPtr(deck.Red)))
	}
}

func TestSeatHelpers(t *testing.T) {
	assert.Equal(t, SeatB1, SeatA1.Next())
	assert.Equal(t, SeatA2, SeatB1.Next())
	assert.Equal(t, SeatB2, SeatA2.Next())
	assert.Equal(t, SeatA1, SeatB2.Next())

	assert.Equal(t, SeatA2, SeatA1.Partner())
	assert.Equal(t, SeatB2, SeatB1.Partner())

	assert.Equal(t, TeamA, SeatA1.Team())
	assert.Equal(t, TeamB, SeatB2.Team())
	assert.Equal(t, TeamB, TeamA.Opponent())
}

func TestBidLadder(t *testing.T) {
	ladder := BidLadder()
	assert.Len(t, ladder, 12)
	assert.Equal(t, Bid(65), ladder[0])
	assert.Equal(t, Bid(120), ladder[len(ladder)-1])

	assert.True(t, Bid(75).OnLadder())
	assert.False(t, Bid(72).OnLadder())
	assert.False(t, Bid(125).OnLadder())
	assert.Equal(t, Bid(85), NextRungAbove(80))
	assert.Equal(t, Pass, NextRungAbove(120))
}
