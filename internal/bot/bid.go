package bot

import (
	"github.com/slimsherpa/rook13/internal/deck"
	"github.com/slimsherpa/rook13/internal/game"
)

// Opening-bid strength thresholds. Strength is roughly 0-100 for a nine-card
// hand: twice the counter points, plus five per high card, plus eight per
// card of the candidate trump suit.
const (
	strongOpen = 90
	goodOpen   = 80
	fairOpen   = 70
)

// DecideBid decides a bid for seat given the auction so far. A seat that has
// already passed must pass again; a seat facing three passes must keep the
// auction alive with a real bid. Otherwise the bid comes from hand strength
// around the best candidate trump suit, nudged by the partner's bid and by
// position relative to the dealer.
func DecideBid(hand []deck.Card, seat, dealer game.Seat, bids map[game.Seat]game.Bid, currentBid game.Bid) game.Bid {
	if bid, ok := bids[seat]; ok && bid.IsPass() {
		return game.Pass
	}

	othersPassed := 0
	for _, other := range game.SeatOrder {
		if other == seat {
			continue
		}
		if bid, ok := bids[other]; ok && bid.IsPass() {
			othersPassed++
		}
	}
	// Everyone else folded the auction; this seat is not allowed to pass.
	if othersPassed == 3 {
		if next := game.NextRungAbove(currentBid); !next.IsPass() {
			return next
		}
		return game.MinBid
	}

	strength := handStrength(hand)

	// A partner already committed to a real bid means the partnership holds
	// more than this hand alone shows.
	if bid, ok := bids[seat.Partner()]; ok && !bid.IsPass() {
		strength += 10
	}

	// The dealer leads the first trick, so bidding from the dealer's seat is
	// worth more and bidding just ahead of the dealer is worth less.
	if seat == dealer {
		strength += 5
	}
	if dealer.Next() == seat {
		strength -= 5
	}

	if currentBid.IsPass() {
		switch {
		case strength >= strongOpen:
			return game.Bid(strongOpen)
		case strength >= goodOpen:
			return game.Bid(goodOpen)
		case strength >= fairOpen:
			return game.Bid(fairOpen)
		default:
			return game.MinBid
		}
	}

	// Raise over a standing bid only when strength comfortably clears it.
	if int(currentBid)*100 > strength*85 {
		return game.Pass
	}
	if strength > int(currentBid)+10 {
		if next := game.NextRungAbove(currentBid); !next.IsPass() {
			return next
		}
	}
	return game.Pass
}

// handStrength scores a hand around its best candidate trump suit
func handStrength(hand []deck.Card) int {
	profiles := profileSuits(hand)
	trump := DecideTrump(hand)

	high := 0
	for _, c := range hand {
		if c.Rank >= highRank {
			high++
		}
	}
	return deck.SumPoints(hand)*2 + high*5 + profiles[trump].count*8
}
