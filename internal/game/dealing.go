package game

import "github.com/slimsherpa/rook13/internal/deck"

// Cards dealt per hand
const (
	CardsPerPlayer = 9
	WidowSize      = 4
)

// DealHands shuffles a full deck and partitions it into four 9-card hands
// keyed by seat plus the 4-card widow. The deck is consumed exactly once.
func DealHands(d *deck.Deck) (map[Seat][]deck.Card, []deck.Card) {
	d.Shuffle()

	hands := make(map[Seat][]deck.Card, len(SeatOrder))
	for _, seat := range SeatOrder {
		hands[seat] = d.DealN(CardsPerPlayer)
	}
	widow := d.DealN(WidowSize)
	return hands, widow
}
