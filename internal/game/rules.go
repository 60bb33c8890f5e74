package game

import "github.com/slimsherpa/rook13/internal/deck"

// CanPlayCard reports whether card is a legal play from hand given the suit
// that led the trick. Leading (leadSuit nil) is unrestricted. A hand holding
// the lead suit must follow it; a void hand may play anything, trump
// included.
func CanPlayCard(card deck.Card, leadSuit *deck.Suit, hand []deck.Card) bool {
	if leadSuit == nil {
		return true
	}
	for _, c := range hand {
		if c.Suit == *leadSuit {
			return card.Suit == *leadSuit
		}
	}
	return true
}

// LegalPlays filters hand down to the cards CanPlayCard allows
func LegalPlays(hand []deck.Card, leadSuit *deck.Suit) []deck.Card {
	legal := make([]deck.Card, 0, len(hand))
	for _, c := range hand {
		if CanPlayCard(c, leadSuit, hand) {
			legal = append(legal, c)
		}
	}
	return legal
}

// DetermineTrickWinner resolves a completed trick. Any trump on the table
// wins for the highest trump; otherwise the highest card of the lead suit
// wins. Off-suit cards never win. Ranks within a suit are unique, so there
// are no ties to break. The result does not depend on the order the pairs
// are examined in.
func DetermineTrickWinner(cards map[Seat]deck.Card, leadSuit deck.Suit, trump *deck.Suit) Seat {
	if trump != nil {
		if winner, ok := highestOfSuit(cards, *trump); ok {
			return winner
		}
	}
	if winner, ok := highestOfSuit(cards, leadSuit); ok {
		return winner
	}
	// Unreachable in a legal game: the leader's card always matches leadSuit.
	for _, seat := range SeatOrder {
		if _, ok := cards[seat]; ok {
			return seat
		}
	}
	return ""
}

func highestOfSuit(cards map[Seat]deck.Card, suit deck.Suit) (Seat, bool) {
	var winner Seat
	best := deck.Rank(0)
	for _, seat := range SeatOrder {
		card, ok := cards[seat]
		if !ok || card.Suit != suit {
			continue
		}
		if card.Rank > best {
			best = card.Rank
			winner = seat
		}
	}
	return winner, winner != ""
}
