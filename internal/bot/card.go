package bot

import (
	"errors"

	"github.com/slimsherpa/rook13/internal/deck"
	"github.com/slimsherpa/rook13/internal/game"
)

var errEmptyHand = errors.New("bot has no cards to play")

// longSuit is the minimum holding that makes a suit worth leading high from
const longSuit = 3

// DecideCard decides which card seat should play into the current trick.
// Every branch returns a card from the legal subset; the only error is an
// empty hand, which is a caller bug.
//
// Leading: from a long trump holding early in the hand, lead the highest
// trump to drain the opponents; otherwise lead high from a long suit;
// otherwise lead the cheapest card. Following suit: take the trick with the
// cheapest winning card when there are points on the table, otherwise duck
// low. Void in the lead suit: ruff with the lowest trump that wins when
// points are at stake or the trick is still young, otherwise throw off the
// lowest-value card.
func DecideCard(hand []deck.Card, seat game.Seat, trick map[game.Seat]*deck.Card, leadSuit *deck.Suit, trump *deck.Suit) (deck.Card, error) {
	if len(hand) == 0 {
		return deck.Card{}, errEmptyHand
	}

	legal := game.LegalPlays(hand, leadSuit)
	if len(legal) == 0 {
		// Cannot happen: a non-empty hand always has a legal play.
		return hand[0], nil
	}

	if leadSuit == nil {
		return leadCard(hand, legal, trump), nil
	}

	trickPoints := 0
	played := 0
	for _, c := range trick {
		if c != nil {
			trickPoints += c.Points()
			played++
		}
	}

	if holdsSuit(hand, *leadSuit) {
		if trickPoints > 0 {
			if card, ok := cheapestWinner(legal, seat, trick, *leadSuit, trump); ok {
				return card, nil
			}
		}
		return lowestRank(legal), nil
	}

	if trump != nil && (trickPoints > 0 || played <= 2) {
		trumps := ofSuit(legal, *trump)
		if len(trumps) > 0 {
			if card, ok := cheapestWinner(trumps, seat, trick, *leadSuit, trump); ok {
				return card, nil
			}
		}
	}
	return lowestValue(legal), nil
}

// leadCard picks a card when opening a trick
func leadCard(hand, legal []deck.Card, trump *deck.Suit) deck.Card {
	if trump != nil && len(hand) >= 7 {
		trumps := ofSuit(legal, *trump)
		if len(trumps) >= longSuit {
			return highestRank(trumps)
		}
	}

	counts := map[deck.Suit]int{}
	for _, c := range hand {
		counts[c.Suit]++
	}
	var fromLongSuits []deck.Card
	for _, c := range legal {
		if counts[c.Suit] >= longSuit && c.Rank >= highRank {
			fromLongSuits = append(fromLongSuits, c)
		}
	}
	if len(fromLongSuits) > 0 {
		return highestRank(fromLongSuits)
	}

	return lowestRank(legal)
}

// cheapestWinner returns the lowest-ranked candidate that would win the
// trick as it stands
func cheapestWinner(candidates []deck.Card, seat game.Seat, trick map[game.Seat]*deck.Card, leadSuit deck.Suit, trump *deck.Suit) (deck.Card, bool) {
	var winner deck.Card
	found := false
	for _, c := range candidates {
		if !wouldWin(c, seat, trick, leadSuit, trump) {
			continue
		}
		if !found || c.Rank < winner.Rank {
			winner = c
			found = true
		}
	}
	return winner, found
}

// wouldWin reports whether playing card now would take the trick so far
func wouldWin(card deck.Card, seat game.Seat, trick map[game.Seat]*deck.Card, leadSuit deck.Suit, trump *deck.Suit) bool {
	cards := map[game.Seat]deck.Card{seat: card}
	for s, c := range trick {
		if c != nil {
			cards[s] = *c
		}
	}
	return game.DetermineTrickWinner(cards, leadSuit, trump) == seat
}

func holdsSuit(hand []deck.Card, suit deck.Suit) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

func ofSuit(cards []deck.Card, suit deck.Suit) []deck.Card {
	var matched []deck.Card
	for _, c := range cards {
		if c.Suit == suit {
			matched = append(matched, c)
		}
	}
	return matched
}

func highestRank(cards []deck.Card) deck.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank > best.Rank {
			best = c
		}
	}
	return best
}

func lowestRank(cards []deck.Card) deck.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank < best.Rank {
			best = c
		}
	}
	return best
}

// lowestValue prefers the cheapest counter value, then the lowest rank
func lowestValue(cards []deck.Card) deck.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Points() < best.Points() || (c.Points() == best.Points() && c.Rank < best.Rank) {
			best = c
		}
	}
	return best
}
