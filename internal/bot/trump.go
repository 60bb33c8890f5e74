package bot

import (
	"sort"

	"github.com/slimsherpa/rook13/internal/deck"
)

// highRank is the threshold above which a card counts as a high card when
// weighing suits
const highRank = 10

// suitProfile summarizes one suit's holding in a hand
type suitProfile struct {
	count  int
	points int
	high   int
}

// score weighs length over raw points: a long suit makes a better trump than
// a short one with counters in it
func (p suitProfile) score() int {
	return p.count*10 + p.points*2 + p.high*3
}

func profileSuits(hand []deck.Card) map[deck.Suit]suitProfile {
	profiles := map[deck.Suit]suitProfile{}
	for _, c := range hand {
		p := profiles[c.Suit]
		p.count++
		p.points += c.Points()
		if c.Rank >= highRank {
			p.high++
		}
		profiles[c.Suit] = p
	}
	return profiles
}

// DecideTrump chooses the suit the hand is strongest in. Ties break toward
// the earlier suit in deck.Suits so the choice is deterministic.
func DecideTrump(hand []deck.Card) deck.Suit {
	profiles := profileSuits(hand)

	best := deck.Red
	bestScore := -1
	for _, suit := range deck.Suits {
		if score := profiles[suit].score(); score > bestScore {
			best = suit
			bestScore = score
		}
	}
	return best
}

// DecideGoDown picks the four cards to set aside after winning the bid: the
// lowest-value cards, cheapest counters first, then lowest rank. Returns nil
// if the hand holds fewer than four cards.
func DecideGoDown(hand []deck.Card) []deck.Card {
	if len(hand) < 4 {
		return nil
	}

	sorted := make([]deck.Card, len(hand))
	copy(sorted, hand)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Points() != sorted[j].Points() {
			return sorted[i].Points() < sorted[j].Points()
		}
		return sorted[i].Rank < sorted[j].Rank
	})
	return sorted[:4]
}
