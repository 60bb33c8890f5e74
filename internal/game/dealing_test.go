package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slimsherpa/rook13/internal/deck"
	"github.com/slimsherpa/rook13/internal/randutil"
)

func TestDealHandsPartition(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		d := deck.New(randutil.New(seed))
		hands, widow := DealHands(d)

		require.Len(t, hands, 4)
		seen := make(map[deck.Card]bool)
		for _, seat := range SeatOrder {
			require.Len(t, hands[seat], CardsPerPlayer, "seed %d seat %s", seed, seat)
			for _, c := range hands[seat] {
				assert.False(t, seen[c], "seed %d: duplicate %s", seed, c)
				seen[c] = true
			}
		}
		require.Len(t, widow, WidowSize)
		for _, c := range widow {
			assert.False(t, seen[c], "seed %d: widow duplicate %s", seed, c)
			seen[c] = true
		}
		assert.Len(t, seen, deck.Size)
		assert.Equal(t, 0, d.CardsRemaining())
	}
}

func TestDealHandsDeterministicForSeed(t *testing.T) {
	h1, w1 := DealHands(deck.New(randutil.New(11)))
	h2, w2 := DealHands(deck.New(randutil.New(11)))
	assert.Equal(t, h1, h2)
	assert.Equal(t, w1, w2)
}
