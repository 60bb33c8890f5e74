package deck

import (
	"fmt"
	"strconv"
)

// Suit represents one of the four Rook colors
type Suit int

const (
	Red Suit = iota
	Yellow
	Black
	Green
)

// Suits lists all four suits in a stable order
var Suits = []Suit{Red, Yellow, Black, Green}

// String returns the full name of the suit
func (s Suit) String() string {
	switch s {
	case Red:
		return "Red"
	case Yellow:
		return "Yellow"
	case Black:
		return "Black"
	case Green:
		return "Green"
	default:
		return "Unknown"
	}
}

// Letter returns the single-letter abbreviation used in compact card notation
func (s Suit) Letter() string {
	switch s {
	case Red:
		return "R"
	case Yellow:
		return "Y"
	case Black:
		return "B"
	case Green:
		return "G"
	default:
		return "?"
	}
}

// ParseSuit converts a suit name or letter to a Suit
func ParseSuit(s string) (Suit, error) {
	switch s {
	case "Red", "red", "R", "r":
		return Red, nil
	case "Yellow", "yellow", "Y", "y":
		return Yellow, nil
	case "Black", "black", "B", "b":
		return Black, nil
	case "Green", "green", "G", "g":
		return Green, nil
	default:
		return 0, fmt.Errorf("invalid suit: %q", s)
	}
}

// Rank represents a card rank. Rook decks run 5 through 14; there are no
// face cards, 14 is simply the highest number.
type Rank int

const (
	MinRank Rank = 5
	MaxRank Rank = 14
)

// String returns the printed number of the rank
func (r Rank) String() string {
	return fmt.Sprintf("%d", int(r))
}

// Points returns the counter value of the rank: 5s count 5, 10s and 13s
// count 10, everything else counts nothing
func (r Rank) Points() int {
	switch r {
	case 5:
		return 5
	case 10, 13:
		return 10
	default:
		return 0
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// Points returns the counter value of the card
func (c Card) Points() int {
	return c.Rank.Points()
}

// IsCounter returns true if the card is worth points
func (c Card) IsCounter() bool {
	return c.Points() > 0
}

// String returns the compact representation of a card (e.g. "B13")
func (c Card) String() string {
	return fmt.Sprintf("%s%d", c.Suit.Letter(), int(c.Rank))
}

// Name returns the long form of a card (e.g. "Black 13")
func (c Card) Name() string {
	return fmt.Sprintf("%s %d", c.Suit, int(c.Rank))
}

// ParseCard converts compact notation like "B13" or "r5" to a Card
func ParseCard(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card: %q", s)
	}
	suit, err := ParseSuit(s[:1])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card: %q", s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card: %q", s)
	}
	rank := Rank(n)
	if rank < MinRank || rank > MaxRank {
		return Card{}, fmt.Errorf("invalid card rank: %q", s)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// SumPoints totals the counter values of a set of cards
func SumPoints(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}

// Contains reports whether cards holds card
func Contains(cards []Card, card Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}
