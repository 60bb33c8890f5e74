package game

import "github.com/slimsherpa/rook13/internal/deck"

// PlayerType distinguishes humans from bots
type PlayerType int

const (
	Human PlayerType = iota
	Bot
)

// String returns the string representation of a player type
func (pt PlayerType) String() string {
	switch pt {
	case Human:
		return "human"
	case Bot:
		return "bot"
	default:
		return "unknown"
	}
}

// Player represents a seated player
type Player struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Type  PlayerType  `json:"type"`
	Seat  Seat        `json:"seat"`
	Ready bool        `json:"ready"`
	Hand  []deck.Card `json:"hand,omitempty"`
}

// IsBot reports whether the player is a bot
func (p *Player) IsBot() bool {
	return p.Type == Bot
}

// HasCard reports whether the player's hand holds card
func (p *Player) HasCard(card deck.Card) bool {
	return deck.Contains(p.Hand, card)
}

// removeCard takes card out of the player's hand, reporting whether it was
// present
func (p *Player) removeCard(card deck.Card) bool {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}
