package server

import (
	"encoding/json"
	"time"

	"github.com/slimsherpa/rook13/internal/deck"
	"github.com/slimsherpa/rook13/internal/game"
)

// MessageType identifies the payload carried by a Message
type MessageType string

const (
	// Client → server
	MessageTypeJoin        MessageType = "join"
	MessageTypeReady       MessageType = "ready"
	MessageTypePlaceBid    MessageType = "place_bid"
	MessageTypeGoDown      MessageType = "select_go_down"
	MessageTypeSelectTrump MessageType = "select_trump"
	MessageTypePlayCard    MessageType = "play_card"
	MessageTypeReorder     MessageType = "reorder_hand"
	MessageTypeReset       MessageType = "reset"

	// Server → client
	MessageTypeState MessageType = "state"
	MessageTypeError MessageType = "error"
)

// Message is the envelope for every WebSocket frame in both directions
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}
	return &Message{
		Type:      messageType,
		Data:      raw,
		Timestamp: time.Now(),
	}, nil
}

// Client → server payloads

// JoinData seats a human at A1, fills the other seats with bots, and readies
// the table
type JoinData struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

// ReadyData marks a seat ready to start
type ReadyData struct {
	Seat game.Seat `json:"seat"`
}

// BidData records a bid; zero means pass
type BidData struct {
	Seat game.Seat `json:"seat"`
	Bid  game.Bid  `json:"bid"`
}

// GoDownData sets the bid winner's go-down
type GoDownData struct {
	Seat  game.Seat   `json:"seat"`
	Cards []deck.Card `json:"cards"`
}

// TrumpData declares trump
type TrumpData struct {
	Seat game.Seat `json:"seat"`
	Suit deck.Suit `json:"suit"`
}

// PlayCardData plays one card into the trick
type PlayCardData struct {
	Seat game.Seat `json:"seat"`
	Card deck.Card `json:"card"`
}

// ReorderData rearranges a hand cosmetically
type ReorderData struct {
	Seat  game.Seat   `json:"seat"`
	Cards []deck.Card `json:"cards"`
}

// Server → client payloads

// ErrorData reports a rejected or malformed request
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewStateMessage wraps a snapshot for broadcast
func NewStateMessage(snap *game.GameState) (*Message, error) {
	return NewMessage(MessageTypeState, snap)
}
