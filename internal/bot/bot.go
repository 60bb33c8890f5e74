// Package bot implements the decision policies for computer players.
//
// The policies are pure package-level functions: they see only public state
// plus the bot's own hand, and never touch the engine. The Bot type is a
// thin driver-side adapter that pulls the relevant view out of a game
// snapshot, delegates to the pure policy, and logs the decision.
package bot

import (
	"github.com/charmbracelet/log"

	"github.com/slimsherpa/rook13/internal/deck"
	"github.com/slimsherpa/rook13/internal/game"
)

// Bot adapts the pure decision policies to engine snapshots
type Bot struct {
	logger *log.Logger
}

// NewBot creates a new bot
func NewBot(logger *log.Logger) *Bot {
	return &Bot{logger: logger.WithPrefix("bot")}
}

// Bid decides the bid for seat from a game snapshot
func (b *Bot) Bid(seat game.Seat, snap *game.GameState) game.Bid {
	player := snap.Players[seat]
	if player == nil || snap.Hand == nil {
		return game.Pass
	}

	bid := DecideBid(player.Hand, seat, snap.Dealer, snap.Hand.Bidding.Bids, snap.Hand.Bidding.CurrentBid)
	b.logger.Info("bid decision",
		"seat", seat,
		"bid", bid.String(),
		"currentBid", snap.Hand.Bidding.CurrentBid.String(),
		"passes", snap.Hand.Bidding.Passes())
	return bid
}

// Trump decides which suit seat should declare trump
func (b *Bot) Trump(seat game.Seat, snap *game.GameState) deck.Suit {
	player := snap.Players[seat]
	if player == nil {
		return deck.Red
	}

	suit := DecideTrump(player.Hand)
	b.logger.Info("trump decision", "seat", seat, "trump", suit.String())
	return suit
}

// GoDown decides which four cards seat should set aside
func (b *Bot) GoDown(seat game.Seat, snap *game.GameState) []deck.Card {
	player := snap.Players[seat]
	if player == nil {
		return nil
	}

	goDown := DecideGoDown(player.Hand)
	b.logger.Info("go-down decision", "seat", seat, "cards", goDown)
	return goDown
}

// Card decides which card seat should play into the current trick
func (b *Bot) Card(seat game.Seat, snap *game.GameState) (deck.Card, error) {
	player := snap.Players[seat]
	if player == nil || snap.Hand == nil {
		return deck.Card{}, errEmptyHand
	}

	trick := &snap.Hand.Trick
	card, err := DecideCard(player.Hand, seat, trick.Cards, trick.LeadSuit(), snap.Hand.Trump)
	if err != nil {
		return deck.Card{}, err
	}
	b.logger.Info("card decision", "seat", seat, "card", card.String())
	return card, nil
}
