// Package display renders game snapshots as styled terminal text. Everything
// here is a pure function of a snapshot, so the TUI and the CLI commands can
// share the same rendering.
package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/slimsherpa/rook13/internal/deck"
	"github.com/slimsherpa/rook13/internal/game"
)

var suitStyles = map[deck.Suit]lipgloss.Style{
	deck.Red: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF6B6B")).
		Bold(true),
	deck.Yellow: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFD700")).
		Bold(true),
	deck.Black: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Bold(true),
	deck.Green: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#96CEB4")).
		Bold(true),
}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	turnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Card renders a single card in its suit color
func Card(c deck.Card) string {
	return suitStyles[c.Suit].Render(c.String())
}

// Cards renders a card list in play order
func Cards(cards []deck.Card) string {
	if len(cards) == 0 {
		return dimStyle.Render("(none)")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = Card(c)
	}
	return strings.Join(parts, " ")
}

// Hand renders a hand sorted by suit then rank, the way players fan cards
func Hand(cards []deck.Card) string {
	sorted := append([]deck.Card(nil), cards...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Suit != sorted[j].Suit {
			return sorted[i].Suit < sorted[j].Suit
		}
		return sorted[i].Rank < sorted[j].Rank
	})
	return Cards(sorted)
}

// ScoreLine renders both team totals
func ScoreLine(scores map[game.Team]int) string {
	return scoreStyle.Render(
		fmt.Sprintf("Team A %d | Team B %d", scores[game.TeamA], scores[game.TeamB]))
}

// Bidding renders the bidding ledger in seat order
func Bidding(snap *game.GameState) string {
	if snap.Hand == nil {
		return ""
	}
	var parts []string
	for _, seat := range game.SeatOrder {
		bid, ok := snap.Hand.Bidding.Bids[seat]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", seat, bid))
	}
	line := strings.Join(parts, ", ")
	if snap.Hand.Bidding.Winner != "" {
		line += " " + scoreStyle.Render(
			fmt.Sprintf("(%s holds at %s)", snap.Hand.Bidding.Winner, snap.Hand.Bidding.CurrentBid))
	}
	return line
}

// Trick renders the trick in progress as a compass layout with the viewer's
// seat at the bottom
func Trick(snap *game.GameState, viewer game.Seat) string {
	if snap.Hand == nil {
		return ""
	}
	trick := snap.Hand.Trick
	slot := func(seat game.Seat) string {
		label := string(seat)
		if c := trick.Cards[seat]; c != nil {
			return fmt.Sprintf("%s %s", dimStyle.Render(label), Card(*c))
		}
		if snap.CurrentTurn == seat && snap.Phase == game.PhasePlaying {
			return fmt.Sprintf("%s %s", dimStyle.Render(label), turnStyle.Render("?"))
		}
		return fmt.Sprintf("%s %s", dimStyle.Render(label), dimStyle.Render("·"))
	}

	top := viewer.Partner()
	left := viewer.Next()
	right := left.Partner()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("        %s\n", slot(top)))
	b.WriteString(fmt.Sprintf("%s        %s\n", slot(left), slot(right)))
	b.WriteString(fmt.Sprintf("        %s", slot(viewer)))
	if trick.Complete {
		b.WriteString("\n" + scoreStyle.Render(fmt.Sprintf("Trick to %s (%d pts)", trick.Winner, trick.Points())))
	}
	return b.String()
}

// Recap renders the last hand's scoring summary
func Recap(r *game.HandRecap) string {
	if r == nil {
		return ""
	}
	outcome := "MADE"
	if !r.Made {
		outcome = "SET"
	}
	return fmt.Sprintf("%s bid %s in %s: %s. Points A %d / B %d, tricks %d-%d, deltas A %+d / B %+d",
		r.BidWinner, r.Bid, r.Trump, outcome,
		r.Points[game.TeamA], r.Points[game.TeamB],
		r.TrickCounts[game.TeamA], r.TrickCounts[game.TeamB],
		r.Deltas[game.TeamA], r.Deltas[game.TeamB])
}

// Table renders the full table view from one seat's perspective
func Table(snap *game.GameState, viewer game.Seat) string {
	if snap == nil {
		return dimStyle.Render("no game")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf(" Rook · hand dealer %s · %s ", snap.Dealer, snap.Phase)))
	b.WriteString("\n")
	b.WriteString(ScoreLine(snap.Scores))
	b.WriteString("\n\n")

	switch snap.Phase {
	case game.PhaseBidding:
		b.WriteString("Bidding: " + Bidding(snap))
		b.WriteString("\n")
	case game.PhaseWidow:
		if snap.Hand != nil {
			b.WriteString(fmt.Sprintf("%s is choosing a go-down\n", snap.Hand.Bidding.Winner))
		}
	case game.PhaseTrump:
		if snap.Hand != nil {
			b.WriteString(fmt.Sprintf("%s is naming trump\n", snap.Hand.Bidding.Winner))
		}
	case game.PhasePlaying:
		if snap.Hand != nil && snap.Hand.Trump != nil {
			b.WriteString("Trump: " + suitStyles[*snap.Hand.Trump].Render(snap.Hand.Trump.String()))
			b.WriteString("\n\n")
		}
		b.WriteString(Trick(snap, viewer))
		b.WriteString("\n")
	}

	if p := snap.Players[viewer]; p != nil && len(p.Hand) > 0 {
		b.WriteString("\nYour hand: " + Hand(p.Hand))
		b.WriteString("\n")
	}

	if snap.Phase != game.PhasePlaying && snap.LastRecap != nil {
		b.WriteString("\n" + dimStyle.Render("Last hand: "+Recap(snap.LastRecap)))
		b.WriteString("\n")
	}

	if snap.Status == game.StatusCompleted {
		winner := game.TeamA
		if snap.Scores[game.TeamB] > snap.Scores[game.TeamA] {
			winner = game.TeamB
		}
		b.WriteString("\n" + headerStyle.Render(fmt.Sprintf(" Game over: Team %s wins ", winner)))
		b.WriteString("\n")
	}

	if snap.CurrentTurn == viewer && snap.Status == game.StatusActive {
		b.WriteString("\n" + turnStyle.Render("Your turn"))
		b.WriteString("\n")
	}

	return b.String()
}
