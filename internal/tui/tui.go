// Package tui is the interactive terminal client. It renders engine
// snapshots pushed by the runner and translates typed commands from the
// human at A1 into engine transitions.
package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/slimsherpa/rook13/internal/deck"
	"github.com/slimsherpa/rook13/internal/display"
	"github.com/slimsherpa/rook13/internal/game"
	"github.com/slimsherpa/rook13/internal/runner"
)

// stateMsg carries a fresh engine snapshot into the Bubble Tea loop
type stateMsg struct {
	snap *game.GameState
}

// Model is the Bubble Tea model for the interactive game
type Model struct {
	engine *game.Engine
	runner *runner.Runner
	logger *log.Logger
	seat   game.Seat

	eventLog viewport.Model
	input    textinput.Model

	snap    *game.GameState
	events  []string
	lastErr string

	// fingerprints for event detection across snapshots
	recapSeen string
	trickSeen bool

	quitting bool
	width    int
	height   int
}

// NewModel creates the model for the human seated at A1
func NewModel(engine *game.Engine, r *runner.Runner, logger *log.Logger) *Model {
	vp := viewport.New(80, 8)

	ti := textinput.New()
	ti.Placeholder = "pass, bid 70, godown b5 y6 g7 b8, trump red, play b13"
	ti.Focus()
	ti.CharLimit = 60
	ti.Prompt = "> "
	ti.PromptStyle = PromptStyle
	ti.TextStyle = TextStyle

	return &Model{
		engine:   engine,
		runner:   r,
		logger:   logger.WithPrefix("tui"),
		seat:     game.SeatA1,
		eventLog: vp,
		input:    ti,
	}
}

// Init starts the cursor blink
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles terminal events and pushed snapshots
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.eventLog.Width = m.width - 4

	case stateMsg:
		m.observe(msg.snap)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "enter":
			m.submit(strings.TrimSpace(m.input.Value()))
			m.input.SetValue("")
			if m.quitting {
				return m, tea.Sequence(tea.ClearScreen, tea.Quit)
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.eventLog, cmd = m.eventLog.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the table, the event log, and the input pane
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width < 40 {
		width = 80
	}

	table := TablePaneStyle.Width(width - 4).Render(display.Table(m.snap, m.seat))

	m.eventLog.SetContent(strings.Join(m.events, "\n"))
	m.eventLog.GotoBottom()
	logPane := TablePaneStyle.Width(width - 4).Render(m.eventLog.View())

	var input strings.Builder
	if m.lastErr != "" {
		input.WriteString(ErrorStyle.Render(m.lastErr))
		input.WriteString("\n")
	}
	input.WriteString(m.input.View())
	input.WriteString("\n")
	input.WriteString(HelpStyle.Render(m.help()))
	inputPane := InputPaneStyle.Width(width - 4).Render(input.String())

	return lipgloss.JoinVertical(lipgloss.Left, table, logPane, inputPane)
}

func (m *Model) help() string {
	if m.snap == nil || m.snap.CurrentTurn != m.seat {
		return "sort to tidy your hand · Ctrl+C to quit"
	}
	switch m.snap.Phase {
	case game.PhaseBidding:
		return "pass · bid 70 · Ctrl+C to quit"
	case game.PhaseWidow:
		return "godown b5 y6 g7 b8 (four cards) · Ctrl+C to quit"
	case game.PhaseTrump:
		return "trump red|yellow|black|green · Ctrl+C to quit"
	case game.PhasePlaying:
		return "play b13 · Ctrl+C to quit"
	}
	return "Ctrl+C to quit"
}

// observe records a pushed snapshot and derives event log entries from it
func (m *Model) observe(snap *game.GameState) {
	m.snap = snap
	if snap == nil || snap.Hand == nil {
		m.trickSeen = false
	} else {
		trick := snap.Hand.Trick
		if trick.Complete && !m.trickSeen {
			m.addEvent(fmt.Sprintf("Trick to %s (%d pts)", trick.Winner, trick.Points()))
		}
		m.trickSeen = trick.Complete
	}

	if snap != nil && snap.LastRecap != nil {
		if recap := display.Recap(snap.LastRecap); recap != m.recapSeen {
			m.recapSeen = recap
			m.addEvent(recap)
		}
	}

	if snap != nil && snap.Status == game.StatusCompleted {
		m.addEvent("Game over")
	}
}

func (m *Model) addEvent(entry string) {
	m.events = append(m.events, entry)
}

// submit parses and executes a typed command. Rejected transitions surface
// as a one-line error above the prompt; applied ones kick the runner.
func (m *Model) submit(line string) {
	m.lastErr = ""
	parts := strings.Fields(strings.ToLower(line))
	if len(parts) == 0 {
		return
	}

	applied := false
	switch parts[0] {
	case "quit", "exit":
		m.quitting = true
		return

	case "pass":
		applied = m.engine.PlaceBid(m.seat, game.Pass)

	case "bid":
		if len(parts) != 2 {
			m.lastErr = "usage: bid <amount>"
			return
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			m.lastErr = "usage: bid <amount>"
			return
		}
		applied = m.engine.PlaceBid(m.seat, game.Bid(n))

	case "godown":
		cards, err := parseCards(parts[1:])
		if err != nil {
			m.lastErr = err.Error()
			return
		}
		applied = m.engine.SelectGoDown(m.seat, cards)

	case "trump":
		if len(parts) != 2 {
			m.lastErr = "usage: trump <suit>"
			return
		}
		suit, err := deck.ParseSuit(parts[1])
		if err != nil {
			m.lastErr = err.Error()
			return
		}
		applied = m.engine.SelectTrump(m.seat, suit)

	case "play":
		if len(parts) != 2 {
			m.lastErr = "usage: play <card>"
			return
		}
		card, err := deck.ParseCard(parts[1])
		if err != nil {
			m.lastErr = err.Error()
			return
		}
		applied = m.engine.PlayCard(m.seat, card)

	case "sort":
		m.sortHand()
		return

	default:
		m.lastErr = fmt.Sprintf("unknown command %q", parts[0])
		return
	}

	if !applied {
		m.lastErr = "that isn't legal right now"
		return
	}
	m.runner.Kick()
}

// sortHand reorders the hand by suit then rank via the engine, so the
// arrangement survives the next snapshot
func (m *Model) sortHand() {
	snap := m.engine.Snapshot()
	if snap == nil {
		return
	}
	p := snap.Players[m.seat]
	if p == nil || len(p.Hand) == 0 {
		return
	}
	sorted := append([]deck.Card(nil), p.Hand...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Suit != sorted[j].Suit {
			return sorted[i].Suit < sorted[j].Suit
		}
		return sorted[i].Rank < sorted[j].Rank
	})
	if m.engine.ReorderHand(m.seat, sorted) {
		m.snap = m.engine.Snapshot()
	}
}

func parseCards(args []string) ([]deck.Card, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no cards given")
	}
	cards := make([]deck.Card, 0, len(args))
	for _, arg := range args {
		card, err := deck.ParseCard(arg)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Run starts the interactive session and blocks until the player quits.
// Snapshot pushes from the runner arrive through program.Send, so the
// render loop never polls the engine.
func Run(engine *game.Engine, r *runner.Runner, logger *log.Logger) error {
	m := NewModel(engine, r, logger)
	p := tea.NewProgram(m, tea.WithAltScreen())

	r.OnChange(func(snap *game.GameState) {
		p.Send(stateMsg{snap: snap})
	})
	go r.Kick()

	_, err := p.Run()
	r.Stop()
	return err
}
