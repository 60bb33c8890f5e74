package main

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/slimsherpa/rook13/internal/bot"
	"github.com/slimsherpa/rook13/internal/game"
	"github.com/slimsherpa/rook13/internal/randutil"
	"github.com/slimsherpa/rook13/internal/runner"
	"github.com/slimsherpa/rook13/internal/sched"
	"github.com/slimsherpa/rook13/internal/tui"
)

// PlayCmd runs an interactive game with the human at A1
type PlayCmd struct {
	Name     string `default:"You" help:"Display name for the human player"`
	Seed     *int64 `help:"Deterministic RNG seed (optional)"`
	DealMs   int    `default:"200" help:"Pause before dealing, in milliseconds"`
	ThinkMs  int    `default:"1000" help:"Bot thinking pause, in milliseconds"`
	RevealMs int    `default:"3000" help:"How long a completed trick stays up, in milliseconds"`
	LogFile  string `default:"rook13.log" help:"Debug log destination (the TUI owns the terminal)"`
	NoColor  bool   `help:"Disable colored card rendering"`
	Debug    bool   `help:"Enable debug logging"`
}

func (c *PlayCmd) Run() error {
	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger, cleanup, err := setupFileLogger(c.LogFile, c.Debug)
	if err != nil {
		return err
	}
	defer cleanup()

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	logger.Info("starting interactive game", "seed", seed)

	engine := game.NewEngine(logger, randutil.New(seed))
	scheduler := sched.New(engine, quartz.NewReal(), logger)
	r := runner.New(engine, bot.NewBot(logger), scheduler, logger, runner.Options{
		DealDelay:   time.Duration(c.DealMs) * time.Millisecond,
		ThinkDelay:  time.Duration(c.ThinkMs) * time.Millisecond,
		RevealDelay: time.Duration(c.RevealMs) * time.Millisecond,
	})

	engine.CreateGame("human", c.Name)
	for _, seat := range []game.Seat{game.SeatB1, game.SeatA2, game.SeatB2} {
		engine.AddBot(seat)
	}
	engine.SetPlayerReady(game.SeatA1)

	return tui.Run(engine, r, logger)
}
