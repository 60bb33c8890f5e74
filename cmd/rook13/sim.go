package main

import (
	"fmt"
	"time"

	"github.com/slimsherpa/rook13/internal/simulator"
)

// SimCmd runs bot-vs-bot games and prints aggregate results
type SimCmd struct {
	Games   int           `default:"100" help:"Number of games to play"`
	Seed    int64         `default:"1" help:"Base RNG seed; game N uses seed+N"`
	Timeout time.Duration `default:"30s" help:"Per-game hang protection"`
	Workers int           `default:"0" help:"Concurrent games (0 = number of CPUs)"`
	Debug   bool          `help:"Enable debug logging"`
}

func (c *SimCmd) Run() error {
	logger := setupLogger(c.Debug)

	sim := simulator.New(simulator.Config{
		Games:   c.Games,
		Seed:    c.Seed,
		Timeout: c.Timeout,
		Workers: c.Workers,
		Logger:  logger,
	})

	start := time.Now()
	stats, err := sim.Run()
	if err != nil {
		return err
	}
	logger.Info("simulation finished", "games", stats.Games, "elapsed", time.Since(start))

	fmt.Print(simulator.Report(stats))
	return nil
}
