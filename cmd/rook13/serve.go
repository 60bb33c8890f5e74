package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/slimsherpa/rook13/internal/bot"
	"github.com/slimsherpa/rook13/internal/game"
	"github.com/slimsherpa/rook13/internal/randutil"
	"github.com/slimsherpa/rook13/internal/runner"
	"github.com/slimsherpa/rook13/internal/sched"
	"github.com/slimsherpa/rook13/internal/server"
)

// ServeCmd runs the WebSocket game server
type ServeCmd struct {
	Config string `default:"rook13.hcl" help:"Path to HCL config file (defaults apply if missing)"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(c.Debug)
	if !c.Debug && cfg.Server.LogLevel != "" {
		if level, err := log.ParseLevel(cfg.Server.LogLevel); err == nil {
			logger.SetLevel(level)
		}
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting server",
		"address", cfg.ListenAddress(),
		"seed", seed,
		"deal_delay", cfg.DealDelay(),
		"think_time", cfg.ThinkTime(),
		"reveal_delay", cfg.RevealDelay())

	engine := game.NewEngine(logger, randutil.New(seed))
	scheduler := sched.New(engine, quartz.NewReal(), logger)
	r := runner.New(engine, bot.NewBot(logger), scheduler, logger, runner.Options{
		DealDelay:   cfg.DealDelay(),
		ThinkDelay:  cfg.ThinkTime(),
		RevealDelay: cfg.RevealDelay(),
	})
	s := server.NewServer(cfg, engine, r, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return s.Run(ctx)
}
