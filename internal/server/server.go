// Package server exposes a game over WebSockets.
//
// One server hosts one table: clients join, receive every state transition
// as a snapshot broadcast, and submit actions through the same engine entry
// points the bots use. The runner drives the bot seats and pacing; the
// server only translates frames.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/slimsherpa/rook13/internal/game"
	"github.com/slimsherpa/rook13/internal/runner"
)

// Server hosts a single table over WebSockets
type Server struct {
	cfg      *Config
	engine   *game.Engine
	runner   *runner.Runner
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[*Connection]bool
}

// NewServer creates a server around an engine and its runner. State
// broadcasts are wired through the runner's change notifications.
func NewServer(cfg *Config, engine *game.Engine, r *runner.Runner, logger *log.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		engine: engine,
		runner: r,
		logger: logger.WithPrefix("server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns: make(map[*Connection]bool),
	}
	r.OnChange(s.broadcast)
	return s
}

// Handler returns the HTTP handler serving /ws and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Run serves until ctx is canceled
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.cfg.ListenAddress(),
		Handler: s.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.runner.Stop()
		s.closeAll()
		return httpServer.Close()
	})
	return g.Wait()
}

// StartGame creates a fresh game with the human at A1, seats the three bots,
// and readies the table
func (s *Server) StartGame(playerID, name string) {
	s.engine.CreateGame(playerID, name)
	for _, seat := range []game.Seat{game.SeatB1, game.SeatA2, game.SeatB2} {
		s.engine.AddBot(seat)
	}
	s.engine.SetPlayerReady(game.SeatA1)
	s.logger.Info("game started", "player", name)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}

	conn := NewConnection(ws, s, s.logger)
	s.mu.Lock()
	s.conns[conn] = true
	total := len(s.conns)
	s.mu.Unlock()
	s.logger.Info("client connected", "total", total)

	conn.Start()
	if snap := s.engine.Snapshot(); snap != nil {
		conn.sendState(snap)
	}

	go func() {
		<-conn.ctx.Done()
		s.mu.Lock()
		delete(s.conns, conn)
		total := len(s.conns)
		s.mu.Unlock()
		_ = conn.Close()
		s.logger.Info("client disconnected", "total", total)
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

// broadcast pushes a snapshot to every connected client
func (s *Server) broadcast(snap *game.GameState) {
	msg, err := NewStateMessage(snap)
	if err != nil {
		s.logger.Error("failed to encode state", "error", err)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for conn := range s.conns {
		conn.Send(msg)
	}
}

// broadcastState snapshots and broadcasts immediately, for transitions the
// runner has no reason to observe
func (s *Server) broadcastState() {
	if snap := s.engine.Snapshot(); snap != nil {
		s.broadcast(snap)
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.Close()
		delete(s.conns, conn)
	}
}
