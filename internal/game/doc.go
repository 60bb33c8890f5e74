// Package game implements the core rules engine for four-player partnership
// Rook.
//
// The main type is Engine, which owns the authoritative GameState for a
// single table and applies every state transition atomically: seating,
// dealing, the auction, the widow exchange, trump selection, trick play,
// and hand scoring. Transitions that are illegal in the current state are
// rejected with a false return and leave the state untouched.
//
// # Basic Usage
//
// Create a game, seat bots, and start the first hand:
//
//	e := game.NewEngine(logger, rng)
//	e.CreateGame("player-1", "Alice")
//	e.AddBot(game.SeatB1)
//	e.AddBot(game.SeatA2)
//	e.AddBot(game.SeatB2)
//	e.SetPlayerReady(game.SeatA1)
//	e.StartNewHand()
//
// Readers observe the game through Snapshot, which returns a deep copy
// stamped with a monotonically increasing version. Deferred work (bot turns,
// trick clears) captures the version at schedule time and re-checks it on
// fire, so a stale action against a state that has since moved on is a no-op.
//
// # Deterministic Testing
//
// The engine takes its *rand.Rand at construction, so shuffles and dealer
// selection replay exactly for a fixed seed:
//
//	rng := randutil.New(42)
//	e := game.NewEngine(logger, rng)
//
// # Architecture
//
// Engine delegates the pure rules to package-level functions so they can be
// exercised without a running game:
//   - CanPlayCard, LegalPlays: follow-suit legality
//   - DetermineTrickWinner: trump-then-lead-suit resolution
//   - DealHands: the 9/9/9/9 + 4 widow partition
//   - scoreHand: contract settlement and the trick-majority bonus
//
// All per-hand state lives in HandState, which is nil between hands; the
// cumulative scores and seating survive on GameState across hands.
package game
