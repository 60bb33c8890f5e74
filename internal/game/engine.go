package game

import (
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/slimsherpa/rook13/internal/deck"
	"github.com/slimsherpa/rook13/internal/gameid"
)

// Bot display names by seat, as seen from the human at A1
var botNames = map[Seat]string{
	SeatB1: "Lefty",
	SeatA2: "Partner",
	SeatB2: "Righty",
}

// Engine owns the authoritative GameState and serializes every transition.
// Each operation either applies atomically or leaves the state untouched and
// reports false; illegal actions are not errors, callers that care check the
// return. Reads go through Snapshot, which clones, so renderers and bots can
// never reach into live state.
type Engine struct {
	mu      sync.RWMutex
	rng     *rand.Rand
	logger  *log.Logger
	state   *GameState
	version uint64
}

// NewEngine creates an engine with no game in progress
func NewEngine(logger *log.Logger, rng *rand.Rand) *Engine {
	return &Engine{
		rng:    rng,
		logger: logger.WithPrefix("engine"),
	}
}

// Snapshot returns a deep copy of the aggregate, or nil when no game exists
func (e *Engine) Snapshot() *GameState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.state == nil {
		return nil
	}
	snap := e.state.Clone()
	snap.Version = e.version
	return snap
}

// Version returns a counter that increases on every applied transition,
// including resets. Deferred actions capture it and re-check before firing.
func (e *Engine) Version() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.version
}

// CreateGame discards any existing session and seats a human player at A1.
// The first dealer is drawn at random.
func (e *Engine) CreateGame(playerID, name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	dealer := SeatOrder[e.rng.IntN(len(SeatOrder))]
	e.state = &GameState{
		ID:     gameid.Generate(),
		Status: StatusWaiting,
		Phase:  PhaseSetup,
		Players: map[Seat]*Player{
			SeatA1: {ID: playerID, Name: name, Type: Human, Seat: SeatA1},
			SeatB1: nil,
			SeatA2: nil,
			SeatB2: nil,
		},
		Dealer:  dealer,
		Scores:  map[Team]int{TeamA: 0, TeamB: 0},
		Created: time.Now(),
	}
	e.version++
	e.logger.Info("game created", "id", e.state.ID, "dealer", dealer)
}

// AddBot fills an empty seat with a ready bot
func (e *Engine) AddBot(seat Seat) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil || e.state.Status != StatusWaiting || !seat.Valid() {
		return false
	}
	if e.state.Players[seat] != nil {
		return false
	}
	name := botNames[seat]
	if name == "" {
		name = "Bot " + string(seat)
	}
	e.state.Players[seat] = &Player{
		ID:    gameid.Generate(),
		Name:  name,
		Type:  Bot,
		Seat:  seat,
		Ready: true,
	}
	e.version++
	e.logger.Debug("bot seated", "seat", seat, "name", name)
	return true
}

// SetPlayerReady marks a seat ready. Once all four seats are filled and
// ready the game goes active and enters the dealing phase with the dealer
// to act.
func (e *Engine) SetPlayerReady(seat Seat) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil || e.state.Status != StatusWaiting {
		return false
	}
	player := e.state.Players[seat]
	if player == nil {
		return false
	}
	player.Ready = true

	allReady := true
	for _, s := range SeatOrder {
		p := e.state.Players[s]
		if p == nil || !p.Ready {
			allReady = false
			break
		}
	}
	if allReady {
		e.state.Status = StatusActive
		e.state.Phase = PhaseDealing
		e.state.CurrentTurn = e.state.Dealer
		e.logger.Info("all seats ready", "dealer", e.state.Dealer)
	}
	e.version++
	return true
}

// StartNewHand shuffles and deals four 9-card hands plus the widow, then
// opens the bidding with the seat left of the dealer.
func (e *Engine) StartNewHand() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil || e.state.Status != StatusActive || e.state.Phase != PhaseDealing {
		return false
	}

	d := deck.New(e.rng)
	hands, widow := DealHands(d)
	for _, seat := range SeatOrder {
		e.state.Players[seat].Hand = hands[seat]
	}
	e.state.Hand = &HandState{
		Widow: widow,
		Bidding: BiddingState{
			Bids: make(map[Seat]Bid),
		},
		Trick:       newTrickState(),
		TrickCounts: map[Team]int{TeamA: 0, TeamB: 0},
		Captured:    map[Team]int{TeamA: 0, TeamB: 0},
	}
	e.state.Phase = PhaseBidding
	e.state.CurrentTurn = e.state.Dealer.Next()
	e.version++
	e.logger.Info("hand dealt", "dealer", e.state.Dealer, "firstBidder", e.state.CurrentTurn)
	return true
}

// PlaceBid records a bid or pass for the seat on turn. A real bid must come
// from the ladder and beat the standing bid. A seat that has passed can only
// pass again, and the last seat in cannot pass once the other three are out.
// When three seats have passed and the survivor holds a recorded bid, that
// seat wins the auction, absorbs the widow, and the hand moves to the widow
// phase.
func (e *Engine) PlaceBid(seat Seat, bid Bid) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil || e.state.Status != StatusActive || e.state.Phase != PhaseBidding {
		return false
	}
	if seat != e.state.CurrentTurn {
		return false
	}
	bidding := &e.state.Hand.Bidding

	if bidding.HasPassed(seat) && !bid.IsPass() {
		return false
	}
	if bid.IsPass() {
		if e.othersPassed(seat) == 3 {
			// Forced bidder: the auction cannot die with three passes.
			return false
		}
		bidding.Bids[seat] = Pass
	} else {
		if !bid.OnLadder() || bid <= bidding.CurrentBid {
			return false
		}
		bidding.Bids[seat] = bid
		bidding.CurrentBid = bid
	}

	if holder, holderBid, ok := bidding.lastHolder(); ok && !holderBid.IsPass() {
		e.awardBid(holder, holderBid)
	} else {
		e.state.CurrentTurn = seat.Next()
	}
	e.version++
	e.logger.Debug("bid recorded", "seat", seat, "bid", bid)
	return true
}

// othersPassed counts passes among the three seats other than seat
func (e *Engine) othersPassed(seat Seat) int {
	n := 0
	for s, b := range e.state.Hand.Bidding.Bids {
		if s != seat && b.IsPass() {
			n++
		}
	}
	return n
}

// awardBid settles the auction: the winner takes the widow into hand
// (9 cards become 13) and must now choose the go-down.
func (e *Engine) awardBid(winner Seat, bid Bid) {
	hand := e.state.Hand
	hand.Bidding.Winner = winner
	hand.Bidding.CurrentBid = bid

	player := e.state.Players[winner]
	player.Hand = append(player.Hand, hand.Widow...)
	hand.Widow = nil

	e.state.Phase = PhaseWidow
	e.state.CurrentTurn = winner
	e.logger.Info("bid won", "seat", winner, "bid", bid)
}

// SelectGoDown sets aside exactly four cards from the bid winner's 13-card
// hand as the go-down, whose points go to whoever wins the last trick.
func (e *Engine) SelectGoDown(seat Seat, cards []deck.Card) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil || e.state.Status != StatusActive || e.state.Phase != PhaseWidow {
		return false
	}
	hand := e.state.Hand
	if seat != hand.Bidding.Winner || len(cards) != WidowSize {
		return false
	}
	player := e.state.Players[seat]

	// All four must be distinct and in hand; validate fully before mutating.
	seen := make(map[deck.Card]bool, len(cards))
	for _, c := range cards {
		if seen[c] || !player.HasCard(c) {
			return false
		}
		seen[c] = true
	}
	for _, c := range cards {
		player.removeCard(c)
	}
	hand.GoDown = append([]deck.Card(nil), cards...)
	e.state.Phase = PhaseTrump
	e.version++
	e.logger.Info("go-down selected", "seat", seat, "points", deck.SumPoints(cards))
	return true
}

// SelectTrump declares trump and starts play. The first lead belongs to the
// seat left of the dealer, not to the bid winner.
func (e *Engine) SelectTrump(seat Seat, suit deck.Suit) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil || e.state.Status != StatusActive || e.state.Phase != PhaseTrump {
		return false
	}
	hand := e.state.Hand
	if seat != hand.Bidding.Winner {
		return false
	}
	hand.Trump = &suit
	hand.Trick = newTrickState()
	e.state.Phase = PhasePlaying
	e.state.CurrentTurn = e.state.Dealer.Next()
	e.version++
	e.logger.Info("trump selected", "seat", seat, "trump", suit)
	return true
}

// PlayCard plays a card from the seat on turn into the trick. The play must
// follow suit when possible. A completed trick stays on the table with its
// winner marked until ClearTrick acknowledges it; the ninth trick also
// triggers hand scoring.
func (e *Engine) PlayCard(seat Seat, card deck.Card) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil || e.state.Status != StatusActive || e.state.Phase != PhasePlaying {
		return false
	}
	if seat != e.state.CurrentTurn {
		return false
	}
	hand := e.state.Hand
	trick := &hand.Trick
	if trick.Complete || trick.Cards[seat] != nil {
		return false
	}
	player := e.state.Players[seat]
	if !player.HasCard(card) {
		return false
	}
	if !CanPlayCard(card, trick.LeadSuit(), player.Hand) {
		return false
	}

	player.removeCard(card)
	played := card
	trick.Cards[seat] = &played
	trick.PlayOrder = append(trick.PlayOrder, seat)

	if trick.played() == len(SeatOrder) {
		e.resolveTrick()
	} else {
		e.state.CurrentTurn = seat.Next()
	}
	e.version++
	e.logger.Debug("card played", "seat", seat, "card", card)
	return true
}

// resolveTrick marks the completed trick, credits the winning team, and on
// the final trick of the hand credits the go-down and scores the hand.
func (e *Engine) resolveTrick() {
	hand := e.state.Hand
	trick := &hand.Trick

	cards := make(map[Seat]deck.Card, len(SeatOrder))
	for seat, c := range trick.Cards {
		if c != nil {
			cards[seat] = *c
		}
	}
	leadSuit := *trick.LeadSuit()
	winner := DetermineTrickWinner(cards, leadSuit, hand.Trump)

	trick.Winner = winner
	trick.Complete = true
	e.state.CurrentTurn = winner

	team := winner.Team()
	hand.TrickCounts[team]++
	hand.Captured[team] += trick.Points()

	e.logger.Debug("trick complete",
		"winner", winner,
		"points", trick.Points(),
		"tricks", hand.TrickCounts[team])

	if e.handsEmpty() {
		recap := scoreHand(e.state, team)
		e.state.LastRecap = recap
		e.logger.Info("hand scored",
			"bidWinner", recap.BidWinner,
			"bid", recap.Bid,
			"made", recap.Made,
			"scoreA", e.state.Scores[TeamA],
			"scoreB", e.state.Scores[TeamB])
		if gameOver(e.state.Scores) {
			e.state.Status = StatusCompleted
			e.logger.Info("game completed",
				"scoreA", e.state.Scores[TeamA],
				"scoreB", e.state.Scores[TeamB])
		}
	}
}

func (e *Engine) handsEmpty() bool {
	for _, seat := range SeatOrder {
		if len(e.state.Players[seat].Hand) > 0 {
			return false
		}
	}
	return true
}

// ClearTrick acknowledges a completed trick: the table empties and the
// winner leads the next trick. The caller passes the winner it observed so
// a stale acknowledgment for an earlier trick cannot clear the wrong one.
func (e *Engine) ClearTrick(winner Seat) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil || e.state.Phase != PhasePlaying || e.state.Hand == nil {
		return false
	}
	trick := &e.state.Hand.Trick
	if !trick.Complete || trick.Winner != winner {
		return false
	}
	e.state.Hand.Trick = newTrickState()
	e.state.CurrentTurn = winner
	e.version++
	return true
}

// StartNextHandWithNewDealer rotates the deal and returns to the dealing
// phase. Per-hand state is discarded; cumulative scores persist. Dealing the
// next hand is a separate StartNewHand call.
func (e *Engine) StartNextHandWithNewDealer() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil || e.state.Status != StatusActive || e.state.Phase != PhasePlaying {
		return false
	}
	if !e.handsEmpty() {
		return false
	}
	e.state.Dealer = e.state.Dealer.Next()
	e.state.Hand = nil
	e.state.Phase = PhaseDealing
	e.state.CurrentTurn = e.state.Dealer
	e.version++
	e.logger.Info("next hand", "dealer", e.state.Dealer)
	return true
}

// ReorderHand replaces a player's hand with a reordering of itself. Purely
// cosmetic; the multiset of cards must be unchanged.
func (e *Engine) ReorderHand(seat Seat, cards []deck.Card) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil {
		return false
	}
	player := e.state.Players[seat]
	if player == nil || len(cards) != len(player.Hand) {
		return false
	}
	counts := make(map[deck.Card]int, len(player.Hand))
	for _, c := range player.Hand {
		counts[c]++
	}
	for _, c := range cards {
		counts[c]--
		if counts[c] < 0 {
			return false
		}
	}
	player.Hand = append([]deck.Card(nil), cards...)
	e.version++
	return true
}

// Reset discards the game entirely
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = nil
	e.version++
	e.logger.Info("game reset")
}
