package game

import (
	"time"

	"github.com/slimsherpa/rook13/internal/deck"
)

// GameState is the single authoritative aggregate for a game session. It is
// owned by an Engine and only mutated through the Engine's transitions; all
// per-hand state lives in Hand so that fields which are meaningless between
// hands simply do not exist then.
type GameState struct {
	ID          string           `json:"id"`
	Status      Status           `json:"status"`
	Phase       Phase            `json:"phase"`
	Players     map[Seat]*Player `json:"players"`
	Dealer      Seat             `json:"dealer"`
	CurrentTurn Seat             `json:"currentTurn"`
	Scores      map[Team]int     `json:"scores"`
	Hand        *HandState       `json:"hand,omitempty"`
	LastRecap   *HandRecap       `json:"lastRecap,omitempty"`
	Version     uint64           `json:"version"`
	Created     time.Time        `json:"created"`
}

// HandState holds everything that only exists while a hand is in flight:
// the widow and go-down, the bidding ledger, trump, and the trick in
// progress. It is discarded wholesale when the next hand starts.
type HandState struct {
	Widow       []deck.Card  `json:"widow,omitempty"`
	GoDown      []deck.Card  `json:"goDown,omitempty"`
	Bidding     BiddingState `json:"bidding"`
	Trump       *deck.Suit   `json:"trump,omitempty"`
	Trick       TrickState   `json:"trick"`
	TrickCounts map[Team]int `json:"trickCounts"`
	Captured    map[Team]int `json:"captured"`
}

// BiddingState records the bidding round. Bids holds the last recorded bid
// per seat; a Pass entry means that seat is out for the round.
type BiddingState struct {
	Bids       map[Seat]Bid `json:"bids"`
	CurrentBid Bid          `json:"currentBid"`
	Winner     Seat         `json:"winner,omitempty"`
}

// Passes counts the seats that have passed
func (b BiddingState) Passes() int {
	n := 0
	for _, bid := range b.Bids {
		if bid.IsPass() {
			n++
		}
	}
	return n
}

// HasPassed reports whether seat is out of the bidding
func (b BiddingState) HasPassed(seat Seat) bool {
	bid, ok := b.Bids[seat]
	return ok && bid.IsPass()
}

// lastHolder returns the one seat still in when three have passed, along
// with its recorded bid (Pass if it has not acted yet).
func (b BiddingState) lastHolder() (Seat, Bid, bool) {
	if b.Passes() != 3 {
		return "", Pass, false
	}
	for _, seat := range SeatOrder {
		if !b.HasPassed(seat) {
			return seat, b.Bids[seat], true
		}
	}
	return "", Pass, false
}

// TrickState is the trick in progress: one card slot per seat plus the
// order cards were played in. Completed tricks stay visible until an
// explicit ClearTrick acknowledges them.
type TrickState struct {
	Cards     map[Seat]*deck.Card `json:"cards"`
	PlayOrder []Seat              `json:"playOrder"`
	Winner    Seat                `json:"winner,omitempty"`
	Complete  bool                `json:"complete"`
}

// LeadSuit returns the suit of the first card played, or nil when leading
func (t TrickState) LeadSuit() *deck.Suit {
	if len(t.PlayOrder) == 0 {
		return nil
	}
	lead := t.Cards[t.PlayOrder[0]]
	if lead == nil {
		return nil
	}
	suit := lead.Suit
	return &suit
}

// Points sums the counter values currently on the table
func (t TrickState) Points() int {
	total := 0
	for _, c := range t.Cards {
		if c != nil {
			total += c.Points()
		}
	}
	return total
}

// played counts the cards on the table
func (t TrickState) played() int {
	return len(t.PlayOrder)
}

func newTrickState() TrickState {
	return TrickState{
		Cards: map[Seat]*deck.Card{
			SeatA1: nil, SeatB1: nil, SeatA2: nil, SeatB2: nil,
		},
		PlayOrder: []Seat{},
	}
}

// HandRecap summarizes a scored hand for display and logging
type HandRecap struct {
	Dealer       Seat         `json:"dealer"`
	BidWinner    Seat         `json:"bidWinner"`
	Bid          Bid          `json:"bid"`
	Trump        deck.Suit    `json:"trump"`
	GoDownPoints int          `json:"goDownPoints"`
	LastTrickWon Team         `json:"lastTrickWon"`
	TrickCounts  map[Team]int `json:"trickCounts"`
	Points       map[Team]int `json:"points"`
	Deltas       map[Team]int `json:"deltas"`
	Made         bool         `json:"made"`
}

// CardCount totals every card in hands, widow, go-down, and the trick in
// progress, plus cards already captured in completed tricks. For any
// reachable mid-hand state this is exactly 40.
func (gs *GameState) CardCount() int {
	count := 0
	for _, p := range gs.Players {
		if p != nil {
			count += len(p.Hand)
		}
	}
	if gs.Hand == nil {
		return count
	}
	count += len(gs.Hand.Widow)
	count += len(gs.Hand.GoDown)
	for _, c := range gs.Hand.Trick.Cards {
		if c != nil {
			count++
		}
	}
	cleared := gs.Hand.TrickCounts[TeamA] + gs.Hand.TrickCounts[TeamB]
	if gs.Hand.Trick.Complete {
		// The completed trick is still on the table but already counted in
		// TrickCounts; avoid double counting it.
		cleared--
	}
	count += cleared * 4
	return count
}

// Clone returns a deep copy of the aggregate. Snapshots handed to renderers
// and bots are clones, so readers can never mutate engine state.
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	clone := *gs
	clone.Players = make(map[Seat]*Player, len(gs.Players))
	for seat, p := range gs.Players {
		if p == nil {
			clone.Players[seat] = nil
			continue
		}
		cp := *p
		cp.Hand = append([]deck.Card(nil), p.Hand...)
		clone.Players[seat] = &cp
	}
	clone.Scores = cloneTeamInts(gs.Scores)
	if gs.Hand != nil {
		hand := *gs.Hand
		hand.Widow = append([]deck.Card(nil), gs.Hand.Widow...)
		hand.GoDown = append([]deck.Card(nil), gs.Hand.GoDown...)
		hand.Bidding.Bids = make(map[Seat]Bid, len(gs.Hand.Bidding.Bids))
		for seat, bid := range gs.Hand.Bidding.Bids {
			hand.Bidding.Bids[seat] = bid
		}
		if gs.Hand.Trump != nil {
			trump := *gs.Hand.Trump
			hand.Trump = &trump
		}
		hand.Trick.Cards = make(map[Seat]*deck.Card, len(gs.Hand.Trick.Cards))
		for seat, c := range gs.Hand.Trick.Cards {
			if c == nil {
				hand.Trick.Cards[seat] = nil
			} else {
				card := *c
				hand.Trick.Cards[seat] = &card
			}
		}
		hand.Trick.PlayOrder = append([]Seat(nil), gs.Hand.Trick.PlayOrder...)
		hand.TrickCounts = cloneTeamInts(gs.Hand.TrickCounts)
		hand.Captured = cloneTeamInts(gs.Hand.Captured)
		clone.Hand = &hand
	}
	if gs.LastRecap != nil {
		recap := *gs.LastRecap
		recap.TrickCounts = cloneTeamInts(gs.LastRecap.TrickCounts)
		recap.Points = cloneTeamInts(gs.LastRecap.Points)
		recap.Deltas = cloneTeamInts(gs.LastRecap.Deltas)
		clone.LastRecap = &recap
	}
	return &clone
}

func cloneTeamInts(m map[Team]int) map[Team]int {
	out := make(map[Team]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
