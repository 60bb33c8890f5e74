package game

import "strconv"

// Bid represents a seat's bid. Zero means pass; anything else must come from
// the fixed ladder.
type Bid int

// Pass is the zero bid
const Pass Bid = 0

// Bid ladder bounds
const (
	MinBid  Bid = 65
	MaxBid  Bid = 120
	BidStep Bid = 5
)

// BidLadder returns every biddable value in ascending order: 65, 70, ... 120
func BidLadder() []Bid {
	ladder := make([]Bid, 0, int((MaxBid-MinBid)/BidStep)+1)
	for b := MinBid; b <= MaxBid; b += BidStep {
		ladder = append(ladder, b)
	}
	return ladder
}

// IsPass reports whether the bid is a pass
func (b Bid) IsPass() bool {
	return b == Pass
}

// OnLadder reports whether the bid is a legal rung of the ladder
func (b Bid) OnLadder() bool {
	return b >= MinBid && b <= MaxBid && (b-MinBid)%BidStep == 0
}

// NextRungAbove returns the lowest rung strictly above b, or Pass when b is
// already at the top
func NextRungAbove(b Bid) Bid {
	for _, rung := range BidLadder() {
		if rung > b {
			return rung
		}
	}
	return Pass
}

// String returns "pass" or the numeric bid
func (b Bid) String() string {
	if b.IsPass() {
		return "pass"
	}
	return strconv.Itoa(int(b))
}
