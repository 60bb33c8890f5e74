package game

import "github.com/slimsherpa/rook13/internal/deck"

// Game-end thresholds. Both are strict: a game ends only when a cumulative
// score moves beyond the bound, not when it lands exactly on it.
const (
	WinThreshold  = 500
	LoseThreshold = -250
)

// TrickBonus is awarded to a team that takes the majority of the nine tricks
const (
	TrickBonus     = 20
	TricksForBonus = 5
	TricksPerHand  = 9
)

// scoreHand settles a finished hand and applies the deltas to the cumulative
// scores. Captured points per team already include every trick; the go-down
// goes to the team that won the last trick. The bid-winning team banks its
// captured points (plus the trick bonus) only if the captured points alone
// meet the bid; otherwise it is set back the full bid and forfeits any
// bonus. The defending team always banks its own points.
func scoreHand(gs *GameState, lastTrickWinner Team) *HandRecap {
	hand := gs.Hand
	goDownPoints := deck.SumPoints(hand.GoDown)

	captured := map[Team]int{
		TeamA: hand.Captured[TeamA],
		TeamB: hand.Captured[TeamB],
	}
	captured[lastTrickWinner] += goDownPoints

	bonus := map[Team]int{}
	for _, team := range Teams {
		if hand.TrickCounts[team] >= TricksForBonus {
			bonus[team] = TrickBonus
		}
	}

	bidTeam := hand.Bidding.Winner.Team()
	bid := hand.Bidding.CurrentBid
	made := captured[bidTeam] >= int(bid)

	deltas := map[Team]int{}
	for _, team := range Teams {
		if team == bidTeam && !made {
			deltas[team] = -int(bid)
			continue
		}
		deltas[team] = captured[team] + bonus[team]
	}
	for _, team := range Teams {
		gs.Scores[team] += deltas[team]
	}

	points := map[Team]int{}
	for _, team := range Teams {
		points[team] = captured[team] + bonus[team]
	}

	var trump deck.Suit
	if hand.Trump != nil {
		trump = *hand.Trump
	}
	return &HandRecap{
		Dealer:       gs.Dealer,
		BidWinner:    hand.Bidding.Winner,
		Bid:          bid,
		Trump:        trump,
		GoDownPoints: goDownPoints,
		LastTrickWon: lastTrickWinner,
		TrickCounts:  cloneTeamInts(hand.TrickCounts),
		Points:       points,
		Deltas:       deltas,
		Made:         made,
	}
}

// gameOver reports whether either cumulative score has crossed a threshold
func gameOver(scores map[Team]int) bool {
	for _, score := range scores {
		if score > WinThreshold || score < LoseThreshold {
			return true
		}
	}
	return false
}
