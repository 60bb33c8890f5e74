package game

// Seat identifies one of the four fixed positions at the table. The first
// character of a seat names its team, so A1 and A2 are partners against
// B1 and B2.
type Seat string

const (
	SeatA1 Seat = "A1"
	SeatB1 Seat = "B1"
	SeatA2 Seat = "A2"
	SeatB2 Seat = "B2"
)

// SeatOrder is the clockwise order of play
var SeatOrder = []Seat{SeatA1, SeatB1, SeatA2, SeatB2}

// Team identifies one of the two partnerships
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// Teams lists both teams in a stable order
var Teams = []Team{TeamA, TeamB}

// Valid reports whether s is one of the four seats
func (s Seat) Valid() bool {
	switch s {
	case SeatA1, SeatB1, SeatA2, SeatB2:
		return true
	}
	return false
}

// Team returns the team a seat belongs to
func (s Seat) Team() Team {
	return Team(s[:1])
}

// Next returns the seat clockwise from s
func (s Seat) Next() Seat {
	for i, seat := range SeatOrder {
		if seat == s {
			return SeatOrder[(i+1)%len(SeatOrder)]
		}
	}
	return s
}

// Partner returns the seat two positions clockwise from s
func (s Seat) Partner() Seat {
	return s.Next().Next()
}

// Opponent returns the other team
func (t Team) Opponent() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}
