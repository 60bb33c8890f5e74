package game

// Phase represents where the current hand is in its lifecycle
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseDealing
	PhaseBidding
	PhaseWidow
	PhaseTrump
	PhasePlaying
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseDealing:
		return "dealing"
	case PhaseBidding:
		return "bidding"
	case PhaseWidow:
		return "widow"
	case PhaseTrump:
		return "trump"
	case PhasePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Status represents the lifecycle of a game session
type Status int

const (
	StatusWaiting Status = iota
	StatusActive
	StatusCompleted
)

// String returns the string representation of a status
func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}
