package core

// State is the outcome of a game as seen by the game layer
type State int

const (
	StateOngoing State = iota
	StateBlackWins
	StateWhiteWins
)

func (s State) String() string {
	switch s {
	case StateBlackWins:
		return "black wins"
	case StateWhiteWins:
		return "white wins"
	case StateOngoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

// WinnerState maps the capturing side to its terminal state
func WinnerState(c Color) State {
	if c == ColorWhite {
		return StateWhiteWins
	}
	return StateBlackWins
}
