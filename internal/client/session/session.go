package session

import (
	"chessdemo/internal/client/api"
	"chessdemo/internal/core"
)

// Session holds client-side state between commands
type Session struct {
	APIBaseURL       string
	Client           *api.Client
	Verbose          bool
	CurrentGame      string
	Seats            core.SeatTokens // tokens known for the current game
	PlayerColor      string          // fixed seat, empty to follow the turn
	LastMoveCount    int
	CurrentGameState *core.GameResponse
}

func New(baseURL string) *Session {
	return &Session{
		APIBaseURL: baseURL,
		Client:     api.New(baseURL),
	}
}

// SetGame makes state the current game and remembers its move count
func (s *Session) SetGame(state *core.GameResponse) {
	if state.GameID != s.CurrentGame {
		s.Seats = core.SeatTokens{}
		s.PlayerColor = ""
	}
	s.CurrentGame = state.GameID
	s.CurrentGameState = state
	s.LastMoveCount = len(state.Moves)
}

// ClearGame forgets the current game
func (s *Session) ClearGame() {
	s.CurrentGame = ""
	s.CurrentGameState = nil
	s.Seats = core.SeatTokens{}
	s.PlayerColor = ""
	s.LastMoveCount = 0
}

// SeatFor returns the token to move with: the fixed seat if one is set,
// otherwise the seat whose turn it is
func (s *Session) SeatFor(turn string) string {
	color := s.PlayerColor
	if color == "" {
		color = turn
	}
	if color == "white" {
		return s.Seats.White
	}
	return s.Seats.Black
}
