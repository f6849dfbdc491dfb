package core

// Request types

type CreateGameRequest struct {
	Start string `json:"start,omitempty" validate:"omitempty,oneof=black white random"`
}

type MoveRequest struct {
	From string `json:"from" validate:"required,square"`
	To   string `json:"to" validate:"required,square"`
}

// Response types

type GameResponse struct {
	GameID   string          `json:"gameId"`
	FEN      string          `json:"fen"`
	Turn     string          `json:"turn"`   // "black" or "white"
	Status   string          `json:"status"` // "ready", "in_progress", "finished"
	State    string          `json:"state"`  // "ongoing", "black wins", "white wins"
	Moves    []MoveInfo      `json:"moves"`
	Players  PlayersResponse `json:"players"`
	LastMove *MoveInfo       `json:"lastMove,omitempty"`
}

// CreateGameResponse carries the seat tokens, only returned once
type CreateGameResponse struct {
	GameResponse
	Seats SeatTokens `json:"seats"`
}

type SeatTokens struct {
	Black string `json:"black"`
	White string `json:"white"`
}

type PlayersResponse struct {
	Black *Player `json:"black"`
	White *Player `json:"white"`
}

type MoveInfo struct {
	Number   int    `json:"number"`
	Color    string `json:"color"`
	Piece    string `json:"piece"`
	From     string `json:"from"`
	To       string `json:"to"`
	Captured string `json:"captured,omitempty"`
}

type PieceResponse struct {
	Square string `json:"square"`
	Empty  bool   `json:"empty"`
	Color  string `json:"color,omitempty"`
	Type   string `json:"type,omitempty"`
}

type MovesResponse struct {
	From         string   `json:"from"`
	Destinations []string `json:"destinations"`
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Board string `json:"board"` // ASCII representation
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
