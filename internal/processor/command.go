package processor

import (
	"chessdemo/internal/core"
)

// CommandType defines the type of command being executed
type CommandType int

const (
	CmdCreateGame CommandType = iota
	CmdGetGame
	CmdDeleteGame
	CmdGetBoard
	CmdGetPiece
	CmdGetMoves
	CmdMakeMove
)

// Command is a unified structure for all processor operations
type Command struct {
	Type   CommandType
	GameID string
	Seat   string // Seat token, required for moves
	Square string // For square queries
	Args   any    // Command-specific arguments
}

// ProcessorResponse wraps the response with metadata
type ProcessorResponse struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   *core.ErrorResponse `json:"error,omitempty"`
}

func NewCreateGameCommand(req core.CreateGameRequest) Command {
	return Command{
		Type: CmdCreateGame,
		Args: req,
	}
}

func NewGetGameCommand(gameID string) Command {
	return Command{
		Type:   CmdGetGame,
		GameID: gameID,
	}
}

func NewDeleteGameCommand(gameID string) Command {
	return Command{
		Type:   CmdDeleteGame,
		GameID: gameID,
	}
}

func NewGetBoardCommand(gameID string) Command {
	return Command{
		Type:   CmdGetBoard,
		GameID: gameID,
	}
}

func NewGetPieceCommand(gameID, square string) Command {
	return Command{
		Type:   CmdGetPiece,
		GameID: gameID,
		Square: square,
	}
}

func NewGetMovesCommand(gameID, square string) Command {
	return Command{
		Type:   CmdGetMoves,
		GameID: gameID,
		Square: square,
	}
}

func NewMakeMoveCommand(gameID, seat string, req core.MoveRequest) Command {
	return Command{
		Type:   CmdMakeMove,
		GameID: gameID,
		Seat:   seat,
		Args:   req,
	}
}
