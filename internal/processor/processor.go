package processor

import (
	"errors"
	"fmt"
	"log"

	"chessdemo/internal/core"
	"chessdemo/internal/engine"
	"chessdemo/internal/game"
	"chessdemo/internal/service"
)

// Processor turns transport commands into service calls and shapes responses
type Processor struct {
	svc *service.Service
}

func New(svc *service.Service) *Processor {
	return &Processor{svc: svc}
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdDeleteGame:
		return p.handleDeleteGame(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	case CmdGetPiece:
		return p.handleGetPiece(cmd)
	case CmdGetMoves:
		return p.handleGetMoves(cmd)
	case CmdMakeMove:
		return p.handleMakeMove(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrInvalidRequest)
	}
}

func (p *Processor) handleCreateGame(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.CreateGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	start, err := game.ParseStart(args.Start)
	if err != nil {
		return p.errorResponse(err.Error(), core.ErrInvalidRequest)
	}

	gameID := p.svc.GenerateGameID()
	if _, err := p.svc.CreateGame(gameID, start, core.PlayerRemote); err != nil {
		return p.errorResponse(fmt.Sprintf("failed to create game: %v", err), core.ErrInternalError)
	}

	seats, err := p.svc.IssueSeatTokens(gameID)
	if err != nil {
		log.Printf("Seat signing failed for game %s: %v", gameID, err)
		if derr := p.svc.DeleteGame(gameID); derr != nil {
			log.Printf("Failed to drop unseated game %s: %v", gameID, derr)
		}
		return p.errorResponse(fmt.Sprintf("failed to issue seats: %v", err), core.ErrInternalError)
	}

	resp, err := p.gameResponse(gameID)
	if err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.CreateGameResponse{
			GameResponse: resp,
			Seats:        seats,
		},
	}
}

func (p *Processor) handleGetGame(cmd Command) ProcessorResponse {
	resp, err := p.gameResponse(cmd.GameID)
	if err != nil {
		return p.serviceError(err)
	}
	return ProcessorResponse{Success: true, Data: resp}
}

func (p *Processor) handleDeleteGame(cmd Command) ProcessorResponse {
	if err := p.svc.DeleteGame(cmd.GameID); err != nil {
		return p.serviceError(err)
	}
	return ProcessorResponse{Success: true}
}

func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	var resp core.BoardResponse
	err := p.svc.View(cmd.GameID, func(g *game.Game) error {
		resp = core.BoardResponse{
			FEN:   g.CurrentFEN(),
			Board: g.Board().ToASCII(),
		}
		return nil
	})
	if err != nil {
		return p.serviceError(err)
	}
	return ProcessorResponse{Success: true, Data: resp}
}

func (p *Processor) handleGetPiece(cmd Command) ProcessorResponse {
	sq, err := core.ParseSquare(cmd.Square)
	if err != nil {
		return p.errorResponse(err.Error(), core.ErrInvalidSquare)
	}

	piece, err := p.svc.PieceAt(cmd.GameID, sq)
	if err != nil {
		return p.serviceError(err)
	}

	resp := core.PieceResponse{Square: sq.String(), Empty: piece.IsZero()}
	if !piece.IsZero() {
		resp.Color = piece.Color.String()
		resp.Type = piece.Type.String()
	}
	return ProcessorResponse{Success: true, Data: resp}
}

func (p *Processor) handleGetMoves(cmd Command) ProcessorResponse {
	sq, err := core.ParseSquare(cmd.Square)
	if err != nil {
		return p.errorResponse(err.Error(), core.ErrInvalidSquare)
	}

	moves, err := p.svc.PossibleMoves(cmd.GameID, sq)
	if err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.MovesResponse{
			From:         sq.String(),
			Destinations: squareStrings(moves),
		},
	}
}

func (p *Processor) handleMakeMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	from, err := core.ParseSquare(args.From)
	if err != nil {
		return p.errorResponse(err.Error(), core.ErrInvalidSquare)
	}
	to, err := core.ParseSquare(args.To)
	if err != nil {
		return p.errorResponse(err.Error(), core.ErrInvalidSquare)
	}

	seat, err := p.svc.ValidateSeat(cmd.GameID, cmd.Seat)
	if errors.Is(err, service.ErrGameNotFound) {
		return p.serviceError(err)
	}
	if err != nil {
		return p.errorResponse(err.Error(), core.ErrUnauthorized)
	}

	if _, err := p.svc.MakeMoveAs(cmd.GameID, seat.Color, from, to); err != nil {
		return p.serviceError(err)
	}

	resp, err := p.gameResponse(cmd.GameID)
	if err != nil {
		return p.serviceError(err)
	}
	return ProcessorResponse{Success: true, Data: resp}
}

func (p *Processor) gameResponse(gameID string) (core.GameResponse, error) {
	var resp core.GameResponse
	err := p.svc.View(gameID, func(g *game.Game) error {
		resp = buildGameResponse(g)
		return nil
	})
	return resp, err
}

func buildGameResponse(g *game.Game) core.GameResponse {
	history := g.Moves()
	moves := make([]core.MoveInfo, 0, len(history))
	for _, m := range history {
		moves = append(moves, moveInfo(m))
	}

	resp := core.GameResponse{
		GameID: g.ID(),
		FEN:    g.CurrentFEN(),
		Turn:   g.NextTurn().String(),
		Status: g.Status().String(),
		State:  g.State().String(),
		Moves:  moves,
		Players: core.PlayersResponse{
			Black: g.Player(core.ColorBlack),
			White: g.Player(core.ColorWhite),
		},
	}
	if len(moves) > 0 {
		last := moves[len(moves)-1]
		resp.LastMove = &last
	}
	return resp
}

func moveInfo(m game.MoveRecord) core.MoveInfo {
	info := core.MoveInfo{
		Number: m.Number,
		Color:  m.Color.String(),
		Piece:  m.Piece.Type.String(),
		From:   m.From.String(),
		To:     m.To.String(),
	}
	if !m.Captured.IsZero() {
		info.Captured = m.Captured.String()
	}
	return info
}

func squareStrings(squares []core.Square) []string {
	out := make([]string, len(squares))
	for i, s := range squares {
		out[i] = s.String()
	}
	return out
}

// serviceError maps domain errors to API codes
func (p *Processor) serviceError(err error) ProcessorResponse {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return p.errorResponse("game not found", core.ErrGameNotFound)
	case errors.Is(err, service.ErrNotYourTurn):
		return p.errorResponse(err.Error(), core.ErrNotYourTurn)
	case errors.Is(err, engine.ErrNoPieceAtOrigin):
		return p.errorResponse(err.Error(), core.ErrNoPieceAtOrigin)
	case errors.Is(err, engine.ErrWrongTurn):
		return p.errorResponse(err.Error(), core.ErrWrongTurn)
	case errors.Is(err, engine.ErrIllegalDestination):
		return p.errorResponse(err.Error(), core.ErrIllegalDestination)
	case errors.Is(err, game.ErrGameOver):
		return p.errorResponse(err.Error(), core.ErrGameOver)
	default:
		return p.errorResponse(err.Error(), core.ErrInternalError)
	}
}

func (p *Processor) errorResponse(message string, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}
