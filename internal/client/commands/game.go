package commands

import (
	"fmt"
	"strings"

	"chessdemo/internal/client/display"
	"chessdemo/internal/client/session"
	"chessdemo/internal/core"
)

func (r *Registry) registerGameCommands() {
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Create a new game and keep both seats",
		Usage:       "new [black|white|random]",
		Handler:     r.newGameHandler,
	})

	r.Register(&Command{
		Name:        "join",
		ShortName:   "j",
		Description: "Set current game, optionally with a seat token",
		Usage:       "join <gameId> [black|white <token>]",
		Handler:     r.joinGameHandler,
	})

	r.Register(&Command{
		Name:        "seat",
		ShortName:   "t",
		Description: "Show seat tokens or fix the seat to move with",
		Usage:       "seat [black|white|auto]",
		Handler:     r.seatHandler,
	})

	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Make a move",
		Usage:       "move <from> <to> | move <from><to>",
		Handler:     r.moveHandler,
	})

	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Description: "Show board and game state",
		Usage:       "show",
		Handler:     r.showBoardHandler,
	})

	r.Register(&Command{
		Name:        "square",
		ShortName:   "q",
		Description: "Show the piece on a square",
		Usage:       "square <square>",
		Handler:     r.squareHandler,
	})

	r.Register(&Command{
		Name:        "moves",
		ShortName:   "o",
		Description: "List destinations for the piece on a square",
		Usage:       "moves <square>",
		Handler:     r.movesHandler,
	})

	r.Register(&Command{
		Name:        "state",
		ShortName:   "s",
		Description: "Show raw game JSON",
		Usage:       "state",
		Handler:     r.gameStateHandler,
	})

	r.Register(&Command{
		Name:        "delete",
		ShortName:   "d",
		Description: "Delete a game",
		Usage:       "delete [gameId]",
		Handler:     r.deleteGameHandler,
	})

	r.Register(&Command{
		Name:        "poll",
		ShortName:   "p",
		Description: "Long-poll for game updates",
		Usage:       "poll",
		Handler:     r.pollHandler,
	})
}

func requireGame(s *session.Session) error {
	if s.CurrentGame == "" {
		return fmt.Errorf("no current game, use 'new' or 'join'")
	}
	return nil
}

func (r *Registry) newGameHandler(s *session.Session, args []string) error {
	start := ""
	if len(args) > 0 {
		start = strings.ToLower(args[0])
	}

	resp, err := s.Client.CreateGame(start)
	if err != nil {
		return err
	}

	s.SetGame(&resp.GameResponse)
	s.Seats = resp.Seats

	fmt.Fprintf(r.out, "%sGame created: %s%s\n", display.Green, resp.GameID, display.Reset)
	fmt.Fprintf(r.out, "%s%s moves first%s\n", display.Cyan, display.ColorForTurn(resp.Turn), display.Reset)
	return nil
}

func (r *Registry) joinGameHandler(s *session.Session, args []string) error {
	if len(args) != 1 && len(args) != 3 {
		return fmt.Errorf("usage: join <gameId> [black|white <token>]")
	}

	resp, err := s.Client.GetGame(args[0])
	if err != nil {
		return err
	}
	s.SetGame(resp)

	if len(args) == 3 {
		switch strings.ToLower(args[1]) {
		case "black":
			s.Seats.Black = args[2]
		case "white":
			s.Seats.White = args[2]
		default:
			return fmt.Errorf("seat must be black or white")
		}
		s.PlayerColor = strings.ToLower(args[1])
	}

	fmt.Fprintf(r.out, "%sCurrent game set to: %s%s\n", display.Cyan, resp.GameID, display.Reset)
	return nil
}

func (r *Registry) seatHandler(s *session.Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}

	if len(args) == 0 {
		mode := s.PlayerColor
		if mode == "" {
			mode = "auto (side to move)"
		}
		fmt.Fprintf(r.out, "Seat: %s\n", mode)
		fmt.Fprintf(r.out, "Black token: %s\n", orNone(s.Seats.Black))
		fmt.Fprintf(r.out, "White token: %s\n", orNone(s.Seats.White))
		return nil
	}

	switch strings.ToLower(args[0]) {
	case "auto":
		s.PlayerColor = ""
	case "black", "white":
		s.PlayerColor = strings.ToLower(args[0])
	default:
		return fmt.Errorf("usage: seat [black|white|auto]")
	}
	return nil
}

func orNone(token string) string {
	if token == "" {
		return "(none)"
	}
	return token
}

func (r *Registry) moveHandler(s *session.Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}

	var from, to string
	switch {
	case len(args) == 2:
		from, to = args[0], args[1]
	case len(args) == 1 && len(args[0]) == 4:
		from, to = args[0][:2], args[0][2:]
	default:
		return fmt.Errorf("usage: move <from> <to>")
	}

	turn := ""
	if s.CurrentGameState != nil {
		turn = s.CurrentGameState.Turn
	}
	s.Client.SetToken(s.SeatFor(turn))

	resp, err := s.Client.MakeMove(s.CurrentGame, strings.ToLower(from), strings.ToLower(to))
	if err != nil {
		// Turn may have moved on from another client
		if latest, gerr := s.Client.GetGame(s.CurrentGame); gerr == nil {
			s.SetGame(latest)
		}
		return err
	}
	s.SetGame(resp)

	if resp.LastMove != nil {
		m := resp.LastMove
		line := fmt.Sprintf("%s %s %s-%s", m.Color, m.Piece, m.From, m.To)
		if m.Captured != "" {
			line += " takes " + m.Captured
		}
		fmt.Fprintln(r.out, display.Paint(display.SideColor(m.Color), line))
	}
	if resp.State != core.StateOngoing.String() {
		fmt.Fprintln(r.out, display.Paint(display.GameOver, "Game over: "+resp.State))
	}
	return nil
}

func (r *Registry) showBoardHandler(s *session.Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}

	board, err := s.Client.GetBoard(s.CurrentGame)
	if err != nil {
		return err
	}
	game, err := s.Client.GetGame(s.CurrentGame)
	if err != nil {
		return err
	}
	s.SetGame(game)

	fmt.Fprintln(r.out)
	display.RenderBoard(r.out, board.Board)
	fmt.Fprintf(r.out, "\nFEN: %s\n", board.FEN)
	fmt.Fprintf(r.out, "Turn: %s  Status: %s  State: %s  Moves: %d\n",
		display.ColorForTurn(game.Turn), game.Status, game.State, len(game.Moves))
	return nil
}

func (r *Registry) squareHandler(s *session.Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: square <square>")
	}

	resp, err := s.Client.GetPiece(s.CurrentGame, strings.ToLower(args[0]))
	if err != nil {
		return err
	}
	if resp.Empty {
		fmt.Fprintf(r.out, "%s: empty\n", resp.Square)
	} else {
		fmt.Fprintf(r.out, "%s: %s %s\n", resp.Square, resp.Color, resp.Type)
	}
	return nil
}

func (r *Registry) movesHandler(s *session.Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: moves <square>")
	}

	resp, err := s.Client.GetMoves(s.CurrentGame, strings.ToLower(args[0]))
	if err != nil {
		return err
	}
	if len(resp.Destinations) == 0 {
		fmt.Fprintf(r.out, "%s: no destinations\n", resp.From)
		return nil
	}
	fmt.Fprintf(r.out, "%s: %s\n", resp.From, strings.Join(resp.Destinations, " "))
	return nil
}

func (r *Registry) gameStateHandler(s *session.Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}

	resp, err := s.Client.GetGame(s.CurrentGame)
	if err != nil {
		return err
	}
	s.SetGame(resp)
	display.PrettyPrintJSON(r.out, resp)
	return nil
}

func (r *Registry) deleteGameHandler(s *session.Session, args []string) error {
	gameID := s.CurrentGame
	if len(args) > 0 {
		gameID = args[0]
	}
	if gameID == "" {
		return fmt.Errorf("no game specified")
	}

	if err := s.Client.DeleteGame(gameID); err != nil {
		return err
	}
	if gameID == s.CurrentGame {
		s.ClearGame()
	}
	fmt.Fprintf(r.out, "%sGame deleted: %s%s\n", display.Green, gameID, display.Reset)
	return nil
}

func (r *Registry) pollHandler(s *session.Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%sWaiting for a move after #%d...%s\n", display.Cyan, s.LastMoveCount, display.Reset)
	resp, err := s.Client.GetGameWithPoll(s.CurrentGame, s.LastMoveCount)
	if err != nil {
		return err
	}

	if len(resp.Moves) == s.LastMoveCount {
		fmt.Fprintf(r.out, "No new moves\n")
		return nil
	}
	s.SetGame(resp)
	if m := resp.LastMove; m != nil {
		fmt.Fprintf(r.out, "%s%s %s %s-%s%s\n", display.Green, m.Color, m.Piece, m.From, m.To, display.Reset)
	}
	return nil
}
