package cli

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"chessdemo/internal/board"
	"chessdemo/internal/cli"
	"chessdemo/internal/core"
	"chessdemo/internal/engine"
	"chessdemo/internal/game"
	"chessdemo/internal/service"
	"chessdemo/internal/transport"
)

type CLIHandler struct {
	svc    *service.Service
	view   *cli.CLI
	gameID string
}

// New wires a terminal view to a service. The board is redrawn from the
// engine snapshot after every applied move.
func New(svc *service.Service, view *cli.CLI) *CLIHandler {
	h := &CLIHandler{
		svc:  svc,
		view: view,
	}
	svc.AddObserver(redrawOnMove(view))
	return h
}

func redrawOnMove(view transport.View) engine.Observer {
	return func(s engine.Snapshot) {
		view.DisplayBoard(s.Grid, nil)
	}
}

// Main game loop - simple command processing
func (h *CLIHandler) Run() {
	for {
		h.view.ShowPrompt(h.getPrompt())

		cmd, err := h.view.GetCommand()
		if err != nil {
			break
		}

		if !h.ProcessCommand(cmd) {
			break
		}
	}
}

// GameID returns the active game, empty when none
func (h *CLIHandler) GameID() string {
	return h.gameID
}

func (h *CLIHandler) getPrompt() string {
	prompt := "> "
	if h.gameID == "" {
		return prompt
	}
	if err := h.svc.View(h.gameID, func(g *game.Game) error {
		if g.State() == core.StateOngoing {
			prompt = fmt.Sprintf("[%c]> ", g.NextTurn())
		}
		return nil
	}); err != nil {
		log.Printf("Prompt lookup failed for game %s: %v", h.gameID, err)
	}
	return prompt
}

// Handles user commands - returns false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:
		return true

	case cli.CmdNew:
		side := ""
		if len(cmd.Args) > 0 {
			side = cmd.Args[0]
		}
		h.handleNewGame(side)

	case cli.CmdResume:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: resume <FEN string>")
			return true
		}
		h.handleResume(strings.Join(cmd.Args, " "))

	case cli.CmdSelect:
		if len(cmd.Args) != 1 {
			h.view.ShowMessage("Usage: select <square>")
			return true
		}
		h.handleSelect(cmd.Args[0])

	case cli.CmdMove:
		if len(cmd.Args) != 2 {
			h.view.ShowMessage("Usage: move <from> <to>, or e.g. e2e4")
			return true
		}
		h.handleMove(cmd.Args[0], cmd.Args[1])

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}

		theme := cli.ColorTheme(cmd.Args[0])
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
		h.redraw(nil)

	case cli.CmdVerbose:
		verbose := h.view.ToggleVerbose()
		h.view.ShowMessage(fmt.Sprintf("Verbose mode: %t", verbose))

	case cli.CmdHistory:
		if h.gameID == "" {
			h.view.ShowMessage("No active game.")
			return true
		}
		if err := h.svc.View(h.gameID, func(g *game.Game) error {
			h.view.ShowGameHistory(g)
			return nil
		}); err != nil {
			h.view.ShowError(err)
		}

	case cli.CmdHelp:
		h.view.ShowHelp()

	case cli.CmdUnknown:
		h.view.ShowMessage(fmt.Sprintf("Unknown command: %s (type 'help')", cmd.Raw))
	}

	return true
}

func (h *CLIHandler) handleNewGame(side string) {
	start, err := game.ParseStart(side)
	if err != nil {
		h.view.ShowError(err)
		return
	}

	id := h.svc.GenerateGameID()
	if _, err := h.svc.CreateGame(id, start, core.PlayerHuman); err != nil {
		h.view.ShowError(fmt.Errorf("could not start the game: %w", err))
		return
	}
	h.started(id)
}

func (h *CLIHandler) handleResume(fen string) {
	id := h.svc.GenerateGameID()
	g, err := h.svc.ResumeGame(id, fen, core.PlayerHuman, core.PlayerHuman)
	if err != nil {
		h.view.ShowError(fmt.Errorf("could not resume: %w", err))
		return
	}
	if state := g.State(); state != core.StateOngoing {
		h.view.ShowGameOver(state)
		if err := h.svc.DeleteGame(id); err != nil {
			log.Printf("Failed to drop finished game %s: %v", id, err)
		}
		return
	}
	h.started(id)
}

func (h *CLIHandler) started(id string) {
	h.dropGame()
	h.gameID = id
	h.view.ShowMessage("Game started.")
	h.redraw(nil)
}

func (h *CLIHandler) handleSelect(square string) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new' or 'resume <FEN>'.")
		return
	}

	sq, err := core.ParseSquare(square)
	if err != nil {
		h.view.ShowError(err)
		return
	}

	moves, err := h.svc.Select(h.gameID, sq)
	if err != nil {
		h.view.ShowError(describe(err))
		return
	}

	h.redraw(moves)
	if h.view.IsVerbose() {
		names := make([]string, len(moves))
		for i, m := range moves {
			names[i] = m.String()
		}
		h.view.ShowMessage(fmt.Sprintf("%s reaches: %s", sq, strings.Join(names, " ")))
	}
}

func (h *CLIHandler) handleMove(fromStr, toStr string) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new' or 'resume <FEN>'.")
		return
	}

	from, err := core.ParseSquare(fromStr)
	if err != nil {
		h.view.ShowError(err)
		return
	}
	to, err := core.ParseSquare(toStr)
	if err != nil {
		h.view.ShowError(err)
		return
	}

	// The board is redrawn by the move observer
	rec, err := h.svc.MakeMove(h.gameID, from, to)
	if err != nil {
		h.view.ShowError(fmt.Errorf("invalid move: %w", describe(err)))
		return
	}
	h.view.ShowMove(rec)

	var state core.State
	if err := h.svc.View(h.gameID, func(g *game.Game) error {
		state = g.State()
		return nil
	}); err != nil {
		h.view.ShowError(err)
		return
	}
	if state != core.StateOngoing {
		h.view.ShowGameOver(state)
	}
}

func (h *CLIHandler) redraw(highlights []core.Square) {
	if h.gameID == "" {
		return
	}
	var grid board.Grid
	if err := h.svc.View(h.gameID, func(g *game.Game) error {
		grid = g.Board().Grid()
		return nil
	}); err != nil {
		h.view.ShowError(err)
		return
	}
	h.view.DisplayBoard(grid, highlights)
}

// dropGame releases the current game; a finished game stays until replaced
// so its history remains viewable
func (h *CLIHandler) dropGame() {
	if h.gameID != "" {
		if err := h.svc.DeleteGame(h.gameID); err != nil {
			log.Printf("Failed to drop game %s: %v", h.gameID, err)
		}
		h.gameID = ""
	}
}

// describe adds a hint to engine rejections
func describe(err error) error {
	switch {
	case errors.Is(err, engine.ErrNoPieceAtOrigin):
		return fmt.Errorf("%w, pick a square holding a piece", err)
	case errors.Is(err, engine.ErrWrongTurn):
		return fmt.Errorf("%w, that piece belongs to the other side", err)
	case errors.Is(err, engine.ErrIllegalDestination):
		return fmt.Errorf("%w, try 'select' to see reachable squares", err)
	default:
		return err
	}
}
