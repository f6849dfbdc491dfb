package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"chessdemo/internal/board"
	"chessdemo/internal/core"
	"chessdemo/internal/engine"
)

var ErrGameOver = errors.New("game is over")

// Start selects which side opens the game
type Start string

const (
	StartBlack  Start = "black"
	StartWhite  Start = "white"
	StartRandom Start = "random"
)

func ParseStart(s string) (Start, error) {
	switch Start(s) {
	case "", StartBlack:
		return StartBlack, nil
	case StartWhite, StartRandom:
		return Start(s), nil
	default:
		return "", fmt.Errorf("invalid start side: %q (use black, white or random)", s)
	}
}

// Color resolves the opening side, flipping a coin for StartRandom
func (s Start) Color() core.Color {
	switch s {
	case StartWhite:
		return core.ColorWhite
	case StartRandom:
		if rand.IntN(2) == 0 {
			return core.ColorBlack
		}
		return core.ColorWhite
	default:
		return core.ColorBlack
	}
}

// MoveRecord is one applied move in the game history
type MoveRecord struct {
	Number   int
	Color    core.Color
	Piece    core.Piece
	From     core.Square
	To       core.Square
	Captured core.Piece // zero when the destination was empty
	FEN      string     // Position after the move
}

type Game struct {
	id         string
	board      *board.Board
	engine     *engine.Engine
	players    map[core.Color]*core.Player
	initialFEN string
	history    []MoveRecord
	state      core.State
}

// New starts a game from the standard layout
func New(id string, black, white *core.Player, start Start) *Game {
	return newGame(id, board.NewWithTurn(start.Color()), black, white)
}

// Resume starts a game from a FEN position
func Resume(id string, fen string, black, white *core.Player) (*Game, error) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return newGame(id, b, black, white), nil
}

func newGame(id string, b *board.Board, black, white *core.Player) *Game {
	g := &Game{
		id:     id,
		board:  b,
		engine: engine.New(b),
		players: map[core.Color]*core.Player{
			core.ColorBlack: black,
			core.ColorWhite: white,
		},
		initialFEN: b.FEN(),
		state:      core.StateOngoing,
	}

	// A resumed position may already be missing a king
	grid := b.Grid()
	if !grid.HasKing(core.ColorBlack) {
		g.finish(core.ColorWhite)
	} else if !grid.HasKing(core.ColorWhite) {
		g.finish(core.ColorBlack)
	}

	g.engine.AddObserver(g.onMove)
	return g
}

// onMove runs first among observers and settles status from the snapshot
func (g *Game) onMove(s engine.Snapshot) {
	switch {
	case !s.Grid.HasKing(core.ColorBlack):
		g.finish(core.ColorWhite)
	case !s.Grid.HasKing(core.ColorWhite):
		g.finish(core.ColorBlack)
	default:
		g.board.SetStatus(core.StatusInProgress)
	}
}

func (g *Game) finish(winner core.Color) {
	g.state = core.WinnerState(winner)
	g.board.SetStatus(core.StatusFinished)
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) Board() *board.Board {
	return g.board
}

// AddObserver registers fn after the game's own status observer
func (g *Game) AddObserver(fn engine.Observer) engine.ObserverID {
	return g.engine.AddObserver(fn)
}

func (g *Game) RemoveObserver(id engine.ObserverID) {
	g.engine.RemoveObserver(id)
}

func (g *Game) PieceAt(sq core.Square) core.Piece {
	return g.engine.Piece(sq)
}

func (g *Game) PossibleMoves(sq core.Square) ([]core.Square, error) {
	return g.engine.PossibleMoves(sq)
}

// Select returns the highlight set for sq when it holds a piece of the side
// to move. Highlights for the other side would point the wrong way.
func (g *Game) Select(sq core.Square) ([]core.Square, error) {
	p := g.board.Piece(sq)
	if p.IsZero() {
		return nil, engine.ErrNoPieceAtOrigin
	}
	if p.Color != g.board.Active() {
		return nil, engine.ErrWrongTurn
	}
	return g.engine.PossibleMoves(sq)
}

// Move applies a move and records it. Returns ErrGameOver once a king is gone.
func (g *Game) Move(from, to core.Square) (MoveRecord, error) {
	if g.state != core.StateOngoing {
		return MoveRecord{}, ErrGameOver
	}

	mover := g.board.Active()
	captured := g.board.Piece(to)

	piece, err := g.engine.Move(from, to)
	if err != nil {
		return MoveRecord{}, err
	}

	rec := MoveRecord{
		Number:   len(g.history) + 1,
		Color:    mover,
		Piece:    piece,
		From:     from,
		To:       to,
		Captured: captured,
		FEN:      g.board.FEN(),
	}
	g.history = append(g.history, rec)
	return rec, nil
}

func (g *Game) Player(c core.Color) *core.Player {
	return g.players[c]
}

func (g *Game) NextTurn() core.Color {
	return g.board.Active()
}

func (g *Game) NextPlayer() *core.Player {
	return g.players[g.board.Active()]
}

func (g *Game) Moves() []MoveRecord {
	return append([]MoveRecord(nil), g.history...)
}

func (g *Game) MoveCount() int {
	return len(g.history)
}

// LastMove returns the most recent move, false before the first move
func (g *Game) LastMove() (MoveRecord, bool) {
	if len(g.history) == 0 {
		return MoveRecord{}, false
	}
	return g.history[len(g.history)-1], true
}

func (g *Game) State() core.State {
	return g.state
}

// Winner returns the side that captured a king, ColorNone while ongoing
func (g *Game) Winner() core.Color {
	switch g.state {
	case core.StateBlackWins:
		return core.ColorBlack
	case core.StateWhiteWins:
		return core.ColorWhite
	default:
		return core.ColorNone
	}
}

func (g *Game) Status() core.Status {
	return g.board.Status()
}

func (g *Game) CurrentFEN() string {
	return g.board.FEN()
}

func (g *Game) InitialFEN() string {
	return g.initialFEN
}
