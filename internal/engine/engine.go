// Package engine generates destinations from fixed offset tables and applies
// moves to a board.
//
// Generation is deliberately incomplete chess: sliding pieces are not
// occluded, friendly-occupied squares are not excluded, and offsets are
// mirrored by the side to move rather than by the queried piece's color.
// Pawn directions for the non-moving side are therefore reversed.
package engine

import (
	"chessdemo/internal/board"
	"chessdemo/internal/core"
)

// Snapshot is the post-move state handed to observers. Grid is a copy.
type Snapshot struct {
	Status core.Status
	Grid   board.Grid
	Active core.Color
}

// Observer is called synchronously after every applied move. It must not
// call Move on the same engine.
type Observer func(Snapshot)

type ObserverID int

type observerEntry struct {
	id ObserverID
	fn Observer
}

// Engine owns the move transaction over a single board.
// It is not safe for concurrent use.
type Engine struct {
	board     *board.Board
	observers []observerEntry
	nextID    ObserverID
}

func New(b *board.Board) *Engine {
	return &Engine{board: b}
}

func (e *Engine) Board() *board.Board {
	return e.board
}

// Piece returns the piece on sq, zero Piece for empty
func (e *Engine) Piece(sq core.Square) core.Piece {
	return e.board.Piece(sq)
}

// AddObserver registers fn; observers run in registration order
func (e *Engine) AddObserver(fn Observer) ObserverID {
	e.nextID++
	e.observers = append(e.observers, observerEntry{id: e.nextID, fn: fn})
	return e.nextID
}

// RemoveObserver drops a registration; unknown ids are ignored
func (e *Engine) RemoveObserver(id ObserverID) {
	for i, o := range e.observers {
		if o.id == id {
			e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
			return
		}
	}
}

// PossibleMoves returns the in-bounds destinations for the piece on from,
// in offset table order
func (e *Engine) PossibleMoves(from core.Square) ([]core.Square, error) {
	piece := e.board.Piece(from)
	if piece.IsZero() {
		return nil, ErrNoPieceAtOrigin
	}

	offsets := Mirror(CandidateOffsets(piece.Type), e.board.Active())

	moves := make([]core.Square, 0, len(offsets))
	for _, o := range offsets {
		to := from.Add(o)
		if !to.Valid() {
			continue
		}
		if !e.isPathClear(from, to) || e.isFriendlyOccupied(piece, to) {
			continue
		}
		moves = append(moves, to)
	}
	return moves, nil
}

// isPathClear reports whether nothing blocks the line from→to.
// Occlusion is not modelled, so every path is clear.
func (e *Engine) isPathClear(from, to core.Square) bool {
	return true
}

// isFriendlyOccupied reports whether mover would land on its own side.
// Same-color captures are not rejected, so this never matches.
func (e *Engine) isFriendlyOccupied(mover core.Piece, to core.Square) bool {
	return false
}

// Move applies from→to and returns the moved piece. On error nothing changes.
func (e *Engine) Move(from, to core.Square) (core.Piece, error) {
	piece := e.board.Piece(from)
	if piece.IsZero() {
		return core.Piece{}, ErrNoPieceAtOrigin
	}
	if piece.Color != e.board.Active() {
		return core.Piece{}, ErrWrongTurn
	}

	// to is validated before PossibleMoves so a bad square fails loudly here
	// rather than as an illegal destination
	e.board.Piece(to)

	moves, err := e.PossibleMoves(from)
	if err != nil {
		return core.Piece{}, err
	}
	if !contains(moves, to) {
		return core.Piece{}, ErrIllegalDestination
	}

	e.board.Place(to, piece)
	e.board.Place(from, core.Piece{})
	e.board.FlipTurn()

	e.notify()
	return piece, nil
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Status: e.board.Status(),
		Grid:   e.board.Grid(),
		Active: e.board.Active(),
	}
}

func (e *Engine) notify() {
	snap := e.Snapshot()
	// Registrations made during this pass apply from the next move
	observers := append([]observerEntry(nil), e.observers...)
	for _, o := range observers {
		o.fn(snap)
	}
}

func contains(squares []core.Square, sq core.Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}
