package board

import (
	"fmt"
	"strings"

	"chessdemo/internal/core"
)

const (
	StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBKQBNR b"
)

// backRank is black's home row in file order; white's is the reverse
var backRank = [core.BoardSize]core.PieceType{
	core.Rook, core.Knight, core.Bishop, core.Queen,
	core.King, core.Bishop, core.Knight, core.Rook,
}

// Grid is indexed [file][rank]. Copying a Grid copies every cell.
type Grid [core.BoardSize][core.BoardSize]core.Piece

// Board is the only mutable game aggregate: cells, side to move and status.
// It is not safe for concurrent use.
type Board struct {
	grid   Grid
	active core.Color
	status core.Status
}

// New returns a board holding the starting layout with black to move
func New() *Board {
	return NewWithTurn(core.ColorBlack)
}

// NewWithTurn seeds the starting layout and hands the first move to c
func NewWithTurn(c core.Color) *Board {
	b := &Board{active: c, status: core.StatusReady}
	b.seed()
	return b
}

func (b *Board) seed() {
	for file, t := range backRank {
		b.grid[file][0] = core.NewPiece(core.ColorBlack, t)
		b.grid[file][1] = core.NewPiece(core.ColorBlack, core.Pawn)
		b.grid[file][6] = core.NewPiece(core.ColorWhite, core.Pawn)
		b.grid[file][7] = core.NewPiece(core.ColorWhite, backRank[core.BoardSize-1-file])
	}
}

// Piece returns the piece on sq, or the zero Piece when empty
func (b *Board) Piece(sq core.Square) core.Piece {
	mustBeValid(sq)
	return b.grid[sq.File][sq.Rank]
}

// Place writes p to sq without any rule check. Placing the zero Piece clears it.
func (b *Board) Place(sq core.Square, p core.Piece) {
	mustBeValid(sq)
	b.grid[sq.File][sq.Rank] = p
}

func (b *Board) Active() core.Color {
	return b.active
}

// FlipTurn hands the move to the other side
func (b *Board) FlipTurn() {
	b.active = core.OppositeColor(b.active)
}

func (b *Board) Status() core.Status {
	return b.status
}

func (b *Board) SetStatus(s core.Status) {
	b.status = s
}

// Grid returns a copy of all cells
func (b *Board) Grid() Grid {
	return b.grid
}

// HasKing reports whether a king of color c is anywhere on the grid
func (g *Grid) HasKing(c core.Color) bool {
	for file := range g {
		for rank := range g[file] {
			if p := g[file][rank]; p.Type == core.King && p.Color == c {
				return true
			}
		}
	}
	return false
}

// Count returns the number of occupied squares
func (g *Grid) Count() int {
	n := 0
	for file := range g {
		for rank := range g[file] {
			if !g[file][rank].IsZero() {
				n++
			}
		}
	}
	return n
}

func mustBeValid(sq core.Square) {
	if !sq.Valid() {
		panic(fmt.Sprintf("board: square %s outside the grid", sq))
	}
}

// ToASCII creates an ASCII representation of the board, rank 7 on top
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := core.BoardSize - 1; r >= 0; r-- {
		sb.WriteString(fmt.Sprintf("%d ", r+1))
		for f := 0; f < core.BoardSize; f++ {
			piece := b.grid[f][r]
			if piece.IsZero() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(fmt.Sprintf("%c ", piece.Letter()))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r+1))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
