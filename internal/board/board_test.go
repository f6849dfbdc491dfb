package board

import (
	"strings"
	"testing"

	"chessdemo/internal/core"
)

func TestNewStartingLayout(t *testing.T) {
	b := New()

	want := []core.PieceType{
		core.Rook, core.Knight, core.Bishop, core.Queen,
		core.King, core.Bishop, core.Knight, core.Rook,
	}

	for file := 0; file < 8; file++ {
		if got := b.Piece(core.Sq(file, 0)); got != core.NewPiece(core.ColorBlack, want[file]) {
			t.Errorf("rank 0 file %d: got %v, want black %v", file, got, want[file])
		}
		if got := b.Piece(core.Sq(file, 7)); got != core.NewPiece(core.ColorWhite, want[7-file]) {
			t.Errorf("rank 7 file %d: got %v, want white %v", file, got, want[7-file])
		}
		if got := b.Piece(core.Sq(file, 1)); got != core.NewPiece(core.ColorBlack, core.Pawn) {
			t.Errorf("rank 1 file %d: got %v, want black pawn", file, got)
		}
		if got := b.Piece(core.Sq(file, 6)); got != core.NewPiece(core.ColorWhite, core.Pawn) {
			t.Errorf("rank 6 file %d: got %v, want white pawn", file, got)
		}
		for rank := 2; rank <= 5; rank++ {
			if got := b.Piece(core.Sq(file, rank)); !got.IsZero() {
				t.Errorf("square %s: got %v, want empty", core.Sq(file, rank), got)
			}
		}
	}

	if b.Active() != core.ColorBlack {
		t.Errorf("active color: got %v, want black", b.Active())
	}
	if b.Status() != core.StatusReady {
		t.Errorf("status: got %v, want ready", b.Status())
	}
	g := b.Grid()
	if n := g.Count(); n != 32 {
		t.Errorf("piece count: got %d, want 32", n)
	}
}

func TestNewWithTurn(t *testing.T) {
	b := NewWithTurn(core.ColorWhite)
	if b.Active() != core.ColorWhite {
		t.Fatalf("active color: got %v, want white", b.Active())
	}
	if b.FEN() != strings.Replace(StartingFEN, " b", " w", 1) {
		t.Fatalf("layout differs from the starting position: %s", b.FEN())
	}
}

func TestPlaceAndGridCopy(t *testing.T) {
	b := New()
	sq := core.Sq(3, 3)
	queen := core.NewPiece(core.ColorWhite, core.Queen)

	snapshot := b.Grid()
	b.Place(sq, queen)

	if got := b.Piece(sq); got != queen {
		t.Fatalf("got %v, want %v", got, queen)
	}
	if !snapshot[3][3].IsZero() {
		t.Fatal("grid copy observed a later Place")
	}

	b.Place(sq, core.Piece{})
	if !b.Piece(sq).IsZero() {
		t.Fatal("placing the zero piece did not clear the square")
	}
}

func TestOutOfGridPanics(t *testing.T) {
	tests := []core.Square{
		core.Sq(-1, 0),
		core.Sq(0, 8),
		core.Sq(8, 8),
	}

	for _, sq := range tests {
		t.Run(sq.String(), func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("Piece(%v) did not panic", sq)
				}
			}()
			New().Piece(sq)
		})
	}
}

func TestHasKing(t *testing.T) {
	b := New()
	g := b.Grid()
	if !g.HasKing(core.ColorBlack) || !g.HasKing(core.ColorWhite) {
		t.Fatal("starting grid is missing a king")
	}

	b.Place(core.Sq(3, 7), core.Piece{})
	g = b.Grid()
	if g.HasKing(core.ColorWhite) {
		t.Fatal("white king still reported after removal")
	}
}

func TestToASCII(t *testing.T) {
	lines := strings.Split(New().ToASCII(), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	if lines[1] != "8 R N B K Q B N R  8" {
		t.Errorf("top row: got %q", lines[1])
	}
	if lines[8] != "1 r n b q k b n r  1" {
		t.Errorf("bottom row: got %q", lines[8])
	}
}
