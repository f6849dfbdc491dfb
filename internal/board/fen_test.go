package board

import (
	"testing"

	"chessdemo/internal/core"
)

func TestStartingFEN(t *testing.T) {
	if got := New().FEN(); got != StartingFEN {
		t.Fatalf("got %q, want %q", got, StartingFEN)
	}
}

func TestParseFEN(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/3N4/8/8/8/3K4 w - - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if b.Active() != core.ColorWhite {
		t.Errorf("active: got %v, want white", b.Active())
	}
	if got := b.Piece(core.Sq(4, 0)); got != core.NewPiece(core.ColorBlack, core.King) {
		t.Errorf("e1: got %v", got)
	}
	if got := b.Piece(core.Sq(3, 3)); got != core.NewPiece(core.ColorWhite, core.Knight) {
		t.Errorf("d4: got %v", got)
	}
	if got := b.FEN(); got != "4k3/8/8/3N4/8/8/8/3K4 w" {
		t.Errorf("re-encoded: got %q", got)
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"missing turn", "8/8/8/8/8/8/8/8"},
		{"seven rows", "8/8/8/8/8/8/8 b"},
		{"short row", "7/8/8/8/8/8/8/8 b"},
		{"long row", "ppppppppp/8/8/8/8/8/8/8 b"},
		{"bad piece", "x7/8/8/8/8/8/8/8 b"},
		{"bad turn", "8/8/8/8/8/8/8/8 x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFEN(tt.fen); err == nil {
				t.Fatalf("ParseFEN(%q) succeeded", tt.fen)
			}
		})
	}
}
