package game

import (
	"errors"
	"testing"

	"chessdemo/internal/board"
	"chessdemo/internal/core"
	"chessdemo/internal/engine"
)

func newPlayers() (*core.Player, *core.Player) {
	return core.NewPlayer(core.PlayerHuman, core.ColorBlack), core.NewPlayer(core.PlayerHuman, core.ColorWhite)
}

func TestParseStart(t *testing.T) {
	tests := []struct {
		in      string
		want    Start
		wantErr bool
	}{
		{"", StartBlack, false},
		{"black", StartBlack, false},
		{"white", StartWhite, false},
		{"random", StartRandom, false},
		{"red", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStart(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseStart(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseStart(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStartColor(t *testing.T) {
	if StartBlack.Color() != core.ColorBlack || StartWhite.Color() != core.ColorWhite {
		t.Fatal("fixed start sides resolved incorrectly")
	}
	for i := 0; i < 20; i++ {
		c := StartRandom.Color()
		if c != core.ColorBlack && c != core.ColorWhite {
			t.Fatalf("random start produced %v", c)
		}
	}
}

func TestNewGameDefaults(t *testing.T) {
	black, white := newPlayers()
	g := New("g1", black, white, StartBlack)

	if g.ID() != "g1" {
		t.Errorf("id: got %q", g.ID())
	}
	if g.InitialFEN() != board.StartingFEN {
		t.Errorf("initial FEN: got %q", g.InitialFEN())
	}
	if g.State() != core.StateOngoing || g.Status() != core.StatusReady {
		t.Errorf("got state %v status %v", g.State(), g.Status())
	}
	if g.NextPlayer() != black {
		t.Error("black player should move first")
	}
	if g.Player(core.ColorWhite) != white {
		t.Error("white seat mismatch")
	}
	if _, ok := g.LastMove(); ok {
		t.Error("new game reports a last move")
	}
}

func TestMoveRecordsHistory(t *testing.T) {
	black, white := newPlayers()
	g := New("g1", black, white, StartBlack)

	rec, err := g.Move(core.Sq(4, 1), core.Sq(4, 3))
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if rec.Number != 1 || rec.Color != core.ColorBlack || rec.Piece.Type != core.Pawn {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !rec.Captured.IsZero() {
		t.Fatalf("quiet move recorded capture %v", rec.Captured)
	}
	if rec.FEN != g.CurrentFEN() {
		t.Fatalf("record FEN %q, current %q", rec.FEN, g.CurrentFEN())
	}
	if g.Status() != core.StatusInProgress {
		t.Fatalf("status after first move: %v", g.Status())
	}

	if _, err := g.Move(core.Sq(4, 1), core.Sq(4, 2)); !errors.Is(err, engine.ErrNoPieceAtOrigin) {
		t.Fatalf("got %v, want ErrNoPieceAtOrigin", err)
	}
	if g.MoveCount() != 1 {
		t.Fatalf("failed move was recorded: %d moves", g.MoveCount())
	}

	last, ok := g.LastMove()
	if !ok || last != rec {
		t.Fatalf("last move: got %+v", last)
	}
}

func TestKingCaptureEndsGame(t *testing.T) {
	black, white := newPlayers()
	// Black knight on d4 can take the white king on e6
	g, err := Resume("g1", "4k3/8/8/3n4/8/4K3/8/8 b", black, white)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}

	var seen []engine.Snapshot
	g.AddObserver(func(s engine.Snapshot) { seen = append(seen, s) })

	rec, err := g.Move(core.Sq(3, 3), core.Sq(4, 5))
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if rec.Captured != core.NewPiece(core.ColorWhite, core.King) {
		t.Fatalf("captured: got %v", rec.Captured)
	}
	if g.State() != core.StateBlackWins || g.Winner() != core.ColorBlack {
		t.Fatalf("state %v winner %v", g.State(), g.Winner())
	}
	if g.Status() != core.StatusFinished {
		t.Fatalf("status: got %v", g.Status())
	}
	if len(seen) != 1 {
		t.Fatalf("external observer called %d times", len(seen))
	}

	if _, err := g.Move(core.Sq(4, 0), core.Sq(4, 1)); !errors.Is(err, ErrGameOver) {
		t.Fatalf("move after king capture: got %v, want ErrGameOver", err)
	}
}

func TestResumeWithoutKing(t *testing.T) {
	black, white := newPlayers()
	g, err := Resume("g1", "4k3/8/8/8/8/8/8/8 w", black, white)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if g.State() != core.StateBlackWins {
		t.Fatalf("state: got %v, want black wins", g.State())
	}
}

func TestResumeInvalidFEN(t *testing.T) {
	black, white := newPlayers()
	if _, err := Resume("g1", "not a fen", black, white); err == nil {
		t.Fatal("resume accepted an invalid FEN")
	}
}

func TestSelect(t *testing.T) {
	black, white := newPlayers()
	g := New("g1", black, white, StartBlack)

	tests := []struct {
		name    string
		sq      core.Square
		wantErr error
		wantLen int
	}{
		{"own pawn", core.Sq(0, 1), nil, 3},
		{"own knight", core.Sq(1, 0), nil, 3},
		{"opponent pawn", core.Sq(0, 6), engine.ErrWrongTurn, 0},
		{"empty", core.Sq(0, 3), engine.ErrNoPieceAtOrigin, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Select(tt.sq)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("got %d squares (%v), want %d", len(got), got, tt.wantLen)
			}
		})
	}
}
