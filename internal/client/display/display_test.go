package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestSideColors(t *testing.T) {
	if got := ColorForTurn("white"); got != WhiteSide+"White"+Reset {
		t.Fatalf("white: %q", got)
	}
	if got := ColorForTurn("black"); got != BlackSide+"Black"+Reset {
		t.Fatalf("black: %q", got)
	}
	if SideColor("white") != WhiteSide || SideColor("black") != BlackSide {
		t.Fatal("side color mismatch")
	}
}

func TestRenderBoard(t *testing.T) {
	var buf bytes.Buffer
	RenderBoard(&buf, "  a b\n1 r K 1\n  a b\n")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], Paint(BlackSide, "r")) || !strings.Contains(lines[1], Paint(WhiteSide, "K")) {
		t.Fatalf("pieces not colored by side: %q", lines[1])
	}
	if !strings.HasPrefix(lines[0], "  "+Paint(Label, "a")) {
		t.Fatalf("file label not colored: %q", lines[0])
	}
}
