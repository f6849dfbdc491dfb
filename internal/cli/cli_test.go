package cli

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"chessdemo/internal/board"
	"chessdemo/internal/core"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		typ   CommandType
		args  []string
	}{
		{"new", CmdNew, []string{}},
		{"new white", CmdNew, []string{"white"}},
		{"resume 4k3/8/8/8/8/8/8/4K3 w", CmdResume, []string{"4k3/8/8/8/8/8/8/4K3", "w"}},
		{"select e2", CmdSelect, []string{"e2"}},
		{"move e2 e4", CmdMove, []string{"e2", "e4"}},
		{"e2e4", CmdMove, []string{"e2", "e4"}},
		{"B1C3", CmdMove, []string{"b1", "c3"}},
		{"color green", CmdColor, []string{"green"}},
		{"verbose", CmdVerbose, nil},
		{"history", CmdHistory, nil},
		{"?", CmdHelp, nil},
		{"exit", CmdQuit, nil},
		{"dance", CmdUnknown, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := ParseCommand(tt.input)
			if cmd.Type != tt.typ {
				t.Fatalf("type: got %d, want %d", cmd.Type, tt.typ)
			}
			if tt.args != nil && !reflect.DeepEqual(cmd.Args, tt.args) {
				t.Fatalf("args: got %v, want %v", cmd.Args, tt.args)
			}
		})
	}
}

func TestGetCommandEOF(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("  \nhelp\n"), &out)

	c.ShowPrompt("> ")
	cmd, err := c.GetCommand()
	if err != nil || cmd.Type != CmdNone {
		t.Fatalf("blank line: %v, %v", cmd, err)
	}
	cmd, _ = c.GetCommand()
	if cmd.Type != CmdHelp {
		t.Fatalf("second line: got %d", cmd.Type)
	}
	cmd, _ = c.GetCommand()
	if cmd.Type != CmdQuit {
		t.Fatalf("EOF should quit, got %d", cmd.Type)
	}
	if !strings.HasPrefix(out.String(), "> ") {
		t.Fatalf("prompt not written: %q", out.String())
	}
}

func TestDisplayBoardPlain(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out)

	grid := board.New().Grid()
	c.DisplayBoard(grid, []core.Square{core.Sq(4, 2), core.Sq(3, 1)})

	lines := strings.Split(out.String(), "\n")
	// lines[0] is blank, lines[1] the file header, then ranks 8..1
	if lines[2] != "8 R N B K Q B N R  8" {
		t.Fatalf("rank 8: %q", lines[2])
	}
	if lines[8] != "2 p p p p*p p p p  2" {
		t.Fatalf("rank 2: %q", lines[8])
	}
	if lines[7] != "3 . . . . * . . .  3" {
		t.Fatalf("rank 3: %q", lines[7])
	}
}

func TestSetTheme(t *testing.T) {
	c := New(strings.NewReader(""), &bytes.Buffer{})
	if err := c.SetTheme(ThemeGray); err != nil {
		t.Fatalf("gray: %v", err)
	}
	if err := c.SetTheme("purple"); err == nil {
		t.Fatal("unknown theme accepted")
	}
}
