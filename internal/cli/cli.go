package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"chessdemo/internal/board"
	"chessdemo/internal/core"
	"chessdemo/internal/game"
	"chessdemo/internal/transport"

	"github.com/chzyer/readline"
)

var _ transport.View = (*CLI)(nil)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdResume
	CmdSelect
	CmdMove
	CmdColor
	CmdVerbose
	CmdHistory
	CmdHelp
	CmdQuit
	CmdUnknown
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg     string
	darkBg      string
	highlightBg string
	white       string
	black       string
	reset       string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg:     "\033[48;5;230m", // Beige
		darkBg:      "\033[48;5;94m",  // Brown
		highlightBg: "\033[48;5;178m", // Gold
		white:       "\033[97m",
		black:       "\033[30m",
		reset:       "\033[0m",
	},
	ThemeGreen: {
		lightBg:     "\033[48;5;157m", // Light green
		darkBg:      "\033[48;5;22m",  // Dark green
		highlightBg: "\033[48;5;220m", // Yellow
		white:       "\033[97m",
		black:       "\033[30m",
		reset:       "\033[0m",
	},
	ThemeGray: {
		lightBg:     "\033[48;5;251m", // Light gray
		darkBg:      "\033[48;5;240m", // Dark gray
		highlightBg: "\033[48;5;74m",  // Steel blue
		white:       "\033[97m",
		black:       "\033[30m",
		reset:       "\033[0m",
	},
}

// lineReader yields one line of input per call, io.EOF at end
type lineReader interface {
	readLine(prompt string) (string, error)
}

type scannerReader struct {
	scanner *bufio.Scanner
	output  io.Writer
}

func (s *scannerReader) readLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(s.output, prompt)
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

type readlineReader struct {
	rl *readline.Instance
}

func (r *readlineReader) readLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		// ^C clears the line
		return "", nil
	}
	return line, err
}

type CLI struct {
	input   lineReader
	output  io.Writer
	prompt  string
	theme   ColorTheme
	verbose bool
}

// New reads commands line by line from input, for pipes and tests
func New(input io.Reader, output io.Writer) *CLI {
	return &CLI{
		input:  &scannerReader{scanner: bufio.NewScanner(input), output: output},
		output: output,
		theme:  ThemeOff,
	}
}

// NewInteractive reads commands through readline with history and editing
func NewInteractive(rl *readline.Instance) *CLI {
	return &CLI{
		input:  &readlineReader{rl: rl},
		output: rl.Stdout(),
		theme:  ThemeBrown,
	}
}

// GetCommand reads a command synchronously using the last prompt set
func (c *CLI) GetCommand() (*Command, error) {
	line, err := c.input.readLine(c.prompt)
	c.prompt = ""
	if err == io.EOF {
		return &Command{Type: CmdQuit}, nil
	}
	if err != nil {
		return nil, err
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return &Command{Type: CmdNone}, nil
	}

	return ParseCommand(input), nil
}

func ParseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "new":
		return &Command{Type: CmdNew, Args: args}
	case "resume":
		return &Command{Type: CmdResume, Args: args, Raw: input}
	case "select", "s":
		return &Command{Type: CmdSelect, Args: args}
	case "move", "m":
		return &Command{Type: CmdMove, Args: args}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "verbose":
		return &Command{Type: CmdVerbose}
	case "history":
		return &Command{Type: CmdHistory}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	}

	// Compact move form: e2e4
	if len(parts) == 1 && len(cmd) == 4 {
		return &Command{Type: CmdMove, Args: []string{cmd[:2], cmd[2:]}}
	}
	return &Command{Type: CmdUnknown, Raw: input}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) ToggleVerbose() bool {
	c.verbose = !c.verbose
	return c.verbose
}

func (c *CLI) IsVerbose() bool {
	return c.verbose
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

// ShowPrompt sets the prompt shown by the next GetCommand
func (c *CLI) ShowPrompt(prompt string) {
	c.prompt = prompt
}

// DisplayBoard draws the grid with rank 8 on top. Highlighted squares get
// the theme's highlight background, or a '*' marker with colors off.
func (c *CLI) DisplayBoard(g board.Grid, highlights []core.Square) {
	theme := themes[c.theme]
	marked := make(map[core.Square]bool, len(highlights))
	for _, sq := range highlights {
		marked[sq] = true
	}

	var sb strings.Builder
	sb.WriteString("\n  a b c d e f g h\n")

	for rank := core.BoardSize - 1; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf("%d ", rank+1))
		for file := 0; file < core.BoardSize; file++ {
			sq := core.Sq(file, rank)
			piece := g[file][rank]

			if c.theme == ThemeOff {
				sb.WriteString(plainCell(piece, marked[sq]))
				continue
			}

			bg := theme.darkBg
			if (file+rank)%2 == 1 {
				bg = theme.lightBg
			}
			if marked[sq] {
				bg = theme.highlightBg
			}

			if piece.IsZero() {
				sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
				continue
			}
			fg := theme.black
			if piece.Color == core.ColorWhite {
				fg = theme.white
			}
			sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, fg, piece.Letter(), theme.reset))
		}
		sb.WriteString(fmt.Sprintf(" %d\n", rank+1))
	}
	sb.WriteString("  a b c d e f g h\n")

	c.ShowMessage(sb.String())
}

func plainCell(p core.Piece, marked bool) string {
	switch {
	case p.IsZero() && marked:
		return "* "
	case p.IsZero():
		return ". "
	case marked:
		return fmt.Sprintf("%c*", p.Letter())
	default:
		return fmt.Sprintf("%c ", p.Letter())
	}
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  new [black|white|random]  - Start a new game, black moves first by default
  resume <FEN>              - Resume from a board position
  select <square>           - Highlight where the piece on a square can go
  <from><to>                - Make a move (e.g., e2e4, b1c3)
  move <from> <to>          - Same as above
  color <theme>             - Set board color theme (off|brown|green|gray)
  verbose                   - Toggle detailed move information
  history                   - Show game move history and positions
  quit/exit                 - Exit the program
  help/?                    - Show this help message`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Chess!")
	c.ShowMessage("Commands: new, resume <FEN>, select <sq>, <move>, history, verbose, color, help/?, quit/exit")
	c.ShowMessage("Example: 'resume 4k3/8/8/3n4/8/4K3/8/8 b' to start from a position.")
	c.ShowMessage("")
}

func (c *CLI) ShowGameHistory(g *game.Game) {
	c.ShowMessage(fmt.Sprintf("Starting FEN: %s", g.InitialFEN()))

	for _, m := range g.Moves() {
		line := fmt.Sprintf("%d. %s %s %s-%s", m.Number, m.Color, m.Piece.Type, m.From, m.To)
		if !m.Captured.IsZero() {
			line += fmt.Sprintf(" takes %s", m.Captured)
		}
		c.ShowMessage(line)
	}
	c.ShowMessage(fmt.Sprintf("Current FEN: %s", g.CurrentFEN()))
	c.ShowMessage(fmt.Sprintf("Game state: %s", g.State()))
}

func (c *CLI) ShowMove(rec game.MoveRecord) {
	msg := fmt.Sprintf("%s: %s%s", rec.Color, rec.From, rec.To)
	if c.verbose {
		msg = fmt.Sprintf("Move %d, %s %s %s-%s", rec.Number, rec.Color, rec.Piece.Type, rec.From, rec.To)
		if !rec.Captured.IsZero() {
			msg += fmt.Sprintf(", captures %s", rec.Captured)
		}
		msg += fmt.Sprintf("\nFEN: %s", rec.FEN)
	}
	c.ShowMessage(msg)
}

func (c *CLI) ShowGameOver(state core.State) {
	c.ShowMessage(fmt.Sprintf("\nGame Over: %s", state))
	c.ShowMessage("Start a new game with 'new' or 'resume'.")
}
