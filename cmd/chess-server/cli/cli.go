package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"chessdemo/internal/storage"

	"github.com/lixenwraith/auth"
	"golang.org/x/term"
)

// Run is the entry point for the db mini-app
func Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, query, moves")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:])
	case "delete":
		return runDelete(args[1:])
	case "query":
		return runQuery(args[1:])
	case "moves":
		return runMoves(args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("database path required")
	}

	store, err := storage.NewStore(*path, false)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Printf("Database initialized at: %s\n", *path)
	return nil
}

func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("database path required")
	}

	store, err := storage.NewStore(*path, false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Printf("Database deleted: %s\n", *path)
	return nil
}

func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	gameID := fs.String("gameId", "", "Game ID to filter (optional, * for all)")
	playerID := fs.String("playerId", "", "Player ID to filter (optional, * for all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("database path required")
	}

	store, err := storage.NewStore(*path, false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	games, err := store.QueryGames(*gameID, *playerID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(games) == 0 {
		fmt.Println("No games found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Game ID\tFirst\tBlack Player\tWhite Player\tWinner\tStart Time")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, g := range games {
		winner := g.Winner
		if winner == "" {
			winner = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			short(g.GameID),
			g.StartingColor,
			short(g.BlackPlayerID),
			short(g.WhitePlayerID),
			winner,
			g.StartTimeUTC.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()

	fmt.Printf("\nFound %d game(s)\n", len(games))
	return nil
}

func runMoves(args []string) error {
	fs := flag.NewFlagSet("moves", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	gameID := fs.String("gameId", "", "Game ID (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("database path required")
	}
	if *gameID == "" {
		return fmt.Errorf("game ID required")
	}

	store, err := storage.NewStore(*path, false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	moves, err := store.QueryMoves(*gameID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(moves) == 0 {
		fmt.Println("No moves found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSide\tPiece\tFrom\tTo\tCaptured\tFEN After")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, m := range moves {
		captured := m.Captured
		if captured == "" {
			captured = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.MoveNumber, m.PlayerColor, m.Piece, m.FromSquare, m.ToSquare, captured, m.FENAfterMove)
	}
	w.Flush()

	fmt.Printf("\nFound %d move(s)\n", len(moves))
	return nil
}

// RunSeat decodes a seat token issued by a server running with a known key
func RunSeat(args []string) error {
	fs := flag.NewFlagSet("seat", flag.ContinueOnError)
	token := fs.String("token", "", "Seat token (required)")
	key := fs.String("key", "", "Seat key the server was started with")
	interactive := fs.Bool("interactive", false, "Prompt for the seat key")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *token == "" {
		return fmt.Errorf("token required")
	}

	secret := *key
	if *interactive {
		if secret != "" {
			return fmt.Errorf("cannot use -interactive with -key")
		}
		fmt.Print("Enter seat key: ")
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		secret = string(keyBytes)
	}
	if secret == "" {
		return fmt.Errorf("key required: use -key or -interactive")
	}

	playerID, claims, err := auth.ValidateHS256Token([]byte(secret), *token)
	if err != nil {
		return fmt.Errorf("invalid seat token: %w", err)
	}

	fmt.Printf("Seat token valid:\n")
	fmt.Printf("  Player: %s\n", playerID)
	fmt.Printf("  Game:   %v\n", claims["gameId"])
	fmt.Printf("  Color:  %v\n", claims["color"])
	return nil
}

func short(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}
