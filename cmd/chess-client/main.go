// Package main implements an interactive client for the chess server API.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"chessdemo/internal/client/commands"
	"chessdemo/internal/client/display"
	"chessdemo/internal/client/session"

	"github.com/chzyer/readline"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "Chess server base URL")
	flag.Parse()

	s := session.New(*apiURL)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("chess"),
		HistoryFile:     ".chess_client_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%sChess Client%s\n", display.Cyan, display.Reset)
	fmt.Printf("%sAPI: %s%s\n", display.Cyan, s.APIBaseURL, display.Reset)
	fmt.Printf("Type 'help' for commands\n\n")

	registry := commands.NewRegistry(s, rl.Stdout())

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "quit" {
			break
		}

		// Check for verbose flag
		if strings.HasSuffix(line, " -v") {
			s.Verbose = true
			line = strings.TrimSuffix(line, " -v")
		} else {
			s.Verbose = false
		}

		if !registry.Execute(line) {
			break
		}
	}
}

func buildPrompt(s *session.Session) string {
	promptStr := "chess"

	if s.CurrentGame != "" {
		id := s.CurrentGame
		if len(id) > 8 {
			id = id[:8]
		}
		seat := ""
		if s.PlayerColor != "" {
			seat = " as " + display.ColorForTurn(s.PlayerColor)
		}
		promptStr += display.Yellow + " [" + display.White + id + display.Reset + seat + display.Yellow + "]"
	}

	if g := s.CurrentGameState; g != nil {
		promptStr += fmt.Sprintf(" - Turn:%s", display.ColorForTurn(g.Turn))
		if g.Status == "finished" {
			promptStr += " (" + g.State + ")"
		}
	}

	return display.Prompt(promptStr)
}
