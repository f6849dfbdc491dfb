package main

import (
	"fmt"
	"os"
	"time"

	"chessdemo/internal/cli"
	"chessdemo/internal/service"
	clitransport "chessdemo/internal/transport/cli"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

func main() {
	// Local play keeps nothing on disk and issues no seats
	svc := service.New(nil, nil)
	defer svc.Shutdown(time.Second)

	view, closeView, err := newView()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer closeView()

	handler := clitransport.New(svc, view)

	view.ShowWelcome()
	handler.Run()
}

// newView uses readline on a terminal and a plain scanner for pipes
func newView() (*cli.CLI, func(), error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		view := cli.New(os.Stdin, os.Stdout)
		return view, func() {}, nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".chess_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, nil, err
	}

	view := cli.NewInteractive(rl)
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		view.SetTheme(cli.ThemeOff)
	}
	return view, func() { rl.Close() }, nil
}
