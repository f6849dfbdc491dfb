package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"chessdemo/internal/client/display"
	"chessdemo/internal/client/session"
)

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(*session.Session, []string) error
}

// Registry manages command registration and execution
type Registry struct {
	session  *session.Session
	commands map[string]*Command
	out      io.Writer
}

// errExit is returned by the exit handler to stop the loop
var errExit = errors.New("exit")

func NewRegistry(s *session.Session, out io.Writer) *Registry {
	r := &Registry{
		session:  s,
		commands: make(map[string]*Command),
		out:      out,
	}
	s.Client.Out = out

	r.registerGameCommands()

	r.Register(&Command{
		Name:        "health",
		ShortName:   ".",
		Description: "Check server health",
		Usage:       "health",
		Handler:     r.healthHandler,
	})

	r.Register(&Command{
		Name:        "url",
		ShortName:   "/",
		Description: "Show or set the API base URL",
		Usage:       "url [base-url]",
		Handler:     r.urlHandler,
	})

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Handler:     r.helpHandler,
	})

	r.Register(&Command{
		Name:        "exit",
		ShortName:   "x",
		Description: "Exit the client",
		Usage:       "exit",
		Handler:     func(*session.Session, []string) error { return errExit },
	})

	return r
}

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

// Execute runs one input line and reports false when the client should exit
func (r *Registry) Execute(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmdName := strings.ToLower(parts[0])
	args := parts[1:]

	cmd, exists := r.commands[cmdName]
	if !exists {
		// Bare moves like e2e4
		if len(parts) == 1 && len(cmdName) == 4 {
			cmd, args = r.commands["move"], []string{cmdName}
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", display.Red, cmdName, display.Reset)
			fmt.Fprintf(r.out, "Type 'help' for available commands\n")
			return true
		}
	}

	r.session.Client.SetVerbose(r.session.Verbose)

	if err := cmd.Handler(r.session, args); err != nil {
		if errors.Is(err, errExit) {
			fmt.Fprintf(r.out, "%sGoodbye!%s\n", display.Cyan, display.Reset)
			return false
		}
		fmt.Fprintf(r.out, "%sError: %s%s\n", display.Red, err.Error(), display.Reset)
	}
	return true
}

func (r *Registry) healthHandler(s *session.Session, args []string) error {
	resp, err := s.Client.Health()
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%sServer: %v, storage: %v, games: %v%s\n", display.Green, resp["status"], resp["storage"], resp["games"], display.Reset)
	return nil
}

func (r *Registry) urlHandler(s *session.Session, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "API: %s\n", s.APIBaseURL)
		return nil
	}
	s.APIBaseURL = strings.TrimRight(args[0], "/")
	s.Client.SetBaseURL(s.APIBaseURL)
	fmt.Fprintf(r.out, "%sAPI set to: %s%s\n", display.Cyan, s.APIBaseURL, display.Reset)
	return nil
}

func (r *Registry) helpHandler(s *session.Session, args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(r.out, "\n%s%s%s - %s\n", display.Cyan, cmd.Name, display.Reset, cmd.Description)
		if cmd.ShortName != "" {
			fmt.Fprintf(r.out, "Short form: %s%s%s\n", display.Cyan, cmd.ShortName, display.Reset)
		}
		fmt.Fprintf(r.out, "Usage: %s\n", cmd.Usage)
		return nil
	}

	seen := make(map[string]bool)
	var names []string
	for _, cmd := range r.commands {
		if !seen[cmd.Name] {
			seen[cmd.Name] = true
			names = append(names, cmd.Name)
		}
	}
	sort.Strings(names)

	fmt.Fprintf(r.out, "\n%sAvailable Commands:%s\n\n", display.Cyan, display.Reset)
	for _, name := range names {
		cmd := r.commands[name]
		shortPart := "    "
		if cmd.ShortName != "" {
			shortPart = fmt.Sprintf("[%s] ", cmd.ShortName)
		}
		fmt.Fprintf(r.out, "  %s%-8s %s\n", shortPart, cmd.Name, cmd.Description)
	}

	fmt.Fprintf(r.out, "\nType 'help <command>' for detailed usage\n")
	fmt.Fprintf(r.out, "Add '-v' to any command for verbose output\n")
	return nil
}
