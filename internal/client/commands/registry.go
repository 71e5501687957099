// Package commands implements the client REPL commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"knights/internal/client/api"
	"knights/internal/client/display"
)

// ErrExit is returned by the exit command to end the REPL
var ErrExit = errors.New("exit")

type Session interface {
	GetAPIBaseURL() string
	SetAPIBaseURL(string)
	GetClient() *api.Client
	GetAuthToken() string
	SetAuthToken(string)
	GetCurrentPath() *api.PathResponse
	SetCurrentPath(*api.PathResponse)
	IsVerbose() bool
}

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Group       string
	Description string
	Usage       string
	Handler     func(Session, []string) error
}

// Registry manages command registration and execution
type Registry struct {
	session  Session
	commands map[string]*Command
	out      io.Writer
}

func NewRegistry(session Session) *Registry {
	r := &Registry{
		session:  session,
		commands: make(map[string]*Command),
		out:      os.Stdout,
	}

	r.registerPathCommands()
	r.registerAuthCommands()
	r.registerDebugCommands()

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Group:       groupUtility,
		Description: "Show available commands",
		Usage:       "help [command]",
		Handler:     r.helpHandler,
	})

	r.Register(&Command{
		Name:        "exit",
		ShortName:   "x",
		Group:       groupUtility,
		Description: "Exit the client",
		Usage:       "exit",
		Handler:     r.exitHandler,
	})

	return r
}

const (
	groupPath    = "Path Commands"
	groupAuth    = "Admin Commands"
	groupUtility = "Utility Commands"
)

// SetOutput redirects command output
func (r *Registry) SetOutput(w io.Writer) {
	r.out = w
	r.session.GetClient().Out = w
}

func (r *Registry) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

// Execute runs one input line. It returns ErrExit when the user asked to quit.
func (r *Registry) Execute(input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	cmdName := parts[0]
	args := parts[1:]

	cmd, exists := r.commands[cmdName]
	if !exists {
		r.printf("%sUnknown command: %s%s\n", display.Red, cmdName, display.Reset)
		r.printf("Type 'help' for available commands\n")
		return nil
	}

	r.session.GetClient().SetVerbose(r.session.IsVerbose())

	err := cmd.Handler(r.session, args)
	if errors.Is(err, ErrExit) {
		return err
	}
	if err != nil {
		r.printf("%sError: %s%s\n", display.Red, err.Error(), display.Reset)
	}
	return nil
}

func (r *Registry) helpHandler(s Session, args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		r.printf("\n%s%s%s - %s\n", display.Cyan, cmd.Name, display.Reset, cmd.Description)
		if cmd.ShortName != "" {
			r.printf("Short form: %s%s%s\n", display.Cyan, cmd.ShortName, display.Reset)
		}
		r.printf("Usage: %s\n", cmd.Usage)
		return nil
	}

	r.printf("\n%sAvailable Commands:%s\n", display.Cyan, display.Reset)

	for _, group := range []string{groupPath, groupAuth, groupUtility} {
		var cmds []*Command
		for name, cmd := range r.commands {
			if name == cmd.Name && cmd.Group == group {
				cmds = append(cmds, cmd)
			}
		}
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })

		r.printf("\n%s%s:%s\n", display.Yellow, group, display.Reset)
		for _, cmd := range cmds {
			shortPart := "    "
			if cmd.ShortName != "" {
				shortPart = fmt.Sprintf("[%s%s%s] ", display.Cyan, cmd.ShortName, display.Reset)
			}
			r.printf("  %s%-10s %s\n", shortPart, cmd.Name, cmd.Description)
		}
	}

	r.printf("\nType 'help <command>' for detailed usage\n")
	r.printf("Add '-v' to any command for verbose output\n")
	return nil
}

func (r *Registry) exitHandler(s Session, args []string) error {
	r.printf("%sGoodbye!%s\n", display.Cyan, display.Reset)
	return ErrExit
}
