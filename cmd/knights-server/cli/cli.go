// Package cli implements the knights-server "db" subcommands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"text/tabwriter"

	"knights/internal/storage"

	"github.com/lixenwraith/auth"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var stdout io.Writer = os.Stdout

// Run is the entry point for the CLI mini-app
func Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, query, hash")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:])
	case "delete":
		return runDelete(args[1:])
	case "query":
		return runQuery(args[1:])
	case "hash":
		return runHash(args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

// openStore parses -path and opens the database without touching the schema
func openStore(fs *flag.FlagSet, args []string) (*storage.Store, error) {
	path := fs.String("path", "", "Database file path (required)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *path == "" {
		return nil, fmt.Errorf("database path required")
	}
	return storage.NewStore(*path, false, zerolog.Nop())
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	store, err := openStore(fs, args)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Fprintf(stdout, "Database initialized at: %s\n", fs.Lookup("path").Value)
	return nil
}

func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	store, err := openStore(fs, args)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Fprintf(stdout, "Database deleted: %s\n", fs.Lookup("path").Value)
	return nil
}

func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	start := fs.String("start", "", "Start square to filter (optional, * for all)")
	end := fs.String("end", "", "End square to filter (optional, * for all)")
	limit := fs.Int("limit", 50, "Maximum rows to show")

	store, err := openStore(fs, args)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	searches, err := store.QuerySearches(*start, *end, *limit)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(searches) == 0 {
		fmt.Fprintln(stdout, "No searches found")
		return nil
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Search ID\tFrom\tTo\tMoves\tPath\tTime")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, s := range searches {
		moves := fmt.Sprintf("%d", s.Moves)
		path := s.Path
		if !s.Found {
			moves = "-"
			path = "(no path)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.SearchID[:8]+"...",
			s.StartSquare,
			s.EndSquare,
			moves,
			path,
			s.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()

	fmt.Fprintf(stdout, "\nFound %d search(es)\n", len(searches))
	return nil
}

// runHash prints an admin password hash for the server's -admin-hash flag
func runHash(args []string) error {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	password := fs.String("password", "", "Password (prompted if not provided)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pw := *password
	if pw == "" {
		fmt.Fprint(stdout, "Enter password: ")
		pwBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(stdout)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprint(stdout, "Confirm password: ")
		confirm, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(stdout)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if string(pwBytes) != string(confirm) {
			return fmt.Errorf("passwords do not match")
		}
		pw = string(pwBytes)
	}

	if pw == "" {
		return fmt.Errorf("password cannot be empty")
	}

	hash, err := auth.HashPassword(pw)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	fmt.Fprintln(stdout, hash)
	return nil
}
