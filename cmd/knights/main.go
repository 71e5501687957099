// Package main runs the interactive shortest knight path finder.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"knights/internal/cli"
	"knights/internal/service"
	"knights/internal/storage"
	clitransport "knights/internal/transport/cli"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

func main() {
	var (
		theme       = flag.String("theme", "", "Knight marker color: off, brown, green, gray (default: brown on a terminal)")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file for search history (disabled if empty)")
		verbose     = flag.Bool("v", false, "Log diagnostics to stderr")
	)
	flag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	var store *storage.Store
	if *storagePath != "" {
		var err error
		store, err = storage.NewStore(*storagePath, false, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
			os.Exit(clitransport.ExitFailed)
		}
		if err := store.InitDB(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize schema: %v\n", err)
			store.Close()
			os.Exit(clitransport.ExitFailed)
		}
	}

	svc := service.New(store, nil, log)

	view := cli.New(os.Stdin, os.Stdout)
	selected := cli.ColorTheme(*theme)
	if selected == "" {
		selected = cli.ThemeOff
		if term.IsTerminal(int(os.Stdout.Fd())) {
			selected = cli.ThemeBrown
		}
	}
	if err := view.SetTheme(selected); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		svc.Shutdown()
		os.Exit(clitransport.ExitFailed)
	}

	handler := clitransport.New(svc, view)
	code := handler.Run()

	if err := svc.Shutdown(); err != nil {
		log.Warn().Err(err).Msg("shutdown")
	}
	os.Exit(code)
}
