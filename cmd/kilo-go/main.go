// ABOUTME: CLI entry point for kilo-go: a full-screen terminal that redraws until the quit key
// ABOUTME: Maps outcomes to exit codes: 0 on quit, 1 on error, 128+n on a signal, 2 after a panic

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mauromedda/kilo-go/internal/config"
	"github.com/mauromedda/kilo-go/internal/log"
	"github.com/mauromedda/kilo-go/internal/mode/interactive"
	"github.com/mauromedda/kilo-go/pkg/tui/input"
	"github.com/mauromedda/kilo-go/pkg/tui/terminal"
	"github.com/mauromedda/kilo-go/pkg/tui/theme"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if args.version {
		fmt.Printf("kilo-go %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	os.Exit(exitCode(run(args)))
}

// exitCode reports err on stderr, unless it is a signal, and returns the
// process status for it.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ie *interactive.InterruptedError
	if errors.As(err, &ie) {
		return ie.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return 1
}

// run loads config, sets up logging, and runs the interactive app.
func run(args cliArgs) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	args.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	quit, err := cfg.Quit()
	if err != nil {
		return err
	}
	th, err := theme.Resolve(cfg.Theme)
	if err != nil {
		return err
	}
	theme.Set(th)

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	term := terminal.NewProcessTerminal()
	defer term.Close()

	keys, err := input.NewCancelableReader(term.Input())
	if err != nil {
		log.Warn("%v; signals will exit without canceling input", err)
		keys = input.NewReader(term.Input())
	}
	defer keys.Close()

	app := interactive.New(term, keys, interactive.Options{
		QuitKey: quit,
		Session: terminal.Options{
			BracketedPaste: cfg.PasteEnabled(),
			FocusChange:    cfg.FocusEnabled(),
			MouseCapture:   cfg.MouseEnabled(),
		},
		SyncOutput: cfg.SyncEnabled(),
		StatusLine: args.status,
		Version:    version,
	})
	return app.Run()
}

// setupLogging applies the configured level and routes output to the log
// file. Without one, logs are discarded: the screen belongs to the app.
func setupLogging(cfg *config.Settings) (func(), error) {
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(lvl)

	if cfg.LogFile == "" {
		prev := log.SetOutput(nil)
		return func() { log.SetOutput(prev) }, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	prev := log.SetOutput(f)
	return func() {
		log.SetOutput(prev)
		f.Close()
	}, nil
}
