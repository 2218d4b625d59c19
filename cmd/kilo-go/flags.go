// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Flags override the merged config files; only flags given on the command line apply

package main

import (
	"flag"
	"io"

	"github.com/mauromedda/kilo-go/internal/config"
)

type cliArgs struct {
	quitKey string
	noPaste bool
	noFocus bool
	noMouse bool
	sync    bool
	status  bool
	logFile string
	theme   string
	verbose bool
	version bool
}

func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("kilo-go", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&args.quitKey, "quit-key", "", `Key that ends the program (e.g. "q", "ctrl+c", "esc")`)
	fs.BoolVar(&args.noPaste, "no-paste", false, "Disable bracketed paste reporting")
	fs.BoolVar(&args.noFocus, "no-focus", false, "Disable focus change reporting")
	fs.BoolVar(&args.noMouse, "no-mouse", false, "Disable mouse capture")
	fs.BoolVar(&args.sync, "sync", false, "Wrap frames in synchronized output")
	fs.BoolVar(&args.status, "status", false, "Show a status bar on the last row")
	fs.StringVar(&args.theme, "theme", "", "Status bar theme: dark, default, light, monochrome, or a .json file")
	fs.StringVar(&args.logFile, "log-file", "", "Append log output to this file")
	fs.BoolVar(&args.verbose, "verbose", false, "Log at debug level")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}
	return args, nil
}

// apply writes the flags that were set over cfg.
func (a cliArgs) apply(cfg *config.Settings) {
	if a.quitKey != "" {
		cfg.QuitKey = a.quitKey
	}
	if a.noPaste {
		cfg.BracketedPaste = config.Bool(false)
	}
	if a.noFocus {
		cfg.FocusChange = config.Bool(false)
	}
	if a.noMouse {
		cfg.MouseCapture = config.Bool(false)
	}
	if a.sync {
		cfg.SyncOutput = config.Bool(true)
	}
	if a.theme != "" {
		cfg.Theme = a.theme
	}
	if a.logFile != "" {
		cfg.LogFile = a.logFile
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
}
