// ABOUTME: Interactive mode: owns the terminal session for the program's lifetime and runs the render loop
// ABOUTME: Session end is deferred first, so quit, I/O errors, signals, and panics all restore the terminal

package interactive

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/mauromedda/kilo-go/internal/log"
	"github.com/mauromedda/kilo-go/pkg/tui/frame"
	"github.com/mauromedda/kilo-go/pkg/tui/key"
	"github.com/mauromedda/kilo-go/pkg/tui/loop"
	"github.com/mauromedda/kilo-go/pkg/tui/terminal"
)

// Fallback used when the terminal cannot report its size.
const (
	fallbackCols = 80
	fallbackRows = 24
)

// KeyReader supplies key presses and can abandon a pending read.
// *input.Reader satisfies it.
type KeyReader interface {
	NextKey() (key.Key, error)
	Cancel() bool
}

// Options configures an App.
type Options struct {
	QuitKey    key.Key
	Session    terminal.Options
	SyncOutput bool
	StatusLine bool // reserve the last row for a status bar
	Version    string
}

// InterruptedError reports that a termination signal ended the loop.
type InterruptedError struct {
	Signal os.Signal
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("interrupted by %v", e.Signal)
}

// ExitCode returns the conventional 128+n shell status for the signal.
func (e *InterruptedError) ExitCode() int {
	return terminal.ExitCodeForSignal(e.Signal)
}

// App is the interactive program: a session around a render loop.
type App struct {
	term terminal.Terminal
	keys KeyReader
	opts Options

	// seams, swapped in tests
	watchSignals func(func(os.Signal)) func()
	exit         func(int)

	mu      sync.Mutex
	session *terminal.Session
	loop    *loop.Loop
	signal  os.Signal
}

// New returns an App drawing to term and reading keys from keys.
func New(term terminal.Terminal, keys KeyReader, opts Options) *App {
	if opts.QuitKey == (key.Key{}) {
		opts.QuitKey = loop.DefaultQuitKey()
	}
	return &App{
		term:         term,
		keys:         keys,
		opts:         opts,
		watchSignals: terminal.WatchSignals,
		exit:         os.Exit,
	}
}

// Run begins the session, runs the loop until the quit key, and always
// ends the session before returning. Errors from the loop and from ending
// the session are joined. A signal makes Run return *InterruptedError.
func (a *App) Run() (err error) {
	// Signals are watched from before Begin until after End.
	stop := a.watchSignals(a.interrupt)
	defer stop()

	session := terminal.NewSession(a.term, a.opts.Session)
	a.mu.Lock()
	a.session = session
	a.mu.Unlock()
	if err := session.Begin(); err != nil {
		return err
	}
	defer func() {
		if endErr := session.End(); endErr != nil {
			err = errors.Join(err, endErr)
		}
	}()
	defer terminal.RestoreOnPanic(session)

	cols, rows, sizeErr := a.term.Size()
	if sizeErr != nil || cols <= 0 || rows <= 0 {
		log.Warn("terminal size unavailable (%v), using %dx%d", sizeErr, fallbackCols, fallbackRows)
		cols, rows = fallbackCols, fallbackRows
	}

	var frameOpts []frame.Option
	if a.opts.SyncOutput {
		frameOpts = append(frameOpts, frame.WithSyncOutput())
	}
	loopOpts := []loop.Option{
		loop.WithQuitKey(a.opts.QuitKey),
		loop.WithKeyHandler(func(k key.Key) { log.Debug("key %s", k) }),
	}
	if a.opts.StatusLine {
		loopOpts = append(loopOpts, loop.WithComposer(&StatusComposer{
			Version: a.opts.Version,
			QuitKey: a.opts.QuitKey,
		}))
	}
	l := loop.New(frame.New(a.term, frameOpts...), a.keys, loop.Size{Cols: cols, Rows: rows}, loopOpts...)

	a.mu.Lock()
	a.loop = l
	a.mu.Unlock()

	a.term.OnResize(func(w, h int) {
		log.Debug("resize %dx%d", w, h)
		l.SetSize(loop.Size{Cols: w, Rows: h})
	})
	if sig := a.interruptedBy(); sig != nil {
		return &InterruptedError{Signal: sig}
	}

	log.Info("session started (%dx%d, quit key %s)", cols, rows, a.opts.QuitKey)
	err = l.Run()
	log.Info("loop ended after %d frames", l.Frames())

	if sig := a.interruptedBy(); sig != nil {
		return &InterruptedError{Signal: sig}
	}
	return err
}

// interrupt records sig and unblocks the pending key read so the loop
// returns through Run's deferred session end. When the reader cannot be
// canceled the session is ended here and the process exits.
func (a *App) interrupt(sig os.Signal) {
	a.mu.Lock()
	a.signal = sig
	session := a.session
	a.mu.Unlock()

	log.Info("received %v, shutting down", sig)
	if a.keys.Cancel() {
		return
	}
	log.Warn("input read cannot be canceled; restoring terminal and exiting")
	if session != nil {
		if err := session.End(); err != nil {
			log.Error("restoring terminal: %v", err)
		}
	}
	a.exit(terminal.ExitCodeForSignal(sig))
}

func (a *App) interruptedBy() os.Signal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.signal
}

// Frames returns how many frames the last Run flushed.
func (a *App) Frames() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loop == nil {
		return 0
	}
	return a.loop.Frames()
}
