// ABOUTME: Session owns the terminal for the program's lifetime: alt screen, raw mode, reporting modes
// ABOUTME: Begin registers an undo per applied step; End replays them in reverse exactly once

package terminal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// ErrSessionActive is returned by Begin on a session that is already active.
var ErrSessionActive = errors.New("session already active")

// Options selects the extended input reporting modes enabled by Begin.
type Options struct {
	BracketedPaste bool // report paste boundaries as events
	FocusChange    bool // report focus gain/loss as events
	MouseCapture   bool // report mouse events instead of native terminal handling
}

// Mouse capture enables click, drag and motion tracking with SGR encoding,
// and disables them in the opposite order.
const (
	mouseCaptureOn = ansi.SetNormalMouseMode +
		ansi.SetButtonEventMouseMode +
		ansi.SetAnyEventMouseMode +
		ansi.SetSgrExtMouseMode
	mouseCaptureOff = ansi.ResetSgrExtMouseMode +
		ansi.ResetAnyEventMouseMode +
		ansi.ResetButtonEventMouseMode +
		ansi.ResetNormalMouseMode
	clearOnExit = ansi.EraseEntireScreen + ansi.CursorHomePosition + ansi.ShowCursor
)

type undoStep struct {
	op string
	fn func() error
}

// Session is the scoped owner of a Terminal's modes.
type Session struct {
	term Terminal
	opts Options

	mu        sync.Mutex
	begun     bool
	rawMode   bool
	altScreen bool
	undo      []undoStep
}

// NewSession returns an inactive session over t.
func NewSession(t Terminal, opts Options) *Session {
	return &Session{term: t, opts: opts}
}

// Options returns the reporting modes this session enables.
func (s *Session) Options() Options {
	return s.opts
}

// RawModeEnabled reports whether Begin put the terminal in raw mode and End has not undone it.
func (s *Session) RawModeEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rawMode
}

// AltScreenActive reports whether the alternate screen is currently shown.
func (s *Session) AltScreenActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.altScreen
}

// Active reports whether Begin succeeded and End has not run since.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.begun
}

// Begin enters the alternate screen, then raw mode, then each enabled
// reporting mode. On failure it restores whatever was applied and returns
// a *SessionError; the terminal is never left half-configured.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.begun {
		return &SessionError{Op: "begin", Err: ErrSessionActive}
	}
	s.begun = true

	if err := s.applyLocked(); err != nil {
		if endErr := s.endLocked(); endErr != nil {
			return errors.Join(err, endErr)
		}
		return err
	}
	return nil
}

func (s *Session) applyLocked() error {
	if err := s.writeSeq(ansi.SetAltScreenSaveCursorMode); err != nil {
		return &SessionError{Op: "enter alternate screen", Err: err}
	}
	s.altScreen = true
	s.push("leave alternate screen", func() error {
		if err := s.writeSeq(ansi.ResetAltScreenSaveCursorMode); err != nil {
			return err
		}
		s.altScreen = false
		return nil
	})

	if err := s.term.EnterRawMode(); err != nil {
		return &SessionError{Op: "enable raw mode", Err: err}
	}
	s.rawMode = true
	s.push("disable raw mode", func() error {
		if err := s.term.ExitRawMode(); err != nil {
			return err
		}
		s.rawMode = false
		return nil
	})

	features := []struct {
		enabled bool
		name    string
		on, off string
	}{
		{s.opts.BracketedPaste, "bracketed paste", ansi.SetBracketedPasteMode, ansi.ResetBracketedPasteMode},
		{s.opts.FocusChange, "focus reporting", ansi.SetFocusEventMode, ansi.ResetFocusEventMode},
		{s.opts.MouseCapture, "mouse capture", mouseCaptureOn, mouseCaptureOff},
	}
	for _, f := range features {
		if !f.enabled {
			continue
		}
		if err := s.writeSeq(f.on); err != nil {
			return &SessionError{Op: "enable " + f.name, Err: err}
		}
		off := f.off
		s.push("disable "+f.name, func() error { return s.writeSeq(off) })
	}
	return nil
}

// End reverses every change made by Begin, in reverse order, then clears
// the screen and shows the cursor. It is idempotent: without an active
// session it does nothing and returns nil. Every step is attempted even
// if an earlier one fails; failures are joined into one *SessionError.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endLocked()
}

func (s *Session) endLocked() error {
	if !s.begun {
		return nil
	}

	var errs []error
	for i := len(s.undo) - 1; i >= 0; i-- {
		step := s.undo[i]
		if err := step.fn(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", step.op, err))
		}
	}
	s.undo = s.undo[:0]
	if err := s.writeSeq(clearOnExit); err != nil {
		errs = append(errs, fmt.Errorf("clear screen: %w", err))
	}
	s.begun = false

	if len(errs) > 0 {
		return &SessionError{Op: "end", Err: errors.Join(errs...)}
	}
	return nil
}

func (s *Session) push(op string, fn func() error) {
	s.undo = append(s.undo, undoStep{op: op, fn: fn})
}

func (s *Session) writeSeq(seq string) error {
	n, err := s.term.Write([]byte(seq))
	if err != nil {
		return err
	}
	if n < len(seq) {
		return errShortSeq
	}
	return nil
}

var errShortSeq = errors.New("control sequence partially written")
