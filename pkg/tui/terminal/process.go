// ABOUTME: ProcessTerminal implements Terminal on real file descriptors via golang.org/x/term.
// ABOUTME: Manages raw mode state and delegates platform-specific resize handling.

package terminal

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// ProcessTerminal is a real terminal backed by an input and an output file.
type ProcessTerminal struct {
	in  *os.File
	out *os.File

	mu       sync.Mutex
	oldState *term.State
	resizeFn func(width, height int)
	stopFn   func()
}

// NewProcessTerminal returns a ProcessTerminal on os.Stdin and os.Stdout.
func NewProcessTerminal() *ProcessTerminal {
	return NewProcessTerminalFiles(os.Stdin, os.Stdout)
}

// NewProcessTerminalFiles returns a ProcessTerminal on the given files.
// Raw mode is applied to in; size is queried from out.
func NewProcessTerminalFiles(in, out *os.File) *ProcessTerminal {
	return &ProcessTerminal{in: in, out: out}
}

// Input returns the file keystrokes are read from.
func (t *ProcessTerminal) Input() *os.File {
	return t.in
}

// EnterRawMode switches the input to raw mode, saving the previous state.
// Entering twice keeps the originally saved state.
func (t *ProcessTerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState != nil {
		return nil
	}
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("entering raw mode on %s: %w", t.in.Name(), ErrNotTerminal)
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	t.oldState = state
	return nil
}

// ExitRawMode restores the terminal to its previous state.
func (t *ProcessTerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState == nil {
		return nil
	}
	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	t.oldState = nil
	return nil
}

// IsRawMode reports whether this terminal currently holds a saved state.
func (t *ProcessTerminal) IsRawMode() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.oldState != nil
}

// Size returns the current terminal dimensions.
func (t *ProcessTerminal) Size() (width, height int, err error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}

// Write sends bytes to the output file.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to %s: %w", t.out.Name(), err)
	}
	return n, nil
}

// OnResize registers a callback invoked when the terminal is resized.
// Only the first call starts the platform listener; later calls swap the callback.
func (t *ProcessTerminal) OnResize(fn func(width, height int)) {
	t.mu.Lock()
	t.resizeFn = fn
	started := t.stopFn != nil
	t.mu.Unlock()

	if !started {
		stop := t.startResizeListener()
		t.mu.Lock()
		t.stopFn = stop
		t.mu.Unlock()
	}
}

// Close stops the resize listener. It does not touch raw mode.
func (t *ProcessTerminal) Close() {
	t.mu.Lock()
	stop := t.stopFn
	t.stopFn = nil
	t.mu.Unlock()

	if stop != nil {
		stop()
	}
}
