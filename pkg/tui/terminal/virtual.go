// ABOUTME: VirtualTerminal implements Terminal for testing without a real TTY.
// ABOUTME: Captures output, journals raw-mode transitions, and injects failures.

package terminal

import (
	"bytes"
	"fmt"
	"sync"
)

// Journal entries recorded for raw-mode transitions. Writes are recorded
// as the written text itself.
const (
	JournalRawOn  = "<raw:on>"
	JournalRawOff = "<raw:off>"
)

// VirtualTerminal is a fake Terminal for unit tests.
type VirtualTerminal struct {
	mu         sync.Mutex
	buf        bytes.Buffer
	journal    []string
	width      int
	height     int
	rawMode    bool
	resizeFn   func(width, height int)
	enterCount int
	exitCount  int
	writeCount int

	enterErr  error
	exitErr   error
	writeErr  error
	failAfter int // writes allowed before writeErr kicks in; <0 means always fail
}

// NewVirtualTerminal returns a VirtualTerminal with the given dimensions.
func NewVirtualTerminal(width, height int) *VirtualTerminal {
	return &VirtualTerminal{
		width:  width,
		height: height,
	}
}

// EnterRawMode records a raw-mode entry, or returns the injected error.
func (v *VirtualTerminal) EnterRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.enterErr != nil {
		return v.enterErr
	}
	v.rawMode = true
	v.enterCount++
	v.journal = append(v.journal, JournalRawOn)
	return nil
}

// ExitRawMode records a raw-mode exit, or returns the injected error.
func (v *VirtualTerminal) ExitRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.exitErr != nil {
		return v.exitErr
	}
	v.rawMode = false
	v.exitCount++
	v.journal = append(v.journal, JournalRawOff)
	return nil
}

// Size returns the configured terminal dimensions.
func (v *VirtualTerminal) Size() (width, height int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.width, v.height, nil
}

// Write appends data to the internal buffer unless a write failure is armed.
// A failing write accepts zero bytes.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.writeErr != nil && (v.failAfter < 0 || v.writeCount >= v.failAfter) {
		return 0, v.writeErr
	}
	v.writeCount++
	v.journal = append(v.journal, string(p))
	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	return n, nil
}

// OnResize stores the resize callback.
func (v *VirtualTerminal) OnResize(fn func(width, height int)) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.resizeFn = fn
}

// --- Test helpers (not part of Terminal interface) ---

// FailEnterRawMode makes subsequent EnterRawMode calls return err.
func (v *VirtualTerminal) FailEnterRawMode(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.enterErr = err
}

// FailExitRawMode makes subsequent ExitRawMode calls return err.
func (v *VirtualTerminal) FailExitRawMode(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.exitErr = err
}

// FailWritesAfter lets n more successful writes through, then fails every
// write with err. A negative n fails immediately. A nil err disarms.
func (v *VirtualTerminal) FailWritesAfter(n int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.writeErr = err
	if n < 0 {
		v.failAfter = -1
		return
	}
	v.failAfter = v.writeCount + n
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Journal returns raw-mode transitions and writes in the order they happened.
func (v *VirtualTerminal) Journal() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]string, len(v.journal))
	copy(out, v.journal)
	return out
}

// Reset clears the output buffer and the journal.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
	v.journal = nil
}

// IsRawMode reports whether raw mode is currently active.
func (v *VirtualTerminal) IsRawMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rawMode
}

// EnterCount returns how many times EnterRawMode succeeded.
func (v *VirtualTerminal) EnterCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.enterCount
}

// ExitCount returns how many times ExitRawMode succeeded.
func (v *VirtualTerminal) ExitCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.exitCount
}

// WriteCount returns how many writes succeeded.
func (v *VirtualTerminal) WriteCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.writeCount
}

// SetSize updates the terminal dimensions and, if a resize callback
// is registered, invokes it with the new size.
func (v *VirtualTerminal) SetSize(width, height int) {
	v.mu.Lock()
	v.width = width
	v.height = height
	fn := v.resizeFn
	v.mu.Unlock()

	if fn != nil {
		fn(width, height)
	}
}
