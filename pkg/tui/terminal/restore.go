// ABOUTME: RestoreOnPanic recovers from panics, ends the session, and prints the stack trace.
// ABOUTME: Intended for use as a deferred call in the scope that owns the terminal.

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// PanicExitCode is the process status used after a recovered panic.
const PanicExitCode = 2

// Restorer is anything that can put the terminal back the way it found it.
// *Session satisfies it.
type Restorer interface {
	End() error
}

// panic reporting seams, swapped in tests
var (
	panicOut  io.Writer = os.Stderr
	panicExit           = os.Exit
)

// RestoreOnPanic should be deferred at the top of main (or whichever
// goroutine owns the terminal). On panic it ends the session, prints the
// panic value and stack trace, then exits with PanicExitCode.
func RestoreOnPanic(r Restorer) {
	v := recover()
	if v == nil {
		return
	}

	endErr := r.End()
	fmt.Fprintf(panicOut, "\npanic: %v\n\n%s\n", v, debug.Stack())
	if endErr != nil {
		fmt.Fprintf(panicOut, "restoring terminal: %v\n", endErr)
	}
	panicExit(PanicExitCode)
}

// RecoverGoroutine should be deferred at the top of background goroutines
// that run while the session is active. Unlike RestoreOnPanic it does NOT
// exit, leaving shutdown to the owning goroutine.
func RecoverGoroutine(r Restorer) {
	v := recover()
	if v == nil {
		return
	}

	_ = r.End()
	fmt.Fprintf(panicOut, "\ngoroutine panic: %v\n\n%s\n", v, debug.Stack())
}
