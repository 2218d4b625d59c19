// ABOUTME: Error taxonomy for the terminal substrate: SessionError and IoError.
// ABOUTME: Both carry the failed operation and unwrap to the underlying cause.

package terminal

import (
	"errors"
	"fmt"
)

// ErrNotTerminal is returned when raw mode is requested on a file that is not a TTY.
var ErrNotTerminal = errors.New("not a terminal")

// SessionError reports a terminal mode or alternate-screen transition
// that the platform rejected.
type SessionError struct {
	Op  string
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("terminal session: %s: %v", e.Op, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// IoError reports a failed or rejected read or write on the terminal device.
type IoError struct {
	Op  string
	Err error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("terminal io: %s: %v", e.Op, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// IsSessionError reports whether err wraps a *SessionError.
func IsSessionError(err error) bool {
	var se *SessionError
	return errors.As(err, &se)
}

// IsIoError reports whether err wraps an *IoError.
func IsIoError(err error) bool {
	var ie *IoError
	return errors.As(err, &ie)
}
