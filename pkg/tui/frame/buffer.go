// ABOUTME: Frame buffer: accumulates a whole frame of text and control sequences, flushed in one write
// ABOUTME: Append never fails; Flush empties the buffer only when the device accepted everything

package frame

import (
	"io"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/mauromedda/kilo-go/pkg/tui/internal/pool"
	"github.com/mauromedda/kilo-go/pkg/tui/terminal"
)

const defaultCapacity = 4096

// Buffer is an append-only frame accumulator in front of a terminal writer.
// It is not safe for concurrent use; the render loop owns it.
type Buffer struct {
	w          io.Writer
	pending    []byte
	syncOutput bool
	// owed is the unsent tail of a synchronized-output reset cut off by a
	// partial write; it goes out first on the next flush.
	owed string
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithSyncOutput wraps every non-empty flush in CSI 2026 synchronized
// output markers so terminals that support it paint the frame at once.
func WithSyncOutput() Option {
	return func(b *Buffer) { b.syncOutput = true }
}

// WithCapacity preallocates n bytes of pending space.
func WithCapacity(n int) Option {
	return func(b *Buffer) {
		if n > cap(b.pending) {
			b.pending = make([]byte, 0, n)
		}
	}
}

// New returns an empty Buffer that flushes to w.
func New(w io.Writer, opts ...Option) *Buffer {
	b := &Buffer{w: w, pending: make([]byte, 0, defaultCapacity)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Append adds s to the pending frame.
func (b *Buffer) Append(s string) {
	b.pending = append(b.pending, s...)
}

// AppendBytes adds p to the pending frame.
func (b *Buffer) AppendBytes(p []byte) {
	b.pending = append(b.pending, p...)
}

// AppendRune adds the UTF-8 encoding of r to the pending frame.
func (b *Buffer) AppendRune(r rune) {
	b.pending = utf8.AppendRune(b.pending, r)
}

// Write implements io.Writer so fmt and other generic helpers can compose
// into the frame. It only appends; nothing reaches the device until Flush.
func (b *Buffer) Write(p []byte) (int, error) {
	b.AppendBytes(p)
	return len(p), nil
}

// WriteString implements io.StringWriter.
func (b *Buffer) WriteString(s string) (int, error) {
	b.Append(s)
	return len(s), nil
}

// ClearScreen appends an erase-entire-screen sequence.
func (b *Buffer) ClearScreen() { b.Append(ansi.EraseEntireScreen) }

// ClearLine appends an erase-to-end-of-line sequence.
func (b *Buffer) ClearLine() { b.Append(ansi.EraseLineRight) }

// CursorHome appends a move to the top-left cell.
func (b *Buffer) CursorHome() { b.Append(ansi.CursorHomePosition) }

// MoveCursor appends a move to the 0-based cell (col, row).
func (b *Buffer) MoveCursor(col, row int) {
	b.Append(ansi.CursorPosition(max(col, 0)+1, max(row, 0)+1))
}

// HideCursor appends a hide-cursor sequence.
func (b *Buffer) HideCursor() { b.Append(ansi.HideCursor) }

// ShowCursor appends a show-cursor sequence.
func (b *Buffer) ShowCursor() { b.Append(ansi.ShowCursor) }

// Len returns the number of pending bytes.
func (b *Buffer) Len() int { return len(b.pending) }

// String returns the pending content.
func (b *Buffer) String() string { return string(b.pending) }

// Flush writes the entire pending frame to the device in a single Write,
// then empties the buffer. An empty buffer still issues one zero-length
// write.
//
// On failure Flush returns a *terminal.IoError and keeps what the device
// did not accept: nothing is dropped when zero bytes were written, and
// only the accepted prefix is dropped on a partial write, so a retry
// never duplicates output. With synchronized output, a reset marker the
// device only partly accepted is completed by the next flush.
func (b *Buffer) Flush() error {
	out := b.pending
	if b.syncOutput && (len(b.pending) > 0 || b.owed != "") {
		scratch := pool.GetBytesBuffer()
		defer pool.PutBytesBuffer(scratch)
		scratch.Grow(len(b.owed) + len(b.pending) + len(ansi.SetSynchronizedOutputMode) + len(ansi.ResetSynchronizedOutputMode))
		scratch.WriteString(b.owed)
		if len(b.pending) > 0 {
			scratch.WriteString(ansi.SetSynchronizedOutputMode)
			scratch.Write(b.pending)
			scratch.WriteString(ansi.ResetSynchronizedOutputMode)
		}
		out = scratch.Bytes()
	}

	n, err := b.w.Write(out)
	if err == nil && n < len(out) {
		err = io.ErrShortWrite
	}
	if err != nil {
		b.consume(max(n, 0))
		return &terminal.IoError{Op: "flush frame", Err: err}
	}

	b.pending = b.pending[:0]
	b.owed = ""
	return nil
}

// consume drops the first n bytes of a flush the device accepted.
func (b *Buffer) consume(n int) {
	if !b.syncOutput {
		b.dropPending(min(n, len(b.pending)))
		return
	}

	sent := min(n, len(b.owed))
	b.owed = b.owed[sent:]
	n -= sent
	if n == 0 || len(b.pending) == 0 {
		return
	}

	// A partly sent set marker is simply sent again; it is idempotent.
	n -= len(ansi.SetSynchronizedOutputMode)
	if n <= 0 {
		return
	}
	total := len(b.pending)
	body := min(n, total)
	b.dropPending(body)
	if body == total {
		reset := ansi.ResetSynchronizedOutputMode
		b.owed = reset[min(n-body, len(reset)):]
	}
}

func (b *Buffer) dropPending(n int) {
	if n > 0 {
		b.pending = append(b.pending[:0], b.pending[n:]...)
	}
}
