// ABOUTME: Reader pulls bytes from the terminal and hands out decoded events one at a time.
// ABOUTME: NextKey blocks until a key press, discarding mouse, focus, paste, and unknown input.

package input

import (
	"errors"
	"io"
	"os"

	"github.com/muesli/cancelreader"

	"github.com/mauromedda/kilo-go/pkg/tui/key"
	"github.com/mauromedda/kilo-go/pkg/tui/terminal"
)

const (
	readBufSize = 256
	// maxEmptyReads bounds consecutive (0, nil) reads before the source is
	// considered broken. A blocking TTY read never returns (0, nil).
	maxEmptyReads = 100
)

// ErrCanceled is wrapped by the error returned from a read interrupted by Cancel.
var ErrCanceled = cancelreader.ErrCanceled

// Reader decodes events from a byte source. It is not safe for concurrent
// use, except for Cancel.
type Reader struct {
	src    io.Reader
	closer cancelreader.CancelReader // nil unless built by NewCancelableReader

	chunk   []byte
	pending []byte
	err     error // sticky; surfaced once pending bytes are drained
}

// NewReader returns a Reader over src. Reads block for as long as src does.
func NewReader(src io.Reader) *Reader {
	return &Reader{
		src:   src,
		chunk: make([]byte, readBufSize),
	}
}

// NewCancelableReader returns a Reader over f whose pending read can be
// interrupted with Cancel.
func NewCancelableReader(f *os.File) (*Reader, error) {
	cr, err := cancelreader.NewReader(f)
	if err != nil {
		return nil, &terminal.IoError{Op: "open input", Err: err}
	}
	r := NewReader(cr)
	r.closer = cr
	return r, nil
}

// Cancel interrupts a blocked read. The interrupted call returns an error
// wrapping ErrCanceled, as does every later call. It reports false when the
// source cannot be canceled.
func (r *Reader) Cancel() bool {
	if r.closer == nil {
		return false
	}
	return r.closer.Cancel()
}

// Close releases the cancelable source, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// NextKey blocks until a key is pressed and returns it. Every other event
// is dropped. A read failure or end of input yields a *terminal.IoError.
func (r *Reader) NextKey() (key.Key, error) {
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			return key.Key{}, err
		}
		if ev.Kind == EventKey {
			return ev.Key, nil
		}
	}
}

// ReadEvent blocks until one event is decoded. Bytes that arrived together
// with a read error are decoded and returned before the error is.
func (r *Reader) ReadEvent() (Event, error) {
	empty := 0
	for {
		if len(r.pending) > 0 {
			if ev, ok := r.decodePending(); ok {
				return ev, nil
			}
		}
		if r.err != nil {
			return Event{}, r.err
		}

		n, err := r.src.Read(r.chunk)
		if n > 0 {
			r.pending = append(r.pending, r.chunk[:n]...)
			empty = 0
		}
		if err != nil {
			r.err = &terminal.IoError{Op: "read input", Err: err}
			continue
		}
		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				r.err = &terminal.IoError{Op: "read input", Err: io.ErrNoProgress}
			}
		}
	}
}

// decodePending decodes one event from the buffered bytes. Pending bytes
// are always the tail of the latest chunk, so a lone ESC there is the
// Escape key rather than the start of a sequence. With input exhausted,
// an incomplete tail is flushed as a final unknown event.
func (r *Reader) decodePending() (Event, bool) {
	n, ev := decode(r.pending)
	if n == 0 {
		switch {
		case len(r.pending) == 1 && r.pending[0] == esc:
			ev = Event{Kind: EventKey, Key: key.Key{Type: key.KeyEscape}}
		case r.err != nil:
			ev = unknownEvent(r.pending)
		default:
			return Event{}, false
		}
		n = len(r.pending)
	}
	r.pending = r.pending[n:]
	if len(r.pending) == 0 {
		r.pending = nil
	}
	return ev, true
}

// IsCanceled reports whether err came from a read interrupted by Cancel.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}
