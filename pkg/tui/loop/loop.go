// ABOUTME: Loop drives the draw-then-wait cycle: compose a frame, flush it in one write, block for a key.
// ABOUTME: Two states, Running and Stopped; the quit key is the only way from one to the other.

package loop

import (
	"sync"

	"github.com/mauromedda/kilo-go/pkg/tui/frame"
	"github.com/mauromedda/kilo-go/pkg/tui/key"
	"github.com/mauromedda/kilo-go/pkg/tui/width"
)

// DefaultQuitKey returns the key that stops the loop unless WithQuitKey
// says otherwise: a plain q.
func DefaultQuitKey() key.Key {
	return key.Rune('q')
}

// State is the loop's lifecycle state.
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "running"
}

// Size is the screen size in cells. Both fields are non-negative.
type Size struct {
	Cols int
	Rows int
}

func (s Size) clamp() Size {
	return Size{Cols: max(s.Cols, 0), Rows: max(s.Rows, 0)}
}

// KeySource supplies key presses; input.Reader satisfies it.
type KeySource interface {
	NextKey() (key.Key, error)
}

// Composer appends the body of one frame to buf.
type Composer interface {
	Compose(buf *frame.Buffer, size Size)
}

// ComposerFunc adapts a function to Composer.
type ComposerFunc func(buf *frame.Buffer, size Size)

func (f ComposerFunc) Compose(buf *frame.Buffer, size Size) { f(buf, size) }

// RowsComposer draws Marker at the start of every row, "~" when empty.
// Rows are separated by CR LF with none after the last, so the cursor
// never scrolls the screen.
type RowsComposer struct {
	Marker string
}

func (c RowsComposer) Compose(buf *frame.Buffer, size Size) {
	marker := c.Marker
	if marker == "" {
		marker = "~"
	}
	marker = width.Truncate(marker, size.Cols, "")
	for row := range size.Rows {
		buf.Append(marker)
		if row < size.Rows-1 {
			buf.Append("\r\n")
		}
	}
}

// Option configures a Loop.
type Option func(*Loop)

// WithQuitKey sets the key that stops the loop. Modifiers must match exactly.
func WithQuitKey(k key.Key) Option {
	return func(l *Loop) { l.quit = k }
}

// WithComposer replaces the default RowsComposer.
func WithComposer(c Composer) Option {
	return func(l *Loop) { l.composer = c }
}

// WithKeyHandler registers fn for every key that is not the quit key.
func WithKeyHandler(fn func(key.Key)) Option {
	return func(l *Loop) { l.onKey = fn }
}

// Loop owns the frame buffer for the program's lifetime.
type Loop struct {
	buf      *frame.Buffer
	keys     KeySource
	composer Composer
	quit     key.Key
	onKey    func(key.Key)

	state  State
	frames int

	mu   sync.Mutex
	size Size
}

// New returns a Running loop drawing into buf at the given size and
// reading keys from keys.
func New(buf *frame.Buffer, keys KeySource, size Size, opts ...Option) *Loop {
	l := &Loop{
		buf:      buf,
		keys:     keys,
		composer: RowsComposer{},
		quit:     DefaultQuitKey(),
		size:     size.clamp(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Step runs one iteration: draw and flush a frame, then wait for one key.
// Errors from the flush or the key source are returned unchanged and
// leave the state Running. On a Stopped loop Step does nothing.
func (l *Loop) Step() error {
	if l.state == Stopped {
		return nil
	}

	size := l.Size()
	l.buf.HideCursor()
	l.buf.ClearScreen()
	l.buf.CursorHome()
	l.composer.Compose(l.buf, size)
	l.buf.CursorHome()
	l.buf.ShowCursor()
	if err := l.buf.Flush(); err != nil {
		return err
	}
	l.frames++

	k, err := l.keys.NextKey()
	if err != nil {
		return err
	}
	if k.Equal(l.quit) {
		l.state = Stopped
		return nil
	}
	if l.onKey != nil {
		l.onKey(k)
	}
	return nil
}

// Run steps until the quit key is read or a step fails.
func (l *Loop) Run() error {
	for l.state == Running {
		if err := l.Step(); err != nil {
			return err
		}
	}
	return nil
}

// State reports whether the loop is still running.
func (l *Loop) State() State { return l.state }

// Frames counts successfully flushed frames.
func (l *Loop) Frames() int { return l.frames }

// QuitKey returns the key that stops the loop.
func (l *Loop) QuitKey() key.Key { return l.quit }

// Size returns the size the next frame will be drawn at.
func (l *Loop) Size() Size {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

// SetSize records a new screen size; it takes effect at the next frame.
// Safe to call from a resize notification goroutine.
func (l *Loop) SetSize(s Size) {
	l.mu.Lock()
	l.size = s.clamp()
	l.mu.Unlock()
}
