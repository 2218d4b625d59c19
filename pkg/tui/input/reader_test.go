// ABOUTME: Tests for Reader: chunk boundaries, lone ESC resolution, non-key filtering, and read failures.
// ABOUTME: Uses a scripted chunk reader so each Read call returns a known slice.

package input

import (
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/mauromedda/kilo-go/pkg/tui/key"
	"github.com/mauromedda/kilo-go/pkg/tui/terminal"
)

// chunkReader returns one chunk per Read call, then err (io.EOF if nil).
type chunkReader struct {
	chunks []string
	err    error
	reads  int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	c.reads++
	if len(c.chunks) == 0 {
		if c.err != nil {
			return 0, c.err
		}
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	c.chunks[0] = c.chunks[0][n:]
	if c.chunks[0] == "" {
		c.chunks = c.chunks[1:]
	}
	return n, nil
}

func readKeys(t *testing.T, r *Reader, n int) []key.Key {
	t.Helper()
	keys := make([]key.Key, 0, n)
	for range n {
		k, err := r.NextKey()
		if err != nil {
			t.Fatalf("NextKey after %d keys: %v", len(keys), err)
		}
		keys = append(keys, k)
	}
	return keys
}

func assertKeys(t *testing.T, got, want []key.Key) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d keys %v; want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d = %+v; want %+v", i, got[i], want[i])
		}
	}
}

func TestReader_NextKeySequence(t *testing.T) {
	t.Parallel()

	r := NewReader(&chunkReader{chunks: []string{"ab\x1b[Aq"}})
	got := readKeys(t, r, 4)
	assertKeys(t, got, []key.Key{
		key.Rune('a'),
		key.Rune('b'),
		{Type: key.KeyUp},
		key.Rune('q'),
	})
}

func TestReader_NextKeyDiscardsNonKeyEvents(t *testing.T) {
	t.Parallel()

	src := &chunkReader{chunks: []string{
		"\x1b[<0;1;1M",               // mouse press
		"\x1b[I",                     // focus in
		"\x1b[200~pasted q\x1b[201~", // paste containing the quit rune
		"\x1b[99~",                   // unknown
		"\x1b[113;1:3u",              // key release
		"\xff",                       // invalid byte
		"q",
	}}
	r := NewReader(src)

	k, err := r.NextKey()
	if err != nil {
		t.Fatalf("NextKey: %v", err)
	}
	if k != key.Rune('q') {
		t.Errorf("NextKey = %+v; want q", k)
	}
	if src.reads != 7 {
		t.Errorf("reads = %d; want 7 (one per chunk, no extra)", src.reads)
	}
}

func TestReader_ReadEventKinds(t *testing.T) {
	t.Parallel()

	r := NewReader(&chunkReader{chunks: []string{"\x1b[<0;3;2M\x1b[O\x1b[200~x\x1b[201~q"}})
	want := []EventKind{EventMouse, EventFocus, EventPaste, EventKey}
	for i, kind := range want {
		ev, err := r.ReadEvent()
		if err != nil {
			t.Fatalf("event %d: %v", i, err)
		}
		if ev.Kind != kind {
			t.Errorf("event %d kind = %v; want %v", i, ev.Kind, kind)
		}
	}
}

func TestReader_SequenceSplitAcrossChunks(t *testing.T) {
	t.Parallel()

	r := NewReader(&chunkReader{chunks: []string{"\x1b[", "1;5", "A", "\xc3", "\xa9", "\x1b[200~ab", "c\x1b[2", "01~z"}})

	k, err := r.NextKey()
	if err != nil {
		t.Fatalf("NextKey: %v", err)
	}
	if k != (key.Key{Type: key.KeyUp, Ctrl: true}) {
		t.Errorf("first key = %+v; want ctrl+up", k)
	}

	k, err = r.NextKey()
	if err != nil {
		t.Fatalf("NextKey: %v", err)
	}
	if k != key.Rune('é') {
		t.Errorf("second key = %+v; want é", k)
	}

	ev, err := r.ReadEvent()
	if err != nil {
		t.Fatalf("ReadEvent: %v", err)
	}
	if ev.Kind != EventPaste || ev.Paste != "abc" {
		t.Errorf("event = %+v; want paste abc", ev)
	}

	k, err = r.NextKey()
	if err != nil {
		t.Fatalf("NextKey: %v", err)
	}
	if k != key.Rune('z') {
		t.Errorf("last key = %+v; want z", k)
	}
}

func TestReader_LoneEscapeAtChunkEnd(t *testing.T) {
	t.Parallel()

	// ESC ends the first chunk, so it is the Escape key; the bytes of the
	// next chunk are ordinary keys.
	r := NewReader(&chunkReader{chunks: []string{"a\x1b", "[A"}})
	got := readKeys(t, r, 4)
	assertKeys(t, got, []key.Key{
		key.Rune('a'),
		{Type: key.KeyEscape},
		key.Rune('['),
		key.Rune('A'),
	})
}

func TestReader_EscapeDoesNotBlockForMoreInput(t *testing.T) {
	t.Parallel()

	src := &chunkReader{chunks: []string{"\x1b"}, err: errors.New("must not read again")}
	r := NewReader(src)

	k, err := r.NextKey()
	if err != nil {
		t.Fatalf("NextKey: %v", err)
	}
	if k.Type != key.KeyEscape {
		t.Errorf("NextKey = %+v; want escape", k)
	}
	if src.reads != 1 {
		t.Errorf("reads = %d; want 1", src.reads)
	}
}

func TestReader_EOFIsIoError(t *testing.T) {
	t.Parallel()

	r := NewReader(&chunkReader{})
	_, err := r.NextKey()
	if err == nil {
		t.Fatal("expected error at end of input")
	}
	if !terminal.IsIoError(err) {
		t.Errorf("error %v is not an IoError", err)
	}
	if !errors.Is(err, io.EOF) {
		t.Errorf("error %v does not wrap io.EOF", err)
	}

	// The error is sticky.
	if _, err2 := r.NextKey(); !errors.Is(err2, io.EOF) {
		t.Errorf("second NextKey error = %v; want io.EOF", err2)
	}
}

func TestReader_EOFWithOnlyNonKeyEvents(t *testing.T) {
	t.Parallel()

	r := NewReader(&chunkReader{chunks: []string{"\x1b[I\x1b[<0;1;1M"}})
	_, err := r.NextKey()
	if !terminal.IsIoError(err) {
		t.Errorf("NextKey error = %v; want IoError", err)
	}
}

func TestReader_DataBeforeErrorIsDelivered(t *testing.T) {
	t.Parallel()

	boom := errors.New("device gone")
	r := NewReader(iotest.DataErrReader(&chunkReader{chunks: []string{"q"}, err: boom}))

	k, err := r.NextKey()
	if err != nil {
		t.Fatalf("NextKey: %v", err)
	}
	if k != key.Rune('q') {
		t.Errorf("NextKey = %+v; want q", k)
	}

	_, err = r.NextKey()
	if !errors.Is(err, boom) {
		t.Errorf("error = %v; want wrapping %v", err, boom)
	}
	var ioErr *terminal.IoError
	if !errors.As(err, &ioErr) || ioErr.Op != "read input" {
		t.Errorf("error = %#v; want IoError{Op: read input}", err)
	}
}

func TestReader_IncompleteTailFlushedAtEOF(t *testing.T) {
	t.Parallel()

	r := NewReader(&chunkReader{chunks: []string{"\x1b[1;"}})

	ev, err := r.ReadEvent()
	if err != nil {
		t.Fatalf("ReadEvent: %v", err)
	}
	if ev.Kind != EventUnknown || ev.Raw != "\x1b[1;" {
		t.Errorf("event = %+v; want unknown tail", ev)
	}
	if _, err := r.ReadEvent(); !errors.Is(err, io.EOF) {
		t.Errorf("error = %v; want io.EOF", err)
	}
}

func TestReader_OneByteReads(t *testing.T) {
	t.Parallel()

	// One byte per read: a multi-byte rune still decodes once complete.
	r := NewReader(iotest.OneByteReader(&chunkReader{chunks: []string{"é世q"}}))
	got := readKeys(t, r, 3)
	assertKeys(t, got, []key.Key{key.Rune('é'), key.Rune('世'), key.Rune('q')})
}

// emptyReader never makes progress.
type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) { return 0, nil }

func TestReader_NoProgressFails(t *testing.T) {
	t.Parallel()

	_, err := NewReader(emptyReader{}).NextKey()
	if !errors.Is(err, io.ErrNoProgress) {
		t.Errorf("error = %v; want io.ErrNoProgress", err)
	}
}

func TestReader_CancelWithoutCancelableSource(t *testing.T) {
	t.Parallel()

	r := NewReader(&chunkReader{})
	if r.Cancel() {
		t.Error("Cancel on a plain reader should report false")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
