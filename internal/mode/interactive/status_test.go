package interactive

import (
	"io"
	"strings"
	"testing"

	"github.com/mauromedda/kilo-go/pkg/tui/frame"
	"github.com/mauromedda/kilo-go/pkg/tui/key"
	"github.com/mauromedda/kilo-go/pkg/tui/loop"
	"github.com/mauromedda/kilo-go/pkg/tui/theme"
	"github.com/mauromedda/kilo-go/pkg/tui/width"
)

func TestStatusLine_FitsWidth(t *testing.T) {
	t.Parallel()

	for _, name := range theme.BuiltinNames() {
		c := &StatusComposer{Version: "1.0", QuitKey: key.Ctrl('q'), Theme: theme.Builtin(name)}
		for _, cols := range []int{1, 5, 12, 40, 120} {
			line := c.StatusLine(loop.Size{Cols: cols, Rows: 10})
			if got := width.VisibleWidth(line); got != cols {
				t.Errorf("%s cols=%d: status is %d cells wide", name, cols, got)
			}
		}
	}
	c := &StatusComposer{}
	if got := c.StatusLine(loop.Size{Cols: 0, Rows: 10}); got != "" {
		t.Errorf("zero width status = %q", got)
	}
}

func TestStatusLine_ShowsQuitKeyWhenRoomy(t *testing.T) {
	t.Parallel()

	c := &StatusComposer{QuitKey: key.Ctrl('q')}
	line := width.Strip(c.StatusLine(loop.Size{Cols: 60, Rows: 20}))
	if !strings.HasPrefix(line, "kilo-go dev") {
		t.Errorf("status = %q; want version on the left", line)
	}
	if !strings.HasSuffix(line, "60x20 | ctrl+q to quit") {
		t.Errorf("status = %q; want size and quit key on the right", line)
	}
}

func TestStatusComposer_Rows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rows       int
		wantTildes int
		wantBreaks int
	}{
		{rows: 0, wantTildes: 0, wantBreaks: 0},
		{rows: 1, wantTildes: 0, wantBreaks: 0},
		{rows: 4, wantTildes: 3, wantBreaks: 3},
	}
	for _, tt := range tests {
		buf := frame.New(io.Discard)
		(&StatusComposer{QuitKey: key.Rune('q'), Theme: theme.Builtin("dark")}).Compose(buf, loop.Size{Cols: 30, Rows: tt.rows})
		out := buf.String()
		if got := strings.Count(out, "~"); got != tt.wantTildes {
			t.Errorf("rows=%d: tildes = %d; want %d", tt.rows, got, tt.wantTildes)
		}
		if got := strings.Count(out, "\r\n"); got != tt.wantBreaks {
			t.Errorf("rows=%d: line breaks = %d; want %d", tt.rows, got, tt.wantBreaks)
		}
	}
}
