// ABOUTME: StatusComposer draws the tilde rows plus a status bar on the last row
// ABOUTME: Colors come from the active theme; text is fitted to the column count with the width package

package interactive

import (
	"fmt"
	"strings"

	"github.com/mauromedda/kilo-go/pkg/tui/frame"
	"github.com/mauromedda/kilo-go/pkg/tui/key"
	"github.com/mauromedda/kilo-go/pkg/tui/loop"
	"github.com/mauromedda/kilo-go/pkg/tui/theme"
	"github.com/mauromedda/kilo-go/pkg/tui/width"
)

// StatusComposer renders loop.RowsComposer above a one-row status bar.
type StatusComposer struct {
	Version string
	QuitKey key.Key
	Theme   *theme.Theme // nil uses theme.Current()
}

func (c *StatusComposer) theme() *theme.Theme {
	if c.Theme != nil {
		return c.Theme
	}
	return theme.Current()
}

func (c *StatusComposer) Compose(buf *frame.Buffer, size loop.Size) {
	if size.Rows == 0 {
		return
	}
	marker := c.theme().MarkerStyle().Render("~")
	loop.RowsComposer{Marker: marker}.Compose(buf, loop.Size{Cols: size.Cols, Rows: size.Rows - 1})
	if size.Rows > 1 {
		buf.Append("\r\n")
	}
	buf.Append(c.StatusLine(size))
}

// StatusLine returns the styled status bar, exactly size.Cols cells wide.
func (c *StatusComposer) StatusLine(size loop.Size) string {
	if size.Cols <= 0 {
		return ""
	}
	version := c.Version
	if version == "" {
		version = "dev"
	}
	left := "kilo-go " + version
	right := fmt.Sprintf("%dx%d | %s to quit", size.Cols, size.Rows, c.QuitKey)

	text := left
	if gap := size.Cols - width.VisibleWidth(left) - width.VisibleWidth(right); gap >= 1 {
		text = left + strings.Repeat(" ", gap) + right
	}
	text = width.PadRight(width.Truncate(text, size.Cols, ""), size.Cols)
	return c.theme().StatusStyle().Render(text)
}
