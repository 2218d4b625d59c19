// ABOUTME: Semantic color theme types: Color, Palette, Theme
// ABOUTME: Styles are built with lipgloss; an empty Color leaves the terminal default

package theme

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color is an ANSI 256 index ("236") or a hex value ("#303030").
// The empty Color means the terminal's own color.
type Color string

// Valid reports whether c is empty, an index in 0-255, or #rgb/#rrggbb hex.
func (c Color) Valid() bool {
	s := string(c)
	if s == "" {
		return true
	}
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 3 && len(hex) != 6 {
			return false
		}
		_, err := strconv.ParseUint(hex, 16, 32)
		return err == nil
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 255
}

func (c Color) terminalColor() lipgloss.TerminalColor {
	if c == "" {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(c)
}

// Palette holds the colors of the drawn screen.
type Palette struct {
	Marker   Color // empty-row marker
	StatusFg Color
	StatusBg Color
	Reverse  bool // status bar in reverse video
	Bold     bool // status bar text in bold
}

// Theme holds a named palette.
type Theme struct {
	Name    string
	Palette Palette
}

// DefaultPalette draws plain markers and a reverse-video status bar.
func DefaultPalette() Palette {
	return Palette{Reverse: true}
}

// MarkerStyle styles the empty-row marker.
func (t *Theme) MarkerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Palette.Marker.terminalColor())
}

// StatusStyle styles the status bar.
func (t *Theme) StatusStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Palette.StatusFg.terminalColor()).
		Background(t.Palette.StatusBg.terminalColor()).
		Reverse(t.Palette.Reverse).
		Bold(t.Palette.Bold)
}
