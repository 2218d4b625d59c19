// ABOUTME: Cell width of terminal text: grapheme clusters via uniseg, East Asian width via go-runewidth
// ABOUTME: Truncate and PadRight fit a string to a column count without splitting a cluster

package width

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// VisibleWidth returns the number of cells s occupies. Escape sequences
// count as zero; wide characters and emoji count as two.
func VisibleWidth(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	s = Strip(s)
	w := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += clusterWidth(cluster)
	}
	return w
}

// Truncate cuts s to at most cols cells. When s is wider than cols, tail
// (for example "…") replaces the end and the result still fits in cols.
// Escape sequences before the cut are preserved.
func Truncate(s string, cols int, tail string) string {
	if cols <= 0 {
		return ""
	}
	if VisibleWidth(s) <= cols {
		return s
	}
	tw := VisibleWidth(tail)
	if tw > cols {
		return Truncate(tail, cols, "")
	}
	limit := cols - tw

	var b strings.Builder
	b.Grow(len(s))
	col := 0
	for i := 0; i < len(s); {
		if s[i] == '\x1b' {
			end := skipSequence(s, i)
			b.WriteString(s[i:end])
			i = end
			continue
		}
		cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		cw := clusterWidth(cluster)
		if col+cw > limit {
			break
		}
		b.WriteString(cluster)
		col += cw
		i += len(cluster)
	}
	b.WriteString(tail)
	return b.String()
}

// PadRight appends spaces to s until it is cols cells wide. Wider strings
// are returned unchanged.
func PadRight(s string, cols int) string {
	w := VisibleWidth(s)
	if w >= cols {
		return s
	}
	return s + strings.Repeat(" ", cols-w)
}

// isPlainASCII reports whether s holds only printable ASCII.
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

// clusterWidth is the width of a grapheme cluster's base rune; combining
// marks and joiners add nothing.
func clusterWidth(cluster string) int {
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
