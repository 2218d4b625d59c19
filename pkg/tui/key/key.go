// ABOUTME: Defines the Key type, its modifiers, and its canonical text form ("ctrl+q", "alt+enter").
// ABOUTME: ParseKey decodes one complete input sequence; ParseSpec reads the text form back.

package key

import (
	"strings"
	"unicode/utf8"
)

// Key represents a parsed keyboard input event.
type Key struct {
	Type  KeyType
	Rune  rune // For KeyRune
	Alt   bool
	Ctrl  bool
	Shift bool
}

// KeyType enumerates the kinds of key events the terminal can report.
type KeyType int

const (
	KeyRune      KeyType = iota // Printable character, or a letter with Ctrl
	KeyEnter                    // Enter / Return
	KeyTab                      // Tab
	KeyBackTab                  // Shift+Tab
	KeyBackspace                // Backspace / DEL (0x7F)
	KeyDelete                   // Delete key
	KeyInsert                   // Insert key
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyHome                     // Home
	KeyEnd                      // End
	KeyPageUp                   // Page Up
	KeyPageDown                 // Page Down
	KeyEscape                   // Escape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyUnknown // Unrecognized input
)

// keyTypeNames holds the canonical lower-case names used by String and ParseSpec.
var keyTypeNames = map[KeyType]string{
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackTab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyEscape:    "escape",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
	KeyUnknown:   "unknown",
}

// runeNames spells out runes that would be ambiguous in the text form.
var runeNames = map[rune]string{
	' ': "space",
	'+': "plus",
}

// Rune returns an unmodified key for the printable character r.
func Rune(r rune) Key {
	return Key{Type: KeyRune, Rune: r}
}

// Ctrl returns the Ctrl+<r> key.
func Ctrl(r rune) Key {
	return Key{Type: KeyRune, Rune: r, Ctrl: true}
}

// Equal reports whether k and other are the same key with the same modifiers.
func (k Key) Equal(other Key) bool {
	if k.Type != other.Type || k.Alt != other.Alt || k.Ctrl != other.Ctrl || k.Shift != other.Shift {
		return false
	}
	return k.Type != KeyRune || k.Rune == other.Rune
}

// String returns the canonical text form: modifiers in ctrl, alt, shift
// order followed by the key name, joined with "+". Printable runes are
// their own name.
func (k Key) String() string {
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("ctrl+")
	}
	if k.Alt {
		b.WriteString("alt+")
	}
	if k.Shift && k.Type != KeyBackTab {
		b.WriteString("shift+")
	}
	b.WriteString(k.name())
	return b.String()
}

func (k Key) name() string {
	if k.Type != KeyRune {
		if name, ok := keyTypeNames[k.Type]; ok {
			return name
		}
		return "unknown"
	}
	if name, ok := runeNames[k.Rune]; ok {
		return name
	}
	if k.Rune < 0x20 || !utf8.ValidRune(k.Rune) {
		return "unknown"
	}
	return string(k.Rune)
}
