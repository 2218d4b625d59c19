// ABOUTME: ParseSpec reads the text form of a key ("q", "ctrl+c", "shift+tab") back into a Key.
// ABOUTME: Unknown names fail with a fuzzy-matched suggestion from the known key names.

package key

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// ErrInvalidSpec is wrapped by every error ParseSpec returns.
var ErrInvalidSpec = errors.New("invalid key")

// nameAliases maps accepted spellings to key types, on top of keyTypeNames.
var nameAliases = map[string]KeyType{
	"esc":      KeyEscape,
	"return":   KeyEnter,
	"del":      KeyDelete,
	"ins":      KeyInsert,
	"pageup":   KeyPageUp,
	"pagedown": KeyPageDown,
}

var specNames = buildSpecNames()

// knownNames is the sorted candidate list for suggestions.
var knownNames = func() []string {
	names := make([]string, 0, len(specNames))
	for n := range specNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}()

func buildSpecNames() map[string]Key {
	m := make(map[string]Key, len(keyTypeNames)+len(nameAliases)+len(runeNames))
	for kt, n := range keyTypeNames {
		if kt == KeyUnknown {
			continue
		}
		m[n] = Key{Type: kt}
	}
	for n, kt := range nameAliases {
		m[n] = Key{Type: kt}
	}
	for r, n := range runeNames {
		m[n] = Rune(r)
	}
	m["backtab"] = Key{Type: KeyBackTab, Shift: true}
	return m
}

// ParseSpec parses a key description: zero or more modifiers (ctrl, alt,
// shift) followed by a key name or a single character, joined with "+".
// Modifier and key names are case-insensitive; a single character is taken
// as written, so "Q" and "q" are different keys.
func ParseSpec(spec string) (Key, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Key{}, fmt.Errorf("%w: empty key", ErrInvalidSpec)
	}
	if spec == "+" {
		return Rune('+'), nil
	}

	parts := strings.Split(spec, "+")
	last := parts[len(parts)-1]
	if last == "" {
		return Key{}, fmt.Errorf("%w %q: missing key after modifier", ErrInvalidSpec, spec)
	}

	var k Key
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(mod)) {
		case "ctrl", "control":
			k.Ctrl = true
		case "alt", "meta", "option":
			k.Alt = true
		case "shift":
			k.Shift = true
		default:
			return Key{}, fmt.Errorf("%w %q: unknown modifier %q", ErrInvalidSpec, spec, mod)
		}
	}

	base, err := parseKeyName(strings.TrimSpace(last))
	if err != nil {
		return Key{}, fmt.Errorf("%w %q: %v", ErrInvalidSpec, spec, err)
	}
	k.Type = base.Type
	k.Rune = base.Rune
	k.Shift = k.Shift || base.Shift

	if k.Type == KeyTab && k.Shift {
		k.Type = KeyBackTab
	}
	if k.Type != KeyRune {
		return k, nil
	}
	if k.Shift && !unicode.IsLetter(k.Rune) {
		return Key{}, fmt.Errorf("%w %q: shift has no effect on %q; write the shifted character instead", ErrInvalidSpec, spec, k.Rune)
	}
	if k.Ctrl {
		ck, ok := ctrlKey(k.Rune)
		if !ok {
			return Key{}, fmt.Errorf("%w %q: terminals send no control code for ctrl+%c", ErrInvalidSpec, spec, k.Rune)
		}
		ck.Alt = k.Alt
		return ck, nil
	}
	return normalizeShift(k), nil
}

// ctrlKey returns the key a terminal reports for ctrl+r. Ctrl+letter is
// one control byte whatever the shift state, and several of those bytes
// double as named keys: ctrl+m is Enter, ctrl+i Tab, ctrl+h Backspace and
// ctrl+[ Escape. Runes without a control byte report false.
func ctrlKey(r rune) (Key, bool) {
	r = unicode.ToLower(r)
	var b byte
	switch {
	case r >= 'a' && r <= 'z':
		b = byte(r-'a') + 0x01
	case r == ' ', r == '@':
		b = 0x00
	case r >= '[' && r <= '_':
		b = byte(r-'[') + 0x1b
	case r == '?':
		b = 0x7f
	default:
		return Key{}, false
	}
	return parseSingleByte(b), true
}

// MustParseSpec is like ParseSpec but panics on error. For key constants.
func MustParseSpec(spec string) Key {
	k, err := ParseSpec(spec)
	if err != nil {
		panic(err)
	}
	return k
}

func parseKeyName(name string) (Key, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if r == utf8.RuneError || !unicode.IsPrint(r) {
			return Key{}, fmt.Errorf("unprintable key %q", name)
		}
		return Rune(r), nil
	}
	if k, ok := specNames[strings.ToLower(name)]; ok {
		return k, nil
	}
	if s := Suggest(name); s != "" {
		return Key{}, fmt.Errorf("unknown key %q (did you mean %q?)", name, s)
	}
	return Key{}, fmt.Errorf("unknown key %q", name)
}

// Suggest returns the known key name closest to name, or "" when nothing
// resembles it.
func Suggest(name string) string {
	matches := fuzzy.Find(strings.ToLower(name), knownNames)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
