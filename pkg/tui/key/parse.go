// ABOUTME: ParseKey decodes a single complete input sequence into a Key.
// ABOUTME: Covers C0 controls, UTF-8 runes, Alt (ESC-prefixed) keys, SS3, and CSI via parseCSI.

package key

import (
	"unicode"
	"unicode/utf8"
)

// ParseKey parses one complete key sequence (as delimited by the input
// decoder) into a Key. Unrecognized data yields KeyUnknown.
func ParseKey(data string) Key {
	if len(data) == 0 {
		return Key{Type: KeyUnknown}
	}

	if data[0] != 0x1b {
		if len(data) == 1 {
			return parseSingleByte(data[0])
		}
		r, size := utf8.DecodeRuneInString(data)
		if r == utf8.RuneError || size != len(data) {
			return Key{Type: KeyUnknown}
		}
		return Rune(r)
	}

	if len(data) == 1 {
		return Key{Type: KeyEscape}
	}

	switch data[1] {
	case '[':
		return parseCSI(data[2:])
	case 'O':
		if len(data) == 3 {
			return parseSS3(data[2])
		}
	}

	// Alt+<key>: ESC followed by one complete non-escape key.
	k := ParseKey(data[1:])
	if k.Type == KeyUnknown || data[1] == 0x1b {
		return Key{Type: KeyUnknown}
	}
	k.Alt = true
	return k
}

// parseSingleByte handles a single-byte input (ASCII or control character).
func parseSingleByte(b byte) Key {
	switch {
	case b == 0x0d, b == 0x0a:
		return Key{Type: KeyEnter}
	case b == 0x09:
		return Key{Type: KeyTab}
	case b == 0x7f, b == 0x08:
		return Key{Type: KeyBackspace}
	case b == 0x1b:
		return Key{Type: KeyEscape}
	case b == 0x00:
		return Ctrl(' ')
	case b >= 0x01 && b <= 0x1a:
		return Ctrl(rune('a' + b - 1))
	case b >= 0x1c && b <= 0x1f:
		return Ctrl(rune('\\' + b - 0x1c))
	case b >= 0x20 && b <= 0x7e:
		return Rune(rune(b))
	}
	return Key{Type: KeyUnknown}
}

// ss3Keys maps the final byte of ESC O <x> sequences (application cursor
// mode and F1-F4) to key types.
var ss3Keys = map[byte]KeyType{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

func parseSS3(b byte) Key {
	if kt, ok := ss3Keys[b]; ok {
		return Key{Type: kt}
	}
	return Key{Type: KeyUnknown}
}

// normalizeShift folds Shift+<letter> into the upper-case rune, which is
// what a terminal without key disambiguation sends for the same keystroke.
func normalizeShift(k Key) Key {
	if k.Type == KeyRune && k.Shift && !k.Ctrl && unicode.IsLetter(k.Rune) {
		k.Rune = unicode.ToUpper(k.Rune)
		k.Shift = false
	}
	return k
}
