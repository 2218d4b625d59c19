// ABOUTME: CSI key sequence parser: legacy cursor keys, xterm modifier parameters, and Kitty CSI u.
// ABOUTME: Modifier parameters use the xterm encoding (1 + bitmask of shift, alt, ctrl).

package key

import "strconv"

// Modifier bitmask values (encoded as modifiers+1 on the wire).
const (
	modShift = 1 << iota
	modAlt
	modCtrl
)

// Kitty event type for key release; releases are not key presses.
const kittyRelease = 3

// letterKeys maps CSI final bytes to key types.
var letterKeys = map[byte]KeyType{
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

// tildeKeys maps CSI <number> ~ codes to key types.
var tildeKeys = map[int]KeyType{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// parseCSI parses the part of a CSI sequence after "ESC [": parameter
// bytes followed by one final byte.
func parseCSI(body string) Key {
	if body == "" {
		return Key{Type: KeyUnknown}
	}
	params, final := body[:len(body)-1], body[len(body)-1]

	switch final {
	case 'u':
		return parseKittyU(params)
	case '~':
		return parseTilde(params)
	case 'Z':
		if params == "" {
			return Key{Type: KeyBackTab, Shift: true}
		}
	}

	kt, ok := letterKeys[final]
	if !ok {
		return Key{Type: KeyUnknown}
	}
	k := Key{Type: kt}
	if params == "" {
		return k
	}
	// CSI 1 ; <modifiers> <letter>
	_, modStr := splitOn(params, ';')
	mods, event, ok := parseModifiers(modStr)
	if !ok || event == kittyRelease {
		return Key{Type: KeyUnknown}
	}
	applyModifiers(&k, mods)
	return k
}

// parseTilde handles CSI <number> [; <modifiers>] ~.
func parseTilde(params string) Key {
	numStr, modStr := splitOn(params, ';')
	num, err := strconv.Atoi(numStr)
	if err != nil {
		return Key{Type: KeyUnknown}
	}
	kt, ok := tildeKeys[num]
	if !ok {
		return Key{Type: KeyUnknown}
	}
	mods, event, ok := parseModifiers(modStr)
	if !ok || event == kittyRelease {
		return Key{Type: KeyUnknown}
	}
	k := Key{Type: kt}
	applyModifiers(&k, mods)
	return k
}

// parseKittyU handles CSI <codepoint>[:<alternates>] [; <modifiers>[:<event>]] u.
func parseKittyU(params string) Key {
	cpStr, modStr := splitOn(params, ';')
	cpStr, _ = splitOn(cpStr, ':')
	cp, err := strconv.Atoi(cpStr)
	if err != nil || cp < 0 {
		return Key{Type: KeyUnknown}
	}
	mods, event, ok := parseModifiers(modStr)
	if !ok || event == kittyRelease {
		return Key{Type: KeyUnknown}
	}

	var k Key
	switch cp {
	case 13:
		k = Key{Type: KeyEnter}
	case 9:
		k = Key{Type: KeyTab}
		if mods&modShift != 0 {
			k = Key{Type: KeyBackTab}
		}
	case 127, 8:
		k = Key{Type: KeyBackspace}
	case 27:
		k = Key{Type: KeyEscape}
	default:
		k = Rune(rune(cp))
	}
	applyModifiers(&k, mods)
	return normalizeShift(k)
}

// parseModifiers decodes "<modifiers>[:<event>]". An empty string means
// no modifiers and a press event.
func parseModifiers(s string) (mods, event int, ok bool) {
	if s == "" {
		return 0, 0, true
	}
	modStr, eventStr := splitOn(s, ':')
	v, err := strconv.Atoi(modStr)
	if err != nil || v < 1 {
		return 0, 0, false
	}
	if eventStr != "" {
		event, err = strconv.Atoi(eventStr)
		if err != nil {
			return 0, 0, false
		}
	}
	return v - 1, event, true
}

// applyModifiers sets the modifier flags on k from the decoded bitmask.
func applyModifiers(k *Key, mods int) {
	if mods&modShift != 0 {
		k.Shift = true
	}
	if mods&modAlt != 0 {
		k.Alt = true
	}
	if mods&modCtrl != 0 {
		k.Ctrl = true
	}
}

// splitOn splits s into at most two parts on the first sep.
func splitOn(s string, sep byte) (string, string) {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}
