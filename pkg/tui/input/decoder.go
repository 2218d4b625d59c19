// ABOUTME: Decoder splits raw terminal input into Events: keys, SGR/X10 mouse, focus, and bracketed paste.
// ABOUTME: decode reports n == 0 when the front of the buffer is an incomplete sequence.

package input

import (
	"bytes"
	"unicode/utf8"

	"github.com/mauromedda/kilo-go/pkg/tui/key"
)

const (
	esc = 0x1b

	pasteStart = "\x1b[200~"
	pasteEnd   = "\x1b[201~"

	// maxCSI bounds the bytes scanned for a CSI final byte; longer runs are
	// consumed as one unknown event.
	maxCSI = 64
	// maxSGRMouse bounds an SGR mouse report ("\x1b[<btn;x;yM").
	maxSGRMouse = 32
)

// decode parses one event from the front of p and returns the number of
// bytes it consumed. It returns n == 0 when p is empty or holds only the
// beginning of a sequence; the caller supplies more bytes and retries.
func decode(p []byte) (int, Event) {
	if len(p) == 0 {
		return 0, Event{}
	}
	if p[0] == esc {
		return decodeEscape(p)
	}
	if p[0] < utf8.RuneSelf {
		return 1, keyEvent(p[:1])
	}
	if !utf8.FullRune(p) {
		return 0, Event{}
	}
	r, size := utf8.DecodeRune(p)
	if r == utf8.RuneError {
		return size, unknownEvent(p[:size])
	}
	return size, keyEvent(p[:size])
}

// decodeEscape handles input starting with ESC. A lone ESC is incomplete
// here; the reader decides when it stands for the Escape key.
func decodeEscape(p []byte) (int, Event) {
	if len(p) < 2 {
		return 0, Event{}
	}
	switch p[1] {
	case '[':
		return decodeCSI(p)
	case 'O':
		if len(p) < 3 {
			return 0, Event{}
		}
		return 3, keyEvent(p[:3])
	case esc:
		// ESC ESC: the first one is a plain Escape; the second starts
		// whatever follows.
		return 1, Event{Kind: EventKey, Key: key.Key{Type: key.KeyEscape}}
	}

	// Alt+<key>: ESC followed by one byte or one UTF-8 rune.
	if p[1] < utf8.RuneSelf {
		return 2, keyEvent(p[:2])
	}
	if !utf8.FullRune(p[1:]) {
		return 0, Event{}
	}
	_, size := utf8.DecodeRune(p[1:])
	return 1 + size, keyEvent(p[:1+size])
}

// decodeCSI handles input starting with "ESC [".
func decodeCSI(p []byte) (int, Event) {
	if len(p) < 3 {
		return 0, Event{}
	}

	if bytes.HasPrefix(p, []byte(pasteStart)) {
		return decodePaste(p)
	}
	switch p[2] {
	case '<':
		return decodeSGRMouse(p)
	case 'M':
		return decodeX10Mouse(p)
	}

	// Parameter and intermediate bytes are 0x20-0x3F; the final byte is
	// 0x40-0x7E.
	limit := min(len(p), maxCSI)
	for i := 2; i < limit; i++ {
		b := p[i]
		switch {
		case b >= 0x40 && b <= 0x7e:
			return i + 1, csiEvent(p[:i+1])
		case b < 0x20 || b > 0x7e:
			// Interrupted sequence: drop what we have, resume at b.
			return i, unknownEvent(p[:i])
		}
	}
	if len(p) >= maxCSI {
		return maxCSI, unknownEvent(p[:maxCSI])
	}
	return 0, Event{}
}

func csiEvent(seq []byte) Event {
	params, final := seq[2:len(seq)-1], seq[len(seq)-1]
	if len(params) == 0 {
		switch final {
		case 'I':
			return Event{Kind: EventFocus, Focused: true}
		case 'O':
			return Event{Kind: EventFocus, Focused: false}
		}
	}
	return keyEvent(seq)
}

// decodePaste collects everything up to the paste end marker into one
// event. Until the end marker arrives the paste is incomplete.
func decodePaste(p []byte) (int, Event) {
	body := p[len(pasteStart):]
	end := bytes.Index(body, []byte(pasteEnd))
	if end < 0 {
		return 0, Event{}
	}
	n := len(pasteStart) + end + len(pasteEnd)
	return n, Event{Kind: EventPaste, Paste: string(body[:end])}
}

// decodeSGRMouse parses "ESC [ < btn ; x ; y M|m".
func decodeSGRMouse(p []byte) (int, Event) {
	end := -1
	limit := min(len(p), maxSGRMouse)
	for i := 3; i < limit; i++ {
		if p[i] == 'M' || p[i] == 'm' {
			end = i
			break
		}
	}
	if end < 0 {
		if len(p) >= maxSGRMouse {
			return maxSGRMouse, unknownEvent(p[:maxSGRMouse])
		}
		return 0, Event{}
	}

	btn, x, y, ok := parseSGRParams(p[3:end])
	if !ok {
		return end + 1, unknownEvent(p[:end+1])
	}
	m := mouseFromButton(btn, x-1, y-1)
	if p[end] == 'm' {
		m.Action = MouseRelease
	}
	return end + 1, Event{Kind: EventMouse, Mouse: m}
}

// decodeX10Mouse parses the legacy "ESC [ M b x y" report, each value
// offset by 32.
func decodeX10Mouse(p []byte) (int, Event) {
	if len(p) < 6 {
		return 0, Event{}
	}
	btn := int(p[3]) - 32
	x := int(p[4]) - 32 - 1
	y := int(p[5]) - 32 - 1
	m := mouseFromButton(btn, x, y)
	if btn&0x43 == 3 {
		m.Button = MouseNone
		m.Action = MouseRelease
	}
	return 6, Event{Kind: EventMouse, Mouse: m}
}

// mouseFromButton decodes the xterm button byte: bits 0-1 select the
// button, 4/8/16 are shift/alt/ctrl, 32 marks motion, 64 the wheel group
// and 128 the extra buttons.
func mouseFromButton(btn, x, y int) Mouse {
	m := Mouse{
		X:     max(x, 0),
		Y:     max(y, 0),
		Shift: btn&4 != 0,
		Alt:   btn&8 != 0,
		Ctrl:  btn&16 != 0,
	}
	low := btn & 3
	switch {
	case btn&128 != 0:
		m.Button = [...]MouseButton{MouseBack, MouseForward, MouseNone, MouseNone}[low]
	case btn&64 != 0:
		m.Button = [...]MouseButton{MouseWheelUp, MouseWheelDown, MouseWheelLeft, MouseWheelRight}[low]
	default:
		m.Button = [...]MouseButton{MouseLeft, MouseMiddle, MouseRight, MouseNone}[low]
	}
	if btn&32 != 0 {
		m.Action = MouseMotion
	}
	return m
}

// parseSGRParams extracts btn, x, y from "btn;x;y".
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	var vals [3]int
	field := 0
	digits := 0
	for _, b := range data {
		switch {
		case b == ';':
			if digits == 0 || field == 2 {
				return 0, 0, 0, false
			}
			field++
			digits = 0
		case b >= '0' && b <= '9':
			vals[field] = vals[field]*10 + int(b-'0')
			digits++
			if vals[field] > 9999 {
				return 0, 0, 0, false
			}
		default:
			return 0, 0, 0, false
		}
	}
	if field != 2 || digits == 0 {
		return 0, 0, 0, false
	}
	return vals[0], vals[1], vals[2], true
}

func keyEvent(seq []byte) Event {
	k := key.ParseKey(string(seq))
	if k.Type == key.KeyUnknown {
		return unknownEvent(seq)
	}
	return Event{Kind: EventKey, Key: k}
}

func unknownEvent(seq []byte) Event {
	return Event{Kind: EventUnknown, Raw: string(seq)}
}
