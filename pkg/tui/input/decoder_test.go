// ABOUTME: Table-driven tests for decode: keys, mouse reports, focus, paste, and incomplete input.
// ABOUTME: Each case checks the consumed byte count as well as the decoded event.

package input

import (
	"strings"
	"testing"

	"github.com/mauromedda/kilo-go/pkg/tui/key"
)

func keyEv(k key.Key) Event { return Event{Kind: EventKey, Key: k} }

func mouseEv(m Mouse) Event { return Event{Kind: EventMouse, Mouse: m} }

func x10(btn, col, row int) string {
	return "\x1b[M" + string([]byte{byte(32 + btn), byte(32 + col), byte(32 + row)})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		data  string
		wantN int
		want  Event
	}{
		{"rune", "q", 1, keyEv(key.Rune('q'))},
		{"rune then more", "qx", 1, keyEv(key.Rune('q'))},
		{"utf8 rune", "é!", 2, keyEv(key.Rune('é'))},
		{"ctrl letter", "\x11", 1, keyEv(key.Ctrl('q'))},
		{"enter", "\r", 1, keyEv(key.Key{Type: key.KeyEnter})},
		{"arrow", "\x1b[A", 3, keyEv(key.Key{Type: key.KeyUp})},
		{"arrow with modifier", "\x1b[1;5C", 6, keyEv(key.Key{Type: key.KeyRight, Ctrl: true})},
		{"ss3", "\x1bOP", 3, keyEv(key.Key{Type: key.KeyF1})},
		{"alt rune", "\x1bq", 2, keyEv(key.Key{Type: key.KeyRune, Rune: 'q', Alt: true})},
		{"alt utf8", "\x1bé", 3, keyEv(key.Key{Type: key.KeyRune, Rune: 'é', Alt: true})},
		{"double escape", "\x1b\x1b[A", 1, keyEv(key.Key{Type: key.KeyEscape})},
		{"kitty ctrl+q", "\x1b[113;5u", 8, keyEv(key.Ctrl('q'))},
		{"focus in", "\x1b[I", 3, Event{Kind: EventFocus, Focused: true}},
		{"focus out", "\x1b[O", 3, Event{Kind: EventFocus, Focused: false}},
		{"paste", "\x1b[200~hi\x1b[Athere\x1b[201~q", 22, Event{Kind: EventPaste, Paste: "hi\x1b[Athere"}},
		{"empty paste", "\x1b[200~\x1b[201~", 12, Event{Kind: EventPaste}},
		{"sgr left press", "\x1b[<0;10;5M", 10, mouseEv(Mouse{X: 9, Y: 4, Button: MouseLeft, Action: MousePress})},
		{"sgr left release", "\x1b[<0;10;5m", 10, mouseEv(Mouse{X: 9, Y: 4, Button: MouseLeft, Action: MouseRelease})},
		{"sgr right press", "\x1b[<2;1;1M", 9, mouseEv(Mouse{Button: MouseRight})},
		{"sgr drag", "\x1b[<32;3;4M", 10, mouseEv(Mouse{X: 2, Y: 3, Button: MouseLeft, Action: MouseMotion})},
		{"sgr move", "\x1b[<35;1;1M", 10, mouseEv(Mouse{Button: MouseNone, Action: MouseMotion})},
		{"sgr wheel up", "\x1b[<64;1;1M", 10, mouseEv(Mouse{Button: MouseWheelUp})},
		{"sgr wheel down", "\x1b[<65;1;1M", 10, mouseEv(Mouse{Button: MouseWheelDown})},
		{"sgr back button", "\x1b[<128;1;1M", 11, mouseEv(Mouse{Button: MouseBack})},
		{"sgr ctrl click", "\x1b[<16;1;1M", 10, mouseEv(Mouse{Button: MouseLeft, Ctrl: true})},
		{"sgr shift alt click", "\x1b[<12;1;1M", 10, mouseEv(Mouse{Button: MouseLeft, Shift: true, Alt: true})},
		{"x10 press", x10(0, 10, 5), 6, mouseEv(Mouse{X: 9, Y: 4, Button: MouseLeft})},
		{"x10 release", x10(3, 10, 5), 6, mouseEv(Mouse{X: 9, Y: 4, Button: MouseNone, Action: MouseRelease})},
		{"sgr malformed", "\x1b[<0;xM", 7, Event{Kind: EventUnknown, Raw: "\x1b[<0;xM"}},
		{"sgr missing field", "\x1b[<0;1M", 7, Event{Kind: EventUnknown, Raw: "\x1b[<0;1M"}},
		{"unknown tilde", "\x1b[99~", 5, Event{Kind: EventUnknown, Raw: "\x1b[99~"}},
		{"kitty release", "\x1b[113;1:3u", 10, Event{Kind: EventUnknown, Raw: "\x1b[113;1:3u"}},
		{"interrupted csi", "\x1b[1;\x1b[A", 4, Event{Kind: EventUnknown, Raw: "\x1b[1;"}},
		{"invalid utf8", "\xff", 1, Event{Kind: EventUnknown, Raw: "\xff"}},
		{"stray continuation", "\x80a", 1, Event{Kind: EventUnknown, Raw: "\x80"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n, got := decode([]byte(tt.data))
			if n != tt.wantN {
				t.Errorf("decode(%q) consumed %d; want %d", tt.data, n, tt.wantN)
			}
			if got != tt.want {
				t.Errorf("decode(%q) = %+v; want %+v", tt.data, got, tt.want)
			}
		})
	}
}

func TestDecodeIncomplete(t *testing.T) {
	t.Parallel()

	for _, data := range []string{
		"",
		"\x1b",
		"\x1b[",
		"\x1b[1;5",
		"\x1bO",
		"\x1b[<0;10",
		"\x1b[M ",
		"\x1b[200~partial paste",
		"\x1b[20",
		"\xe4\xb8",
		"\x1b\xc3",
	} {
		if n, ev := decode([]byte(data)); n != 0 {
			t.Errorf("decode(%q) = %d, %+v; want incomplete", data, n, ev)
		}
	}
}

func TestDecodeOverlongCSI(t *testing.T) {
	t.Parallel()

	data := "\x1b[" + strings.Repeat("1", 100) + "A"
	n, ev := decode([]byte(data))
	if n != maxCSI {
		t.Errorf("consumed %d; want %d", n, maxCSI)
	}
	if ev.Kind != EventUnknown {
		t.Errorf("kind = %v; want unknown", ev.Kind)
	}
}

func TestEventString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ev   Event
		want string
	}{
		{keyEv(key.Ctrl('q')), "key ctrl+q"},
		{Event{Kind: EventFocus, Focused: true}, "focus in"},
		{Event{Kind: EventFocus}, "focus out"},
		{Event{Kind: EventPaste, Paste: "abc"}, "paste 3 bytes"},
		{mouseEv(Mouse{X: 1, Y: 2, Button: MouseLeft, Action: MouseRelease, Ctrl: true}), "mouse ctrl+left release at 1,2"},
		{Event{Raw: "\x1b[99~"}, `unknown "\x1b[99~"`},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q; want %q", got, tt.want)
		}
	}
}
