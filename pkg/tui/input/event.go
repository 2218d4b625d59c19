// ABOUTME: Event is one decoded unit of terminal input: a key press, mouse report, focus change, or paste.
// ABOUTME: Mouse buttons and actions follow the xterm SGR report encoding.

package input

import (
	"fmt"

	"github.com/mauromedda/kilo-go/pkg/tui/key"
)

// EventKind discriminates the payload carried by an Event.
type EventKind int

const (
	EventUnknown EventKind = iota // unrecognized or malformed input
	EventKey
	EventMouse
	EventFocus
	EventPaste
)

func (k EventKind) String() string {
	switch k {
	case EventKey:
		return "key"
	case EventMouse:
		return "mouse"
	case EventFocus:
		return "focus"
	case EventPaste:
		return "paste"
	default:
		return "unknown"
	}
}

// Event is a decoded input event. Only the field matching Kind is set.
type Event struct {
	Kind    EventKind
	Key     key.Key
	Mouse   Mouse
	Focused bool   // EventFocus: true on focus gained
	Paste   string // EventPaste: pasted text without the paste markers
	Raw     string // EventUnknown: the bytes that could not be decoded
}

func (e Event) String() string {
	switch e.Kind {
	case EventKey:
		return "key " + e.Key.String()
	case EventMouse:
		return "mouse " + e.Mouse.String()
	case EventFocus:
		if e.Focused {
			return "focus in"
		}
		return "focus out"
	case EventPaste:
		return fmt.Sprintf("paste %d bytes", len(e.Paste))
	default:
		return fmt.Sprintf("unknown %q", e.Raw)
	}
}

// MouseButton identifies the button in a mouse report.
type MouseButton uint8

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
	MouseWheelLeft
	MouseWheelRight
	MouseBack
	MouseForward
)

var mouseButtonNames = [...]string{
	MouseNone:       "none",
	MouseLeft:       "left",
	MouseMiddle:     "middle",
	MouseRight:      "right",
	MouseWheelUp:    "wheelup",
	MouseWheelDown:  "wheeldown",
	MouseWheelLeft:  "wheelleft",
	MouseWheelRight: "wheelright",
	MouseBack:       "back",
	MouseForward:    "forward",
}

func (b MouseButton) String() string {
	if int(b) < len(mouseButtonNames) {
		return mouseButtonNames[b]
	}
	return "none"
}

// MouseAction is what happened to the button.
type MouseAction uint8

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion // pointer moved; Button is set when dragging
)

func (a MouseAction) String() string {
	switch a {
	case MousePress:
		return "press"
	case MouseRelease:
		return "release"
	case MouseMotion:
		return "motion"
	default:
		return "none"
	}
}

// Mouse is a mouse report with zero-based cell coordinates.
type Mouse struct {
	X, Y   int
	Button MouseButton
	Action MouseAction
	Shift  bool
	Alt    bool
	Ctrl   bool
}

func (m Mouse) String() string {
	mods := ""
	if m.Ctrl {
		mods += "ctrl+"
	}
	if m.Alt {
		mods += "alt+"
	}
	if m.Shift {
		mods += "shift+"
	}
	return fmt.Sprintf("%s%s %s at %d,%d", mods, m.Button, m.Action, m.X, m.Y)
}
