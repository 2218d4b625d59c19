// ABOUTME: Process-wide active theme behind an atomic pointer
// ABOUTME: Set at startup from config; composers read it on every frame

package theme

import "sync/atomic"

var current atomic.Pointer[Theme]

func init() {
	current.Store(Builtin("default"))
}

// Current returns the active theme. Never returns nil.
func Current() *Theme {
	return current.Load()
}

// Set replaces the active theme. A nil theme restores the default.
func Set(t *Theme) {
	if t == nil {
		t = Builtin("default")
	}
	current.Store(t)
}
