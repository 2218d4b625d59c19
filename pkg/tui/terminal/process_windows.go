// ABOUTME: Windows stub for ProcessTerminal resize handling.
// ABOUTME: Windows has no SIGWINCH; size is only sampled at startup.

//go:build windows

package terminal

// startResizeListener is a no-op on Windows.
func (t *ProcessTerminal) startResizeListener() func() {
	return func() {}
}
