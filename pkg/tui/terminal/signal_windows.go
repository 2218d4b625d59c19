//go:build windows

package terminal

import "os"

var terminationSignals = []os.Signal{os.Interrupt}

func signalNumber(sig os.Signal) (int, bool) {
	if sig == os.Interrupt {
		return 2, true
	}
	return 0, false
}
