// ABOUTME: WatchSignals delivers termination signals to a callback until stopped.
// ABOUTME: Lets the owner unwind through its deferred Session.End instead of dying in raw mode.

package terminal

import (
	"os"
	"os/signal"
	"sync"
)

// WatchSignals invokes fn for every termination signal the platform can
// intercept (see terminationSignals). The returned stop func unsubscribes
// and waits for the watcher goroutine to exit; it is safe to call twice.
func WatchSignals(fn func(os.Signal)) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	exited := make(chan struct{})
	signal.Notify(sigCh, terminationSignals...)

	go func() {
		defer close(exited)
		for {
			select {
			case <-done:
				return
			case sig := <-sigCh:
				fn(sig)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
			<-exited
		})
	}
}

// ExitCodeForSignal returns the conventional 128+n shell status for sig,
// or 1 when the signal number is unknown.
func ExitCodeForSignal(sig os.Signal) int {
	if n, ok := signalNumber(sig); ok {
		return 128 + n
	}
	return 1
}
