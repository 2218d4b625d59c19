//go:build unix

package terminal

import (
	"os"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestWatchSignals_DeliversAndStops(t *testing.T) {
	got := make(chan os.Signal, 1)
	stop := WatchSignals(func(sig os.Signal) { got <- sig })
	defer stop()

	if err := unix.Kill(os.Getpid(), unix.SIGHUP); err != nil {
		t.Fatalf("kill: %v", err)
	}

	select {
	case sig := <-got:
		if sig != unix.SIGHUP {
			t.Errorf("got %v, want SIGHUP", sig)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("signal not delivered")
	}

	stop()
	stop() // second call must not block or panic
}

func TestExitCodeForSignal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sig  os.Signal
		want int
	}{
		{sig: unix.SIGINT, want: 130},
		{sig: unix.SIGTERM, want: 143},
		{sig: unix.SIGHUP, want: 129},
	}
	for _, tt := range tests {
		if got := ExitCodeForSignal(tt.sig); got != tt.want {
			t.Errorf("ExitCodeForSignal(%v) = %d, want %d", tt.sig, got, tt.want)
		}
	}
}
