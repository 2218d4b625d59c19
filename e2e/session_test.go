//go:build unix

// ABOUTME: E2E tests for the full program: drawing, quit key, signals, and terminal restoration
// ABOUTME: Each test runs the real binary in a 40x10 PTY

package e2e

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

const waitTimeout = 5 * time.Second

func TestSession_QuitKeyExitsCleanly(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := startKilo(t)
	defer s.close()

	s.expectStringTimeout(t, ansi.SetAltScreenSaveCursorMode, waitTimeout)
	s.expectStringTimeout(t, "~", waitTimeout)

	// Other keys redraw without quitting.
	s.send(t, "x")
	s.send(t, "Q")
	time.Sleep(200 * time.Millisecond)
	if s.exited() {
		t.Fatal("exited on a key other than q")
	}

	s.send(t, "q")
	if code := s.waitExit(t, waitTimeout); code != 0 {
		t.Errorf("exit code = %d; want 0", code)
	}

	out := s.output()
	if !strings.Contains(out, ansi.ResetAltScreenSaveCursorMode) {
		t.Error("alternate screen was not left on exit")
	}
	if strings.Count(out, "~") < 3*10 {
		t.Errorf("expected at least three 10-row frames, got %d rows", strings.Count(out, "~"))
	}
}

func TestSession_CustomQuitKey(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := startKilo(t, "-quit-key", "ctrl+c")
	defer s.close()

	s.expectStringTimeout(t, "~", waitTimeout)

	s.send(t, "q")
	time.Sleep(200 * time.Millisecond)
	if s.exited() {
		t.Fatal("plain q must not quit when the quit key is ctrl+c")
	}

	// Raw mode delivers Ctrl+C as a byte, not SIGINT.
	s.send(t, "\x03")
	if code := s.waitExit(t, waitTimeout); code != 0 {
		t.Errorf("exit code = %d; want 0", code)
	}
}

func TestSession_SIGTERMRestoresTerminal(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := startKilo(t)
	defer s.close()

	s.expectStringTimeout(t, "~", waitTimeout)
	if err := s.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		t.Fatalf("signal: %v", err)
	}

	if code := s.waitExit(t, waitTimeout); code != 128+int(syscall.SIGTERM) {
		t.Errorf("exit code = %d; want %d", code, 128+int(syscall.SIGTERM))
	}
	if !strings.Contains(s.output(), ansi.ResetAltScreenSaveCursorMode) {
		t.Error("alternate screen was not left after SIGTERM")
	}
}

func TestSession_StatusBar(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := startKilo(t, "-status", "-no-mouse")
	defer s.close()

	s.expectStringTimeout(t, "kilo-go dev", waitTimeout)
	if strings.Contains(s.output(), ansi.SetAnyEventMouseMode) {
		t.Error("-no-mouse still enabled mouse capture")
	}
	s.send(t, "q")
	s.waitExit(t, waitTimeout)
}

func TestSession_ProjectConfigQuitKey(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	cmd := isolatedCmd(t)
	dir := filepath.Join(cmd.Dir, ".kilo-go")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("quit_key: ctrl+x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := startCmd(t, cmd)
	defer s.close()

	s.expectStringTimeout(t, "~", waitTimeout)
	s.send(t, "q")
	time.Sleep(200 * time.Millisecond)
	if s.exited() {
		t.Fatal("plain q must not quit when the config sets ctrl+x")
	}
	s.send(t, "\x18")
	if code := s.waitExit(t, waitTimeout); code != 0 {
		t.Errorf("exit code = %d; want 0", code)
	}
}

func TestSession_NotATerminal(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	cmd := isolatedCmd(t)
	var stderr bytes.Buffer
	cmd.Stdin = nil // /dev/null
	cmd.Stderr = &stderr
	err := cmd.Run()
	if cmd.ProcessState == nil || cmd.ProcessState.ExitCode() != 1 {
		t.Fatalf("run: %v; want exit code 1", err)
	}
	if !strings.Contains(stderr.String(), "not a terminal") {
		t.Errorf("stderr = %q; want a not-a-terminal error", stderr.String())
	}
}
