package serial

import (
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/creack/pty"

	"pkt.systems/embsh"
)

func openPty(t *testing.T) (master, tty *os.File) {
	t.Helper()
	master, tty, err := pty.Open()
	if err != nil {
		t.Fatalf("pty open: %v", err)
	}
	t.Cleanup(func() {
		_ = master.Close()
		_ = tty.Close()
	})
	return master, tty
}

func readUntil(t *testing.T, f *os.File, want string) string {
	t.Helper()
	var got strings.Builder
	buf := make([]byte, 256)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		_ = f.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		n, err := f.Read(buf)
		if n > 0 {
			got.Write(buf[:n])
			if strings.Contains(got.String(), want) {
				return got.String()
			}
		}
		if err != nil && !errors.Is(err, os.ErrDeadlineExceeded) {
			break
		}
	}
	t.Fatalf("did not receive %q, transcript: %q", want, got.String())
	return ""
}

func TestStartStopWithPtyOverride(t *testing.T) {
	master, tty := openPty(t)

	sh := New(Config{
		Override: tty,
		Prompt:   "uart> ",
		Registry: embsh.New(),
	})
	if err := sh.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !sh.IsRunning() {
		t.Fatalf("expected running")
	}
	readUntil(t, master, "uart> ")

	sh.Stop()
	if sh.IsRunning() {
		t.Fatalf("expected stopped")
	}
}

func TestCommandExecutionOverPty(t *testing.T) {
	reg := embsh.New()
	var ran atomic.Bool
	err := reg.Register("uarttest", func(inv *embsh.Invocation) int {
		ran.Store(true)
		return 0
	}, nil, "uart test")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	master, tty := openPty(t)
	sh := New(Config{Override: tty, Registry: reg})
	if err := sh.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer sh.Stop()
	readUntil(t, master, DefaultPrompt)

	if _, err := master.WriteString("uarttest\r"); err != nil {
		t.Fatalf("write: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for !ran.Load() {
		if time.Now().After(deadline) {
			t.Fatalf("command did not run")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStartTwice(t *testing.T) {
	_, tty := openPty(t)
	sh := New(Config{Override: tty, Registry: embsh.New()})
	if err := sh.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer sh.Stop()
	if err := sh.Start(); !errors.Is(err, embsh.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestInvalidDevice(t *testing.T) {
	sh := New(Config{Device: "/dev/nonexistent_serial_port_xyz"})
	if err := sh.Start(); !errors.Is(err, embsh.ErrDeviceOpenFailed) {
		t.Fatalf("expected ErrDeviceOpenFailed, got %v", err)
	}
}

func TestInvalidBaudRate(t *testing.T) {
	sh := New(Config{Device: "/dev/null", Baud: 12345})
	if err := sh.Start(); !errors.Is(err, embsh.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestStopWhenNotRunning(t *testing.T) {
	sh := New(Config{})
	sh.Stop()
	if sh.IsRunning() {
		t.Fatalf("expected not running")
	}
}

func TestOverrideDeviceNotClosedOnStop(t *testing.T) {
	master, tty := openPty(t)
	sh := New(Config{Override: tty, Registry: embsh.New()})
	if err := sh.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	readUntil(t, master, DefaultPrompt)
	sh.Stop()

	// The injected descriptor must remain usable by its owner.
	if _, err := tty.WriteString("still open"); err != nil {
		t.Fatalf("override descriptor was closed: %v", err)
	}
}
