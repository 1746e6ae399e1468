// Package serial runs the embsh shell over a serial (UART) link.
package serial

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"pkt.systems/embsh"
	"pkt.systems/embsh/editor"
	"pkt.systems/embsh/internal/logx"
	"pkt.systems/embsh/internal/termctl"
	"pkt.systems/pslog"
)

const (
	// DefaultDevice is opened when Config.Device is empty.
	DefaultDevice = "/dev/ttyS0"
	// DefaultBaud is used when Config.Baud is zero.
	DefaultBaud = 115200
	// DefaultPrompt is used when Config.Prompt is empty.
	DefaultPrompt = "embsh> "
)

// Config configures the serial shell.
type Config struct {
	// Device is the serial device path, opened read/write and
	// non-controlling.
	Device string
	// Baud must be one of the eight supported rates: 9600, 19200,
	// 38400, 57600, 115200, 230400, 460800, 921600.
	Baud   int
	Prompt string
	// Override bypasses open and line configuration with a pre-opened
	// descriptor. Tests inject a PTY here.
	Override *os.File

	Registry *embsh.Registry
	Logger   pslog.Logger
}

// Shell is a single-session serial transport around the line editor.
type Shell struct {
	cfg     Config
	sess    editor.Session
	running atomic.Bool
	done    chan struct{}
	dev     *os.File
	ownsDev bool
	log     pslog.Logger
}

// New returns an unstarted serial shell.
func New(cfg Config) *Shell {
	return &Shell{cfg: cfg}
}

// Start opens and configures the device (unless overridden) and
// spawns the session goroutine.
func (u *Shell) Start() error {
	if u.running.Load() {
		return embsh.ErrAlreadyRunning
	}
	if u.cfg.Device == "" {
		u.cfg.Device = DefaultDevice
	}
	if u.cfg.Baud == 0 {
		u.cfg.Baud = DefaultBaud
	}
	if u.cfg.Prompt == "" {
		u.cfg.Prompt = DefaultPrompt
	}
	u.log = u.cfg.Logger
	if u.log == nil {
		u.log = pslog.Ctx(context.Background())
	}

	if u.cfg.Override != nil {
		u.dev = u.cfg.Override
		u.ownsDev = false
	} else {
		if _, ok := termctl.SerialSpeed(u.cfg.Baud); !ok {
			return fmt.Errorf("%w: baud rate %d", embsh.ErrInvalidArgument, u.cfg.Baud)
		}
		// O_NONBLOCK lets os.NewFile register the descriptor with the
		// runtime poller, so read deadlines apply and Close wakes a
		// pending read.
		fd, err := unix.Open(u.cfg.Device, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
		if err != nil {
			return fmt.Errorf("%w: open %s: %v", embsh.ErrDeviceOpenFailed, u.cfg.Device, err)
		}
		if err := termctl.ConfigureSerial(fd, u.cfg.Baud); err != nil {
			_ = unix.Close(fd)
			return fmt.Errorf("%w: %s: %v", embsh.ErrDeviceOpenFailed, u.cfg.Device, err)
		}
		u.dev = os.NewFile(uintptr(fd), u.cfg.Device)
		u.ownsDev = true
	}

	sess := &u.sess
	sess.Reset()
	sess.In = u.dev
	sess.Out = u.dev
	sess.Telnet = false
	sess.Registry = u.cfg.Registry
	sess.Activate()

	u.running.Store(true)
	u.done = make(chan struct{})
	go func() {
		defer close(u.done)
		sess.Drive(u.cfg.Prompt, u.running.Load)
	}()
	logx.WithDevice(u.log, u.cfg.Device).Info("serial shell started", "baud", u.cfg.Baud, "override", !u.ownsDev)
	return nil
}

// IsRunning reports whether the shell is started.
func (u *Shell) IsRunning() bool { return u.running.Load() }

// Stop ends the session and closes the device iff the shell opened
// it. Idempotent.
func (u *Shell) Stop() {
	if !u.running.Swap(false) {
		return
	}
	u.sess.Deactivate()
	if u.ownsDev && u.dev != nil {
		// Closing the descriptor also unblocks a pending read.
		_ = u.dev.Close()
		u.dev = nil
	}
	<-u.done
	u.done = nil
	logx.WithDevice(u.log, u.cfg.Device).Info("serial shell stopped")
}
