// Package console runs the embsh shell on the local terminal, or on
// any pair of byte-stream descriptors.
package console

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"

	"pkt.systems/embsh"
	"pkt.systems/embsh/editor"
	"pkt.systems/embsh/internal/termctl"
	"pkt.systems/pslog"
)

// DefaultPrompt is used when Config.Prompt is empty.
const DefaultPrompt = "embsh> "

// Config configures the console shell. The zero value reads stdin,
// writes stdout, and applies raw mode when stdin is a terminal.
type Config struct {
	Prompt string
	// In and Out default to os.Stdin and os.Stdout. Tests may pass
	// pipe ends; raw-mode setup is skipped for non-terminals.
	In  *os.File
	Out *os.File
	// NoRawMode leaves the terminal attributes untouched.
	NoRawMode bool

	Registry *embsh.Registry
	Logger   pslog.Logger
}

// Shell is a single-session console transport around the line editor.
type Shell struct {
	cfg     Config
	sess    editor.Session
	running atomic.Bool
	done    chan struct{}
	raw     *termctl.State
	log     pslog.Logger
}

// New returns an unstarted console shell.
func New(cfg Config) *Shell {
	return &Shell{cfg: cfg}
}

func (c *Shell) init() {
	if c.cfg.Prompt == "" {
		c.cfg.Prompt = DefaultPrompt
	}
	if c.cfg.In == nil {
		c.cfg.In = os.Stdin
	}
	if c.cfg.Out == nil {
		c.cfg.Out = os.Stdout
	}
	c.log = c.cfg.Logger
	if c.log == nil {
		c.log = pslog.Ctx(context.Background())
	}

	if !c.cfg.NoRawMode && isatty.IsTerminal(c.cfg.In.Fd()) {
		st, err := termctl.MakeRaw(int(c.cfg.In.Fd()))
		if err != nil {
			c.log.Warn("console raw mode unavailable", "err", err)
		} else {
			c.raw = st
		}
	}

	sess := &c.sess
	sess.Reset()
	sess.In = c.cfg.In
	sess.Out = c.cfg.Out
	sess.Telnet = false
	sess.Registry = c.cfg.Registry
	sess.Activate()
}

func (c *Shell) restore() {
	if c.raw != nil {
		if err := c.raw.Restore(); err != nil {
			c.log.Warn("console restore failed", "err", err)
		}
		c.raw = nil
	}
}

// Run drives the shell on the calling goroutine until the session
// ends (Ctrl-D, exit, or EOF), then restores the terminal.
func (c *Shell) Run() error {
	if c.running.Swap(true) {
		return embsh.ErrAlreadyRunning
	}
	c.init()
	c.log.Info("console shell started")
	c.sess.Drive(c.cfg.Prompt, c.running.Load)
	c.restore()
	c.running.Store(false)
	c.log.Info("console shell stopped")
	return nil
}

// Start runs the shell in a background goroutine.
func (c *Shell) Start() error {
	if c.running.Swap(true) {
		return embsh.ErrAlreadyRunning
	}
	c.init()
	c.done = make(chan struct{})
	go func() {
		defer close(c.done)
		c.sess.Drive(c.cfg.Prompt, c.running.Load)
	}()
	c.log.Info("console shell started")
	return nil
}

// IsRunning reports whether the shell is started.
func (c *Shell) IsRunning() bool { return c.running.Load() }

// Stop ends a background shell and restores the terminal. Idempotent.
func (c *Shell) Stop() {
	if !c.running.Swap(false) {
		return
	}
	c.sess.Deactivate()
	if c.done == nil {
		// Blocking Run restores the terminal itself on exit.
		return
	}
	<-c.done
	c.done = nil
	c.restore()
	c.log.Info("console shell stopped")
}
