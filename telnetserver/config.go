package telnetserver

import (
	"net"

	"pkt.systems/embsh"
	"pkt.systems/pslog"
)

const (
	// SessionCap is the compile-time ceiling on concurrent sessions.
	SessionCap = 8
	// DefaultPort is the telnet listen port.
	DefaultPort = 2323
	// DefaultPrompt is used when Config.Prompt is empty.
	DefaultPrompt = "embsh> "
	// DefaultBanner greets a connecting client before the prompt.
	DefaultBanner = "\r\n=== embsh v0.1.0 ===\r\n\r\n"
)

// Config configures the telnet server. The zero value listens on
// DefaultPort with the default prompt and banner and no
// authentication.
type Config struct {
	// Port is the IPv4 listen port. Ignored when Listener is set.
	Port int
	// MaxSessions caps concurrent sessions, at most SessionCap.
	MaxSessions int
	// Prompt is emitted before every input line.
	Prompt string
	// Banner is sent at connect, before the prompt. Empty selects
	// DefaultBanner; set NoBanner to suppress it entirely.
	Banner   string
	NoBanner bool

	// Username plus Password or PasswordHash enable the login gate.
	// PasswordHash takes precedence and is verified with bcrypt.
	Username     string
	Password     string
	PasswordHash string

	// Listener overrides Port with a pre-bound listener. Tests use it
	// to listen on an ephemeral loopback port.
	Listener net.Listener

	// Registry resolves commands; nil selects embsh.Default().
	Registry *embsh.Registry
	// Logger receives lifecycle events; nil selects the pslog default.
	Logger pslog.Logger
}

func (c *Config) applyDefaults() {
	if c.Port <= 0 {
		c.Port = DefaultPort
	}
	if c.MaxSessions <= 0 || c.MaxSessions > SessionCap {
		c.MaxSessions = SessionCap
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.Banner == "" && !c.NoBanner {
		c.Banner = DefaultBanner
	}
	if c.NoBanner {
		c.Banner = ""
	}
}
