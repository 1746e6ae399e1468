// Package editor implements the byte-driven line editor shared by all
// embsh transports. A Session turns a stream of input bytes into
// executed registry commands, handling echo, history, tab completion,
// and the telnet IAC and ANSI ESC in-band protocols.
package editor

import (
	"io"
	"sync/atomic"

	"pkt.systems/embsh"
)

const (
	// LineBufSize is the line buffer capacity including the terminator.
	LineBufSize = 256
	// HistorySize is the number of history ring slots.
	HistorySize = 16

	// completionMax caps a tab-completion result.
	completionMax = 64
)

type escState uint8

const (
	escNone escState = iota
	escIntro
	escBracket
)

type iacState uint8

const (
	iacNormal iacState = iota
	iacCommand
	iacOption
	iacSub
)

// Session is the per-connection editor state. It is created fully
// initialized by a transport, mutated only by the goroutine driving
// it, and owns no goroutines itself. The active latch is the sole
// field shared with the stopping side.
type Session struct {
	In       io.Reader
	Out      io.Writer
	Telnet   bool
	Registry *embsh.Registry

	buf [LineBufSize]byte
	pos int

	hist      [HistorySize]string
	histCount int
	histWrite int
	histBack  int
	browsing  bool

	esc       escState
	iac       iacState
	pendingCR bool

	AuthRequired  bool
	Authenticated bool
	AuthAttempts  int

	active atomic.Bool
}

// Activate arms the session loop.
func (s *Session) Activate() { s.active.Store(true) }

// Deactivate asks the session loop to exit. Safe from any goroutine.
func (s *Session) Deactivate() { s.active.Store(false) }

// Active reports whether the session loop should keep running.
func (s *Session) Active() bool { return s.active.Load() }

// Line returns the current line buffer contents.
func (s *Session) Line() string { return string(s.buf[:s.pos]) }

// Pos returns the cursor position (always at end of line).
func (s *Session) Pos() int { return s.pos }

// ClearLine drops the pending line without touching the terminal.
// Transports call it after ExecuteLine before re-emitting the prompt.
func (s *Session) ClearLine() {
	s.pos = 0
	s.buf[0] = 0
}

// Reset clears line, history-browsing, and protocol state so a slot
// can be reused for a new connection.
func (s *Session) Reset() {
	s.ClearLine()
	s.histCount = 0
	s.histWrite = 0
	s.histBack = 0
	s.browsing = false
	s.esc = escNone
	s.iac = iacNormal
	s.pendingCR = false
	s.Authenticated = false
	s.AuthAttempts = 0
}

// ArmCRPairing marks that the last committed byte was a CR, so an
// immediately following LF or NUL belongs to the same line break.
func (s *Session) ArmCRPairing() { s.pendingCR = true }

// SwallowCRPairing consumes b when it completes a CR-LF or CR-NUL
// pair armed by ArmCRPairing. It clears the latch either way.
func (s *Session) SwallowCRPairing(b byte) bool {
	if !s.pendingCR {
		return false
	}
	s.pendingCR = false
	return b == '\n' || b == 0
}

func (s *Session) reg() *embsh.Registry {
	if s.Registry != nil {
		return s.Registry
	}
	return embsh.Default()
}

// WriteString sends str to the session peer. Best-effort: a slow or
// gone peer affects only its own session.
func (s *Session) WriteString(str string) {
	if s.Out == nil || len(str) == 0 {
		return
	}
	_, _ = io.WriteString(s.Out, str)
}

func (s *Session) writeBytes(b []byte) {
	if s.Out == nil || len(b) == 0 {
		return
	}
	_, _ = s.Out.Write(b)
}
