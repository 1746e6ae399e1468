// Package telnetserver exposes the embsh shell over a multi-session
// TCP telnet server with cooperative shutdown and an optional login
// gate.
package telnetserver

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"time"

	"pkt.systems/embsh"
	"pkt.systems/embsh/editor"
	"pkt.systems/embsh/internal/auth"
	"pkt.systems/embsh/internal/logx"
	"pkt.systems/pslog"
)

// acceptTimeout paces the accept loop's shutdown checks.
const acceptTimeout = 500 * time.Millisecond

type slot struct {
	sess  editor.Session
	conn  net.Conn
	inUse atomic.Bool
	done  chan struct{}
}

// Server is a telnet debug server. One goroutine accepts connections;
// each session runs in its own goroutine driving its own editor
// Session. The running latch and per-session active latches are the
// only cross-goroutine state.
type Server struct {
	cfg     Config
	creds   auth.Credentials
	ln      net.Listener
	running atomic.Bool
	accept  chan struct{}
	slots   [SessionCap]slot
	log     pslog.Logger
}

// New returns an unstarted server for the given configuration.
func New(cfg Config) *Server {
	return &Server{cfg: cfg}
}

// Start binds the listen socket and spawns the accept loop.
func (s *Server) Start() error {
	if s.running.Load() {
		return embsh.ErrAlreadyRunning
	}
	s.cfg.applyDefaults()
	s.creds = auth.Credentials{
		Username:     s.cfg.Username,
		Password:     s.cfg.Password,
		PasswordHash: s.cfg.PasswordHash,
	}
	s.log = s.cfg.Logger
	if s.log == nil {
		s.log = pslog.Ctx(context.Background())
	}

	if s.cfg.Listener != nil {
		s.ln = s.cfg.Listener
	} else {
		ln, err := net.Listen("tcp4", fmt.Sprintf(":%d", s.cfg.Port))
		if err != nil {
			return fmt.Errorf("%w: %v", embsh.ErrPortInUse, err)
		}
		s.ln = ln
	}

	s.running.Store(true)
	s.accept = make(chan struct{})
	go s.acceptLoop()
	s.log.Info("telnet server started", "addr", s.ln.Addr().String(), "max_sessions", s.cfg.MaxSessions, "auth", s.creds.Enabled())
	return nil
}

// IsRunning reports whether the server is started.
func (s *Server) IsRunning() bool { return s.running.Load() }

// Addr returns the bound listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Stop shuts the server down: the listen socket is closed, the accept
// goroutine joined, and every live session deactivated, half-closed,
// and joined. Stop is idempotent.
func (s *Server) Stop() {
	if !s.running.Swap(false) {
		return
	}
	if s.ln != nil {
		_ = s.ln.Close()
	}
	<-s.accept

	for i := range s.slots {
		sl := &s.slots[i]
		if sl.inUse.Load() {
			sl.sess.Deactivate()
			if tc, ok := sl.conn.(*net.TCPConn); ok {
				_ = tc.CloseRead()
			}
		}
		if sl.done != nil {
			<-sl.done
			sl.done = nil
		}
		sl.inUse.Store(false)
	}
	s.log.Info("telnet server stopped")
}

func (s *Server) acceptLoop() {
	defer close(s.accept)
	type deadliner interface{ SetDeadline(time.Time) error }
	for s.running.Load() {
		if d, ok := s.ln.(deadliner); ok {
			_ = d.SetDeadline(time.Now().Add(acceptTimeout))
		}
		conn, err := s.ln.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			if !s.running.Load() {
				return
			}
			time.Sleep(acceptTimeout)
			continue
		}
		s.admit(conn)
	}
}

// admit places the connection in a free session slot or rejects it.
func (s *Server) admit(conn net.Conn) {
	idx := s.freeSlot()
	if idx < 0 {
		s.log.Warn("session rejected", "reason", "too many connections", "remote", conn.RemoteAddr().String())
		_, _ = io.WriteString(conn, "Too many connections.\r\n")
		_ = conn.Close()
		return
	}

	sl := &s.slots[idx]
	sl.conn = conn
	sess := &sl.sess
	sess.Reset()
	sess.In = conn
	sess.Out = conn
	sess.Telnet = true
	sess.Registry = s.cfg.Registry
	sess.AuthRequired = s.creds.Enabled()
	sess.Authenticated = !sess.AuthRequired
	sess.Activate()

	sl.done = make(chan struct{})
	sl.inUse.Store(true)
	go s.sessionLoop(sl, idx)
}

// freeSlot returns the first unused slot index, joining any finished
// session goroutine still occupying it. Returns -1 at capacity.
func (s *Server) freeSlot() int {
	for i := 0; i < s.cfg.MaxSessions; i++ {
		if !s.slots[i].inUse.Load() {
			if s.slots[i].done != nil {
				<-s.slots[i].done
				s.slots[i].done = nil
			}
			return i
		}
	}
	return -1
}

func (s *Server) sessionLoop(sl *slot, idx int) {
	sess := &sl.sess
	conn := sl.conn
	log := logx.WithSlot(logx.WithRemote(s.log, conn.RemoteAddr().String()), idx)
	log.Info("session opened")

	defer func() {
		_ = conn.Close()
		sess.Deactivate()
		sl.inUse.Store(false)
		close(sl.done)
		log.Info("session closed")
	}()

	// Announce server-side echo and suppress go-ahead.
	_, _ = conn.Write([]byte{editor.TelnetIAC, editor.TelnetWILL, editor.TelnetOptSGA})
	_, _ = conn.Write([]byte{editor.TelnetIAC, editor.TelnetWILL, editor.TelnetOptEcho})

	if s.cfg.Banner != "" {
		sess.WriteString(s.cfg.Banner)
	}

	if sess.AuthRequired {
		if !s.runAuth(sess, conn) {
			sess.WriteString("Authentication failed.\r\n")
			log.Warn("authentication failed", "attempts", sess.AuthAttempts)
			return
		}
		log.Info("authentication ok", "user", s.cfg.Username)
	}

	sess.Drive(s.cfg.Prompt, s.running.Load)
}
