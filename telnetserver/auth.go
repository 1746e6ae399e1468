package telnetserver

import (
	"errors"
	"net"
	"os"
	"time"

	"pkt.systems/embsh/editor"
)

const (
	maxAuthAttempts = 3
	// authFieldMax is the username and password buffer size; at most
	// authFieldMax-1 bytes are kept and excess printable bytes are
	// silently dropped.
	authFieldMax = 64
)

// runAuth drives the login dialog: up to maxAuthAttempts rounds of
// Username/Password prompts. Username input echoes, password input
// echoes a mask. Telnet negotiation bytes are filtered through the
// session's IAC automaton so its state stays continuous into the
// shell.
func (s *Server) runAuth(sess *editor.Session, conn net.Conn) bool {
	const (
		phaseUser = iota
		phasePass
	)
	phase := phaseUser
	user := make([]byte, 0, authFieldMax)
	pass := make([]byte, 0, authFieldMax)
	var one [1]byte

	sess.WriteString("Username: ")
	for sess.Active() && s.running.Load() && sess.AuthAttempts < maxAuthAttempts {
		_ = conn.SetReadDeadline(time.Now().Add(editor.ReadTimeout))
		n, err := conn.Read(one[:])
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			return false
		}
		if n == 0 {
			continue
		}
		b := one[0]

		if sess.SwallowCRPairing(b) {
			continue
		}
		ch, ok := sess.FilterIAC(b)
		if !ok {
			continue
		}
		b = ch

		switch {
		case b == 0x08 || b == 0x7F:
			if phase == phaseUser && len(user) > 0 {
				user = user[:len(user)-1]
				sess.WriteString("\b \b")
			} else if phase == phasePass && len(pass) > 0 {
				pass = pass[:len(pass)-1]
				sess.WriteString("\b \b")
			}

		case b == '\r' || b == '\n':
			if b == '\r' {
				sess.ArmCRPairing()
			}
			sess.WriteString("\r\n")
			if phase == phaseUser {
				phase = phasePass
				sess.WriteString("Password: ")
				continue
			}
			if s.creds.Verify(string(user), string(pass)) {
				sess.Authenticated = true
				sess.WriteString("Login successful.\r\n")
				return true
			}
			sess.AuthAttempts++
			if sess.AuthAttempts < maxAuthAttempts {
				sess.WriteString("Invalid credentials. Try again.\r\n")
				phase = phaseUser
				user = user[:0]
				pass = pass[:0]
				sess.WriteString("Username: ")
			}

		case b >= 0x20 && b < 0x7F:
			if phase == phaseUser {
				if len(user) < authFieldMax-1 {
					user = append(user, b)
					sess.WriteString(string(b))
				}
			} else if len(pass) < authFieldMax-1 {
				pass = append(pass, b)
				sess.WriteString("*")
			}
		}
	}
	return false
}
