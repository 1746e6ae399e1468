package editor

import (
	"strings"

	"pkt.systems/embsh"
)

// Control bytes handled by ProcessByte.
const (
	ctrlC     = 0x03
	ctrlD     = 0x04
	backspace = 0x08
	tab       = 0x09
	escape    = 0x1B
	del       = 0x7F
)

// ProcessByte feeds one input byte to the editor. It returns true when
// a complete non-empty line is ready; the caller then invokes
// ExecuteLine, clears the line, and re-emits the prompt if the session
// is still active. Malformed bytes are ignored, overflows silently
// dropped; ProcessByte never fails.
func (s *Session) ProcessByte(b byte, prompt string) bool {
	// A committed \r in telnet mode swallows an immediately following
	// \n or NUL (CR-LF and CR-NUL line framing).
	if s.SwallowCRPairing(b) {
		return false
	}

	if s.Telnet {
		ch, ok := s.FilterIAC(b)
		if !ok {
			return false
		}
		b = ch
	}

	switch s.esc {
	case escIntro:
		if b == '[' {
			s.esc = escBracket
			return false
		}
		s.esc = escNone
		return false

	case escBracket:
		s.esc = escNone
		switch b {
		case 'A':
			s.historyUp()
		case 'B':
			s.historyDown()
		case 'C', 'D':
			// Cursor movement is not supported.
		}
		return false
	}

	switch b {
	case escape:
		s.esc = escIntro
		return false

	case ctrlC:
		s.WriteString("^C\r\n")
		s.ClearLine()
		s.browsing = false
		s.histBack = 0
		s.WriteString(prompt)
		return false

	case ctrlD:
		if s.pos == 0 {
			s.WriteString("\r\nBye.\r\n")
			s.Deactivate()
		}
		return false

	case backspace, del:
		if s.pos > 0 {
			s.pos--
			s.buf[s.pos] = 0
			s.WriteString("\b \b")
		}
		return false

	case tab:
		s.tabComplete(prompt)
		return false

	case '\r', '\n':
		s.WriteString("\r\n")
		if s.Telnet && b == '\r' {
			s.ArmCRPairing()
		}
		s.browsing = false
		s.histBack = 0
		if s.pos == 0 {
			s.WriteString(prompt)
			return false
		}
		s.pushHistory()
		return true
	}

	if b >= 0x20 && b < 0x7F {
		if s.pos < LineBufSize-1 {
			s.buf[s.pos] = b
			s.pos++
			s.buf[s.pos] = 0
			s.writeBytes([]byte{b})
		}
	}
	return false
}

func (s *Session) tabComplete(prompt string) {
	line := s.Line()
	completion, matches := s.reg().AutoComplete(line, completionMax)

	switch {
	case matches == 1:
		s.eraseLine()
		s.setLine(completion + " ")
		s.writeBytes(s.buf[:s.pos])

	case matches > 1:
		s.WriteString("\r\n")
		s.reg().ForEach(func(c *embsh.Command) {
			if strings.HasPrefix(c.Name, line) {
				s.WriteString(c.Name)
				s.WriteString("  ")
			}
		})
		s.WriteString("\r\n")
		s.WriteString(prompt)
		s.setLine(completion)
		s.writeBytes(s.buf[:s.pos])
	}
}

// setLine replaces the buffer without touching the terminal.
func (s *Session) setLine(text string) {
	if len(text) > LineBufSize-1 {
		text = text[:LineBufSize-1]
	}
	copy(s.buf[:], text)
	s.pos = len(text)
	s.buf[s.pos] = 0
}

// eraseLine wipes the rendered line with a backspace-space-backspace
// per character.
func (s *Session) eraseLine() {
	for i := 0; i < s.pos; i++ {
		s.WriteString("\b \b")
	}
}
