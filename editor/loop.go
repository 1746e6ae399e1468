package editor

import (
	"errors"
	"os"
	"time"
)

// ReadTimeout bounds how long a session read blocks before the loop
// rechecks its shutdown latches.
const ReadTimeout = 200 * time.Millisecond

type readDeadliner interface {
	SetReadDeadline(time.Time) error
}

// Drive runs the interactive loop on the session: emit the prompt,
// then consume one byte at a time until the peer disconnects, the
// session deactivates, or keepRunning reports false. When the input
// supports read deadlines the loop polls in ReadTimeout steps;
// otherwise reads block and the owner unblocks them by closing the
// descriptor.
func (s *Session) Drive(prompt string, keepRunning func() bool) {
	dr, canDeadline := s.In.(readDeadliner)
	var one [1]byte

	s.WriteString(prompt)
	for s.Active() && (keepRunning == nil || keepRunning()) {
		if canDeadline {
			if err := dr.SetReadDeadline(time.Now().Add(ReadTimeout)); err != nil {
				canDeadline = false
			}
		}
		n, err := s.In.Read(one[:])
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			return
		}
		if n == 0 {
			continue
		}
		if s.ProcessByte(one[0], prompt) {
			s.ExecuteLine()
			s.ClearLine()
			if s.Active() {
				s.WriteString(prompt)
			}
		}
	}
}
