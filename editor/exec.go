package editor

import "pkt.systems/embsh"

// ExecuteLine tokenizes and runs the committed line. exit and quit are
// built in; anything else is resolved through the registry. A miss
// emits a diagnostic to the session rather than failing.
func (s *Session) ExecuteLine() {
	line := s.Line()
	args, err := embsh.SplitLine(line)
	if err != nil || len(args) == 0 {
		return
	}

	switch args[0] {
	case "exit", "quit":
		s.WriteString("Bye.\r\n")
		s.Deactivate()
		return
	}

	cmd := s.reg().Find(args[0])
	if cmd == nil {
		s.WriteString("unknown command: " + args[0] + "\r\n")
		return
	}
	inv := embsh.NewInvocation(s.Out, args, cmd.Data)
	_ = cmd.Fn(inv)
}
