package embsh

import (
	"fmt"
	"io"
)

// OutputBufSize caps a single Printf call, terminator included.
const OutputBufSize = 512

// Func is the command callback. The returned status is informational
// and is not surfaced to the peer.
type Func func(inv *Invocation) int

// Command is one registry entry. Immutable after registration.
type Command struct {
	Name string
	Desc string
	Fn   Func
	Data any
}

// Invocation carries one command call: the tokenized arguments
// (Args[0] is the command name), the Data stored at registration, and
// the output sink of the session that issued the line. Args alias the
// dispatching session's line copy and are valid only for the duration
// of the call.
type Invocation struct {
	Args []string
	Data any

	out io.Writer
}

// NewInvocation binds a command call to an output sink. Transports use
// it when dispatching; tests use it to capture command output.
func NewInvocation(out io.Writer, args []string, data any) *Invocation {
	return &Invocation{Args: args, Data: data, out: out}
}

// Printf formats into the session that invoked the command. Output is
// capped at OutputBufSize-1 bytes per call and issued as exactly one
// write. Returns the untruncated formatted length, or -1 when the
// invocation has no output sink.
func (inv *Invocation) Printf(format string, a ...any) int {
	if inv == nil || inv.out == nil {
		return -1
	}
	msg := fmt.Sprintf(format, a...)
	n := len(msg)
	if n > OutputBufSize-1 {
		msg = msg[:OutputBufSize-1]
	}
	if len(msg) > 0 {
		_, _ = io.WriteString(inv.out, msg)
	}
	return n
}
