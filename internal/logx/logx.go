// Package logx carries the pslog conventions shared by the embsh
// transports.
package logx

import (
	"context"

	"pkt.systems/pslog"
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithRemote annotates the logger with the peer address if present.
func WithRemote(log pslog.Logger, remote string) pslog.Logger {
	if remote != "" {
		log = log.With("remote", remote)
	}
	return log
}

// WithSlot annotates the logger with a session slot index.
func WithSlot(log pslog.Logger, slot int) pslog.Logger {
	if slot >= 0 {
		log = log.With("slot", slot)
	}
	return log
}

// WithDevice annotates the logger with a device path if present.
func WithDevice(log pslog.Logger, device string) pslog.Logger {
	if device != "" {
		log = log.With("device", device)
	}
	return log
}
