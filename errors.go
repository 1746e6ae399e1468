package embsh

import "errors"

var (
	// ErrRegistryFull indicates the command table reached MaxCommands.
	ErrRegistryFull = errors.New("command registry full")
	// ErrDuplicateName indicates a command with that name already exists.
	ErrDuplicateName = errors.New("duplicate command name")
	// ErrAuthFailed indicates the login gate rejected the credentials.
	ErrAuthFailed = errors.New("authentication failed")
	// ErrPortInUse indicates the listen address could not be bound.
	ErrPortInUse = errors.New("port in use")
	// ErrAlreadyRunning indicates a transport was started twice.
	ErrAlreadyRunning = errors.New("already running")
	// ErrNotRunning indicates a transport is stopped.
	ErrNotRunning = errors.New("not running")
	// ErrDeviceOpenFailed indicates a device could not be opened or configured.
	ErrDeviceOpenFailed = errors.New("device open failed")
	// ErrInvalidArgument indicates a malformed argument or configuration value.
	ErrInvalidArgument = errors.New("invalid argument")
)
