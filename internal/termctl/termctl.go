// Package termctl configures terminal and serial line discipline for
// the console and serial transports. Linux termios only, matching the
// library's target platform.
package termctl

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// State holds saved terminal attributes for later restoration.
type State struct {
	fd    int
	saved unix.Termios
}

// MakeRaw puts the descriptor into raw mode: no canonical input, no
// echo, no signal generation, no output post-processing, and
// non-blocking reads (VMIN=0, VTIME=0). The returned State restores
// the previous attributes.
func MakeRaw(fd int) (*State, error) {
	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("tcgetattr: %w", err)
	}
	st := &State{fd: fd, saved: *tio}

	tio.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	tio.Iflag &^= unix.IXON | unix.IXOFF | unix.ICRNL | unix.INLCR | unix.IGNCR
	tio.Oflag &^= unix.OPOST
	tio.Cc[unix.VMIN] = 0
	tio.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, tio); err != nil {
		return nil, fmt.Errorf("tcsetattr: %w", err)
	}
	return st, nil
}

// Restore reinstates the attributes captured by MakeRaw.
func (st *State) Restore() error {
	if st == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(st.fd, unix.TCSETS, &st.saved); err != nil {
		return fmt.Errorf("tcsetattr: %w", err)
	}
	return nil
}

// serialSpeeds is the fixed baud table supported by the serial shell.
var serialSpeeds = map[int]uint32{
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
	230400: unix.B230400,
	460800: unix.B460800,
	921600: unix.B921600,
}

// SerialSpeed maps a baud rate to its termios constant.
func SerialSpeed(baud int) (uint32, bool) {
	spd, ok := serialSpeeds[baud]
	return spd, ok
}

// ConfigureSerial sets 8N1 at the given baud rate with hardware flow
// control disabled, raw line discipline, and blocking single-byte
// reads (VMIN=1, VTIME=0).
func ConfigureSerial(fd, baud int) error {
	spd, ok := SerialSpeed(baud)
	if !ok {
		return fmt.Errorf("unsupported baud rate %d", baud)
	}
	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("tcgetattr: %w", err)
	}

	tio.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB | unix.CRTSCTS | unix.CBAUD
	tio.Cflag |= unix.CS8 | unix.CLOCAL | unix.CREAD | spd
	tio.Lflag &^= unix.ICANON | unix.ECHO | unix.ECHOE | unix.ISIG
	tio.Iflag &^= unix.IXON | unix.IXOFF | unix.IXANY | unix.ICRNL | unix.INLCR | unix.IGNCR
	tio.Oflag &^= unix.OPOST
	tio.Ispeed = spd
	tio.Ospeed = spd
	tio.Cc[unix.VMIN] = 1
	tio.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, tio); err != nil {
		return fmt.Errorf("tcsetattr: %w", err)
	}
	return nil
}
