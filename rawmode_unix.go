//go:build unix

package termx

import (
	"golang.org/x/sys/unix"
)

// rawMode owns the termios state of one input fd. It is not
// goroutine-safe by itself; the Device serialises access through its
// raw-mode mutex.
type rawMode struct {
	fd     int
	saved  unix.Termios
	active bool
}

// save snapshots the current termios so every later disable restores
// the terminal exactly as found.
func (r *rawMode) save(fd int) error {
	t, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return err
	}
	r.fd = fd
	r.saved = *t
	return nil
}

// enable switches the fd into raw input: no echo, no line buffering,
// read returns per byte. Idempotent.
func (r *rawMode) enable() error {
	if r.active {
		return nil
	}

	raw := r.saved
	raw.Lflag &^= unix.ECHO | unix.ICANON
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(r.fd, ioctlWriteTermios, &raw); err != nil {
		return err
	}
	r.active = true
	return nil
}

// disable restores the snapshotted termios. Idempotent.
func (r *rawMode) disable() error {
	if !r.active {
		return nil
	}
	if err := unix.IoctlSetTermios(r.fd, ioctlWriteTermios, &r.saved); err != nil {
		return err
	}
	r.active = false
	return nil
}
