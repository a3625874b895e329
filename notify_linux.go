//go:build linux

package termx

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

// notifier is the wake channel the select loop watches next to stdin.
// On Linux it is an eventfd: signal bridges and ForcePause write an
// 8-byte sentinel, the loop's select unblocks and drains it.
type notifier struct {
	fd int
}

func newNotifier() (*notifier, error) {
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &notifier{fd: fd}, nil
}

// readFD is the fd to include in the select read set.
func (n *notifier) readFD() int { return n.fd }

// writeFD is the fd wake sentinels are posted to; published in the
// process-wide signal slot.
func (n *notifier) writeFD() int { return n.fd }

// putSentinel encodes a wake code the way the kernel expects eventfd
// payloads: a host-endian uint64.
func putSentinel(b []byte, code uint64) {
	binary.NativeEndian.PutUint64(b, code)
}

// wake posts a sentinel. Safe to call from any goroutine; a full
// counter is ignored, the loop is awake already in that case.
func (n *notifier) wake(code uint64) {
	var buf [8]byte
	putSentinel(buf[:], code)
	unix.Write(n.fd, buf[:])
}

// drain reads the pending sentinel, if any.
func (n *notifier) drain() (uint64, bool) {
	var buf [8]byte
	nr, err := unix.Read(n.fd, buf[:])
	if err != nil || nr != 8 {
		return 0, false
	}
	return binary.NativeEndian.Uint64(buf[:]), true
}

func (n *notifier) close() {
	unix.Close(n.fd)
}
