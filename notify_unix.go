//go:build unix && !linux

package termx

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

// notifier is the wake channel the select loop watches next to stdin.
// Without eventfd it is a non-blocking self-pipe carrying 8-byte
// sentinel frames.
type notifier struct {
	r int
	w int
}

func newNotifier() (*notifier, error) {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		return nil, err
	}
	unix.SetNonblock(fds[0], true)
	unix.SetNonblock(fds[1], true)
	unix.CloseOnExec(fds[0])
	unix.CloseOnExec(fds[1])
	return &notifier{r: fds[0], w: fds[1]}, nil
}

// readFD is the fd to include in the select read set.
func (n *notifier) readFD() int { return n.r }

// writeFD is the fd wake sentinels are posted to; published in the
// process-wide signal slot.
func (n *notifier) writeFD() int { return n.w }

// putSentinel encodes a wake code as a host-endian uint64 frame.
func putSentinel(b []byte, code uint64) {
	binary.NativeEndian.PutUint64(b, code)
}

// wake posts a sentinel. A full pipe is ignored; the loop has plenty
// to wake up for already.
func (n *notifier) wake(code uint64) {
	var buf [8]byte
	putSentinel(buf[:], code)
	unix.Write(n.w, buf[:])
}

// drain reads the pending sentinel, if any.
func (n *notifier) drain() (uint64, bool) {
	var buf [8]byte
	nr, err := unix.Read(n.r, buf[:])
	if err != nil || nr != 8 {
		return 0, false
	}
	return binary.NativeEndian.Uint64(buf[:]), true
}

func (n *notifier) close() {
	unix.Close(n.r)
	unix.Close(n.w)
}
