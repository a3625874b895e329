//go:build unix

package termx

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Sentinels carried over the notifier fd.
const (
	eventCodeInterrupt uint64 = 1
	eventCodeResize    uint64 = 2
)

// signalNotifyFD is the process-wide slot holding the notifier write
// fd for the signal bridge. Set once at device init, cleared at
// Deinit; -1 means no device is installed.
var signalNotifyFD atomic.Int64

func init() {
	signalNotifyFD.Store(-1)
}

// DeviceOptions configures device creation. Zero values select the
// process stdin/stdout and full signal handling.
type DeviceOptions struct {
	In  *os.File // input terminal (default os.Stdin)
	Out *os.File // output terminal (default os.Stdout)

	// NoSignalHooks skips SIGWINCH/SIGINT/SIGTERM installation. Meant
	// for embedding the device under a host application (or test
	// harness) that owns signal disposition itself.
	NoSignalHooks bool
}

// Device is the input pipeline: it owns the terminal's raw mode and
// multiplexes the raw stdin byte stream, the wake notifier and window
// signals into single parsed events.
//
// Exactly one goroutine at a time may sit in the read loop; a
// concurrent caller is rejected immediately with KeyBusy. Auxiliary
// goroutines may still call GetCursorPos, which rides along the
// owner's loop through the cursor rendezvous.
type Device struct {
	in  *os.File
	out *os.File

	notify *notifier
	parser inputParser

	// Single-writer gate for the select/parse loop.
	inputRunning atomic.Bool

	// Unconsumed bytes. Each call returns one event, so between calls
	// this may hold complete sequences not yet returned, followed by at
	// most one incomplete escape prefix.
	inputBuf []byte

	rawMu         sync.Mutex
	raw           rawMode
	cursorHidden  bool
	mouseTracking bool

	// Single-shot rendezvous slot for GetCursorPos observers.
	cursorMu   sync.Mutex
	cursorSlot chan Coord

	sigCh    chan os.Signal
	sigDone  chan struct{}
	closedMu sync.Mutex
	closed   bool
}

// NewDevice initialises the terminal for raw input and returns the
// pipeline. The terminal is left in raw mode with the cursor hidden
// until Deinit (or a fatal signal) restores it.
func NewDevice(opts DeviceOptions) (*Device, error) {
	d := &Device{
		in:  opts.In,
		out: opts.Out,
	}
	if d.in == nil {
		d.in = os.Stdin
	}
	if d.out == nil {
		d.out = os.Stdout
	}
	d.inputBuf = make([]byte, 0, 256)

	if err := d.raw.save(int(d.in.Fd())); err != nil {
		return nil, fmt.Errorf("termx: input is not a terminal: %w", err)
	}

	n, err := newNotifier()
	if err != nil {
		return nil, fmt.Errorf("termx: notifier creation failed: %w", err)
	}
	d.notify = n
	signalNotifyFD.Store(int64(n.writeFD()))

	d.rawMu.Lock()
	d.setRawMode(true)
	d.rawMu.Unlock()

	if !opts.NoSignalHooks {
		d.installSignalHooks()
	}

	return d, nil
}

// installSignalHooks bridges window and termination signals into the
// pipeline. SIGWINCH pokes the notifier so the select loop surfaces a
// resize event; SIGINT/SIGTERM restore the terminal and exit, because
// unwinding through arbitrary application state is not an option at
// that point.
func (d *Device) installSignalHooks() {
	d.sigCh = make(chan os.Signal, 1)
	d.sigDone = make(chan struct{})
	signal.Notify(d.sigCh, syscall.SIGWINCH, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		for {
			select {
			case sig := <-d.sigCh:
				switch sig {
				case syscall.SIGWINCH:
					if fd := signalNotifyFD.Load(); fd >= 0 {
						writeSentinel(int(fd), eventCodeResize)
					}
				case syscall.SIGINT, syscall.SIGTERM:
					d.restoreTerminal()
					d.out.WriteString("\n")
					os.Exit(0)
				}
			case <-d.sigDone:
				return
			}
		}
	}()
}

// GetInput blocks until an event is available and returns its code.
// Returns KeyBusy immediately if another goroutine owns the loop.
func (d *Device) GetInput() KeyCode {
	code, _ := d.getInputMs(-1)
	return code
}

// GetInputTimeout waits up to timeout for an event. The second return
// is false on timeout. A negative timeout blocks indefinitely; a
// timeout under one millisecond only drains bytes already buffered and
// does not read the terminal. For interactive use keep the timeout at
// 16ms or above so a
// lone ESC can be told apart from an escape-sequence prefix.
func (d *Device) GetInputTimeout(timeout time.Duration) (KeyCode, bool) {
	ms := -1
	if timeout >= 0 {
		ms = int(timeout.Milliseconds())
	}
	return d.getInputMs(ms)
}

// Inspect pairs a payload-bearing code with its payload: the most
// recently parsed mouse state or cursor position, or for a resize the
// output terminal's size queried at the time of the call. For plain
// keys the returned event carries the code only.
func (d *Device) Inspect(code KeyCode) Event {
	e := Event{Code: code}
	switch code {
	case KeyMouseEvent:
		e.Mouse = d.parser.lastMouse
	case KeyResizeEvent:
		if cols, rows, err := term.GetSize(int(d.out.Fd())); err == nil {
			e.TermSize = TermSize{Cols: cols, Rows: rows}
		}
	case KeyCursorEvent:
		e.Cursor = d.parser.lastCursor
	}
	return e
}

// getInputMs is the core loop: parse what is buffered, select on
// {terminal, notifier} for the remaining time, read, repeat.
func (d *Device) getInputMs(timeoutMs int) (KeyCode, bool) {
	if !d.inputRunning.CompareAndSwap(false, true) {
		return KeyBusy, true
	}
	defer d.inputRunning.Store(false)

	// Re-enter raw mode if a pause dropped it. Only the device's own
	// record of raw mode is checked; termios is not re-read.
	d.ensureRawMode()

	start := time.Now()
	for {
		// Drain complete sequences already buffered.
		for len(d.inputBuf) > 0 {
			code, n := d.parser.parse(d.inputBuf)
			if n == 0 {
				break
			}
			d.inputBuf = d.inputBuf[n:]

			// Cursor replies belong to a waiting GetCursorPos caller,
			// not to the loop owner.
			if code == KeyCursorEvent && d.deliverCursor(d.parser.lastCursor) {
				continue
			}

			if code != KeyNone {
				return code, true
			}
		}

		remaining := -1
		if timeoutMs >= 0 {
			elapsed := int(time.Since(start).Milliseconds())
			remaining = timeoutMs - elapsed
			if remaining <= 0 {
				return KeyNone, false
			}
		}

		ready, timedOut, err := d.selectInput(remaining)
		if err != nil {
			return KeyNone, false
		}

		if timedOut {
			// Timeout with exactly one buffered ESC byte: nothing is
			// following, so it was the ESC key itself.
			if len(d.inputBuf) == 1 && d.inputBuf[0] == 0x1B {
				d.inputBuf = d.inputBuf[:0]
				return KeyEsc, true
			}
			return KeyNone, false
		}

		if ready.notify {
			if v, ok := d.notify.drain(); ok {
				switch v {
				case eventCodeInterrupt:
					return KeyInterrupt, true
				case eventCodeResize:
					return KeyResizeEvent, true
				}
			}
		}

		if ready.stdin {
			var tmp [256]byte
			n, err := d.in.Read(tmp[:])
			if n > 0 {
				d.inputBuf = append(d.inputBuf, tmp[:n]...)
			}
			if err != nil && n <= 0 {
				return KeyNone, false
			}
		}
	}
}

type readiness struct {
	stdin  bool
	notify bool
}

// selectInput blocks on {input fd, notifier fd} for up to remainingMs
// milliseconds (forever when negative). EINTR restarts transparently;
// the caller recomputes its deadline each pass.
func (d *Device) selectInput(remainingMs int) (readiness, bool, error) {
	inFD := int(d.in.Fd())
	nFD := d.notify.readFD()

	for {
		var rfds unix.FdSet
		rfds.Zero()
		rfds.Set(inFD)
		rfds.Set(nFD)

		var tv *unix.Timeval
		if remainingMs >= 0 {
			t := unix.NsecToTimeval(int64(remainingMs) * int64(time.Millisecond))
			tv = &t
		}

		nReady, err := unix.Select(max(inFD, nFD)+1, &rfds, nil, nil, tv)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return readiness{}, false, err
		}
		if nReady == 0 {
			return readiness{}, true, nil
		}
		return readiness{
			stdin:  rfds.IsSet(inFD),
			notify: rfds.IsSet(nFD),
		}, false, nil
	}
}

// GetCursorPos queries the terminal for the cursor position (DSR) and
// waits up to timeout for the reply, translated to 0-based coords.
//
// If another goroutine owns the input loop, the caller parks on the
// single-shot rendezvous and the owner hands the reply over. Without
// an owner the caller runs the loop itself; keyboard or mouse events
// arriving during that window are discarded — the cost of direct mode.
func (d *Device) GetCursorPos(timeout time.Duration) (Coord, bool) {
	if d.inputRunning.Load() {
		return d.observeCursorPos(timeout)
	}

	// Direct mode: no owner, run the loop ourselves.
	if _, err := d.out.WriteString("\033[6n"); err != nil {
		return Coord{}, false
	}

	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return Coord{}, false
		}

		code, ok := d.getInputMs(int(remaining.Milliseconds()))
		if !ok {
			continue
		}
		if code == KeyCursorEvent {
			return d.parser.lastCursor, true
		}
		if code == KeyBusy {
			// Lost the race for the loop; fall back to observing.
			return d.observeCursorPos(time.Until(deadline))
		}
	}
}

// observeCursorPos installs the single-shot rendezvous, then sends the
// DSR request, then waits for the loop owner to fulfil it. The slot
// goes in before the request so the reply cannot race past the waiter.
// A second concurrent waiter fails immediately.
func (d *Device) observeCursorPos(timeout time.Duration) (Coord, bool) {
	ch := make(chan Coord, 1)

	d.cursorMu.Lock()
	if d.cursorSlot != nil {
		d.cursorMu.Unlock()
		return Coord{}, false
	}
	d.cursorSlot = ch
	d.cursorMu.Unlock()

	clearSlot := func() {
		d.cursorMu.Lock()
		d.cursorSlot = nil
		d.cursorMu.Unlock()
	}

	if _, err := d.out.WriteString("\033[6n"); err != nil {
		clearSlot()
		return Coord{}, false
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case pos := <-ch:
		return pos, true
	case <-timer.C:
		clearSlot()

		// The reply may have been delivered between the timer firing
		// and the slot clearing.
		select {
		case pos := <-ch:
			return pos, true
		default:
			return Coord{}, false
		}
	}
}

// deliverCursor fulfils a pending rendezvous. Reports whether a waiter
// consumed the event.
func (d *Device) deliverCursor(pos Coord) bool {
	d.cursorMu.Lock()
	defer d.cursorMu.Unlock()

	if d.cursorSlot == nil {
		return false
	}
	d.cursorSlot <- pos
	d.cursorSlot = nil
	return true
}

// EnableMouse toggles SGR 1006 mouse tracking.
func (d *Device) EnableMouse(enable bool) {
	d.rawMu.Lock()
	defer d.rawMu.Unlock()

	d.mouseTracking = enable
	if enable {
		d.out.WriteString("\033[?1000h\033[?1002h\033[?1006h")
	} else {
		d.out.WriteString("\033[?1000l\033[?1002l\033[?1006l")
	}
}

// ForcePause interrupts a blocked input call from any goroutine and
// drops raw mode. The blocked caller observes KeyInterrupt.
func (d *Device) ForcePause() {
	d.notify.wake(eventCodeInterrupt)

	d.rawMu.Lock()
	d.setRawMode(false)
	d.rawMu.Unlock()
}

// TryPause drops raw mode only when no input call is in flight.
// Reports whether the pause took effect.
func (d *Device) TryPause() bool {
	if d.inputRunning.Load() {
		return false
	}

	d.rawMu.Lock()
	d.setRawMode(false)
	d.rawMu.Unlock()
	return true
}

// Resume re-enters raw mode after a pause.
func (d *Device) Resume() {
	d.rawMu.Lock()
	d.setRawMode(true)
	d.rawMu.Unlock()
}

// Deinit restores the terminal and releases the notifier and signal
// hooks. The device must not be used afterwards.
func (d *Device) Deinit() {
	d.closedMu.Lock()
	if d.closed {
		d.closedMu.Unlock()
		return
	}
	d.closed = true
	d.closedMu.Unlock()

	if d.sigCh != nil {
		signal.Stop(d.sigCh)
		close(d.sigDone)
	}

	d.restoreTerminal()

	signalNotifyFD.Store(-1)
	d.notify.close()
}

// ensureRawMode re-enables raw mode if something dropped it; covers
// Resume-less callers after ForcePause.
func (d *Device) ensureRawMode() {
	if d.raw.active {
		return
	}
	d.rawMu.Lock()
	d.setRawMode(true)
	d.rawMu.Unlock()
}

// setRawMode flips termios raw mode together with cursor visibility.
// Callers hold rawMu.
func (d *Device) setRawMode(enable bool) {
	if enable {
		if d.raw.enable() == nil && !d.cursorHidden {
			d.out.WriteString("\033[?25l")
			d.cursorHidden = true
		}
	} else {
		if d.raw.disable() == nil && d.cursorHidden {
			d.out.WriteString("\033[?25h")
			d.cursorHidden = false
		}
	}
}

// restoreTerminal unwinds everything NewDevice and EnableMouse did to
// the terminal. Runs on Deinit and on fatal signals.
func (d *Device) restoreTerminal() {
	d.rawMu.Lock()
	defer d.rawMu.Unlock()

	if d.mouseTracking {
		d.out.WriteString("\033[?1000l\033[?1002l\033[?1006l")
		d.mouseTracking = false
	}
	d.setRawMode(false)
}

// writeSentinel posts a wake code to a raw notifier fd. Kept free of
// device state so the signal bridge can use the process-wide fd slot.
func writeSentinel(fd int, code uint64) {
	var buf [8]byte
	putSentinel(buf[:], code)
	unix.Write(fd, buf[:])
}
