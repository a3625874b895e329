// Package termx is a toolkit for building interactive, flicker-free
// full-screen applications on POSIX terminals.
//
// The package targets ANSI/xterm-compatible terminals with truecolor
// support and needs no terminfo database.
//
// # Features
//
//   - Double-buffered cell renderer that diffs frames and emits the
//     minimal cursor-move/SGR/glyph escape stream per flush
//   - Raw-mode input pipeline multiplexing the terminal, window
//     signals and an interrupt channel through a single select loop
//   - Streaming escape-sequence parser: arrows, function keys,
//     navigation block, SGR 1006 mouse and cursor-position reports
//   - Width-aware text handling (CJK, Hangul, fullwidth forms, emoji,
//     zero-width joiners) keeping cursor accounting in sync with what
//     the terminal actually advances
//   - Truecolor RGB colors with hex parsing and blending
//   - Terminal state restored on normal exit, pause and fatal signals
//
// # Basic Usage
//
//	dev, err := termx.NewDevice(termx.DeviceOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Deinit()
//
//	size := termx.Size()
//	buf := termx.NewBuffer(size.Cols, size.Rows)
//
//	for {
//	    buf.Clear(termx.ColorBlack)
//	    buf.DrawBox(0, 0, size.Cols, size.Rows, termx.ColorGray, termx.ColorBlack, false)
//	    buf.DrawString(2, 1, "press q to quit", termx.ColorWhite, termx.ColorBlack)
//	    buf.Flush()
//
//	    key, ok := dev.GetInputTimeout(termx.FPS30)
//	    if !ok {
//	        continue
//	    }
//	    switch key {
//	    case 'q', termx.KeyEsc:
//	        return
//	    case termx.KeyResizeEvent:
//	        size = dev.Inspect(key).TermSize
//	        buf.Resize(size.Cols, size.Rows)
//	    }
//	}
//
// # Architecture
//
// The package consists of three cooperating layers:
//
//   - Buffer: the differential renderer; draw calls land in a back
//     buffer and Flush synchronises the terminal with it
//   - Device: the input pipeline; owns raw mode, parses the byte
//     stream into KeyCode events and guards stdin with a single-writer
//     gate (concurrent callers get KeyBusy)
//   - Screen ops and width utilities: stateless helpers shared by both
//     sides and available to applications directly
//
// Exactly one goroutine should drive Buffer and the input loop.
// GetCursorPos may be called from auxiliary goroutines; the reply is
// handed over through an internal rendezvous when the loop is busy.
package termx
