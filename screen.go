package termx

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Screen ops: stateless cursor, color and clear operations writing
// directly to stdout. They do not interact with the Buffer diff state:
// after they draw over a region, Buffer.Flush does not repaint the
// cells there that it considers unchanged.

// Size returns the terminal dimensions via the window-size ioctl, or
// the zero size if stdout is not a terminal.
func Size() TermSize {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return TermSize{}
	}
	return TermSize{Cols: cols, Rows: rows}
}

// Width returns the terminal column count, 0 when unknown.
func Width() int { return Size().Cols }

// Height returns the terminal row count, 0 when unknown.
func Height() int { return Size().Rows }

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// MoveCursor places the terminal cursor at the 0-based position,
// clamped into the current screen. Returns false for invalid coords.
func MoveCursor(pos Coord) bool {
	if !pos.IsValid() {
		return false
	}

	size := Size()
	maxW, maxH := size.Cols, size.Rows
	if maxW <= 0 {
		maxW = 999
	}
	if maxH <= 0 {
		maxH = 999
	}

	x := min(pos.X, maxW-1)
	y := min(pos.Y, maxH-1)

	fmt.Fprintf(os.Stdout, "\033[%d;%dH", y+1, x+1)
	return true
}

// MoveCursorRelative moves the cursor by the given deltas using the
// directional forms. The terminal clamps at screen edges itself.
func MoveCursorRelative(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}

	if dy < 0 {
		fmt.Fprintf(os.Stdout, "\033[%dA", -dy)
	}
	if dy > 0 {
		fmt.Fprintf(os.Stdout, "\033[%dB", dy)
	}
	if dx > 0 {
		fmt.Fprintf(os.Stdout, "\033[%dC", dx)
	}
	if dx < 0 {
		fmt.Fprintf(os.Stdout, "\033[%dD", -dx)
	}
}

// Clear erases the screen and homes the cursor.
func Clear() {
	fmt.Fprint(os.Stdout, "\033[2J\033[1;1H")
}

// SetColor sets the foreground color. A none color is a no-op and
// returns false.
func SetColor(c Color) bool {
	if !c.IsValid() {
		return false
	}
	fmt.Fprint(os.Stdout, c.ToAnsiFg())
	return true
}

// SetBackColor sets the background color. A none color is a no-op and
// returns false.
func SetBackColor(c Color) bool {
	if !c.IsValid() {
		return false
	}
	fmt.Fprint(os.Stdout, c.ToAnsiBg())
	return true
}

// ResetColor restores the terminal default attributes.
func ResetColor() {
	fmt.Fprint(os.Stdout, ColorReset.ToAnsiFg())
}
