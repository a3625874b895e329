package termx

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Box drawing glyphs used by DrawBox.
const (
	boxTopLeft     = "┏"
	boxTopRight    = "┓"
	boxBottomLeft  = "┗"
	boxBottomRight = "┛"
	boxHorizontal  = "━"
	boxVertical    = "┃"
)

// Buffer is a double-buffered cell grid. Draw calls mutate the back
// buffer; Flush computes the diff against the front buffer (the state
// last written to the terminal) and emits the minimal escape stream to
// synchronise, then commits back into front.
//
// Buffer is not safe for concurrent use; it is designed for a single
// UI goroutine.
type Buffer struct {
	width  int
	height int
	front  [][]Cell
	back   [][]Cell
	out    io.Writer
}

// NewBuffer creates a buffer of the given dimensions writing to stdout.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{out: os.Stdout}
	b.Resize(w, h)
	return b
}

// SetWriter redirects Flush output. Passing nil restores stdout.
func (b *Buffer) SetWriter(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	b.out = w
}

// Size returns the current grid dimensions.
func (b *Buffer) Size() TermSize {
	return TermSize{Cols: b.width, Rows: b.height}
}

// Cell returns a copy of the back-buffer cell at (x, y) and whether the
// coordinate is inside the grid.
func (b *Buffer) Cell(x, y int) (Cell, bool) {
	if y < 0 || y >= b.height || x < 0 || x >= b.width {
		return Cell{}, false
	}
	return b.back[y][x], true
}

// Resize reallocates both buffers to w x h. The front buffer is reset
// to the blank sentinel so the next Flush repaints everything that
// differs from a cleared screen. A no-op when dimensions are unchanged.
func (b *Buffer) Resize(w, h int) {
	if b.width == w && b.height == h {
		return
	}
	b.width = w
	b.height = h

	b.front = newGrid(w, h)
	b.back = newGrid(w, h)
	clearGrid(b.front, ColorBlack)
	clearGrid(b.back, ColorBlack)
}

func newGrid(w, h int) [][]Cell {
	grid := make([][]Cell, h)
	for y := range grid {
		grid[y] = make([]Cell, w)
	}
	return grid
}

func clearGrid(grid [][]Cell, bg Color) {
	for y := range grid {
		for x := range grid[y] {
			grid[y][x] = Cell{Ch: " ", Fg: ColorWhite, Bg: bg}
		}
	}
}

// Clear overwrites the back buffer with spaces on the given background.
// The front buffer is untouched, so only cells that actually changed
// are emitted on the next Flush.
func (b *Buffer) Clear(bg Color) {
	clearGrid(b.back, bg)
}

// DrawString writes text into the back buffer starting at column x of
// row y. Double-width glyphs occupy two cells, the second marked as the
// wide trail. Zero-width codepoints are skipped; they are assumed to
// fold into the glyph before them. Cells outside the grid are clipped
// silently.
func (b *Buffer) DrawString(x, y int, text string, fg, bg Color) {
	if y < 0 || y >= b.height {
		return
	}

	cursorX := x
	for i := 0; i < len(text) && cursorX < b.width; {
		r, size := DecodeRuneInString(text[i:])
		w := RuneWidth(r)
		if w == 0 {
			i += size
			continue
		}

		if cursorX >= 0 {
			b.back[y][cursorX] = Cell{Ch: text[i : i+size], Fg: fg, Bg: bg}

			if w == 2 && cursorX+1 < b.width {
				b.back[y][cursorX+1] = Cell{Fg: fg, Bg: bg, WideTrail: true}
			}
		}

		cursorX += w
		i += size
	}
}

// DrawStringf formats per fmt.Sprintf and draws the result.
func (b *Buffer) DrawStringf(x, y int, fg, bg Color, format string, args ...any) {
	b.DrawString(x, y, fmt.Sprintf(format, args...), fg, bg)
}

// DrawBox paints a rectangle with heavy box-drawing glyphs and fills
// the interior with spaces on bg. With redBorder the border is drawn
// red regardless of fg. Clipping as for DrawString.
func (b *Buffer) DrawBox(x, y, w, h int, fg, bg Color, redBorder bool) {
	borderC := fg
	if redBorder {
		borderC = ColorRed
	}

	b.DrawString(x, y, boxTopLeft, borderC, bg)
	b.DrawString(x+w-1, y, boxTopRight, borderC, bg)
	b.DrawString(x, y+h-1, boxBottomLeft, borderC, bg)
	b.DrawString(x+w-1, y+h-1, boxBottomRight, borderC, bg)

	for i := x + 1; i < x+w-1; i++ {
		b.DrawString(i, y, boxHorizontal, borderC, bg)
		b.DrawString(i, y+h-1, boxHorizontal, borderC, bg)
	}
	for j := y + 1; j < y+h-1; j++ {
		b.DrawString(x, j, boxVertical, borderC, bg)
		b.DrawString(x+w-1, j, boxVertical, borderC, bg)
	}

	for j := y + 1; j < y+h-1; j++ {
		for i := x + 1; i < x+w-1; i++ {
			b.DrawString(i, j, " ", fg, bg)
		}
	}
}

// Flush emits the minimal escape stream bringing the terminal in sync
// with the back buffer, then copies back into front. Cursor moves are
// elided while emission stays contiguous, and SGR codes are only sent
// when the color actually changes. An unchanged back buffer emits
// nothing at all.
func (b *Buffer) Flush() error {
	if b.width == 0 || b.height == 0 {
		return nil
	}

	var out bytes.Buffer
	out.Grow(b.width * b.height / 4 * 32)

	var lastFg, lastBg Color
	colorSet := false

	// Last emitted terminal cursor position, 1-based; start at an
	// impossible coordinate to force the first move.
	termY, termX := -1, -1

	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			back := &b.back[y][x]
			front := &b.front[y][x]

			if back.sameAs(*front) {
				continue
			}

			// The head of a double-width glyph paints over its trail
			// cell; only the bookkeeping is committed here.
			if back.WideTrail {
				*front = *back
				continue
			}

			targetY, targetX := y+1, x+1
			if termY != targetY || termX != targetX {
				fmt.Fprintf(&out, "\033[%d;%dH", targetY, targetX)
				termY, termX = targetY, targetX
			}

			if !colorSet || back.Fg != lastFg {
				out.WriteString(back.Fg.ToAnsiFg())
				lastFg = back.Fg
			}
			if !colorSet || back.Bg != lastBg {
				out.WriteString(back.Bg.ToAnsiBg())
				lastBg = back.Bg
			}
			colorSet = true

			out.WriteString(back.Ch)
			*front = *back
			termX += StringWidth(back.Ch)
		}
	}

	if out.Len() == 0 {
		return nil
	}
	return writeAll(b.out, out.Bytes())
}

// writeAll writes p fully, retrying on partial writes.
func writeAll(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}
