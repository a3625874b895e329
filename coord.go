package termx

import "fmt"

// Coord is a 0-based screen position, origin at the top-left.
// The ANSI wire protocol is 1-based; translation to and from wire
// coordinates happens at the emission/parse boundary, never here.
type Coord struct {
	X int // column
	Y int // row
}

// Origin is the top-left corner.
var Origin = Coord{0, 0}

// IsValid reports whether both components are non-negative.
func (c Coord) IsValid() bool {
	return c.X >= 0 && c.Y >= 0
}

// Add returns the component-wise sum of c and other.
func (c Coord) Add(other Coord) Coord {
	return Coord{c.X + other.X, c.Y + other.Y}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// TermSize is a terminal dimension in character cells.
type TermSize struct {
	Cols int
	Rows int
}

func (s TermSize) String() string {
	return fmt.Sprintf("%dx%d", s.Cols, s.Rows)
}
