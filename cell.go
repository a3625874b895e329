package termx

// Cell is one screen position in a Buffer. Ch holds the glyph as UTF-8;
// it is empty for the trailing half of a double-width glyph, whose head
// cell carries the full glyph.
type Cell struct {
	Ch        string
	Fg        Color
	Bg        Color
	WideTrail bool
}

// sameAs reports diff equality: glyph and colors match. WideTrail is
// deliberately excluded — it gates rendering, not change detection.
func (c Cell) sameAs(other Cell) bool {
	return c.Ch == other.Ch && c.Fg == other.Fg && c.Bg == other.Bg
}
