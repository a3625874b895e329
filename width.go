package termx

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// DecodeRune reads the leading UTF-8 sequence of b and returns the
// codepoint and the number of bytes consumed (1-4). A malformed leading
// byte is consumed as a single byte and reported as codepoint 0.
func DecodeRune(b []byte) (rune, int) {
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return 0, 1
	}
	return r, size
}

// DecodeRuneInString is DecodeRune over a string.
func DecodeRuneInString(s string) (rune, int) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return 0, 1
	}
	return r, size
}

// isZeroWidth reports codepoints that occupy no terminal column:
// joiners, variation selectors, combining marks, emoji modifiers and
// tag characters. These fold into the glyph before them, so counting
// them would desynchronise cursor accounting from the terminal.
func isZeroWidth(r rune) bool {
	switch {
	case r == 0:
		return true
	case r == 0x200C || r == 0x200D: // ZWNJ, ZWJ
		return true
	case r >= 0xFE00 && r <= 0xFE0F: // Variation Selectors
		return true
	case r >= 0x0300 && r <= 0x036F: // Combining Diacritical Marks
		return true
	case r >= 0x1F3FB && r <= 0x1F3FF: // Emoji skin tone modifiers
		return true
	case r >= 0xE0020 && r <= 0xE007F: // Tag characters (flag sequences)
		return true
	}
	return false
}

// isDoubleWidth reports codepoints that occupy two terminal columns.
func isDoubleWidth(r rune) bool {
	switch {
	// Hangul jamo and syllables
	case r >= 0x1100 && r <= 0x11FF,
		r >= 0x3130 && r <= 0x318F,
		r >= 0xAC00 && r <= 0xD7A3:
		return true
	// CJK ideographs
	case r >= 0x4E00 && r <= 0x9FFF,
		r >= 0x3400 && r <= 0x4DBF,
		r >= 0xF900 && r <= 0xFAFF:
		return true
	// Fullwidth forms
	case r >= 0xFF01 && r <= 0xFF60,
		r >= 0xFFE0 && r <= 0xFFE6:
		return true
	// Emoji and symbols
	case r >= 0x1F300 && r <= 0x1F6FF,
		r >= 0x1F900 && r <= 0x1F9FF,
		r >= 0x1F004 && r <= 0x1F251:
		return true
	}
	return false
}

// RuneWidth returns the terminal column width of a codepoint: 0, 1 or 2.
// The fixed tables above are authoritative; codepoints outside them
// defer to go-runewidth, which may widen or zero additional ranges but
// never overrides the tables.
func RuneWidth(r rune) int {
	if isZeroWidth(r) {
		return 0
	}
	if isDoubleWidth(r) {
		return 2
	}
	switch runewidth.RuneWidth(r) {
	case 0:
		return 0
	case 2:
		return 2
	}
	return 1
}

// isCSIStart reports whether a CSI introducer "ESC [" begins at
// s[i]. A lone ESC is not a control sequence and stays ordinary input.
func isCSIStart(s string, i int) bool {
	return s[i] == 0x1B && i+1 < len(s) && s[i+1] == '['
}

// csiEnd returns the index just past the CSI sequence starting at
// s[start], which must hold "ESC [". The sequence runs through the
// first final byte in 0x40..0x7E; with no final byte, len(s) is
// returned.
func csiEnd(s string, start int) int {
	for i := start + 2; i < len(s); i++ {
		if s[i] >= 0x40 && s[i] <= 0x7E {
			return i + 1
		}
	}
	return len(s)
}

// StringWidth returns the visual width of s: the sum of RuneWidth over
// its codepoints, with ANSI CSI sequences contributing zero.
func StringWidth(s string) int {
	width := 0
	for i := 0; i < len(s); {
		if isCSIStart(s, i) {
			i = csiEnd(s, i)
			continue
		}
		r, size := DecodeRuneInString(s[i:])
		width += RuneWidth(r)
		i += size
	}
	return width
}

// StripAnsi returns s with all ANSI CSI sequences removed. A lone ESC
// not introducing a CSI passes through verbatim.
func StripAnsi(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if isCSIStart(s, i) {
			i = csiEnd(s, i)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// SplitByWidth breaks s greedily into lines of visual width at most
// max. Multi-byte codepoints are never split and ANSI sequences pass
// through to the line they occur on without contributing width.
func SplitByWidth(s string, max int) []string {
	if max <= 0 {
		if s == "" {
			return nil
		}
		return []string{s}
	}

	var lines []string
	var line strings.Builder
	width := 0

	for i := 0; i < len(s); {
		if isCSIStart(s, i) {
			end := csiEnd(s, i)
			line.WriteString(s[i:end])
			i = end
			continue
		}

		r, size := DecodeRuneInString(s[i:])
		w := RuneWidth(r)

		if width+w > max && line.Len() > 0 {
			lines = append(lines, line.String())
			line.Reset()
			width = 0
		}

		line.WriteString(s[i : i+size])
		width += w
		i += size
	}

	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
