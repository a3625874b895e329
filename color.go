package termx

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorType indicates how a color behaves when emitted.
type ColorType uint8

const (
	ColorTypeNone  ColorType = iota // No color: serialises to nothing
	ColorTypeRGB                    // 24-bit truecolor
	ColorTypeReset                  // Terminal default restore (SGR 0)
)

// Color is a terminal color. The zero value is the none color, which
// emits no escape code. Colors compare structurally with ==.
type Color struct {
	Type    ColorType
	R, G, B uint8
}

// Predefined colors
var (
	ColorBlack   = RGB(0, 0, 0)
	ColorWhite   = RGB(255, 255, 255)
	ColorRed     = RGB(255, 0, 0)
	ColorGreen   = RGB(0, 255, 0)
	ColorBlue    = RGB(0, 0, 255)
	ColorYellow  = RGB(255, 255, 0)
	ColorCyan    = RGB(0, 255, 255)
	ColorMagenta = RGB(255, 0, 255)
	ColorGray    = RGB(128, 128, 128)

	ColorSilver = RGB(192, 192, 192)
	ColorMaroon = RGB(128, 0, 0)
	ColorOlive  = RGB(128, 128, 0)
	ColorLime   = RGB(0, 255, 0)
	ColorTeal   = RGB(0, 128, 128)
	ColorNavy   = RGB(0, 0, 128)
	ColorPurple = RGB(128, 0, 128)

	// ColorReset restores the terminal's default attributes (SGR 0).
	ColorReset = Color{Type: ColorTypeReset}

	// ColorNone is the absent color; all of its emissions are empty.
	ColorNone = Color{}
)

// RGB creates a 24-bit truecolor value.
func RGB(r, g, b uint8) Color {
	return Color{Type: ColorTypeRGB, R: r, G: g, B: b}
}

// FromHex parses a six-hex-digit color string with an optional leading
// '#'. Anything else yields ColorNone.
func FromHex(hex string) Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return ColorNone
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return ColorNone
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b)
}

// IsValid reports whether the color emits anything (RGB or Reset).
func (c Color) IsValid() bool {
	return c.Type != ColorTypeNone
}

// IsRGB reports whether the color carries truecolor components.
func (c Color) IsRGB() bool {
	return c.Type == ColorTypeRGB
}

// ToAnsiFg returns the foreground SGR sequence for the color, or the
// empty string for the none color.
func (c Color) ToAnsiFg() string {
	switch c.Type {
	case ColorTypeReset:
		return "\033[0m"
	case ColorTypeRGB:
		return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
	}
	return ""
}

// ToAnsiBg returns the background SGR sequence for the color, or the
// empty string for the none color.
func (c Color) ToAnsiBg() string {
	switch c.Type {
	case ColorTypeReset:
		return "\033[0m"
	case ColorTypeRGB:
		return fmt.Sprintf("\033[48;2;%d;%d;%dm", c.R, c.G, c.B)
	}
	return ""
}

// ToHex returns "#RRGGBB" for RGB colors and the empty string otherwise.
func (c Color) ToHex() string {
	if c.Type != ColorTypeRGB {
		return ""
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Blend interpolates between two RGB colors in RGB space. t is clamped
// to [0, 1]; t=0 yields c, t=1 yields other. If either side is not an
// RGB color the other side is returned unchanged.
func (c Color) Blend(other Color, t float64) Color {
	if !c.IsRGB() {
		return other
	}
	if !other.IsRGB() {
		return c
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	a := colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
	b := colorful.Color{R: float64(other.R) / 255.0, G: float64(other.G) / 255.0, B: float64(other.B) / 255.0}
	r8, g8, b8 := a.BlendRgb(b, t).Clamped().RGB255()
	return RGB(r8, g8, b8)
}

func (c Color) String() string {
	switch c.Type {
	case ColorTypeReset:
		return "reset"
	case ColorTypeRGB:
		return c.ToHex()
	}
	return "none"
}
