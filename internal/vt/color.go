package vt

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/spellcaster-labs/terminal-core/internal/grid"
)

// xterm256RGB computes the standard xterm 256-color palette RGB triple for
// index 0-255: 0-15 are the basic/bright ANSI colors, 16-231 are the 6x6x6
// color cube, 232-255 are the grayscale ramp.
func xterm256RGB(idx uint8) (uint8, uint8, uint8) {
	if idx < 16 {
		return ansi16RGB[idx][0], ansi16RGB[idx][1], ansi16RGB[idx][2]
	}
	if idx < 232 {
		i := int(idx) - 16
		r := cubeLevel(i / 36)
		g := cubeLevel((i / 6) % 6)
		b := cubeLevel(i % 6)
		return r, g, b
	}
	level := uint8(8 + (int(idx)-232)*10)
	return level, level, level
}

func cubeLevel(n int) uint8 {
	if n == 0 {
		return 0
	}
	return uint8(55 + n*40)
}

var ansi16RGB = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// ColorToHex resolves a grid.Color (default, indexed, or RGB) to a "#rrggbb"
// string for UI consumers that need a concrete rendering color, normalizing
// 256-color and true-color SGR sub-sequences through the same conversion
// path (spec.md §4.3 SGR 38/48).
func ColorToHex(c grid.Color, defaultHex string) string {
	switch c.Kind {
	case grid.ColorIndexed:
		r, g, b := xterm256RGB(c.Indexed)
		return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Clamped().Hex()
	case grid.ColorRGB:
		return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Clamped().Hex()
	default:
		return defaultHex
	}
}
