// Package colorutil provides shared color utilities for layer rendering.
package colorutil

import (
	"fmt"
	"image/color"
)

// Conventional render colors for board layers.
var (
	Copper       = color.RGBA{R: 0xc8, G: 0x50, B: 0x28, A: 0xff}
	CopperBottom = color.RGBA{R: 0x3c, G: 0x78, B: 0xd2, A: 0xff}
	Silkscreen   = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	Soldermask   = color.RGBA{R: 0x20, G: 0x78, B: 0x30, A: 0xff}
	Paste        = color.RGBA{R: 0xa0, G: 0xa0, B: 0xa8, A: 0xff}
	Outline      = color.RGBA{R: 0xe8, G: 0xc8, B: 0x30, A: 0xff}
)

// WithOpacity scales a color's alpha channel by opacity in [0, 1].
func WithOpacity(c color.RGBA, opacity float64) color.RGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}

// Hex renders a color as a #rrggbb string.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend mixes two colors with t in [0, 1], where 0 yields a and 1 yields b.
func Blend(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: lerp(a.A, b.A),
	}
}
