package field

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSLA is a hue/saturation/lightness colour with a float alpha. H is in
// degrees, S, L and A in [0, 1].
type HSLA struct {
	H, S, L, A float64
}

// PointColor returns the fill colour for a point or link of the given hue.
func PointColor(hue int, alpha float64) HSLA {
	return HSLA{H: float64(hue), S: 1, L: 0.5, A: alpha}
}

// NRGBA converts to a non-premultiplied 8-bit colour.
func (c HSLA) NRGBA() color.NRGBA {
	r, g, b := colorful.Hsl(c.H, c.S, c.L).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha8(c.A)}
}

// Hex returns the opaque colour as #rrggbb.
func (c HSLA) Hex() string {
	return colorful.Hsl(c.H, c.S, c.L).Hex()
}

// RGBA is an 8-bit colour with a float alpha, used for the trail overlay.
type RGBA struct {
	R, G, B uint8
	A       float64
}

// NRGBA converts to a non-premultiplied 8-bit colour.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha8(c.A)}
}

// Hex returns the opaque colour as #rrggbb.
func (c RGBA) Hex() string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

func alpha8(a float64) uint8 {
	if a <= 0 || math.IsNaN(a) {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return uint8(math.Round(a * 255))
}
