package cadence

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ShiftHSV adds hue (degrees), saturation and value offsets to c in HSV space
// and converts back to RGB. Alpha is untouched. Saturation and value are
// clamped to [0, 1]; hue wraps.
func ShiftHSV(c Color, hue, sat, val float64) Color {
	if hue == 0 && sat == 0 && val == 0 {
		return c
	}
	h, s, v := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsv()
	h = math.Mod(h+hue, 360)
	if h < 0 {
		h += 360
	}
	shifted := colorful.Hsv(h, clamp01(s+sat), clamp01(v+val)).Clamped()
	return Color{R: shifted.R, G: shifted.G, B: shifted.B, A: c.A}
}

// OpacityFactor converts a stored opacity channel value into an alpha
// multiplier using the level format's inverted encoding 1 - (opacity - 1),
// clamped to [0, 1].
func OpacityFactor(opacity float32) float64 {
	return clamp01(1 - (float64(opacity) - 1))
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
