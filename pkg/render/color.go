package render

import (
	"image/color"
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorRed   = color.RGBA{255, 0, 0, 255}
	ColorGreen = color.RGBA{0, 255, 0, 255}
	ColorBlue  = color.RGBA{0, 0, 255, 255}
	ColorGray  = color.RGBA{128, 128, 128, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// MultiplyColor multiplies a color by a scalar (for lighting).
func MultiplyColor(c Color, intensity float64) Color {
	return Color{
		R: channel(float64(c.R) * intensity),
		G: channel(float64(c.G) * intensity),
		B: channel(float64(c.B) * intensity),
		A: c.A,
	}
}

// TintColor multiplies each channel by the matching component of rgb.
func TintColor(c Color, rgb math3d.Vec3) Color {
	return Color{
		R: channel(float64(c.R) * rgb.X),
		G: channel(float64(c.G) * rgb.Y),
		B: channel(float64(c.B) * rgb.Z),
		A: c.A,
	}
}

func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v)))
}
