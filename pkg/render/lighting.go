package render

import (
	"github.com/taigrr/facet/pkg/math3d"
)

// lightFlip mirrors X on the surface normal before the light dot product.
var lightFlip = math3d.V3(-1, 1, 1)

// Light is a point light with a hard radius. Inside the radius its
// contribution falls off as 1 - (d/r)².
type Light struct {
	Position math3d.Vec3
	Strength float64
	Radius   float64
	Color    Color
}

// NewLight creates a white light.
func NewLight(pos math3d.Vec3, strength, radius float64) Light {
	return Light{Position: pos, Strength: strength, Radius: radius, Color: ColorWhite}
}

// contribution returns the unclamped term light adds at pos, and false when
// pos is out of reach.
func (l Light) contribution(pos, normal math3d.Vec3) (float64, bool) {
	if l.Radius <= 0 {
		return 0, false
	}
	dist := l.Position.Distance(pos)
	if dist > l.Radius {
		return 0, false
	}
	ratio := dist / l.Radius
	k := 1 - ratio*ratio
	dir := l.Position.Direction(pos)
	return dir.Dot(normal.Mul(lightFlip)) * k * l.Strength, true
}

// Shade sums the contribution of every light in range of pos. The running
// total is clamped to [0, 1] after each light, so order matters only at the
// clamp boundaries. No lights means no light: the result is 0.
func Shade(lights []Light, pos, normal math3d.Vec3) float64 {
	shade := 0.0
	for _, l := range lights {
		c, ok := l.contribution(pos, normal)
		if !ok {
			continue
		}
		shade = clamp01(shade + c)
	}
	return shade
}

// ShadeRGB is Shade per colour channel, tinting each contribution by its
// light's colour. Channels are in [0, 1].
func ShadeRGB(lights []Light, pos, normal math3d.Vec3) math3d.Vec3 {
	var rgb math3d.Vec3
	for _, l := range lights {
		c, ok := l.contribution(pos, normal)
		if !ok {
			continue
		}
		tint := math3d.V3(float64(l.Color.R), float64(l.Color.G), float64(l.Color.B)).Scale(c / 255)
		rgb = rgb.Add(tint)
		rgb = math3d.V3(clamp01(rgb.X), clamp01(rgb.Y), clamp01(rgb.Z))
	}
	return rgb
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
