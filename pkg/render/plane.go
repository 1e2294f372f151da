package render

import (
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// Plane is n·p + D = 0 with a unit normal. Points with a non-negative signed
// distance are on the inside.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// NewPlane creates the plane through point facing normal.
// The normal is normalized first.
func NewPlane(point, normal math3d.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, D: -n.Dot(point)}
}

// NearPlane keeps view-space points with z >= near.
func NearPlane(near float64) Plane {
	return NewPlane(math3d.V3(0, 0, near), math3d.Forward())
}

// SignedDistance returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) SignedDistance(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Inside reports whether point is on the kept side. Points on the plane count.
func (p Plane) Inside(point math3d.Vec3) bool {
	return p.SignedDistance(point) >= 0
}

// IntersectSegment finds where the segment a→b crosses the plane.
// The texture coordinate is interpolated at the same parameter as the
// position. ok is false when the segment runs parallel to the plane.
func (p Plane) IntersectSegment(a, b math3d.VecUV) (math3d.VecUV, bool) {
	ad := a.Vec3.Dot(p.Normal)
	bd := b.Vec3.Dot(p.Normal)
	denom := bd - ad
	if math.Abs(denom) < math3d.Epsilon {
		return math3d.VecUV{}, false
	}
	t := (-p.D - ad) / denom
	return a.Lerp(b, t), true
}

// ScreenEdges returns the four viewport planes in clip order:
// top, bottom, left, right.
func ScreenEdges(width, height int) [4]Plane {
	w, h := float64(width), float64(height)
	return [4]Plane{
		NewPlane(math3d.V3(0, 0, 0), math3d.V3(0, 1, 0)),
		NewPlane(math3d.V3(0, h-1, 0), math3d.V3(0, -1, 0)),
		NewPlane(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0)),
		NewPlane(math3d.V3(w-1, 0, 0), math3d.V3(-1, 0, 0)),
	}
}
