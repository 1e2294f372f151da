package render

import (
	"github.com/taigrr/facet/pkg/math3d"
)

// Frustum is the camera's viewing volume as six world-space planes, each
// with its normal pointing inward.
// Planes are ordered: Left, Right, Bottom, Top, Near, Far.
type Frustum struct {
	Planes [6]Plane
}

// FrustumPlane indices for clarity.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts frustum planes from a view-projection matrix
// (Gribb/Hartmann). A point v is inside when the clip coordinates c = v·M
// satisfy -w <= x <= w, -w <= y <= w and 0 <= z <= w.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	// Column j of a row-vector matrix yields clip component j.
	col := func(j int) (math3d.Vec3, float64) {
		return math3d.V3(m[j], m[4+j], m[8+j]), m[12+j]
	}
	x, xd := col(0)
	y, yd := col(1)
	z, zd := col(2)
	w, wd := col(3)

	f := Frustum{Planes: [6]Plane{
		FrustumLeft:   {Normal: w.Add(x), D: wd + xd},
		FrustumRight:  {Normal: w.Sub(x), D: wd - xd},
		FrustumBottom: {Normal: w.Add(y), D: wd + yd},
		FrustumTop:    {Normal: w.Sub(y), D: wd - yd},
		FrustumNear:   {Normal: z, D: zd},
		FrustumFar:    {Normal: w.Sub(z), D: wd - zd},
	}}
	for i := range f.Planes {
		f.Planes[i] = f.Planes[i].normalized()
	}
	return f
}

// Frustum returns the camera's current viewing volume.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}

// IntersectAABB reports whether any part of box may be inside the frustum.
func (f Frustum) IntersectAABB(box AABB) bool {
	return !f.outside(box, f.Planes[:])
}

// outside reports whether box lies wholly outside one of planes.
func (f Frustum) outside(box AABB, planes []Plane) bool {
	for _, p := range planes {
		if box.Outside(p) {
			return true
		}
	}
	return false
}

// ContainsPoint tests if a point is inside the frustum.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for _, plane := range f.Planes {
		if !plane.Inside(p) {
			return false
		}
	}
	return true
}

// IntersectsSphere tests if a sphere intersects the frustum.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for _, plane := range f.Planes {
		if plane.SignedDistance(center) < -radius {
			return false
		}
	}
	return true
}

// normalized scales the plane equation so the normal has unit length.
func (p Plane) normalized() Plane {
	l := p.Normal.Len()
	if l == 0 {
		return p
	}
	return Plane{Normal: p.Normal.Div(l), D: p.D / l}
}
