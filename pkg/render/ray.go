package render

import (
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// Ray is a half-line from Origin along the unit direction Dir.
type Ray struct {
	Origin math3d.Vec3
	Dir    math3d.Vec3
}

// Hit describes where a ray met a triangle.
type Hit struct {
	Distance float64
	Point    math3d.Vec3
	U, V     float64 // Barycentric weights of the second and third vertex
	Index    int     // Index of the triangle in the searched slice
}

// IntersectTriangle tests the ray against both faces of tri using the
// Möller–Trumbore method. Hits at or behind the origin are ignored.
func (r Ray) IntersectTriangle(tri Triangle) (Hit, bool) {
	p0, p1, p2 := tri.P[0].Vec3, tri.P[1].Vec3, tri.P[2].Vec3
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)

	h := r.Dir.Cross(e2)
	det := e1.Dot(h)
	if math.Abs(det) < math3d.Epsilon {
		return Hit{}, false
	}
	inv := 1 / det

	s := r.Origin.Sub(p0)
	u := s.Dot(h) * inv
	if u < 0 || u > 1 {
		return Hit{}, false
	}

	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}

	t := e2.Dot(q) * inv
	if t <= math3d.Epsilon {
		return Hit{}, false
	}
	return Hit{Distance: t, Point: r.At(t), U: u, V: v}, true
}

// IntersectTriangles returns the nearest hit among tris.
func (r Ray) IntersectTriangles(tris []Triangle) (Hit, bool) {
	best := Hit{Distance: math.Inf(1), Index: -1}
	for i, tri := range tris {
		h, ok := r.IntersectTriangle(tri)
		if ok && h.Distance < best.Distance {
			h.Index = i
			best = h
		}
	}
	return best, best.Index >= 0
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) math3d.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// ScreenRay returns the world-space ray through pixel (x, y).
func (c *Camera) ScreenRay(x, y float64) Ray {
	proj := c.ProjectionMatrix()
	ndcX := 2*x/float64(c.Width) - 1
	ndcY := 1 - 2*y/float64(c.Height)

	// Undo the projection scale on a point at view depth 1.
	dir := math3d.V3(ndcX/proj.Get(0, 0), ndcY/proj.Get(1, 1), 1)
	toWorld := math3d.PointAt(c.Position, c.Target, c.Up)
	return Ray{Origin: c.Position, Dir: toWorld.MulVec3Dir(dir).Normalize()}
}
