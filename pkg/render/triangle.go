package render

import (
	"github.com/taigrr/facet/pkg/math3d"
)

// normalFlip is applied to every recomputed face normal. Y and Z are mirrored
// so normals match the screen's downward Y and the camera's +Z forward.
var normalFlip = math3d.V3(1, -1, -1)

// Triangle is the unit of work for the whole pipeline.
type Triangle struct {
	P      [3]math3d.VecUV
	Normal math3d.Vec3
	Color  Color
	Shade  float64

	// wpos is the world-space centroid, kept through view, projection and
	// clipping so shading can happen after the triangle left world space.
	wpos math3d.Vec3
}

// Mesh is an ordered list of triangles.
type Mesh []Triangle

// Thing is an ordered list of meshes, the unit stored in a scene.
type Thing []Mesh

// NewTriangle builds a triangle and derives its normal and centroid.
func NewTriangle(p1, p2, p3 math3d.VecUV, c Color) Triangle {
	tri := Triangle{P: [3]math3d.VecUV{p1, p2, p3}, Color: c}
	tri.Normal = tri.FaceNormal()
	tri.wpos = tri.Centroid()
	return tri
}

// FaceNormal computes the normal from the current vertex positions.
func FaceNormal(p1, p2, p3 math3d.Vec3) math3d.Vec3 {
	return p2.Sub(p1).Cross(p3.Sub(p1)).Normalize().Mul(normalFlip)
}

// FaceNormal computes the normal from the triangle's current vertices.
func (t Triangle) FaceNormal() math3d.Vec3 {
	return FaceNormal(t.P[0].Vec3, t.P[1].Vec3, t.P[2].Vec3)
}

// Centroid returns the mean of the current vertex positions.
func (t Triangle) Centroid() math3d.Vec3 {
	return t.P[0].Vec3.Add(t.P[1].Vec3).Add(t.P[2].Vec3).Scale(1.0 / 3)
}

// WPos returns the world-space centroid recorded at raster time.
func (t Triangle) WPos() math3d.Vec3 {
	return t.wpos
}

// MeanZ is the painter's sort key.
func (t Triangle) MeanZ() float64 {
	return (t.P[0].Z + t.P[1].Z + t.P[2].Z) / 3
}

// Translate moves every vertex by d and re-records the centroid.
func (t Triangle) Translate(d math3d.Vec3) Triangle {
	for i := range t.P {
		t.P[i] = t.P[i].Add(d)
	}
	t.wpos = t.Centroid()
	return t
}

// Rotate applies a rotation matrix, then recomputes normal and centroid.
func (t Triangle) Rotate(m math3d.Mat4) Triangle {
	t = TransformTriangle(t, m)
	t.Normal = t.FaceNormal()
	t.wpos = t.Centroid()
	return t
}

// withVertices returns a copy carrying new vertices and every other attribute
// of t unchanged.
func (t Triangle) withVertices(p1, p2, p3 math3d.VecUV) Triangle {
	t.P = [3]math3d.VecUV{p1, p2, p3}
	return t
}

// Area returns the unsigned area of the triangle.
func (t Triangle) Area() float64 {
	return t.P[1].Vec3.Sub(t.P[0].Vec3).Cross(t.P[2].Vec3.Sub(t.P[0].Vec3)).Len() / 2
}

// TriangleCount returns the number of triangles across all meshes.
func (th Thing) TriangleCount() int {
	n := 0
	for _, m := range th {
		n += len(m)
	}
	return n
}

// Bounds returns the box around every vertex of the thing.
// An empty thing yields the zero box.
func (th Thing) Bounds() AABB {
	first := true
	var box AABB
	for _, m := range th {
		for _, tri := range m {
			for _, p := range tri.P {
				if first {
					box = AABB{Min: p.Vec3, Max: p.Vec3}
					first = false
					continue
				}
				box.Min = box.Min.Min(p.Vec3)
				box.Max = box.Max.Max(p.Vec3)
			}
		}
	}
	return box
}
