// Package render carries triangles from object space to the screen: world
// transform and back-face rejection, view and projection, plane clipping,
// point-light shading, and scan conversion into a framebuffer.
package render

import (
	"github.com/taigrr/facet/pkg/math3d"
)

// CullThreshold is the lowest normal·forward a triangle may have and still be
// drawn. It sits below zero so faces turning edge-on do not pop out early.
const CullThreshold = -0.4

// Visible reports whether a face with normal passes the back-face test
// against the camera's forward direction.
func Visible(normal, forward math3d.Vec3) bool {
	return normal.Dot(forward) > CullThreshold
}

// TransformTriangle moves the vertices of tri through m. Normal, colour,
// shade and world centroid are left as they are.
func TransformTriangle(tri Triangle, m math3d.Mat4) Triangle {
	for i := range tri.P {
		tri.P[i] = m.MulUV(tri.P[i])
	}
	return tri
}

// RasterThing places every triangle of thing in the world: rotated by rot
// (degrees, X then Y then Z), back-face tested against forward, then
// translated to pos. The result is in world space with fresh normals and
// centroids, in mesh order.
func RasterThing(thing Thing, pos, rot, forward math3d.Vec3) []Triangle {
	world := math3d.Rotation(rot)
	out := make([]Triangle, 0, thing.TriangleCount())
	for _, mesh := range thing {
		for _, tri := range mesh {
			tri = tri.Rotate(world)
			if !Visible(tri.Normal, forward) {
				continue
			}
			out = append(out, tri.Translate(pos))
		}
	}
	return out
}
