package models

import (
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

// cubeFaces lists each face as its outward axis and two in-plane axes.
var cubeFaces = [6]struct {
	normal, u, v math3d.Vec3
}{
	{math3d.V3(0, 0, -1), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)},  // front
	{math3d.V3(0, 0, 1), math3d.V3(-1, 0, 0), math3d.V3(0, 1, 0)},  // back
	{math3d.V3(-1, 0, 0), math3d.V3(0, 0, -1), math3d.V3(0, 1, 0)}, // left
	{math3d.V3(1, 0, 0), math3d.V3(0, 0, 1), math3d.V3(0, 1, 0)},   // right
	{math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1)},   // top
	{math3d.V3(0, -1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, -1)}, // bottom
}

// NewCube builds a cube of side size centred on the origin: six faces of
// two triangles each, with per-face UVs spanning [0, 1]. Every face is wound
// so the raw edge cross product points out of the cube.
func NewCube(size float64, c render.Color) *Model {
	h := size / 2
	mesh := make(render.Mesh, 0, 12)

	for _, f := range cubeFaces {
		centre := f.normal.Scale(h)
		corner := func(su, sv, tu, tv float64) math3d.VecUV {
			p := centre.Add(f.u.Scale(su * h)).Add(f.v.Scale(sv * h))
			return math3d.WithUV(p, tu, tv)
		}
		bl := corner(-1, -1, 0, 1)
		br := corner(1, -1, 1, 1)
		tr := corner(1, 1, 1, 0)
		tl := corner(-1, 1, 0, 0)

		a := render.NewTriangle(bl, tl, tr, c)
		b := render.NewTriangle(bl, tr, br, c)
		if rawCross(a).Dot(f.normal) < 0 {
			a = render.NewTriangle(bl, tr, tl, c)
			b = render.NewTriangle(bl, br, tr, c)
		}
		mesh = append(mesh, a, b)
	}

	return NewModel("cube", mesh)
}

func rawCross(t render.Triangle) math3d.Vec3 {
	return t.P[1].Vec3.Sub(t.P[0].Vec3).Cross(t.P[2].Vec3.Sub(t.P[0].Vec3))
}
