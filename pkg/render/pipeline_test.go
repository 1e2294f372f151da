package render

import (
	"math"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

// facingTri has raw cross (0,0,-1), so its stored normal is (0,0,1) and it
// faces a camera looking down +Z.
func facingTri() Triangle {
	return NewTriangle(
		math3d.VUV(0, 0, 0, 0, 0),
		math3d.VUV(0, 1, 0, 0, 1),
		math3d.VUV(1, 0, 0, 1, 0),
		ColorWhite,
	)
}

func TestFaceNormalConvention(t *testing.T) {
	tri := facingTri()
	if !tri.Normal.ApproxEqual(math3d.V3(0, 0, 1), 1e-12) {
		t.Errorf("normal = %v, want (0, 0, 1)", tri.Normal)
	}
	if !tri.WPos().ApproxEqual(math3d.V3(1.0/3, 1.0/3, 0), 1e-12) {
		t.Errorf("wpos = %v", tri.WPos())
	}
}

func TestRasterThingKeepsFacingTriangle(t *testing.T) {
	thing := Thing{Mesh{facingTri()}}
	pos := math3d.V3(0, 0, 10)

	got := RasterThing(thing, pos, math3d.Zero3(), math3d.Forward())
	if len(got) != 1 {
		t.Fatalf("got %d triangles, want 1", len(got))
	}
	if got[0].P[0].Pos() != pos {
		t.Errorf("first vertex = %v, want %v", got[0].P[0].Pos(), pos)
	}
	want := math3d.V3(1.0/3, 1.0/3, 10)
	if !got[0].WPos().ApproxEqual(want, 1e-12) {
		t.Errorf("wpos = %v, want %v", got[0].WPos(), want)
	}
}

func TestRasterThingCulling(t *testing.T) {
	tri := facingTri()
	back := NewTriangle(tri.P[0], tri.P[2], tri.P[1], ColorWhite)

	tests := []struct {
		name string
		tri  Triangle
		rot  math3d.Vec3
		want int
	}{
		{"facing", tri, math3d.Zero3(), 1},
		{"back face", back, math3d.Zero3(), 0},
		{"flipped by rotation", tri, math3d.V3(0, 180, 0), 0},
		{"back face turned around", back, math3d.V3(180, 0, 0), 1},
		{"edge on", tri, math3d.V3(90, 0, 0), 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RasterThing(Thing{Mesh{tc.tri}}, math3d.Zero3(), tc.rot, math3d.Forward())
			if len(got) != tc.want {
				t.Errorf("got %d triangles, want %d", len(got), tc.want)
			}
		})
	}
}

func TestVisibleThreshold(t *testing.T) {
	forward := math3d.Forward()
	tests := []struct {
		z    float64
		want bool
	}{
		{1, true},
		{0, true},
		{-0.39, true},
		{-0.4, false},
		{-1, false},
	}
	for _, tc := range tests {
		n := math3d.V3(math.Sqrt(1-tc.z*tc.z), 0, tc.z)
		if got := Visible(n, forward); got != tc.want {
			t.Errorf("Visible(z=%v) = %v, want %v", tc.z, got, tc.want)
		}
	}
}

func TestTransformTriangleKeepsAttributes(t *testing.T) {
	tri := facingTri()
	tri.Shade = 0.7
	moved := TransformTriangle(tri, math3d.Translate(math3d.V3(0, 0, 5)))

	if moved.Normal != tri.Normal || moved.WPos() != tri.WPos() || moved.Shade != 0.7 {
		t.Error("TransformTriangle should only move vertices")
	}
	if moved.P[2].Z != 5 || moved.P[2].U != 1 {
		t.Errorf("vertex = %+v", moved.P[2])
	}
}

func TestRasterThingPreservesMeshOrder(t *testing.T) {
	a := facingTri()
	b := facingTri().Translate(math3d.V3(5, 0, 0))
	c := facingTri().Translate(math3d.V3(10, 0, 0))

	got := RasterThing(Thing{Mesh{a, b}, Mesh{c}}, math3d.Zero3(), math3d.Zero3(), math3d.Forward())
	if len(got) != 3 {
		t.Fatalf("got %d triangles, want 3", len(got))
	}
	for i, want := range []float64{0, 5, 10} {
		if got[i].P[0].X != want {
			t.Errorf("triangle %d starts at x=%v, want %v", i, got[i].P[0].X, want)
		}
	}
}
