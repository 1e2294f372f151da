package render

import (
	"math"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

// testFrustum is the default camera's volume: at the origin looking down +Z
// with a 90° field of view, square viewport, near 0.1 and far 1000.
func testFrustum() Frustum {
	return NewCamera(64, 64).Frustum()
}

func TestPlaneNormalized(t *testing.T) {
	plane := Plane{Normal: math3d.V3(0, 3, 4), D: 10}.normalized()

	// Normal should have length 1
	if length := plane.Normal.Len(); math.Abs(length-1.0) > 1e-9 {
		t.Errorf("normalized normal length = %v, want 1.0", length)
	}
	if !plane.Normal.ApproxEqual(math3d.V3(0, 0.6, 0.8), 1e-9) {
		t.Errorf("normal = %v, want (0, 0.6, 0.8)", plane.Normal)
	}
	// D should be scaled too (10/5 = 2)
	if math.Abs(plane.D-2.0) > 1e-9 {
		t.Errorf("D = %v, want 2.0", plane.D)
	}

	zero := Plane{D: 3}.normalized()
	if zero.D != 3 {
		t.Errorf("zero normal changed D to %v", zero.D)
	}
}

func TestAABBBasics(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -2, -3), math3d.V3(1, 2, 3))

	if center := box.Center(); center != math3d.Zero3() {
		t.Errorf("center = %v, want (0, 0, 0)", center)
	}
	if size := box.Size(); size != math3d.V3(2, 4, 6) {
		t.Errorf("size = %v, want (2, 4, 6)", size)
	}
	if !box.ContainsPoint(math3d.V3(1, -2, 0)) || box.ContainsPoint(math3d.V3(0, 0, 3.5)) {
		t.Error("ContainsPoint disagrees with the box extent")
	}
}

func TestAABBTransform(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))

	t.Run("translation", func(t *testing.T) {
		transformed := box.Transform(math3d.Translate(math3d.V3(10, 20, 30)))
		if transformed.Min != math3d.V3(9, 19, 29) || transformed.Max != math3d.V3(11, 21, 31) {
			t.Errorf("translated = %v, want (9, 19, 29)-(11, 21, 31)", transformed)
		}
	})

	t.Run("rotation grows the box", func(t *testing.T) {
		transformed := box.Transform(math3d.RotationY(45))
		want := math.Sqrt2
		if math.Abs(transformed.Max.X-want) > 1e-9 || math.Abs(transformed.Min.Z+want) > 1e-9 {
			t.Errorf("rotated = %v, want x and z extents of ±%v", transformed, want)
		}
	})
}

func TestFrustumPlanesNormalized(t *testing.T) {
	for i, plane := range testFrustum().Planes {
		if length := plane.Normal.Len(); math.Abs(length-1.0) > 1e-6 {
			t.Errorf("plane %d normal length = %v, want 1.0", i, length)
		}
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	frustum := testFrustum()

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"center near", math3d.V3(0, 0, 1), true},
		{"center mid", math3d.V3(0, 0, 500), true},
		{"center far", math3d.V3(0, 0, 999), true},
		{"inside edge", math3d.V3(1.9, -1.9, 2), true},
		{"behind camera", math3d.V3(0, 0, -1), false},
		{"too far", math3d.V3(0, 0, 2000), false},
		{"too close", math3d.V3(0, 0, 0.05), false},
		{"right of view", math3d.V3(3, 0, 2), false},
		{"above view", math3d.V3(0, 3, 2), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.ContainsPoint(tc.point); got != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestFrustumIntersectAABB(t *testing.T) {
	frustum := testFrustum()

	tests := []struct {
		name     string
		box      AABB
		expected bool
	}{
		{"fully inside", NewAABB(math3d.V3(-1, -1, 5), math3d.V3(1, 1, 10)), true},
		{"crosses near plane", NewAABB(math3d.V3(-1, -1, -2), math3d.V3(1, 1, 2)), true},
		{"behind camera", NewAABB(math3d.V3(-1, -1, -10), math3d.V3(1, 1, -5)), false},
		{"beyond far plane", NewAABB(math3d.V3(-1, -1, 1500), math3d.V3(1, 1, 2000)), false},
		{"far to the right", NewAABB(math3d.V3(100, -1, 5), math3d.V3(110, 1, 10)), false},
		{"contains frustum", NewAABB(math3d.V3(-2000, -2000, -2000), math3d.V3(2000, 2000, 2000)), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.IntersectAABB(tc.box); got != tc.expected {
				t.Errorf("IntersectAABB(%v) = %v, want %v", tc.box, got, tc.expected)
			}
		})
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	frustum := testFrustum()

	tests := []struct {
		name     string
		center   math3d.Vec3
		radius   float64
		expected bool
	}{
		{"inside", math3d.V3(0, 0, 10), 1.0, true},
		{"straddles near plane", math3d.V3(0, 0, -0.5), 1.0, true},
		{"behind", math3d.V3(0, 0, -5), 1.0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.IntersectsSphere(tc.center, tc.radius); got != tc.expected {
				t.Errorf("IntersectsSphere(%v, %v) = %v, want %v", tc.center, tc.radius, got, tc.expected)
			}
		})
	}
}

func TestFrustumWithRotatedCamera(t *testing.T) {
	cam := NewCamera(64, 64)
	cam.SetTarget(math3d.V3(10, 0, 0)) // looking along +X
	frustum := cam.Frustum()

	if !frustum.ContainsPoint(math3d.V3(10, 0, 0)) {
		t.Error("point in front of rotated camera should be visible")
	}
	if frustum.ContainsPoint(math3d.V3(-10, 0, 0)) {
		t.Error("point behind rotated camera should not be visible")
	}
	if frustum.ContainsPoint(math3d.V3(0, 0, 10)) {
		t.Error("point on the old view axis should now be outside")
	}
}

func BenchmarkFrustumIntersectAABB(b *testing.B) {
	frustum := testFrustum()
	box := NewAABB(math3d.V3(-1, -1, 5), math3d.V3(1, 1, 10))

	for b.Loop() {
		_ = frustum.IntersectAABB(box)
	}
}

func BenchmarkFrustumExtraction(b *testing.B) {
	cam := NewCamera(320, 240)
	cam.Configure(math3d.V3(0, 10, -20), math3d.Zero3(), 320, 240)
	viewProj := cam.ViewProjectionMatrix()

	for b.Loop() {
		_ = NewFrustumFromMatrix(viewProj)
	}
}
