package math3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// mgl64 is column-major for column vectors; its memory layout matches ours
// for row vectors, so equivalent transforms compare element by element.
func assertMat(t *testing.T, got Mat4, want mgl64.Mat4) {
	t.Helper()
	for i := range 16 {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("element %d = %v, want %v\ngot  %v\nwant %v", i, got[i], want[i], got, want)
		}
	}
}

func TestRotationMatchesMathgl(t *testing.T) {
	for _, deg := range []float64{0, 15, 90, 135, -60, 270} {
		rad := mgl64.DegToRad(deg)
		assertMat(t, RotationX(deg), mgl64.HomogRotate3DX(rad))
		assertMat(t, RotationZ(deg), mgl64.HomogRotate3DZ(rad))
		// mathgl turns the other way about Y for the same angle.
		assertMat(t, RotationY(deg), mgl64.HomogRotate3DY(-rad))
	}
}

func TestRotationOrder(t *testing.T) {
	rot := V3(30, 45, 60)
	want := RotationX(30).Mul(RotationY(45)).Mul(RotationZ(60))
	if Rotation(rot) != want {
		t.Errorf("Rotation(%v) does not compose X·Y·Z", rot)
	}

	// a.Mul(b) applies a then b: rotate 90 about Z then translate.
	m := RotationZ(90).Mul(Translate(V3(10, 0, 0)))
	got := m.MulVec3(V3(1, 0, 0))
	if !got.ApproxEqual(V3(10, 1, 0), 1e-9) {
		t.Errorf("rotate then translate = %v, want (10, 1, 0)", got)
	}
}

func TestMulMatchesMathgl(t *testing.T) {
	a := Translate(V3(1, -2, 3))
	b := RotationX(40)
	glA := mgl64.Translate3D(1, -2, 3)
	glB := mgl64.HomogRotate3DX(mgl64.DegToRad(40))

	assertMat(t, a.Mul(b), glB.Mul4(glA))
}

func TestInverseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"identity", Identity()},
		{"translate", Translate(V3(3, -7, 2))},
		{"rotation", Rotation(V3(10, 20, 30))},
		{"scaled", Scale(V3(2, 3, 4)).Mul(RotationY(75)).Mul(Translate(V3(1, 2, 3)))},
		{"view", LookAt(V3(4, 2, -6), V3(0, 0, 0), Up())},
	}

	points := []Vec3{V3(0, 0, 0), V3(1, 2, 3), V3(-5, 0.5, 9)}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := tt.m.Inverse()
			assertMat(t, inv, mgl64.Mat4(tt.m).Inv())

			for _, p := range points {
				back := inv.MulVec3(tt.m.MulVec3(p))
				if !back.ApproxEqual(p, 1e-9) {
					t.Errorf("round trip of %v = %v", p, back)
				}
			}
		})
	}
}

func TestInverseSingular(t *testing.T) {
	if got := Scale(V3(1, 0, 1)).Inverse(); got != Identity() {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

func TestDeterminant(t *testing.T) {
	m := Scale(V3(2, 3, 4)).Mul(RotationZ(33)).Mul(Translate(V3(5, 6, 7)))
	if got, want := m.Determinant(), mgl64.Mat4(m).Det(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Determinant = %v, want %v", got, want)
	}
	if got := m.Determinant(); math.Abs(got-24) > 1e-9 {
		t.Errorf("Determinant = %v, want 24", got)
	}
}

func TestLookAt(t *testing.T) {
	t.Run("origin facing +z is identity", func(t *testing.T) {
		m := LookAt(Zero3(), Forward(), Up())
		for i := range 16 {
			if math.Abs(m[i]-Identity()[i]) > 1e-12 {
				t.Fatalf("LookAt = %v, want identity", m)
			}
		}
	})

	t.Run("target lands on +z axis", func(t *testing.T) {
		pos, target := V3(3, 4, -5), V3(-1, 0, 2)
		m := LookAt(pos, target, Up())
		got := m.MulVec3(target)
		want := V3(0, 0, pos.Distance(target))
		if !got.ApproxEqual(want, 1e-9) {
			t.Errorf("target in view space = %v, want %v", got, want)
		}
		if !m.MulVec3(pos).ApproxEqual(Zero3(), 1e-9) {
			t.Errorf("camera position should map to origin, got %v", m.MulVec3(pos))
		}
	})

	t.Run("point at is the inverse", func(t *testing.T) {
		pos, target := V3(1, 2, 3), V3(0, 0, 10)
		m := PointAt(pos, target, Up()).Mul(LookAt(pos, target, Up()))
		for i := range 16 {
			if math.Abs(m[i]-Identity()[i]) > 1e-9 {
				t.Fatalf("PointAt·LookAt = %v, want identity", m)
			}
		}
	})
}

func TestProjection(t *testing.T) {
	near, far := 0.1, 1000.0
	p := Projection(90, 0.75, near, far)

	if got := p.MulVec3(V3(0, 0, near)).Z; math.Abs(got) > 1e-9 {
		t.Errorf("near plane depth = %v, want 0", got)
	}
	if got := p.MulVec3(V3(0, 0, far)).Z; math.Abs(got-1) > 1e-9 {
		t.Errorf("far plane depth = %v, want 1", got)
	}

	// 90 degree fov: x = z lands on the right edge after the aspect squeeze.
	got := p.MulVec3(V3(10, 10, 10))
	if math.Abs(got.X-0.75) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Errorf("projected corner = %v, want (0.75, 1, _)", got)
	}
}

func TestMulVec3SkipsDivideWhenWIsZero(t *testing.T) {
	p := Projection(90, 1, 0.1, 100)
	got := p.MulVec3(V3(2, 3, 0))
	// w = z = 0, so the result stays in clip space.
	want := V3(2, 3, -0.1*100/(100-0.1))
	if !got.ApproxEqual(want, 1e-9) || !got.IsFinite() {
		t.Errorf("MulVec3 at w=0 = %v, want %v", got, want)
	}
}

func TestTransformVector(t *testing.T) {
	m := Scale(V3(2, 2, 2)).Mul(Translate(V3(1, 0, 0)))
	if got := TransformVector(V3(1, 1, 1), m); got != V3(3, 2, 2) {
		t.Errorf("TransformVector = %v, want (3, 2, 2)", got)
	}
}

func TestMulVec3Dir(t *testing.T) {
	m := RotationY(90).Mul(Translate(V3(100, 100, 100)))
	got := m.MulVec3Dir(V3(0, 0, 1))
	if !got.ApproxEqual(V3(-1, 0, 0), 1e-9) {
		t.Errorf("direction = %v, want (-1, 0, 0)", got)
	}
}

func TestMulUVPreservesUV(t *testing.T) {
	v := VUV(1, 0, 0, 0.3, 0.9)
	got := Translate(V3(0, 5, 0)).MulUV(v)
	if got.U != 0.3 || got.V != 0.9 {
		t.Errorf("uv = (%v, %v), want (0.3, 0.9)", got.U, got.V)
	}
	if !got.Pos().ApproxEqual(V3(1, 5, 0), 1e-12) {
		t.Errorf("position = %v", got.Pos())
	}
}

func TestGet(t *testing.T) {
	m := Translate(V3(7, 8, 9))
	if m.Get(3, 0) != 7 || m.Get(3, 2) != 9 {
		t.Errorf("translation row = %v %v", m.Get(3, 0), m.Get(3, 2))
	}
	if got := Scale(V3(2, 3, 4)).Get(1, 1); got != 3 {
		t.Errorf("Get(1, 1) = %v, want 3", got)
	}
}
