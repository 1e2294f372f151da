package render

import (
	"math"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

func collect(tri Triangle) []Pixel {
	var out []Pixel
	for px := range TriangleToPixels(tri) {
		out = append(out, px)
	}
	return out
}

func TestTriangleToPixelsRightTriangle(t *testing.T) {
	tri := NewTriangle(
		math3d.VUV(0, 0, 0, 0, 0),
		math3d.VUV(4, 0, 0, 0, 0),
		math3d.VUV(0, 4, 0, 0, 0),
		ColorWhite,
	)

	got := collect(tri)
	if len(got) != 15 {
		t.Fatalf("got %d pixels, want 15", len(got))
	}
	seen := make(map[[2]int]bool)
	for _, px := range got {
		if px.X+px.Y > 4 || px.X < 0 || px.Y < 0 {
			t.Errorf("pixel %+v outside the triangle", px)
		}
		key := [2]int{px.X, px.Y}
		if seen[key] {
			t.Errorf("pixel %+v emitted twice", px)
		}
		seen[key] = true
	}
}

func TestTriangleToPixelsCoversBothHalves(t *testing.T) {
	// The middle vertex splits the triangle at x = 2.
	tri := NewTriangle(
		math3d.VUV(4, 0, 0, 0, 0),
		math3d.VUV(0, 0, 0, 0, 0),
		math3d.VUV(2, 4, 0, 0, 0),
		ColorWhite,
	)

	perColumn := make(map[int]int)
	for _, px := range collect(tri) {
		perColumn[px.X]++
	}

	want := map[int]int{0: 1, 1: 3, 2: 5, 3: 3, 4: 1}
	for x, n := range want {
		if perColumn[x] != n {
			t.Errorf("column %d has %d pixels, want %d", x, perColumn[x], n)
		}
	}
	if len(perColumn) != len(want) {
		t.Errorf("covered columns = %v", perColumn)
	}
}

func TestTriangleToPixelsInterpolatesUV(t *testing.T) {
	tri := NewTriangle(
		math3d.VUV(0, 0, 0, 0, 0),
		math3d.VUV(8, 0, 0, 8, 0),
		math3d.VUV(0, 8, 0, 0, 8),
		ColorWhite,
	)

	for px := range TriangleToPixels(tri) {
		if px.U != px.X {
			t.Errorf("pixel %+v: U should follow X exactly", px)
		}
		if px.V > px.Y || px.V < px.Y-1 {
			t.Errorf("pixel %+v: V should truncate towards Y", px)
		}
	}
}

func TestTriangleToPixelsDegenerate(t *testing.T) {
	vertical := NewTriangle(
		math3d.VUV(3, 0, 0, 0, 0),
		math3d.VUV(3, 5, 0, 0, 0),
		math3d.VUV(3, 9, 0, 0, 0),
		ColorWhite,
	)
	if got := collect(vertical); len(got) != 0 {
		t.Errorf("zero-width triangle produced %d pixels", len(got))
	}
}

func TestTriangleToPixelsStopsEarly(t *testing.T) {
	tri := NewTriangle(
		math3d.VUV(0, 0, 0, 0, 0),
		math3d.VUV(20, 0, 0, 0, 0),
		math3d.VUV(0, 20, 0, 0, 0),
		ColorWhite,
	)

	n := 0
	for range TriangleToPixels(tri) {
		n++
		if n == 5 {
			break
		}
	}
	if n != 5 {
		t.Errorf("iterated %d pixels, want 5", n)
	}
}

func BenchmarkTriangleToPixels(b *testing.B) {
	tri := NewTriangle(
		math3d.VUV(3, 2, 0, 0, 0),
		math3d.VUV(120, 40, 0, 64, 0),
		math3d.VUV(50, 90, 0, 0, 64),
		ColorWhite,
	)

	for b.Loop() {
		for range TriangleToPixels(tri) {
		}
	}
}

func TestTriangleToPixelsOutOfRangeVertices(t *testing.T) {
	const limit = 1 << 22

	tests := []struct {
		name string
		tri  Triangle
		none bool
	}{
		{"positive infinity", uvTri(math3d.VUV(0, 0, 1, 0, 0), math3d.VUV(math.Inf(1), 3, 1, 0, 0), math3d.VUV(0, 5, 1, 0, 0)), true},
		{"negative infinity", uvTri(math3d.VUV(math.Inf(-1), 0, 1, 0, 0), math3d.VUV(4, 3, 1, 0, 0), math3d.VUV(0, 5, 1, 0, 0)), true},
		{"nan", uvTri(math3d.VUV(0, 0, 1, 0, 0), math3d.VUV(4, math.NaN(), 1, 0, 0), math3d.VUV(0, 5, 1, 0, 0)), true},
		{"beyond float precision", uvTri(math3d.VUV(0, 0, 1, 0, 0), math3d.VUV(1e20, 3, 1, 0, 0), math3d.VUV(0, 5, 1, 0, 0)), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := 0
			for px := range TriangleToPixels(tc.tri) {
				n++
				if n > limit {
					t.Fatal("pixel sequence did not end")
				}
				if px.X > maxScanCoord || px.X < -maxScanCoord || px.Y > maxScanCoord || px.Y < -maxScanCoord {
					t.Fatalf("pixel %v outside the scan window", px)
				}
			}
			if tc.none && n != 0 {
				t.Errorf("got %d pixels, want none", n)
			}
			if !tc.none && n == 0 {
				t.Error("expected the on-screen part to be covered")
			}
		})
	}
}
