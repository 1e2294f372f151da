package render

import (
	"iter"
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// maxScanCoord bounds the columns and rows the scan converter walks.
// Screen-clipped triangles never come close.
const maxScanCoord = 1 << 16

// Pixel is one covered screen position with its texel coordinate.
type Pixel struct {
	X, Y int
	U, V int
}

// TriangleToPixels yields every integer pixel covered by a screen-space
// triangle, column by column from left to right. Each column runs between the
// long edge (leftmost to rightmost vertex) and whichever short edge spans it;
// texture coordinates are interpolated along both edges and then down the
// column, and truncated to texels. A triangle with no horizontal extent or
// a non-finite vertex covers nothing, and the walk never leaves
// [-maxScanCoord, maxScanCoord] on either axis.
func TriangleToPixels(tri Triangle) iter.Seq[Pixel] {
	a, b, c := tri.P[0], tri.P[1], tri.P[2]
	if !a.IsFinite() || !b.IsFinite() || !c.IsFinite() {
		return func(func(Pixel) bool) {}
	}
	if a.X > b.X {
		a, b = b, a
	}
	if b.X > c.X {
		b, c = c, b
	}
	if a.X > b.X {
		a, b = b, a
	}

	return func(yield func(Pixel) bool) {
		width := c.X - a.X
		if width == 0 {
			return
		}

		x0, x1 := scanRange(a.X, c.X)
		for x := x0; x <= x1; x++ {
			long := a.Lerp(c, (x-a.X)/width)
			short := shortEdge(a, b, c, x)

			top, bottom := long, short
			if top.Y > bottom.Y {
				top, bottom = bottom, top
			}
			span := bottom.Y - top.Y

			y0, y1 := scanRange(top.Y, bottom.Y)
			for y := y0; y <= y1; y++ {
				p := top
				if span > 0 {
					p = top.Lerp(bottom, (y-top.Y)/span)
				}
				if !yield(Pixel{X: int(x), Y: int(y), U: int(p.U), V: int(p.V)}) {
					return
				}
			}
		}
	}
}

// shortEdge returns the point at column x on a→b for the left half and on
// b→c for the right half. a, b and c are sorted by x.
func shortEdge(a, b, c math3d.VecUV, x float64) math3d.VecUV {
	if x < b.X && b.X > a.X {
		return a.Lerp(b, (x-a.X)/(b.X-a.X))
	}
	if c.X > b.X {
		return b.Lerp(c, (x-b.X)/(c.X-b.X))
	}
	return b
}

// scanRange returns the integer coordinates within [lo, hi], clamped to the
// walkable window.
func scanRange(lo, hi float64) (float64, float64) {
	return math.Max(math.Ceil(lo), -maxScanCoord), math.Min(math.Floor(hi), maxScanCoord)
}
