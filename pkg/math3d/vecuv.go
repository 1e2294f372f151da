package math3d

// VecUV is a triangle vertex: a position plus a texture coordinate.
// Arithmetic with a plain Vec3 moves the position and leaves U and V alone.
type VecUV struct {
	Vec3
	U, V float64
}

// VUV creates a new VecUV.
func VUV(x, y, z, u, v float64) VecUV {
	return VecUV{Vec3: Vec3{x, y, z}, U: u, V: v}
}

// WithUV attaches a texture coordinate to a position.
func WithUV(p Vec3, u, v float64) VecUV {
	return VecUV{Vec3: p, U: u, V: v}
}

// Pos returns the position part.
func (a VecUV) Pos() Vec3 {
	return a.Vec3
}

// Add translates the position by b.
func (a VecUV) Add(b Vec3) VecUV {
	return VecUV{Vec3: a.Vec3.Add(b), U: a.U, V: a.V}
}

// Sub translates the position by -b.
func (a VecUV) Sub(b Vec3) VecUV {
	return VecUV{Vec3: a.Vec3.Sub(b), U: a.U, V: a.V}
}

// Mul scales the position component-wise by b.
func (a VecUV) Mul(b Vec3) VecUV {
	return VecUV{Vec3: a.Vec3.Mul(b), U: a.U, V: a.V}
}

// Lerp interpolates position and texture coordinate with the same parameter.
func (a VecUV) Lerp(b VecUV, t float64) VecUV {
	return VecUV{
		Vec3: a.Vec3.Lerp(b.Vec3, t),
		U:    a.U + (b.U-a.U)*t,
		V:    a.V + (b.V-a.V)*t,
	}
}
