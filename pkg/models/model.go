// Package models loads geometry from disk into render meshes and builds the
// procedural shapes used when no file is given.
package models

import (
	"slices"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

// Model is loaded geometry, one render mesh per source mesh.
type Model struct {
	Name   string
	Meshes []render.Mesh

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewModel creates a model and computes its bounds.
func NewModel(name string, meshes ...render.Mesh) *Model {
	m := &Model{Name: name, Meshes: meshes}
	m.CalculateBounds()
	return m
}

// Thing returns the meshes in the form a scene stores.
func (m *Model) Thing() render.Thing {
	return render.Thing(m.Meshes)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Model) CalculateBounds() {
	box := m.Thing().Bounds()
	m.BoundsMin = box.Min
	m.BoundsMax = box.Max
}

// Center returns the center of the bounding box.
func (m *Model) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Model) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Model) TriangleCount() int {
	return m.Thing().TriangleCount()
}

// Transform applies mat to every vertex and rebuilds normals, centroids
// and bounds.
func (m *Model) Transform(mat math3d.Mat4) {
	for _, mesh := range m.Meshes {
		for i, tri := range mesh {
			mesh[i] = render.NewTriangle(mat.MulUV(tri.P[0]), mat.MulUV(tri.P[1]), mat.MulUV(tri.P[2]), tri.Color)
		}
	}
	m.CalculateBounds()
}

// Normalize centres the model on the origin and scales it so its largest
// dimension equals size. Empty or flat-to-a-point models are only centred.
func (m *Model) Normalize(size float64) {
	mat := math3d.Translate(m.Center().Negate())
	s := m.Size()
	if largest := max(s.X, s.Y, s.Z); largest > 0 {
		k := size / largest
		mat = mat.Mul(math3d.Scale(math3d.V3(k, k, k)))
	}
	m.Transform(mat)
}

// Clone creates a deep copy of the model.
func (m *Model) Clone() *Model {
	clone := &Model{
		Name:      m.Name,
		Meshes:    make([]render.Mesh, len(m.Meshes)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	for i, mesh := range m.Meshes {
		clone.Meshes[i] = slices.Clone(mesh)
	}
	return clone
}
