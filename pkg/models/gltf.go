package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

// Loader turns model files into Models.
type Loader struct {
	// Color is used for faces whose source has no material colour.
	Color render.Color
}

// NewLoader creates a loader that paints uncoloured faces light gray.
func NewLoader() *Loader {
	return &Loader{Color: render.RGB(200, 200, 200)}
}

// LoadGLTF loads a glTF (.gltf) or binary glTF (.glb) file.
//
// glTF is right-handed with +Z towards the viewer. Z is negated on load so a
// model faces a camera looking down +Z; that mirror also reverses winding,
// so every face has its last two indices swapped.
func (l *Loader) LoadGLTF(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	model := &Model{Name: filepath.Base(path)}
	for _, m := range doc.Meshes {
		mesh, err := l.processMesh(doc, m)
		if err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
		model.Meshes = append(model.Meshes, mesh)
	}
	model.CalculateBounds()

	return model, nil
}

// processMesh flattens every triangle primitive of m into one render mesh.
func (l *Loader) processMesh(doc *gltf.Document, m *gltf.Mesh) (render.Mesh, error) {
	var mesh render.Mesh

	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return nil, fmt.Errorf("read positions: %w", err)
		}

		var uvs []math3d.Vec2
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readVec2Accessor(doc, uvIdx)
			if err != nil {
				return nil, fmt.Errorf("read uvs: %w", err)
			}
		}

		verts := make([]math3d.VecUV, len(positions))
		for i, p := range positions {
			verts[i].Vec3 = math3d.V3(p.X, p.Y, -p.Z)
			if i < len(uvs) {
				verts[i].U = uvs[i].X
				verts[i].V = uvs[i].Y
			}
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return nil, fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(verts))
			for i := range indices {
				indices[i] = i
			}
		}

		c := l.materialColor(doc, prim.Material)
		for i := 0; i+2 < len(indices); i += 3 {
			a, b, cIdx := indices[i], indices[i+2], indices[i+1] // swapped
			if a >= len(verts) || b >= len(verts) || cIdx >= len(verts) {
				return nil, fmt.Errorf("index out of range at face %d", i/3)
			}
			mesh = append(mesh, render.NewTriangle(verts[a], verts[b], verts[cIdx], c))
		}
	}

	return mesh, nil
}

// materialColor returns the base colour factor of the primitive's material.
func (l *Loader) materialColor(doc *gltf.Document, idx *int) render.Color {
	if idx == nil || *idx >= len(doc.Materials) {
		return l.Color
	}
	pbr := doc.Materials[*idx].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return l.Color
	}
	f := pbr.BaseColorFactor
	return render.Color{
		R: unitToByte(f[0]),
		G: unitToByte(f[1]),
		B: unitToByte(f[2]),
		A: unitToByte(f[3]),
	}
}

func unitToByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	data, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	stride := strideOr(doc, accessor, 12)
	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		result[i] = math3d.V3(readFloat32(b), readFloat32(b[4:]), readFloat32(b[8:]))
	}
	return result, nil
}

// readVec2Accessor reads Vec2 data from a GLTF accessor.
func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", accessor.Type)
	}

	data, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	stride := strideOr(doc, accessor, 8)
	result := make([]math3d.Vec2, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		result[i] = math3d.V2(readFloat32(b), readFloat32(b[4:]))
	}
	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	data, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	stride := strideOr(doc, accessor, size)
	result := make([]int, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		switch size {
		case 1:
			result[i] = int(b[0])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return result, nil
}

// accessorBytes returns the buffer bytes starting at the accessor's first
// element, bounds-checked against its count and stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor) ([]byte, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.Data == nil {
		return nil, fmt.Errorf("buffer %d has no data", bufferView.Buffer)
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	if start > len(buffer.Data) {
		return nil, fmt.Errorf("accessor starts past the end of its buffer")
	}
	data := buffer.Data[start:]

	elem := elementSize(accessor)
	if accessor.Count > 0 {
		need := (accessor.Count-1)*strideOr(doc, accessor, elem) + elem
		if need > len(data) {
			return nil, fmt.Errorf("accessor needs %d bytes, buffer has %d", need, len(data))
		}
	}
	return data, nil
}

func elementSize(accessor *gltf.Accessor) int {
	comp := 4
	switch accessor.ComponentType {
	case gltf.ComponentUbyte, gltf.ComponentByte:
		comp = 1
	case gltf.ComponentUshort, gltf.ComponentShort:
		comp = 2
	}
	switch accessor.Type {
	case gltf.AccessorVec2:
		return comp * 2
	case gltf.AccessorVec3:
		return comp * 3
	case gltf.AccessorVec4:
		return comp * 4
	default:
		return comp
	}
}

func strideOr(doc *gltf.Document, accessor *gltf.Accessor, def int) int {
	if s := doc.BufferViews[*accessor.BufferView].ByteStride; s > 0 {
		return s
	}
	return def
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
