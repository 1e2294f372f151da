package models

import (
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

// triangleDoc builds a single-triangle document facing +Z in glTF space,
// with float32 positions followed by uint16 indices in one buffer.
func triangleDoc(indices []uint16, withMaterial bool) *gltf.Document {
	positions := [][3]float32{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}}

	var data []byte
	for _, p := range positions {
		for _, c := range p {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(c))
		}
	}
	posLen := len(data)
	for _, i := range indices {
		data = binary.LittleEndian.AppendUint16(data, i)
	}

	doc := gltf.NewDocument()
	doc.Buffers = []*gltf.Buffer{{ByteLength: len(data), Data: data}}
	doc.BufferViews = []*gltf.BufferView{
		{Buffer: 0, ByteOffset: 0, ByteLength: posLen},
		{Buffer: 0, ByteOffset: posLen, ByteLength: len(data) - posLen},
	}
	doc.Accessors = []*gltf.Accessor{
		{BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat, Count: len(positions), Type: gltf.AccessorVec3},
		{BufferView: gltf.Index(1), ComponentType: gltf.ComponentUshort, Count: len(indices), Type: gltf.AccessorScalar},
	}

	prim := &gltf.Primitive{
		Attributes: map[string]int{gltf.POSITION: 0},
		Indices:    gltf.Index(1),
	}
	if withMaterial {
		doc.Materials = []*gltf.Material{{
			Name: "red",
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{1, 0, 0, 1},
			},
		}}
		prim.Material = gltf.Index(0)
	}
	doc.Meshes = []*gltf.Mesh{{Name: "tri", Primitives: []*gltf.Primitive{prim}}}
	return doc
}

func TestLoadGLTFInvalidPath(t *testing.T) {
	if _, err := NewLoader().LoadGLTF("/nonexistent/path.glb"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadGLTFBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.glb")
	if err := gltf.SaveBinary(triangleDoc([]uint16{0, 1, 2}, true), path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}

	m, err := NewLoader().LoadGLTF(path)
	if err != nil {
		t.Fatalf("LoadGLTF: %v", err)
	}
	if m.Name != "tri.glb" || m.TriangleCount() != 1 {
		t.Fatalf("model = %s with %d triangles", m.Name, m.TriangleCount())
	}

	tri := m.Meshes[0][0]
	want := [3]math3d.Vec3{{X: 0, Y: 0, Z: -1}, {X: 0, Y: 1, Z: -1}, {X: 1, Y: 0, Z: -1}}
	for i, p := range tri.P {
		if !p.Pos().ApproxEqual(want[i], 1e-6) {
			t.Errorf("P[%d] = %v, want %v", i, p.Pos(), want[i])
		}
	}
	if tri.Color != render.RGB(255, 0, 0) {
		t.Errorf("color = %v, want base colour red", tri.Color)
	}
	if !render.Visible(tri.Normal, math3d.Forward()) {
		t.Errorf("normal %v faces away from a +Z camera", tri.Normal)
	}
}

func TestProcessMeshDefaults(t *testing.T) {
	doc := triangleDoc([]uint16{0, 1, 2}, false)
	l := &Loader{Color: render.RGB(1, 2, 3)}

	mesh, err := l.processMesh(doc, doc.Meshes[0])
	if err != nil {
		t.Fatalf("processMesh: %v", err)
	}
	if len(mesh) != 1 || mesh[0].Color != l.Color {
		t.Errorf("got %d triangles, color %v; want 1 with the loader colour", len(mesh), mesh[0].Color)
	}
}

func TestProcessMeshIndexOutOfRange(t *testing.T) {
	doc := triangleDoc([]uint16{0, 1, 7}, false)
	if _, err := NewLoader().processMesh(doc, doc.Meshes[0]); err == nil {
		t.Error("expected error for an index past the vertex count")
	}
}

func TestAccessorBytesBounds(t *testing.T) {
	doc := triangleDoc([]uint16{0, 1, 2}, false)
	doc.Accessors[0].Count = 10
	if _, err := readVec3Accessor(doc, 0); err == nil {
		t.Error("expected error for an accessor running past its buffer")
	}
}

