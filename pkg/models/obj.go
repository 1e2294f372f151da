package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/exp/mmap"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

// ErrMalformedOBJ is wrapped by every OBJ parse error.
var ErrMalformedOBJ = errors.New("malformed obj")

// LoadOBJ loads a Wavefront OBJ file. The file is memory-mapped and scanned
// line by line.
func (l *Loader) LoadOBJ(path string) (*Model, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer reader.Close()

	return l.ParseOBJ(io.NewSectionReader(reader, 0, int64(reader.Len())), filepath.Base(path))
}

// ParseOBJ reads OBJ text: v, vt and f records, with o and g starting a new
// mesh. Faces with more than three corners are fanned from the first corner.
// Like glTF, OBJ is right-handed, so Z is negated and winding reversed.
func (l *Loader) ParseOBJ(r io.Reader, name string) (*Model, error) {
	var (
		positions []math3d.Vec3
		uvs       []math3d.Vec2
		meshes    []render.Mesh
		current   render.Mesh
	)
	flush := func() {
		if len(current) > 0 {
			meshes = append(meshes, current)
			current = nil
		}
	}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var v []float64
			if v, err = parseFloats(fields[1:], 3); err == nil {
				positions = append(positions, math3d.V3(v[0], v[1], -v[2]))
			}
		case "vt":
			var v []float64
			if v, err = parseFloats(fields[1:], 2); err == nil {
				uvs = append(uvs, math3d.V2(v[0], v[1]))
			}
		case "f":
			var tris []render.Triangle
			if tris, err = l.parseFace(fields[1:], positions, uvs); err == nil {
				current = append(current, tris...)
			}
		case "o", "g":
			flush()
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	flush()

	return NewModel(name, meshes...), nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("%w: want %d numbers, got %d", ErrMalformedOBJ, n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedOBJ, err)
		}
		out[i] = v
	}
	return out, nil
}

func (l *Loader) parseFace(fields []string, positions []math3d.Vec3, uvs []math3d.Vec2) ([]render.Triangle, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: face needs 3 corners, got %d", ErrMalformedOBJ, len(fields))
	}

	corners := make([]math3d.VecUV, len(fields))
	for i, f := range fields {
		parts := strings.Split(f, "/")
		pi, err := resolveIndex(parts[0], len(positions))
		if err != nil {
			return nil, err
		}
		corners[i].Vec3 = positions[pi]
		if len(parts) > 1 && parts[1] != "" {
			ti, err := resolveIndex(parts[1], len(uvs))
			if err != nil {
				return nil, err
			}
			corners[i].U = uvs[ti].X
			corners[i].V = uvs[ti].Y
		}
	}

	tris := make([]render.Triangle, 0, len(corners)-2)
	for i := 1; i+1 < len(corners); i++ {
		tris = append(tris, render.NewTriangle(corners[0], corners[i+1], corners[i], l.Color))
	}
	return tris, nil
}

// resolveIndex turns a 1-based or negative (relative) OBJ index into a
// 0-based one.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", ErrMalformedOBJ, s)
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return 0, fmt.Errorf("%w: index %d out of range (have %d)", ErrMalformedOBJ, i, n)
	}
}
