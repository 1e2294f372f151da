package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
	"github.com/taigrr/facet/pkg/render"
	"github.com/taigrr/facet/pkg/scene"
)

// modelSpacing is the gap between model centres along X.
const modelSpacing = 2.5

// sceneFlags are the options shared by every command that builds a scene.
type sceneFlags struct {
	fov      float64
	distance float64
	light    []float64
	strength float64
	radius   float64
	ambient  float64
	colored  bool
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.fov, "fov", 90, "field of view in degrees")
	fs.Float64Var(&f.distance, "distance", 4, "distance from the camera to the models")
	fs.Float64SliceVar(&f.light, "light", []float64{-2, 2, 0}, "light position x,y,z")
	fs.Float64Var(&f.strength, "strength", 1, "light strength")
	fs.Float64Var(&f.radius, "radius", 20, "light radius")
	fs.Float64Var(&f.ambient, "ambient", 0.15, "ambient light level in [0, 1]")
	fs.BoolVar(&f.colored, "colored", false, "tint faces by light colour")
}

// stage is a scene with the loaded models laid out in a row in front of
// the camera.
type stage struct {
	scene      *scene.Scene
	models     []*models.Model
	placements []scene.Placement
}

// modelSource loads the models named on the command line. One library
// backs every load, so a path given twice is parsed once and a reload
// rebuilds the scene from the parsed models without touching disk.
type modelSource struct {
	lib   *models.Library
	paths []string
}

func newModelSource(paths []string, logger *slog.Logger) (*modelSource, error) {
	src := &modelSource{paths: paths}
	if len(paths) == 0 {
		return src, nil
	}
	lib, err := models.NewLibrary(models.NewLoader(), len(paths), logger)
	if err != nil {
		return nil, err
	}
	src.lib = lib
	return src, nil
}

// load returns fresh copies of every model, or a single cube when no paths
// were given.
func (src *modelSource) load(ctx context.Context) ([]*models.Model, error) {
	if src.lib == nil {
		return []*models.Model{models.NewCube(2, render.RGB(200, 200, 200))}, nil
	}
	ms, err := src.lib.LoadAll(ctx, src.paths)
	if err != nil {
		return nil, fmt.Errorf("load models: %w", err)
	}
	return ms, nil
}

// newStage normalizes each model to fit a 2 unit box and places the row
// centred on the camera axis. The camera stays at the origin looking down +Z.
func newStage(ms []*models.Model, width, height int, f sceneFlags, logger *slog.Logger) (*stage, error) {
	light, err := vec3Flag("light", f.light)
	if err != nil {
		return nil, err
	}

	opts := render.DefaultOptions()
	opts.Ambient = f.ambient
	opts.Background = render.RGB(30, 30, 40)
	opts.ColoredLights = f.colored

	s := scene.New(width, height, scene.WithLogger(logger), scene.WithOptions(opts))
	s.SetCamera(scene.CameraConfig{
		Target: math3d.Forward(),
		Width:  width,
		Height: height,
		FOV:    f.fov,
	})
	s.AddLight(render.NewLight(light, f.strength, f.radius))

	st := &stage{scene: s, models: ms}
	offset := -modelSpacing * float64(len(ms)-1) / 2
	for i, m := range ms {
		m.Normalize(2)
		st.placements = append(st.placements, scene.Placement{
			Handle:   s.AddObject(m.Thing()),
			Position: math3d.V3(offset+modelSpacing*float64(i), 0, f.distance),
		})
		logger.Debug("model placed", "name", m.Name, "triangles", m.TriangleCount())
	}
	return st, nil
}

// rotate sets the same rotation on every model.
func (st *stage) rotate(deg math3d.Vec3) {
	for i := range st.placements {
		st.placements[i].Rotation = deg
	}
}

// triangles returns the total triangle count of the loaded models.
func (st *stage) triangles() int {
	n := 0
	for _, m := range st.models {
		n += m.TriangleCount()
	}
	return n
}

// pick casts a ray through pixel (x, y) and returns the model it hits first.
func (st *stage) pick(x, y float64) (name string, dist float64, ok bool) {
	ray := st.scene.Camera().ScreenRay(x, y)

	var (
		tris  []render.Triangle
		owner []int
	)
	for i, p := range st.placements {
		world, err := st.scene.Raster(p.Handle, p.Position, p.Rotation)
		if err != nil {
			continue
		}
		tris = append(tris, world...)
		for range world {
			owner = append(owner, i)
		}
	}

	hit, ok := ray.IntersectTriangles(tris)
	if !ok {
		return "", 0, false
	}
	return st.models[owner[hit.Index]].Name, hit.Distance, true
}

func vec3Flag(name string, v []float64) (math3d.Vec3, error) {
	if len(v) != 3 {
		return math3d.Vec3{}, fmt.Errorf("--%s wants 3 values, got %d", name, len(v))
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}
