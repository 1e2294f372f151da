// Package scene is the outward face of the renderer: it owns the objects,
// lights and camera that the pipeline reads, and hands out handles for them.
//
// A Scene has a single writer. Nothing in it is safe for concurrent mutation,
// and callers that share one across goroutines must serialize access.
package scene

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

// LightID identifies a light. IDs count insertions and are never reused.
type LightID int

type lightEntry struct {
	id    LightID
	light render.Light
}

// Scene holds everything a frame is drawn from.
type Scene struct {
	objects   slotMap[render.Thing]
	lights    []lightEntry
	nextLight LightID
	renderer  *render.Renderer
	logger    *slog.Logger
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger routes the scene's debug records to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scene) {
		s.logger = l
	}
}

// WithOptions sets how frames are coloured.
func WithOptions(o render.Options) Option {
	return func(s *Scene) {
		s.renderer.Options = o
	}
}

// New creates an empty scene with a camera at the origin looking down +Z.
func New(width, height int, opts ...Option) *Scene {
	s := &Scene{
		renderer: render.NewRenderer(render.NewCamera(width, height)),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CameraConfig places the camera. Zero FOV, Near or Far keep the current
// value.
type CameraConfig struct {
	Position math3d.Vec3
	Target   math3d.Vec3
	Width    int
	Height   int
	FOV      float64
	Near     float64
	Far      float64
}

// SetCamera replaces the camera placement and viewport.
func (s *Scene) SetCamera(cfg CameraConfig) {
	cam := s.renderer.Camera
	cam.Configure(cfg.Position, cfg.Target, cfg.Width, cfg.Height)
	if cfg.FOV > 0 {
		cam.SetFOV(cfg.FOV)
	}
	if cfg.Near > 0 || cfg.Far > 0 {
		near, far := cam.Near, cam.Far
		if cfg.Near > 0 {
			near = cfg.Near
		}
		if cfg.Far > 0 {
			far = cfg.Far
		}
		cam.SetClipPlanes(near, far)
	}
	s.logger.Debug("camera set",
		"position", cfg.Position, "target", cfg.Target,
		"width", cfg.Width, "height", cfg.Height)
}

// Camera returns the scene camera. Changes through its setters apply to the
// next frame.
func (s *Scene) Camera() *render.Camera {
	return s.renderer.Camera
}

// Renderer returns the renderer frames are built with.
func (s *Scene) Renderer() *render.Renderer {
	return s.renderer
}

// AddObject stores a copy of thing and returns its handle. The first object
// of a fresh scene gets handle 0, the next one 1.
func (s *Scene) AddObject(thing render.Thing) Handle {
	h := s.objects.insert(cloneThing(thing))
	s.logger.Debug("object added", "handle", h, "meshes", len(thing), "triangles", thing.TriangleCount())
	return h
}

// Object returns the stored geometry for h.
func (s *Scene) Object(h Handle) (render.Thing, error) {
	thing, err := s.objects.get(h)
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	return thing, nil
}

// ReplaceObject swaps the geometry behind h, keeping the handle valid.
func (s *Scene) ReplaceObject(h Handle, thing render.Thing) error {
	if err := s.objects.set(h, cloneThing(thing)); err != nil {
		return fmt.Errorf("replace object: %w", err)
	}
	return nil
}

// RemoveObject deletes the object behind h. h and every copy of it become
// stale, even after the slot is reused.
func (s *Scene) RemoveObject(h Handle) error {
	if err := s.objects.remove(h); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	s.logger.Debug("object removed", "handle", h)
	return nil
}

// Len returns the number of live objects.
func (s *Scene) Len() int {
	return s.objects.live
}

// Objects iterates over live objects in slot order.
func (s *Scene) Objects() iter.Seq2[Handle, render.Thing] {
	return func(yield func(Handle, render.Thing) bool) {
		stop := false
		s.objects.each(func(h Handle, thing render.Thing) {
			if !stop && !yield(h, thing) {
				stop = true
			}
		})
	}
}

// Raster places object h at pos with rotation rot (degrees) and returns its
// world-space triangles that face the camera.
func (s *Scene) Raster(h Handle, pos, rot math3d.Vec3) ([]render.Triangle, error) {
	thing, err := s.objects.get(h)
	if err != nil {
		return nil, fmt.Errorf("raster: %w", err)
	}
	return render.RasterThing(thing, pos, rot, s.renderer.Camera.Forward()), nil
}

// AddLight registers a light and returns its id.
func (s *Scene) AddLight(l render.Light) LightID {
	id := s.nextLight
	s.nextLight++
	s.lights = append(s.lights, lightEntry{id: id, light: l})
	s.syncLights()
	s.logger.Debug("light added", "id", id, "position", l.Position, "radius", l.Radius)
	return id
}

// RemoveLight unregisters a light. Its id is not handed out again.
func (s *Scene) RemoveLight(id LightID) error {
	i := slices.IndexFunc(s.lights, func(e lightEntry) bool { return e.id == id })
	if i < 0 {
		return fmt.Errorf("remove light %d: %w", id, ErrUnknownLight)
	}
	s.lights = slices.Delete(s.lights, i, i+1)
	s.syncLights()
	s.logger.Debug("light removed", "id", id)
	return nil
}

// Light returns the light registered under id.
func (s *Scene) Light(id LightID) (render.Light, error) {
	for _, e := range s.lights {
		if e.id == id {
			return e.light, nil
		}
	}
	return render.Light{}, fmt.Errorf("light %d: %w", id, ErrUnknownLight)
}

// Lights returns the registered lights in insertion order.
func (s *Scene) Lights() []render.Light {
	return slices.Clone(s.renderer.Lights)
}

func (s *Scene) syncLights() {
	lights := make([]render.Light, len(s.lights))
	for i, e := range s.lights {
		lights[i] = e.light
	}
	s.renderer.Lights = lights
}

// ComputeShading returns the light intensity in [0, 1] at pos for a surface
// with the given normal.
func (s *Scene) ComputeShading(pos, normal math3d.Vec3) float64 {
	return render.Shade(s.renderer.Lights, pos, normal)
}

// ClipAgainstScreenEdges clips a screen-space triangle to the camera viewport.
func (s *Scene) ClipAgainstScreenEdges(tri render.Triangle) []render.Triangle {
	cam := s.renderer.Camera
	return render.ClipAgainstScreenEdges(tri, cam.Width, cam.Height)
}

// ClipAgainstNearPlane drops the part of a view-space triangle with z < 0.
func (s *Scene) ClipAgainstNearPlane(tri render.Triangle) []render.Triangle {
	return render.ClipAgainstNearPlane(tri)
}

// TriangleToPixels yields the pixels a screen-space triangle covers.
func (s *Scene) TriangleToPixels(tri render.Triangle) iter.Seq[render.Pixel] {
	return render.TriangleToPixels(tri)
}

// Placement positions an object for one frame.
type Placement struct {
	Handle   Handle
	Position math3d.Vec3
	Rotation math3d.Vec3 // Euler angles in degrees
}

// Frame renders placements into screen-space triangles, farthest first.
func (s *Scene) Frame(placements []Placement) ([]render.Triangle, error) {
	instances := make([]render.Instance, 0, len(placements))
	for _, p := range placements {
		thing, err := s.objects.get(p.Handle)
		if err != nil {
			return nil, fmt.Errorf("frame: %w", err)
		}
		instances = append(instances, render.Instance{Thing: thing, Position: p.Position, Rotation: p.Rotation})
	}
	tris := s.renderer.Frame(instances)
	s.logger.Debug("frame built", "instances", len(instances), "triangles", len(tris))
	return tris, nil
}

// Draw fills fb with tris using the scene's lights and options.
func (s *Scene) Draw(fb *render.Framebuffer, tris []render.Triangle) {
	s.renderer.Draw(fb, tris)
}

func cloneThing(thing render.Thing) render.Thing {
	out := make(render.Thing, len(thing))
	for i, m := range thing {
		out[i] = slices.Clone(m)
	}
	return out
}
