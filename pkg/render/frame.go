package render

import (
	"cmp"
	"slices"

	"github.com/taigrr/facet/pkg/math3d"
)

// Instance is one placement of a thing in the world.
type Instance struct {
	Thing    Thing
	Position math3d.Vec3
	Rotation math3d.Vec3 // Euler angles in degrees
}

// Options tune how a frame is coloured.
type Options struct {
	Ambient       float64 // Light every face receives regardless of lights
	Background    Color
	ColoredLights bool // Tint faces by light colour instead of plain intensity
}

// DefaultOptions returns the options used by NewRenderer.
func DefaultOptions() Options {
	return Options{
		Ambient:    0.15,
		Background: ColorBlack,
	}
}

// Renderer turns instances into screen-space triangles for one camera.
// It is not safe for concurrent use.
type Renderer struct {
	Camera  *Camera
	Lights  []Light
	Options Options
}

// NewRenderer creates a renderer for cam with default options.
func NewRenderer(cam *Camera) *Renderer {
	return &Renderer{Camera: cam, Options: DefaultOptions()}
}

// Frame runs the whole pipeline and returns the visible triangles in draw
// order, farthest first. Returned triangles are in pixel coordinates with
// Shade set from the world-space centroid and normal.
func (r *Renderer) Frame(instances []Instance) []Triangle {
	cam := r.Camera
	forward := cam.Forward()
	view := cam.ViewMatrix()
	near := NearPlane(cam.Near)
	frustum := cam.Frustum()

	var viewTris []Triangle
	for _, inst := range instances {
		if r.culled(inst, frustum) {
			continue
		}
		for _, tri := range RasterThing(inst.Thing, inst.Position, inst.Rotation, forward) {
			tri.Shade = Shade(r.Lights, tri.WPos(), tri.Normal)
			viewTris = append(viewTris, ClipTriangle(TransformTriangle(tri, view), near)...)
		}
	}

	// Painter's order: the deepest triangles are drawn first.
	slices.SortStableFunc(viewTris, func(a, b Triangle) int {
		return cmp.Compare(b.MeanZ(), a.MeanZ())
	})

	proj := cam.ProjectionMatrix()
	out := make([]Triangle, 0, len(viewTris))
	for _, tri := range viewTris {
		tri = TransformTriangle(tri, proj)
		for i := range tri.P {
			tri.P[i].Vec3 = cam.ToScreen(tri.P[i].Vec3)
		}
		out = append(out, ClipAgainstScreenEdges(tri, cam.Width, cam.Height)...)
	}
	return out
}

// culled reports whether an instance's world bounds lie wholly outside the
// near or side planes, so none of its triangles can survive clipping.
// Distant geometry is never clipped, so the far plane takes no part.
func (r *Renderer) culled(inst Instance, frustum Frustum) bool {
	if len(inst.Thing) == 0 {
		return true
	}
	world := math3d.Rotation(inst.Rotation).Mul(math3d.Translate(inst.Position))
	box := inst.Thing.Bounds().Transform(world)
	return frustum.outside(box, frustum.Planes[:FrustumFar])
}

// SurfaceColor is the colour a triangle is filled with.
func (r *Renderer) SurfaceColor(tri Triangle) Color {
	return TintColor(tri.Color, r.lightLevel(tri))
}

// lightLevel is the per-channel multiplier lighting applies to tri.
func (r *Renderer) lightLevel(tri Triangle) math3d.Vec3 {
	ambient := r.Options.Ambient
	if r.Options.ColoredLights {
		return math3d.V3(ambient, ambient, ambient).Add(ShadeRGB(r.Lights, tri.WPos(), tri.Normal).Scale(1 - ambient))
	}
	k := ambient + tri.Shade*(1-ambient)
	return math3d.V3(k, k, k)
}

// Draw clears fb and fills tris in order.
func (r *Renderer) Draw(fb *Framebuffer, tris []Triangle) {
	fb.Clear(r.Options.Background)
	for _, tri := range tris {
		c := r.SurfaceColor(tri)
		for px := range TriangleToPixels(tri) {
			fb.SetPixel(px.X, px.Y, c)
		}
	}
}

// DrawWireframe outlines tris on top of whatever fb holds.
func (r *Renderer) DrawWireframe(fb *Framebuffer, tris []Triangle, c Color) {
	for _, tri := range tris {
		for i := range 3 {
			a, b := tri.P[i], tri.P[(i+1)%3]
			fb.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), c)
		}
	}
}

// DrawLine3D draws a world-space segment when both ends are on screen.
func (r *Renderer) DrawLine3D(fb *Framebuffer, p1, p2 math3d.Vec3, c Color) {
	x1, y1, _, vis1 := r.Camera.WorldToScreen(p1)
	x2, y2, _, vis2 := r.Camera.WorldToScreen(p2)
	if !vis1 || !vis2 {
		return
	}
	fb.DrawLine(int(x1), int(y1), int(x2), int(y2), c)
}

// DrawAxes draws the coordinate axes at origin.
func (r *Renderer) DrawAxes(fb *Framebuffer, origin math3d.Vec3, length float64) {
	r.DrawLine3D(fb, origin, origin.Add(math3d.V3(length, 0, 0)), ColorRed)
	r.DrawLine3D(fb, origin, origin.Add(math3d.V3(0, length, 0)), ColorGreen)
	r.DrawLine3D(fb, origin, origin.Add(math3d.V3(0, 0, length)), ColorBlue)
}
