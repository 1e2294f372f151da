package render

import (
	"github.com/taigrr/facet/pkg/math3d"
)

// Camera is a look-at camera with a fixed world up. View and projection
// matrices are cached and rebuilt only after a setter touches their inputs.
type Camera struct {
	// Placement in world space
	Position math3d.Vec3
	Target   math3d.Vec3
	Up       math3d.Vec3

	// Viewport in pixels
	Width  int
	Height int

	// Projection parameters
	FOV  float64 // Field of view in degrees
	Near float64 // Near clipping plane
	Far  float64 // Far clipping plane

	// Cached matrices (computed on demand)
	viewMatrix math3d.Mat4
	projMatrix math3d.Mat4
	viewDirty  bool
	projDirty  bool
}

// NewCamera creates a camera at the origin looking down +Z.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Position:  math3d.Zero3(),
		Target:    math3d.Forward(),
		Up:        math3d.Up(),
		Width:     width,
		Height:    height,
		FOV:       90,
		Near:      0.1,
		Far:       1000,
		viewDirty: true,
		projDirty: true,
	}
}

// Configure places the camera and sizes its viewport in one step.
func (c *Camera) Configure(pos, target math3d.Vec3, width, height int) {
	c.Position = pos
	c.Target = target
	c.viewDirty = true
	c.SetViewport(width, height)
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// SetTarget sets the point the camera looks at.
func (c *Camera) SetTarget(target math3d.Vec3) {
	c.Target = target
	c.viewDirty = true
}

// SetViewport sets the viewport size in pixels.
func (c *Camera) SetViewport(width, height int) {
	c.Width = width
	c.Height = height
	c.projDirty = true
}

// SetFOV sets the field of view (in degrees).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// Aspect returns height over width, the ratio the projection expects.
func (c *Camera) Aspect() float64 {
	if c.Width == 0 {
		return 1
	}
	return float64(c.Height) / float64(c.Width)
}

// Forward returns the unit direction from position to target.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Position.Direction(c.Target)
}

// Right returns the right direction vector.
func (c *Camera) Right() math3d.Vec3 {
	return c.Up.Cross(c.Forward()).Normalize()
}

// ViewMatrix returns the world-to-view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.LookAt(c.Position, c.Target, c.Up)
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Projection(c.FOV, c.Aspect(), c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns view then projection.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.ViewMatrix().Mul(c.ProjectionMatrix())
}

// ToScreen maps a projected point from normalized device coordinates to
// pixels. Y grows downwards on screen.
func (c *Camera) ToScreen(ndc math3d.Vec3) math3d.Vec3 {
	return math3d.V3(
		(ndc.X+1)*0.5*float64(c.Width),
		(1-ndc.Y)*0.5*float64(c.Height),
		ndc.Z,
	)
}

// MoveForward moves the camera and its target forward (or backward if negative).
func (c *Camera) MoveForward(distance float64) {
	d := c.Forward().Scale(distance)
	c.Position = c.Position.Add(d)
	c.Target = c.Target.Add(d)
	c.viewDirty = true
}

// MoveRight moves the camera and its target right (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	d := c.Right().Scale(distance)
	c.Position = c.Position.Add(d)
	c.Target = c.Target.Add(d)
	c.viewDirty = true
}

// Dolly moves the camera towards its target without passing it.
func (c *Camera) Dolly(distance float64) {
	remaining := c.Position.Distance(c.Target)
	if distance >= remaining {
		distance = remaining - c.Near
	}
	c.Position = c.Position.Add(c.Forward().Scale(distance))
	c.viewDirty = true
}

// WorldToScreen transforms a world point to screen coordinates.
// Returns (screenX, screenY, depth, visible).
func (c *Camera) WorldToScreen(worldPos math3d.Vec3) (x, y, depth float64, visible bool) {
	clipPos := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))

	// w carries view-space z; anything in front of the near plane is hidden.
	if clipPos.W < c.Near {
		return 0, 0, 0, false
	}

	ndc := clipPos.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < 0 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	s := c.ToScreen(ndc)
	return s.X, s.Y, s.Z, true
}
