package main

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/facet/pkg/math3d"
)

// spinAxis tracks the angle and angular velocity of one axis, in degrees.
// Velocity decays towards zero on a critically damped spring.
type spinAxis struct {
	Angle    float64
	Velocity float64
	spring   harmonica.Spring
	accel    float64 // spring velocity of Velocity itself
}

func newSpinAxis(fps int) spinAxis {
	return spinAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

func (a *spinAxis) update() {
	a.Angle += a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
}

// spin is the model rotation driven by keyboard and mouse impulses.
type spin struct {
	Pitch, Yaw, Roll spinAxis
	fps              int
}

func newSpin(fps int) *spin {
	s := &spin{fps: fps}
	s.reset()
	return s
}

func (s *spin) update() {
	s.Pitch.update()
	s.Yaw.update()
	s.Roll.update()
}

func (s *spin) impulse(pitch, yaw, roll float64) {
	s.Pitch.Velocity += pitch
	s.Yaw.Velocity += yaw
	s.Roll.Velocity += roll
}

func (s *spin) reset() {
	s.Pitch = newSpinAxis(s.fps)
	s.Yaw = newSpinAxis(s.fps)
	s.Roll = newSpinAxis(s.fps)
}

// rotation returns the current Euler angles in degrees.
func (s *spin) rotation() math3d.Vec3 {
	return math3d.V3(s.Pitch.Angle, s.Yaw.Angle, s.Roll.Angle)
}
