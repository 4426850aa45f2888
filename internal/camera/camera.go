// Package camera holds the view state and the input-driven controller that
// moves it.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Lens describes the perspective projection. FOV is vertical, in radians.
type Lens struct {
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32
}

// Camera is a position plus yaw/pitch orientation. Forward, Up and Right are
// kept orthonormal by Update.
type Camera struct {
	Position   mgl32.Vec3
	Yaw, Pitch float32
	// PitchMax bounds |Pitch|.
	PitchMax float32

	Forward, Up, Right mgl32.Vec3

	Lens       Lens
	Projection mgl32.Mat4
}

// New returns a camera at position. Angles are in radians; yaw -π/2 looks
// down -z.
func New(position mgl32.Vec3, yaw, pitch, pitchMax float32, lens Lens) *Camera {
	c := &Camera{
		Position:   position,
		Yaw:        yaw,
		Pitch:      pitch,
		PitchMax:   pitchMax,
		Lens:       lens,
		Projection: mgl32.Perspective(lens.FOV, lens.Aspect, lens.Near, lens.Far),
	}
	c.clampPitch()
	c.Update()
	return c
}

// Update recomputes the basis vectors from yaw and pitch.
func (c *Camera) Update() {
	yaw, pitch := float64(c.Yaw), float64(c.Pitch)
	c.Forward = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.Right = c.Forward.Cross(worldUp).Normalize()
	c.Up = c.Right.Cross(c.Forward).Normalize()
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward), c.Up)
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.View())
}

// Rotate turns the camera and refreshes its basis.
func (c *Camera) Rotate(dyaw, dpitch float32) {
	c.Yaw += dyaw
	c.Pitch += dpitch
	c.clampPitch()
	c.Update()
}

func (c *Camera) clampPitch() {
	if c.PitchMax <= 0 {
		return
	}
	c.Pitch = mgl32.Clamp(c.Pitch, -c.PitchMax, c.PitchMax)
}

func (c *Camera) MoveForward(d float32) { c.Position = c.Position.Add(c.Forward.Mul(d)) }
func (c *Camera) MoveBack(d float32)    { c.Position = c.Position.Sub(c.Forward.Mul(d)) }
func (c *Camera) MoveRight(d float32)   { c.Position = c.Position.Add(c.Right.Mul(d)) }
func (c *Camera) MoveLeft(d float32)    { c.Position = c.Position.Sub(c.Right.Mul(d)) }
func (c *Camera) MoveUp(d float32)      { c.Position = c.Position.Add(c.Up.Mul(d)) }
func (c *Camera) MoveDown(d float32)    { c.Position = c.Position.Sub(c.Up.Mul(d)) }
