// Package frustum decides whether a bounding sphere can be seen by a
// perspective camera.
package frustum

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Culler holds the per-projection constants of the view frustum.
type Culler struct {
	near, far float32

	factorY, tanY float32
	factorX, tanX float32
}

// New builds a Culler for a vertical field of view in radians.
func New(vFov, aspect, near, far float32) *Culler {
	halfY := float64(vFov) * 0.5
	hFov := 2 * math.Atan(math.Tan(halfY)*float64(aspect))
	halfX := hFov * 0.5

	return &Culler{
		near:    near,
		far:     far,
		factorY: float32(1 / math.Cos(halfY)),
		tanY:    float32(math.Tan(halfY)),
		factorX: float32(1 / math.Cos(halfX)),
		tanX:    float32(math.Tan(halfX)),
	}
}

// HorizontalFOV returns the horizontal field of view in radians.
func (c *Culler) HorizontalFOV() float32 {
	return float32(2 * math.Atan(float64(c.tanX)))
}

// IsVisible reports whether a sphere may intersect the frustum of a camera
// at pos with the given orthonormal basis. It errs on the side of visible.
func (c *Culler) IsVisible(pos, forward, up, right, center mgl32.Vec3, radius float32) bool {
	v := center.Sub(pos)

	sz := v.Dot(forward)
	if sz < c.near-radius || sz > c.far+radius {
		return false
	}

	sy := v.Dot(up)
	dist := c.factorY*radius + sz*c.tanY
	if sy < -dist || sy > dist {
		return false
	}

	sx := v.Dot(right)
	dist = c.factorX*radius + sz*c.tanX
	if sx < -dist || sx > dist {
		return false
	}
	return true
}
