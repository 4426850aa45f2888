package frustum

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	origin  = mgl32.Vec3{0, 0, 0}
	forward = mgl32.Vec3{0, 0, -1}
	up      = mgl32.Vec3{0, 1, 0}
	right   = mgl32.Vec3{1, 0, 0}
)

func newTestCuller() *Culler {
	return New(mgl32.DegToRad(50), 16.0/9.0, 0.1, 2000)
}

func TestOnAxisAlwaysVisible(t *testing.T) {
	c := newTestCuller()
	for _, d := range []float32{0.1, 1, 50, 1999, 2000} {
		for _, r := range []float32{0, 0.5, 41.5} {
			center := forward.Mul(d)
			if !c.IsVisible(origin, forward, up, right, center, r) {
				t.Errorf("depth %v radius %v: not visible", d, r)
			}
		}
	}
}

func TestIsVisible(t *testing.T) {
	c := newTestCuller()
	tests := []struct {
		name   string
		center mgl32.Vec3
		radius float32
		want   bool
	}{
		{"behind", mgl32.Vec3{0, 0, 10}, 1, false},
		{"behind but overlapping near plane", mgl32.Vec3{0, 0, 1}, 2, true},
		{"beyond far", mgl32.Vec3{0, 0, -2100}, 10, false},
		{"far edge within radius", mgl32.Vec3{0, 0, -2005}, 10, true},
		{"far right", mgl32.Vec3{100, 0, -10}, 1, false},
		{"far left", mgl32.Vec3{-100, 0, -10}, 1, false},
		{"high above", mgl32.Vec3{0, 100, -10}, 1, false},
		{"below", mgl32.Vec3{0, -100, -10}, 1, false},
		{"slightly right", mgl32.Vec3{3, 0, -10}, 1, true},
		{"large sphere to the side", mgl32.Vec3{30, 0, -10}, 30, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.IsVisible(origin, forward, up, right, tt.center, tt.radius)
			if got != tt.want {
				t.Errorf("IsVisible(%v, %v) = %v, want %v", tt.center, tt.radius, got, tt.want)
			}
		})
	}
}

func TestHorizontalFOV(t *testing.T) {
	vFov := float64(mgl32.DegToRad(50))
	want := 2 * math.Atan(math.Tan(vFov/2)*16/9)
	got := float64(newTestCuller().HorizontalFOV())
	if math.Abs(got-want) > 1e-5 {
		t.Errorf("HorizontalFOV = %v, want %v", got, want)
	}
}
