package gen

import "github.com/OCharnyshevich/voxelworld/pkg/voxel"

// CaveGenerator carves tunnels with 3D simplex noise.
type CaveGenerator struct {
	noise *NoiseGenerator
}

// NewCaveGenerator creates a CaveGenerator from a seed.
func NewCaveGenerator(seed int64) *CaveGenerator {
	return &CaveGenerator{noise: NewNoiseGenerator(seed)}
}

// Hollow reports whether the cell belongs to a cave. The floor undulates a few
// cells above y=0 and the roof stays ten cells below the surface.
func (cg *CaveGenerator) Hollow(wx, wy, wz, height int) bool {
	if wy >= height-10 {
		return false
	}
	floor := cg.noise.Noise2D(float64(wx)*0.1, float64(wz)*0.1)*3 + 3
	if float64(wy) <= floor {
		return false
	}
	return cg.noise.Noise3D(float64(wx)*0.09, float64(wy)*0.09, float64(wz)*0.09) > 0
}

// Carve clears cave cells in the chunk. heights holds the column heights
// indexed lx + lz*size.
func (cg *CaveGenerator) Carve(v Volume, heights []int) {
	size := v.Size()
	ox, oy, oz := v.Origin()
	for lz := 0; lz < size; lz++ {
		for lx := 0; lx < size; lx++ {
			height := heights[lx+lz*size]
			top := columnRange(height, oy, size)
			for ly := 0; ly < top; ly++ {
				if cg.Hollow(ox+lx, oy+ly, oz+lz, height) {
					v.Set(lx, ly, lz, voxel.Air)
				}
			}
		}
	}
}
