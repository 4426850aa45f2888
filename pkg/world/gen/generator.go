package gen

import "github.com/OCharnyshevich/voxelworld/pkg/voxel"

// Volume is the write target for one chunk. Coordinates are chunk-local and
// lie in [0, Size()).
type Volume interface {
	Size() int
	// Origin returns the world coordinate of local (0, 0, 0).
	Origin() (x, y, z int)
	Get(lx, ly, lz int) voxel.Cell
	Set(lx, ly, lz int, c voxel.Cell)
}

// Generator fills chunks deterministically from a seed.
type Generator interface {
	// HeightAt returns the number of solid cells in the column, so cells with
	// wy < HeightAt(wx, wz) are terrain.
	HeightAt(wx, wz int) int
	// Generate writes one chunk. It must only write inside v.
	Generate(v Volume)
}

// Params holds the terrain settings. Levels are world-space y values.
type Params struct {
	Seed int64

	// World extent in voxels.
	Width, Height, Depth int

	SnowLevel    int
	StoneLevel   int
	DirtLevel    int
	GrassLevel   int
	SubsoilDepth int

	// Caves enables 3D-noise carving below the surface.
	Caves bool

	TreeProbability float64
	TreeWidth       int
	TreeHeight      int
}

// DefaultParams describes a 12x2x12 world of 48-voxel chunks.
func DefaultParams() Params {
	return Params{
		Seed:            16,
		Width:           12 * 48,
		Height:          2 * 48,
		Depth:           12 * 48,
		SnowLevel:       54,
		StoneLevel:      49,
		DirtLevel:       40,
		GrassLevel:      8,
		SubsoilDepth:    3,
		TreeProbability: 0.02,
		TreeWidth:       4,
		TreeHeight:      8,
	}
}

// columnRange returns the local y range [0, top) of terrain cells for a column
// of the given world height inside a chunk starting at oy.
func columnRange(height, oy, size int) int {
	top := height - oy
	if top > size {
		top = size
	}
	if top < 0 {
		top = 0
	}
	return top
}
