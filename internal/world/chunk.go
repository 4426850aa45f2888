package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxelworld/pkg/voxel"
)

// Chunk is the unit of meshing and culling. Its cells live in the world's
// buffer; use World.ChunkVoxels to reach them.
type Chunk struct {
	Coord ChunkCoord
	Index int

	// Model translates chunk-local vertices into world space.
	Model mgl32.Mat4
	// Center and Radius bound the chunk for frustum culling.
	Center mgl32.Vec3
	Radius float32

	empty bool
	mesh  []uint32
	dirty bool
}

func newChunk(coord ChunkCoord, index, size int) *Chunk {
	s := float32(size)
	return &Chunk{
		Coord: coord,
		Index: index,
		Model: mgl32.Translate3D(float32(coord.X)*s, float32(coord.Y)*s, float32(coord.Z)*s),
		Center: mgl32.Vec3{
			(float32(coord.X) + 0.5) * s,
			(float32(coord.Y) + 0.5) * s,
			(float32(coord.Z) + 0.5) * s,
		},
		Radius: s * float32(math.Sqrt(3)) / 2,
		empty:  true,
	}
}

// Empty reports whether every cell of the chunk was air at the last rebuild.
func (c *Chunk) Empty() bool { return c.empty }

// Mesh returns the packed face buffer from the last rebuild.
func (c *Chunk) Mesh() []uint32 { return c.mesh }

// Dirty reports whether the chunk waits for a rebuild.
func (c *Chunk) Dirty() bool { return c.dirty }

// Origin returns the world position of the chunk's local (0, 0, 0).
func (c *Chunk) Origin(size int) Pos {
	return Pos{c.Coord.X * size, c.Coord.Y * size, c.Coord.Z * size}
}

// chunkVolume lets a generator fill one chunk through World.Set.
type chunkVolume struct {
	w      *World
	origin Pos
}

func (v chunkVolume) Size() int { return v.w.dims.ChunkSize }

func (v chunkVolume) Origin() (x, y, z int) { return v.origin.X, v.origin.Y, v.origin.Z }

func (v chunkVolume) inside(lx, ly, lz int) bool {
	s := v.w.dims.ChunkSize
	return lx >= 0 && ly >= 0 && lz >= 0 && lx < s && ly < s && lz < s
}

func (v chunkVolume) Get(lx, ly, lz int) voxel.Cell {
	if !v.inside(lx, ly, lz) {
		return voxel.Air
	}
	return v.w.Get(v.origin.X+lx, v.origin.Y+ly, v.origin.Z+lz)
}

// Set drops writes outside the chunk so concurrent generation never touches
// another chunk's cells.
func (v chunkVolume) Set(lx, ly, lz int, c voxel.Cell) {
	if !v.inside(lx, ly, lz) {
		return
	}
	v.w.Set(v.origin.X+lx, v.origin.Y+ly, v.origin.Z+lz, c)
}
