package world

import (
	"fmt"
	"log/slog"

	"github.com/OCharnyshevich/voxelworld/internal/mesh"
	"github.com/OCharnyshevich/voxelworld/pkg/voxel"
)

// World owns every voxel in one contiguous buffer. Chunks are addressed by
// arena index and read their cells as sub-slices of that buffer.
type World struct {
	log    *slog.Logger
	dims   Dims
	voxels []voxel.Cell
	chunks []*Chunk

	// dirtyQueue holds chunk indices in the order they were marked.
	dirtyQueue []int
}

// New allocates an empty world.
func New(dims Dims, log *slog.Logger) (*World, error) {
	if dims.Width <= 0 || dims.Height <= 0 || dims.Depth <= 0 {
		return nil, fmt.Errorf("world dimensions must be positive, got %dx%dx%d", dims.Width, dims.Height, dims.Depth)
	}
	if dims.ChunkSize <= 0 || dims.ChunkSize > mesh.MaxChunkSize {
		return nil, fmt.Errorf("chunk size %d out of range 1..%d", dims.ChunkSize, mesh.MaxChunkSize)
	}
	if log == nil {
		log = slog.Default()
	}

	w := &World{
		log:    log.With("component", "world"),
		dims:   dims,
		voxels: make([]voxel.Cell, dims.Chunks()*dims.ChunkVolume()),
		chunks: make([]*Chunk, dims.Chunks()),
	}
	for y := 0; y < dims.Height; y++ {
		for z := 0; z < dims.Depth; z++ {
			for x := 0; x < dims.Width; x++ {
				coord := ChunkCoord{x, y, z}
				i := dims.ChunkIndex(coord)
				w.chunks[i] = newChunk(coord, i, dims.ChunkSize)
			}
		}
	}
	return w, nil
}

// Dims returns the world extent.
func (w *World) Dims() Dims { return w.dims }

// ChunkSize returns the chunk edge length.
func (w *World) ChunkSize() int { return w.dims.ChunkSize }

// Chunks returns every chunk in arena order.
func (w *World) Chunks() []*Chunk { return w.chunks }

// Chunk returns the chunk with arena index i.
func (w *World) Chunk(i int) *Chunk { return w.chunks[i] }

// ChunkAt returns the chunk at a chunk-grid coordinate.
func (w *World) ChunkAt(c ChunkCoord) (*Chunk, bool) {
	if !w.dims.ContainsChunk(c) {
		return nil, false
	}
	return w.chunks[w.dims.ChunkIndex(c)], true
}

// ChunkOf returns the chunk containing a world position.
func (w *World) ChunkOf(x, y, z int) (*Chunk, bool) {
	c, _ := w.dims.Split(Pos{x, y, z})
	return w.ChunkAt(c)
}

// ChunkVoxels returns chunk i's cells as a view into the world buffer.
// Writes through the slice are world writes.
func (w *World) ChunkVoxels(i int) []voxel.Cell {
	vol := w.dims.ChunkVolume()
	lo := i * vol
	return w.voxels[lo : lo+vol : lo+vol]
}

// locate maps a world position to a buffer offset.
func (w *World) locate(x, y, z int) (int, bool) {
	c, l := w.dims.Split(Pos{x, y, z})
	if !w.dims.ContainsChunk(c) {
		return 0, false
	}
	return w.dims.ChunkIndex(c)*w.dims.ChunkVolume() + w.dims.LocalIndex(l.X, l.Y, l.Z), true
}

// InBounds reports whether the position lies inside the world volume.
func (w *World) InBounds(x, y, z int) bool {
	_, ok := w.locate(x, y, z)
	return ok
}

// Get returns the cell at a world position. Positions outside the world are air.
func (w *World) Get(x, y, z int) voxel.Cell {
	off, ok := w.locate(x, y, z)
	if !ok {
		return voxel.Air
	}
	return w.voxels[off]
}

// Set writes the cell at a world position and reports whether it landed
// inside the world. It does not mark anything dirty; see MarkEdited.
func (w *World) Set(x, y, z int, c voxel.Cell) bool {
	if !c.Valid() {
		panic(fmt.Sprintf("world: invalid cell value %d at (%d,%d,%d)", c, x, y, z))
	}
	off, ok := w.locate(x, y, z)
	if !ok {
		return false
	}
	w.voxels[off] = c
	return true
}

// SolidCount returns the number of non-air cells in chunk i.
func (w *World) SolidCount(i int) int {
	n := 0
	for _, c := range w.ChunkVoxels(i) {
		if c != voxel.Air {
			n++
		}
	}
	return n
}
