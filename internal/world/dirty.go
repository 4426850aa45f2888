package world

import (
	"github.com/OCharnyshevich/voxelworld/internal/mesh"
	"github.com/OCharnyshevich/voxelworld/pkg/voxel"
)

var faceNeighbours = [6]Pos{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// MarkDirty queues c for a mesh rebuild.
func (w *World) MarkDirty(c *Chunk) {
	if c.dirty {
		return
	}
	c.dirty = true
	w.dirtyQueue = append(w.dirtyQueue, c.Index)
}

// MarkEdited queues the chunk owning the cell and every chunk that shares a
// face with the cell, since their boundary faces may have changed.
func (w *World) MarkEdited(x, y, z int) {
	p := Pos{x, y, z}
	owner, ok := w.ChunkOf(x, y, z)
	if ok {
		w.MarkDirty(owner)
	}
	for _, d := range faceNeighbours {
		n := p.Add(d)
		c, ok := w.ChunkOf(n.X, n.Y, n.Z)
		if !ok || c == owner {
			continue
		}
		w.MarkDirty(c)
	}
}

// DirtyCount returns the number of chunks waiting for a rebuild.
func (w *World) DirtyCount() int { return len(w.dirtyQueue) }

// RebuildDirty rebuilds queued chunks in the order they were marked, at most
// limit of them (0 rebuilds all). The rest stay queued for the next call.
func (w *World) RebuildDirty(limit int) []*Chunk {
	n := len(w.dirtyQueue)
	if limit > 0 && limit < n {
		n = limit
	}
	if n == 0 {
		return nil
	}

	rebuilt := make([]*Chunk, 0, n)
	for _, i := range w.dirtyQueue[:n] {
		c := w.chunks[i]
		w.rebuild(c)
		c.dirty = false
		rebuilt = append(rebuilt, c)
	}
	w.dirtyQueue = append(w.dirtyQueue[:0], w.dirtyQueue[n:]...)

	w.log.Debug("rebuilt dirty chunks", "count", n, "pending", len(w.dirtyQueue))
	return rebuilt
}

// rebuild recomputes the chunk's empty flag and mesh from scratch.
func (w *World) rebuild(c *Chunk) {
	cells := w.ChunkVoxels(c.Index)
	c.empty = allAir(cells)
	if c.empty {
		c.mesh = nil
		return
	}
	o := c.Origin(w.dims.ChunkSize)
	c.mesh = mesh.Build(cells, w.dims.ChunkSize, [3]int{o.X, o.Y, o.Z}, w)
}

func allAir(cells []voxel.Cell) bool {
	for _, c := range cells {
		if c != voxel.Air {
			return false
		}
	}
	return true
}
