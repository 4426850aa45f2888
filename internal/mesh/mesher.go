package mesh

import (
	"fmt"

	"github.com/OCharnyshevich/voxelworld/pkg/voxel"
)

// Reader resolves cells in world space. Cells outside the world are air.
type Reader interface {
	Get(x, y, z int) voxel.Cell
}

// Build emits the visible faces of a chunk as packed vertex records.
// voxels is the chunk's cell slice (index lx + size*lz + size*size*ly),
// origin is the world position of its local (0, 0, 0), and r answers lookups
// that cross the chunk border.
func Build(voxels []voxel.Cell, size int, origin [3]int, r Reader) []uint32 {
	if size <= 0 || size > MaxChunkSize {
		panic(fmt.Sprintf("mesh: chunk size %d out of range 1..%d", size, MaxChunkSize))
	}
	if len(voxels) != size*size*size {
		panic(fmt.Sprintf("mesh: got %d cells for chunk size %d", len(voxels), size))
	}

	area := size * size
	var out []uint32
	for ly := 0; ly < size; ly++ {
		for lz := 0; lz < size; lz++ {
			for lx := 0; lx < size; lx++ {
				m := voxels[lx+size*lz+area*ly]
				if m == voxel.Air {
					continue
				}
				for f := Face(0); f < numFaces; f++ {
					n := normals[f]
					nx, ny, nz := lx+n[0], ly+n[1], lz+n[2]

					var neighbour voxel.Cell
					if nx >= 0 && ny >= 0 && nz >= 0 && nx < size && ny < size && nz < size {
						neighbour = voxels[nx+size*nz+area*ny]
					} else {
						neighbour = r.Get(origin[0]+nx, origin[1]+ny, origin[2]+nz)
					}
					if neighbour != voxel.Air {
						continue
					}
					out = appendFace(out, lx, ly, lz, f, m)
				}
			}
		}
	}
	return out
}

func appendFace(out []uint32, x, y, z int, f Face, m voxel.Cell) []uint32 {
	c := &corners[f]
	for _, k := range quadOrder {
		out = append(out, Pack(x+c[k][0], y+c[k][1], z+c[k][2], f, m))
	}
	return out
}

// FaceCounts returns the number of faces per direction in a packed buffer.
func FaceCounts(buf []uint32) [numFaces]int {
	var counts [numFaces]int
	for i := 0; i+VerticesPerFace <= len(buf); i += VerticesPerFace {
		counts[Unpack(buf[i]).Face]++
	}
	return counts
}
