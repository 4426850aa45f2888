package mesh

import (
	"fmt"

	"github.com/OCharnyshevich/voxelworld/pkg/voxel"
)

// Vertex record layout, low to high:
//
//	bits  0-5   x     vertex corner, 0..chunk size
//	bits  6-11  y
//	bits 12-17  z
//	bits 18-20  face  0..5
//	bits 21-23  material 1..7
//	bits 24-31  zero
const (
	coordBits    = 6
	faceBits     = 3
	materialBits = 3

	xShift        = 0
	yShift        = xShift + coordBits
	zShift        = yShift + coordBits
	faceShift     = zShift + coordBits
	materialShift = faceShift + faceBits

	coordMask    = 1<<coordBits - 1
	faceMask     = 1<<faceBits - 1
	materialMask = 1<<materialBits - 1

	// MaxChunkSize is the largest chunk edge whose far corner still fits.
	MaxChunkSize = coordMask

	// VerticesPerFace is the number of records a face emits.
	VerticesPerFace = 6
)

// Vertex is an unpacked vertex record.
type Vertex struct {
	X, Y, Z  int
	Face     Face
	Material voxel.Cell
}

// Pack encodes a vertex. It panics if a field does not fit its bits.
func Pack(x, y, z int, f Face, m voxel.Cell) uint32 {
	if x < 0 || x > coordMask || y < 0 || y > coordMask || z < 0 || z > coordMask {
		panic(fmt.Sprintf("mesh: vertex (%d,%d,%d) does not fit %d bits", x, y, z, coordBits))
	}
	if f >= numFaces {
		panic(fmt.Sprintf("mesh: invalid face %d", f))
	}
	if m == voxel.Air || !m.Valid() {
		panic(fmt.Sprintf("mesh: invalid material %d", m))
	}
	return uint32(x)<<xShift |
		uint32(y)<<yShift |
		uint32(z)<<zShift |
		uint32(f)<<faceShift |
		uint32(m)<<materialShift
}

// Unpack decodes a vertex record.
func Unpack(v uint32) Vertex {
	return Vertex{
		X:        int(v >> xShift & coordMask),
		Y:        int(v >> yShift & coordMask),
		Z:        int(v >> zShift & coordMask),
		Face:     Face(v >> faceShift & faceMask),
		Material: voxel.Cell(v >> materialShift & materialMask),
	}
}
