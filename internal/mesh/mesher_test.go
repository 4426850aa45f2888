package mesh

import (
	"testing"

	"github.com/OCharnyshevich/voxelworld/pkg/voxel"
)

// mapReader serves cells from a sparse map; missing cells are air.
type mapReader map[[3]int]voxel.Cell

func (m mapReader) Get(x, y, z int) voxel.Cell { return m[[3]int{x, y, z}] }

func chunkWith(size int, cells map[[3]int]voxel.Cell) []voxel.Cell {
	buf := make([]voxel.Cell, size*size*size)
	for p, c := range cells {
		buf[p[0]+size*p[2]+size*size*p[1]] = c
	}
	return buf
}

func TestPackLayout(t *testing.T) {
	got := Pack(1, 2, 3, NegY, voxel.Stone)
	want := uint32(1) | 2<<6 | 3<<12 | uint32(NegY)<<18 | uint32(voxel.Stone)<<21
	if got != want {
		t.Fatalf("Pack = %#x, want %#x", got, want)
	}
	if got>>24 != 0 {
		t.Errorf("high byte = %#x, want 0", got>>24)
	}

	v := Unpack(got)
	if v.X != 1 || v.Y != 2 || v.Z != 3 || v.Face != NegY || v.Material != voxel.Stone {
		t.Errorf("Unpack = %+v", v)
	}
}

func TestPackExtremes(t *testing.T) {
	v := Unpack(Pack(MaxChunkSize, MaxChunkSize, MaxChunkSize, NegZ, voxel.Wood))
	if v.X != MaxChunkSize || v.Y != MaxChunkSize || v.Z != MaxChunkSize {
		t.Errorf("coords = %d,%d,%d, want %d", v.X, v.Y, v.Z, MaxChunkSize)
	}
	if v.Face != NegZ || v.Material != voxel.Wood {
		t.Errorf("face/material = %v/%v", v.Face, v.Material)
	}
}

func TestPackPanics(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z int
		face    Face
		mat     voxel.Cell
	}{
		{"x overflow", MaxChunkSize + 1, 0, 0, PosX, voxel.Sand},
		{"negative y", 0, -1, 0, PosX, voxel.Sand},
		{"bad face", 0, 0, 0, Face(6), voxel.Sand},
		{"air", 0, 0, 0, PosX, voxel.Air},
		{"bad material", 0, 0, 0, PosX, voxel.Cell(8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Pack did not panic")
				}
			}()
			Pack(tt.x, tt.y, tt.z, tt.face, tt.mat)
		})
	}
}

func TestSingleVoxel(t *testing.T) {
	const size = 4
	cells := chunkWith(size, map[[3]int]voxel.Cell{{1, 1, 1}: voxel.Grass})

	buf := Build(cells, size, [3]int{0, 0, 0}, mapReader{})
	if len(buf) != 36 {
		t.Fatalf("got %d vertices, want 36", len(buf))
	}
	counts := FaceCounts(buf)
	for f, n := range counts {
		if n != 1 {
			t.Errorf("face %v: %d quads, want 1", Face(f), n)
		}
	}
	for _, rec := range buf {
		v := Unpack(rec)
		if v.Material != voxel.Grass {
			t.Fatalf("material = %v, want grass", v.Material)
		}
		if v.X < 1 || v.X > 2 || v.Y < 1 || v.Y > 2 || v.Z < 1 || v.Z > 2 {
			t.Fatalf("vertex %+v outside the cell corners", v)
		}
	}
}

func TestEmptyChunk(t *testing.T) {
	const size = 8
	buf := Build(make([]voxel.Cell, size*size*size), size, [3]int{0, 0, 0}, mapReader{})
	if len(buf) != 0 {
		t.Errorf("got %d vertices, want 0", len(buf))
	}
}

func TestHiddenFacesBetweenNeighbours(t *testing.T) {
	const size = 4
	cells := chunkWith(size, map[[3]int]voxel.Cell{
		{1, 1, 1}: voxel.Stone,
		{2, 1, 1}: voxel.Stone,
	})
	counts := FaceCounts(Build(cells, size, [3]int{0, 0, 0}, mapReader{}))
	want := [numFaces]int{PosX: 1, NegX: 1, PosY: 2, NegY: 2, PosZ: 2, NegZ: 2}
	if counts != want {
		t.Errorf("FaceCounts = %v, want %v", counts, want)
	}
}

func TestChunkBorderUsesReader(t *testing.T) {
	const size = 2
	// Chunk A spans x in [0,2), chunk B spans x in [2,4).
	a := chunkWith(size, map[[3]int]voxel.Cell{{1, 0, 0}: voxel.Dirt})
	b := chunkWith(size, map[[3]int]voxel.Cell{{0, 0, 0}: voxel.Dirt})
	world := mapReader{{1, 0, 0}: voxel.Dirt, {2, 0, 0}: voxel.Dirt}

	ca := FaceCounts(Build(a, size, [3]int{0, 0, 0}, world))
	cb := FaceCounts(Build(b, size, [3]int{2, 0, 0}, world))
	if ca[PosX] != 0 {
		t.Errorf("chunk A emitted %d +x faces across the border", ca[PosX])
	}
	if cb[NegX] != 0 {
		t.Errorf("chunk B emitted %d -x faces across the border", cb[NegX])
	}
	if ca[NegX] != 1 || cb[PosX] != 1 {
		t.Errorf("outer faces: A -x=%d, B +x=%d, want 1 each", ca[NegX], cb[PosX])
	}
}

func TestWorldEdgeIsOpen(t *testing.T) {
	const size = 2
	cells := chunkWith(size, map[[3]int]voxel.Cell{{0, 0, 0}: voxel.Sand})
	counts := FaceCounts(Build(cells, size, [3]int{0, 0, 0}, mapReader{}))
	for f, n := range counts {
		if n != 1 {
			t.Errorf("face %v: %d quads, want 1", Face(f), n)
		}
	}
}

func TestWindingMatchesNormal(t *testing.T) {
	const size = 3
	cells := chunkWith(size, map[[3]int]voxel.Cell{{1, 1, 1}: voxel.Snow})
	buf := Build(cells, size, [3]int{0, 0, 0}, mapReader{})

	for i := 0; i < len(buf); i += 3 {
		a, b, c := Unpack(buf[i]), Unpack(buf[i+1]), Unpack(buf[i+2])
		e1 := [3]int{b.X - a.X, b.Y - a.Y, b.Z - a.Z}
		e2 := [3]int{c.X - a.X, c.Y - a.Y, c.Z - a.Z}
		n := [3]int{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		if n != a.Face.Normal() {
			t.Errorf("triangle %d on face %v has normal %v, want %v", i/3, a.Face, n, a.Face.Normal())
		}
	}
}

func TestUVCoversQuad(t *testing.T) {
	for f := Face(0); f < numFaces; f++ {
		seen := map[[2]uint8]bool{}
		for n := 0; n < VerticesPerFace; n++ {
			u, v := UV(f, n)
			if u > 1 || v > 1 {
				t.Fatalf("UV(%v, %d) = %d,%d", f, n, u, v)
			}
			seen[[2]uint8{u, v}] = true
		}
		if len(seen) != 4 {
			t.Errorf("face %v uses %d distinct UVs, want 4", f, len(seen))
		}
	}
}

func BenchmarkBuildFullChunk(b *testing.B) {
	const size = 32
	cells := make([]voxel.Cell, size*size*size)
	for i := range cells {
		if i%3 != 0 {
			cells[i] = voxel.Stone
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Build(cells, size, [3]int{0, 0, 0}, mapReader{})
	}
}
