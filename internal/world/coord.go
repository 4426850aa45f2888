package world

// FloorDiv divides rounding towards negative infinity. b must be positive.
func FloorDiv(a, b int) int {
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

// Mod returns a non-negative remainder. b must be positive.
func Mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// Pos is an integer voxel position in world space.
type Pos struct {
	X, Y, Z int
}

// Add returns p offset by d.
func (p Pos) Add(d Pos) Pos {
	return Pos{p.X + d.X, p.Y + d.Y, p.Z + d.Z}
}

// ChunkCoord identifies a chunk on the chunk grid.
type ChunkCoord struct {
	X, Y, Z int
}

// Dims describes the world extent.
type Dims struct {
	// Width, Height and Depth count chunks along x, y and z.
	Width, Height, Depth int
	// ChunkSize is the chunk edge length in voxels.
	ChunkSize int
}

// Chunks returns the number of chunks.
func (d Dims) Chunks() int { return d.Width * d.Height * d.Depth }

// ChunkVolume returns the number of cells per chunk.
func (d Dims) ChunkVolume() int { return d.ChunkSize * d.ChunkSize * d.ChunkSize }

// Voxels returns the world extent in voxels.
func (d Dims) Voxels() Pos {
	return Pos{d.Width * d.ChunkSize, d.Height * d.ChunkSize, d.Depth * d.ChunkSize}
}

// ChunkIndex returns the arena index of c; c must be in range.
func (d Dims) ChunkIndex(c ChunkCoord) int {
	return c.X + d.Width*c.Z + d.Width*d.Depth*c.Y
}

// LocalIndex returns the cell index of a chunk-local coordinate.
func (d Dims) LocalIndex(lx, ly, lz int) int {
	s := d.ChunkSize
	return lx + s*lz + s*s*ly
}

// ContainsChunk reports whether c lies on the chunk grid.
func (d Dims) ContainsChunk(c ChunkCoord) bool {
	return c.X >= 0 && c.X < d.Width &&
		c.Y >= 0 && c.Y < d.Height &&
		c.Z >= 0 && c.Z < d.Depth
}

// Split converts a world position to its chunk and chunk-local coordinate.
func (d Dims) Split(p Pos) (ChunkCoord, Pos) {
	s := d.ChunkSize
	return ChunkCoord{FloorDiv(p.X, s), FloorDiv(p.Y, s), FloorDiv(p.Z, s)},
		Pos{Mod(p.X, s), Mod(p.Y, s), Mod(p.Z, s)}
}
