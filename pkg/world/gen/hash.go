package gen

// Stable integer hashing. Generation never touches math/rand so every cell is a
// pure function of (seed, x, y, z) and chunks can be built in any order.

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Hash2 hashes a column coordinate.
func Hash2(seed int64, x, z int) uint64 {
	ux := uint64(uint32(int32(x)))
	uz := uint64(uint32(int32(z)))
	return mix64(uint64(seed) ^ (ux * 0x9e3779b97f4a7c15) ^ (uz * 0xbf58476d1ce4e5b9))
}

// Hash3 hashes a cell coordinate.
func Hash3(seed int64, x, y, z int) uint64 {
	ux := uint64(uint32(int32(x)))
	uy := uint64(uint32(int32(y)))
	uz := uint64(uint32(int32(z)))
	return mix64(uint64(seed) ^ (ux * 0x9e3779b97f4a7c15) ^ (uy * 0xc2b2ae3d27d4eb4f) ^ (uz * 0xbf58476d1ce4e5b9))
}

// Roll returns a value in [0, n) for the cell.
func Roll(seed int64, x, y, z, n int) int {
	if n <= 0 {
		return 0
	}
	return int(Hash3(seed, x, y, z) % uint64(n))
}

// unit maps a hash onto [0, 1) using its top 53 bits.
func unit(h uint64) float64 {
	return float64(h>>11) / (1 << 53)
}

// Salted seeds keep independent decisions on the same cell uncorrelated.
const (
	saltBand  = 0x5a17
	saltTree  = 0x7733
	saltShape = 0x1f0f
)
