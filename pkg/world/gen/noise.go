package gen

// Simplex noise after Ken Perlin's improved construction, seeded through a
// shuffled permutation table. Samples fall in [-1, 1].

var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

const (
	skew2   = 0.36602540378443864676 // (sqrt(3) - 1) / 2
	unskew2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	skew3   = 1.0 / 3.0
	unskew3 = 1.0 / 6.0
)

// NoiseGenerator produces deterministic simplex noise from a seed.
type NoiseGenerator struct {
	perm [512]uint8
}

// NewNoiseGenerator builds the permutation table for seed.
func NewNoiseGenerator(seed int64) *NoiseGenerator {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}

	// Fisher-Yates driven by the same mixer as Hash3 so tables are stable across platforms.
	state := uint64(seed)
	for i := 255; i > 0; i-- {
		state = mix64(state + uint64(i))
		j := int(state % uint64(i+1))
		p[i], p[j] = p[j], p[i]
	}

	ng := &NoiseGenerator{}
	for i := range ng.perm {
		ng.perm[i] = p[i&255]
	}
	return ng
}

func (ng *NoiseGenerator) gradIndex2(i, j int) int {
	return int(ng.perm[i+int(ng.perm[j])]) % 12
}

func (ng *NoiseGenerator) gradIndex3(i, j, k int) int {
	return int(ng.perm[i+int(ng.perm[j+int(ng.perm[k])])]) % 12
}

func corner2(g int, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t < 0 {
		return 0
	}
	t *= t
	return t * t * (grad3[g][0]*x + grad3[g][1]*y)
}

func corner3(g int, x, y, z float64) float64 {
	t := 0.6 - x*x - y*y - z*z
	if t < 0 {
		return 0
	}
	t *= t
	return t * t * (grad3[g][0]*x + grad3[g][1]*y + grad3[g][2]*z)
}

// Noise2D samples 2D simplex noise.
func (ng *NoiseGenerator) Noise2D(x, y float64) float64 {
	s := (x + y) * skew2
	i := fastFloor(x + s)
	j := fastFloor(y + s)

	t := float64(i+j) * unskew2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	x1 := x0 - float64(i1) + unskew2
	y1 := y0 - float64(j1) + unskew2
	x2 := x0 - 1 + 2*unskew2
	y2 := y0 - 1 + 2*unskew2

	ii, jj := i&255, j&255
	n := corner2(ng.gradIndex2(ii, jj), x0, y0) +
		corner2(ng.gradIndex2(ii+i1, jj+j1), x1, y1) +
		corner2(ng.gradIndex2(ii+1, jj+1), x2, y2)
	return clampUnit(70 * n)
}

// simplexOffsets3 returns the second and third corner offsets of the 3D simplex
// containing (x0, y0, z0).
func simplexOffsets3(x0, y0, z0 float64) (a, b [3]int) {
	switch {
	case x0 >= y0 && y0 >= z0:
		return [3]int{1, 0, 0}, [3]int{1, 1, 0}
	case x0 >= y0 && x0 >= z0:
		return [3]int{1, 0, 0}, [3]int{1, 0, 1}
	case x0 >= y0:
		return [3]int{0, 0, 1}, [3]int{1, 0, 1}
	case y0 < z0:
		return [3]int{0, 0, 1}, [3]int{0, 1, 1}
	case x0 < z0:
		return [3]int{0, 1, 0}, [3]int{0, 1, 1}
	default:
		return [3]int{0, 1, 0}, [3]int{1, 1, 0}
	}
}

// Noise3D samples 3D simplex noise.
func (ng *NoiseGenerator) Noise3D(x, y, z float64) float64 {
	s := (x + y + z) * skew3
	i := fastFloor(x + s)
	j := fastFloor(y + s)
	k := fastFloor(z + s)

	t := float64(i+j+k) * unskew3
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)

	a, b := simplexOffsets3(x0, y0, z0)

	ii, jj, kk := i&255, j&255, k&255
	n := corner3(ng.gradIndex3(ii, jj, kk), x0, y0, z0)
	n += corner3(ng.gradIndex3(ii+a[0], jj+a[1], kk+a[2]),
		x0-float64(a[0])+unskew3, y0-float64(a[1])+unskew3, z0-float64(a[2])+unskew3)
	n += corner3(ng.gradIndex3(ii+b[0], jj+b[1], kk+b[2]),
		x0-float64(b[0])+2*unskew3, y0-float64(b[1])+2*unskew3, z0-float64(b[2])+2*unskew3)
	n += corner3(ng.gradIndex3(ii+1, jj+1, kk+1),
		x0-1+3*unskew3, y0-1+3*unskew3, z0-1+3*unskew3)
	return clampUnit(32 * n)
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
