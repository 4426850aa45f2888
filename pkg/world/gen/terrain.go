package gen

import (
	"math"

	"github.com/OCharnyshevich/voxelworld/pkg/voxel"
)

// DefaultGenerator produces island terrain with elevation bands, optional
// caves and trees.
type DefaultGenerator struct {
	p       Params
	terrain *NoiseGenerator
	caves   *CaveGenerator
	trees   *TreeGenerator
}

// NewDefaultGenerator creates a DefaultGenerator from p.
func NewDefaultGenerator(p Params) *DefaultGenerator {
	g := &DefaultGenerator{
		p:       p,
		terrain: NewNoiseGenerator(p.Seed),
		trees:   NewTreeGenerator(p),
	}
	if p.Caves {
		g.caves = NewCaveGenerator(p.Seed)
	}
	return g
}

func (g *DefaultGenerator) HeightAt(wx, wz int) int {
	x, z := float64(wx), float64(wz)
	cx, cz := float64(g.p.Width)/2, float64(g.p.Depth)/2

	// Island mask: ~1 near the centre, falling off sharply towards the rim.
	island := 1 / (math.Pow(0.0025*math.Hypot(x-cx, z-cz), 20) + 0.0001)
	island = math.Min(island, 1)

	a1 := float64(g.p.Height) / 2
	a2, a4, a8 := a1*0.5, a1*0.25, a1*0.125

	const f1 = 0.005
	f2, f4, f8 := f1*2, f1*4, f1*8

	if g.terrain.Noise2D(0.1*x, 0.1*z) < 0 {
		a1 /= 1.07
	}

	h := g.terrain.Noise2D(x*f1, z*f1)*a1 + a1
	h += g.terrain.Noise2D(x*f2, z*f2)*a2 - a2
	h += g.terrain.Noise2D(x*f4, z*f4)*a4 + a4
	h += g.terrain.Noise2D(x*f8, z*f8)*a8 - a8
	h = math.Max(h, g.terrain.Noise2D(x*f8, z*f8)+2)
	h *= island

	height := int(h)
	if height < 0 {
		height = 0
	}
	if height > g.p.Height {
		height = g.p.Height
	}
	return height
}

func (g *DefaultGenerator) Generate(v Volume) {
	size := v.Size()
	ox, oy, oz := v.Origin()

	// Pass 1: heightmap and banded columns.
	heights := make([]int, size*size)
	for lz := 0; lz < size; lz++ {
		for lx := 0; lx < size; lx++ {
			wx, wz := ox+lx, oz+lz
			height := g.HeightAt(wx, wz)
			heights[lx+lz*size] = height

			top := columnRange(height, oy, size)
			for ly := 0; ly < top; ly++ {
				if c := g.Classify(wx, oy+ly, wz, height); c != voxel.Air {
					v.Set(lx, ly, lz, c)
				}
			}
		}
	}

	// Pass 2: caves.
	if g.caves != nil {
		g.caves.Carve(v, heights)
	}

	// Pass 3: trees, including those rooted in neighbouring columns.
	g.trees.Decorate(v, &chunkSurface{g: g, heights: heights, ox: ox, oz: oz, size: size})
}

// chunkSurface answers HeightAt from the chunk's heightmap where it can.
type chunkSurface struct {
	g       *DefaultGenerator
	heights []int
	ox, oz  int
	size    int
}

func (s *chunkSurface) HeightAt(wx, wz int) int {
	lx, lz := wx-s.ox, wz-s.oz
	if lx >= 0 && lz >= 0 && lx < s.size && lz < s.size {
		return s.heights[lx+lz*s.size]
	}
	return s.g.HeightAt(wx, wz)
}

func (s *chunkSurface) Classify(wx, wy, wz, height int) voxel.Cell {
	return s.g.Classify(wx, wy, wz, height)
}

// Classify returns the material of the terrain cell at wy in a column whose
// height is height. Caves and trees are applied separately.
func (g *DefaultGenerator) Classify(wx, wy, wz, height int) voxel.Cell {
	if wy < 0 || wy >= height {
		return voxel.Air
	}
	surface := g.surfaceAt(wx, height-1, wz)
	if wy == height-1 {
		return surface
	}
	if height-1-wy <= g.p.SubsoilDepth && (surface == voxel.Grass || surface == voxel.Dirt) {
		return voxel.Dirt
	}
	return voxel.Stone
}

// surfaceAt bands the topmost cell by elevation, jittered per cell so band
// edges are ragged rather than flat lines.
func (g *DefaultGenerator) surfaceAt(wx, wy, wz int) voxel.Cell {
	ry := wy - Roll(g.p.Seed^saltBand, wx, wy, wz, 7)
	switch {
	case ry >= g.p.SnowLevel:
		return voxel.Snow
	case ry >= g.p.StoneLevel:
		return voxel.Stone
	case ry >= g.p.DirtLevel:
		return voxel.Dirt
	case ry >= g.p.GrassLevel:
		return voxel.Grass
	default:
		return voxel.Sand
	}
}
