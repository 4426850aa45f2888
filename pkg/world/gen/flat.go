package gen

import "github.com/OCharnyshevich/voxelworld/pkg/voxel"

// FlatGenerator fills every column to the same height: grass on top, dirt
// below. It places no trees.
type FlatGenerator struct {
	Height int
}

// NewFlatGenerator creates a FlatGenerator with columns height cells tall.
func NewFlatGenerator(height int) *FlatGenerator {
	if height < 0 {
		height = 0
	}
	return &FlatGenerator{Height: height}
}

func (g *FlatGenerator) HeightAt(_, _ int) int {
	return g.Height
}

func (g *FlatGenerator) Generate(v Volume) {
	size := v.Size()
	_, oy, _ := v.Origin()
	top := columnRange(g.Height, oy, size)
	for lz := 0; lz < size; lz++ {
		for lx := 0; lx < size; lx++ {
			for ly := 0; ly < top; ly++ {
				c := voxel.Dirt
				if oy+ly == g.Height-1 {
					c = voxel.Grass
				}
				v.Set(lx, ly, lz, c)
			}
		}
	}
}
