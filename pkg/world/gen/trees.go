package gen

import "github.com/OCharnyshevich/voxelworld/pkg/voxel"

// Surface answers terrain questions about columns, including columns outside
// the chunk being decorated.
type Surface interface {
	HeightAt(wx, wz int) int
	Classify(wx, wy, wz, height int) voxel.Cell
}

// TreeGenerator stamps trees on low grass.
type TreeGenerator struct {
	seed        int64
	probability float64
	halfWidth   int
	height      int
	maxY        int // trees only root below this world y

	// World extent in voxels; zero means unbounded.
	width, worldHeight, depth int
}

// NewTreeGenerator creates a TreeGenerator from p.
func NewTreeGenerator(p Params) *TreeGenerator {
	return &TreeGenerator{
		seed:        p.Seed,
		probability: p.TreeProbability,
		halfWidth:   p.TreeWidth / 2,
		height:      p.TreeHeight,
		maxY:        p.DirtLevel,
		width:       p.Width,
		worldHeight: p.Height,
		depth:       p.Depth,
	}
}

// Rooted reports whether a tree grows from the column (wx, wz).
func (tg *TreeGenerator) Rooted(wx, wz int) bool {
	return unit(Hash2(tg.seed^saltTree, wx, wz)) < tg.probability
}

// Decorate writes the parts of every tree that overlap the chunk. Trees rooted
// up to halfWidth+1 columns outside the chunk are included, so a canopy
// continues across chunk borders while each chunk only writes its own cells.
func (tg *TreeGenerator) Decorate(v Volume, s Surface) {
	if tg.probability <= 0 || tg.height < 3 {
		return
	}
	size := v.Size()
	ox, oy, oz := v.Origin()
	margin := tg.halfWidth + 1

	for wz := oz - margin; wz < oz+size+margin; wz++ {
		for wx := ox - margin; wx < ox+size+margin; wx++ {
			if !tg.inWorldColumn(wx, wz) || !tg.Rooted(wx, wz) {
				continue
			}
			height := s.HeightAt(wx, wz)
			wy := height - 1
			if wy < 0 || wy >= tg.maxY {
				continue
			}
			// Skip trees entirely above or below the chunk.
			if wy+tg.height-2 < oy || wy >= oy+size {
				continue
			}
			if s.Classify(wx, wy, wz, height) != voxel.Grass {
				continue
			}
			tg.place(v, wx, wy, wz)
		}
	}
}

func (tg *TreeGenerator) inWorldColumn(wx, wz int) bool {
	if tg.width > 0 && (wx < 0 || wx >= tg.width) {
		return false
	}
	if tg.depth > 0 && (wz < 0 || wz >= tg.depth) {
		return false
	}
	return true
}

// stamp writes c at world (wx, wy, wz) when the cell is inside both the chunk
// and the world.
func (tg *TreeGenerator) stamp(v Volume, wx, wy, wz int, c voxel.Cell) {
	if !tg.inWorldColumn(wx, wz) || wy < 0 || (tg.worldHeight > 0 && wy >= tg.worldHeight) {
		return
	}
	ox, oy, oz := v.Origin()
	lx, ly, lz := wx-ox, wy-oy, wz-oz
	size := v.Size()
	if lx < 0 || ly < 0 || lz < 0 || lx >= size || ly >= size || lz >= size {
		return
	}
	v.Set(lx, ly, lz, c)
}

// place writes one tree rooted on the grass cell at world (wx, wy, wz).
func (tg *TreeGenerator) place(v Volume, wx, wy, wz int) {
	hw, h := tg.halfWidth, tg.height

	tg.stamp(v, wx, wy, wz, voxel.Dirt)

	// Canopy: layers shrink as they rise, shifted by one on odd layers.
	shrink := 0
	for n, iy := 0, h/2; iy < h-1; n, iy = n+1, iy+1 {
		k := iy % 2
		r := Roll(tg.seed^saltShape, wx, wy+iy, wz, 2)
		for ix := -hw + shrink; ix < hw-shrink*r; ix++ {
			for iz := -hw + shrink*r; iz < hw-shrink; iz++ {
				if (ix+iz)%4 != 0 {
					tg.stamp(v, wx+ix+k, wy+iy, wz+iz+k, voxel.Leaves)
				}
			}
		}
		if n > 0 {
			shrink++
		}
	}

	for iy := 1; iy < h-2; iy++ {
		tg.stamp(v, wx, wy+iy, wz, voxel.Wood)
	}
	tg.stamp(v, wx, wy+h-2, wz, voxel.Leaves)
}
