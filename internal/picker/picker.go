// Package picker casts view rays into the voxel grid and edits the cell
// they hit.
package picker

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxelworld/internal/world"
	"github.com/OCharnyshevich/voxelworld/pkg/voxel"
)

// ErrInvalidMaterial is returned when selecting air or an unknown id.
var ErrInvalidMaterial = errors.New("invalid material")

// Grid is the voxel storage the picker reads and edits.
type Grid interface {
	Dims() world.Dims
	Get(x, y, z int) voxel.Cell
	Set(x, y, z int, c voxel.Cell) bool
	InBounds(x, y, z int) bool
	// MarkEdited queues every chunk whose mesh depends on the cell.
	MarkEdited(x, y, z int)
}

// Options tunes the ray march.
type Options struct {
	MaxDistance float32
	// Step is the march increment in voxels, in (0, 1].
	Step     float32
	Material voxel.Cell
}

// DefaultOptions returns a 6-voxel reach and a tenth-voxel step.
func DefaultOptions() Options {
	return Options{MaxDistance: 6, Step: 0.1, Material: voxel.Stone}
}

// Result is a successful pick.
type Result struct {
	// Hit is the first solid cell along the ray.
	Hit world.Pos
	// Chunk and Local locate Hit on the chunk grid.
	Chunk world.ChunkCoord
	Local world.Pos
	// Cell is the value found at Hit.
	Cell voxel.Cell
	// LastEmpty is the empty cell visited just before Hit. HasEmpty is false
	// when the ray started inside Hit.
	LastEmpty world.Pos
	HasEmpty  bool
	// Distance is the ray parameter at which Hit was entered.
	Distance float32
}

// Picker holds the placement material and the last pick.
type Picker struct {
	grid     Grid
	opts     Options
	material voxel.Cell

	sel    Result
	hasSel bool
}

// New creates a Picker over grid.
func New(grid Grid, opts Options) (*Picker, error) {
	if !(opts.Step > 0 && opts.Step <= 1) {
		return nil, fmt.Errorf("pick step %v out of range (0, 1]", opts.Step)
	}
	if opts.MaxDistance < 0 {
		return nil, fmt.Errorf("negative pick distance %v", opts.MaxDistance)
	}
	p := &Picker{grid: grid, opts: opts, material: voxel.Stone}
	if opts.Material != voxel.Air {
		if err := p.SetMaterial(opts.Material); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Pick marches from pos along forward and stores the result as the current
// selection. forward should be a unit vector.
func (p *Picker) Pick(pos, forward mgl32.Vec3) (Result, bool) {
	p.sel, p.hasSel = p.march(pos, forward)
	return p.sel, p.hasSel
}

func (p *Picker) march(pos, forward mgl32.Vec3) (Result, bool) {
	ox, oy, oz := float64(pos[0]), float64(pos[1]), float64(pos[2])
	dx, dy, dz := float64(forward[0]), float64(forward[1]), float64(forward[2])
	step := float64(p.opts.Step)
	steps := int(math.Floor(float64(p.opts.MaxDistance) / step))

	var (
		prev    world.Pos
		visited bool
	)
	for i := 0; i <= steps; i++ {
		t := float64(i) * step
		cell := world.Pos{
			X: int(math.Floor(ox + dx*t)),
			Y: int(math.Floor(oy + dy*t)),
			Z: int(math.Floor(oz + dz*t)),
		}
		if visited && cell == prev {
			continue
		}
		if c := p.grid.Get(cell.X, cell.Y, cell.Z); c != voxel.Air {
			chunk, local := p.grid.Dims().Split(cell)
			return Result{
				Hit:       cell,
				Chunk:     chunk,
				Local:     local,
				Cell:      c,
				LastEmpty: prev,
				HasEmpty:  visited,
				Distance:  float32(t),
			}, true
		}
		prev, visited = cell, true
	}
	return Result{}, false
}

// Selection returns the last pick, if it hit.
func (p *Picker) Selection() (Result, bool) {
	return p.sel, p.hasSel
}

// RemoveVoxel clears the selected cell.
func (p *Picker) RemoveVoxel() bool {
	if !p.hasSel {
		return false
	}
	h := p.sel.Hit
	if !p.grid.Set(h.X, h.Y, h.Z, voxel.Air) {
		return false
	}
	p.grid.MarkEdited(h.X, h.Y, h.Z)
	p.hasSel = false
	return true
}

// AddVoxel places the current material in the empty cell in front of the
// selection.
func (p *Picker) AddVoxel() bool {
	if !p.hasSel || !p.sel.HasEmpty {
		return false
	}
	e := p.sel.LastEmpty
	if !p.grid.InBounds(e.X, e.Y, e.Z) || p.grid.Get(e.X, e.Y, e.Z) != voxel.Air {
		return false
	}
	p.grid.Set(e.X, e.Y, e.Z, p.material)
	p.grid.MarkEdited(e.X, e.Y, e.Z)
	p.hasSel = false
	return true
}

// SetMaterial selects the material AddVoxel places.
func (p *Picker) SetMaterial(c voxel.Cell) error {
	if c == voxel.Air || !c.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMaterial, c)
	}
	p.material = c
	return nil
}

// Material returns the material AddVoxel places.
func (p *Picker) Material() voxel.Cell { return p.material }
