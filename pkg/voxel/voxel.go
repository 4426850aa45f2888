package voxel

import (
	"fmt"
	"strings"
)

// Cell is a single voxel: 0 is air, 1..7 is a material id.
type Cell uint8

const (
	Air Cell = iota
	Sand
	Grass
	Dirt
	Stone
	Snow
	Leaves
	Wood

	// MaxMaterial is the highest valid material id.
	MaxMaterial = Wood
)

var names = [...]string{
	Air:    "air",
	Sand:   "sand",
	Grass:  "grass",
	Dirt:   "dirt",
	Stone:  "stone",
	Snow:   "snow",
	Leaves: "leaves",
	Wood:   "wood",
}

// Valid reports whether c is air or a known material.
func (c Cell) Valid() bool { return c <= MaxMaterial }

// Solid reports whether c occupies its cell.
func (c Cell) Solid() bool { return c != Air }

func (c Cell) String() string {
	if !c.Valid() {
		return fmt.Sprintf("cell(%d)", uint8(c))
	}
	return names[c]
}

// Parse returns the cell for a material name, case-insensitive.
func Parse(name string) (Cell, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return Cell(i), nil
		}
	}
	return Air, fmt.Errorf("unknown material %q", name)
}

// Materials returns every placeable material in id order.
func Materials() []Cell {
	out := make([]Cell, 0, MaxMaterial)
	for c := Sand; c <= MaxMaterial; c++ {
		out = append(out, c)
	}
	return out
}
