package picker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxelworld/internal/world"
	"github.com/OCharnyshevich/voxelworld/pkg/voxel"
	"github.com/OCharnyshevich/voxelworld/pkg/world/gen"
)

var down = mgl32.Vec3{0, -1, 0}

func newTestWorld(t *testing.T, dims world.Dims) *world.World {
	t.Helper()
	w, err := world.New(dims, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	return w
}

func newTestPicker(t *testing.T, g Grid, maxDist float32) *Picker {
	t.Helper()
	opts := DefaultOptions()
	opts.MaxDistance = maxDist
	p, err := New(g, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestPickStraightDown(t *testing.T) {
	w := newTestWorld(t, world.Dims{Width: 1, Height: 1, Depth: 1, ChunkSize: 16})
	w.Set(0, 2, 0, voxel.Stone)
	p := newTestPicker(t, w, 10)

	res, ok := p.Pick(mgl32.Vec3{0, 10, 0}, down)
	if !ok {
		t.Fatal("Pick missed")
	}
	if res.Hit != (world.Pos{X: 0, Y: 2, Z: 0}) {
		t.Errorf("Hit = %v, want (0,2,0)", res.Hit)
	}
	if !res.HasEmpty || res.LastEmpty != (world.Pos{X: 0, Y: 3, Z: 0}) {
		t.Errorf("LastEmpty = %v (has %v), want (0,3,0)", res.LastEmpty, res.HasEmpty)
	}
	if res.Cell != voxel.Stone {
		t.Errorf("Cell = %v, want stone", res.Cell)
	}

	if err := p.SetMaterial(voxel.Wood); err != nil {
		t.Fatalf("SetMaterial: %v", err)
	}
	if !p.AddVoxel() {
		t.Fatal("AddVoxel returned false")
	}
	if got := w.Get(0, 3, 0); got != voxel.Wood {
		t.Errorf("cell (0,3,0) = %v, want wood", got)
	}
	if got := w.Get(0, 2, 0); got != voxel.Stone {
		t.Errorf("cell (0,2,0) = %v, want stone", got)
	}
	if w.DirtyCount() != 1 {
		t.Errorf("DirtyCount = %d, want 1", w.DirtyCount())
	}
}

func TestPickLocalCoordinates(t *testing.T) {
	w := newTestWorld(t, world.Dims{Width: 2, Height: 2, Depth: 2, ChunkSize: 4})
	w.Set(5, 1, 6, voxel.Dirt)
	p := newTestPicker(t, w, 10)

	res, ok := p.Pick(mgl32.Vec3{5.5, 7.5, 6.5}, down)
	if !ok {
		t.Fatal("Pick missed")
	}
	if res.Chunk != (world.ChunkCoord{X: 1, Y: 0, Z: 1}) || res.Local != (world.Pos{X: 1, Y: 1, Z: 2}) {
		t.Errorf("Chunk/Local = %v/%v, want (1,0,1)/(1,1,2)", res.Chunk, res.Local)
	}
}

func TestPickMisses(t *testing.T) {
	w := newTestWorld(t, world.Dims{Width: 1, Height: 1, Depth: 1, ChunkSize: 16})
	w.Set(0, 2, 0, voxel.Stone)
	p := newTestPicker(t, w, 6)

	if _, ok := p.Pick(mgl32.Vec3{0.5, 10, 0.5}, down); ok {
		t.Error("Pick hit beyond max distance")
	}
	if _, ok := p.Selection(); ok {
		t.Error("Selection kept after a miss")
	}
	if p.RemoveVoxel() || p.AddVoxel() {
		t.Error("edits without a selection should be no-ops")
	}
	if w.DirtyCount() != 0 {
		t.Errorf("DirtyCount = %d, want 0", w.DirtyCount())
	}
}

func TestPickFromInsideSolid(t *testing.T) {
	w := newTestWorld(t, world.Dims{Width: 1, Height: 1, Depth: 1, ChunkSize: 8})
	w.Set(1, 1, 1, voxel.Sand)
	p := newTestPicker(t, w, 6)

	res, ok := p.Pick(mgl32.Vec3{1.5, 1.5, 1.5}, down)
	if !ok || res.Hit != (world.Pos{X: 1, Y: 1, Z: 1}) {
		t.Fatalf("Pick = %v, %v", res, ok)
	}
	if res.HasEmpty {
		t.Error("HasEmpty = true for a ray starting inside a solid cell")
	}
	if p.AddVoxel() {
		t.Error("AddVoxel without a placement cell should fail")
	}
}

func TestAddOutsideWorld(t *testing.T) {
	w := newTestWorld(t, world.Dims{Width: 1, Height: 1, Depth: 1, ChunkSize: 4})
	w.Set(0, 3, 0, voxel.Grass)
	p := newTestPicker(t, w, 6)

	// The ray enters from above the world, so the cell before the hit is
	// outside it.
	res, ok := p.Pick(mgl32.Vec3{0.5, 5.5, 0.5}, down)
	if !ok {
		t.Fatal("Pick missed")
	}
	if res.LastEmpty != (world.Pos{X: 0, Y: 4, Z: 0}) {
		t.Fatalf("LastEmpty = %v, want (0,4,0)", res.LastEmpty)
	}
	if p.AddVoxel() {
		t.Error("AddVoxel outside the world should fail")
	}
}

func TestRoundTripEdit(t *testing.T) {
	w := newTestWorld(t, world.Dims{Width: 2, Height: 1, Depth: 2, ChunkSize: 4})
	if err := w.Build(context.Background(), gen.NewFlatGenerator(2), 0); err != nil {
		t.Fatalf("Build: %v", err)
	}
	before := append([]voxel.Cell(nil), w.ChunkVoxels(0)...)
	p := newTestPicker(t, w, 6)
	eye := mgl32.Vec3{3.5, 3.5, 3.5}

	if _, ok := p.Pick(eye, down); !ok {
		t.Fatal("first Pick missed")
	}
	if !p.AddVoxel() {
		t.Fatal("AddVoxel failed")
	}
	res, ok := p.Pick(eye, down)
	if !ok || res.Hit != (world.Pos{X: 3, Y: 2, Z: 3}) {
		t.Fatalf("second Pick = %v, %v", res.Hit, ok)
	}
	if !p.RemoveVoxel() {
		t.Fatal("RemoveVoxel failed")
	}
	w.RebuildDirty(0)

	for i, c := range w.ChunkVoxels(0) {
		if c != before[i] {
			t.Fatalf("cell %d = %v, want %v", i, c, before[i])
		}
	}
	if w.Chunk(0).Empty() {
		t.Error("chunk became empty")
	}
}

func TestRemoveMarksNeighbourChunk(t *testing.T) {
	w := newTestWorld(t, world.Dims{Width: 2, Height: 1, Depth: 1, ChunkSize: 4})
	if err := w.Build(context.Background(), gen.NewFlatGenerator(2), 0); err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := newTestPicker(t, w, 6)
	if _, ok := p.Pick(mgl32.Vec3{3.5, 3.5, 0.5}, down); !ok {
		t.Fatal("Pick missed")
	}
	if !p.RemoveVoxel() {
		t.Fatal("RemoveVoxel failed")
	}
	if !w.Chunk(0).Dirty() || !w.Chunk(1).Dirty() {
		t.Errorf("dirty = %v/%v, want both", w.Chunk(0).Dirty(), w.Chunk(1).Dirty())
	}
}

func TestSetMaterial(t *testing.T) {
	w := newTestWorld(t, world.Dims{Width: 1, Height: 1, Depth: 1, ChunkSize: 4})
	p := newTestPicker(t, w, 6)
	for _, c := range []voxel.Cell{voxel.Air, voxel.Cell(8)} {
		if err := p.SetMaterial(c); !errors.Is(err, ErrInvalidMaterial) {
			t.Errorf("SetMaterial(%d) = %v, want ErrInvalidMaterial", c, err)
		}
	}
	for _, c := range voxel.Materials() {
		if err := p.SetMaterial(c); err != nil {
			t.Errorf("SetMaterial(%v): %v", c, err)
		}
		if p.Material() != c {
			t.Errorf("Material = %v, want %v", p.Material(), c)
		}
	}
}

func TestNewRejectsBadStep(t *testing.T) {
	w := newTestWorld(t, world.Dims{Width: 1, Height: 1, Depth: 1, ChunkSize: 4})
	for _, step := range []float32{0, -0.5, 1.5} {
		if _, err := New(w, Options{MaxDistance: 6, Step: step}); err == nil {
			t.Errorf("New with step %v succeeded", step)
		}
	}
}
