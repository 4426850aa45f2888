// Package scene runs one frame of the voxel pipeline: input, picking and
// editing, dirty re-meshing, then culling.
package scene

import (
	"log/slog"

	"github.com/OCharnyshevich/voxelworld/internal/camera"
	"github.com/OCharnyshevich/voxelworld/internal/frustum"
	"github.com/OCharnyshevich/voxelworld/internal/picker"
	"github.com/OCharnyshevich/voxelworld/internal/world"
	"github.com/OCharnyshevich/voxelworld/pkg/voxel"
)

// Frame is what a renderer needs after one tick.
type Frame struct {
	Tick uint64
	// Visible holds the non-empty chunks inside the view frustum.
	Visible []*world.Chunk
	// Rebuilt holds the chunks whose mesh changed this tick.
	Rebuilt []*world.Chunk

	Selection    picker.Result
	HasSelection bool
	Material     voxel.Cell

	Camera *camera.Camera
}

// Scene owns the world and everything that acts on it per frame. It is not
// safe for concurrent use.
type Scene struct {
	log     *slog.Logger
	world   *world.World
	control *camera.Controller
	picker  *picker.Picker
	culler  *frustum.Culler

	// maxRebuilds caps re-meshed chunks per frame; 0 drains the queue.
	maxRebuilds int
	tick        uint64
}

// New assembles a scene from built components.
func New(w *world.World, ctl *camera.Controller, p *picker.Picker, c *frustum.Culler, maxRebuilds int, log *slog.Logger) *Scene {
	if log == nil {
		log = slog.Default()
	}
	return &Scene{
		log:         log.With("component", "scene"),
		world:       w,
		control:     ctl,
		picker:      p,
		culler:      c,
		maxRebuilds: maxRebuilds,
	}
}

func (s *Scene) World() *world.World { return s.world }

func (s *Scene) Camera() *camera.Camera { return s.control.Camera }

func (s *Scene) Picker() *picker.Picker { return s.picker }

// Frame advances the scene by dt seconds of input.
func (s *Scene) Frame(in camera.Input, dt float32) Frame {
	s.tick++
	cam := s.control.Camera

	actions := s.control.Apply(in, dt)
	s.picker.Pick(cam.Position, cam.Forward)

	// Each edit clears the selection, so re-pick before the next action.
	for _, a := range actions {
		switch a.Kind {
		case camera.ActionRemove:
			if sel, ok := s.picker.Selection(); ok && s.picker.RemoveVoxel() {
				s.log.Debug("voxel removed", "pos", sel.Hit, "cell", sel.Cell)
				s.picker.Pick(cam.Position, cam.Forward)
			}
		case camera.ActionAdd:
			if sel, ok := s.picker.Selection(); ok && s.picker.AddVoxel() {
				s.log.Debug("voxel added", "pos", sel.LastEmpty, "cell", s.picker.Material())
				s.picker.Pick(cam.Position, cam.Forward)
			}
		case camera.ActionSelect:
			if err := s.picker.SetMaterial(a.Material); err != nil {
				s.log.Warn("select material", "error", err)
			}
		}
	}

	f := Frame{
		Tick:     s.tick,
		Rebuilt:  s.world.RebuildDirty(s.maxRebuilds),
		Material: s.picker.Material(),
		Camera:   cam,
	}
	f.Selection, f.HasSelection = s.picker.Selection()
	f.Visible = s.Visible()
	return f
}

// Visible returns the non-empty chunks the camera can see.
func (s *Scene) Visible() []*world.Chunk {
	cam := s.control.Camera
	var out []*world.Chunk
	for _, c := range s.world.Chunks() {
		if c.Empty() {
			continue
		}
		if s.culler.IsVisible(cam.Position, cam.Forward, cam.Up, cam.Right, c.Center, c.Radius) {
			out = append(out, c)
		}
	}
	return out
}
