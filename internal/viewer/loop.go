package viewer

import (
	"context"
	"time"

	"github.com/OCharnyshevich/voxelworld/internal/camera"
	"github.com/OCharnyshevich/voxelworld/internal/scene"
	"github.com/OCharnyshevich/voxelworld/internal/wire"
	"github.com/OCharnyshevich/voxelworld/internal/world"
)

// Run ticks the scene at the configured rate until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	defer close(s.done)

	hz := s.cfg.Viewer.TickHz
	if hz <= 0 {
		hz = 60
	}
	dt := 1 / float32(hz)
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	sessions := make(map[string]*session)
	defer func() {
		for _, sess := range sessions {
			close(sess.out)
		}
	}()

	var pending camera.Input
	for {
		select {
		case <-ctx.Done():
			return nil

		case sess := <-s.join:
			sessions[sess.id] = sess
			for _, c := range s.scene.World().Chunks() {
				if c.Empty() {
					continue
				}
				if !s.send(sessions, sess, s.meshFrame(c)) {
					break
				}
			}

		case sess := <-s.leave:
			if _, ok := sessions[sess.id]; ok {
				delete(sessions, sess.id)
				close(sess.out)
			}

		case in := <-s.inputs:
			pending = mergeInput(pending, in)

		case <-ticker.C:
			f := s.scene.Frame(pending, dt)
			pending = camera.Input{}

			msgs := make([][]byte, 0, len(f.Rebuilt)+1)
			for _, c := range f.Rebuilt {
				msgs = append(msgs, s.meshFrame(c))
			}
			msgs = append(msgs, s.codec.Compress(renderFrame(f).Encode()))

			for _, sess := range sessions {
				for _, b := range msgs {
					if !s.send(sessions, sess, b) {
						break
					}
				}
			}
		}
	}
}

// send queues b for sess. A session that cannot keep up is dropped, since
// a missed mesh would leave its copy of the world stale.
func (s *Server) send(sessions map[string]*session, sess *session, b []byte) bool {
	select {
	case sess.out <- b:
		return true
	default:
		s.log.Warn("client too slow, dropping", "session", sess.id)
		delete(sessions, sess.id)
		close(sess.out)
		return false
	}
}

func (s *Server) meshFrame(c *world.Chunk) []byte {
	f := wire.MeshFrame{
		Index:    int32(c.Index),
		Coord:    [3]int32{int32(c.Coord.X), int32(c.Coord.Y), int32(c.Coord.Z)},
		Empty:    c.Empty(),
		Vertices: c.Mesh(),
	}
	return s.codec.Compress(f.Encode())
}

func renderFrame(f scene.Frame) *wire.RenderFrame {
	rf := &wire.RenderFrame{
		Tick:         int64(f.Tick),
		Visible:      make([]int32, len(f.Visible)),
		Position:     f.Camera.Position,
		Yaw:          f.Camera.Yaw,
		Pitch:        f.Camera.Pitch,
		ViewProj:     [16]float32(f.Camera.ViewProjection()),
		HasSelection: f.HasSelection,
		HasEmpty:     f.Selection.HasEmpty,
		Material:     uint8(f.Material),
	}
	for i, c := range f.Visible {
		rf.Visible[i] = int32(c.Index)
	}
	if f.HasSelection {
		h, e := f.Selection.Hit, f.Selection.LastEmpty
		rf.Hit = [3]int{h.X, h.Y, h.Z}
		rf.LastEmpty = [3]int{e.X, e.Y, e.Z}
	}
	return rf
}

// mergeInput folds inputs received between two ticks.
func mergeInput(a, b camera.Input) camera.Input {
	a.Forward = a.Forward || b.Forward
	a.Back = a.Back || b.Back
	a.Left = a.Left || b.Left
	a.Right = a.Right || b.Right
	a.Up = a.Up || b.Up
	a.Down = a.Down || b.Down
	a.Sprint = a.Sprint || b.Sprint
	a.MouseDX += b.MouseDX
	a.MouseDY += b.MouseDY
	a.Remove = a.Remove || b.Remove
	a.Add = a.Add || b.Add
	if b.Select != 0 {
		a.Select = b.Select
	}
	return a
}
