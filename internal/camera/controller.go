package camera

import "github.com/OCharnyshevich/voxelworld/pkg/voxel"

// Input is one frame of user input.
type Input struct {
	Forward bool `json:"forward,omitempty"`
	Back    bool `json:"back,omitempty"`
	Left    bool `json:"left,omitempty"`
	Right   bool `json:"right,omitempty"`
	Up      bool `json:"up,omitempty"`
	Down    bool `json:"down,omitempty"`
	Sprint  bool `json:"sprint,omitempty"`

	// MouseDX and MouseDY are pointer deltas in pixels.
	MouseDX float32 `json:"dx,omitempty"`
	MouseDY float32 `json:"dy,omitempty"`

	Remove bool `json:"remove,omitempty"`
	Add    bool `json:"add,omitempty"`
	// Select picks a placement material id, 0 for none.
	Select uint8 `json:"select,omitempty"`
}

// ActionKind is a discrete edit requested by input.
type ActionKind uint8

const (
	ActionRemove ActionKind = iota + 1
	ActionAdd
	ActionSelect
)

func (k ActionKind) String() string {
	switch k {
	case ActionRemove:
		return "remove"
	case ActionAdd:
		return "add"
	case ActionSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Action is returned by Controller.Apply. Material is set for ActionSelect.
type Action struct {
	Kind     ActionKind
	Material voxel.Cell
}

// Controller moves a Camera from input.
type Controller struct {
	Camera *Camera
	// Speed is in voxels per second; sprinting doubles it.
	Speed float32
	// Sensitivity is radians per pixel of pointer motion.
	Sensitivity float32
}

// NewController wraps cam.
func NewController(cam *Camera, speed, sensitivity float32) *Controller {
	return &Controller{Camera: cam, Speed: speed, Sensitivity: sensitivity}
}

// Apply moves the camera for dt seconds of input and returns the edits the
// input asks for, in remove, add, select order.
func (c *Controller) Apply(in Input, dt float32) []Action {
	if in.MouseDX != 0 || in.MouseDY != 0 {
		c.Camera.Rotate(in.MouseDX*c.Sensitivity, -in.MouseDY*c.Sensitivity)
	}

	v := c.Speed * dt
	if in.Sprint {
		v *= 2
	}
	cam := c.Camera
	if in.Forward {
		cam.MoveForward(v)
	}
	if in.Back {
		cam.MoveBack(v)
	}
	if in.Right {
		cam.MoveRight(v)
	}
	if in.Left {
		cam.MoveLeft(v)
	}
	if in.Up {
		cam.MoveUp(v)
	}
	if in.Down {
		cam.MoveDown(v)
	}

	var actions []Action
	if in.Remove {
		actions = append(actions, Action{Kind: ActionRemove})
	}
	if in.Add {
		actions = append(actions, Action{Kind: ActionAdd})
	}
	if m := voxel.Cell(in.Select); m != voxel.Air && m.Valid() {
		actions = append(actions, Action{Kind: ActionSelect, Material: m})
	}
	return actions
}
