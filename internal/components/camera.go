package components

import (
	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("Camera", func(props map[string]any) (engine.Component, error) {
		c := NewCamera()
		var err error
		if c.FOV, err = engine.FloatProp(props, "fov", c.FOV); err != nil {
			return nil, err
		}
		if c.Offset, err = engine.Vector3Prop(props, "offset", c.Offset); err != nil {
			return nil, err
		}
		if c.IsMain, err = engine.BoolProp(props, "isMain", true); err != nil {
			return nil, err
		}
		return c, nil
	})
}

// Camera renders from its object's position, looking along the view rotation
// pushed by the gravity controller. Local X is forward and Z is up.
type Camera struct {
	engine.BaseComponent
	FOV        float32
	Near       float32
	Far        float32
	Projection rl.CameraProjection
	Offset     rl.Vector3 // eye offset in view space
	IsMain     bool       // If true, this is the active game camera

	view rl.Quaternion
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        70.0,
		Near:       0.1,
		Far:        10000.0,
		Projection: rl.CameraPerspective,
		Offset:     rl.Vector3{X: -3, Z: -13},
		view:       rl.QuaternionIdentity(),
	}
}

// SetViewRotation implements gravity.ViewSink.
func (c *Camera) SetViewRotation(q rl.Quaternion) {
	c.view = q
}

func (c *Camera) ViewRotation() rl.Quaternion {
	return c.view
}

// Eye returns the world-space eye position.
func (c *Camera) Eye() rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{}
	}
	return rl.Vector3Add(g.WorldPosition(), rl.Vector3RotateByQuaternion(c.Offset, c.view))
}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	eye := c.Eye()
	forward := rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, c.view)
	up := rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, c.view)

	return rl.Camera3D{
		Position:   eye,
		Target:     rl.Vector3Add(eye, forward),
		Up:         up,
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}
