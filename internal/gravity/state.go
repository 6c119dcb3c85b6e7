package gravity

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// WorldDown is the gravity direction a controller starts with.
var WorldDown = rl.Vector3{X: 0, Y: 0, Z: -1}

// Local frame axes. Forward is +X, up is +Z; pitch turns about -Y so positive
// look input raises the forward axis toward up.
var (
	localForward = rl.Vector3{X: 1}
	localUp      = rl.Vector3{Z: 1}
	pitchAxis    = rl.Vector3{Y: -1}
)

// minMoveInput is the input length below which movement is treated as zero.
const minMoveInput = 1e-4

// State is the orientation frame of one character.
type State struct {
	Gravity rl.Vector3    // unit, world space
	View    rl.Quaternion // unit, local-to-world
}

// NewState returns a state with world-down gravity and the given initial view.
func NewState(view rl.Quaternion) State {
	return State{
		Gravity: WorldDown,
		View:    rl.QuaternionNormalize(view),
	}
}

// ApplyLook turns the view by a look input. Pitch is composed first about the
// local lateral axis, then yaw about the current gravity axis expressed in the
// view's local frame, so turning stays level relative to whatever surface the
// character is standing on.
func (s *State) ApplyLook(look rl.Vector2, speed float32) {
	if look.Y != 0 {
		pitch := rl.QuaternionFromAxisAngle(pitchAxis, look.Y*speed)
		s.View = rl.QuaternionMultiply(s.View, pitch)
	}
	if look.X != 0 {
		yawAxis := rl.Vector3RotateByQuaternion(rl.Vector3Negate(s.Gravity), rl.QuaternionInvert(s.View))
		yaw := rl.QuaternionFromAxisAngle(yawAxis, look.X*speed)
		s.View = rl.QuaternionMultiply(s.View, yaw)
	}
	s.View = rl.QuaternionNormalize(s.View)
}

// Reorient commits a reorientation: gravity takes the new direction and the
// view is pre-multiplied by the delta.
func (s *State) Reorient(r Reorientation) {
	s.Gravity = r.Gravity
	s.View = rl.QuaternionNormalize(rl.QuaternionMultiply(r.Delta, s.View))
}

// Forward returns the world-space look direction.
func (s State) Forward() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(localForward, s.View)
}

// Up returns the world-space up axis of the view.
func (s State) Up() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(localUp, s.View)
}

// MoveVelocity converts a 2D move input into a world-space velocity. Input x
// maps to the view's forward axis and y to its lateral axis. Near-zero input
// yields zero velocity.
func MoveVelocity(view rl.Quaternion, input rl.Vector2, speed float32) rl.Vector3 {
	length := rl.Vector2Length(input)
	if length < minMoveInput {
		return rl.Vector3Zero()
	}
	local := rl.Vector3{X: input.X / length, Y: input.Y / length}
	return rl.Vector3Scale(rl.Vector3RotateByQuaternion(local, view), speed)
}
