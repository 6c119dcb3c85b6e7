package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// Transform places an object in its parent's space. Rotation is a unit
// quaternion; Scale is applied before Rotation.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
}

// IdentityTransform returns a transform with no translation, rotation or scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: rl.QuaternionIdentity(),
		Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// SetEuler sets the rotation from Euler angles in degrees around the X, Y and Z axes.
func (t *Transform) SetEuler(degrees rl.Vector3) {
	t.Rotation = rl.QuaternionFromEuler(degrees.X*rl.Deg2rad, degrees.Y*rl.Deg2rad, degrees.Z*rl.Deg2rad)
}

// TransformPoint maps a local-space point into the transform's parent space.
func (t Transform) TransformPoint(p rl.Vector3) rl.Vector3 {
	scaled := rl.Vector3Multiply(p, t.Scale)
	return rl.Vector3Add(t.Position, rl.Vector3RotateByQuaternion(scaled, t.Rotation))
}

// InverseTransformPoint maps a parent-space point into local space.
func (t Transform) InverseTransformPoint(p rl.Vector3) rl.Vector3 {
	local := rl.Vector3RotateByQuaternion(rl.Vector3Subtract(p, t.Position), rl.QuaternionInvert(t.Rotation))
	return rl.Vector3{
		X: safeDiv(local.X, t.Scale.X),
		Y: safeDiv(local.Y, t.Scale.Y),
		Z: safeDiv(local.Z, t.Scale.Z),
	}
}

// TransformDirection rotates a local direction into parent space. Scale is ignored.
func (t Transform) TransformDirection(d rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(d, t.Rotation)
}

// InverseTransformDirection rotates a parent-space direction into local space.
func (t Transform) InverseTransformDirection(d rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(d, rl.QuaternionInvert(t.Rotation))
}

// Combine returns the transform of a child placed at local inside t.
func (t Transform) Combine(local Transform) Transform {
	return Transform{
		Position: t.TransformPoint(local.Position),
		Rotation: rl.QuaternionNormalize(rl.QuaternionMultiply(t.Rotation, local.Rotation)),
		Scale:    rl.Vector3Multiply(t.Scale, local.Scale),
	}
}

func safeDiv(v, s float32) float32 {
	if s == 0 {
		return 0
	}
	return v / s
}
