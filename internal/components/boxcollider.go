package components

import (
	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("BoxCollider", func(props map[string]any) (engine.Component, error) {
		size, err := engine.Vector3Prop(props, "size", rl.Vector3{X: 1, Y: 1, Z: 1})
		if err != nil {
			return nil, err
		}
		offset, err := engine.Vector3Prop(props, "offset", rl.Vector3{})
		if err != nil {
			return nil, err
		}
		b := NewBoxCollider(size)
		b.Offset = offset
		return b, nil
	})
}

// BoxCollider is an oriented box that follows its object's world transform.
type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{Size: size}
}

// Center returns the world-space centre of the box.
func (b *BoxCollider) Center() rl.Vector3 {
	return b.GetGameObject().WorldTransform().TransformPoint(b.Offset)
}

// HalfExtents returns the world-scaled half size along the box's own axes.
func (b *BoxCollider) HalfExtents() rl.Vector3 {
	scaled := rl.Vector3Multiply(b.Size, b.GetGameObject().WorldScale())
	return rl.Vector3Scale(absVector(scaled), 0.5)
}

func (b *BoxCollider) Rotation() rl.Quaternion {
	return b.GetGameObject().WorldRotation()
}

// ToLocal maps a world point into the box frame, centred on the box.
func (b *BoxCollider) ToLocal(p rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3Subtract(p, b.Center()), rl.QuaternionInvert(b.Rotation()))
}

// ToLocalDirection rotates a world direction into the box frame.
func (b *BoxCollider) ToLocalDirection(d rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(d, rl.QuaternionInvert(b.Rotation()))
}

// ToWorldDirection rotates a box-frame direction into world space.
func (b *BoxCollider) ToWorldDirection(d rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(d, b.Rotation())
}

// ClosestPoint returns the point of the box closest to p, in world space.
func (b *BoxCollider) ClosestPoint(p rl.Vector3) rl.Vector3 {
	local := b.ToLocal(p)
	h := b.HalfExtents()
	clamped := rl.Vector3{
		X: clampf(local.X, -h.X, h.X),
		Y: clampf(local.Y, -h.Y, h.Y),
		Z: clampf(local.Z, -h.Z, h.Z),
	}
	return rl.Vector3Add(b.Center(), b.ToWorldDirection(clamped))
}

// Bounds encloses the rotated box.
func (b *BoxCollider) Bounds() AABB {
	h := b.HalfExtents()
	q := b.Rotation()
	ax := absVector(rl.Vector3RotateByQuaternion(rl.Vector3{X: h.X}, q))
	ay := absVector(rl.Vector3RotateByQuaternion(rl.Vector3{Y: h.Y}, q))
	az := absVector(rl.Vector3RotateByQuaternion(rl.Vector3{Z: h.Z}, q))
	return NewAABBFromCenter(b.Center(), rl.Vector3Add(rl.Vector3Add(ax, ay), az))
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
