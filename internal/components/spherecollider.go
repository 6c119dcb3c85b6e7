package components

import (
	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("SphereCollider", func(props map[string]any) (engine.Component, error) {
		radius, err := engine.FloatProp(props, "radius", 0.5)
		if err != nil {
			return nil, err
		}
		offset, err := engine.Vector3Prop(props, "offset", rl.Vector3{})
		if err != nil {
			return nil, err
		}
		s := NewSphereCollider(radius)
		s.Offset = offset
		return s, nil
	})
}

type SphereCollider struct {
	engine.BaseComponent
	Radius float32
	Offset rl.Vector3
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{Radius: radius}
}

// Center returns the world-space center of this collider
func (s *SphereCollider) Center() rl.Vector3 {
	return s.GetGameObject().WorldTransform().TransformPoint(s.Offset)
}

// WorldRadius scales the radius by the largest world scale component.
func (s *SphereCollider) WorldRadius() float32 {
	return s.Radius * maxComponent(absVector(s.GetGameObject().WorldScale()))
}

func (s *SphereCollider) Bounds() AABB {
	r := s.WorldRadius()
	return NewAABBFromCenter(s.Center(), rl.Vector3{X: r, Y: r, Z: r})
}
