package components

import (
	"testing"

	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVectorNear(t *testing.T, want, got rl.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4)
	assert.InDelta(t, want.Y, got.Y, 1e-4)
	assert.InDelta(t, want.Z, got.Z, 1e-4)
}

func TestBoxColliderRotatedBounds(t *testing.T) {
	g := engine.NewGameObject("Ramp")
	g.Transform.Position = rl.Vector3{X: 10}
	g.Transform.SetEuler(rl.Vector3{Z: 90})
	box := NewBoxCollider(rl.Vector3{X: 4, Y: 2, Z: 2})
	g.AddComponent(box)

	b := box.Bounds()
	assertVectorNear(t, rl.Vector3{X: 9, Y: -2, Z: -1}, b.Min)
	assertVectorNear(t, rl.Vector3{X: 11, Y: 2, Z: 1}, b.Max)
}

func TestBoxColliderScaleAndOffset(t *testing.T) {
	g := engine.NewGameObject("Box")
	g.Transform.Scale = rl.Vector3{X: 2, Y: -2, Z: 1}
	box := NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1})
	box.Offset = rl.Vector3{Z: 3}
	g.AddComponent(box)

	assert.Equal(t, rl.Vector3{X: 1, Y: 1, Z: 0.5}, box.HalfExtents())
	assert.Equal(t, rl.Vector3{Z: 3}, box.Center())
}

func TestBoxColliderClosestPoint(t *testing.T) {
	g := engine.NewGameObject("Box")
	g.Transform.SetEuler(rl.Vector3{Z: 45})
	box := NewBoxCollider(rl.Vector3{X: 2, Y: 2, Z: 2})
	g.AddComponent(box)

	inside := rl.Vector3{X: 0.1, Y: 0.2, Z: 0.3}
	assertVectorNear(t, inside, box.ClosestPoint(inside))
	assertVectorNear(t, rl.Vector3{Z: 1}, box.ClosestPoint(rl.Vector3{Z: 10}))
}

func TestColliderFactories(t *testing.T) {
	c, err := engine.CreateComponent("BoxCollider", map[string]any{"size": []any{1.0, 2.0, 3.0}})
	require.NoError(t, err)
	assert.Equal(t, rl.Vector3{X: 1, Y: 2, Z: 3}, c.(*BoxCollider).Size)

	c, err = engine.CreateComponent("SphereCollider", map[string]any{"radius": 4})
	require.NoError(t, err)
	assert.Equal(t, float32(4), c.(*SphereCollider).Radius)

	c, err = engine.CreateComponent("MeshRenderer", map[string]any{"color": []any{10, 20, 30}})
	require.NoError(t, err)
	assert.Equal(t, rl.Color{R: 10, G: 20, B: 30, A: 255}, c.(*MeshRenderer).Color)

	_, err = engine.CreateComponent("MeshRenderer", map[string]any{"color": []any{300, 0, 0}})
	assert.Error(t, err)

	c, err = engine.CreateComponent("CapsuleBody", map[string]any{"radius": 10, "halfHeight": 30})
	require.NoError(t, err)
	assert.Equal(t, float32(30), c.(*CapsuleBody).HalfHeight)
}

func TestSphereColliderWorldRadius(t *testing.T) {
	g := engine.NewGameObject("Ball")
	g.Transform.Scale = rl.Vector3{X: 1, Y: 3, Z: -2}
	s := NewSphereCollider(2)
	g.AddComponent(s)
	assert.Equal(t, float32(6), s.WorldRadius())
}

func TestAxisAngle(t *testing.T) {
	angle, axis := axisAngle(rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, 1.2))
	assert.InDelta(t, 1.2, angle, 1e-5)
	assertVectorNear(t, rl.Vector3{Y: 1}, axis)

	angle, _ = axisAngle(rl.QuaternionIdentity())
	assert.Equal(t, float32(0), angle)
}
