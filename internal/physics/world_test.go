package physics

import (
	"testing"

	"fallingup/internal/components"
	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVectorNear(t *testing.T, want, got rl.Vector3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta)
	assert.InDelta(t, want.Y, got.Y, delta)
	assert.InDelta(t, want.Z, got.Z, delta)
}

// boxFloor is a 200x200x10 slab whose top face sits at z = 0.
func boxFloor() *engine.GameObject {
	g := engine.NewGameObject("Floor")
	g.Transform.Position = rl.Vector3{Z: -5}
	g.AddComponent(components.NewBoxCollider(rl.Vector3{X: 200, Y: 200, Z: 10}))
	return g
}

func meshObject(name string, mesh components.MeshData, pos rl.Vector3) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.AddComponent(components.NewMeshCollider(mesh))
	g.Start()
	return g
}

func player(pos rl.Vector3) (*engine.GameObject, *components.CapsuleBody) {
	g := engine.NewGameObject("Player")
	g.Transform.Position = pos
	body := components.NewCapsuleBody(25, 25)
	body.Friction = 0
	g.AddComponent(body)
	return g, body
}

func TestAddObjectClassifies(t *testing.T) {
	w := NewWorld()
	floor := boxFloor()
	p, _ := player(rl.Vector3{Z: 100})
	decoration := engine.NewGameObject("Empty")

	w.AddObject(floor)
	w.AddObject(p)
	w.AddObject(decoration)

	assert.Equal(t, []*engine.GameObject{floor}, w.GetCollidableObjects())
	assert.Equal(t, []*engine.GameObject{p}, w.Bodies)
}

func TestBodyFallsAndRestsOnBox(t *testing.T) {
	w := NewWorld()
	w.AddObject(boxFloor())
	p, body := player(rl.Vector3{Z: 100})
	w.AddObject(p)

	var hits []components.Contact
	body.OnHit.AddListener(func(c components.Contact) { hits = append(hits, c) })
	slept := false
	body.OnSleep.AddListener(func() { slept = true })

	body.SetVelocity(rl.Vector3{Z: -600})
	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
	}

	assert.InDelta(t, 25, p.Transform.Position.Z, 1e-3)
	require.NotEmpty(t, hits)
	assert.Equal(t, "Floor", hits[0].Other.Name)
	assertVectorNear(t, rl.Vector3{Z: 1}, hits[0].Normal, 1e-5)
	assert.True(t, slept)
	assert.Equal(t, 1, w.Stats().ContactBegins)
}

func TestBodyRestsOnMesh(t *testing.T) {
	w := NewWorld()
	w.AddObject(meshObject("Ground", components.PlaneMesh(400, 400, 4), rl.Vector3{}))
	p, body := player(rl.Vector3{X: 7, Y: -3, Z: 60})
	w.AddObject(p)

	body.SetVelocity(rl.Vector3{Z: -300})
	for i := 0; i < 30; i++ {
		w.Step(1.0 / 60)
	}
	assert.InDelta(t, 25, p.Transform.Position.Z, 1e-2)
	assert.InDelta(t, 7, p.Transform.Position.X, 1e-3)
}

func TestBodyInsideBoxLeavesThroughNearestFace(t *testing.T) {
	w := NewWorld()
	w.AddObject(boxFloor())
	p, body := player(rl.Vector3{Z: -2})
	w.AddObject(p)

	body.SetVelocity(rl.Vector3{X: 1})
	w.Step(1.0 / 60)
	assert.InDelta(t, 25, p.Transform.Position.Z, 1e-3)
}

func TestSleepingBodyIsNotIntegrated(t *testing.T) {
	w := NewWorld()
	p, body := player(rl.Vector3{Z: 100})
	w.AddObject(p)
	body.IsSleeping = true

	w.Step(1.0 / 60)
	assert.Equal(t, float32(100), p.Transform.Position.Z)
}

func TestFastBodyDoesNotTunnel(t *testing.T) {
	w := NewWorld()
	floor := engine.NewGameObject("Thin")
	floor.Transform.Position = rl.Vector3{Z: -1}
	floor.AddComponent(components.NewBoxCollider(rl.Vector3{X: 500, Y: 500, Z: 2}))
	w.AddObject(floor)
	p, body := player(rl.Vector3{Z: 80})
	w.AddObject(p)

	body.SetVelocity(rl.Vector3{Z: -6000})
	w.Step(1.0 / 60)
	assert.Greater(t, p.Transform.Position.Z, float32(0))
}
