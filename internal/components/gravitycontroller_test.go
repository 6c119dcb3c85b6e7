package components

import (
	"math"
	"testing"

	"fallingup/internal/engine"
	"fallingup/internal/gravity"
	"fallingup/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedWorld answers every sphere cast with the same surface.
type fixedWorld struct {
	surface *engine.GameObject
	normal  rl.Vector3
	casts   int
	ignored *engine.GameObject
}

func (w *fixedWorld) GetCollidableObjects() []*engine.GameObject { return nil }

func (w *fixedWorld) Raycast(origin, direction rl.Vector3, maxDistance float32, ignore *engine.GameObject) (engine.RaycastResult, bool) {
	return w.SphereCast(origin, direction, 0, maxDistance, ignore)
}

func (w *fixedWorld) SphereCast(origin, direction rl.Vector3, radius, maxDistance float32, ignore *engine.GameObject) (engine.RaycastResult, bool) {
	w.casts++
	w.ignored = ignore
	if w.surface == nil {
		return engine.RaycastResult{}, false
	}
	return engine.RaycastResult{
		GameObject: w.surface,
		Point:      rl.Vector3Add(origin, rl.Vector3Scale(direction, 20)),
		Normal:     w.normal,
		Distance:   20,
		FaceIndex:  -1,
	}, true
}

func newPlayerScene(world *fixedWorld, src input.Source) (*engine.GameObject, *GravityController, *CapsuleBody, *Camera) {
	scene := engine.NewScene("test")
	scene.World = world

	g := engine.NewGameObject("Player")
	body := NewCapsuleBody(25, 25)
	cam := NewCamera()
	gc := NewGravityController(gravity.DefaultConfig())
	gc.Input = src
	g.AddComponent(body)
	g.AddComponent(cam)
	g.AddComponent(gc)
	scene.AddGameObject(g)
	scene.Start()
	return g, gc, body, cam
}

func TestGravityControllerWiresSinks(t *testing.T) {
	world := &fixedWorld{}
	g, gc, _, cam := newPlayerScene(world, nil)

	require.NotNil(t, gc.Controller())
	assert.Equal(t, rl.QuaternionIdentity(), cam.ViewRotation())

	gc.Update(1.0 / 60)
	assert.Equal(t, 1, world.casts)
	assert.Same(t, g, world.ignored, "probe ignores the player itself")
	assert.True(t, gc.LastReport().Probed)
	assert.False(t, gc.LastReport().Hit)
}

func TestGravityControllerFlipsOntoSlopeAndTurnsBody(t *testing.T) {
	rad := 30 * math.Pi / 180
	slope := rl.Vector3{X: float32(math.Sin(rad)), Z: float32(math.Cos(rad))}
	world := &fixedWorld{surface: engine.NewGameObject("Ramp"), normal: slope}
	_, gc, body, cam := newPlayerScene(world, nil)

	var reports []gravity.TickReport
	gc.OnReport.AddListener(func(r gravity.TickReport) { reports = append(reports, r) })

	gc.Update(1.0 / 60)
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Flipped)
	assertVectorNear(t, slope, body.Up)
	assertVectorNear(t, slope, rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, cam.ViewRotation()))
	assert.Equal(t, 1, gc.Controller().Stats().Flips)
}

func TestGravityControllerAppliesInputAndPull(t *testing.T) {
	world := &fixedWorld{}
	_, gc, body, _ := newPlayerScene(world, &input.Static{MoveValue: rl.Vector2{X: 1}})

	gc.Update(0.1)
	v := body.Velocity()
	assert.InDelta(t, 50, v.X, 1e-4)
	assert.InDelta(t, -60, v.Z, 1e-4, "pull adds gravity * 600 * dt after the move")
}

func TestGravityControllerSleepGatesProbe(t *testing.T) {
	world := &fixedWorld{}
	_, gc, body, _ := newPlayerScene(world, nil)

	body.IsSleeping = false
	for i := 0; i < 20 && !body.IsSleeping; i++ {
		body.TrySleep(0.05)
	}
	require.True(t, body.IsSleeping)
	assert.False(t, gc.Controller().Awake())

	gc.Update(1.0 / 60)
	assert.Equal(t, 0, world.casts)

	body.SetVelocity(rl.Vector3{X: 50})
	assert.True(t, gc.Controller().Awake())
}

func TestGravityControllerPollsScriptedInput(t *testing.T) {
	script := input.NewScript([]input.Frame{{Look: rl.Vector2{X: 1}, Ticks: 1}}, false)
	_, gc, _, cam := newPlayerScene(&fixedWorld{}, script)

	gc.Update(1.0 / 60)
	forward := rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, cam.ViewRotation())
	assert.InDelta(t, math.Sin(0.04), forward.Y, 1e-4, "look x turns left about the up axis")
}

func TestCameraFollowsView(t *testing.T) {
	g := engine.NewGameObject("Eye")
	g.Transform.Position = rl.Vector3{Z: 100}
	cam := NewCamera()
	cam.Offset = rl.Vector3{}
	g.AddComponent(cam)

	cam.SetViewRotation(rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, math.Pi))
	rc := cam.GetRaylibCamera()
	assertVectorNear(t, rl.Vector3{Z: 100}, rc.Position)
	assertVectorNear(t, rl.Vector3{X: 1, Z: 100}, rc.Target)
	assertVectorNear(t, rl.Vector3{Z: -1}, rc.Up)
}
