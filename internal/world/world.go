// Package world turns scene files into a running scene: static geometry, the
// physics world and the gravity-walking player.
package world

import (
	"fmt"

	"fallingup/internal/components"
	"fallingup/internal/config"
	"fallingup/internal/engine"
	"fallingup/internal/gravity"
	"fallingup/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog/log"
)

const (
	PlayerName = "Player"
	PlayerTag  = "player"
)

type World struct {
	Scene   *engine.Scene
	Physics *physics.World
	File    *SceneFile

	Player     *engine.GameObject
	Body       *components.CapsuleBody
	Camera     *components.Camera
	Controller *components.GravityController
}

func New(name string) *World {
	w := &World{
		Scene:   engine.NewScene(name),
		Physics: physics.NewWorld(),
	}
	w.Scene.World = w
	return w
}

// Build creates the scene described by sf with the player configured from cfg,
// then starts every object.
func Build(sf *SceneFile, cfg *config.Config) (*World, error) {
	w := New(sf.Name)
	w.File = sf

	for _, def := range sf.Objects {
		g, err := buildObject(def)
		if err != nil {
			return nil, err
		}
		w.Add(g)
	}

	w.SpawnPlayer(sf.Player, cfg)
	if script := sf.Script(); script != nil {
		w.Controller.Input = script
	}

	w.Scene.Start()

	log.Info().
		Str("category", "world").
		Str("scene", sf.Name).
		Int("objects", len(w.Scene.GameObjects)).
		Int("statics", len(w.Physics.Statics)).
		Msg("scene built")
	return w, nil
}

// Add puts g in the scene and registers its colliders.
func (w *World) Add(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	w.Physics.AddObject(g)
}

// SpawnPlayer creates the player capsule, its camera and gravity controller.
func (w *World) SpawnPlayer(def PlayerDef, cfg *config.Config) *engine.GameObject {
	player := engine.NewGameObject(PlayerName)
	player.Tags = []string{PlayerTag}
	player.Transform.Position = vec3(def.Position)
	player.Transform.SetEuler(vec3(def.Rotation))

	body := components.NewCapsuleBody(cfg.Body.Radius, cfg.Body.HalfHeight)
	body.SleepSpeed = cfg.Body.SleepSpeed
	body.SleepTime = cfg.Body.SleepTime
	body.Friction = cfg.Body.Friction
	player.AddComponent(body)

	cam := components.NewCamera()
	cam.FOV = cfg.Window.FOV
	cam.Offset = cfg.CameraOffset()
	player.AddComponent(cam)

	player.AddComponent(components.NewMeshRenderer(rl.Orange))

	ctrl := components.NewGravityController(cfg.Controller())
	ctrl.ProbeShape = gravity.ProbeShape(cfg.Gravity.ProbeShape)
	ctrl.ProbeRadius = cfg.Gravity.ProbeRadius
	ctrl.ProbeReach = cfg.Gravity.ProbeReach
	ctrl.SmoothNormals = cfg.Gravity.SmoothNormals
	player.AddComponent(ctrl)

	w.Add(player)
	w.Player = player
	w.Body = body
	w.Camera = cam
	w.Controller = ctrl
	return player
}

// Step advances the scene one tick: components update (the gravity controller
// reads input, moves and reorients), then the physics world integrates.
func (w *World) Step(deltaTime float32) {
	w.Scene.Update(deltaTime)
	w.Physics.Step(deltaTime)
}

// GravityController returns the player's controller core, nil before Start.
func (w *World) GravityController() *gravity.Controller {
	if w.Controller == nil {
		return nil
	}
	return w.Controller.Controller()
}

func (w *World) String() string {
	return fmt.Sprintf("World(%s, %d objects)", w.Scene.Name, len(w.Scene.GameObjects))
}

// --- engine.WorldAccess ---

var _ engine.WorldAccess = (*World)(nil)

func (w *World) GetCollidableObjects() []*engine.GameObject {
	return w.Physics.GetCollidableObjects()
}

func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, ignore *engine.GameObject) (engine.RaycastResult, bool) {
	return w.Physics.Raycast(origin, direction, maxDistance, ignore)
}

func (w *World) SphereCast(origin, direction rl.Vector3, radius, maxDistance float32, ignore *engine.GameObject) (engine.RaycastResult, bool) {
	return w.Physics.SphereCast(origin, direction, radius, maxDistance, ignore)
}
