// Package game runs a world either in a raylib window or headless.
package game

import (
	"fmt"
	"time"

	"fallingup/internal/camera"
	"fallingup/internal/config"
	"fallingup/internal/gravity"
	"fallingup/internal/hud"
	"fallingup/internal/input"
	"fallingup/internal/telemetry"
	"fallingup/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxFrameTime caps the step taken after a long frame.
const maxFrameTime = 1.0 / 30.0

type Game struct {
	Config   *config.Config
	World    *world.World
	Renderer *world.Renderer
	Panel    *hud.Panel
	Feed     *hud.Feed // optional; hook it into the logger before New
	Recorder *telemetry.Recorder

	// Spectator watches the player from outside while Spectating.
	Spectator  *camera.Spectator
	Spectating bool

	tick     int
	elapsed  float64
	updateMs float64
	drawMs   float64
	logger   zerolog.Logger
}

// New builds the scene. The world starts immediately so it can be simulated
// without a window.
func New(cfg *config.Config, sf *world.SceneFile) (*Game, error) {
	w, err := world.Build(sf, cfg)
	if err != nil {
		return nil, fmt.Errorf("building scene %s: %w", sf.Name, err)
	}
	return &Game{
		Config:    cfg,
		World:     w,
		Renderer:  world.NewRenderer(),
		Panel:     hud.NewPanel(),
		Spectator: camera.New(w.Player.WorldPosition()),
		logger:    log.With().Str("category", "game").Logger(),
	}, nil
}

// Tick advances the world by deltaTime and records telemetry.
func (g *Game) Tick(deltaTime float32) error {
	g.World.Step(deltaTime)
	g.tick++
	g.elapsed += float64(deltaTime)

	if g.Recorder == nil {
		return nil
	}
	ctrl := g.World.GravityController()
	return g.Recorder.Record(telemetry.Sample{
		Tick:     g.tick,
		Time:     g.elapsed,
		Position: g.World.Player.WorldPosition(),
		Velocity: g.World.Body.Velocity(),
		Awake:    ctrl != nil && ctrl.Awake(),
		Report:   g.World.Controller.LastReport(),
	})
}

// Simulate runs ticks fixed steps of the configured dt without a window.
func (g *Game) Simulate(ticks int) error {
	dt := g.Config.Simulation.DT
	start := time.Now()
	for range ticks {
		if err := g.Tick(dt); err != nil {
			return err
		}
	}
	g.logger.Info().
		Int("ticks", ticks).
		Dur("wall", time.Since(start)).
		Str("gravity", fmt.Sprintf("%.3f", g.gravity())).
		Msg("simulation complete")
	return nil
}

func (g *Game) gravity() []float32 {
	ctrl := g.World.GravityController()
	if ctrl == nil {
		return nil
	}
	v := ctrl.State().Gravity
	return []float32{v.X, v.Y, v.Z}
}

// Run opens a window and plays until it is closed. Keyboard, mouse and
// gamepad replace any scripted input.
func (g *Game) Run() {
	win := g.Config.Window
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(win.Width, win.Height, win.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(win.TargetFPS)
	rl.DisableCursor()

	g.World.Controller.Input = input.NewDevice(g.Config.Locomotion.MouseSensitivity)
	g.logger.Info().Str("scene", g.World.Scene.Name).Msg("window open")

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := min(rl.GetFrameTime(), maxFrameTime)

	if err := g.Tick(deltaTime); err != nil {
		g.logger.Error().Err(err).Msg("recording telemetry")
		g.Recorder = nil
	}

	if rl.IsKeyPressed(rl.KeyF1) {
		g.Panel.Visible = !g.Panel.Visible
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		g.Spectating = !g.Spectating
	}
	if g.Spectating {
		g.Spectator.Target = g.World.Player.WorldPosition()
		g.Spectator.Update(deltaTime)
	}
	// Free the cursor while the panel is being clicked.
	if rl.IsKeyPressed(rl.KeyTab) {
		if rl.IsCursorHidden() {
			rl.EnableCursor()
		} else {
			rl.DisableCursor()
		}
	}

	g.Renderer.DrawProbe = g.Panel.ShowProbe
	g.Renderer.DrawGravity = g.Panel.ShowGravity
	g.Renderer.Culling = g.Panel.Culling
	g.Renderer.DrawPlayer = g.Spectating

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) Draw() {
	if g.World.Camera == nil {
		return
	}
	view := g.World.Camera.GetRaylibCamera()
	if g.Spectating {
		view = g.Spectator.GetRaylibCamera()
	}
	aspect := float32(rl.GetScreenWidth()) / float32(max(rl.GetScreenHeight(), 1))

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	g.Renderer.Draw(g.World, view, aspect)
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	g.Panel.Draw(g.snapshot())

	screenW := int32(rl.GetScreenWidth())
	rl.DrawText("WASD move, mouse look, F1 panel, F2 spectator, Tab cursor", screenW-580, 10, 18, rl.LightGray)
	rl.DrawFPS(screenW-100, 35)
	rl.DrawText(fmt.Sprintf("Update: %.2f ms  Draw: %.2f ms", g.updateMs, g.drawMs), screenW-320, 60, 16, rl.Green)

	if g.Feed != nil {
		hud.DrawFeed(g.Feed, int32(rl.GetScreenHeight()))
	}
}

func (g *Game) snapshot() hud.Snapshot {
	s := hud.Snapshot{
		Scene:     g.World.Scene.Name,
		Threshold: g.Config.Gravity.AngleThreshold,
		Drawn:     g.Renderer.Drawn,
		Culled:    g.Renderer.Culled,
	}
	ctrl := g.World.GravityController()
	if ctrl == nil {
		return s
	}
	stats := ctrl.Stats()
	s.Gravity = ctrl.State().Gravity
	s.Awake = ctrl.Awake()
	s.Flips = stats.Flips
	s.NearMisses = stats.NearMisses

	report := g.World.Controller.LastReport()
	if report.Hit && report.Probe.Surface != nil {
		s.Surface = report.Probe.Surface.Name
		s.Dot = report.Decision.Dot
	}
	return s
}

// Stats returns the player's controller counters.
func (g *Game) Stats() gravity.Stats {
	if ctrl := g.World.GravityController(); ctrl != nil {
		return ctrl.Stats()
	}
	return gravity.Stats{}
}

// Ticks returns how many ticks have run.
func (g *Game) Ticks() int {
	return g.tick
}
