// Package camera provides the spectator camera used to watch the player from
// outside while it walks on walls.
package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Spectator orbits a target in world space. Z is up.
type Spectator struct {
	Target   rl.Vector3
	Yaw      float32 // degrees around Z
	Pitch    float32 // degrees above the XY plane
	Distance float32

	OrbitSpeed  float32 // degrees per second at full input
	ZoomSpeed   float32 // distance per wheel notch
	MinDistance float32
	MaxDistance float32
	FOV         float32
}

func New(target rl.Vector3) *Spectator {
	return &Spectator{
		Target:      target,
		Yaw:         -135.0,
		Pitch:       30.0,
		Distance:    400,
		OrbitSpeed:  90,
		ZoomSpeed:   40,
		MinDistance: 50,
		MaxDistance: 5000,
		FOV:         60,
	}
}

// Orbit applies orbit input in [-1, 1] and a zoom amount in wheel notches.
func (c *Spectator) Orbit(deltaTime float32, orbit rl.Vector2, zoom float32) {
	c.Yaw += orbit.X * c.OrbitSpeed * deltaTime
	c.Pitch += orbit.Y * c.OrbitSpeed * deltaTime

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}

	c.Distance -= zoom * c.ZoomSpeed
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
}

// Update reads the arrow keys and the mouse wheel.
func (c *Spectator) Update(deltaTime float32) {
	var orbit rl.Vector2
	if rl.IsKeyDown(rl.KeyLeft) {
		orbit.X -= 1
	}
	if rl.IsKeyDown(rl.KeyRight) {
		orbit.X += 1
	}
	if rl.IsKeyDown(rl.KeyUp) {
		orbit.Y += 1
	}
	if rl.IsKeyDown(rl.KeyDown) {
		orbit.Y -= 1
	}
	c.Orbit(deltaTime, orbit, rl.GetMouseWheelMove())
}

// Position returns the eye position.
func (c *Spectator) Position() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180
	dir := rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
		Z: float32(math.Sin(pitchRad)),
	}
	return rl.Vector3Add(c.Target, rl.Vector3Scale(dir, c.Distance))
}

func (c *Spectator) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 0, Z: 1},
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}
