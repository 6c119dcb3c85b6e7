package world

import (
	"fallingup/internal/components"
	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	CullNear float32 = 0.1
	CullFar  float32 = 10000.0
)

// Renderer draws the scene from the player camera with frustum culling and
// optional probe debug lines.
type Renderer struct {
	DrawProbe   bool
	DrawGravity bool
	DrawPlayer  bool // the eye sits inside the capsule, so off by default
	Culling     bool

	Drawn  int
	Culled int
}

func NewRenderer() *Renderer {
	return &Renderer{DrawProbe: true, DrawGravity: true, Culling: true}
}

// Draw renders w through camera. Call between BeginDrawing and EndDrawing.
func (r *Renderer) Draw(w *World, camera rl.Camera3D, aspect float32) {
	frustum := ExtractFrustum(camera, aspect, CullNear, CullFar)
	r.Drawn, r.Culled = 0, 0

	rl.BeginMode3D(camera)
	for _, g := range w.Scene.GameObjects {
		if !g.Active || g.HasTag(PlayerTag) {
			continue
		}
		renderer := engine.GetComponent[*components.MeshRenderer](g)
		if renderer == nil {
			continue
		}
		if r.Culling && !r.visible(&frustum, g) {
			r.Culled++
			continue
		}
		renderer.Draw()
		r.Drawn++
	}
	if r.DrawPlayer && w.Player != nil {
		if renderer := engine.GetComponent[*components.MeshRenderer](w.Player); renderer != nil {
			renderer.Draw()
		}
	}
	r.drawDebug(w)
	rl.EndMode3D()
}

func (r *Renderer) visible(f *Frustum, g *engine.GameObject) bool {
	collider, ok := engine.FindComponent[components.Collider](g)
	if !ok {
		return true
	}
	return f.ContainsBox(collider.Bounds())
}

func (r *Renderer) drawDebug(w *World) {
	if w.Controller == nil || w.Player == nil {
		return
	}
	origin := w.Player.WorldPosition()
	report := w.Controller.LastReport()

	if r.DrawGravity {
		tip := rl.Vector3Add(origin, rl.Vector3Scale(report.Gravity, 60))
		rl.DrawLine3D(origin, tip, rl.Magenta)
		rl.DrawSphere(tip, 2, rl.Magenta)
	}
	if r.DrawProbe && report.Hit {
		color := rl.Lime
		if report.Flipped {
			color = rl.Red
		}
		rl.DrawLine3D(origin, report.Probe.Point, color)
		rl.DrawSphereWires(report.Probe.Point, w.Controller.ProbeRadius, 6, 6, color)
		rl.DrawLine3D(report.Probe.Point, rl.Vector3Add(report.Probe.Point, rl.Vector3Scale(report.Probe.Normal, 30)), rl.SkyBlue)
	}
}
