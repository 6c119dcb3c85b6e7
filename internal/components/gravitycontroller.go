package components

import (
	"fallingup/internal/engine"
	"fallingup/internal/gravity"
	"fallingup/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// GravityController drives a CapsuleBody and Camera on the same object with a
// gravity.Controller. It probes through the scene's WorldAccess.
type GravityController struct {
	engine.BaseComponent
	Config        gravity.Config
	ProbeShape    gravity.ProbeShape
	ProbeRadius   float32
	ProbeReach    float32
	SmoothNormals bool
	Input         input.Source

	OnReport engine.EventWithArg[gravity.TickReport]

	ctrl *gravity.Controller
	body *CapsuleBody
	last gravity.TickReport
}

func NewGravityController(cfg gravity.Config) *GravityController {
	return &GravityController{
		Config:        cfg,
		ProbeShape:    gravity.ProbeSphere,
		ProbeRadius:   12.5,
		ProbeReach:    gravity.DefaultProbeReach,
		SmoothNormals: true,
	}
}

func (c *GravityController) Start() {
	g := c.GetGameObject()
	if g == nil {
		return
	}

	ctrl := gravity.NewController(c.Config)

	var query gravity.SpatialQuery
	if g.Scene != nil && g.Scene.World != nil {
		query = g.Scene.World
	}
	probe := gravity.NewProbe(query, g)
	probe.Shape = c.ProbeShape
	probe.Radius = c.ProbeRadius
	probe.Reach = c.ProbeReach
	probe.SmoothNormals = c.SmoothNormals
	ctrl.Probe = probe

	if cam := engine.GetComponent[*Camera](g); cam != nil {
		ctrl.View = cam
	}
	if body := engine.GetComponent[*CapsuleBody](g); body != nil {
		c.body = body
		ctrl.Body = body
		ctrl.HalfHeight = body.HalfHeight
		body.OnSleep.AddListener(ctrl.OnBodySleep)
		body.OnWake.AddListener(ctrl.OnBodyWake)
		body.OnHit.AddListener(func(contact Contact) {
			ctrl.OnBodyHit(contact.Other, contact.Normal)
		})
	}

	ctrl.SetViewOrientation(g.WorldRotation())
	c.ctrl = ctrl
}

// Update runs one controller tick: input, look, move, probe and decision.
func (c *GravityController) Update(deltaTime float32) {
	if c.ctrl == nil {
		return
	}
	g := c.GetGameObject()

	if c.Input != nil {
		if p, ok := c.Input.(input.Poller); ok {
			p.Poll()
		}
		c.ctrl.Look(c.Input.Look())
		c.ctrl.Move(c.Input.Move())
	}

	report := c.ctrl.Tick(deltaTime, g.WorldPosition())
	if report.Flipped && c.body != nil {
		c.body.Up = rl.Vector3Negate(report.Gravity)
	}
	c.last = report
	c.OnReport.Invoke(report)
}

// Controller returns the underlying controller, nil before Start.
func (c *GravityController) Controller() *gravity.Controller {
	return c.ctrl
}

// LastReport returns the report of the most recent tick.
func (c *GravityController) LastReport() gravity.TickReport {
	return c.last
}
