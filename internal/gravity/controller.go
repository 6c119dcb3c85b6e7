package gravity

import (
	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ViewSink receives the view orientation whenever it changes.
type ViewSink interface {
	SetViewRotation(q rl.Quaternion)
}

// MovementSink is the body the controller drives.
type MovementSink interface {
	Velocity() rl.Vector3
	SetVelocity(v rl.Vector3)
	AddVelocity(v rl.Vector3)
}

// Stats counts what the controller did since creation.
type Stats struct {
	Ticks      int
	Probes     int
	Hits       int
	Smoothed   int
	Flips      int
	NearMisses int
}

// TickReport describes one call to Tick.
type TickReport struct {
	Probed   bool
	Hit      bool
	Probe    ProbeResult
	Decision Reorientation
	Flipped  bool
	Gravity  rl.Vector3
}

// Controller orchestrates look, move and gravity reorientation for one
// character. View and Body may be nil, in which case the operations that need
// them do nothing.
type Controller struct {
	Config     Config
	Probe      *Probe
	View       ViewSink
	Body       MovementSink
	HalfHeight float32

	state  State
	awake  bool
	stats  Stats
	logger zerolog.Logger
}

func NewController(cfg Config) *Controller {
	return &Controller{
		Config: cfg,
		state:  NewState(rl.QuaternionIdentity()),
		awake:  true,
		logger: log.With().Str("category", "gravity").Logger(),
	}
}

// SetViewOrientation replaces the view, typically with the spawn rotation.
func (c *Controller) SetViewOrientation(q rl.Quaternion) {
	c.state.View = rl.QuaternionNormalize(q)
	c.pushView()
}

// State returns a copy of the orientation frame.
func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Stats() Stats {
	return c.stats
}

func (c *Controller) Awake() bool {
	return c.awake
}

// Look applies look input and pushes the new view.
func (c *Controller) Look(look rl.Vector2) {
	if look.X == 0 && look.Y == 0 {
		return
	}
	c.state.ApplyLook(look, c.Config.LookSpeed)
	c.pushView()
}

// Move replaces the lateral velocity of the body with the one derived from
// move input. Only the part of the current velocity along gravity survives, so
// the body keeps falling while it walks.
func (c *Controller) Move(input rl.Vector2) {
	if c.Body == nil {
		return
	}
	g := c.state.Gravity
	fall := rl.Vector3DotProduct(c.Body.Velocity(), g)
	if fall < 0 {
		fall = 0
	}
	v := MoveVelocity(c.state.View, input, c.Config.LocomotionSpeed)
	c.Body.SetVelocity(rl.Vector3Add(v, rl.Vector3Scale(g, fall)))
}

// Tick runs the gravity control step for a body centred at origin, then pulls
// the body along the current gravity.
func (c *Controller) Tick(deltaTime float32, origin rl.Vector3) TickReport {
	c.stats.Ticks++

	var report TickReport
	if c.awake {
		report = c.gravityControl(origin)
	}

	if c.Body != nil && c.Config.Pull != 0 {
		c.Body.AddVelocity(rl.Vector3Scale(c.state.Gravity, c.Config.Pull*deltaTime))
	}

	report.Gravity = c.state.Gravity
	return report
}

func (c *Controller) gravityControl(origin rl.Vector3) TickReport {
	var report TickReport
	if c.Probe == nil {
		return report
	}

	report.Probed = true
	c.stats.Probes++

	result, ok := c.Probe.Sample(origin, c.state.Gravity, c.HalfHeight)
	if !ok {
		return report
	}
	report.Hit = true
	report.Probe = result
	c.stats.Hits++
	if result.Smoothed {
		c.stats.Smoothed++
	}

	decision, flip := Decide(c.state.Gravity, result.Normal, c.Config.AngleThreshold)
	report.Decision = decision
	if !flip {
		if !decision.Resting {
			c.stats.NearMisses++
			c.logger.Debug().
				Float32("dot", decision.Dot).
				Float32("threshold_cos", decision.Limit).
				Msg("surface below threshold")
		}
		return report
	}

	previous := c.state.Gravity
	c.state.Reorient(decision)
	c.pushView()
	report.Flipped = true
	c.stats.Flips++

	c.logger.Info().
		Float32("dot", decision.Dot).
		Float32("threshold_cos", decision.Limit).
		Str("from", formatVector(previous)).
		Str("to", formatVector(decision.Gravity)).
		Bool("smoothed", result.Smoothed).
		Msg("gravity reoriented")
	return report
}

// OnBodySleep stops reorientation until the body wakes.
func (c *Controller) OnBodySleep() {
	c.logger.Debug().Msg("body sleep")
	c.awake = false
}

func (c *Controller) OnBodyWake() {
	c.logger.Debug().Msg("body wake")
	c.awake = true
}

// OnBodyHit records a contact reported by the physics step.
func (c *Controller) OnBodyHit(other *engine.GameObject, normal rl.Vector3) {
	name := ""
	if other != nil {
		name = other.Name
	}
	c.logger.Debug().Str("other", name).Str("normal", formatVector(normal)).Msg("body hit")
}

func (c *Controller) pushView() {
	if c.View == nil {
		return
	}
	c.View.SetViewRotation(c.state.View)
}
