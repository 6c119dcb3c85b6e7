// Package telemetry records per-tick controller state for headless runs and
// summarizes it.
package telemetry

import (
	"fallingup/internal/gravity"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// Record is one controller tick.
type Record struct {
	RunID string  `csv:"run_id"`
	Tick  int     `csv:"tick"`
	Time  float64 `csv:"time"`

	PosX float32 `csv:"pos_x"`
	PosY float32 `csv:"pos_y"`
	PosZ float32 `csv:"pos_z"`
	// Speed is the body speed after the physics step.
	Speed float32 `csv:"speed"`

	GravityX float32 `csv:"gravity_x"`
	GravityY float32 `csv:"gravity_y"`
	GravityZ float32 `csv:"gravity_z"`

	Awake    bool    `csv:"awake"`
	Probed   bool    `csv:"probed"`
	Hit      bool    `csv:"hit"`
	Surface  string  `csv:"surface"`
	Smoothed bool    `csv:"smoothed"`
	Dot      float32 `csv:"dot"`
	Resting  bool    `csv:"resting"`
	Flipped  bool    `csv:"flipped"`
}

// Position returns the recorded body position.
func (r Record) Position() rl.Vector3 {
	return rl.Vector3{X: r.PosX, Y: r.PosY, Z: r.PosZ}
}

func (r Record) Gravity() rl.Vector3 {
	return rl.Vector3{X: r.GravityX, Y: r.GravityY, Z: r.GravityZ}
}

// NearMiss reports whether the tick probed a surface that differed from the
// resting orientation without crossing the threshold.
func (r Record) NearMiss() bool {
	return r.Hit && !r.Flipped && !r.Resting
}

// Sample is the state the game hands over after each tick.
type Sample struct {
	Tick     int
	Time     float64
	Position rl.Vector3
	Velocity rl.Vector3
	Awake    bool
	Report   gravity.TickReport
}

func newRecord(run uuid.UUID, s Sample) Record {
	r := Record{
		RunID:    run.String(),
		Tick:     s.Tick,
		Time:     s.Time,
		PosX:     s.Position.X,
		PosY:     s.Position.Y,
		PosZ:     s.Position.Z,
		Speed:    rl.Vector3Length(s.Velocity),
		GravityX: s.Report.Gravity.X,
		GravityY: s.Report.Gravity.Y,
		GravityZ: s.Report.Gravity.Z,
		Awake:    s.Awake,
		Probed:   s.Report.Probed,
		Hit:      s.Report.Hit,
		Flipped:  s.Report.Flipped,
	}
	if s.Report.Hit {
		r.Dot = s.Report.Decision.Dot
		r.Resting = s.Report.Decision.Resting
		r.Smoothed = s.Report.Probe.Smoothed
		if s.Report.Probe.Surface != nil {
			r.Surface = s.Report.Probe.Surface.Name
		}
	}
	return r
}
