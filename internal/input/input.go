// Package input delivers the two per-tick analog signals the controller
// consumes: "move" and "look", each axis in [-1, 1].
package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog/log"
)

var logger = log.With().Str("category", "input").Logger()

// Source supplies move and look vectors for the current tick.
type Source interface {
	Move() rl.Vector2
	Look() rl.Vector2
}

// Poller is implemented by sources that sample once per tick.
type Poller interface {
	Poll()
}

// Clamp limits both axes of v to [-1, 1].
func Clamp(v rl.Vector2) rl.Vector2 {
	return rl.Vector2{X: clampAxis(v.X), Y: clampAxis(v.Y)}
}

func clampAxis(f float32) float32 {
	if f > 1 {
		return 1
	}
	if f < -1 {
		return -1
	}
	return f
}

// Static is a Source with fixed values.
type Static struct {
	MoveValue rl.Vector2
	LookValue rl.Vector2
}

func (s *Static) Move() rl.Vector2 { return Clamp(s.MoveValue) }
func (s *Static) Look() rl.Vector2 { return Clamp(s.LookValue) }
