package gravity

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// antiparallelEpsilon bounds 1+cos below which the shortest arc has no stable axis.
	antiparallelEpsilon = 1e-6
	// RestingEpsilon bounds 1+dot within which a contact counts as resting for
	// bookkeeping. It does not affect whether gravity flips.
	RestingEpsilon = 1e-5
)

// Reorientation is the outcome of one decision. Dot and Limit are always set;
// Gravity and Delta describe the new frame only when the decision flipped.
type Reorientation struct {
	Gravity rl.Vector3    // new gravity direction
	Delta   rl.Quaternion // rotation taking the old gravity onto Gravity
	Dot     float32       // probed normal · current gravity
	Limit   float32       // -cos(threshold); flips happen when Dot <= Limit
	Resting bool          // normal is the current up, exactly or within RestingEpsilon
}

// Decide compares a probed surface normal against the current gravity.
//
// A normal exactly opposite the current gravity is the resting state and never
// flips. Otherwise gravity flips when normal·gravity <= -cos(threshold), that is
// when the normal lies within thresholdDegrees of the current up. Walls at a
// right angle never flip; tilted ramps and curved surfaces do.
func Decide(current, normal rl.Vector3, thresholdDegrees float32) (Reorientation, bool) {
	dot := rl.Vector3DotProduct(normal, current)
	r := Reorientation{
		Gravity: current,
		Delta:   rl.QuaternionIdentity(),
		Dot:     dot,
		Limit:   ThresholdLimit(thresholdDegrees),
		Resting: dot <= -1+RestingEpsilon,
	}

	if dot == -1 || normal == rl.Vector3Negate(current) {
		r.Resting = true
		return r, false
	}
	if dot > r.Limit {
		return r, false
	}

	r.Gravity = rl.Vector3Negate(normal)
	r.Delta = ShortestArc(current, r.Gravity)
	return r, true
}

// ThresholdLimit returns -cos(thresholdDegrees).
func ThresholdLimit(thresholdDegrees float32) float32 {
	return float32(-math.Cos(float64(thresholdDegrees) * math.Pi / 180))
}

// ShortestArc returns the minimal rotation mapping unit vector from onto unit
// vector to. Opposite vectors get a half turn about an arbitrary perpendicular.
func ShortestArc(from, to rl.Vector3) rl.Quaternion {
	if rl.Vector3DotProduct(from, to) < -1+antiparallelEpsilon {
		axis := rl.Vector3Normalize(rl.Vector3Perpendicular(from))
		return rl.QuaternionFromAxisAngle(axis, math.Pi)
	}
	return rl.QuaternionFromVector3ToVector3(from, to)
}
