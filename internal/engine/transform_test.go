package engine

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func near(a, b rl.Vector3) bool {
	return rl.Vector3Distance(a, b) < 1e-4
}

func TestTransformPointRoundTrip(t *testing.T) {
	tr := Transform{
		Position: rl.Vector3{X: 1, Y: -2, Z: 3},
		Rotation: rl.QuaternionFromAxisAngle(rl.Vector3Normalize(rl.Vector3{X: 1, Y: 1}), 0.7),
		Scale:    rl.Vector3{X: 2, Y: 0.5, Z: 3},
	}
	local := rl.Vector3{X: 0.25, Y: 4, Z: -1}

	world := tr.TransformPoint(local)
	back := tr.InverseTransformPoint(world)
	if !near(back, local) {
		t.Errorf("Expected %v after round trip, got %v", local, back)
	}
}

func TestTransformDirectionIgnoresScale(t *testing.T) {
	tr := IdentityTransform()
	tr.Scale = rl.Vector3{X: 5, Y: 5, Z: 5}
	tr.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{Z: 1}, rl.Pi/2)

	d := tr.TransformDirection(rl.Vector3{X: 1})
	if !near(d, rl.Vector3{Y: 1}) {
		t.Errorf("Expected +Y, got %v", d)
	}
	if back := tr.InverseTransformDirection(d); !near(back, rl.Vector3{X: 1}) {
		t.Errorf("Expected +X, got %v", back)
	}
}

func TestTransformZeroScaleDoesNotDivide(t *testing.T) {
	tr := IdentityTransform()
	tr.Scale = rl.Vector3{X: 0, Y: 1, Z: 1}

	p := tr.InverseTransformPoint(rl.Vector3{X: 3, Y: 2})
	if p.X != 0 || p.Y != 2 {
		t.Errorf("Expected (0, 2, 0), got %v", p)
	}
}

func TestSetEulerYaw(t *testing.T) {
	tr := IdentityTransform()
	tr.SetEuler(rl.Vector3{Z: 90})

	d := tr.TransformDirection(rl.Vector3{X: 1})
	if !near(d, rl.Vector3{Y: 1}) {
		t.Errorf("Expected 90 degree yaw to map +X to +Y, got %v", d)
	}
}
