package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// faceTolerance is the relative distance within which a point counts as lying on
// a box face.
const faceTolerance = 1e-3

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func sqrtf(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// pointAlong returns origin + direction * t.
func pointAlong(origin, direction rl.Vector3, t float32) rl.Vector3 {
	return rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
}

// faceNormalFromLocal picks the box face a local-space surface point lies on.
func faceNormalFromLocal(p, half rl.Vector3) rl.Vector3 {
	dx := absf(absf(p.X) - half.X)
	dy := absf(absf(p.Y) - half.Y)
	dz := absf(absf(p.Z) - half.Z)
	switch {
	case dx <= dy && dx <= dz:
		return rl.Vector3{X: sign(p.X)}
	case dy <= dz:
		return rl.Vector3{Y: sign(p.Y)}
	default:
		return rl.Vector3{Z: sign(p.Z)}
	}
}

// sweptFaceNormal picks the face a swept sphere struck at local point p. On an
// edge or corner several faces touch p; the one facing the motion wins.
func sweptFaceNormal(p, half, dir rl.Vector3) rl.Vector3 {
	pc := [3]float32{p.X, p.Y, p.Z}
	hc := [3]float32{half.X, half.Y, half.Z}

	best := rl.Vector3{}
	bestDot := float32(math.MaxFloat32)
	for axis := 0; axis < 3; axis++ {
		if absf(absf(pc[axis])-hc[axis]) > faceTolerance*max(1, hc[axis]) {
			continue
		}
		var n rl.Vector3
		switch axis {
		case 0:
			n.X = sign(pc[axis])
		case 1:
			n.Y = sign(pc[axis])
		default:
			n.Z = sign(pc[axis])
		}
		if d := rl.Vector3DotProduct(n, dir); d < bestDot {
			best, bestDot = n, d
		}
	}
	if bestDot == float32(math.MaxFloat32) {
		return faceNormalFromLocal(p, half)
	}
	return best
}

func sign(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}
