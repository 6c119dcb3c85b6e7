package physics

import (
	"fallingup/internal/components"
	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// spherePenetration returns the deepest overlap between a sphere and any
// collider on static. Normal points from static toward the sphere.
func spherePenetration(static *engine.GameObject, center rl.Vector3, radius float32, bounds components.AABB) (components.Contact, bool) {
	var best components.Contact
	found := false
	consider := func(normal rl.Vector3, depth float32) {
		if depth <= 0 || (found && depth <= best.Depth) {
			return
		}
		best = components.Contact{Other: static, Normal: normal, Depth: depth}
		found = true
	}

	for _, comp := range static.Components() {
		collider, ok := comp.(components.Collider)
		if !ok || !collider.Bounds().Intersects(bounds) {
			continue
		}
		switch c := comp.(type) {
		case *components.BoxCollider:
			if n, d, ok := sphereVsBox(center, radius, c); ok {
				consider(n, d)
			}
		case *components.SphereCollider:
			if n, d, ok := sphereVsSphere(center, radius, c.Center(), c.WorldRadius()); ok {
				consider(n, d)
			}
		case *components.MeshCollider:
			if push, n, ok := c.SpherePush(center, radius); ok {
				consider(n, rl.Vector3Length(push))
			}
		}
	}
	return best, found
}

func sphereVsSphere(center rl.Vector3, radius float32, other rl.Vector3, otherRadius float32) (rl.Vector3, float32, bool) {
	diff := rl.Vector3Subtract(center, other)
	dist := rl.Vector3Length(diff)
	sum := radius + otherRadius
	if dist >= sum {
		return rl.Vector3{}, 0, false
	}
	if dist < 0.0001 {
		return rl.Vector3{Z: 1}, sum, true
	}
	return rl.Vector3Scale(diff, 1/dist), sum - dist, true
}

func sphereVsBox(center rl.Vector3, radius float32, box *components.BoxCollider) (rl.Vector3, float32, bool) {
	closest := box.ClosestPoint(center)
	diff := rl.Vector3Subtract(center, closest)
	dist := rl.Vector3Length(diff)
	if dist >= radius {
		return rl.Vector3{}, 0, false
	}
	if dist >= 0.0001 {
		return rl.Vector3Scale(diff, 1/dist), radius - dist, true
	}

	// Centre inside the box: leave through the nearest face.
	local := box.ToLocal(center)
	h := box.HalfExtents()
	axes := [3]struct {
		pos, half float32
		dir       rl.Vector3
	}{
		{local.X, h.X, rl.Vector3{X: 1}},
		{local.Y, h.Y, rl.Vector3{Y: 1}},
		{local.Z, h.Z, rl.Vector3{Z: 1}},
	}
	bestDepth := float32(-1)
	var bestDir rl.Vector3
	for _, a := range axes {
		depth := a.half - absf(a.pos)
		if bestDepth < 0 || depth < bestDepth {
			bestDepth = depth
			bestDir = a.dir
			if a.pos < 0 {
				bestDir = rl.Vector3Negate(a.dir)
			}
		}
	}
	return box.ToWorldDirection(bestDir), bestDepth + radius, true
}
