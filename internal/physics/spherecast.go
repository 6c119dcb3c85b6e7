package physics

import (
	"fallingup/internal/components"
	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	sweepIterations = 96
	sweepTolerance  = 0.01
)

// SphereCast sweeps a sphere of radius along direction and returns the first
// surface it touches. A sphere that already overlaps a front-facing surface
// hits it at distance zero. Point is the contact on the surface, Normal the
// normal of the face touched there and ContactNormal points from Point toward
// the sphere centre.
func (w *World) SphereCast(origin, direction rl.Vector3, radius, maxDistance float32, ignore *engine.GameObject) (engine.RaycastResult, bool) {
	if radius <= 0 {
		return w.Raycast(origin, direction, maxDistance, ignore)
	}
	w.stats.SphereCasts++
	if rl.Vector3Length(direction) == 0 || maxDistance < 0 {
		return engine.RaycastResult{}, false
	}
	direction = rl.Vector3Normalize(direction)
	bounds := components.SweptAABB(origin, direction, radius, maxDistance)

	var closest engine.RaycastResult
	hit := false
	for _, obj := range w.Statics {
		if obj == ignore || !obj.Active {
			continue
		}
		for _, comp := range obj.Components() {
			collider, ok := comp.(components.Collider)
			if !ok || !collider.Bounds().Intersects(bounds) {
				continue
			}

			var h engine.RaycastResult
			switch c := comp.(type) {
			case *components.BoxCollider:
				h, ok = sphereCastBox(origin, direction, radius, maxDistance, c)
			case *components.SphereCollider:
				h, ok = sphereCastSphere(origin, direction, radius, maxDistance, c)
			case *components.MeshCollider:
				h, ok = sphereCastMesh(origin, direction, radius, maxDistance, bounds, c)
			default:
				ok = false
			}
			if ok && (!hit || h.Distance < closest.Distance) {
				h.GameObject = obj
				closest = h
				hit = true
			}
		}
	}
	return closest, hit
}

// sweep advances a sphere along direction until it touches the convex shape
// whose closest point to p is closest(p).
func sweep(origin, direction rl.Vector3, radius, maxDistance float32, closest func(rl.Vector3) rl.Vector3) (float32, rl.Vector3, bool) {
	t := float32(0)
	for i := 0; i < sweepIterations; i++ {
		p := pointAlong(origin, direction, t)
		c := closest(p)
		gap := rl.Vector3Distance(p, c) - radius
		if gap <= sweepTolerance {
			return t, c, true
		}
		t += gap
		if t > maxDistance {
			return 0, rl.Vector3{}, false
		}
	}
	return 0, rl.Vector3{}, false
}

// contactNormal points from contact toward the sphere centre, falling back to
// fallback when the centre lies on the surface.
func contactNormal(center, contact, fallback rl.Vector3) rl.Vector3 {
	diff := rl.Vector3Subtract(center, contact)
	if rl.Vector3Length(diff) < 1e-5 {
		return fallback
	}
	return rl.Vector3Normalize(diff)
}

func sphereCastBox(origin, direction rl.Vector3, radius, maxDistance float32, box *components.BoxCollider) (engine.RaycastResult, bool) {
	if insideBox(box, origin) {
		return engine.RaycastResult{}, false
	}
	t, contact, ok := sweep(origin, direction, radius, maxDistance, box.ClosestPoint)
	if !ok {
		return engine.RaycastResult{}, false
	}
	local := box.ToLocal(contact)
	localDir := box.ToLocalDirection(direction)
	face := box.ToWorldDirection(sweptFaceNormal(local, box.HalfExtents(), localDir))
	return engine.RaycastResult{
		Point:         contact,
		Normal:        face,
		ContactNormal: contactNormal(pointAlong(origin, direction, t), contact, face),
		Distance:      t,
		FaceIndex:     -1,
	}, true
}

func insideBox(box *components.BoxCollider, p rl.Vector3) bool {
	local := box.ToLocal(p)
	h := box.HalfExtents()
	return absf(local.X) < h.X && absf(local.Y) < h.Y && absf(local.Z) < h.Z
}

func sphereCastSphere(origin, direction rl.Vector3, radius, maxDistance float32, sphere *components.SphereCollider) (engine.RaycastResult, bool) {
	center := sphere.Center()
	r := sphere.WorldRadius()

	var t float32
	if rl.Vector3Distance(origin, center) >= r+radius {
		var ok bool
		t, ok = raySphere(origin, direction, center, r+radius)
		if !ok || t > maxDistance {
			return engine.RaycastResult{}, false
		}
	} else if rl.Vector3Distance(origin, center) < r {
		return engine.RaycastResult{}, false
	}

	at := pointAlong(origin, direction, t)
	normal := contactNormal(at, center, rl.Vector3Negate(direction))
	return engine.RaycastResult{
		Point:         rl.Vector3Add(center, rl.Vector3Scale(normal, r)),
		Normal:        normal,
		ContactNormal: normal,
		Distance:      t,
		FaceIndex:     -1,
	}, true
}

func sphereCastMesh(origin, direction rl.Vector3, radius, maxDistance float32, bounds components.AABB, mesh *components.MeshCollider) (engine.RaycastResult, bool) {
	best := engine.RaycastResult{FaceIndex: -1}
	hit := false
	for _, idx := range mesh.Query(bounds) {
		tri := &mesh.Triangles[idx]

		// Single-sided: skip faces whose plane is behind the start or that the
		// sphere is not moving toward, unless it already touches them.
		height := rl.Vector3DotProduct(rl.Vector3Subtract(origin, tri.V0), tri.Normal)
		if height < 0 {
			continue
		}
		if rl.Vector3DotProduct(direction, tri.Normal) >= 0 && height > radius {
			continue
		}

		closest := func(p rl.Vector3) rl.Vector3 {
			return components.ClosestPointOnTriangle(p, tri.V0, tri.V1, tri.V2)
		}
		t, contact, ok := sweep(origin, direction, radius, maxDistance, closest)
		if !ok || (hit && t >= best.Distance) {
			continue
		}
		best = engine.RaycastResult{
			Point:         contact,
			Normal:        tri.Normal,
			ContactNormal: contactNormal(pointAlong(origin, direction, t), contact, tri.Normal),
			Distance:      t,
			FaceIndex:     idx,
		}
		hit = true
	}
	return best, hit
}
