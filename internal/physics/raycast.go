package physics

import (
	"math"

	"fallingup/internal/components"
	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Rays starting inside a collider, or reaching a mesh face from behind, do
// not hit it.

// Raycast returns the closest hit along direction within maxDistance,
// skipping ignore.
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, ignore *engine.GameObject) (engine.RaycastResult, bool) {
	w.stats.Raycasts++
	if rl.Vector3Length(direction) == 0 || maxDistance <= 0 {
		return engine.RaycastResult{}, false
	}
	direction = rl.Vector3Normalize(direction)
	bounds := components.SweptAABB(origin, direction, 0, maxDistance)

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
				h, ok = raycastBox(origin, direction, c, maxDistance)
			case *components.SphereCollider:
				h, ok = raycastSphere(origin, direction, c, maxDistance)
			case *components.MeshCollider:
				h, ok = raycastMesh(origin, direction, c, maxDistance)
			default:
				ok = false
			}
			if ok && (!hit || h.Distance < closest.Distance) {
				h.GameObject = obj
				h.ContactNormal = h.Normal
				closest = h
				hit = true
			}
		}
	}
	return closest, hit
}

func raycastBox(origin, direction rl.Vector3, box *components.BoxCollider, maxDistance float32) (engine.RaycastResult, bool) {
	o := box.ToLocal(origin)
	d := box.ToLocalDirection(direction)
	h := box.HalfExtents()

	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)
	slabs := [3][3]float32{
		{o.X, d.X, h.X},
		{o.Y, d.Y, h.Y},
		{o.Z, d.Z, h.Z},
	}
	for _, s := range slabs {
		pos, dir, half := s[0], s[1], s[2]
		if dir == 0 {
			if pos < -half || pos > half {
				return engine.RaycastResult{}, false
			}
			continue
		}
		t1 := (-half - pos) / dir
		t2 := (half - pos) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return engine.RaycastResult{}, false
		}
	}

	if tmin < 0 || tmin > maxDistance {
		return engine.RaycastResult{}, false
	}

	local := pointAlong(o, d, tmin)
	return engine.RaycastResult{
		Point:     pointAlong(origin, direction, tmin),
		Normal:    box.ToWorldDirection(faceNormalFromLocal(local, h)),
		Distance:  tmin,
		FaceIndex: -1,
	}, true
}

func raycastSphere(origin, direction rl.Vector3, sphere *components.SphereCollider, maxDistance float32) (engine.RaycastResult, bool) {
	center := sphere.Center()
	radius := sphere.WorldRadius()

	t, ok := raySphere(origin, direction, center, radius)
	if !ok || t > maxDistance {
		return engine.RaycastResult{}, false
	}

	point := pointAlong(origin, direction, t)
	return engine.RaycastResult{
		Point:     point,
		Normal:    rl.Vector3Normalize(rl.Vector3Subtract(point, center)),
		Distance:  t,
		FaceIndex: -1,
	}, true
}

// raySphere returns the entry distance of a unit-direction ray into a sphere.
func raySphere(origin, direction, center rl.Vector3, radius float32) (float32, bool) {
	oc := rl.Vector3Subtract(origin, center)
	b := rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius
	if c < 0 {
		return 0, false
	}
	discriminant := b*b - c
	if discriminant < 0 {
		return 0, false
	}
	t := -b - sqrtf(discriminant)
	if t < 0 {
		return 0, false
	}
	return t, true
}

func raycastMesh(origin, direction rl.Vector3, mesh *components.MeshCollider, maxDistance float32) (engine.RaycastResult, bool) {
	best := engine.RaycastResult{FaceIndex: -1}
	hit := false
	for _, idx := range mesh.Query(components.SweptAABB(origin, direction, 0, maxDistance)) {
		tri := &mesh.Triangles[idx]
		t, ok := rayTriangle(origin, direction, tri)
		if !ok || t > maxDistance || (hit && t >= best.Distance) {
			continue
		}
		best = engine.RaycastResult{
			Point:     pointAlong(origin, direction, t),
			Normal:    tri.Normal,
			Distance:  t,
			FaceIndex: idx,
		}
		hit = true
	}
	return best, hit
}

// rayTriangle is a single-sided Möller-Trumbore intersection.
func rayTriangle(origin, direction rl.Vector3, tri *components.Triangle) (float32, bool) {
	const epsilon = 1e-7
	e1 := rl.Vector3Subtract(tri.V1, tri.V0)
	e2 := rl.Vector3Subtract(tri.V2, tri.V0)
	p := rl.Vector3CrossProduct(direction, e2)
	det := rl.Vector3DotProduct(e1, p)
	if det < epsilon {
		return 0, false
	}
	inv := 1 / det
	s := rl.Vector3Subtract(origin, tri.V0)
	u := rl.Vector3DotProduct(s, p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := rl.Vector3CrossProduct(s, e1)
	v := rl.Vector3DotProduct(direction, q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := rl.Vector3DotProduct(e2, q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}
