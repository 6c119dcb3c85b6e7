package gravity

import (
	"math"

	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ProbeShape selects the cast used by the surface probe.
type ProbeShape string

const (
	ProbeSphere ProbeShape = "sphere"
	ProbeRay    ProbeShape = "ray"
)

// DefaultProbeReach multiplies the capsule half height to give the probe a
// little headroom past the body's contact boundary.
const DefaultProbeReach = 1.4

// SpatialQuery is the physics service the probe casts against.
type SpatialQuery interface {
	Raycast(origin, direction rl.Vector3, maxDistance float32, ignore *engine.GameObject) (engine.RaycastResult, bool)
	SphereCast(origin, direction rl.Vector3, radius, maxDistance float32, ignore *engine.GameObject) (engine.RaycastResult, bool)
}

// VertexNormalSource is implemented by surfaces that expose per-vertex normals.
// FaceVertices returns the local-space positions and normals of triangle face.
type VertexNormalSource interface {
	FaceVertices(face int) (positions, normals [3]rl.Vector3, ok bool)
	SurfaceTransform() engine.Transform
}

// ProbeResult describes the surface found beneath the character this tick.
type ProbeResult struct {
	Point      rl.Vector3
	Normal     rl.Vector3 // smoothed when per-vertex data was available
	FlatNormal rl.Vector3 // face normal reported by the query
	FaceIndex  int
	Surface    *engine.GameObject
	Smoothed   bool
}

// Probe senses the surface along the current gravity direction.
type Probe struct {
	Query         SpatialQuery
	Self          *engine.GameObject // excluded from hits
	Shape         ProbeShape
	Radius        float32 // sphere radius for ProbeSphere
	Reach         float32 // cast length in capsule half heights
	SmoothNormals bool
}

func NewProbe(query SpatialQuery, self *engine.GameObject) *Probe {
	return &Probe{
		Query:         query,
		Self:          self,
		Shape:         ProbeSphere,
		Radius:        12.5,
		Reach:         DefaultProbeReach,
		SmoothNormals: true,
	}
}

// Sample casts from origin toward origin + gravity*Reach*halfHeight and reports
// the first blocking surface.
func (p *Probe) Sample(origin, gravity rl.Vector3, halfHeight float32) (ProbeResult, bool) {
	if p == nil || p.Query == nil {
		return ProbeResult{}, false
	}

	length := p.Reach * halfHeight * rl.Vector3Length(gravity)
	if length <= 0 {
		return ProbeResult{}, false
	}
	dir := rl.Vector3Normalize(gravity)

	var (
		hit engine.RaycastResult
		ok  bool
	)
	switch p.Shape {
	case ProbeRay:
		hit, ok = p.Query.Raycast(origin, dir, length, p.Self)
	default:
		hit, ok = p.Query.SphereCast(origin, dir, p.Radius, length, p.Self)
	}
	if !ok {
		return ProbeResult{}, false
	}

	result := ProbeResult{
		Point:      hit.Point,
		Normal:     hit.Normal,
		FlatNormal: hit.Normal,
		FaceIndex:  hit.FaceIndex,
		Surface:    hit.GameObject,
	}
	if !p.SmoothNormals || hit.FaceIndex < 0 {
		return result, true
	}
	if src, found := engine.FindComponent[VertexNormalSource](hit.GameObject); found {
		if n, smoothed := SmoothNormal(src, hit.FaceIndex, hit.Point); smoothed {
			result.Normal = n
			result.Smoothed = true
		}
	}
	return result, true
}

// SmoothNormal interpolates the vertex normals of a triangle at a world-space
// point using the point's barycentric coordinates in the surface's local space.
// ok is false when the triangle is unavailable or degenerate.
func SmoothNormal(src VertexNormalSource, face int, worldPoint rl.Vector3) (rl.Vector3, bool) {
	positions, normals, ok := src.FaceVertices(face)
	if !ok {
		return rl.Vector3{}, false
	}
	area := rl.Vector3Length(rl.Vector3CrossProduct(
		rl.Vector3Subtract(positions[1], positions[0]),
		rl.Vector3Subtract(positions[2], positions[0]),
	))
	if area < 1e-8 {
		return rl.Vector3{}, false
	}

	tr := src.SurfaceTransform()
	local := tr.InverseTransformPoint(worldPoint)
	weights := clampWeights(rl.Vector3Barycenter(local, positions[0], positions[1], positions[2]))

	n := rl.Vector3Add(
		rl.Vector3Add(rl.Vector3Scale(normals[0], weights.X), rl.Vector3Scale(normals[1], weights.Y)),
		rl.Vector3Scale(normals[2], weights.Z),
	)
	n = tr.TransformDirection(n)

	length := rl.Vector3Length(n)
	if length < 1e-6 || math.IsNaN(float64(length)) {
		return rl.Vector3{}, false
	}
	return rl.Vector3Scale(n, 1/length), true
}

// clampWeights pulls barycentric weights back onto the triangle. Contacts on an
// edge can land a hair outside it.
func clampWeights(b rl.Vector3) rl.Vector3 {
	b.X = max(b.X, 0)
	b.Y = max(b.Y, 0)
	b.Z = max(b.Z, 0)
	sum := b.X + b.Y + b.Z
	if sum == 0 {
		return rl.Vector3{X: 1.0 / 3, Y: 1.0 / 3, Z: 1.0 / 3}
	}
	return rl.Vector3Scale(b, 1/sum)
}
