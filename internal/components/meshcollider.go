package components

import (
	"fmt"
	"math"

	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("MeshCollider", func(props map[string]any) (engine.Component, error) {
		mesh, err := MeshFromProps(props)
		if err != nil {
			return nil, err
		}
		return NewMeshCollider(mesh), nil
	})
}

// Triangle is a world-space triangle with its face normal.
type Triangle struct {
	V0, V1, V2 rl.Vector3
	Normal     rl.Vector3
}

// BVHNode is a node in the bounding volume hierarchy
type BVHNode struct {
	Bounds    AABB
	Left      *BVHNode
	Right     *BVHNode
	Triangles []int // indices into the triangle array (only for leaf nodes)
}

// MeshCollider collides against a triangle mesh and exposes per-vertex
// normals for surface smoothing. The world-space triangles are built once in
// Start; moving the object afterwards requires Build to be called again.
type MeshCollider struct {
	engine.BaseComponent
	Mesh      MeshData
	Triangles []Triangle
	Root      *BVHNode
	built     bool
	transform engine.Transform
}

func NewMeshCollider(mesh MeshData) *MeshCollider {
	return &MeshCollider{Mesh: mesh}
}

func (m *MeshCollider) Start() {
	m.Build()
}

// Built reports whether the world-space triangles are current.
func (m *MeshCollider) Built() bool {
	return m.built
}

// Build transforms the mesh into world space and rebuilds the BVH.
func (m *MeshCollider) Build() {
	g := m.GetGameObject()
	if g == nil {
		return
	}
	tr := g.WorldTransform()
	m.transform = tr

	count := m.Mesh.TriangleCount()
	m.Triangles = make([]Triangle, count)
	for i := 0; i < count; i++ {
		i0, i1, i2 := m.Mesh.Indices[i*3], m.Mesh.Indices[i*3+1], m.Mesh.Indices[i*3+2]
		v0 := tr.TransformPoint(m.Mesh.Positions[i0])
		v1 := tr.TransformPoint(m.Mesh.Positions[i1])
		v2 := tr.TransformPoint(m.Mesh.Positions[i2])
		normal := rl.Vector3Normalize(rl.Vector3CrossProduct(rl.Vector3Subtract(v1, v0), rl.Vector3Subtract(v2, v0)))
		m.Triangles[i] = Triangle{V0: v0, V1: v1, V2: v2, Normal: normal}
	}

	m.Root = nil
	if count > 0 {
		indices := make([]int, count)
		for i := range indices {
			indices[i] = i
		}
		m.Root = m.buildBVHNode(indices, 0)
	}
	m.built = true
}

// Bounds returns the world bounds of the mesh, building it on first use.
func (m *MeshCollider) Bounds() AABB {
	if !m.built {
		m.Build()
	}
	if m.Root == nil {
		return AABB{}
	}
	return m.Root.Bounds
}

// FaceVertices returns the local positions and normals of one face.
func (m *MeshCollider) FaceVertices(face int) (positions, normals [3]rl.Vector3, ok bool) {
	if face < 0 || face >= m.Mesh.TriangleCount() || len(m.Mesh.Normals) != len(m.Mesh.Positions) {
		return positions, normals, false
	}
	for k := 0; k < 3; k++ {
		idx := m.Mesh.Indices[face*3+k]
		positions[k] = m.Mesh.Positions[idx]
		normals[k] = m.Mesh.Normals[idx]
	}
	return positions, normals, true
}

// SurfaceTransform is the transform the mesh was last built with, so it always
// matches Triangles.
func (m *MeshCollider) SurfaceTransform() engine.Transform {
	if !m.built {
		m.Build()
	}
	if !m.built {
		return engine.IdentityTransform()
	}
	return m.transform
}

// Query returns the triangles whose BVH leaves overlap bounds.
func (m *MeshCollider) Query(bounds AABB) []int {
	if !m.built {
		m.Build()
	}
	return queryBVH(m.Root, bounds, nil)
}

func (m *MeshCollider) buildBVHNode(indices []int, depth int) *BVHNode {
	node := &BVHNode{Bounds: m.computeBounds(indices)}

	if len(indices) <= 4 || depth > 20 {
		node.Triangles = indices
		return node
	}

	size := rl.Vector3Subtract(node.Bounds.Max, node.Bounds.Min)
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > axisValue(size, axis) {
		axis = 2
	}

	mid := m.partitionTriangles(indices, axis)
	if mid == 0 || mid == len(indices) {
		node.Triangles = indices
		return node
	}

	node.Left = m.buildBVHNode(indices[:mid], depth+1)
	node.Right = m.buildBVHNode(indices[mid:], depth+1)
	return node
}

func (m *MeshCollider) computeBounds(indices []int) AABB {
	bounds := emptyAABB()
	for _, idx := range indices {
		tri := &m.Triangles[idx]
		bounds = bounds.Extend(tri.V0).Extend(tri.V1).Extend(tri.V2)
	}
	return bounds
}

// partitionTriangles splits indices around the mean centroid on axis.
func (m *MeshCollider) partitionTriangles(indices []int, axis int) int {
	center := float32(0)
	for _, idx := range indices {
		center += axisValue(m.Triangles[idx].centroid(), axis)
	}
	center /= float32(len(indices))

	left, right := 0, len(indices)-1
	for left <= right {
		if axisValue(m.Triangles[indices[left]].centroid(), axis) < center {
			left++
		} else {
			indices[left], indices[right] = indices[right], indices[left]
			right--
		}
	}
	return left
}

func (t *Triangle) centroid() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(t.V0, t.V1), t.V2), 1.0/3.0)
}

func queryBVH(node *BVHNode, query AABB, out []int) []int {
	if node == nil || !node.Bounds.Intersects(query) {
		return out
	}
	if node.Triangles != nil {
		return append(out, node.Triangles...)
	}
	out = queryBVH(node.Left, query, out)
	return queryBVH(node.Right, query, out)
}

func axisValue(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// SpherePush returns the deepest contact between a sphere and the mesh as a
// push-out vector and its normal. Callers iterate to resolve the rest.
func (m *MeshCollider) SpherePush(center rl.Vector3, radius float32) (push, normal rl.Vector3, hit bool) {
	bounds := NewAABBFromCenter(center, rl.Vector3{X: radius, Y: radius, Z: radius})
	deepest := float32(-1)
	for _, idx := range m.Query(bounds) {
		collides, p := SphereTriangle(center, radius, &m.Triangles[idx])
		if !collides {
			continue
		}
		if d := rl.Vector3Length(p); d > deepest {
			deepest = d
			push = p
			hit = true
		}
	}
	if hit && deepest > 0 {
		normal = rl.Vector3Scale(push, 1/deepest)
	}
	return push, normal, hit
}

// SphereTriangle tests a sphere against a triangle and returns the push-out
// vector. Spheres behind the face are ignored.
func SphereTriangle(center rl.Vector3, radius float32, tri *Triangle) (bool, rl.Vector3) {
	closest := ClosestPointOnTriangle(center, tri.V0, tri.V1, tri.V2)

	diff := rl.Vector3Subtract(center, closest)
	distSq := rl.Vector3DotProduct(diff, diff)
	if distSq >= radius*radius {
		return false, rl.Vector3{}
	}

	dist := float32(math.Sqrt(float64(distSq)))
	if dist < 0.0001 {
		return true, rl.Vector3Scale(tri.Normal, radius)
	}
	if rl.Vector3DotProduct(diff, tri.Normal) < 0 {
		return false, rl.Vector3{}
	}
	return true, rl.Vector3Scale(diff, (radius-dist)/dist)
}

// ClosestPointOnTriangle finds the closest point on triangle abc to p.
func ClosestPointOnTriangle(p, a, b, c rl.Vector3) rl.Vector3 {
	ab := rl.Vector3Subtract(b, a)
	ac := rl.Vector3Subtract(c, a)
	ap := rl.Vector3Subtract(p, a)

	d1 := rl.Vector3DotProduct(ab, ap)
	d2 := rl.Vector3DotProduct(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := rl.Vector3Subtract(p, b)
	d3 := rl.Vector3DotProduct(ab, bp)
	d4 := rl.Vector3DotProduct(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return rl.Vector3Add(a, rl.Vector3Scale(ab, v))
	}

	cp := rl.Vector3Subtract(p, c)
	d5 := rl.Vector3DotProduct(ab, cp)
	d6 := rl.Vector3DotProduct(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return rl.Vector3Add(a, rl.Vector3Scale(ac, w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return rl.Vector3Add(b, rl.Vector3Scale(rl.Vector3Subtract(c, b), w))
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return rl.Vector3Add(a, rl.Vector3Add(rl.Vector3Scale(ab, v), rl.Vector3Scale(ac, w)))
}

func (m *MeshCollider) String() string {
	return fmt.Sprintf("MeshCollider(%d triangles)", len(m.Triangles))
}
