package components

import (
	"fmt"
	"math"

	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MeshData is an indexed triangle mesh in local space with one normal per
// vertex. Faces wind counter-clockwise seen from the side their normals face.
type MeshData struct {
	Positions []rl.Vector3
	Normals   []rl.Vector3
	Indices   []int32
}

func (m MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// Inverted flips winding and normals so the surface faces the other way.
func (m MeshData) Inverted() MeshData {
	out := MeshData{
		Positions: append([]rl.Vector3(nil), m.Positions...),
		Normals:   make([]rl.Vector3, len(m.Normals)),
		Indices:   make([]int32, len(m.Indices)),
	}
	for i, n := range m.Normals {
		out.Normals[i] = rl.Vector3Negate(n)
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		out.Indices[i] = m.Indices[i]
		out.Indices[i+1] = m.Indices[i+2]
		out.Indices[i+2] = m.Indices[i+1]
	}
	return out
}

// gridMesh samples f over a (cols+1) x (rows+1) grid. f must be oriented so
// that the cross product of the s and t tangents points along the normal.
// Degenerate triangles, such as those at sphere poles, are dropped.
func gridMesh(cols, rows int, f func(s, t float32) (pos, normal rl.Vector3)) MeshData {
	var m MeshData
	for i := 0; i <= cols; i++ {
		for j := 0; j <= rows; j++ {
			p, n := f(float32(i)/float32(cols), float32(j)/float32(rows))
			m.Positions = append(m.Positions, p)
			m.Normals = append(m.Normals, n)
		}
	}

	at := func(i, j int) int32 { return int32(i*(rows+1) + j) }
	addTri := func(a, b, c int32) {
		pa, pb, pc := m.Positions[a], m.Positions[b], m.Positions[c]
		cross := rl.Vector3CrossProduct(rl.Vector3Subtract(pb, pa), rl.Vector3Subtract(pc, pa))
		if rl.Vector3Length(cross) < 1e-6 {
			return
		}
		m.Indices = append(m.Indices, a, b, c)
	}
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			a, b, c, d := at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1)
			addTri(a, b, c)
			addTri(a, c, d)
		}
	}
	return m
}

// PlaneMesh is a flat grid in the XY plane facing +Z.
func PlaneMesh(width, depth float32, subdivisions int) MeshData {
	if subdivisions < 1 {
		subdivisions = 1
	}
	up := rl.Vector3{Z: 1}
	return gridMesh(subdivisions, subdivisions, func(s, t float32) (rl.Vector3, rl.Vector3) {
		return rl.Vector3{X: (s - 0.5) * width, Y: (t - 0.5) * depth}, up
	})
}

// SphereMesh is a UV sphere around the origin with outward normals.
func SphereMesh(radius float32, rings, segments int) MeshData {
	rings = max(rings, 2)
	segments = max(segments, 3)
	return gridMesh(rings, segments, func(s, t float32) (rl.Vector3, rl.Vector3) {
		theta := float64(s) * math.Pi
		phi := float64(t) * 2 * math.Pi
		n := rl.Vector3{
			X: float32(math.Sin(theta) * math.Cos(phi)),
			Y: float32(math.Sin(theta) * math.Sin(phi)),
			Z: float32(math.Cos(theta)),
		}
		return rl.Vector3Scale(n, radius), n
	})
}

// TorusMesh is a ring around the Z axis with outward normals.
func TorusMesh(major, minor float32, rings, sides int) MeshData {
	rings = max(rings, 3)
	sides = max(sides, 3)
	return gridMesh(rings, sides, func(s, t float32) (rl.Vector3, rl.Vector3) {
		u := float64(s) * 2 * math.Pi
		v := float64(t) * 2 * math.Pi
		n := rl.Vector3{
			X: float32(math.Cos(v) * math.Cos(u)),
			Y: float32(math.Cos(v) * math.Sin(u)),
			Z: float32(math.Sin(v)),
		}
		center := rl.Vector3{X: major * float32(math.Cos(u)), Y: major * float32(math.Sin(u))}
		return rl.Vector3Add(center, rl.Vector3Scale(n, minor)), n
	})
}

// CylinderMesh is an open tube along the Y axis with outward normals. arc is
// the swept angle in degrees, starting at +X and turning toward +Z.
func CylinderMesh(radius, length, arc float32, segments int) MeshData {
	segments = max(segments, 3)
	sweep := float64(arc) * rl.Deg2rad
	return gridMesh(1, segments, func(s, t float32) (rl.Vector3, rl.Vector3) {
		u := float64(t) * sweep
		n := rl.Vector3{X: float32(math.Cos(u)), Z: float32(math.Sin(u))}
		p := rl.Vector3Scale(n, radius)
		p.Y = (s - 0.5) * length
		return p, n
	})
}

// MeshFromProps builds a primitive mesh from scene properties.
func MeshFromProps(props map[string]any) (MeshData, error) {
	primitive, err := engine.StringProp(props, "primitive", "plane")
	if err != nil {
		return MeshData{}, err
	}
	inverted, err := engine.BoolProp(props, "inverted", false)
	if err != nil {
		return MeshData{}, err
	}

	f := func(key string, def float32) float32 {
		if err != nil {
			return def
		}
		var v float32
		v, err = engine.FloatProp(props, key, def)
		return v
	}
	n := func(key string, def int) int {
		if err != nil {
			return def
		}
		var v int
		v, err = engine.IntProp(props, key, def)
		return v
	}

	var mesh MeshData
	switch primitive {
	case "plane":
		mesh = PlaneMesh(f("width", 10), f("depth", 10), n("subdivisions", 1))
	case "sphere":
		mesh = SphereMesh(f("radius", 1), n("rings", 16), n("segments", 32))
	case "torus":
		mesh = TorusMesh(f("major", 2), f("minor", 0.5), n("rings", 32), n("sides", 16))
	case "cylinder":
		mesh = CylinderMesh(f("radius", 1), f("length", 1), f("arc", 360), n("segments", 32))
	default:
		return MeshData{}, fmt.Errorf("unknown mesh primitive %q", primitive)
	}
	if err != nil {
		return MeshData{}, err
	}
	if inverted {
		mesh = mesh.Inverted()
	}
	return mesh, nil
}
