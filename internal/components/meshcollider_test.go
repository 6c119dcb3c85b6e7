package components

import (
	"testing"

	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func faceNormal(m MeshData, face int) rl.Vector3 {
	a := m.Positions[m.Indices[face*3]]
	b := m.Positions[m.Indices[face*3+1]]
	c := m.Positions[m.Indices[face*3+2]]
	return rl.Vector3Normalize(rl.Vector3CrossProduct(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a)))
}

// Every face must wind so that its normal agrees with its vertex normals.
func assertWindingMatchesNormals(t *testing.T, m MeshData) {
	t.Helper()
	require.NotZero(t, m.TriangleCount())
	require.Len(t, m.Normals, len(m.Positions))
	for f := 0; f < m.TriangleCount(); f++ {
		n := faceNormal(m, f)
		for k := 0; k < 3; k++ {
			vn := m.Normals[m.Indices[f*3+k]]
			if !assert.Greater(t, rl.Vector3DotProduct(n, vn), float32(0), "face %d vertex %d", f, k) {
				return
			}
		}
	}
}

func TestPrimitiveWinding(t *testing.T) {
	tests := map[string]MeshData{
		"plane":    PlaneMesh(10, 10, 4),
		"sphere":   SphereMesh(5, 8, 12),
		"torus":    TorusMesh(10, 3, 16, 8),
		"cylinder": CylinderMesh(4, 10, 360, 12),
		"inverted": SphereMesh(5, 8, 12).Inverted(),
		"half":     CylinderMesh(4, 10, 180, 6).Inverted(),
	}
	for name, mesh := range tests {
		t.Run(name, func(t *testing.T) {
			assertWindingMatchesNormals(t, mesh)
		})
	}
}

func TestSphereMeshDropsPoleTriangles(t *testing.T) {
	m := SphereMesh(1, 4, 6)
	// 4 rings x 6 segments x 2, minus one degenerate triangle per segment at each pole.
	assert.Equal(t, 4*6*2-2*6, m.TriangleCount())
}

func TestInvertedNegatesNormals(t *testing.T) {
	m := PlaneMesh(2, 2, 1)
	inv := m.Inverted()
	assert.Equal(t, rl.Vector3{Z: -1}, inv.Normals[0])
	assert.Equal(t, rl.Vector3{Z: 1}, m.Normals[0], "original mesh is untouched")
}

func TestMeshFromProps(t *testing.T) {
	m, err := MeshFromProps(map[string]any{"primitive": "sphere", "radius": 3.0, "rings": 4, "segments": 8, "inverted": true})
	require.NoError(t, err)
	assert.Equal(t, 4*8*2-2*8, m.TriangleCount())
	assert.InDelta(t, 3, rl.Vector3Length(m.Positions[0]), 1e-5)

	_, err = MeshFromProps(map[string]any{"primitive": "teapot"})
	assert.Error(t, err)

	_, err = MeshFromProps(map[string]any{"primitive": "plane", "width": "wide"})
	assert.Error(t, err)
}

func newMeshObject(mesh MeshData, pos rl.Vector3) (*engine.GameObject, *MeshCollider) {
	g := engine.NewGameObject("Mesh")
	g.Transform.Position = pos
	m := NewMeshCollider(mesh)
	g.AddComponent(m)
	g.Start()
	return g, m
}

func TestMeshColliderBuildsWorldTriangles(t *testing.T) {
	_, m := newMeshObject(PlaneMesh(100, 100, 8), rl.Vector3{Z: 5})

	require.True(t, m.Built())
	assert.Len(t, m.Triangles, 8*8*2)
	for _, tri := range m.Triangles {
		assert.Equal(t, float32(5), tri.V0.Z)
		assert.InDelta(t, 1, tri.Normal.Z, 1e-6)
	}
	assert.Equal(t, rl.Vector3{X: -50, Y: -50, Z: 5}, m.Bounds().Min)
	assert.Equal(t, rl.Vector3{X: 50, Y: 50, Z: 5}, m.Bounds().Max)
}

func TestMeshColliderQueryNarrowsCandidates(t *testing.T) {
	_, m := newMeshObject(PlaneMesh(100, 100, 16), rl.Vector3{})

	corner := m.Query(NewAABBFromCenter(rl.Vector3{X: 45, Y: 45}, rl.Vector3{X: 1, Y: 1, Z: 1}))
	assert.NotEmpty(t, corner)
	assert.Less(t, len(corner), len(m.Triangles)/4)

	assert.Empty(t, m.Query(NewAABBFromCenter(rl.Vector3{Z: 50}, rl.Vector3{X: 1, Y: 1, Z: 1})))
}

func TestMeshColliderFaceVertices(t *testing.T) {
	_, m := newMeshObject(SphereMesh(10, 6, 8), rl.Vector3{X: 3})

	pos, nrm, ok := m.FaceVertices(0)
	require.True(t, ok)
	for k := 0; k < 3; k++ {
		assert.InDelta(t, 10, rl.Vector3Length(pos[k]), 1e-4, "positions stay in local space")
		assert.InDelta(t, 1, rl.Vector3Length(nrm[k]), 1e-5)
	}

	_, _, ok = m.FaceVertices(-1)
	assert.False(t, ok)
	_, _, ok = m.FaceVertices(m.Mesh.TriangleCount())
	assert.False(t, ok)
}

func TestMeshColliderSurfaceTransformMatchesTriangles(t *testing.T) {
	g, m := newMeshObject(PlaneMesh(10, 10, 1), rl.Vector3{X: 3})
	built := g.WorldTransform()

	g.Transform.Position = rl.Vector3{X: 50}
	g.Transform.SetEuler(rl.Vector3{Z: 90})
	assert.Equal(t, built, m.SurfaceTransform(), "moving the object does not change the built surface")
	assert.InDelta(t, 3, m.Bounds().Min.X+5, 1e-4)

	m.Build()
	assert.Equal(t, g.WorldTransform(), m.SurfaceTransform())
	assert.InDelta(t, 50, m.Bounds().Min.X+5, 1e-4)
}

func TestMeshColliderWithoutNormalsHasNoVertexData(t *testing.T) {
	mesh := PlaneMesh(2, 2, 1)
	mesh.Normals = nil
	_, m := newMeshObject(mesh, rl.Vector3{})

	_, _, ok := m.FaceVertices(0)
	assert.False(t, ok)
}

func TestSpherePushOutOfPlane(t *testing.T) {
	_, m := newMeshObject(PlaneMesh(100, 100, 4), rl.Vector3{})

	push, normal, hit := m.SpherePush(rl.Vector3{X: 3, Y: 4, Z: 2}, 5)
	require.True(t, hit)
	assert.InDelta(t, 1, normal.Z, 1e-5)
	assert.InDelta(t, 0, push.X, 1e-5)
	assert.InDelta(t, 0, push.Y, 1e-5)
	assert.Greater(t, push.Z, float32(2.9))

	_, _, hit = m.SpherePush(rl.Vector3{Z: 6}, 5)
	assert.False(t, hit)
}

func TestSphereTriangleIgnoresBackSide(t *testing.T) {
	tri := &Triangle{
		V0:     rl.Vector3{X: -10, Y: -10},
		V1:     rl.Vector3{X: 10, Y: -10},
		V2:     rl.Vector3{Y: 10},
		Normal: rl.Vector3{Z: 1},
	}
	hit, _ := SphereTriangle(rl.Vector3{Z: -1}, 2, tri)
	assert.False(t, hit)

	hit, push := SphereTriangle(rl.Vector3{Z: 1}, 2, tri)
	assert.True(t, hit)
	assert.InDelta(t, 1, push.Z, 1e-5)
}

func TestClosestPointOnTriangleRegions(t *testing.T) {
	a := rl.Vector3{}
	b := rl.Vector3{X: 10}
	c := rl.Vector3{Y: 10}

	assertVectorNear(t, a, ClosestPointOnTriangle(rl.Vector3{X: -5, Y: -5}, a, b, c))
	assertVectorNear(t, b, ClosestPointOnTriangle(rl.Vector3{X: 15, Y: -1}, a, b, c))
	assertVectorNear(t, rl.Vector3{X: 5}, ClosestPointOnTriangle(rl.Vector3{X: 5, Y: -3}, a, b, c))
	assertVectorNear(t, rl.Vector3{X: 2, Y: 2}, ClosestPointOnTriangle(rl.Vector3{X: 2, Y: 2, Z: 7}, a, b, c))
}
