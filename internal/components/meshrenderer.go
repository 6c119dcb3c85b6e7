package components

import (
	"fmt"
	"math"

	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("MeshRenderer", func(props map[string]any) (engine.Component, error) {
		col, err := ColorProp(props, "color", rl.LightGray)
		if err != nil {
			return nil, err
		}
		wire, err := engine.BoolProp(props, "wireframe", false)
		if err != nil {
			return nil, err
		}
		r := NewMeshRenderer(col)
		r.Wireframe = wire
		return r, nil
	})
}

// MeshRenderer draws whatever collider shapes its object carries.
type MeshRenderer struct {
	engine.BaseComponent
	Color     rl.Color
	Wireframe bool
}

func NewMeshRenderer(color rl.Color) *MeshRenderer {
	return &MeshRenderer{Color: color}
}

func (m *MeshRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	if box := engine.GetComponent[*BoxCollider](g); box != nil {
		m.drawBox(box)
	}
	if sphere := engine.GetComponent[*SphereCollider](g); sphere != nil {
		if m.Wireframe {
			rl.DrawSphereWires(sphere.Center(), sphere.WorldRadius(), 12, 12, m.Color)
		} else {
			rl.DrawSphere(sphere.Center(), sphere.WorldRadius(), m.Color)
		}
	}
	if mesh := engine.GetComponent[*MeshCollider](g); mesh != nil {
		m.drawMesh(mesh)
	}
	if body := engine.GetComponent[*CapsuleBody](g); body != nil {
		spheres := body.Spheres()
		rl.DrawCapsuleWires(spheres[0], spheres[len(spheres)-1], body.Radius, 8, 4, m.Color)
	}
}

func (m *MeshRenderer) drawBox(box *BoxCollider) {
	size := rl.Vector3Scale(box.HalfExtents(), 2)
	angle, axis := axisAngle(box.Rotation())
	center := box.Center()

	rl.PushMatrix()
	rl.Translatef(center.X, center.Y, center.Z)
	rl.Rotatef(angle*rl.Rad2deg, axis.X, axis.Y, axis.Z)
	if m.Wireframe {
		rl.DrawCubeWiresV(rl.Vector3{}, size, m.Color)
	} else {
		rl.DrawCubeV(rl.Vector3{}, size, m.Color)
		rl.DrawCubeWiresV(rl.Vector3{}, size, rl.Fade(rl.Black, 0.3))
	}
	rl.PopMatrix()
}

func (m *MeshRenderer) drawMesh(mesh *MeshCollider) {
	if !mesh.Built() {
		return
	}
	light := rl.Vector3Normalize(rl.Vector3{X: 0.4, Y: 0.3, Z: 1})
	for i := range mesh.Triangles {
		tri := &mesh.Triangles[i]
		if m.Wireframe {
			rl.DrawLine3D(tri.V0, tri.V1, m.Color)
			rl.DrawLine3D(tri.V1, tri.V2, m.Color)
			rl.DrawLine3D(tri.V2, tri.V0, m.Color)
			continue
		}
		shade := 0.55 + 0.45*float32(math.Abs(float64(rl.Vector3DotProduct(tri.Normal, light))))
		rl.DrawTriangle3D(tri.V0, tri.V1, tri.V2, shadeColor(m.Color, shade))
	}
}

// axisAngle decomposes a rotation into an angle in radians and a unit axis.
func axisAngle(q rl.Quaternion) (float32, rl.Vector3) {
	q = rl.QuaternionNormalize(q)
	if q.W > 1 {
		q.W = 1
	}
	angle := 2 * math.Acos(float64(q.W))
	s := math.Sqrt(1 - float64(q.W*q.W))
	if s < 1e-6 {
		return 0, rl.Vector3{X: 1}
	}
	return float32(angle), rl.Vector3{X: q.X / float32(s), Y: q.Y / float32(s), Z: q.Z / float32(s)}
}

func shadeColor(c rl.Color, f float32) rl.Color {
	return rl.Color{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: c.A,
	}
}

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

// LookupColor resolves a raylib color name such as "SkyBlue".
func LookupColor(name string) (rl.Color, bool) {
	c, ok := colorByName[name]
	return c, ok
}

// ColorProp reads a color name, [r, g, b] or [r, g, b, a] with 0-255 channels.
func ColorProp(props map[string]any, key string, def rl.Color) (rl.Color, error) {
	v, ok := props[key]
	if !ok {
		return def, nil
	}
	if name, ok := v.(string); ok {
		c, found := LookupColor(name)
		if !found {
			return def, fmt.Errorf("%s: unknown color %q", key, name)
		}
		return c, nil
	}
	list, ok := v.([]any)
	if !ok || (len(list) != 3 && len(list) != 4) {
		return def, fmt.Errorf("%s: expected [r, g, b] or [r, g, b, a]", key)
	}
	channels := [4]uint8{0, 0, 0, 255}
	for i, item := range list {
		n, err := engine.IntProp(map[string]any{key: item}, key, 0)
		if err != nil {
			return def, err
		}
		if n < 0 || n > 255 {
			return def, fmt.Errorf("%s: channel %d out of range", key, n)
		}
		channels[i] = uint8(n)
	}
	return rl.Color{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}
