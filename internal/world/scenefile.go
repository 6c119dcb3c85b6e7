package world

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"fallingup/internal/components"
	"fallingup/internal/engine"
	"fallingup/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

//go:embed scenes/*.yaml
var builtinScenes embed.FS

// --- YAML types ---

type SceneFile struct {
	Name    string      `yaml:"name"`
	Player  PlayerDef   `yaml:"player"`
	Objects []ObjectDef `yaml:"objects"`
	Input   InputDef    `yaml:"input,omitempty"`
}

// PlayerDef places the player. Rotation is euler degrees.
type PlayerDef struct {
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation,omitempty"`
}

type ObjectDef struct {
	Name       string         `yaml:"name"`
	Tags       []string       `yaml:"tags,omitempty"`
	Position   [3]float32     `yaml:"position"`
	Rotation   [3]float32     `yaml:"rotation,omitempty"`
	Scale      [3]float32     `yaml:"scale,omitempty"`
	Color      string         `yaml:"color,omitempty"`
	Components []ComponentDef `yaml:"components"`
}

// ComponentDef names a registered component; every other key is a prop.
type ComponentDef struct {
	Type  string         `yaml:"type"`
	Props map[string]any `yaml:",inline"`
}

// InputDef is the scripted input used by headless runs.
type InputDef struct {
	Loop   bool       `yaml:"loop,omitempty"`
	Frames []FrameDef `yaml:"frames,omitempty"`
}

type FrameDef struct {
	Move  [2]float32 `yaml:"move,omitempty"`
	Look  [2]float32 `yaml:"look,omitempty"`
	Ticks int        `yaml:"ticks"`
}

// --- Loading ---

// Load reads a scene from disk, or a built-in scene when path names one.
func Load(p string) (*SceneFile, error) {
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		if builtin, berr := builtinScenes.ReadFile(builtinPath(p)); berr == nil {
			data, err = builtin, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	sf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", p, err)
	}
	if sf.Name == "" {
		sf.Name = strings.TrimSuffix(path.Base(p), path.Ext(p))
	}
	return sf, nil
}

// Parse decodes a YAML scene. Unknown keys outside component props are rejected.
func Parse(data []byte) (*SceneFile, error) {
	var sf SceneFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := sf.Validate(); err != nil {
		return nil, err
	}
	return &sf, nil
}

// Validate checks that every component type is registered.
func (sf *SceneFile) Validate() error {
	known := make(map[string]bool)
	for _, name := range engine.GetRegisteredComponents() {
		known[name] = true
	}

	var errs []error
	for i, obj := range sf.Objects {
		for _, c := range obj.Components {
			if !known[c.Type] {
				errs = append(errs, fmt.Errorf("object %d (%s): unknown component type %q", i, obj.Name, c.Type))
			}
		}
		if obj.Color != "" {
			if _, ok := components.LookupColor(obj.Color); !ok {
				errs = append(errs, fmt.Errorf("object %d (%s): unknown color %q", i, obj.Name, obj.Color))
			}
		}
	}
	for i, f := range sf.Input.Frames {
		if f.Ticks < 0 {
			errs = append(errs, fmt.Errorf("input frame %d: negative ticks", i))
		}
	}
	return errors.Join(errs...)
}

// Marshal renders the scene as YAML.
func (sf *SceneFile) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(sf)
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return data, nil
}

// Script returns the scene's scripted input, or nil when it has none.
func (sf *SceneFile) Script() *input.Script {
	if len(sf.Input.Frames) == 0 {
		return nil
	}
	frames := make([]input.Frame, len(sf.Input.Frames))
	for i, f := range sf.Input.Frames {
		frames[i] = input.Frame{
			Move:  rl.Vector2{X: f.Move[0], Y: f.Move[1]},
			Look:  rl.Vector2{X: f.Look[0], Y: f.Look[1]},
			Ticks: f.Ticks,
		}
	}
	return input.NewScript(frames, sf.Input.Loop)
}

// BuiltinScenes lists the scene names shipped with the binary.
func BuiltinScenes() []string {
	entries, err := builtinScenes.ReadDir("scenes")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

func builtinPath(name string) string {
	name = strings.TrimSuffix(path.Base(name), ".yaml")
	return "scenes/" + name + ".yaml"
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// buildObject creates a game object and its components from a definition.
func buildObject(def ObjectDef) (*engine.GameObject, error) {
	g := engine.NewGameObject(def.Name)
	g.Tags = def.Tags
	g.Transform.Position = vec3(def.Position)
	g.Transform.SetEuler(vec3(def.Rotation))

	// Default scale to 1 if zero
	if def.Scale == [3]float32{} {
		g.Transform.Scale = rl.Vector3{X: 1, Y: 1, Z: 1}
	} else {
		g.Transform.Scale = vec3(def.Scale)
	}

	hasRenderer := false
	for _, c := range def.Components {
		comp, err := engine.CreateComponent(c.Type, c.Props)
		if err != nil {
			return nil, fmt.Errorf("object %s: %s: %w", def.Name, c.Type, err)
		}
		if _, ok := comp.(*components.MeshRenderer); ok {
			hasRenderer = true
		}
		g.AddComponent(comp)
	}

	if def.Color != "" && !hasRenderer {
		color, _ := components.LookupColor(def.Color)
		g.AddComponent(components.NewMeshRenderer(color))
	}
	return g, nil
}
