package engine

import (
	"fmt"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ComponentFactory creates a Component from scene-file props.
type ComponentFactory func(props map[string]any) (Component, error)

var componentRegistry = map[string]ComponentFactory{}

// RegisterComponent registers a named component type for scene loading.
func RegisterComponent(name string, factory ComponentFactory) {
	if _, exists := componentRegistry[name]; exists {
		panic(fmt.Sprintf("component %q already registered", name))
	}
	componentRegistry[name] = factory
}

// CreateComponent looks up a registered component by name and builds it from props.
func CreateComponent(name string, props map[string]any) (Component, error) {
	factory, ok := componentRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown component type %q", name)
	}
	c, err := factory(props)
	if err != nil {
		return nil, fmt.Errorf("component %q: %w", name, err)
	}
	return c, nil
}

// GetRegisteredComponents returns a sorted list of all registered component names.
func GetRegisteredComponents() []string {
	names := make([]string, 0, len(componentRegistry))
	for name := range componentRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FloatProp reads a number from props. YAML decodes integers as int, so both
// int and float64 are accepted.
func FloatProp(props map[string]any, key string, def float32) (float32, error) {
	v, ok := props[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return float32(n), nil
	case float64:
		return float32(n), nil
	case float32:
		return n, nil
	default:
		return def, fmt.Errorf("%s: expected number, got %T", key, v)
	}
}

// Vector3Prop reads a three element list from props.
func Vector3Prop(props map[string]any, key string, def rl.Vector3) (rl.Vector3, error) {
	v, ok := props[key]
	if !ok {
		return def, nil
	}
	list, ok := v.([]any)
	if !ok || len(list) != 3 {
		return def, fmt.Errorf("%s: expected [x, y, z]", key)
	}
	var out [3]float32
	for i, item := range list {
		f, err := FloatProp(map[string]any{key: item}, key, 0)
		if err != nil {
			return def, err
		}
		out[i] = f
	}
	return rl.Vector3{X: out[0], Y: out[1], Z: out[2]}, nil
}

// IntProp reads an integer from props.
func IntProp(props map[string]any, key string, def int) (int, error) {
	v, ok := props[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return def, fmt.Errorf("%s: expected integer, got %T", key, v)
	}
}

// StringProp reads a string from props.
func StringProp(props map[string]any, key, def string) (string, error) {
	v, ok := props[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return def, fmt.Errorf("%s: expected string, got %T", key, v)
	}
	return s, nil
}

// BoolProp reads a boolean from props.
func BoolProp(props map[string]any, key string, def bool) (bool, error) {
	v, ok := props[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return def, fmt.Errorf("%s: expected bool, got %T", key, v)
	}
	return b, nil
}
