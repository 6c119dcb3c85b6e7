// Package config loads the controller and simulation settings.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"fallingup/internal/gravity"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid marks a configuration that failed validation.
var ErrInvalid = errors.New("invalid configuration")

// Config holds every tunable of the game.
type Config struct {
	Locomotion LocomotionConfig `yaml:"locomotion"`
	Gravity    GravityConfig    `yaml:"gravity"`
	Body       BodyConfig       `yaml:"body"`
	Window     WindowConfig     `yaml:"window"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// LocomotionConfig holds movement and look rates.
type LocomotionConfig struct {
	Speed            float32 `yaml:"speed"`             // units/sec at full move input
	LookSpeed        float32 `yaml:"look_speed"`        // radians per unit of look input
	MouseSensitivity float32 `yaml:"mouse_sensitivity"` // look input per pixel of mouse travel
}

// GravityConfig holds the reorientation rule and the surface probe.
type GravityConfig struct {
	AngleThreshold float32 `yaml:"angle_threshold"` // degrees
	Pull           float32 `yaml:"pull"`            // units/sec^2 along gravity
	ProbeShape     string  `yaml:"probe_shape"`     // sphere or ray
	ProbeRadius    float32 `yaml:"probe_radius"`
	ProbeReach     float32 `yaml:"probe_reach"` // multiple of the body half height
	SmoothNormals  bool    `yaml:"smooth_normals"`
}

// BodyConfig describes the player capsule.
type BodyConfig struct {
	Radius       float32   `yaml:"radius"`
	HalfHeight   float32   `yaml:"half_height"`
	CameraOffset []float32 `yaml:"camera_offset"`
	SleepSpeed   float32   `yaml:"sleep_speed"`
	SleepTime    float32   `yaml:"sleep_time"`
	Friction     float32   `yaml:"friction"`
}

type WindowConfig struct {
	Width     int32   `yaml:"width"`
	Height    int32   `yaml:"height"`
	Title     string  `yaml:"title"`
	TargetFPS int32   `yaml:"target_fps"`
	FOV       float32 `yaml:"fov"`
}

// SimulationConfig drives headless runs.
type SimulationConfig struct {
	DT    float32 `yaml:"dt"`
	Ticks int     `yaml:"ticks"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: parsing embedded defaults: %v", err))
	}
	return cfg
}

// Load overlays each YAML file in order onto the embedded defaults and
// validates the result. Fields absent from a file keep their earlier value.
func Load(paths ...string) (*Config, error) {
	cfg := Default()
	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := cfg.Merge(data); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge overlays YAML data onto c. Unknown keys are rejected.
func (c *Config) Merge(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks ranges. Errors wrap ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Locomotion.Speed >= 0, "locomotion.speed must not be negative")
	check(c.Locomotion.LookSpeed >= 0, "locomotion.look_speed must not be negative")
	check(c.Gravity.AngleThreshold >= 0 && c.Gravity.AngleThreshold <= 180,
		"gravity.angle_threshold %v outside [0, 180]", c.Gravity.AngleThreshold)
	check(c.Gravity.ProbeShape == string(gravity.ProbeSphere) || c.Gravity.ProbeShape == string(gravity.ProbeRay),
		"gravity.probe_shape %q must be sphere or ray", c.Gravity.ProbeShape)
	check(c.Gravity.ProbeRadius > 0 || c.Gravity.ProbeShape == string(gravity.ProbeRay),
		"gravity.probe_radius must be positive")
	check(c.Gravity.ProbeReach > 0, "gravity.probe_reach must be positive")
	check(c.Body.Radius > 0, "body.radius must be positive")
	check(c.Body.HalfHeight > 0, "body.half_height must be positive")
	check(len(c.Body.CameraOffset) == 3, "body.camera_offset needs three values")
	check(c.Simulation.DT > 0, "simulation.dt must be positive")
	check(c.Simulation.Ticks >= 0, "simulation.ticks must not be negative")

	return errors.Join(errs...)
}

// Controller returns the gravity controller settings.
func (c *Config) Controller() gravity.Config {
	return gravity.Config{
		LocomotionSpeed: c.Locomotion.Speed,
		LookSpeed:       c.Locomotion.LookSpeed,
		AngleThreshold:  c.Gravity.AngleThreshold,
		Pull:            c.Gravity.Pull,
	}
}

// CameraOffset returns body.camera_offset as a vector.
func (c *Config) CameraOffset() rl.Vector3 {
	if len(c.Body.CameraOffset) != 3 {
		return rl.Vector3{}
	}
	o := c.Body.CameraOffset
	return rl.Vector3{X: o[0], Y: o[1], Z: o[2]}
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
