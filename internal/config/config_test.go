package config

import (
	"os"
	"path/filepath"
	"testing"

	"fallingup/internal/gravity"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultsMatchController(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, gravity.DefaultConfig(), cfg.Controller())
	assert.Equal(t, "sphere", cfg.Gravity.ProbeShape)
	assert.Equal(t, float32(12.5), cfg.Gravity.ProbeRadius)
	assert.Equal(t, float32(1.4), cfg.Gravity.ProbeReach)
	assert.Equal(t, float32(25), cfg.Body.Radius)
	assert.Equal(t, float32(25), cfg.Body.HalfHeight)
	assert.Equal(t, rl.Vector3{X: -3, Z: -13}, cfg.CameraOffset())
}

func TestLoadOverlaysFilesInOrder(t *testing.T) {
	first := writeFile(t, "a.yaml", "gravity:\n  angle_threshold: 30\nlocomotion:\n  speed: 80\n")
	second := writeFile(t, "b.yaml", "gravity:\n  angle_threshold: 70\n")

	cfg, err := Load(first, "", second)
	require.NoError(t, err)
	assert.Equal(t, float32(70), cfg.Gravity.AngleThreshold)
	assert.Equal(t, float32(80), cfg.Locomotion.Speed)
	assert.Equal(t, float32(600), cfg.Gravity.Pull, "untouched fields keep defaults")
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "bad.yaml", "gravity:\n  angel_threshold: 30\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "angel_threshold")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"threshold above 180", func(c *Config) { c.Gravity.AngleThreshold = 181 }},
		{"negative threshold", func(c *Config) { c.Gravity.AngleThreshold = -1 }},
		{"negative speed", func(c *Config) { c.Locomotion.Speed = -1 }},
		{"negative look speed", func(c *Config) { c.Locomotion.LookSpeed = -0.1 }},
		{"unknown probe shape", func(c *Config) { c.Gravity.ProbeShape = "cone" }},
		{"zero probe radius", func(c *Config) { c.Gravity.ProbeRadius = 0 }},
		{"zero reach", func(c *Config) { c.Gravity.ProbeReach = 0 }},
		{"zero radius", func(c *Config) { c.Body.Radius = 0 }},
		{"zero half height", func(c *Config) { c.Body.HalfHeight = 0 }},
		{"short camera offset", func(c *Config) { c.Body.CameraOffset = []float32{1} }},
		{"zero dt", func(c *Config) { c.Simulation.DT = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestValidateAllowsEdgeThresholds(t *testing.T) {
	for _, threshold := range []float32{0, 180} {
		cfg := Default()
		cfg.Gravity.AngleThreshold = threshold
		assert.NoError(t, cfg.Validate())
	}

	cfg := Default()
	cfg.Gravity.ProbeShape = "ray"
	cfg.Gravity.ProbeRadius = 0
	assert.NoError(t, cfg.Validate(), "rays need no radius")
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Gravity.AngleThreshold = 42
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
