package game

import (
	"path/filepath"
	"testing"

	"fallingup/internal/config"
	"fallingup/internal/telemetry"
	"fallingup/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, scene string) *Game {
	t.Helper()
	sf, err := world.Load(scene)
	require.NoError(t, err)
	g, err := New(config.Default(), sf)
	require.NoError(t, err)
	return g
}

func TestSimulateWalksForward(t *testing.T) {
	g := newGame(t, "playground")
	rec, err := telemetry.NewRecorder("playground", "", nil)
	require.NoError(t, err)
	g.Recorder = rec

	start := g.World.Player.WorldPosition()
	require.NoError(t, g.Simulate(120))

	assert.Equal(t, 120, g.Ticks())
	assert.Len(t, rec.Records(), 120)
	assert.Equal(t, 120, g.Stats().Ticks)

	end := g.World.Player.WorldPosition()
	assert.Greater(t, end.X-start.X, float32(50), "scripted input walks along +X")

	summary := rec.Summary()
	assert.Greater(t, summary.Distance, 50.0)
	assert.Contains(t, summary.Surfaces, "Floor")
}

func TestSimulateWritesTelemetry(t *testing.T) {
	g := newGame(t, "planet")
	dir := filepath.Join(t.TempDir(), "out")
	rec, err := telemetry.NewRecorder("planet", dir, g.Config)
	require.NoError(t, err)
	g.Recorder = rec

	require.NoError(t, g.Simulate(30))
	summary, err := rec.Close()
	require.NoError(t, err)
	assert.Equal(t, 30, summary.Ticks)

	records, err := telemetry.ReadRecords(filepath.Join(dir, "telemetry.csv"))
	require.NoError(t, err)
	assert.Len(t, records, 30)
}

func TestSimulateWithoutRecorder(t *testing.T) {
	g := newGame(t, "tube")
	require.NoError(t, g.Simulate(10))
	assert.Equal(t, 10, g.Ticks())
}

func TestNewRejectsBadScene(t *testing.T) {
	sf := &world.SceneFile{
		Name: "broken",
		Objects: []world.ObjectDef{{
			Name:       "Bad",
			Components: []world.ComponentDef{{Type: "BoxCollider", Props: map[string]any{"size": "big"}}},
		}},
	}
	_, err := New(config.Default(), sf)
	require.Error(t, err)
}
