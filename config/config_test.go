package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 768, cfg.Window.Height)
	assert.Equal(t, "StarterArea", cfg.StartScene)
	assert.Equal(t, 30*time.Millisecond, cfg.Dialog.TypewriterInterval)
	assert.Equal(t, 60.0, cfg.Dialog.InteractionDistance)
	assert.Equal(t, 3600, cfg.Player.AutosaveFrames)
	assert.Equal(t, 5*time.Second, cfg.Encounter.FleeCooldown)
	assert.Equal(t, 50*time.Millisecond, cfg.Rhythm.HitWindow)
	assert.Equal(t, []float64{200, 300, 400, 500}, cfg.Rhythm.LaneX)
	assert.Equal(t, time.Second, cfg.Turn.EnemyDelay)
	assert.Equal(t, 0.5, cfg.Turn.EscapeChance)
	assert.Equal(t, BackendFile, cfg.Save.Backend)
	assert.Equal(t, "overworld:save:", cfg.Save.KeyPrefix)
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
start_scene: House1
save:
  backend: redis
rhythm:
  hit_window: 80ms
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "House1", cfg.StartScene)
	assert.Equal(t, BackendRedis, cfg.Save.Backend)
	assert.Equal(t, 80*time.Millisecond, cfg.Rhythm.HitWindow)

	// Untouched sections keep their defaults.
	assert.Equal(t, "saves", cfg.Save.Dir)
	assert.Equal(t, 30*time.Second, cfg.Rhythm.Duration)
	assert.Equal(t, 110.0, cfg.Player.Speed)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml")},
		{"bad yaml", write("bad.yaml", "window: [")},
		{"bad backend", write("backend.yaml", "save:\n  backend: floppy\n")},
		{"bad window", write("window.yaml", "window:\n  width: 0\n")},
		{"bad duration", write("duration.yaml", "dialog:\n  typewriter_interval: soon\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			assert.Error(t, err)
		})
	}

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
