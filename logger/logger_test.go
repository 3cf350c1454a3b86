package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		env  string
		want logrus.Level
	}{
		{"default info", Config{}, "", logrus.InfoLevel},
		{"configured debug", Config{Level: "debug"}, "", logrus.DebugLevel},
		{"env wins", Config{Level: "debug"}, "warn", logrus.WarnLevel},
		{"unknown falls back", Config{Level: "loud"}, "", logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			log := newWithOutput(tt.cfg, &bytes.Buffer{})
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestJSONFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "")
	var buf bytes.Buffer
	log := newWithOutput(Config{Format: "json"}, &buf)
	log.WithField("scene", "StarterArea").Info("scene started")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "StarterArea", entry["scene"])
	assert.Equal(t, "scene started", entry["msg"])
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Info("nothing to see")
	assert.NotNil(t, log)
}
