// Package assets embeds every image and sound the game ships with, plus the
// manifest that maps level texture keys to files.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed *.png *.yaml barry-sprites buildings floors npcs props sfx
var assetsFS embed.FS

const SampleRate = 44100

var (
	audioOnce sync.Once
	audioCtx  *audio.Context
)

// AudioContext returns the shared context, creating it on first use.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		audioCtx = audio.CurrentContext()
		if audioCtx == nil {
			audioCtx = audio.NewContext(SampleRate)
		}
	})
	return audioCtx
}

// LoadImage loads an embedded asset by assets-relative path.
func LoadImage(path string) (*ebiten.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %q: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	b, err := assetsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("assets: load %q: %w", path, err)
	}
	return b, nil
}

// LoadAudioPlayer decodes an embedded sound and wraps it in a player.
func LoadAudioPlayer(path string) (*audio.Player, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	ctx := AudioContext()
	if strings.HasSuffix(strings.ToLower(path), ".wav") {
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("assets: decode wav %q: %w", path, err)
		}
		return ctx.NewPlayer(stream)
	}

	// Anything else is assumed to be raw PCM in Ebiten's native format.
	return ctx.NewPlayerFromBytes(b), nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(s, "assets/")
}
