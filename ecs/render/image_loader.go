package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/overworld/assets"
)

// Image loads a texture by manifest key and caches it.
func (l *Library) Image(key string) (*ebiten.Image, error) {
	if l == nil {
		return nil, fmt.Errorf("render: nil library")
	}
	if key == "" {
		return nil, fmt.Errorf("render: empty image key")
	}
	if img, ok := l.images[key]; ok {
		return img, nil
	}
	tex, ok := l.manifest.Texture(key)
	if !ok {
		return nil, fmt.Errorf("render: unknown texture %q", key)
	}
	img, err := loadImageFromAssetsOrFS(tex.File)
	if err != nil {
		return nil, fmt.Errorf("render: texture %q: %w", key, err)
	}
	l.images[key] = img
	return img, nil
}

// Reload drops every cached texture so the next lookup rereads the files.
func (l *Library) Reload(manifest *assets.Manifest) {
	if l == nil {
		return
	}
	if manifest != nil {
		l.manifest = manifest
	}
	clear(l.images)
	clear(l.frames)
}

// Disk copies under assets/ win over the embedded files so art can be
// swapped while the game runs.
func loadImageFromAssetsOrFS(path string) (*ebiten.Image, error) {
	for _, p := range []string{filepath.Join("assets", path), path} {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if im, _, err := image.Decode(bytes.NewReader(b)); err == nil {
			return ebiten.NewImageFromImage(im), nil
		}
	}
	return assets.LoadImage(path)
}
