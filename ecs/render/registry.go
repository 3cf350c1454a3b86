// Package render resolves manifest texture keys to GPU images and keeps
// them cached for the lifetime of the game.
package render

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/milk9111/overworld/assets"
)

type frameKey struct {
	key   string
	index int
}

// Library caches textures and sounds by manifest key.
type Library struct {
	manifest *assets.Manifest
	images   map[string]*ebiten.Image
	frames   map[frameKey]*ebiten.Image
	sounds   map[string]*audio.Player
}

func NewLibrary(manifest *assets.Manifest) *Library {
	return &Library{
		manifest: manifest,
		images:   make(map[string]*ebiten.Image),
		frames:   make(map[frameKey]*ebiten.Image),
		sounds:   make(map[string]*audio.Player),
	}
}

func (l *Library) Manifest() *assets.Manifest {
	if l == nil {
		return nil
	}
	return l.manifest
}

// Has reports whether key is a known texture.
func (l *Library) Has(key string) bool {
	return l != nil && l.manifest.Has(key)
}

// RegisterImage stores an image by key, replacing any cached copy.
func (l *Library) RegisterImage(key string, img *ebiten.Image) {
	if l == nil || key == "" || img == nil {
		return
	}
	l.images[key] = img
	for fk := range l.frames {
		if fk.key == key {
			delete(l.frames, fk)
		}
	}
}

// Frame cuts frame index out of a sprite sheet, reading left to right and
// top to bottom.
func (l *Library) Frame(key string, index int) (*ebiten.Image, error) {
	if l == nil {
		return nil, fmt.Errorf("render: nil library")
	}
	if img, ok := l.frames[frameKey{key, index}]; ok {
		return img, nil
	}
	tex, ok := l.manifest.Texture(key)
	if !ok {
		return nil, fmt.Errorf("render: unknown texture %q", key)
	}
	if !tex.IsSheet() {
		return nil, fmt.Errorf("render: texture %q is not a sheet", key)
	}
	sheet, err := l.Image(key)
	if err != nil {
		return nil, err
	}
	cols := sheet.Bounds().Dx() / tex.FrameWidth
	rows := sheet.Bounds().Dy() / tex.FrameHeight
	if cols <= 0 || index < 0 || index >= cols*rows {
		return nil, fmt.Errorf("render: frame %d out of range for %q", index, key)
	}
	x := (index % cols) * tex.FrameWidth
	y := (index / cols) * tex.FrameHeight
	sub, ok := sheet.SubImage(image.Rect(x, y, x+tex.FrameWidth, y+tex.FrameHeight)).(*ebiten.Image)
	if !ok {
		return nil, fmt.Errorf("render: frame %d of %q", index, key)
	}
	l.frames[frameKey{key, index}] = sub
	return sub, nil
}

// Sound returns the shared player for a named sound effect.
func (l *Library) Sound(name string) (*audio.Player, error) {
	if l == nil {
		return nil, fmt.Errorf("render: nil library")
	}
	if p, ok := l.sounds[name]; ok {
		return p, nil
	}
	file, ok := l.manifest.Sound(name)
	if !ok {
		return nil, fmt.Errorf("render: unknown sound %q", name)
	}
	p, err := assets.LoadAudioPlayer(file)
	if err != nil {
		return nil, err
	}
	l.sounds[name] = p
	return p, nil
}
