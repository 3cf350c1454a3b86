package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

const ManifestFile = "textures.yaml"

// Texture is one manifest entry. Sheets set a frame size; plain images
// leave it zero.
type Texture struct {
	File        string `yaml:"file"`
	FrameWidth  int    `yaml:"frame_width"`
	FrameHeight int    `yaml:"frame_height"`
}

func (t Texture) IsSheet() bool {
	return t.FrameWidth > 0 && t.FrameHeight > 0
}

type Manifest struct {
	Textures map[string]Texture `yaml:"textures"`
	Sounds   map[string]string  `yaml:"sounds"`
}

// LoadManifest reads textures.yaml, preferring assets/textures.yaml on disk
// when it exists.
func LoadManifest() (*Manifest, error) {
	b, err := os.ReadFile(filepath.Join("assets", ManifestFile))
	if err != nil {
		b, err = assetsFS.ReadFile(ManifestFile)
		if err != nil {
			return nil, fmt.Errorf("assets: load %q: %w", ManifestFile, err)
		}
	}
	m, err := ParseManifest(b)
	if err != nil {
		return nil, fmt.Errorf("assets: load %q: %w", ManifestFile, err)
	}
	return m, nil
}

func ParseManifest(b []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	for key, tex := range m.Textures {
		if tex.File == "" {
			return nil, fmt.Errorf("texture %q has no file", key)
		}
	}
	if m.Textures == nil {
		m.Textures = map[string]Texture{}
	}
	if m.Sounds == nil {
		m.Sounds = map[string]string{}
	}
	return &m, nil
}

// Has reports whether key names a texture. It lets the manifest stand in
// for levels.TextureSet.
func (m *Manifest) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.Textures[key]
	return ok
}

func (m *Manifest) Texture(key string) (Texture, bool) {
	if m == nil {
		return Texture{}, false
	}
	t, ok := m.Textures[key]
	return t, ok
}

func (m *Manifest) Sound(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	s, ok := m.Sounds[key]
	return s, ok
}

// Keys returns the texture keys in sorted order.
func (m *Manifest) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.Textures))
	for k := range m.Textures {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Missing lists manifest files that are not embedded.
func (m *Manifest) Missing() []string {
	if m == nil {
		return nil
	}
	var missing []string
	for _, key := range m.Keys() {
		if _, err := assetsFS.Open(cleanAssetPath(m.Textures[key].File)); err != nil {
			missing = append(missing, m.Textures[key].File)
		}
	}
	names := make([]string, 0, len(m.Sounds))
	for name := range m.Sounds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := assetsFS.Open(cleanAssetPath(m.Sounds[name])); err != nil {
			missing = append(missing, m.Sounds[name])
		}
	}
	return missing
}
