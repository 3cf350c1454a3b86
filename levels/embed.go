// Package levels loads scene layouts, dialog files and the scene table.
// Files under ./levels on disk shadow the embedded copies so edits can be
// picked up without a rebuild.
package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/overworld/dialog"
)

//go:embed area-1/*.json dialogs/*.json scenes.yaml
var LevelsFS embed.FS

var ErrUnknownScene = errors.New("levels: unknown scene")

// Read returns a levels-relative file, preferring the disk copy.
func Read(name string) ([]byte, error) {
	clean := cleanLevelPath(name)
	if data, err := os.ReadFile(DiskPath(clean)); err == nil {
		return data, nil
	}
	return LevelsFS.ReadFile(clean)
}

// DiskPath is where the disk override for a levels-relative path lives.
func DiskPath(clean string) string {
	return filepath.Join("levels", filepath.FromSlash(clean))
}

func cleanLevelPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		return after
	}
	return s
}

func LoadLevel(path string) (*Level, error) {
	data, err := Read(path)
	if err != nil {
		return nil, fmt.Errorf("levels: load %q: %w", path, err)
	}
	lvl, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("levels: load %q: %w", path, err)
	}
	return lvl, nil
}

func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, err
	}
	if lvl.WorldType == "" {
		lvl.WorldType = WorldRoom
	}
	return &lvl, nil
}

func LoadDialogs(path string) (dialog.File, error) {
	data, err := Read(path)
	if err != nil {
		return nil, fmt.Errorf("levels: load dialogs %q: %w", path, err)
	}
	f, err := dialog.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: load dialogs %q: %w", path, err)
	}
	return f, nil
}

// Scene maps a scene id to its data files.
type Scene struct {
	Level     string    `yaml:"level"`
	Dialogs   string    `yaml:"dialogs"`
	WorldType WorldType `yaml:"world_type"`
}

type SceneTable struct {
	Start  string           `yaml:"start"`
	Scenes map[string]Scene `yaml:"scenes"`
}

func (t SceneTable) Lookup(id string) (Scene, error) {
	s, ok := t.Scenes[id]
	if !ok {
		return Scene{}, fmt.Errorf("%w %q", ErrUnknownScene, id)
	}
	return s, nil
}

func (t SceneTable) Has(id string) bool {
	_, ok := t.Scenes[id]
	return ok
}

func (t SceneTable) IDs() []string {
	ids := make([]string, 0, len(t.Scenes))
	for id := range t.Scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func LoadScenes() (SceneTable, error) {
	data, err := Read("scenes.yaml")
	if err != nil {
		return SceneTable{}, fmt.Errorf("levels: load scenes.yaml: %w", err)
	}
	var t SceneTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return SceneTable{}, fmt.Errorf("levels: unmarshal scenes.yaml: %w", err)
	}
	if t.Start != "" && !t.Has(t.Start) {
		return SceneTable{}, fmt.Errorf("levels: start scene %q: %w", t.Start, ErrUnknownScene)
	}
	return t, nil
}
