package savegame

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const fileExt = ".json"

// FileStore keeps one JSON file per slot.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "saves"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("savegame: create dir %q: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(slot string) string {
	return filepath.Join(f.dir, slot+fileExt)
}

// Save writes through a temp file so a crash never leaves a torn save.
func (f *FileStore) Save(_ context.Context, s Save) error {
	if err := checkSlot(s.Slot); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("savegame: marshal %q: %w", s.Slot, err)
	}
	tmp, err := os.CreateTemp(f.dir, s.Slot+"-*.tmp")
	if err != nil {
		return fmt.Errorf("savegame: save %q: %w", s.Slot, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("savegame: save %q: %w", s.Slot, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("savegame: save %q: %w", s.Slot, err)
	}
	if err := os.Rename(tmp.Name(), f.path(s.Slot)); err != nil {
		return fmt.Errorf("savegame: save %q: %w", s.Slot, err)
	}
	return nil
}

func (f *FileStore) Load(_ context.Context, slot string) (Save, error) {
	if err := checkSlot(slot); err != nil {
		return Save{}, err
	}
	data, err := os.ReadFile(f.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return Save{}, fmt.Errorf("%w: %q", ErrNotFound, slot)
	}
	if err != nil {
		return Save{}, fmt.Errorf("savegame: load %q: %w", slot, err)
	}
	var s Save
	if err := json.Unmarshal(data, &s); err != nil {
		return Save{}, fmt.Errorf("savegame: decode %q: %w", slot, err)
	}
	return s, nil
}

func (f *FileStore) Delete(_ context.Context, slot string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	err := os.Remove(f.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrNotFound, slot)
	}
	if err != nil {
		return fmt.Errorf("savegame: delete %q: %w", slot, err)
	}
	return nil
}

func (f *FileStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("savegame: list %q: %w", f.dir, err)
	}
	var slots []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		slots = append(slots, strings.TrimSuffix(name, fileExt))
	}
	sort.Strings(slots)
	return slots, nil
}

func (f *FileStore) Close() error { return nil }
