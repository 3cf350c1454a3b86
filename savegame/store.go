// Package savegame persists registry snapshots to a file or Redis backend.
package savegame

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/milk9111/overworld/config"
	"github.com/milk9111/overworld/session"
)

var (
	ErrNotFound    = errors.New("savegame: not found")
	ErrInvalidSlot = errors.New("savegame: invalid slot name")
)

// Save is one stored game.
type Save struct {
	ID       uuid.UUID        `json:"id"`
	Slot     string           `json:"slot"`
	Scene    string           `json:"scene"`
	SavedAt  time.Time        `json:"savedAt"`
	Snapshot session.Snapshot `json:"snapshot"`
}

// New stamps a snapshot with a fresh id.
func New(slot, scene string, snap session.Snapshot, now time.Time) Save {
	return Save{
		ID:       uuid.New(),
		Slot:     slot,
		Scene:    scene,
		SavedAt:  now.UTC(),
		Snapshot: snap,
	}
}

type Store interface {
	Save(ctx context.Context, s Save) error
	Load(ctx context.Context, slot string) (Save, error)
	Delete(ctx context.Context, slot string) error
	List(ctx context.Context) ([]string, error)
	Close() error
}

var slotPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func checkSlot(slot string) error {
	if !slotPattern.MatchString(slot) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return nil
}

// Open returns the store selected by cfg.Backend.
func Open(cfg config.Save) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.Dir)
	case config.BackendRedis:
		return NewRedisStore(cfg.RedisURL, cfg.KeyPrefix)
	default:
		return nil, fmt.Errorf("savegame: unknown backend %q", cfg.Backend)
	}
}
