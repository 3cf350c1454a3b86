package savegame

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/config"
	"github.com/milk9111/overworld/player"
	"github.com/milk9111/overworld/session"
)

func sampleSave(slot string) Save {
	reg := session.NewRegistry()
	p := player.New("Barry")
	p.Gold = 45
	p.AddItem("health_potion")
	p.AddQuest("investigate_forest")
	reg.SavePlayer(p)
	reg.SetFlag("metVincent", true)
	reg.SetFlag("door", "north")
	reg.SetLastOpenWorldPosition(common.Vec{X: 320, Y: 700})

	return New(slot, "VincentsStore", reg.Snapshot(), time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC))
}

func newRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestStores(t *testing.T) {
	backends := []struct {
		name string
		open func(t *testing.T) Store
	}{
		{"file", func(t *testing.T) Store { return newFileStore(t) }},
		{"redis", func(t *testing.T) Store { return newRedisStore(t) }},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			store := b.open(t)

			_, err := store.Load(ctx, "slot1")
			assert.ErrorIs(t, err, ErrNotFound)

			want := sampleSave("slot1")
			require.NoError(t, store.Save(ctx, want))
			require.NoError(t, store.Save(ctx, sampleSave("slot2")))

			got, err := store.Load(ctx, "slot1")
			require.NoError(t, err)
			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, "VincentsStore", got.Scene)
			assert.True(t, want.SavedAt.Equal(got.SavedAt))
			require.NotNil(t, got.Snapshot.Player)
			assert.Equal(t, "Barry", got.Snapshot.Player.Name)
			assert.Equal(t, 45, got.Snapshot.Player.Gold)
			assert.Equal(t, []string{"health_potion"}, got.Snapshot.Player.Inventory)
			assert.Equal(t, true, got.Snapshot.Flags["metVincent"])
			assert.Equal(t, "north", got.Snapshot.Flags["door"])
			require.NotNil(t, got.Snapshot.LastOpenWorld)
			assert.Equal(t, common.Vec{X: 320, Y: 700}, *got.Snapshot.LastOpenWorld)

			slots, err := store.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"slot1", "slot2"}, slots)

			require.NoError(t, store.Delete(ctx, "slot1"))
			assert.ErrorIs(t, store.Delete(ctx, "slot1"), ErrNotFound)
			_, err = store.Load(ctx, "slot1")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.ErrorIs(t, store.Save(ctx, sampleSave("../escape")), ErrInvalidSlot)
			_, err = store.Load(ctx, "")
			assert.ErrorIs(t, err, ErrInvalidSlot)
		})
	}
}

func TestRestoreFromSave(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)
	require.NoError(t, store.Save(ctx, sampleSave("auto")))

	got, err := store.Load(ctx, "auto")
	require.NoError(t, err)

	reg := session.NewRegistry()
	reg.Restore(got.Snapshot)
	p, ok := reg.LoadPlayer()
	require.True(t, ok)
	assert.True(t, p.HasQuest("investigate_forest"))
	assert.True(t, reg.Truthy("metVincent"))
	pos, ok := reg.TakeLastOpenWorldPosition()
	require.True(t, ok)
	assert.Equal(t, 320.0, pos.X)
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     config.Save
		want    any
		wantErr bool
	}{
		{"file", config.Save{Backend: config.BackendFile, Dir: t.TempDir()}, &FileStore{}, false},
		{"redis", config.Save{Backend: config.BackendRedis, RedisURL: "redis://" + mr.Addr()}, &RedisStore{}, false},
		{"bad redis url", config.Save{Backend: config.BackendRedis, RedisURL: "ftp://nope"}, nil, true},
		{"unknown", config.Save{Backend: "floppy"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer store.Close()
			assert.IsType(t, tt.want, store)
		})
	}
}
