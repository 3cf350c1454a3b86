package session

import (
	"testing"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerSnapshotIsCopied(t *testing.T) {
	r := NewRegistry()
	p := player.New("Barry")
	p.X, p.Y = 300, 400
	r.SavePlayer(p)

	p.AddItem("potion")
	p.Gold = 99

	loaded, ok := r.LoadPlayer()
	require.True(t, ok)
	assert.Empty(t, loaded.Inventory)
	assert.Equal(t, 0, loaded.Gold)

	loaded.Gold = 5
	again, _ := r.LoadPlayer()
	assert.Equal(t, 0, again.Gold)
}

func TestPlayerOrNew(t *testing.T) {
	r := NewRegistry()
	fresh := r.PlayerOrNew(true)
	assert.Equal(t, player.DefaultName, fresh.Name)

	p := player.New("Barry")
	p.X, p.Y = 10, 20
	r.SavePlayer(p)

	withPos := r.PlayerOrNew(true)
	assert.Equal(t, 10.0, withPos.X)
	withoutPos := r.PlayerOrNew(false)
	assert.Equal(t, 0.0, withoutPos.X)
	assert.Equal(t, "Barry", withoutPos.Name)
}

func TestFlags(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"true", true, true},
		{"false", false, false},
		{"string", "yes", true},
		{"empty_string", "", false},
		{"zero_float", 0.0, false},
		{"int", 3, true},
		{"nil", nil, false},
	}
	r := NewRegistry()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r.SetFlag(tc.name, tc.value)
			assert.Equal(t, tc.want, r.Truthy(tc.name))
		})
	}
	assert.False(t, r.Truthy("never_set"))
}

func TestLastOpenWorldPositionIsTakenOnce(t *testing.T) {
	r := NewRegistry()
	r.SetLastOpenWorldPosition(common.Vec{X: 512, Y: 300})

	pos, ok := r.TakeLastOpenWorldPosition()
	require.True(t, ok)
	assert.Equal(t, common.Vec{X: 512, Y: 300}, pos)

	_, ok = r.TakeLastOpenWorldPosition()
	assert.False(t, ok)
}

func TestSnapshotRestore(t *testing.T) {
	r := NewRegistry()
	p := player.New("Barry")
	p.AddQuest("investigate_forest")
	r.SavePlayer(p)
	r.SetFlag("metVincent", true)
	r.SetLastOpenWorldPosition(common.Vec{X: 1, Y: 2})

	snap := r.Snapshot()
	r.SetFlag("metVincent", false)

	other := NewRegistry()
	other.Restore(snap)
	assert.True(t, other.Truthy("metVincent"))
	loaded, ok := other.LoadPlayer()
	require.True(t, ok)
	assert.True(t, loaded.HasQuest("investigate_forest"))
	pos, ok := other.TakeLastOpenWorldPosition()
	require.True(t, ok)
	assert.Equal(t, 2.0, pos.Y)
}
