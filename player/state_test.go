package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	p := New("")
	assert.Equal(t, DefaultName, p.Name)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 100, p.Health)
	assert.Equal(t, 100, p.Mana)
	assert.Equal(t, 110.0, p.Speed)
	assert.Equal(t, FacingDown, p.Facing)
	assert.Empty(t, p.Inventory)
}

func TestSkillsAndSpellsAreSets(t *testing.T) {
	p := New("Barry")
	p.AddSkill("lockpick")
	p.AddSkill("lockpick")
	p.AddSpell("fireball")
	p.AddSpell("fireball")
	p.AddSpell("healing")

	assert.Len(t, p.Skills, 1)
	assert.Equal(t, []string{"fireball", "healing"}, p.Spells)
}

func TestInventory(t *testing.T) {
	tests := []struct {
		name        string
		start       []string
		remove      string
		wantRemoved int
		want        []string
	}{
		{"duplicates_allowed_all_removed", []string{"potion", "crystal", "potion"}, "potion", 2, []string{"crystal"}},
		{"missing_item", []string{"potion"}, "sword", 0, []string{"potion"}},
		{"empty", nil, "potion", 0, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := New("")
			for _, item := range tc.start {
				p.AddItem(item)
			}
			got := p.RemoveItem(tc.remove)
			assert.Equal(t, tc.wantRemoved, got)
			assert.ElementsMatch(t, tc.want, p.Inventory)
		})
	}
}

func TestGold(t *testing.T) {
	p := New("")
	p.Gold = 50
	p.AddGold(-10)
	p.AddGold(5)
	assert.Equal(t, 45, p.Gold)

	p.AddGold(-100)
	assert.Equal(t, 0, p.Gold)
}

func TestAddExperienceLevelsUp(t *testing.T) {
	p := New("")
	gained := p.AddExperience(250)
	// 100 to reach level 2, 200 more to reach level 3.
	require.Equal(t, 1, gained)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 150, p.Experience)

	gained = p.AddExperience(50)
	assert.Equal(t, 1, gained)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 0, p.Experience)
}

func TestCloneIsDeep(t *testing.T) {
	p := New("")
	p.AddItem("potion")
	c := p.Clone()
	c.AddItem("sword")
	c.Inventory[0] = "changed"

	assert.Equal(t, []string{"potion"}, p.Inventory)
}

func TestSetHealthClamps(t *testing.T) {
	p := New("")
	p.SetHealth(-5)
	assert.Equal(t, 0, p.Health)
	assert.False(t, p.Alive())
	p.SetHealth(500)
	assert.Equal(t, 100, p.Health)
}
