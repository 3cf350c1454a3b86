package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/dialog"
)

type keySet map[string]bool

func (k keySet) Has(key string) bool { return k[key] }

// manifestKeys reads the texture manifest next door without pulling in the
// renderer.
func manifestKeys(t *testing.T) keySet {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "assets", "textures.yaml"))
	require.NoError(t, err)
	var m struct {
		Textures map[string]any `yaml:"textures"`
	}
	require.NoError(t, yaml.Unmarshal(data, &m))
	keys := keySet{}
	for k := range m.Textures {
		keys[k] = true
	}
	return keys
}

func TestEmbeddedScenes(t *testing.T) {
	table, err := LoadScenes()
	require.NoError(t, err)
	assert.Equal(t, "StarterArea", table.Start)
	assert.Equal(t, []string{"BlueRoom", "House1", "StarterArea", "VincentsStore"}, table.IDs())

	textures := manifestKeys(t)
	for _, id := range table.IDs() {
		t.Run(id, func(t *testing.T) {
			scene, err := table.Lookup(id)
			require.NoError(t, err)

			lvl, err := LoadLevel(scene.Level)
			require.NoError(t, err)
			assert.Equal(t, id, lvl.Name)
			assert.Equal(t, scene.WorldType, lvl.WorldType)
			assert.Empty(t, Validate(lvl, textures, &table))

			if scene.Dialogs != "" {
				f, err := LoadDialogs(scene.Dialogs)
				require.NoError(t, err)
				assert.NotEmpty(t, f.NPCs())
			}
		})
	}

	_, err = table.Lookup("Atlantis")
	assert.ErrorIs(t, err, ErrUnknownScene)
}

func TestStarterAreaContents(t *testing.T) {
	lvl, err := LoadLevel("area-1/start.json")
	require.NoError(t, err)

	require.Len(t, lvl.Buildings, 2)
	house := lvl.Buildings[0]
	require.NotNil(t, house.Door)
	assert.Equal(t, "House1", house.Door.TargetScene)
	assert.Equal(t, 120.0, house.Door.CloseDistanceOrDefault())
	assert.Equal(t, 120.0, lvl.Buildings[1].Door.CloseDistanceOrDefault(), "default close distance")
	require.NotNil(t, lvl.Buildings[1].Physics)
	assert.Equal(t, 176.0, lvl.Buildings[1].Physics.BodySize.Width)

	require.Len(t, lvl.NPCs, 1)
	mira := lvl.NPCs[0]
	assert.True(t, mira.IsInteractable())
	assert.Equal(t, -1, mira.Animation.RepeatOrDefault())
	assert.Equal(t, 3.0, mira.Animation.FrameRateOrDefault())
	assert.Equal(t, 1.0, mira.ScaleOrDefault())
}

func TestCombatNPCDefaults(t *testing.T) {
	lvl, err := LoadLevel("levels/area-1/house1.json")
	require.NoError(t, err)
	require.Len(t, lvl.CombatNPCs, 2)

	slime := lvl.CombatNPCs[0]
	assert.Equal(t, "down", slime.Facing())
	assert.Equal(t, Size{Width: 32, Height: 32}, slime.BodySize())
	assert.Equal(t, 50.0, slime.PatrolData.SpeedOrDefault())
	assert.Equal(t, 2000, slime.PatrolData.WaitOrDefault())
	assert.Nil(t, slime.Depth)

	bandit := lvl.CombatNPCs[1]
	assert.Equal(t, "left", bandit.Facing())
	assert.Equal(t, 160.0, bandit.SightDistance())
	require.NotNil(t, bandit.Depth)
	assert.Equal(t, 55, *bandit.Depth)
	assert.Equal(t, "turn", string(bandit.CombatData.Mode))

	var empty CombatNPC
	assert.Equal(t, 90.0, empty.SightAngle())
	assert.Equal(t, 120.0, empty.SightDistance())
}

func TestLoadLevelDiskOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(filepath.Join("levels", "area-1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("levels", "area-1", "start.json"),
		[]byte(`{"name":"Edited","worldType":"open","player":{"x":1,"y":2}}`), 0o644))

	lvl, err := LoadLevel("area-1/start.json")
	require.NoError(t, err)
	assert.Equal(t, "Edited", lvl.Name)
	assert.Equal(t, common.Vec{X: 1, Y: 2}, lvl.Player)

	// Files without a disk copy still come from the embedded set.
	lvl, err = LoadLevel("area-1/house1.json")
	require.NoError(t, err)
	assert.Equal(t, "House1", lvl.Name)
}

func TestLoadErrors(t *testing.T) {
	_, err := LoadLevel("area-1/missing.json")
	assert.Error(t, err)

	_, err = ParseLevel([]byte(`{"name": 5}`))
	assert.Error(t, err)

	lvl, err := ParseLevel([]byte(`{"name":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, WorldRoom, lvl.WorldType)

	_, err = LoadDialogs("dialogs/missing.json")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	textures := keySet{"building1": true, "tree1": true}
	table := SceneTable{Scenes: map[string]Scene{"House1": {}}}

	tests := []struct {
		name string
		lvl  Level
		want int
	}{
		{
			name: "clean",
			lvl: Level{WorldType: WorldOpen, Buildings: []Building{{
				Placement: Placement{ID: "b", Texture: "building1"},
				Door:      &Door{Enabled: true, InteractionZone: &Zone{Width: 10, Height: 10}, TargetScene: "House1"},
			}}},
			want: 0,
		},
		{
			name: "duplicate ids",
			lvl: Level{WorldType: WorldRoom, Props: []Prop{
				{Placement: Placement{ID: "t", Texture: "tree1"}},
				{Placement: Placement{ID: "t", Texture: "tree1"}},
			}},
			want: 1,
		},
		{
			name: "unknown texture and missing id",
			lvl:  Level{WorldType: WorldRoom, Props: []Prop{{Placement: Placement{Texture: "rock"}}}},
			want: 2,
		},
		{
			name: "bad zone and unknown scene",
			lvl: Level{WorldType: WorldRoom, Buildings: []Building{{
				Placement: Placement{ID: "b", Texture: "building1"},
				Door:      &Door{Enabled: true, TriggerZone: &Zone{}, InteractionZone: &Zone{Width: 1, Height: 1}, TargetScene: "Moon"},
			}}},
			want: 2,
		},
		{
			name: "bad exit and body",
			lvl: Level{WorldType: WorldRoom,
				Props: []Prop{{Placement: Placement{ID: "t", Texture: "tree1", Bodies: []Body{{Type: "solid", Width: 1, Height: 1}}}}},
				Exits: []Exit{{Edge: "diagonal", TargetScene: "House1"}},
			},
			want: 2,
		},
		{
			name: "bad world type",
			lvl:  Level{WorldType: "cave"},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(&tt.lvl, textures, &table)
			assert.Len(t, errs, tt.want, "%v", errs)
		})
	}
	assert.Len(t, Validate(nil, nil, nil), 1)
}

func TestExitCrossed(t *testing.T) {
	tests := []struct {
		edge Edge
		pos  common.Vec
		want bool
	}{
		{EdgeTop, common.Vec{X: 10, Y: -1}, true},
		{EdgeTop, common.Vec{X: 10, Y: 0}, false},
		{EdgeBottom, common.Vec{X: 10, Y: 769}, true},
		{EdgeBottom, common.Vec{X: 10, Y: 768}, false},
		{EdgeLeft, common.Vec{X: -0.5, Y: 10}, true},
		{EdgeRight, common.Vec{X: 1025, Y: 10}, true},
		{"nowhere", common.Vec{X: -100, Y: -100}, false},
	}
	for _, tt := range tests {
		got := Exit{Edge: tt.edge}.Crossed(tt.pos, 1024, 768)
		assert.Equal(t, tt.want, got, "%s at %+v", tt.edge, tt.pos)
	}
}

func TestValidateDialogs(t *testing.T) {
	table, err := LoadScenes()
	require.NoError(t, err)
	for _, id := range table.IDs() {
		sc := table.Scenes[id]
		if sc.Dialogs == "" {
			continue
		}
		f, err := LoadDialogs(sc.Dialogs)
		require.NoError(t, err, id)
		assert.Empty(t, ValidateDialogs(f, &table), id)
	}

	bad := []byte(`{
		"guard": {
			"default": {"text": "Halt.", "actions": [{"type": "changeScene", "scene": "Moon"}]},
			"contextual": [
				{"conditions": {"expr": "gold >"}, "text": "Hm."},
				{"text": "", "choices": [{"text": "Fight", "actions": [{"type": "startCombat", "combatData": {"enemyName": "Guard"}}]}]}
			]
		}
	}`)
	f, err := dialog.Parse(bad)
	require.NoError(t, err)
	assert.Len(t, ValidateDialogs(f, &table), 4)
}
