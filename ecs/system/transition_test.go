package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/levels"
)

func newTransitionWorld(t *testing.T) (*ecs.World, ecs.Entity, *component.Transform, ecs.Entity, *component.Door) {
	t.Helper()
	w := ecs.NewWorld()
	p := ecs.CreateEntity(w)
	pt := &component.Transform{X: 300, Y: 340}
	require.NoError(t, ecs.Add(w, p, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, p, component.TransformComponent.Kind(), pt))

	b := ecs.CreateEntity(w)
	door := &component.Door{
		BuildingID:     "house1",
		HasInteraction: true,
		Interaction:    common.RectFromCenter(300, 316, 36, 12),
		TargetScene:    "House1",
		TargetPosition: &common.Vec{X: 512, Y: 660},
	}
	require.NoError(t, ecs.Add(w, b, component.DoorComponent.Kind(), door))
	return w, p, pt, b, door
}

func TestTransitionFromDoorZone(t *testing.T) {
	w, _, _, _, door := newTransitionWorld(t)
	sys := NewTransitionSystem(nil, true)

	sys.Update(w)
	_, ok := TakeSceneChangeRequest(w)
	assert.False(t, ok)

	door.PlayerInZone = true
	sys.Update(w)
	sys.Update(w)
	req, ok := TakeSceneChangeRequest(w)
	require.True(t, ok)
	assert.Equal(t, "House1", req.Target)
	assert.Equal(t, "house1", req.FromDoor)
	assert.True(t, req.SnapshotOpenWorld)
	require.NotNil(t, req.Position)
	assert.Equal(t, common.Vec{X: 512, Y: 660}, *req.Position)

	_, ok = TakeSceneChangeRequest(w)
	assert.False(t, ok, "request is one-shot")
}

func TestTransitionCooldownAfterSpawnInZone(t *testing.T) {
	w, p, _, b, door := newTransitionWorld(t)
	sys := NewTransitionSystem(nil, true)

	ArmCooldown(w, p, common.RectFromCenter(300, 316, 28, 20))
	cooldown, ok := ecs.Get(w, p, component.TransitionCooldownComponent.Kind())
	require.True(t, ok)
	assert.True(t, cooldown.Active)
	assert.Equal(t, uint64(b), cooldown.Door)

	door.PlayerInZone = true
	sys.Update(w)
	_, ok = TakeSceneChangeRequest(w)
	assert.False(t, ok, "spawned inside the zone")

	door.PlayerInZone = false
	sys.Update(w)
	assert.False(t, cooldown.Active)

	door.PlayerInZone = true
	sys.Update(w)
	_, ok = TakeSceneChangeRequest(w)
	assert.True(t, ok)
}

func TestTransitionScreenEdgeExit(t *testing.T) {
	w, _, pt, _, _ := newTransitionWorld(t)
	exits := []levels.Exit{{Edge: levels.EdgeBottom, TargetScene: "House1"}}
	sys := NewTransitionSystem(exits, true)

	sys.Update(w)
	_, ok := TakeSceneChangeRequest(w)
	assert.False(t, ok)

	pt.Y = common.BaseHeight + 1
	sys.Update(w)
	req, ok := TakeSceneChangeRequest(w)
	require.True(t, ok)
	assert.Equal(t, "House1", req.Target)
	assert.Empty(t, req.FromDoor)
	assert.False(t, req.SnapshotOpenWorld)
}

func TestAutosaveInterval(t *testing.T) {
	saves := 0
	sys := NewAutosaveSystem(3, func() { saves++ })
	for i := 0; i < 10; i++ {
		sys.Update(nil)
	}
	assert.Equal(t, 3, saves)

	NewAutosaveSystem(0, func() { t.Fatal("disabled autosave ran") }).Update(nil)
}
