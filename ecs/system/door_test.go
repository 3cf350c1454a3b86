package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

func TestDoorTrackerEdges(t *testing.T) {
	tr := NewDoorTracker()

	assert.Equal(t, DoorUnchanged, tr.Update("house1", false))
	assert.Equal(t, DoorEntered, tr.Update("house1", true))
	for i := 0; i < 5; i++ {
		assert.Equal(t, DoorUnchanged, tr.Update("house1", true), "still inside")
	}
	assert.Equal(t, DoorExited, tr.Update("house1", false))
	assert.Equal(t, DoorUnchanged, tr.Update("house1", false))
}

func TestDoorTrackerOverlappingBuildings(t *testing.T) {
	tr := NewDoorTracker()

	assert.Equal(t, DoorEntered, tr.Update("a", true))
	assert.Equal(t, DoorEntered, tr.Update("b", true))
	assert.Equal(t, []string{"a", "b"}, tr.Occupied())

	assert.Equal(t, DoorExited, tr.Update("a", false))
	assert.True(t, tr.Inside("b"))
	assert.False(t, tr.Inside("a"))

	tr.Reset()
	assert.Empty(t, tr.Occupied())
}

func TestDoorInside(t *testing.T) {
	zoned := &component.Door{HasTrigger: true, Trigger: common.Rect{X: 0, Y: 0, Width: 10, Height: 10}}
	assert.True(t, DoorInside(zoned, common.Vec{X: 5, Y: 5}))
	assert.False(t, DoorInside(zoned, common.Vec{X: 15, Y: 5}))

	ranged := &component.Door{Center: common.Vec{X: 100, Y: 100}, CloseDistance: 120}
	assert.True(t, DoorInside(ranged, common.Vec{X: 100, Y: 219}))
	assert.False(t, DoorInside(ranged, common.Vec{X: 100, Y: 221}))
}

func TestDoorSystemTogglesOncePerEdge(t *testing.T) {
	w := ecs.NewWorld()
	player := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	pt := &component.Transform{X: 0, Y: 0}
	require.NoError(t, ecs.Add(w, player, component.TransformComponent.Kind(), pt))

	building := ecs.CreateEntity(w)
	door := &component.Door{
		BuildingID: "house1",
		HasTrigger: true,
		Trigger:    common.Rect{X: 100, Y: 100, Width: 50, Height: 50},
	}
	require.NoError(t, ecs.Add(w, building, component.DoorComponent.Kind(), door))

	sys := NewDoorSystem()
	sys.Update(w)
	assert.Zero(t, w.Events().Len())

	pt.X, pt.Y = 120, 120
	sys.Update(w)
	events := w.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, ecs.EventDoorOpened, events[0].Kind)
	assert.Equal(t, "house1", events[0].Data)
	assert.Equal(t, component.DoorOpen, door.State)

	for i := 0; i < 5; i++ {
		sys.Update(w)
	}
	assert.Zero(t, w.Events().Len())

	pt.X = 0
	sys.Update(w)
	events = w.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, ecs.EventDoorClosed, events[0].Kind)
	assert.Equal(t, component.DoorClosed, door.State)
}
