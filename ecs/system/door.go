package system

import (
	"sort"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

type DoorEdge int

const (
	DoorUnchanged DoorEdge = iota
	DoorEntered
	DoorExited
)

// DoorTracker remembers which buildings' trigger zones hold the player.
// Each building toggles on its own edges, so overlapping zones do not
// interfere.
type DoorTracker struct {
	inside map[string]bool
}

func NewDoorTracker() *DoorTracker {
	return &DoorTracker{inside: map[string]bool{}}
}

// Update records the occupancy for building and reports the edge, if any.
func (t *DoorTracker) Update(building string, inside bool) DoorEdge {
	if t.inside == nil {
		t.inside = map[string]bool{}
	}
	was := t.inside[building]
	switch {
	case inside && !was:
		t.inside[building] = true
		return DoorEntered
	case !inside && was:
		delete(t.inside, building)
		return DoorExited
	}
	return DoorUnchanged
}

func (t *DoorTracker) Inside(building string) bool {
	return t.inside[building]
}

// Occupied lists the buildings currently holding the player, sorted.
func (t *DoorTracker) Occupied() []string {
	out := make([]string, 0, len(t.inside))
	for b := range t.inside {
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

func (t *DoorTracker) Reset() {
	clear(t.inside)
}

// DoorInside reports whether pos occupies the door's trigger zone, falling
// back to the close distance around the building when no zone is set.
func DoorInside(door *component.Door, pos common.Vec) bool {
	if door.HasTrigger {
		return door.Trigger.Contains(pos.X, pos.Y)
	}
	return common.Distance(door.Center, pos) <= door.CloseDistance
}

// DoorSystem opens a building's door when the player steps into its trigger
// zone and closes it when they leave.
type DoorSystem struct {
	tracker *DoorTracker
}

func NewDoorSystem() *DoorSystem {
	return &DoorSystem{tracker: NewDoorTracker()}
}

func (ds *DoorSystem) FreezesWithGameplay() bool { return true }

func (ds *DoorSystem) Tracker() *DoorTracker {
	return ds.tracker
}

func (ds *DoorSystem) Update(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	pos := common.Vec{X: pt.X, Y: pt.Y}

	ecs.ForEach(w, component.DoorComponent.Kind(), func(e ecs.Entity, door *component.Door) {
		switch ds.tracker.Update(door.BuildingID, DoorInside(door, pos)) {
		case DoorEntered:
			setDoorState(w, e, door, component.DoorOpen)
			w.Events().Push(ecs.Event{Kind: ecs.EventDoorOpened, Entity: e, Data: door.BuildingID})
			playSound(w, player, "door")
		case DoorExited:
			setDoorState(w, e, door, component.DoorClosed)
			w.Events().Push(ecs.Event{Kind: ecs.EventDoorClosed, Entity: e, Data: door.BuildingID})
		}
	})
}

func setDoorState(w *ecs.World, e ecs.Entity, door *component.Door, state component.DoorState) {
	door.State = state
	sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok {
		return
	}
	if state == component.DoorOpen && door.OpenImage != nil {
		sprite.Image = door.OpenImage
	} else if door.ClosedImage != nil {
		sprite.Image = door.ClosedImage
	}
}

func playSound(w *ecs.World, e ecs.Entity, name string) {
	if a, ok := ecs.Get(w, e, component.AudioComponent.Kind()); ok {
		a.Request(name)
	}
}
