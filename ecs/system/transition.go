package system

import (
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/levels"
)

// TransitionSystem turns an occupied door interaction zone or a crossed
// screen edge into a one-shot SceneChangeRequest for the scene to consume.
type TransitionSystem struct {
	exits     []levels.Exit
	openWorld bool
	width     float64
	height    float64
}

func NewTransitionSystem(exits []levels.Exit, openWorld bool) *TransitionSystem {
	return &TransitionSystem{
		exits:     exits,
		openWorld: openWorld,
		width:     common.BaseWidth,
		height:    common.BaseHeight,
	}
}

func (ts *TransitionSystem) FreezesWithGameplay() bool { return true }

func (ts *TransitionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if _, pending := ecs.First(w, component.SceneChangeRequestComponent.Kind()); pending {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	// Spawned inside a zone: wait until the player steps out.
	if cooldown, ok := ecs.Get(w, player, component.TransitionCooldownComponent.Kind()); ok && cooldown.Active {
		door, ok := ecs.Get(w, ecs.Entity(cooldown.Door), component.DoorComponent.Kind())
		if ok && door.PlayerInZone {
			return
		}
		cooldown.Active = false
		cooldown.Door = 0
	}

	requested := false
	ecs.ForEach(w, component.DoorComponent.Kind(), func(_ ecs.Entity, door *component.Door) {
		if requested || !door.PlayerInZone || !door.HasInteraction || door.TargetScene == "" {
			return
		}
		requested = true
		ts.request(w, component.SceneChangeRequest{
			Target:            door.TargetScene,
			Position:          door.TargetPosition,
			FromDoor:          door.BuildingID,
			SnapshotOpenWorld: ts.openWorld,
		})
	})
	if requested {
		return
	}

	pos := common.Vec{X: pt.X, Y: pt.Y}
	for _, exit := range ts.exits {
		if exit.TargetScene == "" || !exit.Crossed(pos, ts.width, ts.height) {
			continue
		}
		ts.request(w, component.SceneChangeRequest{Target: exit.TargetScene, Position: exit.TargetPosition})
		return
	}
}

func (ts *TransitionSystem) request(w *ecs.World, req component.SceneChangeRequest) {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.SceneChangeRequestComponent.Kind(), &req)
}

// TakeSceneChangeRequest removes and returns the pending request, if any.
func TakeSceneChangeRequest(w *ecs.World) (component.SceneChangeRequest, bool) {
	e, ok := ecs.First(w, component.SceneChangeRequestComponent.Kind())
	if !ok {
		return component.SceneChangeRequest{}, false
	}
	req, _ := ecs.Get(w, e, component.SceneChangeRequestComponent.Kind())
	out := *req
	ecs.DestroyEntity(w, e)
	return out, true
}

// ArmCooldown locks out any interaction zone the player already overlaps.
func ArmCooldown(w *ecs.World, player ecs.Entity, playerBox common.Rect) {
	ecs.ForEach(w, component.DoorComponent.Kind(), func(e ecs.Entity, door *component.Door) {
		if !door.HasInteraction || !door.Interaction.Intersects(playerBox) {
			return
		}
		_ = ecs.Add(w, player, component.TransitionCooldownComponent.Kind(), &component.TransitionCooldown{Active: true, Door: uint64(e)})
	})
}
