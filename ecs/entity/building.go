package entity

import (
	"fmt"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/render"
	"github.com/milk9111/overworld/levels"
)

// NewBuilding places a building and, when its door is enabled, the door
// state the door and physics systems drive.
func NewBuilding(w *ecs.World, lib *render.Library, b levels.Building) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	closed, err := addPlacement(w, lib, e, b.Placement, common.DepthStatic)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("building %q: %w", b.ID, err)
	}
	if b.Door == nil || !b.Door.Enabled {
		return e, nil
	}

	door := &component.Door{
		BuildingID:     b.ID,
		State:          component.DoorClosed,
		ClosedImage:    closed,
		OpenImage:      closed,
		Center:         b.Position(),
		CloseDistance:  b.Door.CloseDistanceOrDefault(),
		TargetScene:    b.Door.TargetScene,
		TargetPosition: b.Door.TargetPosition,
	}
	if b.Door.OpenTexture != "" {
		open, err := lib.Image(b.Door.OpenTexture)
		if err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("building %q: door: %w", b.ID, err)
		}
		door.OpenImage = open
	}
	if z := b.Door.TriggerZone; z != nil {
		door.Trigger = z.Rect(b.Position())
		door.HasTrigger = true
	}
	if z := b.Door.InteractionZone; z != nil && b.Door.TargetScene != "" {
		door.Interaction = z.Rect(b.Position())
		door.HasInteraction = true
	}
	if err := ecs.Add(w, e, component.DoorComponent.Kind(), door); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("building %q: add door: %w", b.ID, err)
	}
	return e, nil
}

func NewProp(w *ecs.World, lib *render.Library, p levels.Prop) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if _, err := addPlacement(w, lib, e, p.Placement, common.DepthStatic); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("prop %q: %w", p.ID, err)
	}
	return e, nil
}
