package entity

import (
	"fmt"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/dialog"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/render"
	"github.com/milk9111/overworld/levels"
)

const idleClip = "idle"

// NewNPC places a talkable character. NPCs sort by Y with the player
// unless the level pins a depth.
func NewNPC(w *ecs.World, lib *render.Library, n levels.NPC) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if _, err := addPlacement(w, lib, e, n.Placement, common.DepthBase); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("npc %q: %w", n.ID, err)
	}
	if n.Depth == nil {
		if err := ecs.Add(w, e, component.DepthSortedComponent.Kind(), &component.DepthSorted{}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("npc %q: add depth sorted: %w", n.ID, err)
		}
	}
	if err := addNPCAnimation(w, lib, e, n.Animation); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("npc %q: %w", n.ID, err)
	}

	name := n.Name
	if name == "" {
		name = dialog.DisplayName(n.ID)
	}
	if err := ecs.Add(w, e, component.NPCComponent.Kind(), &component.NPC{
		ID:           n.ID,
		Name:         name,
		Interactable: n.IsInteractable(),
	}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("npc %q: add npc: %w", n.ID, err)
	}
	return e, nil
}

func addNPCAnimation(w *ecs.World, lib *render.Library, e ecs.Entity, a *levels.Animation) error {
	if a == nil || len(a.Frames) == 0 {
		return nil
	}
	clip, err := lib.KeyClip(a.Frames, a.FrameRateOrDefault(), a.RepeatOrDefault())
	if err != nil {
		return fmt.Errorf("animation %q: %w", a.Key, err)
	}
	anim := &component.Animation{Clips: map[string]component.AnimationClip{idleClip: clip}}
	anim.Play(idleClip)
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), anim); err != nil {
		return fmt.Errorf("add animation: %w", err)
	}
	return nil
}
