package system

import (
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

const DefaultInteractDistance = 60

// InteractionSystem tracks the closest talkable NPC and raises a talk
// request when the player presses interact.
type InteractionSystem struct {
	distance float64
}

func NewInteractionSystem(distance float64) *InteractionSystem {
	if distance <= 0 {
		distance = DefaultInteractDistance
	}
	return &InteractionSystem{distance: distance}
}

func (is *InteractionSystem) FreezesWithGameplay() bool { return true }

func (is *InteractionSystem) Update(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	pos := common.Vec{X: pt.X, Y: pt.Y}

	best, bestDist := ecs.Entity(0), is.distance
	ecs.ForEach2(w, component.NPCComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, npc *component.NPC, t *component.Transform) {
		if !npc.Interactable {
			return
		}
		if d := common.Distance(pos, common.Vec{X: t.X, Y: t.Y}); d <= bestDist {
			best, bestDist = e, d
		}
	})

	if best == 0 {
		ecs.Remove(w, player, component.InteractionFocusComponent.Kind())
		return
	}
	focus := &component.InteractionFocus{Target: uint64(best), Distance: bestDist}
	if err := ecs.Add(w, player, component.InteractionFocusComponent.Kind(), focus); err != nil {
		return
	}

	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok || !input.Interact {
		return
	}
	if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok && p.Frozen {
		return
	}
	npc, _ := ecs.Get(w, best, component.NPCComponent.Kind())
	w.Events().Push(ecs.Event{Kind: ecs.EventTalkRequested, Entity: best, Data: npc.ID})
}
