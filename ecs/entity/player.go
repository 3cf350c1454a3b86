package entity

import (
	"fmt"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/render"
	"github.com/milk9111/overworld/player"
)

const playerPrefab = "player.yaml"

func NewPlayer(w *ecs.World, lib *render.Library) (ecs.Entity, error) {
	return BuildEntity(w, lib, playerPrefab)
}

// NewPlayerAt builds the player at (x, y). Speed and facing come from the
// persistent state when one is given.
func NewPlayerAt(w *ecs.World, lib *render.Library, x, y float64, state *player.State) (ecs.Entity, error) {
	e, err := BuildEntity(w, lib, playerPrefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, x, y, 0); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	if state == nil {
		return e, nil
	}
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("player: prefab %q has no player component", playerPrefab)
	}
	if state.Speed > 0 {
		p.Speed = state.Speed
	}
	if state.Facing != "" {
		p.Facing = state.Facing
	}
	if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
		anim.Play("idle-" + string(p.Facing))
	}
	return e, nil
}
