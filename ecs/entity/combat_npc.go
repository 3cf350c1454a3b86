package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/render"
	"github.com/milk9111/overworld/levels"
	"github.com/milk9111/overworld/player"
)

// NewCombatNPC places a hostile that patrols and watches a sight cone.
func NewCombatNPC(w *ecs.World, lib *render.Library, c levels.CombatNPC) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	fail := func(err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("combat npc %q: %w", c.ID, err)
	}

	depth := levels.DefaultCombatDepth
	if c.Depth != nil {
		depth = *c.Depth
	}
	if _, err := addPlacement(w, lib, e, c.Placement, depth); err != nil {
		return fail(err)
	}
	if c.Depth == nil {
		if err := ecs.Add(w, e, component.DepthOverrideComponent.Kind(), &component.DepthOverride{Depth: depth}); err != nil {
			return fail(fmt.Errorf("add depth override: %w", err))
		}
	}
	if err := addNPCAnimation(w, lib, e, c.Animation); err != nil {
		return fail(err)
	}

	if c.HasCollision {
		size := c.BodySize()
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width:  size.Width,
			Height: size.Height,
		}); err != nil {
			return fail(fmt.Errorf("add physics body: %w", err))
		}
	}

	name := c.Name
	if name == "" {
		name = c.ID
	}
	if err := ecs.Add(w, e, component.CombatNPCComponent.Kind(), &component.CombatNPC{
		ID:            c.ID,
		Name:          name,
		Data:          c.CombatData,
		SightAngle:    c.SightAngle(),
		SightDistance: c.SightDistance(),
		Facing:        player.Facing(c.Facing()),
		State:         component.EncounterWatching,
	}); err != nil {
		return fail(fmt.Errorf("add combat npc: %w", err))
	}

	if c.PatrolData != nil && len(c.PatrolData.Waypoints) > 1 {
		waypoints := make([]common.Vec, len(c.PatrolData.Waypoints))
		copy(waypoints, c.PatrolData.Waypoints)
		if err := ecs.Add(w, e, component.PatrolComponent.Kind(), &component.Patrol{
			Waypoints: waypoints,
			Speed:     c.PatrolData.SpeedOrDefault(),
			Wait:      time.Duration(c.PatrolData.WaitOrDefault()) * time.Millisecond,
		}); err != nil {
			return fail(fmt.Errorf("add patrol: %w", err))
		}
	}
	return e, nil
}
