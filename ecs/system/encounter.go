package system

import (
	"time"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/player"
)

const (
	tickDuration = time.Second / common.TPS
	// FleeRearm is how long a fled-from NPC ignores the player.
	FleeRearm = 5 * time.Second

	spottedFlashFrames   = 30
	spottedFlashInterval = 5
)

// EncounterSystem walks combat NPCs along their patrols and raises an
// encounter when the player enters a watching NPC's sight cone.
type EncounterSystem struct {
	dt time.Duration
}

func NewEncounterSystem() *EncounterSystem {
	return &EncounterSystem{dt: tickDuration}
}

func (es *EncounterSystem) FreezesWithGameplay() bool { return true }

func (es *EncounterSystem) Update(w *ecs.World) {
	var playerPos common.Vec
	hasPlayer := false
	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			playerPos = common.Vec{X: t.X, Y: t.Y}
			hasPlayer = true
		}
	}

	ecs.ForEach2(w, component.CombatNPCComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.CombatNPC, t *component.Transform) {
		switch c.State {
		case component.EncounterEngaged:
			return
		case component.EncounterFled:
			c.Rearm -= es.dt
			if c.Rearm > 0 {
				return
			}
			c.Rearm = 0
			c.State = component.EncounterWatching
		}

		if patrol, ok := ecs.Get(w, e, component.PatrolComponent.Kind()); ok {
			pos, facing := StepPatrol(patrol, common.Vec{X: t.X, Y: t.Y}, es.dt, c.Facing)
			t.X, t.Y = pos.X, pos.Y
			c.Facing = facing
			if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
				s.FacingLeft = facing == player.FacingLeft
			}
		}

		if hasPlayer && InLineOfSight(common.Vec{X: t.X, Y: t.Y}, c.Facing, c.SightAngle, c.SightDistance, playerPos) {
			c.State = component.EncounterEngaged
			_ = ecs.Add(w, e, component.FlashComponent.Kind(), &component.Flash{Frames: spottedFlashFrames, Interval: spottedFlashInterval})
			w.Events().Push(ecs.Event{Kind: ecs.EventEncounter, Entity: e, Data: c.ID})
		}
	})
}

// Flee makes the NPC ignore the player for rearm.
func Flee(c *component.CombatNPC, rearm time.Duration) {
	c.State = component.EncounterFled
	c.Rearm = rearm
}

// FacingAngle is the screen-space angle of a facing in degrees.
func FacingAngle(f player.Facing) float64 {
	switch f {
	case player.FacingUp:
		return -90
	case player.FacingLeft:
		return 180
	case player.FacingRight:
		return 0
	default:
		return 90
	}
}

// InLineOfSight reports whether target lies within distance of pos and
// inside the cone of angleDeg centered on facing.
func InLineOfSight(pos common.Vec, facing player.Facing, angleDeg, distance float64, target common.Vec) bool {
	d := common.Distance(pos, target)
	if d > distance {
		return false
	}
	if d == 0 {
		return true
	}
	return common.AngleDiffDeg(common.AngleDeg(pos, target), FacingAngle(facing)) <= angleDeg/2
}

// StepPatrol moves pos toward the current waypoint, waiting at each one
// before heading to the next. It returns the new position and facing.
func StepPatrol(p *component.Patrol, pos common.Vec, dt time.Duration, facing player.Facing) (common.Vec, player.Facing) {
	if len(p.Waypoints) < 2 {
		return pos, facing
	}
	if p.Waiting > 0 {
		p.Waiting -= dt
		if p.Waiting < 0 {
			p.Waiting = 0
		}
		return pos, facing
	}
	p.Target %= len(p.Waypoints)
	target := p.Waypoints[p.Target]
	delta := target.Sub(pos)
	dist := delta.Len()
	step := p.Speed * dt.Seconds()
	if dist <= step {
		p.Target = (p.Target + 1) % len(p.Waypoints)
		p.Waiting = p.Wait
		return target, facingToward(delta, facing)
	}
	next := common.Vec{X: pos.X + delta.X/dist*step, Y: pos.Y + delta.Y/dist*step}
	return next, facingToward(delta, facing)
}

func facingToward(delta common.Vec, current player.Facing) player.Facing {
	if delta.X == 0 && delta.Y == 0 {
		return current
	}
	if abs(delta.X) > abs(delta.Y) {
		if delta.X < 0 {
			return player.FacingLeft
		}
		return player.FacingRight
	}
	if delta.Y < 0 {
		return player.FacingUp
	}
	return player.FacingDown
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
