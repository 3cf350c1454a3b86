package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/player"
)

// PlayerControllerSystem turns input into velocity, facing and the walk or
// idle clip.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pl *component.Player, input *component.Input, t *component.Transform) {
		vx, vy := 0.0, 0.0
		if !pl.Frozen {
			vx = input.MoveX * pl.Speed
			vy = input.MoveY * pl.Speed
		}
		pl.Moving = vx != 0 || vy != 0
		if pl.Moving {
			pl.Facing = FacingFor(input.MoveX, input.MoveY, pl.Facing)
		}

		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
			body.Body.SetVelocityVector(cp.Vector{X: vx, Y: vy})
			body.Body.SetAngle(0)
			body.Body.SetAngularVelocity(0)
		} else {
			t.X += vx / common.TPS
			t.Y += vy / common.TPS
		}

		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			if pl.Moving {
				anim.Play("walk-" + string(pl.Facing))
			} else {
				anim.Play("idle-" + string(pl.Facing))
			}
		}
	})
}

// FacingFor maps a single-axis move to a facing, keeping current when idle.
func FacingFor(moveX, moveY float64, current player.Facing) player.Facing {
	switch {
	case moveY < 0:
		return player.FacingUp
	case moveY > 0:
		return player.FacingDown
	case moveX < 0:
		return player.FacingLeft
	case moveX > 0:
		return player.FacingRight
	}
	return current
}
