package system

import (
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// FlashSystem blinks sprites that carry a Flash and restores them after.
type FlashSystem struct{}

func NewFlashSystem() *FlashSystem { return &FlashSystem{} }

func (s *FlashSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range ecs.Query(w, component.FlashComponent.Kind()) {
		f, _ := ecs.Get(w, e, component.FlashComponent.Kind())
		if f.Interval <= 0 {
			f.Interval = 1
		}
		f.Timer++
		if f.Timer >= f.Interval {
			f.Timer = 0
			f.On = !f.On
			f.Frames -= f.Interval
		}
		sprite, hasSprite := ecs.Get(w, e, component.SpriteComponent.Kind())
		if f.Frames <= 0 {
			ecs.Remove(w, e, component.FlashComponent.Kind())
			if hasSprite {
				sprite.Hidden = false
			}
			continue
		}
		if hasSprite {
			sprite.Hidden = f.On
		}
	}
}
