package system

import (
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// TTLSystem counts down TTL components, drifting popups upward, and
// destroys entities when the TTL reaches zero.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var expired []ecs.Entity
	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if ttl.Frames > 0 {
			ttl.Frames--
			if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
				t.Y -= ttl.Rise
			}
			if ttl.Frames > 0 {
				return
			}
		}
		expired = append(expired, e)
	})
	for _, e := range expired {
		ecs.DestroyEntity(w, e)
	}
}
