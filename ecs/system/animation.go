package system

import (
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		clip, ok := anim.Clips[anim.Current]
		if !ok || len(clip.Frames) == 0 {
			return
		}
		StepAnimation(anim)
		if anim.Frame < len(clip.Frames) && clip.Frames[anim.Frame] != nil {
			sprite.Image = clip.Frames[anim.Frame]
		}
	})
}

// StepAnimation advances the current clip by one tick. A clip that runs out
// of repeats holds its last frame and stops playing.
func StepAnimation(anim *component.Animation) {
	if anim == nil || !anim.Playing {
		return
	}
	clip, ok := anim.Clips[anim.Current]
	if !ok || len(clip.Frames) == 0 {
		return
	}
	fps := clip.FPS
	if fps <= 0 {
		fps = 1
	}
	ticksPerFrame := int(common.TPS / fps)
	if ticksPerFrame < 1 {
		ticksPerFrame = 1
	}

	anim.FrameTimer++
	if anim.FrameTimer < ticksPerFrame {
		return
	}
	anim.FrameTimer = 0
	anim.Frame++
	if anim.Frame < len(clip.Frames) {
		return
	}
	if clip.Loops() {
		anim.Frame = 0
		return
	}
	anim.Played++
	if anim.Played > clip.Repeat {
		anim.Frame = len(clip.Frames) - 1
		anim.Playing = false
		return
	}
	anim.Frame = 0
}
