package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/overworld/ecs/component"
)

// SheetClip builds a clip from consecutive frames of a sprite sheet.
func (l *Library) SheetClip(key string, first, count int, fps float64, repeat int) (component.AnimationClip, error) {
	if count <= 0 {
		return component.AnimationClip{}, fmt.Errorf("render: clip %q has no frames", key)
	}
	frames := make([]*ebiten.Image, 0, count)
	for i := first; i < first+count; i++ {
		img, err := l.Frame(key, i)
		if err != nil {
			return component.AnimationClip{}, err
		}
		frames = append(frames, img)
	}
	return component.AnimationClip{Frames: frames, FPS: fps, Repeat: repeat}, nil
}

// KeyClip builds a clip where each frame is its own texture.
func (l *Library) KeyClip(keys []string, fps float64, repeat int) (component.AnimationClip, error) {
	if len(keys) == 0 {
		return component.AnimationClip{}, fmt.Errorf("render: clip has no frames")
	}
	frames := make([]*ebiten.Image, 0, len(keys))
	for _, key := range keys {
		img, err := l.Image(key)
		if err != nil {
			return component.AnimationClip{}, err
		}
		frames = append(frames, img)
	}
	return component.AnimationClip{Frames: frames, FPS: fps, Repeat: repeat}, nil
}
