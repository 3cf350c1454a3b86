package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

const (
	popupFrames = 90
	popupRise   = 0.5
)

// NewPopup shows short floating feedback text in screen space, such as a
// gold reward.
func NewPopup(w *ecs.World, text string, x, y float64, clr color.Color) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("popup: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.CaptionComponent.Kind(), &component.Caption{Text: text, Color: clr}); err != nil {
		return 0, fmt.Errorf("popup: add caption: %w", err)
	}
	if err := ecs.Add(w, e, component.ScreenSpaceComponent.Kind(), &component.ScreenSpace{}); err != nil {
		return 0, fmt.Errorf("popup: add screen space: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: common.DepthUI + 1}); err != nil {
		return 0, fmt.Errorf("popup: add render layer: %w", err)
	}
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: popupFrames, Rise: popupRise}); err != nil {
		return 0, fmt.Errorf("popup: add ttl: %w", err)
	}
	return e, nil
}
