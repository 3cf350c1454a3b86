package entity

import (
	"fmt"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/render"
	"github.com/milk9111/overworld/levels"
)

func NewBackground(w *ecs.World, lib *render.Library, bg levels.Background) (ecs.Entity, error) {
	img, err := lib.Image(bg.Image)
	if err != nil {
		return 0, fmt.Errorf("background: %w", err)
	}
	e := ecs.CreateEntity(w)
	bounds := img.Bounds()
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: bg.X, Y: bg.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("background: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:   img,
		OriginX: float64(bounds.Dx()) / 2,
		OriginY: float64(bounds.Dy()) / 2,
		Alpha:   bg.AlphaOrDefault(),
	}); err != nil {
		return 0, fmt.Errorf("background: add sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: common.DepthBackground}); err != nil {
		return 0, fmt.Errorf("background: add render layer: %w", err)
	}
	if err := ecs.Add(w, e, component.BackgroundTagComponent.Kind(), &component.BackgroundTag{}); err != nil {
		return 0, fmt.Errorf("background: add tag: %w", err)
	}
	return e, nil
}

// NewCaption places screen-space text, such as an area name.
func NewCaption(w *ecs.World, c levels.Caption) (ecs.Entity, error) {
	hex := c.Color
	if hex == "" {
		hex = "#ffffff"
	}
	col, err := ParseHexColor(hex)
	if err != nil {
		return 0, fmt.Errorf("caption: %w", err)
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: c.X, Y: c.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("caption: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.CaptionComponent.Kind(), &component.Caption{Text: c.Text, Color: col}); err != nil {
		return 0, fmt.Errorf("caption: add caption: %w", err)
	}
	if err := ecs.Add(w, e, component.ScreenSpaceComponent.Kind(), &component.ScreenSpace{}); err != nil {
		return 0, fmt.Errorf("caption: add screen space: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: common.DepthUI}); err != nil {
		return 0, fmt.Errorf("caption: add render layer: %w", err)
	}
	return e, nil
}

// NewLevelBounds walls the screen edges that have no exit.
func NewLevelBounds(w *ecs.World, exits []levels.Exit) (ecs.Entity, error) {
	open := make(map[string]bool, len(exits))
	for _, exit := range exits {
		open[string(exit.Edge)] = true
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  common.BaseWidth,
		Height: common.BaseHeight,
		Open:   open,
	}); err != nil {
		return 0, fmt.Errorf("level bounds: %w", err)
	}
	return e, nil
}
