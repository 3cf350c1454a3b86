package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/render"
	"github.com/milk9111/overworld/levels"
)

// addPlacement gives e the parts every placed level entity shares: a
// centered sprite, a draw depth and its authored bodies.
func addPlacement(w *ecs.World, lib *render.Library, e ecs.Entity, p levels.Placement, defaultDepth int) (*ebiten.Image, error) {
	img, err := lib.Image(p.Texture)
	if err != nil {
		return nil, err
	}
	scale := p.ScaleOrDefault()
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      p.X,
		Y:      p.Y,
		ScaleX: scale,
		ScaleY: scale,
	}); err != nil {
		return nil, fmt.Errorf("add transform: %w", err)
	}

	bounds := img.Bounds()
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:   img,
		OriginX: float64(bounds.Dx()) / 2,
		OriginY: float64(bounds.Dy()) / 2,
	}); err != nil {
		return nil, fmt.Errorf("add sprite: %w", err)
	}

	depth := defaultDepth
	if p.Depth != nil {
		depth = *p.Depth
		if err := ecs.Add(w, e, component.DepthOverrideComponent.Kind(), &component.DepthOverride{Depth: depth}); err != nil {
			return nil, fmt.Errorf("add depth override: %w", err)
		}
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: depth}); err != nil {
		return nil, fmt.Errorf("add render layer: %w", err)
	}

	solid, pass := PlacementBodies(p, float64(bounds.Dx()), float64(bounds.Dy()))
	if len(solid) > 0 {
		if err := ecs.Add(w, e, component.CollidersComponent.Kind(), &component.Colliders{Rects: solid}); err != nil {
			return nil, fmt.Errorf("add colliders: %w", err)
		}
	}
	if len(pass) > 0 {
		if err := ecs.Add(w, e, component.PassThroughComponent.Kind(), &component.PassThrough{Rects: pass}); err != nil {
			return nil, fmt.Errorf("add pass-through: %w", err)
		}
	}
	return img, nil
}

// PlacementBodies converts authored bodies to world boxes. The legacy
// physics block is measured from the scaled sprite's top left corner.
func PlacementBodies(p levels.Placement, texW, texH float64) (solid, pass []common.Rect) {
	scale := p.ScaleOrDefault()
	if p.Physics != nil && p.Physics.BodySize.Width > 0 && p.Physics.BodySize.Height > 0 {
		left := p.X - texW*scale/2
		top := p.Y - texH*scale/2
		solid = append(solid, common.Rect{
			X:      left + p.Physics.BodyOffset.X*scale,
			Y:      top + p.Physics.BodyOffset.Y*scale,
			Width:  p.Physics.BodySize.Width * scale,
			Height: p.Physics.BodySize.Height * scale,
		})
	}
	for _, b := range p.Bodies {
		r := common.RectFromCenter(p.X+b.X, p.Y+b.Y, b.Width, b.Height)
		switch b.Type {
		case levels.BodyPassThrough:
			pass = append(pass, r)
		default:
			solid = append(solid, r)
		}
	}
	return solid, pass
}
