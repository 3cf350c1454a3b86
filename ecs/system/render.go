package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

const captionScale = 2

var captionFace = text.NewGoXFace(basicfont.Face7x13)

type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// Draw paints sprites and captions in ascending render layer. Ties keep
// entity creation order.
func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !ecs.IsAlive(w, r.camEntity) {
		r.camEntity, _ = ecs.First(w, component.CameraComponent.Kind())
	}
	camX, camY := 0.0, 0.0
	zoom := 1.0
	if camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind()); ok {
		camX = camTransform.X
		camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok && camComp.Zoom > 0 {
		zoom = camComp.Zoom
	}

	entities := ecs.Query(w, component.TransformComponent.Kind(), component.RenderLayerComponent.Kind())
	SortByLayer(entities, func(e ecs.Entity) int {
		layer, _ := ecs.Get(w, e, component.RenderLayerComponent.Kind())
		return layer.Index
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		screenSpace := ecs.Has(w, e, component.ScreenSpaceComponent.Kind())

		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			if screenSpace {
				drawSprite(screen, t, s, 0, 0, 1)
			} else {
				drawSprite(screen, t, s, camX, camY, zoom)
			}
		}
		if c, ok := ecs.Get(w, e, component.CaptionComponent.Kind()); ok && c.Text != "" {
			drawCaption(screen, t, c)
		}
	}
}

// SortByLayer orders entities by layer, then by id.
func SortByLayer(entities []ecs.Entity, layer func(ecs.Entity) int) {
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layer(entities[i]), layer(entities[j])
		if li != lj {
			return li < lj
		}
		return uint32(entities[i]) < uint32(entities[j])
	})
}

func drawSprite(screen *ebiten.Image, t *component.Transform, s *component.Sprite, camX, camY, zoom float64) {
	if s.Image == nil || s.Hidden {
		return
	}
	img := s.Image
	if s.UseSource {
		if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
			img = sub
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-s.OriginX, -s.OriginY)

	sx := t.ScaleX
	if sx == 0 {
		sx = 1
	}
	if s.FacingLeft {
		sx = -sx
	}
	sy := t.ScaleY
	if sy == 0 {
		sy = 1
	}

	op.GeoM.Scale(sx, sy)
	op.GeoM.Rotate(t.Rotation)
	op.GeoM.Scale(zoom, zoom)
	op.GeoM.Translate((t.X-camX)*zoom, (t.Y-camY)*zoom)
	if s.Alpha > 0 && s.Alpha < 1 {
		op.ColorScale.ScaleAlpha(float32(s.Alpha))
	}
	screen.DrawImage(img, op)
}

func drawCaption(screen *ebiten.Image, t *component.Transform, c *component.Caption) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(captionScale, captionScale)
	op.GeoM.Translate(t.X, t.Y)
	col := c.Color
	if col == nil {
		col = color.White
	}
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, c.Text, captionFace, op)
}
