package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is drawn with its origin at the entity transform. Alpha outside
// (0, 1) draws fully opaque.
type Sprite struct {
	Image      *ebiten.Image
	Source     image.Rectangle
	UseSource  bool
	OriginX    float64
	OriginY    float64
	FacingLeft bool
	Alpha      float64
	Hidden     bool
}

var SpriteComponent = NewComponent[Sprite]()
