package component

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/overworld/common"
)

// PhysicsBody stores Chipmunk2D runtime data for a moving body. The box is
// OffsetX/OffsetY from the transform, centered unless AlignTopLeft is set.
type PhysicsBody struct {
	Body         *cp.Body
	Shape        *cp.Shape
	Width        float64
	Height       float64
	OffsetX      float64
	OffsetY      float64
	AlignTopLeft bool
}

func (p PhysicsBody) Rect(t Transform) common.Rect {
	if p.AlignTopLeft {
		return common.Rect{X: t.X + p.OffsetX, Y: t.Y + p.OffsetY, Width: p.Width, Height: p.Height}
	}
	return common.RectFromCenter(t.X+p.OffsetX, t.Y+p.OffsetY, p.Width, p.Height)
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Colliders are static world-space boxes the player cannot walk through.
type Colliders struct {
	Rects  []common.Rect
	Shapes []*cp.Shape
}

var CollidersComponent = NewComponent[Colliders]()

// PassThrough boxes put the player behind the owner while overlapped.
type PassThrough struct {
	Rects []common.Rect
}

var PassThroughComponent = NewComponent[PassThrough]()

// LevelBounds walls off every screen edge that has no exit.
type LevelBounds struct {
	Width  float64
	Height float64
	Open   map[string]bool
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
