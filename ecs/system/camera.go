package system

import (
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// CameraSystem keeps the camera transform at the top left of the view,
// following its target inside the level bounds.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
	viewW        float64
	viewH        float64
}

func NewCameraSystem(viewW, viewH float64) *CameraSystem {
	return &CameraSystem{viewW: viewW, viewH: viewH}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if !ecs.IsAlive(w, cs.camEntity) {
		cs.camEntity, _ = ecs.First(w, component.CameraComponent.Kind())
		cs.targetEntity = 0
	}
	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	if !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, camComp.TargetName)
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	boundsW, boundsH := float64(common.BaseWidth), float64(common.BaseHeight)
	if be, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		if b, ok := ecs.Get(w, be, component.LevelBoundsComponent.Kind()); ok && b.Width > 0 && b.Height > 0 {
			boundsW, boundsH = b.Width, b.Height
		}
	}

	zoom := camComp.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	goal := CameraOffset(common.Vec{X: target.X, Y: target.Y}, cs.viewW/zoom, cs.viewH/zoom, boundsW, boundsH)
	smooth := common.Clamp(camComp.Smoothness, 0, 1)
	if smooth == 0 {
		smooth = 1
	}
	camTransform.X = common.Lerp(camTransform.X, goal.X, smooth)
	camTransform.Y = common.Lerp(camTransform.Y, goal.Y, smooth)
}

// CameraOffset centers a view on target and clamps it inside the bounds. A
// view larger than the bounds pins to the origin.
func CameraOffset(target common.Vec, viewW, viewH, boundsW, boundsH float64) common.Vec {
	x := target.X - viewW/2
	y := target.Y - viewH/2
	return common.Vec{
		X: common.Clamp(x, 0, max(0, boundsW-viewW)),
		Y: common.Clamp(y, 0, max(0, boundsH-viewH)),
	}
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "player" || name == "" {
		if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
