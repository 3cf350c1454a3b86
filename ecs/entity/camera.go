package entity

import (
	"fmt"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/render"
)

const cameraPrefab = "camera.yaml"

func NewCamera(w *ecs.World, lib *render.Library) (ecs.Entity, error) {
	return BuildEntity(w, lib, cameraPrefab)
}

func NewCameraAt(w *ecs.World, lib *render.Library, x, y float64) (ecs.Entity, error) {
	camera, err := NewCamera(w, lib)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, camera, x, y, 0); err != nil {
		return 0, fmt.Errorf("camera: override transform: %w", err)
	}
	return camera, nil
}
