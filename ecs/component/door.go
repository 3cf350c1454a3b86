package component

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/overworld/common"
)

type DoorState int

const (
	DoorClosed DoorState = iota
	DoorOpen
)

func (s DoorState) String() string {
	if s == DoorOpen {
		return "open"
	}
	return "closed"
}

// Door belongs to a building. Without a trigger zone, occupancy falls back
// to the player being within CloseDistance of Center.
type Door struct {
	BuildingID    string
	State         DoorState
	ClosedImage   *ebiten.Image
	OpenImage     *ebiten.Image
	Center        common.Vec
	Trigger       common.Rect
	HasTrigger    bool
	CloseDistance float64

	Interaction    common.Rect
	HasInteraction bool
	Sensor         *cp.Shape
	// PlayerInZone is maintained by the physics sensor callbacks.
	PlayerInZone bool

	TargetScene    string
	TargetPosition *common.Vec
}

var DoorComponent = NewComponent[Door]()
