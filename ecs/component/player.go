package component

import "github.com/milk9111/overworld/player"

type Player struct {
	Speed  float64
	Facing player.Facing
	Moving bool
	// Frozen suppresses movement while a dialog or menu owns input.
	Frozen bool
}

var PlayerComponent = NewComponent[Player]()
