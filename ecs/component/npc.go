package component

type NPC struct {
	ID           string
	Name         string
	Interactable bool
}

var NPCComponent = NewComponent[NPC]()

// InteractionFocus names the NPC entity the player would talk to on E.
type InteractionFocus struct {
	Target   uint64
	Distance float64
}

var InteractionFocusComponent = NewComponent[InteractionFocus]()
