package component

// Input stores per-frame input state for an entity.
type Input struct {
	MoveX    float64
	MoveY    float64
	Interact bool
	// Vertical is true when the most recent axis press was up or down.
	Vertical bool
}

var InputComponent = NewComponent[Input]()
