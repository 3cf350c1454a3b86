package component

// Flash blinks a sprite for Frames ticks, toggling every Interval.
type Flash struct {
	Frames   int
	Interval int
	Timer    int
	On       bool
}

var FlashComponent = NewComponent[Flash]()
