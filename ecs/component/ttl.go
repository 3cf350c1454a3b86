package component

// TTL destroys its entity after Frames ticks. Rise moves the entity up by
// that many pixels per tick.
type TTL struct {
	Frames int
	Rise   float64
}

var TTLComponent = NewComponent[TTL]()
