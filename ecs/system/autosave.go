package system

import "github.com/milk9111/overworld/ecs"

// AutosaveSystem calls save every interval gameplay ticks.
type AutosaveSystem struct {
	interval int
	frames   int
	save     func()
}

func NewAutosaveSystem(interval int, save func()) *AutosaveSystem {
	return &AutosaveSystem{interval: interval, save: save}
}

func (as *AutosaveSystem) FreezesWithGameplay() bool { return true }

func (as *AutosaveSystem) Update(_ *ecs.World) {
	if as.interval <= 0 || as.save == nil {
		return
	}
	as.frames++
	if as.frames >= as.interval {
		as.frames = 0
		as.save()
	}
}
