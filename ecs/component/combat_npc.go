package component

import (
	"time"

	"github.com/milk9111/overworld/combat"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/player"
)

type EncounterState int

const (
	EncounterWatching EncounterState = iota
	EncounterEngaged
	EncounterFled
)

func (s EncounterState) String() string {
	switch s {
	case EncounterEngaged:
		return "engaged"
	case EncounterFled:
		return "fled"
	default:
		return "watching"
	}
}

type CombatNPC struct {
	ID            string
	Name          string
	Data          combat.Data
	SightAngle    float64
	SightDistance float64
	Facing        player.Facing
	State         EncounterState
	// Rearm counts down while fled; the NPC watches again at zero.
	Rearm time.Duration
}

var CombatNPCComponent = NewComponent[CombatNPC]()

type Patrol struct {
	Waypoints []common.Vec
	Speed     float64
	Wait      time.Duration
	Target    int
	Waiting   time.Duration
}

var PatrolComponent = NewComponent[Patrol]()
