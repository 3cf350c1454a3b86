// Package scene hosts the director and the three kinds of scene it runs:
// walkable levels and the two combat encounters.
package scene

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/overworld/combat"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/player"
)

const (
	RhythmCombat = "RhythmCombat"
	TurnCombat   = "TurnCombat"

	tick = time.Second / common.TPS
)

// Scene is one screen the director can run. Exit is called once, before
// the next scene is built.
type Scene interface {
	Update() error
	Draw(screen *ebiten.Image)
	Exit()
}

// Positioned scenes report where the player stands, so a restart can put
// them back there.
type Positioned interface {
	PlayerPosition() (common.Vec, bool)
}

// Payload is handed to the scene being started.
type Payload struct {
	TargetPosition *common.Vec
	Combat         *CombatPayload
	Result         *CombatReturn
}

// CombatPayload carries an encounter into a combat scene.
type CombatPayload struct {
	Data           combat.Data
	Player         *player.State
	ReturnScene    string
	ReturnPosition common.Vec
	NPCID          string
}

// CombatReturn tells the level scene how the encounter went. The registry
// already holds the updated player by the time it arrives.
type CombatReturn struct {
	NPCID        string
	Result       combat.Result
	LevelsGained int
}

// Constructor builds a scene. Errors leave the previous scene running.
type Constructor func(d *Director, name string, p Payload) (Scene, error)

// CombatSceneFor picks the encounter variant.
func CombatSceneFor(data combat.Data) string {
	if data.ModeOrDefault() == combat.ModeTurn {
		return TurnCombat
	}
	return RhythmCombat
}
