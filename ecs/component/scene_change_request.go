package component

import "github.com/milk9111/overworld/common"

// SceneChangeRequest is a one-shot request emitted by gameplay systems to
// ask the scene to hand control to another scene after the tick.
type SceneChangeRequest struct {
	Target   string
	Position *common.Vec
	FromDoor string
	// SnapshotOpenWorld stores the player's position so a later return to
	// the open world resumes there.
	SnapshotOpenWorld bool
}

var SceneChangeRequestComponent = NewComponent[SceneChangeRequest]()

// TransitionCooldown stops a player spawned inside an interaction zone from
// retriggering it before stepping out.
type TransitionCooldown struct {
	Active bool
	Door   uint64
}

var TransitionCooldownComponent = NewComponent[TransitionCooldown]()
