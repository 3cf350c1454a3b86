package main

import (
	"fmt"

	"github.com/milk9111/overworld/combat"
	"github.com/milk9111/overworld/player"
	"github.com/milk9111/overworld/session"
)

// previewEffects applies actions to a throwaway player and registry and
// records a line for each so the previewer can show what happened.
type previewEffects struct {
	player   *player.State
	registry *session.Registry
	log      []string
}

func (fx *previewEffects) note(format string, args ...any) {
	fx.log = append(fx.log, fmt.Sprintf(format, args...))
}

func (fx *previewEffects) GiveItem(item string) {
	fx.player.AddItem(item)
	fx.note("giveItem %s", item)
}

func (fx *previewEffects) RemoveItem(item string) {
	n := fx.player.RemoveItem(item)
	fx.note("removeItem %s (%d removed)", item, n)
}

func (fx *previewEffects) GiveQuest(quest string) {
	if !fx.player.HasQuest(quest) {
		fx.player.AddQuest(quest)
	}
	fx.note("giveQuest %s", quest)
}

func (fx *previewEffects) SetFlag(flag string, value any) {
	fx.registry.SetFlag(flag, value)
	fx.note("setFlag %s = %v", flag, value)
}

func (fx *previewEffects) ChangeScene(scene string) {
	fx.note("changeScene %s", scene)
}

func (fx *previewEffects) GiveGold(amount int) {
	fx.player.AddGold(amount)
	fx.note("giveGold %+d (now %d)", amount, fx.player.Gold)
}

func (fx *previewEffects) StartCombat(data combat.Data) {
	fx.note("startCombat %s (%s)", data.EnemyID, data.ModeOrDefault())
}

func (fx *previewEffects) FleeCombat() {
	fx.note("fleeCombat")
}
