package scene

import (
	"fmt"

	"github.com/milk9111/overworld/combat"
	"github.com/milk9111/overworld/dialog"
	"github.com/milk9111/overworld/player"
	"github.com/milk9111/overworld/session"
)

// effects applies dialog actions to the live player and the registry.
// Scene changes and combat are only recorded here; the level scene acts on
// them once the dialog has closed.
type effects struct {
	player   *player.State
	registry *session.Registry
	notify   func(msg string)

	scene  string
	combat *combat.Data
	fled   bool
}

var _ dialog.Effects = (*effects)(nil)

func (fx *effects) say(format string, args ...any) {
	if fx.notify != nil {
		fx.notify(fmt.Sprintf(format, args...))
	}
}

func (fx *effects) GiveItem(item string) {
	fx.player.AddItem(item)
	fx.say("Received %s", item)
}

func (fx *effects) RemoveItem(item string) {
	if fx.player.RemoveItem(item) > 0 {
		fx.say("Gave away %s", item)
	}
}

func (fx *effects) GiveQuest(quest string) {
	if fx.player.HasQuest(quest) {
		return
	}
	fx.player.AddQuest(quest)
	fx.say("New quest: %s", quest)
}

func (fx *effects) SetFlag(flag string, value any) {
	fx.registry.SetFlag(flag, value)
}

func (fx *effects) ChangeScene(scene string) {
	fx.scene = scene
}

func (fx *effects) GiveGold(amount int) {
	fx.player.AddGold(amount)
	if amount >= 0 {
		fx.say("+%d gold", amount)
	} else {
		fx.say("%d gold", amount)
	}
}

func (fx *effects) StartCombat(data combat.Data) {
	fx.combat = &data
}

func (fx *effects) FleeCombat() {
	fx.fled = true
}

// reset clears the per-conversation requests.
func (fx *effects) reset() {
	fx.scene = ""
	fx.combat = nil
	fx.fled = false
}
