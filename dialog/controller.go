package dialog

import (
	_ "embed"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/overworld/combat"
)

//go:embed builtin.json
var builtinJSON []byte

// Builtin returns the fallback dialogs used when a scene's dialog file is
// missing or malformed.
func Builtin() File {
	f, err := Parse(builtinJSON)
	if err != nil {
		panic(err)
	}
	return f
}

// DefaultNode is the node for an NPC without authored dialog.
func DefaultNode(npcID string) *Node {
	if d, ok := Builtin()[npcID]; ok && d.Default != nil {
		n := *d.Default
		n.Choices = nil
		return &n
	}
	return &Node{
		ID:   npcID + "_default",
		Text: fmt.Sprintf("Hello there! I'm %s. How can I help you?", npcID),
	}
}

// Controller picks the node to show for an NPC in one scene.
type Controller struct {
	file  File
	exprs *ExprCache
	log   logrus.FieldLogger
}

// NewController falls back to the built-in dialogs when file is nil.
func NewController(file File, log logrus.FieldLogger) *Controller {
	if file == nil {
		file = Builtin()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{file: file, exprs: NewExprCache(), log: log}
}

func (c *Controller) File() File {
	if c == nil {
		return nil
	}
	return c.file
}

// GetDialog returns the first contextual variant whose conditions match, in
// authored order, then the NPC's default, then a generic greeting. A
// condition that fails to evaluate counts as not matching.
func (c *Controller) GetDialog(npcID string, st State) *Node {
	if c == nil {
		return nil
	}
	d, ok := c.file[npcID]
	if !ok {
		return DefaultNode(npcID)
	}

	for i := range d.Contextual {
		v := &d.Contextual[i]
		matched, err := v.Conditions.Match(npcID, st, c.exprs)
		if err != nil {
			c.log.WithError(err).WithFields(logrus.Fields{"npc": npcID, "variant": v.ID}).Warn("dialog: condition failed")
			continue
		}
		if matched {
			return &v.Node
		}
	}

	if d.Default != nil {
		return d.Default
	}
	return DefaultNode(npcID)
}

// EncounterNode is shown when a combat NPC spots the player.
func EncounterNode(npcID, name string, data combat.Data) *Node {
	if name == "" {
		name = npcID
	}
	return &Node{
		ID:   "combat-" + npcID,
		Text: fmt.Sprintf("%s spots you! \"Prepare for battle!\"", name),
		Choices: []Choice{
			{Text: "Fight!", Actions: []Action{{Kind: ActionStartCombat, Combat: &data}}},
			{Text: "Run away", Actions: []Action{{Kind: ActionFleeCombat}}},
		},
	}
}
