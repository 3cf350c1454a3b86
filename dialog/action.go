package dialog

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/milk9111/overworld/combat"
)

var ErrUnknownAction = errors.New("dialog: unknown action type")

type ActionKind int

const (
	ActionGiveItem ActionKind = iota + 1
	ActionRemoveItem
	ActionGiveQuest
	ActionSetFlag
	ActionChangeScene
	ActionGiveGold
	ActionStartCombat
	ActionFleeCombat
)

var actionNames = map[ActionKind]string{
	ActionGiveItem:    "giveItem",
	ActionRemoveItem:  "removeItem",
	ActionGiveQuest:   "giveQuest",
	ActionSetFlag:     "setFlag",
	ActionChangeScene: "changeScene",
	ActionGiveGold:    "giveGold",
	ActionStartCombat: "startCombat",
	ActionFleeCombat:  "fleeCombat",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

func parseActionKind(s string) (ActionKind, bool) {
	for k, name := range actionNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Action is one side effect of a node or choice. Only the payload fields
// matching Kind are meaningful.
type Action struct {
	Kind   ActionKind
	Item   string
	Quest  string
	Flag   string
	Value  any
	Scene  string
	Amount int
	Combat *combat.Data
}

type actionJSON struct {
	Type       string          `json:"type"`
	Item       string          `json:"item,omitempty"`
	Quest      string          `json:"quest,omitempty"`
	Flag       string          `json:"flag,omitempty"`
	Value      json.RawMessage `json:"value,omitempty"`
	Scene      string          `json:"scene,omitempty"`
	Amount     int             `json:"amount,omitempty"`
	CombatData *combat.Data    `json:"combatData,omitempty"`
}

func (a *Action) UnmarshalJSON(data []byte) error {
	var raw actionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	kind, ok := parseActionKind(raw.Type)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownAction, raw.Type)
	}

	out := Action{
		Kind:   kind,
		Item:   raw.Item,
		Quest:  raw.Quest,
		Flag:   raw.Flag,
		Scene:  raw.Scene,
		Amount: raw.Amount,
		Combat: raw.CombatData,
	}
	if kind == ActionSetFlag {
		out.Value = true
		if len(raw.Value) > 0 {
			if err := json.Unmarshal(raw.Value, &out.Value); err != nil {
				return fmt.Errorf("dialog: setFlag %q value: %w", raw.Flag, err)
			}
		}
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*a = out
	return nil
}

func (a Action) MarshalJSON() ([]byte, error) {
	raw := actionJSON{
		Type:       a.Kind.String(),
		Item:       a.Item,
		Quest:      a.Quest,
		Flag:       a.Flag,
		Scene:      a.Scene,
		Amount:     a.Amount,
		CombatData: a.Combat,
	}
	if a.Kind == ActionSetFlag {
		v, err := json.Marshal(a.Value)
		if err != nil {
			return nil, err
		}
		raw.Value = v
	}
	return json.Marshal(raw)
}

// Validate checks that the payload required by Kind is present.
func (a Action) Validate() error {
	missing := func(field string) error {
		return fmt.Errorf("dialog: %s action missing %s", a.Kind, field)
	}
	switch a.Kind {
	case ActionGiveItem, ActionRemoveItem:
		if a.Item == "" {
			return missing("item")
		}
	case ActionGiveQuest:
		if a.Quest == "" {
			return missing("quest")
		}
	case ActionSetFlag:
		if a.Flag == "" {
			return missing("flag")
		}
	case ActionChangeScene:
		if a.Scene == "" {
			return missing("scene")
		}
	case ActionGiveGold, ActionFleeCombat:
	case ActionStartCombat:
		if a.Combat == nil {
			return missing("combatData")
		}
	default:
		return fmt.Errorf("%w %d", ErrUnknownAction, int(a.Kind))
	}
	return nil
}

// Effects receives dialog side effects. The active scene implements it on
// top of the player state and the session registry.
type Effects interface {
	GiveItem(item string)
	RemoveItem(item string)
	GiveQuest(quest string)
	SetFlag(flag string, value any)
	ChangeScene(scene string)
	GiveGold(amount int)
	StartCombat(data combat.Data)
	FleeCombat()
}

// Execute dispatches actions to fx strictly in order.
func Execute(actions []Action, fx Effects) {
	if fx == nil {
		return
	}
	for _, a := range actions {
		switch a.Kind {
		case ActionGiveItem:
			fx.GiveItem(a.Item)
		case ActionRemoveItem:
			fx.RemoveItem(a.Item)
		case ActionGiveQuest:
			fx.GiveQuest(a.Quest)
		case ActionSetFlag:
			fx.SetFlag(a.Flag, a.Value)
		case ActionChangeScene:
			fx.ChangeScene(a.Scene)
		case ActionGiveGold:
			fx.GiveGold(a.Amount)
		case ActionStartCombat:
			if a.Combat != nil {
				fx.StartCombat(*a.Combat)
			}
		case ActionFleeCombat:
			fx.FleeCombat()
		}
	}
}
