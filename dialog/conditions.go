package dialog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/milk9111/overworld/player"
)

// FlagReader is the read side of the session registry.
type FlagReader interface {
	Truthy(name string) bool
	Flags() map[string]any
}

// State is what conditions are evaluated against.
type State struct {
	Player *player.State
	Flags  FlagReader
}

type FlagCondition struct {
	Flag     string `json:"flag"`
	Required bool   `json:"required"`
}

// Conditions are all-of: every populated field must pass.
type Conditions struct {
	FirstMeeting bool            `json:"firstMeeting,omitempty"`
	HasItems     []string        `json:"hasItems,omitempty"`
	HasQuests    []string        `json:"hasQuests,omitempty"`
	MinLevel     int             `json:"minLevel,omitempty"`
	Flags        []FlagCondition `json:"flags,omitempty"`
	Expr         string          `json:"expr,omitempty"`
}

var titleCaser = cases.Title(language.English)

// MetFlag is the registry flag recording that the player has talked to
// npcID before, e.g. "metVincent".
func MetFlag(npcID string) string {
	return "met" + titleCaser.String(npcID)
}

// DisplayName turns an id such as "old_man" into "Old Man".
func DisplayName(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "_", " "))
}

func (s State) truthy(name string) bool {
	if s.Flags == nil {
		return false
	}
	return s.Flags.Truthy(name)
}

func (s State) player() *player.State {
	if s.Player == nil {
		return &player.State{}
	}
	return s.Player
}

// Match reports whether every populated condition holds. A nil receiver
// always matches.
func (c *Conditions) Match(npcID string, st State, exprs *ExprCache) (bool, error) {
	if c == nil {
		return true, nil
	}
	p := st.player()

	if c.FirstMeeting && st.truthy(MetFlag(npcID)) {
		return false, nil
	}
	for _, item := range c.HasItems {
		if !p.HasItem(item) {
			return false, nil
		}
	}
	for _, quest := range c.HasQuests {
		if !p.HasQuest(quest) {
			return false, nil
		}
	}
	if c.MinLevel > 0 && p.Level < c.MinLevel {
		return false, nil
	}
	for _, f := range c.Flags {
		if st.truthy(f.Flag) != f.Required {
			return false, nil
		}
	}
	if strings.TrimSpace(c.Expr) == "" {
		return true, nil
	}
	if exprs == nil {
		exprs = NewExprCache()
	}
	return exprs.Eval(c.Expr, npcID, st)
}
