package dialog

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const exprResult = "__result"

var exprVars = []string{"npc", "level", "gold", "health", "items", "quests", "flags"}

// ExprCache compiles condition expressions once and re-runs them with fresh
// bindings. Expressions see npc, level, gold, health, items, quests and
// flags, and must evaluate to a bool.
type ExprCache struct {
	compiled map[string]*tengo.Compiled
}

func NewExprCache() *ExprCache {
	return &ExprCache{compiled: map[string]*tengo.Compiled{}}
}

func (c *ExprCache) get(expr string) (*tengo.Compiled, error) {
	if compiled, ok := c.compiled[expr]; ok {
		return compiled, nil
	}

	script := tengo.NewScript([]byte(exprResult + " := (" + expr + ")"))
	for _, name := range exprVars {
		_ = script.Add(name, nil)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("dialog: compile expr %q: %w", expr, err)
	}
	c.compiled[expr] = compiled
	return compiled, nil
}

func (c *ExprCache) Eval(expr, npcID string, st State) (bool, error) {
	compiled, err := c.get(expr)
	if err != nil {
		return false, err
	}

	p := st.player()
	flags := map[string]any{}
	if st.Flags != nil {
		for k, v := range st.Flags.Flags() {
			flags[k] = v
		}
	}
	bindings := map[string]any{
		"npc":    npcID,
		"level":  p.Level,
		"gold":   p.Gold,
		"health": p.Health,
		"items":  stringsToAny(p.Inventory),
		"quests": stringsToAny(p.Quests),
		"flags":  flags,
	}
	for name, v := range bindings {
		if err := compiled.Set(name, v); err != nil {
			return false, fmt.Errorf("dialog: bind %s: %w", name, err)
		}
	}
	if err := compiled.Run(); err != nil {
		return false, fmt.Errorf("dialog: run expr %q: %w", expr, err)
	}

	res := compiled.Get(exprResult)
	if res.ValueType() != "bool" {
		return false, fmt.Errorf("dialog: expr %q returned %s, want bool", expr, res.ValueType())
	}
	return res.Bool(), nil
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
