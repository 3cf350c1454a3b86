package turn

import (
	"fmt"

	"github.com/jwebster45206/d20"
)

const (
	attrAttack  = "attack"
	attrDefense = "defense"
)

// Stats seeds a combatant. Zero fields take the side's defaults.
type Stats struct {
	ID      string
	Name    string
	Health  int
	Attack  int
	Defense int
}

// Combatant wraps a d20 stat block with the encounter-local hit points and
// guard flag.
type Combatant struct {
	actor    *d20.Actor
	name     string
	hp       int
	guarding bool
}

func newCombatant(s Stats) (*Combatant, error) {
	id := s.ID
	if id == "" {
		id = s.Name
	}
	actor, err := d20.NewActor(id).
		WithHP(s.Health).
		WithAC(s.Defense).
		WithAttributes(map[string]int{
			attrAttack:  s.Attack,
			attrDefense: s.Defense,
		}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("turn: build combatant %q: %w", id, err)
	}
	return &Combatant{actor: actor, name: s.Name, hp: s.Health}, nil
}

func (c *Combatant) Name() string { return c.name }
func (c *Combatant) HP() int      { return c.hp }
func (c *Combatant) MaxHP() int   { return c.actor.MaxHP() }
func (c *Combatant) Guarding() bool {
	return c.guarding
}

func (c *Combatant) Attack() int {
	v, _ := c.actor.Attribute(attrAttack)
	return v
}

// Defense is the base defense, doubled while guarding.
func (c *Combatant) Defense() int {
	v, _ := c.actor.Attribute(attrDefense)
	if c.guarding {
		return v * guardMultiplier
	}
	return v
}

func (c *Combatant) takeDamage(n int) {
	c.hp = max(c.hp-n, 0)
}

func (c *Combatant) defeated() bool {
	return c.hp <= 0
}
