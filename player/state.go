// Package player holds the persistent player model: stats, inventory and
// progression. It has no engine dependencies so dialog actions, combat
// results and save games can mutate it directly.
package player

import "slices"

type Facing string

const (
	FacingUp    Facing = "up"
	FacingDown  Facing = "down"
	FacingLeft  Facing = "left"
	FacingRight Facing = "right"
)

const (
	DefaultName   = "Hero"
	DefaultSpeed  = 110.0
	DefaultHealth = 100
	DefaultMana   = 100
)

// State is the player's persistent data.
type State struct {
	Name       string   `json:"name"`
	Level      int      `json:"level"`
	Experience int      `json:"experience"`
	Gold       int      `json:"gold"`
	Health     int      `json:"health"`
	MaxHealth  int      `json:"maxHealth"`
	Mana       int      `json:"mana"`
	Speed      float64  `json:"speed"`
	Inventory  []string `json:"inventory"`
	Equipment  []string `json:"equipment"`
	Skills     []string `json:"skills"`
	Spells     []string `json:"spells"`
	Quests     []string `json:"quests"`
	Facing     Facing   `json:"facing"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
}

// New returns a level 1 player with default stats.
func New(name string) *State {
	if name == "" {
		name = DefaultName
	}
	return &State{
		Name:      name,
		Level:     1,
		Health:    DefaultHealth,
		MaxHealth: DefaultHealth,
		Mana:      DefaultMana,
		Speed:     DefaultSpeed,
		Inventory: []string{},
		Equipment: []string{},
		Skills:    []string{},
		Spells:    []string{},
		Quests:    []string{},
		Facing:    FacingDown,
	}
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	c := *s
	c.Inventory = slices.Clone(s.Inventory)
	c.Equipment = slices.Clone(s.Equipment)
	c.Skills = slices.Clone(s.Skills)
	c.Spells = slices.Clone(s.Spells)
	c.Quests = slices.Clone(s.Quests)
	return &c
}

func (s *State) AddItem(item string) {
	s.Inventory = append(s.Inventory, item)
}

// RemoveItem drops every copy of item from the inventory and reports how
// many were removed.
func (s *State) RemoveItem(item string) int {
	before := len(s.Inventory)
	s.Inventory = slices.DeleteFunc(s.Inventory, func(i string) bool { return i == item })
	return before - len(s.Inventory)
}

func (s *State) HasItem(item string) bool {
	return slices.Contains(s.Inventory, item)
}

func (s *State) CountItem(item string) int {
	n := 0
	for _, i := range s.Inventory {
		if i == item {
			n++
		}
	}
	return n
}

func (s *State) AddEquipment(item string) {
	s.Equipment = append(s.Equipment, item)
}

func (s *State) RemoveEquipment(item string) {
	s.Equipment = slices.DeleteFunc(s.Equipment, func(i string) bool { return i == item })
}

// AddSkill is a no-op when the skill is already known.
func (s *State) AddSkill(skill string) {
	if !slices.Contains(s.Skills, skill) {
		s.Skills = append(s.Skills, skill)
	}
}

// AddSpell is a no-op when the spell is already known.
func (s *State) AddSpell(spell string) {
	if !slices.Contains(s.Spells, spell) {
		s.Spells = append(s.Spells, spell)
	}
}

func (s *State) AddQuest(quest string) {
	s.Quests = append(s.Quests, quest)
}

func (s *State) RemoveQuest(quest string) {
	s.Quests = slices.DeleteFunc(s.Quests, func(q string) bool { return q == quest })
}

func (s *State) HasQuest(quest string) bool {
	return slices.Contains(s.Quests, quest)
}

// AddGold adds (or with a negative amount, spends) gold. The purse never
// goes below zero.
func (s *State) AddGold(amount int) {
	s.Gold += amount
	if s.Gold < 0 {
		s.Gold = 0
	}
}

// ExperienceToNext is the experience needed to leave the current level.
func (s *State) ExperienceToNext() int {
	return 100 * max(s.Level, 1)
}

// AddExperience grants experience and returns the number of levels gained.
func (s *State) AddExperience(amount int) int {
	if amount <= 0 {
		return 0
	}
	if s.Level < 1 {
		s.Level = 1
	}
	s.Experience += amount
	gained := 0
	for s.Experience >= s.ExperienceToNext() {
		s.Experience -= s.ExperienceToNext()
		s.Level++
		gained++
	}
	return gained
}

func (s *State) SetHealth(hp int) {
	maxHP := s.MaxHealth
	if maxHP <= 0 {
		maxHP = DefaultHealth
	}
	s.Health = min(max(hp, 0), maxHP)
}

func (s *State) Alive() bool {
	return s.Health > 0
}
