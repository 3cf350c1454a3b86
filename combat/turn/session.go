// Package turn implements the turn-based exchange: the player attacks,
// defends or runs, then the enemy acts after a short delay.
package turn

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/milk9111/overworld/combat"
)

var (
	ErrNotPlayerTurn = errors.New("turn: not the player's turn")
	ErrEnded         = errors.New("turn: combat has ended")
)

const guardMultiplier = 2

// Rand is the subset of math/rand/v2 used by the session.
type Rand interface {
	Float64() float64
}

type Turn int

const (
	TurnPlayer Turn = iota
	TurnEnemy
	TurnEnded
)

func (t Turn) String() string {
	switch t {
	case TurnPlayer:
		return "player"
	case TurnEnemy:
		return "enemy"
	default:
		return "ended"
	}
}

type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

type Action int

const (
	ActionAttack Action = iota
	ActionDefend
	ActionRun
)

// Entry is one line of the combat log.
type Entry struct {
	Side    Side
	Action  Action
	Damage  int
	Message string
}

type Config struct {
	EnemyDelay        time.Duration `yaml:"enemy_delay"`
	EscapeChance      float64       `yaml:"escape_chance"`
	EnemyAttackChance float64       `yaml:"enemy_attack_chance"`
	PlayerAttack      int           `yaml:"player_attack"`
	PlayerDefense     int           `yaml:"player_defense"`
	EnemyAttack       int           `yaml:"enemy_attack"`
	EnemyDefense      int           `yaml:"enemy_defense"`
	DefaultHealth     int           `yaml:"default_health"`
}

func DefaultConfig() Config {
	return Config{
		EnemyDelay:        time.Second,
		EscapeChance:      0.5,
		EnemyAttackChance: 0.8,
		PlayerAttack:      20,
		PlayerDefense:     10,
		EnemyAttack:       15,
		EnemyDefense:      10,
		DefaultHealth:     100,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.EnemyDelay <= 0 {
		c.EnemyDelay = d.EnemyDelay
	}
	if c.EscapeChance <= 0 {
		c.EscapeChance = d.EscapeChance
	}
	if c.EnemyAttackChance <= 0 {
		c.EnemyAttackChance = d.EnemyAttackChance
	}
	if c.PlayerAttack <= 0 {
		c.PlayerAttack = d.PlayerAttack
	}
	if c.PlayerDefense <= 0 {
		c.PlayerDefense = d.PlayerDefense
	}
	if c.EnemyAttack <= 0 {
		c.EnemyAttack = d.EnemyAttack
	}
	if c.EnemyDefense <= 0 {
		c.EnemyDefense = d.EnemyDefense
	}
	if c.DefaultHealth <= 0 {
		c.DefaultHealth = d.DefaultHealth
	}
	return c
}

// Damage is max(1, floor((attack-defense) * factor)).
func Damage(attack, defense int, factor float64) int {
	return max(1, int(math.Floor(float64(attack-defense)*factor)))
}

// Session is local to one encounter.
type Session struct {
	cfg     Config
	rng     Rand
	player  *Combatant
	enemy   *Combatant
	turn    Turn
	outcome combat.Outcome
	waited  time.Duration
	log     []Entry
}

// NewSession starts on the player's turn.
func NewSession(cfg Config, playerStats, enemyStats Stats, rng Rand) (*Session, error) {
	cfg = cfg.withDefaults()
	if rng == nil {
		return nil, errors.New("turn: nil rand")
	}

	playerStats = fillStats(playerStats, "Hero", cfg.DefaultHealth, cfg.PlayerAttack, cfg.PlayerDefense)
	enemyStats = fillStats(enemyStats, "Enemy", cfg.DefaultHealth, cfg.EnemyAttack, cfg.EnemyDefense)

	p, err := newCombatant(playerStats)
	if err != nil {
		return nil, err
	}
	e, err := newCombatant(enemyStats)
	if err != nil {
		return nil, err
	}
	return &Session{cfg: cfg, rng: rng, player: p, enemy: e, turn: TurnPlayer}, nil
}

func fillStats(s Stats, name string, health, attack, defense int) Stats {
	if s.Name == "" {
		s.Name = name
	}
	if s.Health <= 0 {
		s.Health = health
	}
	if s.Attack <= 0 {
		s.Attack = attack
	}
	if s.Defense <= 0 {
		s.Defense = defense
	}
	return s
}

func (s *Session) factor() float64 {
	return 0.8 + s.rng.Float64()*0.4
}

func (s *Session) checkPlayerTurn() error {
	switch s.turn {
	case TurnEnded:
		return ErrEnded
	case TurnEnemy:
		return ErrNotPlayerTurn
	}
	return nil
}

// Attack hits the enemy and passes the turn unless the enemy falls.
func (s *Session) Attack() (Entry, error) {
	if err := s.checkPlayerTurn(); err != nil {
		return Entry{}, err
	}
	dmg := Damage(s.player.Attack(), s.enemy.Defense(), s.factor())
	s.enemy.takeDamage(dmg)
	entry := s.record(Entry{
		Side:    SidePlayer,
		Action:  ActionAttack,
		Damage:  dmg,
		Message: fmt.Sprintf("%s attacks for %d damage!", s.player.Name(), dmg),
	})
	if s.enemy.defeated() {
		s.finish(combat.OutcomeVictory)
		return entry, nil
	}
	s.passTurn()
	return entry, nil
}

// Defend doubles the player's defense until their next turn begins.
func (s *Session) Defend() (Entry, error) {
	if err := s.checkPlayerTurn(); err != nil {
		return Entry{}, err
	}
	s.player.guarding = true
	entry := s.record(Entry{Side: SidePlayer, Action: ActionDefend, Message: "Defense increased for next turn"})
	s.passTurn()
	return entry, nil
}

// Run escapes with EscapeChance, otherwise forfeits the turn.
func (s *Session) Run() (Entry, error) {
	if err := s.checkPlayerTurn(); err != nil {
		return Entry{}, err
	}
	if s.rng.Float64() < s.cfg.EscapeChance {
		entry := s.record(Entry{Side: SidePlayer, Action: ActionRun, Message: "Successfully escaped!"})
		s.finish(combat.OutcomeEscaped)
		return entry, nil
	}
	entry := s.record(Entry{Side: SidePlayer, Action: ActionRun, Message: "Couldn't escape!"})
	s.passTurn()
	return entry, nil
}

// Update advances the enemy's thinking delay and, once it elapses, plays the
// enemy turn. It returns the entries produced this call.
func (s *Session) Update(dt time.Duration) []Entry {
	if s.turn != TurnEnemy {
		return nil
	}
	s.waited += dt
	if s.waited < s.cfg.EnemyDelay {
		return nil
	}
	s.waited = 0
	return []Entry{s.enemyAct()}
}

func (s *Session) enemyAct() Entry {
	s.enemy.guarding = false
	if s.rng.Float64() >= s.cfg.EnemyAttackChance {
		s.enemy.guarding = true
		entry := s.record(Entry{Side: SideEnemy, Action: ActionDefend, Message: fmt.Sprintf("%s defends!", s.enemy.Name())})
		s.passTurn()
		return entry
	}

	dmg := Damage(s.enemy.Attack(), s.player.Defense(), s.factor())
	s.player.takeDamage(dmg)
	entry := s.record(Entry{
		Side:    SideEnemy,
		Action:  ActionAttack,
		Damage:  dmg,
		Message: fmt.Sprintf("%s attacks for %d damage!", s.enemy.Name(), dmg),
	})
	if s.player.defeated() {
		s.finish(combat.OutcomeDefeat)
		return entry
	}
	s.passTurn()
	return entry
}

func (s *Session) passTurn() {
	switch s.turn {
	case TurnPlayer:
		s.turn = TurnEnemy
		s.enemy.guarding = false
		s.waited = 0
	case TurnEnemy:
		s.turn = TurnPlayer
		s.player.guarding = false
	}
}

func (s *Session) finish(o combat.Outcome) {
	s.turn = TurnEnded
	s.outcome = o
}

func (s *Session) record(e Entry) Entry {
	s.log = append(s.log, e)
	return e
}

func (s *Session) Turn() Turn              { return s.turn }
func (s *Session) Outcome() combat.Outcome { return s.outcome }
func (s *Session) Player() *Combatant      { return s.player }
func (s *Session) Enemy() *Combatant       { return s.enemy }
func (s *Session) Ended() bool             { return s.turn == TurnEnded }
func (s *Session) Log() []Entry            { return append([]Entry(nil), s.log...) }

// Result reports the outcome and the player's remaining health.
func (s *Session) Result(enemyID string, rewards combat.Rewards) combat.Result {
	r := combat.Result{Outcome: s.outcome, PlayerHealth: s.player.HP(), EnemyID: enemyID}
	if s.outcome == combat.OutcomeVictory {
		r.Rewards = rewards
	}
	return r
}
