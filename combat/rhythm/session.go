// Package rhythm implements the timed note-matching encounter. The session
// is a pure state machine driven by an explicit clock: the scene feeds it
// elapsed time and lane presses and renders whatever it reports.
package rhythm

import (
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/overworld/combat"
)

var (
	ErrNotActive      = errors.New("rhythm: session not active")
	ErrAlreadyStarted = errors.New("rhythm: session already started")
	ErrInvalidLane    = errors.New("rhythm: invalid lane")
)

// Rand is the subset of math/rand/v2 used for lane selection.
type Rand interface {
	IntN(n int) int
}

type State int

const (
	StateInactive State = iota
	StateActive
	StateEnded
)

type Reason int

const (
	ReasonNone Reason = iota
	ReasonEnemyDefeated
	ReasonPlayerDefeated
	ReasonQuit
	ReasonTimeUp
)

func (r Reason) String() string {
	switch r {
	case ReasonEnemyDefeated:
		return "enemy defeated"
	case ReasonPlayerDefeated:
		return "player defeated"
	case ReasonQuit:
		return "quit"
	case ReasonTimeUp:
		return "time up"
	default:
		return "none"
	}
}

type NoteState int

const (
	NotePending NoteState = iota
	NoteHit
	NoteMissed
)

// Note is one scheduled event. State only ever moves from pending to hit or
// from pending to missed.
type Note struct {
	ID        int
	Lane      int
	SpawnTime time.Duration
	HitTime   time.Duration
	Spawned   bool
	State     NoteState
}

type EventKind int

const (
	EventSpawned EventKind = iota
	EventHit
	// EventMissed is a note that passed its window unresolved.
	EventMissed
	// EventWhiff is a lane press with no note in the window.
	EventWhiff
	EventEnded
)

type Event struct {
	Kind   EventKind
	NoteID int
	Lane   int
	Score  int
	Damage int
}

// Session is created when the combat scene starts and discarded when it ends.
type Session struct {
	cfg Config
	rng Rand

	state  State
	reason Reason
	now    time.Duration
	notes  []Note

	playerHealth int
	enemyHealth  int
	score        int
	combo        int
	maxCombo     int
	hits         int
	misses       int
}

func NewSession(cfg Config, rng Rand) *Session {
	cfg = cfg.withDefaults()
	return &Session{
		cfg:          cfg,
		rng:          rng,
		playerHealth: cfg.PlayerHealth,
		enemyHealth:  cfg.EnemyHealth,
	}
}

// Start generates the note pattern and enters the active state.
func (s *Session) Start() error {
	if s.state != StateInactive {
		return ErrAlreadyStarted
	}
	count := int(s.cfg.Duration / s.cfg.SpawnInterval)
	travel := s.cfg.TravelTime()
	s.notes = make([]Note, 0, count)
	for i := 0; i < count; i++ {
		lane := 0
		if s.rng != nil {
			lane = s.rng.IntN(s.cfg.Lanes)
		}
		spawn := time.Duration(i) * s.cfg.SpawnInterval
		s.notes = append(s.notes, Note{
			ID:        i,
			Lane:      lane,
			SpawnTime: spawn,
			HitTime:   spawn + travel,
		})
	}
	s.state = StateActive
	return nil
}

// Advance moves the encounter clock forward. Spawns, automatic misses and
// the overall timer are applied in time order.
func (s *Session) Advance(dt time.Duration) []Event {
	if s.state != StateActive || dt <= 0 {
		return nil
	}
	target := s.now + dt
	limit := min(target, s.cfg.Duration)

	var events []Event
	for i := range s.notes {
		n := &s.notes[i]
		if n.Spawned || n.SpawnTime > limit {
			continue
		}
		n.Spawned = true
		events = append(events, Event{Kind: EventSpawned, NoteID: n.ID, Lane: n.Lane})
	}

	for i := range s.notes {
		n := &s.notes[i]
		deadline := n.HitTime + s.cfg.HitWindow
		if n.State != NotePending || limit <= deadline {
			continue
		}
		s.now = max(s.now, deadline)
		n.State = NoteMissed
		events = append(events, s.applyMiss(EventMissed, n.ID, n.Lane))
		if s.state == StateEnded {
			return append(events, Event{Kind: EventEnded})
		}
	}

	s.now = limit
	if s.now >= s.cfg.Duration {
		s.end(ReasonTimeUp)
		events = append(events, Event{Kind: EventEnded})
		return events
	}
	s.now = target
	return events
}

// Press resolves a lane key press against the nearest pending note whose
// hit time is strictly inside the window.
func (s *Session) Press(lane int) (Event, error) {
	if s.state != StateActive {
		return Event{}, ErrNotActive
	}
	if lane < 0 || lane >= s.cfg.Lanes {
		return Event{}, fmt.Errorf("%w: %d", ErrInvalidLane, lane)
	}

	best := -1
	var bestDist time.Duration
	for i := range s.notes {
		n := &s.notes[i]
		if n.Lane != lane || n.State != NotePending {
			continue
		}
		d := absDuration(n.HitTime - s.now)
		if d >= s.cfg.HitWindow {
			continue
		}
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}

	if best < 0 {
		return s.applyMiss(EventWhiff, -1, lane), nil
	}

	n := &s.notes[best]
	n.State = NoteHit
	score := int(100 * (s.cfg.HitWindow - bestDist) / s.cfg.HitWindow)
	damage := s.cfg.BaseDamage + score/20

	s.score += score
	s.combo++
	s.maxCombo = max(s.maxCombo, s.combo)
	s.hits++
	s.enemyHealth = max(s.enemyHealth-damage, 0)
	if s.enemyHealth == 0 {
		s.end(ReasonEnemyDefeated)
	}
	return Event{Kind: EventHit, NoteID: n.ID, Lane: lane, Score: score, Damage: damage}, nil
}

// Quit ends the encounter as a defeat.
func (s *Session) Quit() {
	if s.state == StateEnded {
		return
	}
	s.end(ReasonQuit)
}

func (s *Session) applyMiss(kind EventKind, noteID, lane int) Event {
	s.combo = 0
	s.misses++
	s.playerHealth = max(s.playerHealth-s.cfg.MissPenalty, 0)
	if s.playerHealth == 0 {
		s.end(ReasonPlayerDefeated)
	}
	return Event{Kind: kind, NoteID: noteID, Lane: lane}
}

func (s *Session) end(reason Reason) {
	s.state = StateEnded
	s.reason = reason
}

// Outcome maps the end reason onto the shared combat outcome. Surviving the
// full timer counts as a victory.
func (s *Session) Outcome() combat.Outcome {
	if s.state != StateEnded {
		return combat.OutcomeNone
	}
	switch s.reason {
	case ReasonEnemyDefeated, ReasonTimeUp:
		return combat.OutcomeVictory
	default:
		return combat.OutcomeDefeat
	}
}

// NoteY returns the note's vertical position on the highway at the current
// clock.
func (s *Session) NoteY(n Note) float64 {
	elapsed := (s.now - n.SpawnTime).Seconds()
	return s.cfg.SpawnY + s.cfg.NoteSpeed*elapsed
}

func (s *Session) Config() Config     { return s.cfg }
func (s *Session) State() State       { return s.state }
func (s *Session) Reason() Reason     { return s.reason }
func (s *Session) Now() time.Duration { return s.now }
func (s *Session) PlayerHealth() int  { return s.playerHealth }
func (s *Session) EnemyHealth() int   { return s.enemyHealth }
func (s *Session) Score() int         { return s.score }
func (s *Session) Combo() int         { return s.combo }
func (s *Session) MaxCombo() int      { return s.maxCombo }
func (s *Session) Hits() int          { return s.hits }
func (s *Session) Misses() int        { return s.misses }
func (s *Session) Remaining() time.Duration {
	return max(s.cfg.Duration-s.now, 0)
}

// Notes returns a copy of the pattern.
func (s *Session) Notes() []Note {
	return append([]Note(nil), s.notes...)
}

// Visible returns spawned, pending notes.
func (s *Session) Visible() []Note {
	var out []Note
	for _, n := range s.notes {
		if n.Spawned && n.State == NotePending {
			out = append(out, n)
		}
	}
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
