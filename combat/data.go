// Package combat holds the data shared by both encounter variants: what an
// enemy brings into a fight and what the fight hands back.
package combat

type Mode string

const (
	ModeRhythm Mode = "rhythm"
	ModeTurn   Mode = "turn"
)

// Data describes an enemy encounter. It is authored on combat NPCs in level
// JSON and carried through dialog startCombat actions.
type Data struct {
	EnemyID    string  `json:"enemyId,omitempty" yaml:"enemyId,omitempty"`
	EnemyName  string  `json:"enemyName,omitempty" yaml:"enemyName,omitempty"`
	Mode       Mode    `json:"mode,omitempty" yaml:"mode,omitempty"`
	Health     int     `json:"health,omitempty" yaml:"health,omitempty"`
	Attack     int     `json:"attack,omitempty" yaml:"attack,omitempty"`
	Defense    int     `json:"defense,omitempty" yaml:"defense,omitempty"`
	Difficulty float64 `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Rewards    Rewards `json:"rewards,omitempty" yaml:"rewards,omitempty"`
}

type Rewards struct {
	Gold       int      `json:"gold,omitempty" yaml:"gold,omitempty"`
	Experience int      `json:"experience,omitempty" yaml:"experience,omitempty"`
	Items      []string `json:"items,omitempty" yaml:"items,omitempty"`
}

// ModeOrDefault returns the encounter variant, defaulting to rhythm.
func (d Data) ModeOrDefault() Mode {
	if d.Mode == ModeTurn {
		return ModeTurn
	}
	return ModeRhythm
}

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeEscaped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeEscaped:
		return "escaped"
	default:
		return "none"
	}
}

// Result is what a finished encounter reports back to the scene that
// started it. Writing PlayerHealth and Rewards back is the caller's job.
type Result struct {
	Outcome      Outcome
	PlayerHealth int
	EnemyID      string
	Rewards      Rewards
}
