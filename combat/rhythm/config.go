package rhythm

import "time"

// Config holds the tuning for one encounter. Zero fields take the defaults.
type Config struct {
	PlayerHealth   int           `yaml:"player_health"`
	EnemyHealth    int           `yaml:"enemy_health"`
	NoteSpeed      float64       `yaml:"note_speed"`
	TravelDistance float64       `yaml:"travel_distance"`
	HitWindow      time.Duration `yaml:"hit_window"`
	Lanes          int           `yaml:"lanes"`
	LaneX          []float64     `yaml:"lane_x"`
	SpawnY         float64       `yaml:"spawn_y"`
	TargetLineY    float64       `yaml:"target_line_y"`
	Duration       time.Duration `yaml:"duration"`
	SpawnInterval  time.Duration `yaml:"spawn_interval"`
	MissPenalty    int           `yaml:"miss_penalty"`
	BaseDamage     int           `yaml:"base_damage"`
}

func DefaultConfig() Config {
	return Config{
		PlayerHealth:   100,
		EnemyHealth:    100,
		NoteSpeed:      200,
		TravelDistance: 500,
		HitWindow:      50 * time.Millisecond,
		Lanes:          4,
		LaneX:          []float64{200, 300, 400, 500},
		SpawnY:         100,
		TargetLineY:    600,
		Duration:       30 * time.Second,
		SpawnInterval:  500 * time.Millisecond,
		MissPenalty:    2,
		BaseDamage:     5,
	}
}

// TravelTime is how long a note takes to fall from the spawn line to the
// target line.
func (c Config) TravelTime() time.Duration {
	return time.Duration(c.TravelDistance / c.NoteSpeed * float64(time.Second))
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PlayerHealth <= 0 {
		c.PlayerHealth = d.PlayerHealth
	}
	if c.EnemyHealth <= 0 {
		c.EnemyHealth = d.EnemyHealth
	}
	if c.NoteSpeed <= 0 {
		c.NoteSpeed = d.NoteSpeed
	}
	if c.TravelDistance <= 0 {
		c.TravelDistance = d.TravelDistance
	}
	if c.HitWindow <= 0 {
		c.HitWindow = d.HitWindow
	}
	if c.Lanes <= 0 {
		c.Lanes = d.Lanes
	}
	if len(c.LaneX) < c.Lanes {
		c.LaneX = make([]float64, c.Lanes)
		for i := range c.LaneX {
			c.LaneX[i] = 200 + float64(i)*100
		}
	}
	if c.SpawnY == 0 {
		c.SpawnY = d.SpawnY
	}
	if c.TargetLineY == 0 {
		c.TargetLineY = d.TargetLineY
	}
	if c.Duration <= 0 {
		c.Duration = d.Duration
	}
	if c.SpawnInterval <= 0 {
		c.SpawnInterval = d.SpawnInterval
	}
	if c.MissPenalty < 0 {
		c.MissPenalty = 0
	}
	if c.BaseDamage <= 0 {
		c.BaseDamage = d.BaseDamage
	}
	return c
}
