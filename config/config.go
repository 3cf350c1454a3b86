// Package config loads game settings from YAML. The embedded game.yaml
// holds the defaults; an optional file passed with -config is layered on
// top of it.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/overworld/combat/rhythm"
	"github.com/milk9111/overworld/combat/turn"
	"github.com/milk9111/overworld/logger"
)

//go:embed game.yaml
var defaultYAML []byte

type Config struct {
	Window     Window        `yaml:"window"`
	StartScene string        `yaml:"start_scene"`
	Seed       int64         `yaml:"seed"`
	Debug      Debug         `yaml:"debug"`
	Dialog     Dialog        `yaml:"dialog"`
	Player     Player        `yaml:"player"`
	Door       Door          `yaml:"door"`
	Encounter  Encounter     `yaml:"encounter"`
	Rhythm     rhythm.Config `yaml:"rhythm"`
	Turn       turn.Config   `yaml:"turn"`
	Save       Save          `yaml:"save"`
	Log        logger.Config `yaml:"log"`
}

type Window struct {
	Title  string  `yaml:"title"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`
}

type Debug struct {
	Overlay   bool `yaml:"overlay"`
	HotReload bool `yaml:"hot_reload"`
	Physics   bool `yaml:"physics"`
}

type Dialog struct {
	TypewriterInterval  time.Duration `yaml:"typewriter_interval"`
	InteractionDistance float64       `yaml:"interaction_distance"`
	PromptOffset        float64       `yaml:"prompt_offset"`
}

type Player struct {
	Name           string  `yaml:"name"`
	Speed          float64 `yaml:"speed"`
	AutosaveFrames int     `yaml:"autosave_frames"`
}

type Door struct {
	CloseDistance float64 `yaml:"close_distance"`
}

type Encounter struct {
	FleeCooldown time.Duration `yaml:"flee_cooldown"`
	ResultsDelay time.Duration `yaml:"results_delay"`
}

type Save struct {
	Backend   string        `yaml:"backend"`
	Dir       string        `yaml:"dir"`
	RedisURL  string        `yaml:"redis_url"`
	KeyPrefix string        `yaml:"key_prefix"`
	Slot      string        `yaml:"slot"`
	Timeout   time.Duration `yaml:"timeout"`
}

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Default returns the embedded settings.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Errorf("config: embedded defaults: %w", err))
	}
	return cfg
}

// Load reads path over the defaults. Fields missing from the file keep
// their default values. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %q: %w", path, err)
	}
	if err := Parse(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: load %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes b onto cfg and validates the result.
func Parse(b []byte, cfg *Config) error {
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.StartScene == "" {
		return fmt.Errorf("start_scene is required")
	}
	switch c.Save.Backend {
	case BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown save backend %q", c.Save.Backend)
	}
	if c.Player.AutosaveFrames < 0 {
		return fmt.Errorf("autosave_frames must not be negative")
	}
	return nil
}
