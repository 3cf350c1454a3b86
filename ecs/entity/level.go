package entity

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/render"
	"github.com/milk9111/overworld/levels"
	"github.com/milk9111/overworld/player"
)

// LevelOptions tune how a level is populated.
type LevelOptions struct {
	// Spawn overrides the level's player position when set.
	Spawn  *common.Vec
	Player *player.State
	// SkipCombatNPC hides encounters that were already won.
	SkipCombatNPC func(id string) bool
}

// Loaded indexes what LoadLevelToWorld created.
type Loaded struct {
	Player     ecs.Entity
	Camera     ecs.Entity
	Doors      map[string]ecs.Entity
	NPCs       map[string]ecs.Entity
	CombatNPCs map[string]ecs.Entity
}

// LoadLevelToWorld creates every entity a level describes. An entity that
// fails to build is logged and skipped; only a missing player is fatal.
// A nil level still yields a player at the default spawn.
func LoadLevelToWorld(w *ecs.World, lib *render.Library, lvl *levels.Level, opts LevelOptions, log logrus.FieldLogger) (*Loaded, error) {
	if w == nil {
		return nil, fmt.Errorf("load level: world is nil")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	loaded := &Loaded{
		Doors:      map[string]ecs.Entity{},
		NPCs:       map[string]ecs.Entity{},
		CombatNPCs: map[string]ecs.Entity{},
	}

	if lvl == nil {
		lvl = &levels.Level{Player: common.Vec{X: common.BaseWidth / 2, Y: common.BaseHeight / 2}}
	}

	if lvl.Background != nil {
		if _, err := NewBackground(w, lib, *lvl.Background); err != nil {
			log.WithError(err).Warn("skipping background")
		}
	}
	if _, err := NewLevelBounds(w, lvl.Exits); err != nil {
		log.WithError(err).Warn("skipping level bounds")
	}

	for _, b := range lvl.Buildings {
		e, err := NewBuilding(w, lib, b)
		if err != nil {
			log.WithError(err).WithField("building", b.ID).Warn("skipping building")
			continue
		}
		if b.Door != nil && b.Door.Enabled {
			loaded.Doors[b.ID] = e
		}
	}
	for _, p := range lvl.Props {
		if _, err := NewProp(w, lib, p); err != nil {
			log.WithError(err).WithField("entity", p.ID).Warn("skipping prop")
		}
	}
	for _, n := range lvl.NPCs {
		e, err := NewNPC(w, lib, n)
		if err != nil {
			log.WithError(err).WithField("npc", n.ID).Warn("skipping npc")
			continue
		}
		loaded.NPCs[n.ID] = e
	}
	for _, c := range lvl.CombatNPCs {
		if opts.SkipCombatNPC != nil && opts.SkipCombatNPC(c.ID) {
			log.WithField("npc", c.ID).Debug("combat npc already defeated")
			continue
		}
		e, err := NewCombatNPC(w, lib, c)
		if err != nil {
			log.WithError(err).WithField("npc", c.ID).Warn("skipping combat npc")
			continue
		}
		loaded.CombatNPCs[c.ID] = e
	}
	if lvl.UI != nil && lvl.UI.Text != "" {
		if _, err := NewCaption(w, *lvl.UI); err != nil {
			log.WithError(err).Warn("skipping caption")
		}
	}

	spawn := lvl.Player
	if opts.Spawn != nil {
		spawn = *opts.Spawn
	}
	p, err := NewPlayerAt(w, lib, spawn.X, spawn.Y, opts.Player)
	if err != nil {
		return nil, fmt.Errorf("load level %q: %w", lvl.Name, err)
	}
	loaded.Player = p

	cam, err := NewCameraAt(w, lib, spawn.X, spawn.Y)
	if err != nil {
		log.WithError(err).Warn("skipping camera")
	} else {
		loaded.Camera = cam
	}
	return loaded, nil
}
