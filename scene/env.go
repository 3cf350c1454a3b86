package scene

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/overworld/config"
	"github.com/milk9111/overworld/ecs/render"
	"github.com/milk9111/overworld/levels"
	"github.com/milk9111/overworld/savegame"
	"github.com/milk9111/overworld/session"
)

const defaultSaveTimeout = 2 * time.Second

// Env is everything scenes share. It is built once in main and never
// swapped, so scenes hold on to the pointer.
type Env struct {
	Config   config.Config
	Log      logrus.FieldLogger
	Registry *session.Registry
	Scenes   levels.SceneTable
	Library  *render.Library
	// Store may be nil, in which case saves only reach the registry.
	Store savegame.Store
	Rand  *rand.Rand
	Slot  string
	Debug bool
	Muted bool
}

// NewRand seeds from cfg, or from the clock when the seed is zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

// Persist writes the registry to the save store.
func (e *Env) Persist(scene string) error {
	if e == nil || e.Store == nil {
		return nil
	}
	timeout := e.Config.Save.Timeout
	if timeout <= 0 {
		timeout = defaultSaveTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return e.Store.Save(ctx, savegame.New(e.Slot, scene, e.Registry.Snapshot(), time.Now()))
}

// PlaySound restarts a named sound effect from the library.
func (e *Env) PlaySound(name string) {
	if e == nil || e.Muted || e.Library == nil {
		return
	}
	p, err := e.Library.Sound(name)
	if err != nil {
		e.Log.WithError(err).WithField("sound", name).Debug("sound unavailable")
		return
	}
	if err := p.Rewind(); err != nil {
		e.Log.WithError(err).WithField("sound", name).Debug("rewind failed")
		return
	}
	p.Play()
}
