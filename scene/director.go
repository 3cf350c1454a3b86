package scene

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

type startRequest struct {
	name    string
	payload Payload
}

// Director owns the active scene. Start only queues the change; it takes
// effect once the current tick has finished.
type Director struct {
	env    *Env
	log    logrus.FieldLogger
	ctors  map[string]Constructor
	level  Constructor
	active Scene
	name   string
	next   *startRequest
}

func NewDirector(env *Env) *Director {
	log := logrus.FieldLogger(logrus.StandardLogger())
	if env != nil && env.Log != nil {
		log = env.Log
	}
	return &Director{env: env, log: log, ctors: map[string]Constructor{}}
}

func (d *Director) Env() *Env { return d.env }

// Register binds a scene name to its constructor.
func (d *Director) Register(name string, c Constructor) {
	d.ctors[name] = c
}

// HandleLevels sets the constructor used for any id in the scene table
// that has no explicit registration.
func (d *Director) HandleLevels(c Constructor) {
	d.level = c
}

// Start replaces the active scene at the end of the tick. A later call in
// the same tick wins.
func (d *Director) Start(name string, p Payload) {
	d.next = &startRequest{name: name, payload: p}
}

// Restart rebuilds the active scene, keeping the player where they stand.
func (d *Director) Restart() {
	if d.active == nil {
		return
	}
	var p Payload
	if pos, ok := d.active.(Positioned); ok {
		if v, ok := pos.PlayerPosition(); ok {
			p.TargetPosition = &v
		}
	}
	d.Start(d.name, p)
}

func (d *Director) Current() string { return d.name }

func (d *Director) Scene() Scene { return d.active }

func (d *Director) Update() error {
	if d.active != nil {
		if err := d.active.Update(); err != nil {
			return err
		}
	}
	return d.flush()
}

func (d *Director) Draw(screen *ebiten.Image) {
	if d.active != nil {
		d.active.Draw(screen)
	}
}

func (d *Director) lookup(name string) (Constructor, error) {
	if c, ok := d.ctors[name]; ok {
		return c, nil
	}
	if d.level != nil && d.env != nil && d.env.Scenes.Has(name) {
		return d.level, nil
	}
	return nil, fmt.Errorf("scene: unknown scene %q", name)
}

// flush applies a queued start. With no scene running yet, a failure is
// returned so the game can stop; otherwise it is logged and the current
// scene keeps running.
func (d *Director) flush() error {
	if d.next == nil {
		return nil
	}
	req := *d.next
	d.next = nil

	log := d.log.WithField("scene", req.name)
	ctor, err := d.lookup(req.name)
	if err != nil {
		return d.fail(log, err)
	}
	if d.active != nil {
		d.active.Exit()
	}
	s, err := ctor(d, req.name, req.payload)
	if err != nil {
		return d.fail(log, fmt.Errorf("scene: start %q: %w", req.name, err))
	}
	log.WithField("from", d.name).Info("scene started")
	d.active, d.name = s, req.name
	return nil
}

func (d *Director) fail(log logrus.FieldLogger, err error) error {
	if d.active == nil {
		return err
	}
	log.WithError(err).Error("scene change failed")
	return nil
}
