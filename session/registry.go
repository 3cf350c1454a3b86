// Package session is the application-state service that outlives scenes:
// the player snapshot handed between scenes, story flags set by dialog, and
// the open-world position remembered while the player is inside a room.
package session

import (
	"maps"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/player"
)

// Snapshot is the serializable form of a Registry.
type Snapshot struct {
	Player        *player.State  `json:"player,omitempty"`
	Flags         map[string]any `json:"flags,omitempty"`
	LastOpenWorld *common.Vec    `json:"lastOpenWorldPosition,omitempty"`
}

// Registry is passed explicitly to every scene; nothing reads it through a
// package-level variable.
type Registry struct {
	player        *player.State
	flags         map[string]any
	lastOpenWorld *common.Vec
}

func NewRegistry() *Registry {
	return &Registry{flags: make(map[string]any)}
}

// SavePlayer stores a copy of p. Later mutations of p are not visible until
// the next save.
func (r *Registry) SavePlayer(p *player.State) {
	if r == nil || p == nil {
		return
	}
	r.player = p.Clone()
}

// LoadPlayer returns a copy of the stored player, if any.
func (r *Registry) LoadPlayer() (*player.State, bool) {
	if r == nil || r.player == nil {
		return nil, false
	}
	return r.player.Clone(), true
}

// PlayerOrNew loads the stored player or creates a fresh one. When
// restorePosition is false the returned state's position is zeroed so the
// caller can place it at the scene's spawn point.
func (r *Registry) PlayerOrNew(restorePosition bool) *player.State {
	p, ok := r.LoadPlayer()
	if !ok {
		return player.New("")
	}
	if !restorePosition {
		p.X, p.Y = 0, 0
	}
	return p
}

func (r *Registry) SetFlag(name string, value any) {
	if r == nil || name == "" {
		return
	}
	if r.flags == nil {
		r.flags = make(map[string]any)
	}
	r.flags[name] = value
}

func (r *Registry) Flag(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.flags[name]
	return v, ok
}

func (r *Registry) ClearFlag(name string) {
	if r == nil {
		return
	}
	delete(r.flags, name)
}

// Truthy reports whether the flag is set to a truthy value.
func (r *Registry) Truthy(name string) bool {
	v, ok := r.Flag(name)
	return ok && Truthy(v)
}

// Flags returns a copy of every flag.
func (r *Registry) Flags() map[string]any {
	if r == nil {
		return nil
	}
	return maps.Clone(r.flags)
}

// SetLastOpenWorldPosition remembers where the player left the open world.
func (r *Registry) SetLastOpenWorldPosition(pos common.Vec) {
	if r == nil {
		return
	}
	r.lastOpenWorld = &pos
}

// TakeLastOpenWorldPosition returns and clears the remembered position.
func (r *Registry) TakeLastOpenWorldPosition() (common.Vec, bool) {
	if r == nil || r.lastOpenWorld == nil {
		return common.Vec{}, false
	}
	pos := *r.lastOpenWorld
	r.lastOpenWorld = nil
	return pos, true
}

func (r *Registry) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	s := Snapshot{Flags: maps.Clone(r.flags)}
	if r.player != nil {
		s.Player = r.player.Clone()
	}
	if r.lastOpenWorld != nil {
		pos := *r.lastOpenWorld
		s.LastOpenWorld = &pos
	}
	return s
}

// Restore replaces the registry contents with the snapshot.
func (r *Registry) Restore(s Snapshot) {
	if r == nil {
		return
	}
	r.player = s.Player.Clone()
	r.flags = maps.Clone(s.Flags)
	if r.flags == nil {
		r.flags = make(map[string]any)
	}
	r.lastOpenWorld = nil
	if s.LastOpenWorld != nil {
		pos := *s.LastOpenWorld
		r.lastOpenWorld = &pos
	}
}

// Truthy mirrors how dialog data treats flag values: false, zero, empty
// string and nil are false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}
