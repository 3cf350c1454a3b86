package ecs

import (
	"sort"

	"github.com/milk9111/overworld/ecs/component"
)

// Kind is satisfied by every component.ComponentKind[T].
type Kind interface {
	ID() component.ComponentID
}

// World owns entities and their component stores.
type World struct {
	generations []generation
	alive       []bool
	free        []entityID
	count       int

	stores map[component.ComponentID]store
	events EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// CreateEntity allocates a new entity, reusing freed slots with a bumped generation.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	var id entityID
	if n := len(w.free); n > 0 {
		id = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		w.generations = append(w.generations, 0)
		w.alive = append(w.alive, false)
		id = entityID(len(w.generations))
	}
	idx := int(id) - 1
	w.generations[idx]++
	w.alive[idx] = true
	w.count++
	return makeEntity(id, w.generations[idx])
}

// DestroyEntity removes an entity and all of its components.
func DestroyEntity(w *World, e Entity) bool {
	if !IsAlive(w, e) {
		return false
	}
	id := e.id()
	for _, s := range w.stores {
		s.remove(id)
	}
	w.alive[int(id)-1] = false
	w.free = append(w.free, id)
	w.count--
	return true
}

// IsAlive reports whether an entity handle still refers to a live entity.
func IsAlive(w *World, e Entity) bool {
	if w == nil || !e.Valid() {
		return false
	}
	idx := int(e.id()) - 1
	if idx < 0 || idx >= len(w.alive) {
		return false
	}
	return w.alive[idx] && w.generations[idx] == e.generation()
}

// Entities returns every live entity in id order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.count)
	for i, ok := range w.alive {
		if ok {
			out = append(out, makeEntity(entityID(i+1), w.generations[i]))
		}
	}
	return out
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) entityFor(id entityID) Entity {
	return makeEntity(id, w.generations[int(id)-1])
}

// First returns the lowest-id live entity that has the component.
func First(w *World, kind Kind) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		return 0, false
	}
	var best entityID
	for _, id := range s.ids() {
		if best == 0 || id < best {
			best = id
		}
	}
	if best == 0 {
		return 0, false
	}
	return w.entityFor(best), true
}

// Query returns live entities owning every listed component, sorted by id.
func Query(w *World, kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		sets = append(sets, s)
	}
	sort.Slice(sets, func(i, j int) bool { return len(sets[i].ids()) < len(sets[j].ids()) })

	var out []Entity
	for _, id := range sets[0].ids() {
		matched := true
		for _, s := range sets[1:] {
			if !s.has(id) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, w.entityFor(id))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id() < out[j].id() })
	return out
}
