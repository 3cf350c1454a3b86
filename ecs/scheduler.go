package ecs

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order. Systems implementing
// Pausable are skipped while the scheduler is frozen.
type Scheduler struct {
	systems []System
	frozen  bool
}

// Pausable marks systems that must not run while gameplay is frozen
// (dialog open, pause menu).
type Pausable interface {
	FreezesWithGameplay() bool
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) SetFrozen(frozen bool) {
	s.frozen = frozen
}

func (s *Scheduler) Frozen() bool {
	return s.frozen
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		if s.frozen {
			if p, ok := system.(Pausable); ok && p.FreezesWithGameplay() {
				continue
			}
		}
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
