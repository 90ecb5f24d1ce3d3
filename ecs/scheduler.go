package ecs

// System advances one concern by one tick.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order, once per tick. Order is
// load-bearing: the world-mode system must run before any zone or guide
// system that reads the mode within the same tick.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	return &Scheduler{systems: append([]System(nil), systems...)}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	if s == nil {
		return
	}
	for _, system := range s.systems {
		if system != nil {
			system.Update(w)
		}
	}
}

func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}
