package ecs

import "github.com/softglow/duality/ecs/component"

// World owns entities and per-kind component storage. All access goes
// through the free generic functions in generics.go; systems receive
// the world once per tick from the scheduler.
type World struct {
	entities entityStore
	stores   map[component.ID]*sparseSet
}

func NewWorld() *World {
	return &World{
		stores: make(map[component.ID]*sparseSet),
	}
}

func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity kills the entity and drops all of its components.
// Returns false for handles that are already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	w.entities.destroy(e)
	return true
}

func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entity handles. Allocates; intended for
// tests and scene teardown, not per-tick iteration.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.alive()
}

func (w *World) store(id component.ID) *sparseSet {
	if w == nil || !id.Valid() {
		return nil
	}
	return w.stores[id]
}

func (w *World) ensureStore(id component.ID) *sparseSet {
	if w == nil || !id.Valid() {
		return nil
	}
	s, ok := w.stores[id]
	if !ok {
		s = &sparseSet{}
		w.stores[id] = s
	}
	return s
}
