package ecs

import "github.com/softglow/duality/ecs/component"

// Add attaches (or replaces) a component on a live entity. Components
// are stored by pointer so systems mutate them in place; passing nil is
// an error rather than a silent delete.
func Add[T any](w *World, e Entity, k component.Kind[T], v *T) error {
	if w == nil || !k.Valid() {
		return component.ErrInvalidKind
	}
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if v == nil {
		return component.ErrNilComponent
	}
	w.ensureStore(k.ID()).set(e.id(), v)
	return nil
}

func Remove[T any](w *World, e Entity, k component.Kind[T]) bool {
	if w == nil || !k.Valid() || !w.entities.isAlive(e) {
		return false
	}
	return w.store(k.ID()).remove(e.id())
}

func Has[T any](w *World, e Entity, k component.Kind[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(k.ID()).has(e.id())
}

func Get[T any](w *World, e Entity, k component.Kind[T]) (*T, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	v := w.store(k.ID()).get(e.id())
	if v == nil {
		return nil, false
	}
	cast, ok := v.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}

// First returns an arbitrary live entity carrying the kind. Used for
// singletons (world mode, player) where at most one holder exists.
func First(w *World, id component.ID) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.store(id)
	for _, eid := range s.entitiesRef() {
		e := makeEntity(eid, w.entities.gen[eid-1])
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// Query returns live entities carrying every listed kind, iterating the
// smallest store. Allocates a fresh slice; callers may mutate it.
func Query(w *World, ids ...component.ID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	smallest := w.store(ids[0])
	for _, id := range ids[1:] {
		s := w.store(id)
		if s.len() < smallest.len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.len())
outer:
	for _, eid := range smallest.entitiesRef() {
		e := makeEntity(eid, w.entities.gen[eid-1])
		if !w.entities.isAlive(e) {
			continue
		}
		for _, id := range ids {
			if !w.store(id).has(eid) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}

// ForEach visits every live entity holding the kind. The id list is
// snapshotted first, so fn may add or remove components and destroy
// entities without corrupting the iteration.
func ForEach[T any](w *World, k component.Kind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	s := w.store(k.ID())
	ids := append([]entityID(nil), s.entitiesRef()...)
	for _, eid := range ids {
		e := makeEntity(eid, w.entities.gen[eid-1])
		if !w.entities.isAlive(e) {
			continue
		}
		if v, ok := s.get(eid).(*T); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits entities holding both kinds, iterating the first.
func ForEach2[A, B any](w *World, ka component.Kind[A], kb component.Kind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	ForEach(w, ka, func(e Entity, a *A) {
		b, ok := Get(w, e, kb)
		if !ok {
			return
		}
		fn(e, a, b)
	})
}

func (s *sparseSet) entitiesRef() []entityID {
	if s == nil {
		return nil
	}
	return s.denseEntities
}
