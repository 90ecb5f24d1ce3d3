package ecs

// entityStore tracks entity generations and a free list of recycled ids.
type entityStore struct {
	nextID entityID
	gen    []generation
	dead   []bool
	free   []entityID
}

func (s *entityStore) create() Entity {
	var id entityID
	if len(s.free) > 0 {
		id = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
		s.dead[id-1] = false
	} else {
		s.nextID++
		id = s.nextID
		s.gen = append(s.gen, 0)
		s.dead = append(s.dead, false)
	}
	return makeEntity(id, s.gen[id-1])
}

func (s *entityStore) destroy(e Entity) {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) || s.gen[id-1] != e.generation() {
		return
	}
	s.gen[id-1]++
	s.dead[id-1] = true
	s.free = append(s.free, id)
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return !s.dead[id-1] && s.gen[id-1] == e.generation()
}

func (s *entityStore) alive() []Entity {
	out := make([]Entity, 0, len(s.gen))
	for i, g := range s.gen {
		if !s.dead[i] {
			out = append(out, makeEntity(entityID(i+1), g))
		}
	}
	return out
}
