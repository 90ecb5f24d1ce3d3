package ecs

// sparseSet is cache-friendly storage for one component kind keyed by
// entity id. Values are held as `any`; the typed accessors in
// generics.go keep the casts in one place.
type sparseSet struct {
	denseEntities []entityID
	denseValues   []any
	sparse        []int
}

func (s *sparseSet) has(id entityID) bool {
	if s == nil || id == 0 || int(id-1) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.denseEntities) && s.denseEntities[idx] == id
}

func (s *sparseSet) get(id entityID) any {
	if !s.has(id) {
		return nil
	}
	return s.denseValues[s.sparse[id-1]]
}

func (s *sparseSet) set(id entityID, v any) {
	if s == nil || id == 0 {
		return
	}
	for int(id-1) >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.has(id) {
		s.denseValues[s.sparse[id-1]] = v
		return
	}
	s.denseEntities = append(s.denseEntities, id)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseEntities) - 1
}

func (s *sparseSet) remove(id entityID) bool {
	if s == nil || !s.has(id) {
		return false
	}
	idx := s.sparse[id-1]
	last := len(s.denseEntities) - 1
	lastID := s.denseEntities[last]

	s.denseEntities[idx] = s.denseEntities[last]
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastID-1] = idx

	s.denseEntities = s.denseEntities[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[id-1] = -1
	return true
}

func (s *sparseSet) len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}
