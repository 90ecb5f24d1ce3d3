package ecs

import "fmt"

// Entity is a generational handle: the low half indexes a slot, the
// high half records the generation the slot had when the handle was
// issued. Recycling a slot bumps its generation, so handles into freed
// slots read as dead instead of aliasing the new occupant.
type Entity uint64

// Nil is the zero handle. No live entity ever compares equal to it.
const Nil Entity = 0

type (
	entityID   uint32
	generation uint32
)

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint64(e) >> entityIDBits)
}

// Valid reports whether the handle could ever name an entity. It says
// nothing about liveness; that is IsAlive's question.
func (e Entity) Valid() bool {
	return e != Nil
}

func (e Entity) String() string {
	return fmt.Sprintf("entity %d@%d", uint64(e.id()), uint64(e.generation()))
}
