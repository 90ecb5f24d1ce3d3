package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive = errors.New("ecs: entity not alive")
	ErrNilComponent   = errors.New("ecs: component is nil")
	ErrInvalidKind    = errors.New("ecs: invalid component kind")
)

// ID is the world-wide storage key for one component kind.
type ID uint32

func (id ID) Valid() bool {
	return id != 0
}

// Kind carries the storage ID together with the component's Go type, so
// the generic world accessors stay type-safe at call sites.
type Kind[T any] struct {
	id ID
}

// NewKind allocates a fresh kind. Called once per component at package
// init through the exported Component vars.
func NewKind[T any]() Kind[T] {
	return Kind[T]{id: ID(nextID.Add(1))}
}

func (k Kind[T]) ID() ID {
	return k.id
}

func (k Kind[T]) Valid() bool {
	return k.id != 0
}

var nextID atomic.Uint32
