package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// ComponentStore is a sparse set holding every value of one component type.
//
// Values are packed in a dense slice with no holes. index maps an entity to its
// slot and entities maps a slot back to its entity; the two are inverses over
// the dense range. Removal swaps the tail into the freed slot, so a pointer
// returned by Get is only valid until the next Insert or Remove.
type ComponentStore[T any] struct {
	id       ComponentID
	data     []T
	entities []Entity
	index    *intmap.Map[Entity, int]
}

// NewComponentStore creates a standalone store with room for capacity values.
func NewComponentStore[T any](capacity int) *ComponentStore[T] {
	return newComponentStore[T](0, capacity)
}

func newComponentStore[T any](id ComponentID, capacity int) *ComponentStore[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &ComponentStore[T]{
		id:       id,
		data:     make([]T, 0, capacity),
		entities: make([]Entity, 0, capacity),
		index:    intmap.New[Entity, int](max(capacity, minMapCapacity)),
	}
}

// ID returns the component id the store was created for.
func (s *ComponentStore[T]) ID() ComponentID {
	return s.id
}

// Type returns the component type held by the store.
func (s *ComponentStore[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

// Insert appends value for e. An entity must not be inserted twice; debug
// builds panic, release builds overwrite the existing value.
func (s *ComponentStore[T]) Insert(e Entity, value T) {
	if slot, ok := s.index.Get(e); ok {
		assert(false, "entity %d already has component %s", e, s.Type())
		s.data[slot] = value
		return
	}
	s.index.Put(e, len(s.data))
	s.entities = append(s.entities, e)
	s.data = append(s.data, value)
}

// Get returns a pointer to e's value.
func (s *ComponentStore[T]) Get(e Entity) (*T, bool) {
	slot, ok := s.index.Get(e)
	if !ok {
		return nil, false
	}
	return &s.data[slot], true
}

// GetAny returns a pointer to e's value boxed as any, or nil.
func (s *ComponentStore[T]) GetAny(e Entity) any {
	if v, ok := s.Get(e); ok {
		return v
	}
	return nil
}

// Has reports whether e has a value in the store.
func (s *ComponentStore[T]) Has(e Entity) bool {
	return s.index.Has(e)
}

// Remove drops e's value by moving the last value into its slot.
// Removing an absent entity does nothing.
func (s *ComponentStore[T]) Remove(e Entity) {
	slot, ok := s.index.Get(e)
	if !ok {
		return
	}

	last := len(s.data) - 1
	moved := s.entities[last]
	s.data[slot] = s.data[last]
	s.entities[slot] = moved
	s.index.Put(moved, slot)

	var zero T
	s.data[last] = zero
	s.data = s.data[:last]
	s.entities = s.entities[:last]
	s.index.Del(e)

	if DebugAsserts {
		s.checkInvariants()
	}
}

// Len returns the number of stored values.
func (s *ComponentStore[T]) Len() int {
	return len(s.data)
}

// Entities returns the entities holding a value, in slot order. The slice is
// owned by the store and changes on the next Insert or Remove.
func (s *ComponentStore[T]) Entities() []Entity {
	return s.entities
}

// Values returns the dense values in slot order, parallel to Entities.
func (s *ComponentStore[T]) Values() []T {
	return s.data
}

func (s *ComponentStore[T]) checkInvariants() {
	assert(len(s.data) == len(s.entities), "%s: %d values but %d entities", s.Type(), len(s.data), len(s.entities))
	assert(s.index.Len() == len(s.entities), "%s: index has %d entries for %d slots", s.Type(), s.index.Len(), len(s.entities))
	for slot, e := range s.entities {
		got, ok := s.index.Get(e)
		assert(ok && got == slot, "%s: entity %d maps to slot %d, stored at %d", s.Type(), e, got, slot)
	}
}
