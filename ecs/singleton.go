package ecs

import "reflect"

// Singleton provides access to a single value owned by a Registry but not
// attached to any entity: input state, level geometry, game clocks.
type Singleton[T any] struct {
	value *T
}

// NewSingleton returns the registry's T, creating it first if needed. When
// the value does not exist yet it is set to initializer, or the zero value.
func NewSingleton[T any](r *Registry, initializer ...T) *Singleton[T] {
	t := reflect.TypeFor[T]()
	if existing, ok := r.singletons[t]; ok {
		return &Singleton[T]{value: existing.(*T)}
	}

	value := new(T)
	if len(initializer) > 0 {
		*value = initializer[0]
	}
	r.singletons[t] = value
	return &Singleton[T]{value: value}
}

// Init binds the Singleton to r. The Scheduler calls it on Singleton fields
// of registered systems.
func (s *Singleton[T]) Init(r *Registry) {
	s.value = NewSingleton[T](r).value
}

// Get returns the shared value, or nil when the Singleton was never bound.
func (s *Singleton[T]) Get() *T {
	return s.value
}

// Exists reports whether the Singleton is bound to a value.
func (s *Singleton[T]) Exists() bool {
	return s.value != nil
}

// ReadSingleton returns r's T if one has been created.
func ReadSingleton[T any](r *Registry) (*T, bool) {
	v, ok := r.singletons[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}
