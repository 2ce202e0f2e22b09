package ecs

import (
	"fmt"
	"reflect"
	"slices"
)

// ComponentID is the stable zero-based index of a registered component type.
// It is the bit position of the type in every entity's Mask.
type ComponentID uint32

// ComponentRegistry assigns component types their ComponentID.
// Each Registry is built from a ComponentRegistry; once the first Registry
// exists the set of types is sealed and further registration panics.
type ComponentRegistry struct {
	types     []reflect.Type
	ids       map[reflect.Type]ComponentID
	factories []func(capacity int) componentStore
	sealed    bool
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids: make(map[reflect.Type]ComponentID),
	}
}

// RegisterComponent registers T and returns its ComponentID. Registering the
// same type again returns the id it already has.
//
// Registration must happen at startup: it panics once a Registry has been
// built from r, or when MaxComponents types are already registered.
func RegisterComponent[T any](r *ComponentRegistry) ComponentID {
	t := reflect.TypeFor[T]()
	if id, ok := r.ids[t]; ok {
		return id
	}
	if r.sealed {
		panic("ecs: cannot register component " + t.String() + " after a Registry was built")
	}
	if len(r.types) >= MaxComponents {
		panic(fmt.Sprintf("ecs: cannot register component %s: limit of %d types reached", t, MaxComponents))
	}

	id := ComponentID(len(r.types))
	r.types = append(r.types, t)
	r.ids[t] = id
	r.factories = append(r.factories, func(capacity int) componentStore {
		return newComponentStore[T](id, capacity)
	})
	return id
}

// ComponentIDOf returns the id registered for T.
func ComponentIDOf[T any](r *ComponentRegistry) (ComponentID, bool) {
	id, ok := r.ids[reflect.TypeFor[T]()]
	return id, ok
}

// Len returns the number of registered types.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}

// Types returns the registered types in ComponentID order.
func (r *ComponentRegistry) Types() []reflect.Type {
	return slices.Clone(r.types)
}

// mustID returns the id of t, panicking for unregistered types.
func (r *ComponentRegistry) mustID(t reflect.Type) ComponentID {
	id, ok := r.ids[t]
	if !ok {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return id
}

// seal freezes the type set and returns one fresh store per type.
func (r *ComponentRegistry) seal(capacity int) []componentStore {
	r.sealed = true
	stores := make([]componentStore, len(r.factories))
	for i, factory := range r.factories {
		stores[i] = factory(capacity)
	}
	return stores
}
