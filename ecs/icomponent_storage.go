package ecs

import "reflect"

// componentStore is the type-erased view of a ComponentStore used by the
// Registry to dispatch by ComponentID.
type componentStore interface {
	ID() ComponentID
	Type() reflect.Type
	Has(e Entity) bool
	GetAny(e Entity) any
	Remove(e Entity)
	Len() int
	Entities() []Entity
}
