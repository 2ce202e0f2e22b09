package ecs

// Entity is an opaque handle to a game object. It carries no data itself.
//
// Ids are recycled once a destroyed entity has been applied, so an Entity kept
// across ticks is a weak reference: check Registry.Exists (or Has) before
// using it, or hold an EntityRef when reuse must be detected.
type Entity uint32

// EntityRef pairs an entity id with the generation it was issued under.
// A ref stops resolving as soon as its entity is destroyed, even when the id
// has already been handed to a new entity.
type EntityRef struct {
	Entity     Entity
	Generation uint32
}
