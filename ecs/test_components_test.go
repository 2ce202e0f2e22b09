package ecs_test

import "github.com/plus3/sparsecs/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type AI struct {
	State int
}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

type Inventory struct {
	Items []string
}

type Unregistered struct{}

func newTestTypes() *ecs.ComponentRegistry {
	types := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](types)
	ecs.RegisterComponent[Velocity](types)
	ecs.RegisterComponent[Name](types)
	ecs.RegisterComponent[Health](types)
	ecs.RegisterComponent[PlayerController](types)
	ecs.RegisterComponent[AI](types)
	ecs.RegisterComponent[Score](types)
	ecs.RegisterComponent[Tag](types)
	ecs.RegisterComponent[Inventory](types)
	return types
}

func newTestRegistry() *ecs.Registry {
	return ecs.NewRegistry(newTestTypes())
}

// spawn creates an entity, runs fn to attach components and applies it.
func spawn(r *ecs.Registry, fn func(e ecs.Entity)) ecs.Entity {
	e := r.CreateEntity()
	if fn != nil {
		fn(e)
	}
	r.Apply()
	return e
}
