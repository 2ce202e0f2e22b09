package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/sparsecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterComponentAssignsSequentialIDs(t *testing.T) {
	types := ecs.NewComponentRegistry()

	assert.Equal(t, ecs.ComponentID(0), ecs.RegisterComponent[Position](types))
	assert.Equal(t, ecs.ComponentID(1), ecs.RegisterComponent[Velocity](types))
	assert.Equal(t, ecs.ComponentID(2), ecs.RegisterComponent[Score](types))

	// Registering again keeps the original id.
	assert.Equal(t, ecs.ComponentID(1), ecs.RegisterComponent[Velocity](types))
	assert.Equal(t, 3, types.Len())

	assert.Equal(t, []reflect.Type{
		reflect.TypeFor[Position](),
		reflect.TypeFor[Velocity](),
		reflect.TypeFor[Score](),
	}, types.Types())

	id, ok := ecs.ComponentIDOf[Score](types)
	assert.True(t, ok)
	assert.Equal(t, ecs.ComponentID(2), id)

	_, ok = ecs.ComponentIDOf[Health](types)
	assert.False(t, ok)
}

func TestRegisterAfterSealPanics(t *testing.T) {
	types := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](types)
	ecs.NewRegistry(types)

	assert.Panics(t, func() {
		ecs.RegisterComponent[Velocity](types)
	})
	assert.NotPanics(t, func() {
		ecs.RegisterComponent[Position](types)
	})
}

type bounded[T any] struct{ v T }

// registerFill registers MaxComponents distinct array types.
func registerFill(types *ecs.ComponentRegistry) {
	ecs.RegisterComponent[[0]byte](types)
	ecs.RegisterComponent[[1]byte](types)
	ecs.RegisterComponent[[2]byte](types)
	ecs.RegisterComponent[[3]byte](types)
	ecs.RegisterComponent[[4]byte](types)
	ecs.RegisterComponent[[5]byte](types)
	ecs.RegisterComponent[[6]byte](types)
	ecs.RegisterComponent[[7]byte](types)
	ecs.RegisterComponent[[8]byte](types)
	ecs.RegisterComponent[[9]byte](types)
	ecs.RegisterComponent[[10]byte](types)
	ecs.RegisterComponent[[11]byte](types)
	ecs.RegisterComponent[[12]byte](types)
	ecs.RegisterComponent[[13]byte](types)
	ecs.RegisterComponent[[14]byte](types)
	ecs.RegisterComponent[[15]byte](types)
	ecs.RegisterComponent[[16]byte](types)
	ecs.RegisterComponent[[17]byte](types)
	ecs.RegisterComponent[[18]byte](types)
	ecs.RegisterComponent[[19]byte](types)
	ecs.RegisterComponent[[20]byte](types)
	ecs.RegisterComponent[[21]byte](types)
	ecs.RegisterComponent[[22]byte](types)
	ecs.RegisterComponent[[23]byte](types)
	ecs.RegisterComponent[[24]byte](types)
	ecs.RegisterComponent[[25]byte](types)
	ecs.RegisterComponent[[26]byte](types)
	ecs.RegisterComponent[[27]byte](types)
	ecs.RegisterComponent[[28]byte](types)
	ecs.RegisterComponent[[29]byte](types)
	ecs.RegisterComponent[[30]byte](types)
	ecs.RegisterComponent[[31]byte](types)
	ecs.RegisterComponent[[32]byte](types)
	ecs.RegisterComponent[[33]byte](types)
	ecs.RegisterComponent[[34]byte](types)
	ecs.RegisterComponent[[35]byte](types)
	ecs.RegisterComponent[[36]byte](types)
	ecs.RegisterComponent[[37]byte](types)
	ecs.RegisterComponent[[38]byte](types)
	ecs.RegisterComponent[[39]byte](types)
	ecs.RegisterComponent[[40]byte](types)
	ecs.RegisterComponent[[41]byte](types)
	ecs.RegisterComponent[[42]byte](types)
	ecs.RegisterComponent[[43]byte](types)
	ecs.RegisterComponent[[44]byte](types)
	ecs.RegisterComponent[[45]byte](types)
	ecs.RegisterComponent[[46]byte](types)
	ecs.RegisterComponent[[47]byte](types)
	ecs.RegisterComponent[[48]byte](types)
	ecs.RegisterComponent[[49]byte](types)
	ecs.RegisterComponent[[50]byte](types)
	ecs.RegisterComponent[[51]byte](types)
	ecs.RegisterComponent[[52]byte](types)
	ecs.RegisterComponent[[53]byte](types)
	ecs.RegisterComponent[[54]byte](types)
	ecs.RegisterComponent[[55]byte](types)
	ecs.RegisterComponent[[56]byte](types)
	ecs.RegisterComponent[[57]byte](types)
	ecs.RegisterComponent[[58]byte](types)
	ecs.RegisterComponent[[59]byte](types)
	ecs.RegisterComponent[[60]byte](types)
	ecs.RegisterComponent[[61]byte](types)
	ecs.RegisterComponent[[62]byte](types)
	ecs.RegisterComponent[[63]byte](types)
}

func TestRegisterBeyondCapacityPanics(t *testing.T) {
	types := ecs.NewComponentRegistry()
	registerFill(types)
	require.Equal(t, ecs.MaxComponents, types.Len())

	assert.PanicsWithValue(t,
		fmt.Sprintf("ecs: cannot register component ecs_test.bounded[string]: limit of %d types reached", ecs.MaxComponents),
		func() { ecs.RegisterComponent[bounded[string]](types) },
	)
}

func TestUnregisteredComponentPanics(t *testing.T) {
	r := newTestRegistry()
	e := spawn(r, nil)

	assert.PanicsWithValue(t, "ecs: component type ecs_test.Unregistered not registered", func() {
		ecs.Add(r, e, Unregistered{})
	})
	assert.Panics(t, func() {
		ecs.Has[Unregistered](r, e)
	})
}

func TestRegistriesAreIndependent(t *testing.T) {
	types := newTestTypes()
	a := ecs.NewRegistry(types)
	b := ecs.NewRegistry(types)

	ea := spawn(a, func(e ecs.Entity) { ecs.Add(a, e, Position{X: 1}) })
	eb := spawn(b, func(e ecs.Entity) { ecs.Add(b, e, Position{X: 2}) })
	assert.Equal(t, ea, eb)

	pa, _ := ecs.Get[Position](a, ea)
	pb, _ := ecs.Get[Position](b, eb)
	assert.Equal(t, float32(1), pa.X)
	assert.Equal(t, float32(2), pb.X)
	assert.Equal(t, 1, ecs.Store[Position](a).Len())
	assert.Equal(t, 1, ecs.Store[Position](b).Len())
}
