package ecs_test

import (
	"fmt"

	"github.com/plus3/sparsecs/ecs"
)

type CleanupSystem struct{}

func (s *CleanupSystem) ExecuteEntity(frame *ecs.UpdateFrame, e ecs.Entity) {
	if h, ok := ecs.Get[Health](frame.Registry, e); ok && h.Current <= 0 {
		frame.Registry.Destroy(e)
	}
}

// ExampleRegistry_Destroy shows why destruction is deferred: systems can
// destroy entities while the scheduler walks them, and every system in the
// tick still sees the same set of live entities.
func ExampleRegistry_Destroy() {
	types := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](types)
	ecs.RegisterComponent[Health](types)
	r := ecs.NewRegistry(types)

	for i, hp := range []int{0, 50, 100} {
		e := r.CreateEntity()
		ecs.Add(r, e, Position{X: float32(i * 10)})
		ecs.Add(r, e, Health{Current: hp, Max: 100})
	}
	r.Apply()

	scheduler := ecs.NewScheduler(r)
	scheduler.RegisterEntity(&CleanupSystem{})
	res := scheduler.Update(1.0)

	fmt.Printf("Destroyed: %d\n", res.Destroyed)
	fmt.Printf("Remaining entities: %d\n", ecs.Count[Position](r))

	// Freed ids are handed out again before new ones.
	fmt.Printf("Next id: %d\n", r.CreateEntity())

	// Output:
	// Destroyed: 1
	// Remaining entities: 2
	// Next id: 0
}
