package main

import (
	"math/rand/v2"

	"github.com/plus3/sparsecs/ecs"
)

type Position struct{ X, Y float32 }

type Velocity struct{ X, Y float32 }

// Decay counts down to the entity's destruction.
type Decay struct{ Ticks int }

type Payload struct{ Data [8]uint64 }

type Marker struct{}

func registerComponents(types *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](types)
	ecs.RegisterComponent[Velocity](types)
	ecs.RegisterComponent[Decay](types)
	ecs.RegisterComponent[Payload](types)
	ecs.RegisterComponent[Marker](types)
}

// spawnRandom stages an entity with a random subset of components. Every
// entity decays so the population churns.
func spawnRandom(r *ecs.Registry, rng *rand.Rand, maxLife int) ecs.Entity {
	e := r.CreateEntity()
	ecs.Add(r, e, Decay{Ticks: 1 + rng.IntN(maxLife)})
	if rng.IntN(4) != 0 {
		ecs.Add(r, e, Position{X: rng.Float32() * 1000, Y: rng.Float32() * 1000})
	}
	if rng.IntN(2) == 0 {
		ecs.Add(r, e, Velocity{X: rng.Float32() - 0.5, Y: rng.Float32() - 0.5})
	}
	if rng.IntN(8) == 0 {
		ecs.Add(r, e, Payload{})
	}
	if rng.IntN(3) == 0 {
		ecs.Add(r, e, Marker{})
	}
	return e
}

type MoveSystem struct{}

func (s *MoveSystem) ExecuteEntity(frame *ecs.UpdateFrame, e ecs.Entity) {
	pos, ok := ecs.Get[Position](frame.Registry, e)
	if !ok {
		return
	}
	vel, ok := ecs.Get[Velocity](frame.Registry, e)
	if !ok {
		return
	}
	pos.X += vel.X * float32(frame.DeltaTime)
	pos.Y += vel.Y * float32(frame.DeltaTime)
}

type DecaySystem struct{}

func (s *DecaySystem) ExecuteEntity(frame *ecs.UpdateFrame, e ecs.Entity) {
	d, ok := ecs.Get[Decay](frame.Registry, e)
	if !ok {
		return
	}
	d.Ticks--
	if d.Ticks <= 0 {
		frame.Registry.Destroy(e)
	}
}

// Population tracks the target entity count for the spawner.
type Population struct {
	Target  int
	MaxLife int
}

// SpawnSystem refills the registry up to the target population, counting
// both live entities and those already staged this tick.
type SpawnSystem struct {
	Population ecs.Singleton[Population]
	Rand       *rand.Rand
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	pop := s.Population.Get()
	stats := frame.Registry.CollectStats()
	missing := pop.Target - stats.LiveEntities + stats.PendingDestroys - stats.PendingCreates
	for i := 0; i < missing; i++ {
		spawnRandom(frame.Registry, s.Rand, pop.MaxLife)
	}
}
