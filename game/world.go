package game

import (
	"github.com/plus3/sparsecs/ecs"
	"github.com/plus3/sparsecs/level"
	"go.uber.org/zap"
)

// World bundles a registry with the gameplay systems driving it.
type World struct {
	Registry  *ecs.Registry
	Scheduler *ecs.Scheduler
	Input     *InputState
}

// NewWorld builds a registry with every gameplay component, installs the
// Controls and Arena singletons and registers the systems. lvl may be nil.
func NewWorld(lvl *level.Level, log *zap.Logger, opts ...ecs.Option) *World {
	if log == nil {
		log = zap.NewNop()
	}
	types := ecs.NewComponentRegistry()
	Register(types)
	r := ecs.NewRegistry(types, append([]ecs.Option{ecs.WithLogger(log)}, opts...)...)

	input := &InputState{Slot: -1}
	ecs.NewSingleton(r, Controls{Input: input})
	ecs.NewSingleton(r, Arena{Level: lvl})

	s := ecs.NewScheduler(r)
	s.RegisterEntity(&PlayerMovementSystem{})
	s.RegisterEntity(&SteeringSystem{})
	s.RegisterEntity(&WeaponSystem{Log: log.Named("weapons")})
	s.RegisterEntity(&FrictionSystem{})
	s.RegisterEntity(&MovementSystem{})
	s.RegisterEntity(&LifetimeSystem{})
	s.Register(&CollisionSystem{Log: log.Named("collision")})

	return &World{Registry: r, Scheduler: s, Input: input}
}

// Step advances the world by dt seconds and clears one-shot input.
func (w *World) Step(dt float64) ecs.ApplyResult {
	res := w.Scheduler.Update(dt)
	w.Input.Slot = -1
	return res
}
