package game_test

import (
	"testing"

	"github.com/plus3/sparsecs/ecs"
	"github.com/plus3/sparsecs/game"
)

func newWorld(t *testing.T) *game.World {
	t.Helper()
	return game.NewWorld(nil, nil)
}

// spawn stages an entity, attaches components through fn and applies it.
func spawn(r *ecs.Registry, fn func(e ecs.Entity)) ecs.Entity {
	e := r.CreateEntity()
	fn(e)
	r.Apply()
	return e
}

func collide(r *ecs.Registry) {
	(&game.CollisionSystem{}).Execute(&ecs.UpdateFrame{Registry: r})
}
