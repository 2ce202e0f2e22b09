package game_test

import (
	"strings"
	"testing"

	"github.com/plus3/sparsecs/ecs"
	"github.com/plus3/sparsecs/game"
	"github.com/plus3/sparsecs/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerMovementNormalizesAxis(t *testing.T) {
	w := newWorld(t)
	r := w.Registry
	player := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.PlayerMovement{Speed: 100})
		ecs.Add(r, e, game.Velocity{})
	})

	w.Input.MoveX, w.Input.MoveY = 1, 1
	w.Step(0.1)

	vel, ok := ecs.Get[game.Velocity](r, player)
	require.True(t, ok)
	assert.InDelta(t, 70.71, vel.X, 0.01)
	assert.InDelta(t, 70.71, vel.Y, 0.01)

	w.Input.MoveX, w.Input.MoveY = 0, 0
	w.Step(0.1)
	assert.Zero(t, vel.X)
	assert.Zero(t, vel.Y)
}

func TestSteeringFollowsTarget(t *testing.T) {
	w := newWorld(t)
	r := w.Registry
	target := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{X: 100})
	})
	chaser := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{})
		ecs.Add(r, e, game.Velocity{})
		ecs.Add(r, e, game.EnemySteering{Target: r.Ref(target), Speed: 50})
	})

	w.Step(1)

	vel, _ := ecs.Get[game.Velocity](r, chaser)
	pos, _ := ecs.Get[game.Position](r, chaser)
	assert.InDelta(t, 50, vel.X, 0.001)
	assert.InDelta(t, 0, vel.Y, 0.001)
	assert.InDelta(t, 50, pos.X, 0.001)
}

func TestSteeringDropsDestroyedTarget(t *testing.T) {
	w := newWorld(t)
	r := w.Registry
	target := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{X: 100})
	})
	chaser := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{})
		ecs.Add(r, e, game.Velocity{X: 20})
		ecs.Add(r, e, game.EnemySteering{Target: r.Ref(target), Speed: 50})
	})

	r.Destroy(target)
	r.Apply()
	w.Step(1)

	assert.False(t, ecs.Has[game.EnemySteering](r, chaser))
	vel, _ := ecs.Get[game.Velocity](r, chaser)
	assert.Zero(t, vel.X)
	pos, _ := ecs.Get[game.Position](r, chaser)
	assert.Zero(t, pos.X)
}

func TestSteeringDropsRecycledTarget(t *testing.T) {
	w := newWorld(t)
	r := w.Registry
	target := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{X: 100})
	})
	chaser := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{})
		ecs.Add(r, e, game.Velocity{})
		ecs.Add(r, e, game.EnemySteering{Target: r.Ref(target), Speed: 50})
	})

	r.Destroy(target)
	r.Apply()
	impostor := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{X: -100})
	})
	require.Equal(t, target, impostor, "the freed id is handed out again")
	w.Step(1)

	assert.False(t, ecs.Has[game.EnemySteering](r, chaser), "the new holder of the id is not the target")
	vel, _ := ecs.Get[game.Velocity](r, chaser)
	assert.Zero(t, vel.X)
}

func TestEnemyIgnoresRecycledTarget(t *testing.T) {
	w := newWorld(t)
	r := w.Registry
	target := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{Y: 100})
	})
	spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{})
		ecs.Add(r, e, game.WeaponArsenal{Weapons: game.DefaultArsenal()})
		ecs.Add(r, e, game.EnemyShootingLogic{Target: r.Ref(target)})
	})

	r.Destroy(target)
	r.Apply()
	impostor := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{Y: -100})
	})
	require.Equal(t, target, impostor)
	w.Step(0.1)

	assert.Empty(t, ecs.EntitiesWith[game.Bullet](r))
}

func TestWeaponFiresSpread(t *testing.T) {
	w := newWorld(t)
	r := w.Registry
	shooter := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{})
		ecs.Add(r, e, game.WeaponArsenal{Weapons: []game.Weapon{{
			FireRate:     1,
			BulletSpeed:  10,
			BulletSpread: 90,
			BulletsShot:  3,
			Damage:       1,
			Group:        game.Hostile,
		}}})
		ecs.Add(r, e, game.PlayerWeaponLogic{})
	})

	w.Input.Fire = true
	w.Input.AimX = 10
	res := w.Step(0.1)

	assert.Equal(t, 3, res.Created)
	bullets := ecs.EntitiesWith[game.Bullet](r)
	require.Len(t, bullets, 3)

	middle, ok := ecs.Get[game.Velocity](r, bullets[1])
	require.True(t, ok)
	assert.InDelta(t, 10, middle.X, 0.001)
	assert.InDelta(t, 0, middle.Y, 0.001)

	first, _ := ecs.Get[game.Velocity](r, bullets[0])
	assert.InDelta(t, 7.071, first.X, 0.01)
	assert.InDelta(t, -7.071, first.Y, 0.01)

	bullet, _ := ecs.Get[game.Bullet](r, bullets[0])
	assert.Equal(t, game.Hostile, bullet.Group)

	res = w.Step(0.1)
	assert.Zero(t, res.Created, "cooldown blocks the next shot")

	arsenal, _ := ecs.Get[game.WeaponArsenal](r, shooter)
	assert.InDelta(t, 0.9, arsenal.Weapons[0].Cooldown, 0.001)
}

func TestWeaponHoldsFireWithoutTrigger(t *testing.T) {
	w := newWorld(t)
	r := w.Registry
	spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{})
		ecs.Add(r, e, game.WeaponArsenal{Weapons: game.DefaultArsenal()})
		ecs.Add(r, e, game.PlayerWeaponLogic{})
	})

	w.Input.AimX = 10
	res := w.Step(0.1)
	assert.Zero(t, res.Created)
}

func TestWeaponSelection(t *testing.T) {
	w := newWorld(t)
	r := w.Registry
	shooter := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{})
		ecs.Add(r, e, game.WeaponArsenal{Weapons: game.DefaultArsenal()})
		ecs.Add(r, e, game.PlayerWeaponLogic{})
	})

	w.Input.Slot = 1
	w.Step(0.1)

	arsenal, _ := ecs.Get[game.WeaponArsenal](r, shooter)
	assert.Equal(t, 1, arsenal.Selected)
	assert.Equal(t, "spray", arsenal.Current().Name)
	assert.Equal(t, -1, w.Input.Slot)
}

func TestEnemyShootsAtTarget(t *testing.T) {
	w := newWorld(t)
	r := w.Registry
	target := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{Y: 100})
	})
	spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{})
		ecs.Add(r, e, game.WeaponArsenal{Weapons: game.WithGroup(game.DefaultArsenal(), game.Friendly)})
		ecs.Add(r, e, game.EnemyShootingLogic{Target: r.Ref(target)})
	})

	w.Step(0.1)

	bullets := ecs.EntitiesWith[game.Bullet](r)
	require.Len(t, bullets, 1)
	vel, _ := ecs.Get[game.Velocity](r, bullets[0])
	assert.InDelta(t, 0, vel.X, 0.001)
	assert.InDelta(t, 200, vel.Y, 0.001)
	bullet, _ := ecs.Get[game.Bullet](r, bullets[0])
	assert.Equal(t, game.Friendly, bullet.Group)

	r.Destroy(target)
	r.Apply()
	w.Step(1)
	assert.Len(t, ecs.EntitiesWith[game.Bullet](r), 1, "no target, no shots")
}

func TestFrictionDecaysVelocity(t *testing.T) {
	w := newWorld(t)
	r := w.Registry
	e := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Velocity{X: 10, Y: -4})
		ecs.Add(r, e, game.Friction{Amount: 5})
	})

	w.Step(0.1)
	vel, _ := ecs.Get[game.Velocity](r, e)
	assert.InDelta(t, 5, vel.X, 0.001)
	assert.InDelta(t, -2, vel.Y, 0.001)

	w.Step(1)
	assert.Zero(t, vel.X)
	assert.Zero(t, vel.Y)
}

func TestLifetimeExpires(t *testing.T) {
	w := newWorld(t)
	r := w.Registry
	e := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Lifetime{Remaining: 0.5})
	})

	w.Step(0.3)
	assert.True(t, r.Exists(e))

	res := w.Step(0.3)
	assert.Equal(t, 1, res.Destroyed)
	assert.False(t, r.Exists(e))
}

func TestMovementStopsAtWalls(t *testing.T) {
	lvl, err := level.Parse(strings.NewReader("wwww\nw  w\nwwww\n"), 10)
	require.NoError(t, err)
	w := game.NewWorld(lvl, nil)
	r := w.Registry

	walker := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{X: 15, Y: 15})
		ecs.Add(r, e, game.Velocity{X: 100})
	})
	bullet := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, game.Position{X: 15, Y: 15})
		ecs.Add(r, e, game.Velocity{Y: 100})
		ecs.Add(r, e, game.Bullet{Damage: 1})
	})

	w.Step(0.1)
	pos, _ := ecs.Get[game.Position](r, walker)
	assert.InDelta(t, 25, pos.X, 0.001)

	w.Step(0.1)
	assert.InDelta(t, 25, pos.X, 0.001, "walls block movement")
	assert.False(t, r.Exists(bullet), "bullets break on walls")
}
