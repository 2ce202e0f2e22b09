package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/sparsecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	ExecuteCount int
}

func (s *MovementSystem) ExecuteEntity(frame *ecs.UpdateFrame, e ecs.Entity) {
	s.ExecuteCount++
	if !ecs.Has2[Position, Velocity](frame.Registry, e) {
		return
	}
	pos, _ := ecs.Get[Position](frame.Registry, e)
	vel, _ := ecs.Get[Velocity](frame.Registry, e)
	pos.X += vel.DX * float32(frame.DeltaTime)
	pos.Y += vel.DY * float32(frame.DeltaTime)
}

type SpawnerSystem struct {
	Spawned []ecs.Entity
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	e := frame.Registry.CreateEntity()
	ecs.Add(frame.Registry, e, Position{})
	s.Spawned = append(s.Spawned, e)
}

type ReaperSystem struct{}

func (s *ReaperSystem) ExecuteEntity(frame *ecs.UpdateFrame, e ecs.Entity) {
	if h, ok := ecs.Get[Health](frame.Registry, e); ok && h.Current <= 0 {
		frame.Registry.Destroy(e)
	}
}

type CounterState struct {
	Frames int
}

type CounterSystem struct {
	State ecs.Singleton[CounterState]
}

func (s *CounterSystem) Execute(frame *ecs.UpdateFrame) {
	s.State.Get().Frames++
}

func TestSchedulerDeltaTime(t *testing.T) {
	r := newTestRegistry()
	e := spawn(r, func(e ecs.Entity) {
		ecs.Add(r, e, Position{})
		ecs.Add(r, e, Velocity{DX: 10, DY: 20})
	})

	scheduler := ecs.NewScheduler(r)
	scheduler.RegisterEntity(&MovementSystem{})
	scheduler.Update(0.5)

	pos, _ := ecs.Get[Position](r, e)
	assert.Equal(t, Position{X: 5, Y: 10}, *pos)
}

func TestSchedulerVisitsEveryLiveEntity(t *testing.T) {
	r := newTestRegistry()
	for i := 0; i < 3; i++ {
		spawn(r, nil)
	}
	pending := r.CreateEntity()

	movement := &MovementSystem{}
	scheduler := ecs.NewScheduler(r)
	scheduler.RegisterEntity(movement)

	scheduler.Update(1)
	assert.Equal(t, 3, movement.ExecuteCount, "pending entity is not visited")
	assert.True(t, r.Exists(pending))

	scheduler.Update(1)
	assert.Equal(t, 7, movement.ExecuteCount)
}

func TestSchedulerAppliesOncePerTick(t *testing.T) {
	r := newTestRegistry()
	spawner := &SpawnerSystem{}
	movement := &MovementSystem{}

	scheduler := ecs.NewScheduler(r)
	scheduler.RegisterEntity(movement)
	scheduler.Register(spawner)

	res := scheduler.Update(1)
	assert.Equal(t, ecs.ApplyResult{Created: 1}, res)
	assert.Equal(t, 0, movement.ExecuteCount)
	require.Len(t, spawner.Spawned, 1)
	assert.True(t, r.Exists(spawner.Spawned[0]))

	scheduler.Update(1)
	assert.Equal(t, 1, movement.ExecuteCount)
	assert.Equal(t, 2, r.Len())
}

func TestSchedulerDestroyIsVisibleUntilApply(t *testing.T) {
	r := newTestRegistry()
	dead := spawn(r, func(e ecs.Entity) { ecs.Add(r, e, Health{Current: 0}) })
	alive := spawn(r, func(e ecs.Entity) { ecs.Add(r, e, Health{Current: 5}) })

	var observed []ecs.Entity
	observer := ecs.EntitySystemFunc(func(frame *ecs.UpdateFrame, e ecs.Entity) {
		observed = append(observed, e)
	})

	scheduler := ecs.NewScheduler(r)
	scheduler.RegisterEntity(&ReaperSystem{})
	scheduler.RegisterEntity(observer)

	res := scheduler.Update(1)
	assert.Equal(t, 1, res.Destroyed)
	assert.ElementsMatch(t, []ecs.Entity{dead, alive}, observed)
	assert.False(t, r.Exists(dead))
	assert.True(t, r.Exists(alive))
}

func TestSchedulerBindsSingletons(t *testing.T) {
	r := newTestRegistry()
	counter := &CounterSystem{}

	scheduler := ecs.NewScheduler(r)
	scheduler.Register(counter)
	scheduler.Update(1)
	scheduler.Update(1)

	state, ok := ecs.ReadSingleton[CounterState](r)
	require.True(t, ok)
	assert.Equal(t, 2, state.Frames)
}

func TestSchedulerStats(t *testing.T) {
	r := newTestRegistry()
	scheduler := ecs.NewScheduler(r)
	scheduler.RegisterEntity(&MovementSystem{})
	scheduler.Register(&SpawnerSystem{})

	for i := 0; i < 4; i++ {
		scheduler.Update(0.016)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, uint64(4), stats.Ticks)
	assert.Equal(t, int64(8), stats.TotalExecutions)
	assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
	assert.Equal(t, "SpawnerSystem", stats.Systems[1].Name)
	assert.Equal(t, ecs.ApplyResult{Created: 1}, stats.LastApply)
	for _, s := range stats.Systems {
		assert.LessOrEqual(t, s.MinDuration, s.MaxDuration)
	}
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	r := newTestRegistry()
	spawner := &SpawnerSystem{}
	scheduler := ecs.NewScheduler(r)
	scheduler.Register(spawner)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan bool)
	go func() {
		scheduler.Run(ctx, 1*time.Millisecond)
		done <- true
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("scheduler did not stop after context cancellation")
	}

	assert.NotEmpty(t, spawner.Spawned)
}
