package main

import (
	"bytes"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/sparsecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkloadKeepsPopulation(t *testing.T) {
	types := ecs.NewComponentRegistry()
	registerComponents(types)
	r := ecs.NewRegistry(types)
	ecs.NewSingleton(r, Population{Target: 200, MaxLife: 5})

	rng := rand.New(rand.NewPCG(7, 7))
	s := ecs.NewScheduler(r)
	s.RegisterEntity(&MoveSystem{})
	s.RegisterEntity(&DecaySystem{})
	s.Register(&SpawnSystem{Rand: rng})

	for i := 0; i < 200; i++ {
		spawnRandom(r, rng, 5)
	}
	r.Apply()

	var destroyed int
	for i := 0; i < 20; i++ {
		res := s.Update(1.0 / 60)
		destroyed += res.Destroyed
		require.Equal(t, 200, r.Len())
		assert.Equal(t, res.Destroyed, res.Created)
	}
	assert.Positive(t, destroyed)
	assert.Equal(t, 200, ecs.Count[Decay](r))

	stats := r.CollectStats()
	assert.LessOrEqual(t, int(stats.NextID), 400, "freed ids are reused")
}

func TestReportGenerate(t *testing.T) {
	report := &Report{Entities: 10, Components: 5}
	report.UpdateTime.Samples = []time.Duration{3, 1, 2}
	report.UpdateTime.Finalize()

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	assert.Contains(t, buf.String(), "Target Population:** 10")
	assert.Equal(t, time.Duration(1), report.UpdateTime.Min)
	assert.Equal(t, time.Duration(2), report.UpdateTime.Avg)
}
