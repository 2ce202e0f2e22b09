package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/sparsecs/ecs"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The population the spawner keeps alive.")
	maxLife := flag.Int("max-life", 120, "Upper bound, in ticks, of an entity's lifetime.")
	seed := flag.Uint64("seed", 1, "Random seed for the workload.")
	profileMode := flag.String("profile", "", "Write a profile: cpu or mem.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	verbose := flag.Bool("v", false, "Log registry activity at debug level.")
	flag.Parse()

	log := newLogger(*verbose)
	defer log.Sync()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatal("unknown profile mode", zap.String("profile", *profileMode))
	}

	log.Info("starting ECS stress test")

	types := ecs.NewComponentRegistry()
	registerComponents(types)
	registry := ecs.NewRegistry(types, ecs.WithLogger(log.Named("registry")), ecs.WithCapacity(*entityCount))
	ecs.NewSingleton(registry, Population{Target: *entityCount, MaxLife: *maxLife})

	rng := rand.New(rand.NewPCG(*seed, *seed))
	scheduler := ecs.NewScheduler(registry)
	scheduler.RegisterEntity(&MoveSystem{})
	scheduler.RegisterEntity(&DecaySystem{})
	scheduler.Register(&SpawnSystem{Rand: rng})

	log.Info("populating registry", zap.Int("entities", *entityCount))
	for i := 0; i < *entityCount; i++ {
		spawnRandom(registry, rng, *maxLife)
	}
	registry.Apply()

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Components:     types.Len(),
		MaxLife:        *maxLife,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := startTime

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			res := scheduler.Update(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.Created += int64(res.Created)
			report.Destroyed += int64(res.Destroyed)
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Registry = registry.CollectStats()
	report.Scheduler = scheduler.GetStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished", zap.Int64("updates", report.TotalUpdates))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
