package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Ticks           uint64
	LastApply       ApplyResult
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func newSystemStats(system any) *systemStatsInternal {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	}
}

func (s *systemStatsInternal) record(duration time.Duration) {
	s.executionCount++
	s.lastDuration = duration
	s.totalDuration += duration
	if duration < s.minDuration {
		s.minDuration = duration
	}
	if duration > s.maxDuration {
		s.maxDuration = duration
	}
}

// Scheduler drives one Registry tick by tick.
//
// Each Update visits every live entity and runs each EntitySystem on it in
// registration order, then runs each System, then applies the pending
// creations and destructions exactly once.
type Scheduler struct {
	registry      *Registry
	entitySystems []EntitySystem
	systems       []System
	entityStats   []*systemStatsInternal
	systemStats   []*systemStatsInternal
	entities      []Entity
	entityTimes   []time.Duration
	ticks         uint64
	lastApply     ApplyResult
	log           *zap.Logger
}

// NewScheduler creates a new scheduler for the given registry.
func NewScheduler(registry *Registry) *Scheduler {
	return &Scheduler{
		registry: registry,
		systems:  make([]System, 0),
		log:      registry.log,
	}
}

// Register adds a frame system and binds its Singleton fields.
func (s *Scheduler) Register(system System) {
	s.initializeSingletons(system)
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, newSystemStats(system))
}

// RegisterEntity adds a per-entity system and binds its Singleton fields.
func (s *Scheduler) RegisterEntity(system EntitySystem) {
	s.initializeSingletons(system)
	s.entitySystems = append(s.entitySystems, system)
	s.entityStats = append(s.entityStats, newSystemStats(system))
}

func (s *Scheduler) initializeSingletons(system any) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return
	}

	systemType := systemValue.Type()

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		if strings.HasPrefix(field.Type().Name(), "Singleton[") {
			initMethod := field.Addr().MethodByName("Init")
			if !initMethod.IsValid() {
				panic("Init method not found on Singleton field: " + fieldType.Name)
			}

			initMethod.Call([]reflect.Value{
				reflect.ValueOf(s.registry),
			})
		}
	}
}

// Update runs one tick with the given delta time in seconds.
func (s *Scheduler) Update(dt float64) ApplyResult {
	s.ticks++
	frame := newUpdateFrame(dt, s.ticks, s.registry)

	if len(s.entitySystems) > 0 {
		s.entities = s.registry.AppendEntities(s.entities[:0])
		if cap(s.entityTimes) < len(s.entitySystems) {
			s.entityTimes = make([]time.Duration, len(s.entitySystems))
		}
		s.entityTimes = s.entityTimes[:len(s.entitySystems)]
		clear(s.entityTimes)

		for _, e := range s.entities {
			for i, system := range s.entitySystems {
				start := time.Now()
				system.ExecuteEntity(frame, e)
				s.entityTimes[i] += time.Since(start)
			}
		}
		for i, d := range s.entityTimes {
			s.entityStats[i].record(d)
		}
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.systemStats[i].record(time.Since(start))
	}

	s.lastApply = s.registry.Apply()
	return s.lastApply
}

// Once is an alias of Update kept for drivers that only step the scheduler.
func (s *Scheduler) Once(dt float64) {
	s.Update(dt)
}

// Run executes ticks at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()
	s.log.Debug("scheduler started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("scheduler stopped", zap.Uint64("ticks", s.ticks))
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Update(dt)
		}
	}
}

// GetStats returns statistics about system execution. Entity systems are
// listed first, then frame systems, each in registration order.
func (s *Scheduler) GetStats() *SchedulerStats {
	all := make([]*systemStatsInternal, 0, len(s.entityStats)+len(s.systemStats))
	all = append(all, s.entityStats...)
	all = append(all, s.systemStats...)

	stats := &SchedulerStats{
		SystemCount: len(all),
		Ticks:       s.ticks,
		LastApply:   s.lastApply,
		Systems:     make([]SystemStats, len(all)),
	}

	var totalExecs int64
	for i, internal := range all {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
