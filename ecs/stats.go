package ecs

import "reflect"

// RegistryStats is a point-in-time summary of a Registry.
type RegistryStats struct {
	LiveEntities    int
	PendingCreates  int
	PendingDestroys int
	FreeIDs         int
	NextID          Entity
	SingletonCount  int
	Components      []ComponentStats
}

// ComponentStats describes one component store.
type ComponentStats struct {
	ID    ComponentID
	Type  reflect.Type
	Count int
}

// CollectStats gathers counts from the directory and every store.
func (r *Registry) CollectStats() *RegistryStats {
	stats := &RegistryStats{
		LiveEntities:    len(r.dir.live),
		PendingCreates:  len(r.dir.pending.creates),
		PendingDestroys: len(r.dir.pending.destroys),
		FreeIDs:         len(r.dir.free),
		NextID:          r.dir.next,
		SingletonCount:  len(r.singletons),
		Components:      make([]ComponentStats, len(r.stores)),
	}
	for i, s := range r.stores {
		stats.Components[i] = ComponentStats{
			ID:    s.ID(),
			Type:  s.Type(),
			Count: s.Len(),
		}
	}
	return stats
}
