package ecs

// UpdateFrame is handed to every system during one Scheduler tick.
type UpdateFrame struct {
	DeltaTime float64
	Tick      uint64
	Registry  *Registry
}

func newUpdateFrame(dt float64, tick uint64, registry *Registry) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      tick,
		Registry:  registry,
	}
}
