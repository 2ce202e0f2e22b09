package ecs

// System runs once per frame. User-defined systems can include Singleton
// fields, which the Scheduler binds at registration, and any custom state that
// should persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// EntitySystem runs once per live entity per frame. Implementations guard
// their work with Has/Get, since every live entity is visited.
type EntitySystem interface {
	ExecuteEntity(frame *UpdateFrame, e Entity)
}

// EntitySystemFunc adapts a function to EntitySystem.
type EntitySystemFunc func(frame *UpdateFrame, e Entity)

func (f EntitySystemFunc) ExecuteEntity(frame *UpdateFrame, e Entity) {
	f(frame, e)
}
