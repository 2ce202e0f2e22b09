package ecs

import (
	"iter"
	"reflect"
	"slices"

	"go.uber.org/zap"
)

// Registry associates component values with entities.
//
// Structural changes are deferred: CreateEntity and Destroy only stage work,
// and Apply commits it. Between two Apply calls every caller sees the same set
// of live entities, no matter in which order systems run. Component additions
// and removals take effect immediately.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	types      *ComponentRegistry
	stores     []componentStore
	byType     map[reflect.Type]componentStore
	dir        *entityDirectory
	singletons map[reflect.Type]any
	log        *zap.Logger
}

// Option configures a Registry.
type Option func(*registryOptions)

type registryOptions struct {
	logger   *zap.Logger
	capacity int
}

// WithLogger sets the logger used for debug output. The default discards.
func WithLogger(logger *zap.Logger) Option {
	return func(o *registryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCapacity presizes the entity directory and every component store.
func WithCapacity(n int) Option {
	return func(o *registryOptions) {
		o.capacity = n
	}
}

// NewRegistry creates a registry holding one store per type registered in
// types. The component registry is sealed by this call.
func NewRegistry(types *ComponentRegistry, opts ...Option) *Registry {
	o := registryOptions{
		logger:   zap.NewNop(),
		capacity: 256,
	}
	for _, opt := range opts {
		opt(&o)
	}

	stores := types.seal(o.capacity)
	byType := make(map[reflect.Type]componentStore, len(stores))
	for _, s := range stores {
		byType[s.Type()] = s
	}

	return &Registry{
		types:      types,
		stores:     stores,
		byType:     byType,
		dir:        newEntityDirectory(o.capacity),
		singletons: make(map[reflect.Type]any),
		log:        o.logger,
	}
}

// Components returns the component registry the Registry was built from.
func (r *Registry) Components() *ComponentRegistry {
	return r.types
}

// CreateEntity reserves an id and stages its creation. The entity can receive
// components right away but only becomes live (visible to Exists, Get and
// queries) at the next Apply.
func (r *Registry) CreateEntity() Entity {
	return r.dir.createPending()
}

// Destroy stages e for destruction at the next Apply. Until then e stays live
// and queryable. Repeated calls within a tick are collapsed.
func (r *Registry) Destroy(e Entity) {
	if !r.dir.destroy(e) && !r.dir.pending.destroying(e) {
		r.log.Debug("ignoring destroy of unknown entity", zap.Uint32("entity", uint32(e)))
	}
}

// Exists reports whether e is live: its creation has been applied and its
// destruction, if any, has not.
func (r *Registry) Exists(e Entity) bool {
	return r.dir.exists(e)
}

// Destroying reports whether e is staged for destruction this tick.
func (r *Registry) Destroying(e Entity) bool {
	return r.dir.pending.destroying(e)
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.dir.live)
}

// Entities yields a snapshot of the live entities.
func (r *Registry) Entities() iter.Seq[Entity] {
	snapshot := r.AppendEntities(nil)
	return slices.Values(snapshot)
}

// AppendEntities appends the live entities to dst and returns the result.
func (r *Registry) AppendEntities(dst []Entity) []Entity {
	for _, rec := range r.dir.live {
		dst = append(dst, rec.id)
	}
	return dst
}

// MaskOf returns the capability mask currently representing e, including
// bits added while e is still waiting to be created.
func (r *Registry) MaskOf(e Entity) (Mask, bool) {
	rec, ok := r.dir.record(e)
	if !ok {
		return Mask{}, false
	}
	return rec.mask, true
}

// HasAll reports whether e has every listed component. It is false for
// unknown entities and vacuously true when no ids are given.
func (r *Registry) HasAll(e Entity, ids ...ComponentID) bool {
	rec, ok := r.dir.record(e)
	if !ok {
		return false
	}
	return rec.mask.ContainsAll(MaskOf(ids...))
}

// Ref returns a reference to e that detects id reuse.
func (r *Registry) Ref(e Entity) EntityRef {
	gen, _ := r.dir.generation(e)
	return EntityRef{Entity: e, Generation: gen}
}

// Resolve returns the entity behind ref if it is still live and has not been
// destroyed since the ref was taken.
func (r *Registry) Resolve(ref EntityRef) (Entity, bool) {
	if !r.dir.exists(ref.Entity) {
		return 0, false
	}
	gen, ok := r.dir.generation(ref.Entity)
	if !ok || gen != ref.Generation {
		return 0, false
	}
	return ref.Entity, true
}

// ApplyResult summarises one Apply call.
type ApplyResult struct {
	Created   int
	Destroyed int
}

// Apply commits the staged creations, then the staged destructions, and
// clears the buffer. Destroying an entity removes it from every store whose
// bit is set in its mask and frees its id for reuse.
func (r *Registry) Apply() ApplyResult {
	res := ApplyResult{Created: r.dir.commitCreates()}

	for _, e := range r.dir.pending.destroys {
		rec, ok := r.dir.liveRecord(e)
		if !ok {
			continue
		}
		m := rec.mask
		for id := range m.Components(len(r.stores)) {
			r.stores[id].Remove(e)
		}
		r.dir.release(e)
		res.Destroyed++
	}
	r.dir.pending.reset()

	if res.Created > 0 || res.Destroyed > 0 {
		r.log.Debug("applied pending changes",
			zap.Int("created", res.Created),
			zap.Int("destroyed", res.Destroyed),
			zap.Int("live", len(r.dir.live)),
		)
	}
	return res
}

// storeFor returns the typed store of T. Using a type that was not registered
// panics.
func storeFor[T any](r *Registry) *ComponentStore[T] {
	t := reflect.TypeFor[T]()
	s, ok := r.byType[t]
	if !ok {
		r.types.mustID(t)
	}
	return s.(*ComponentStore[T])
}

// Store returns the store holding every T. The store must only be mutated
// through the Registry.
func Store[T any](r *Registry) *ComponentStore[T] {
	return storeFor[T](r)
}

// ComponentIDFor returns the id of T in r, panicking if T is not registered.
func ComponentIDFor[T any](r *Registry) ComponentID {
	return storeFor[T](r).ID()
}

// Add gives e the value and sets the T bit on e's mask. The entity may still
// be waiting to be created. Adding to an id that is neither live nor pending
// does nothing.
func Add[T any](r *Registry, e Entity, value T) {
	s := storeFor[T](r)
	rec, ok := r.dir.record(e)
	if !ok {
		r.log.Debug("ignoring add to unknown entity",
			zap.Uint32("entity", uint32(e)),
			zap.Stringer("component", s.Type()),
		)
		return
	}
	s.Insert(e, value)
	rec.mask.Set(s.ID())
}

// Get returns e's T. It is absent when e is not live or lacks T.
// The pointer must not be kept past the current tick.
func Get[T any](r *Registry, e Entity) (*T, bool) {
	if !r.dir.exists(e) {
		return nil, false
	}
	return storeFor[T](r).Get(e)
}

// Remove drops e's T immediately. Missing components are ignored.
func Remove[T any](r *Registry, e Entity) {
	s := storeFor[T](r)
	rec, ok := r.dir.record(e)
	if !ok {
		return
	}
	s.Remove(e)
	rec.mask.Clear(s.ID())
}

// Has reports whether e has a T.
func Has[T any](r *Registry, e Entity) bool {
	return r.HasAll(e, ComponentIDFor[T](r))
}

// Has2 reports whether e has both an A and a B.
func Has2[A, B any](r *Registry, e Entity) bool {
	return r.HasAll(e, ComponentIDFor[A](r), ComponentIDFor[B](r))
}

// Has3 reports whether e has an A, a B and a C.
func Has3[A, B, C any](r *Registry, e Entity) bool {
	return r.HasAll(e, ComponentIDFor[A](r), ComponentIDFor[B](r), ComponentIDFor[C](r))
}

// EntitiesWith returns a fresh slice of the live entities that have a T.
// Entities waiting to be created or staged for destruction are left out.
func EntitiesWith[T any](r *Registry) []Entity {
	s := storeFor[T](r)
	out := make([]Entity, 0, s.Len())
	for _, e := range s.Entities() {
		if r.dir.visible(e) {
			out = append(out, e)
		}
	}
	return out
}
