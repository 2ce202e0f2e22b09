package ecs

import "slices"

// Each calls fn for every live entity that has a T. Entities staged for
// destruction are skipped.
//
// The entity list is snapshotted before the first call, so fn may add or
// remove components, create or destroy entities. Entities that lose their T
// or are destroyed during the walk are skipped.
func Each[T any](r *Registry, fn func(Entity, *T)) {
	s := storeFor[T](r)
	for _, e := range slices.Clone(s.Entities()) {
		if !r.dir.visible(e) {
			continue
		}
		if v, ok := s.Get(e); ok {
			fn(e, v)
		}
	}
}

// Each2 calls fn for every live entity that has both an A and a B.
// It walks the smaller store and checks the other.
func Each2[A, B any](r *Registry, fn func(Entity, *A, *B)) {
	sa, sb := storeFor[A](r), storeFor[B](r)
	driver := sa.Entities()
	if sb.Len() < sa.Len() {
		driver = sb.Entities()
	}
	for _, e := range slices.Clone(driver) {
		if !r.dir.visible(e) {
			continue
		}
		a, ok := sa.Get(e)
		if !ok {
			continue
		}
		b, ok := sb.Get(e)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

// Each3 calls fn for every live entity that has an A, a B and a C.
func Each3[A, B, C any](r *Registry, fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := storeFor[A](r), storeFor[B](r), storeFor[C](r)
	driver := sa.Entities()
	if sb.Len() < len(driver) {
		driver = sb.Entities()
	}
	if sc.Len() < len(driver) {
		driver = sc.Entities()
	}
	for _, e := range slices.Clone(driver) {
		if !r.dir.visible(e) {
			continue
		}
		a, ok := sa.Get(e)
		if !ok {
			continue
		}
		b, ok := sb.Get(e)
		if !ok {
			continue
		}
		c, ok := sc.Get(e)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}

// Count returns the number of live entities that have a T and are not
// staged for destruction.
func Count[T any](r *Registry) int {
	n := 0
	for _, e := range storeFor[T](r).Entities() {
		if r.dir.visible(e) {
			n++
		}
	}
	return n
}
