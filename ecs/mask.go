package ecs

import (
	"iter"

	"github.com/TheBitDrifter/mask"
)

// MaxComponents is the number of component types a ComponentRegistry can hold.
// It is the width of the capability bitset.
const MaxComponents = 64

// Mask is the capability bitset of an entity: bit i is set iff the entity
// currently has the component registered with ComponentID i.
type Mask struct {
	bits mask.Mask
}

// MaskOf builds a mask with the given component bits set.
func MaskOf(ids ...ComponentID) Mask {
	var m Mask
	for _, id := range ids {
		m.Set(id)
	}
	return m
}

// Set marks the component bit.
func (m *Mask) Set(id ComponentID) {
	m.bits.Mark(uint32(id))
}

// Clear unmarks the component bit.
func (m *Mask) Clear(id ComponentID) {
	m.bits.Unmark(uint32(id))
}

// Has reports whether the component bit is set.
func (m Mask) Has(id ComponentID) bool {
	var single mask.Mask
	single.Mark(uint32(id))
	return m.bits.ContainsAll(single)
}

// ContainsAll reports whether every bit of other is also set in m.
// An empty other is always contained.
func (m Mask) ContainsAll(other Mask) bool {
	return m.bits.ContainsAll(other.bits)
}

// Empty reports whether no bit is set.
func (m Mask) Empty() bool {
	return m == Mask{}
}

// Components yields the set component ids below limit in ascending order.
func (m Mask) Components(limit int) iter.Seq[ComponentID] {
	return func(yield func(ComponentID) bool) {
		for i := 0; i < limit; i++ {
			id := ComponentID(i)
			if m.Has(id) && !yield(id) {
				return
			}
		}
	}
}
