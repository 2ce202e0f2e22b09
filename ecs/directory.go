package ecs

import "github.com/kamstrup/intmap"

// entityDirectory tracks which ids are live, the Mask of each one, and the ids
// free for reuse. Live records are packed like a ComponentStore so iteration
// order is deterministic.
type entityDirectory struct {
	live        []entityRecord
	liveIndex   *intmap.Map[Entity, int]
	pending     pendingChanges
	free        []Entity
	next        Entity
	generations []uint32
}

func newEntityDirectory(capacity int) *entityDirectory {
	return &entityDirectory{
		live:      make([]entityRecord, 0, capacity),
		liveIndex: intmap.New[Entity, int](max(capacity, minMapCapacity)),
		pending:   newPendingChanges(capacity),
	}
}

// createPending hands out an id, preferring the most recently freed one, and
// stages it for creation with an empty mask.
func (d *entityDirectory) createPending() Entity {
	var e Entity
	if n := len(d.free); n > 0 {
		e = d.free[n-1]
		d.free = d.free[:n-1]
	} else {
		e = d.next
		d.next++
		d.generations = append(d.generations, 0)
	}
	d.pending.stageCreate(e)
	return e
}

// destroy stages e for destruction. Ids that are neither live nor waiting to
// be created are ignored.
func (d *entityDirectory) destroy(e Entity) bool {
	if !d.exists(e) {
		if _, ok := d.pending.created(e); !ok {
			return false
		}
	}
	return d.pending.stageDestroy(e)
}

func (d *entityDirectory) exists(e Entity) bool {
	return d.liveIndex.Has(e)
}

// visible reports whether queries should yield e: live and not staged for
// destruction.
func (d *entityDirectory) visible(e Entity) bool {
	return d.liveIndex.Has(e) && !d.pending.destroying(e)
}

// record returns the record currently representing e: the staged creation if
// there is one, otherwise the live record.
func (d *entityDirectory) record(e Entity) (*entityRecord, bool) {
	if rec, ok := d.pending.created(e); ok {
		return rec, true
	}
	return d.liveRecord(e)
}

func (d *entityDirectory) liveRecord(e Entity) (*entityRecord, bool) {
	i, ok := d.liveIndex.Get(e)
	if !ok {
		return nil, false
	}
	return &d.live[i], true
}

// commitCreates moves every staged creation into the live set.
func (d *entityDirectory) commitCreates() int {
	for _, rec := range d.pending.creates {
		assert(!d.liveIndex.Has(rec.id), "entity %d created while already live", rec.id)
		d.liveIndex.Put(rec.id, len(d.live))
		d.live = append(d.live, rec)
	}
	return len(d.pending.creates)
}

// release erases a live entity, retires its generation and frees its id.
func (d *entityDirectory) release(e Entity) {
	i, ok := d.liveIndex.Get(e)
	if !ok {
		return
	}
	last := len(d.live) - 1
	moved := d.live[last]
	d.live[i] = moved
	d.liveIndex.Put(moved.id, i)
	d.live = d.live[:last]
	d.liveIndex.Del(e)

	d.generations[e]++
	d.free = append(d.free, e)
}

func (d *entityDirectory) generation(e Entity) (uint32, bool) {
	if int(e) >= len(d.generations) {
		return 0, false
	}
	return d.generations[e], true
}
