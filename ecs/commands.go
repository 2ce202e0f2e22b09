package ecs

import "github.com/kamstrup/intmap"

// minMapCapacity is the smallest initial size handed to intmap.New.
const minMapCapacity = 16

// entityRecord is the directory entry of one entity.
type entityRecord struct {
	id   Entity
	mask Mask
}

// pendingChanges buffers the structural changes requested during a tick.
// Creations keep their request order and accumulate component bits until
// they are applied; destructions are deduplicated.
type pendingChanges struct {
	creates     []entityRecord
	createIndex *intmap.Map[Entity, int]
	destroys    []Entity
	destroySet  *intmap.Map[Entity, struct{}]
}

func newPendingChanges(capacity int) pendingChanges {
	return pendingChanges{
		createIndex: intmap.New[Entity, int](max(capacity, minMapCapacity)),
		destroySet:  intmap.New[Entity, struct{}](max(capacity, minMapCapacity)),
	}
}

func (p *pendingChanges) stageCreate(e Entity) {
	p.createIndex.Put(e, len(p.creates))
	p.creates = append(p.creates, entityRecord{id: e})
}

// created returns the staged record for e, if e is waiting to be created.
func (p *pendingChanges) created(e Entity) (*entityRecord, bool) {
	i, ok := p.createIndex.Get(e)
	if !ok {
		return nil, false
	}
	return &p.creates[i], true
}

// stageDestroy queues e and reports whether it was not already queued.
func (p *pendingChanges) stageDestroy(e Entity) bool {
	if p.destroySet.Has(e) {
		return false
	}
	p.destroySet.Put(e, struct{}{})
	p.destroys = append(p.destroys, e)
	return true
}

func (p *pendingChanges) destroying(e Entity) bool {
	return p.destroySet.Has(e)
}

func (p *pendingChanges) reset() {
	p.creates = p.creates[:0]
	p.destroys = p.destroys[:0]
	p.createIndex.Clear()
	p.destroySet.Clear()
}
