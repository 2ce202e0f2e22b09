package ecs

// ComponentAny returns a pointer to e's component with the given id, boxed as
// any. It is nil when e is not live, lacks the component, or id is unknown.
// Tools use it to inspect entities without knowing their types.
func (r *Registry) ComponentAny(e Entity, id ComponentID) any {
	if int(id) >= len(r.stores) || !r.dir.exists(e) {
		return nil
	}
	return r.stores[id].GetAny(e)
}

// EntitiesWithAll returns the live entities holding every listed component,
// leaving out those staged for destruction. It walks the smallest store and
// checks the others. With no ids it returns every such entity.
func (r *Registry) EntitiesWithAll(ids ...ComponentID) []Entity {
	if len(ids) == 0 {
		out := make([]Entity, 0, len(r.dir.live))
		for _, rec := range r.dir.live {
			if !r.dir.pending.destroying(rec.id) {
				out = append(out, rec.id)
			}
		}
		return out
	}

	stores := make([]componentStore, len(ids))
	driver := 0
	for i, id := range ids {
		if int(id) >= len(r.stores) {
			return nil
		}
		stores[i] = r.stores[id]
		if stores[i].Len() < stores[driver].Len() {
			driver = i
		}
	}

	var out []Entity
	for _, e := range stores[driver].Entities() {
		if !r.dir.visible(e) {
			continue
		}
		matched := true
		for _, s := range stores {
			if !s.Has(e) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, e)
		}
	}
	return out
}
