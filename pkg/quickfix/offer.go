package quickfix

// Offer wraps actions in fresh instances and returns those available in qc,
// preserving order.
func Offer(qc *Context, actions ...Action) []*Instance {
	offered := make([]*Instance, 0, len(actions))
	for _, action := range actions {
		if inst := NewInstance(action); inst.IsAvailable(qc) {
			offered = append(offered, inst)
		}
	}
	return offered
}

// Find returns the instance with id, or nil.
func Find(instances []*Instance, id string) *Instance {
	for _, inst := range instances {
		if inst.ID() == id {
			return inst
		}
	}
	return nil
}

// FilterFamilies keeps the instances whose family is listed. An empty list
// keeps everything.
func FilterFamilies(instances []*Instance, families []string) []*Instance {
	if len(families) == 0 {
		return instances
	}
	allowed := make(map[string]struct{}, len(families))
	for _, f := range families {
		allowed[f] = struct{}{}
	}
	kept := instances[:0:0]
	for _, inst := range instances {
		if _, ok := allowed[inst.FamilyName()]; ok {
			kept = append(kept, inst)
		}
	}
	return kept
}
