package inspect

import (
	"cmp"
	"slices"
	"sync"
)

// Registry holds inspections by ID and by name.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]Inspection
	byName map[string]Inspection
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]Inspection),
		byName: make(map[string]Inspection),
	}
}

// Register adds an inspection, replacing one with the same ID.
func (r *Registry) Register(insp Inspection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byID[insp.ID()]; ok {
		delete(r.byName, old.Name())
	}
	r.byID[insp.ID()] = insp
	r.byName[insp.Name()] = insp
}

// Get looks an inspection up by ID, then by name.
func (r *Registry) Get(key string) (Inspection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if insp, ok := r.byID[key]; ok {
		return insp, true
	}
	insp, ok := r.byName[key]
	return insp, ok
}

// Inspections returns all registered inspections sorted by ID.
func (r *Registry) Inspections() []Inspection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Inspection, 0, len(r.byID))
	for _, insp := range r.byID {
		result = append(result, insp)
	}
	slices.SortFunc(result, func(a, b Inspection) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return result
}

// IDs returns all registered inspection IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
