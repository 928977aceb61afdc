package mixer

import (
	"sort"

	"github.com/lixenwraith/positional-audio/core"
)

// Registry is an immutable snapshot of the source table
// A reload builds a new Registry; entries are never patched
type Registry struct {
	defs map[string]core.SourceDefinition
	ids  []string
}

// NewRegistry copies defs into a Registry iterated in sorted ID order
func NewRegistry(defs map[string]core.SourceDefinition) *Registry {
	r := &Registry{
		defs: make(map[string]core.SourceDefinition, len(defs)),
		ids:  make([]string, 0, len(defs)),
	}
	for id, def := range defs {
		r.defs[id] = def
		r.ids = append(r.ids, id)
	}
	sort.Strings(r.ids)
	return r
}

// Get returns the definition for id
func (r *Registry) Get(id string) (core.SourceDefinition, bool) {
	def, ok := r.defs[id]
	return def, ok
}

// IDs returns source IDs in sorted order
func (r *Registry) IDs() []string {
	return r.ids
}

// Len returns the number of sources
func (r *Registry) Len() int {
	return len(r.ids)
}
