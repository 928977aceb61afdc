package status

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Registry maps metric names to atomics
// Writers cache the returned pointers and update them lock-free; the lock only guards registration
// A name is bound to one metric kind for the life of the registry
type Registry struct {
	mu      sync.RWMutex
	metrics map[string]any
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{metrics: make(map[string]any)}
}

// Int returns the counter or gauge registered under name, creating it if absent
func (r *Registry) Int(name string) *atomic.Int64 {
	return lookup[atomic.Int64](r, name)
}

// Bool returns the flag registered under name, creating it if absent
func (r *Registry) Bool(name string) *atomic.Bool {
	return lookup[atomic.Bool](r, name)
}

// Float returns the gauge registered under name, creating it if absent
func (r *Registry) Float(name string) *Float {
	return lookup[Float](r, name)
}

// Text returns the label registered under name, creating it if absent
func (r *Registry) Text(name string) *Text {
	return lookup[Text](r, name)
}

// Len returns the number of registered metrics
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.metrics)
}

// Names returns every metric name in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot loads every metric into a flat map keyed by name
func (r *Registry) Snapshot() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]any, len(r.metrics))
	for name, m := range r.metrics {
		switch v := m.(type) {
		case *atomic.Int64:
			out[name] = v.Load()
		case *atomic.Bool:
			out[name] = v.Load()
		case *Float:
			out[name] = v.Get()
		case *Text:
			out[name] = v.Load()
		}
	}
	return out
}

// lookup returns the metric of kind T under name
// Panics when name is already bound to another kind
func lookup[T any](r *Registry, name string) *T {
	r.mu.RLock()
	m, ok := r.metrics[name]
	r.mu.RUnlock()

	if !ok {
		r.mu.Lock()
		// Double-check after acquiring write lock
		if m, ok = r.metrics[name]; !ok {
			m = new(T)
			r.metrics[name] = m
		}
		r.mu.Unlock()
	}

	typed, ok := m.(*T)
	if !ok {
		panic(fmt.Sprintf("status: metric %s is %T, not %T", name, m, new(T)))
	}
	return typed
}
