package action

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps intent kinds to their executors.
// It is safe for concurrent reads; Register should only be called at startup.
type Registry struct {
	mu        sync.RWMutex
	executors map[string]Executor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{executors: make(map[string]Executor)}
}

// Register adds executors. Panics on a duplicate kind to surface wiring
// mistakes at startup.
func (r *Registry) Register(es ...Executor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range es {
		if _, exists := r.executors[e.Kind()]; exists {
			panic(fmt.Sprintf("action registry: duplicate kind %q", e.Kind()))
		}
		r.executors[e.Kind()] = e
	}
}

// Get returns the executor for kind.
func (r *Registry) Get(kind string) (Executor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.executors[kind]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	return e, nil
}

// Kinds returns every registered kind, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.executors))
	for k := range r.executors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
