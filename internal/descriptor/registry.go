package descriptor

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps operation identifiers to descriptors. It replaces dynamic
// per-call interception: operations are declared up front and dispatched
// through a single generic entry point.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]*Descriptor
}

func NewRegistry() *Registry {
	return &Registry{ops: map[string]*Descriptor{}}
}

func normalizeID(id string) string { return strings.TrimSpace(id) }

// Register adds a descriptor under its operation id. Re-registering an id
// is an error; descriptors are immutable once published.
func (r *Registry) Register(id string, d *Descriptor) error {
	key := normalizeID(id)
	if key == "" {
		return fmt.Errorf("registry: empty operation id")
	}
	if d == nil {
		return fmt.Errorf("registry: nil descriptor for %q", key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ops[key]; exists {
		return fmt.Errorf("registry: operation %q already registered", key)
	}
	r.ops[key] = d
	return nil
}

// Lookup returns the descriptor registered under id.
func (r *Registry) Lookup(id string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.ops[normalizeID(id)]
	return d, ok
}

// Names returns the registered operation ids, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ops))
	for k := range r.ops {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
