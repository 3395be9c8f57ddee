package container

import (
	"sort"
	"sync"
)

// objectRegistry holds the one shared instance per canonical type identifier.
// Entries are never evicted. Writes happen under the owning Container's lock;
// the registry's own lock lets lookups proceed while a resolution runs.
type objectRegistry struct {
	mu        sync.RWMutex
	instances map[string]any
}

func newObjectRegistry() *objectRegistry {
	return &objectRegistry{instances: make(map[string]any)}
}

func (r *objectRegistry) get(id string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	instance, ok := r.instances[id]
	return instance, ok
}

func (r *objectRegistry) has(id string) bool {
	_, ok := r.get(id)
	return ok
}

func (r *objectRegistry) put(id string, instance any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances[id] = instance
}

func (r *objectRegistry) keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.instances))
	for k := range r.instances {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *objectRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.instances)
}
