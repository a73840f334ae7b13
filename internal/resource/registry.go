// ABOUTME: Resource registry for registering and retrieving admin resources.
// ABOUTME: The built-in catalog registers itself in init().

package resource

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry = make(map[string]Schema)
	mu       sync.RWMutex
)

// Register adds a resource schema to the registry
func Register(s Schema) {
	mu.Lock()
	defer mu.Unlock()

	if s.Slug == "" {
		panic("resource slug is empty")
	}
	if _, exists := registry[s.Slug]; exists {
		panic(fmt.Sprintf("resource %q already registered", s.Slug))
	}
	registry[s.Slug] = s
}

// Get retrieves a resource schema by slug
func Get(slug string) (Schema, bool) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := registry[slug]
	return s, ok
}

// All returns all registered resources ordered by slug
func All() []Schema {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]Schema, 0, len(registry))
	for _, s := range registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Slugs returns all registered resource slugs in order
func Slugs() []string {
	all := All()
	out := make([]string, len(all))
	for i, s := range all {
		out[i] = s.Slug
	}
	return out
}
