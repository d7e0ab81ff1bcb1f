package container

import (
	"reflect"
	"sync"
)

// Registry maps abstract keys to their Descriptors. It knows nothing about
// caching or resolution order — that is the Container's job.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string]*Descriptor
	aliases  map[string]string // alias → canonical key
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[string]*Descriptor),
		aliases:  make(map[string]string),
	}
}

// Register validates b and stores a descriptor for abstract. The last
// registration wins: an existing descriptor is replaced, but a singleton
// instance already resolved under the old descriptor stays cached until
// ClearSingletons. On error nothing is registered.
func (r *Registry) Register(abstract string, b Binding, lifetime Lifetime) error {
	d, err := newDescriptor(abstract, b, lifetime)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[r.canonical(abstract)] = d
	return nil
}

// Bound reports whether abstract has a descriptor. Pure lookup — nothing
// is constructed.
func (r *Registry) Bound(abstract string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bindings[r.canonical(abstract)]
	return ok
}

// Descriptor returns the descriptor for abstract, or NotRegisteredError.
func (r *Registry) Descriptor(abstract string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.bindings[r.canonical(abstract)]
	if !ok {
		return nil, &NotRegisteredError{Abstract: abstract}
	}
	return d, nil
}

// Alias registers an alternative name for an abstract, letting callers
// request an interface identity that resolves to a concrete registration.
func (r *Registry) Alias(abstract, alias string) error {
	if abstract == alias {
		return &ConfigurationError{Abstract: abstract, Reason: "aliased to itself"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = r.canonical(abstract)
	return nil
}

// Keys returns all registered canonical keys (for diagnostics).
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.bindings))
	for k := range r.bindings {
		out = append(out, k)
	}
	return out
}

// Canonical resolves an alias to its canonical key.
func (r *Registry) Canonical(abstract string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.canonical(abstract)
}

// canonical must be called with mu held.
func (r *Registry) canonical(abstract string) string {
	if target, ok := r.aliases[abstract]; ok {
		return target
	}
	return abstract
}

func (r *Registry) flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = make(map[string]*Descriptor)
	r.aliases = make(map[string]string)
}

// TypeKey returns the package-qualified type name of v, useful as a stable
// abstract key when registering by type rather than by role name.
//
//	key := container.TypeKey((*audit.Trail)(nil)) // "app/services/audit.Trail"
func TypeKey(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.PkgPath() + "." + t.Name()
}
