package container

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container resolves services from their registered descriptors. It owns a
// Registry, a singleton cache, and the bookkeeping that keeps concurrent
// first-time singleton construction down to a single builder invocation.
type Container struct {
	registry *Registry

	// mu guards the singleton cache. Registration state has its own lock
	// inside Registry.
	mu        sync.RWMutex
	instances map[string]any

	// flight serializes first-time singleton construction per key: the
	// losing caller blocks and receives the winner's instance.
	flight singleflight.Group
}

// New creates an empty container. The container registers itself under the
// "container" key so services can declare it as a dependency.
func New() *Container {
	c := &Container{
		registry:  NewRegistry(),
		instances: make(map[string]any),
	}
	_ = c.Instance("container", c)
	return c
}

// Registry exposes the underlying registry for direct descriptor queries.
func (c *Container) Registry() *Registry { return c.registry }

// ── Registration ──────────────────────────────────────────────────────────────

// Register validates the binding and stores a descriptor. Most callers use
// the lifetime-specific helpers below instead.
func (c *Container) Register(abstract string, b Binding, lifetime Lifetime) error {
	return c.registry.Register(abstract, b, lifetime)
}

// Bind registers a transient factory: a new instance per Make.
func (c *Container) Bind(abstract string, factory Builder) error {
	return c.registry.Register(abstract, Binding{Factory: factory}, Transient)
}

// BindConcrete registers a transient constructor for the service's own type.
func (c *Container) BindConcrete(abstract string, ctor Builder) error {
	return c.registry.Register(abstract, Binding{Concrete: ctor}, Transient)
}

// Singleton registers a factory whose result is cached after first resolution.
func (c *Container) Singleton(abstract string, factory Builder) error {
	return c.registry.Register(abstract, Binding{Factory: factory}, Singleton)
}

// SingletonConcrete registers a singleton constructor for the service's own type.
func (c *Container) SingletonConcrete(abstract string, ctor Builder) error {
	return c.registry.Register(abstract, Binding{Concrete: ctor}, Singleton)
}

// Instance registers a pre-built value as a singleton.
func (c *Container) Instance(abstract string, value any) error {
	return c.registry.Register(abstract, Binding{Instance: value}, Singleton)
}

// Alias registers an alternative name for an abstract.
func (c *Container) Alias(abstract, alias string) error {
	return c.registry.Alias(abstract, alias)
}

// Bound reports whether abstract has been registered.
func (c *Container) Bound(abstract string) bool {
	return c.registry.Bound(abstract)
}

// ── Must helpers ──────────────────────────────────────────────────────────────

// The Must variants panic on registration errors. Registration failures are
// wiring defects, so failing loudly at bootstrap is the right default for
// providers and main().

func (c *Container) MustBind(abstract string, factory Builder) {
	if err := c.Bind(abstract, factory); err != nil {
		panic(err)
	}
}

func (c *Container) MustBindConcrete(abstract string, ctor Builder) {
	if err := c.BindConcrete(abstract, ctor); err != nil {
		panic(err)
	}
}

func (c *Container) MustSingleton(abstract string, factory Builder) {
	if err := c.Singleton(abstract, factory); err != nil {
		panic(err)
	}
}

func (c *Container) MustSingletonConcrete(abstract string, ctor Builder) {
	if err := c.SingletonConcrete(abstract, ctor); err != nil {
		panic(err)
	}
}

func (c *Container) MustInstance(abstract string, value any) {
	if err := c.Instance(abstract, value); err != nil {
		panic(err)
	}
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves abstract from the container. Each call is an independent
// top-level resolution with its own cycle-tracking state, so concurrent
// Make calls never see each other's in-flight abstracts.
func (c *Container) Make(abstract string) (any, error) {
	r := &Resolver{container: c, open: make(map[string]bool)}
	return r.Make(abstract)
}

// Resolved reports whether a singleton instance is currently cached for
// abstract.
func (c *Container) Resolved(abstract string) bool {
	_, ok := c.cached(c.registry.Canonical(abstract))
	return ok
}

// ClearSingletons empties the singleton cache without touching the
// registry. The next Make of each singleton constructs a new instance.
// Intended for resetting state between test cases.
func (c *Container) ClearSingletons() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances = make(map[string]any)
}

// Flush resets the entire container: registry, aliases, and cache.
func (c *Container) Flush() {
	c.registry.flush()
	c.ClearSingletons()
}

func (c *Container) cached(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.instances[key]
	return v, ok
}

func (c *Container) store(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances[key] = v
}

// ── Resolver ──────────────────────────────────────────────────────────────────

// Resolver carries the traversal state of one top-level Make call: the
// ordered chain of abstracts currently under construction. Builders receive
// it so their own dependency resolutions participate in the same cycle
// check.
type Resolver struct {
	container *Container
	chain     []string        // construction order, entry point first
	open      map[string]bool // membership mirror of chain
}

// Container returns the container this resolution runs against.
func (r *Resolver) Container() *Container { return r.container }

// Make resolves abstract within the current resolution. The cycle check
// runs before any recursive descent: re-entering an abstract that is still
// open on this resolver's chain fails immediately instead of recursing
// without bound.
func (r *Resolver) Make(abstract string) (any, error) {
	c := r.container
	key := c.registry.Canonical(abstract)

	if r.open[key] {
		chain := make([]string, len(r.chain), len(r.chain)+1)
		copy(chain, r.chain)
		return nil, &CircularDependencyError{Chain: append(chain, key)}
	}

	d, err := c.registry.Descriptor(key)
	if err != nil {
		return nil, err
	}

	if d.lifetime == Singleton {
		if v, ok := c.cached(key); ok {
			return v, nil
		}
		if d.strategy == StrategyInstance {
			c.store(key, d.instance)
			return d.instance, nil
		}
		// Funnel first-time construction through the flight group so two
		// racing callers run the builder exactly once. The winner runs on
		// its own goroutine, so this resolver's chain stays intact.
		v, err, _ := c.flight.Do(key, func() (any, error) {
			if v, ok := c.cached(key); ok {
				return v, nil
			}
			v, err := r.build(d, key)
			if err != nil {
				return nil, err
			}
			c.store(key, v)
			return v, nil
		})
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	return r.build(d, key)
}

// build runs the descriptor's builder with key marked open. The release is
// deferred so a failure deep in the dependency chain still unwinds the
// chain completely — a later, unrelated resolution of key must not see a
// stale cycle entry.
func (r *Resolver) build(d *Descriptor, key string) (v any, err error) {
	r.chain = append(r.chain, key)
	r.open[key] = true
	defer func() {
		delete(r.open, key)
		r.chain = r.chain[:len(r.chain)-1]
	}()
	return d.build(r)
}

// ── Generic helpers ───────────────────────────────────────────────────────────

// Resolve resolves abstract from c and type-asserts the result.
//
//	trail, err := container.Resolve[*audit.Trail](c, "audit")
func Resolve[T any](c *Container, abstract string) (T, error) {
	v, err := c.Make(abstract)
	if err != nil {
		var zero T
		return zero, err
	}
	return assertAs[T](abstract, v)
}

// MustResolve is like Resolve but panics on failure. Convenient in
// handlers and bootstrap code where a miss is a wiring defect.
func MustResolve[T any](c *Container, abstract string) T {
	v, err := Resolve[T](c, abstract)
	if err != nil {
		panic(err)
	}
	return v
}

// Use resolves a dependency inside a Builder, participating in the calling
// resolution's cycle tracking.
//
//	c.Singleton("repository", func(r *container.Resolver) (any, error) {
//	    logger, err := container.Use[*zap.Logger](r, "logger")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return repo.New(logger), nil
//	})
func Use[T any](r *Resolver, abstract string) (T, error) {
	v, err := r.Make(abstract)
	if err != nil {
		var zero T
		return zero, err
	}
	return assertAs[T](abstract, v)
}

func assertAs[T any](abstract string, v any) (T, error) {
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("container: [%s] resolved to %T, want %T", abstract, v, zero)
	}
	return typed, nil
}
