// Package container provides the service resolution core shared by every
// governa domain module: a registry of service descriptors, a resolving
// container with singleton caching, and a Service Provider system for
// centralized wiring.
//
// # Overview
//
// The container manages the instantiation and lifecycle of the
// application's services. A service is registered under an abstract key
// with exactly one construction strategy — a concrete constructor, a
// factory function, or a pre-built instance — and a lifetime, either
// transient (fresh instance per resolution) or singleton (one instance for
// the container's life). Resolution is a lazy, recursive graph traversal:
// a builder declares its dependencies as typed Use calls, and the
// container walks them depth-first, detecting cycles before they can
// recurse without bound.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()    (or container.Default() process-wide)
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot()           — safe to resolve everything after this
//  4. Serve requests
//
// # Bindings
//
//	// Transient — new instance every Make()
//	c.Bind("report", func(r *container.Resolver) (any, error) {
//	    return &Report{}, nil
//	})
//
//	// Singleton — created once, reused
//	c.Singleton("checklist", func(r *container.Resolver) (any, error) {
//	    logger, err := container.Use[*zap.Logger](r, "logger")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return compliance.NewChecklist(logger), nil
//	})
//
//	// Pre-built value
//	c.Instance("config", cfg)
//
//	// Alias — let an interface identity stand in for a concrete key
//	c.Alias("audit", "audit.Recorder")
//
// Registrations with zero or multiple strategies fail with
// ConfigurationError and register nothing:
//
//	err := c.Register("bad", container.Binding{
//	    Factory:  newThing,
//	    Instance: thing,
//	}, container.Singleton) // ConfigurationError
//
// # Resolving
//
//	// Untyped
//	raw, err := c.Make("checklist")
//
//	// Generic (preferred — no type assertion required)
//	checklist, err := container.Resolve[*compliance.Checklist](c, "checklist")
//
// Resolving an unregistered key fails with NotRegisteredError. A
// dependency chain that re-enters itself fails with
// CircularDependencyError carrying the chain in order:
//
//	container: circular dependency: a -> b -> c -> a
//
// Both are wiring defects: they propagate to the caller unmodified and are
// never retried or swallowed.
//
// # Concurrency
//
// The container may be shared across request-handling goroutines. Two
// goroutines racing to resolve the same singleton for the first time run
// the builder exactly once; the loser blocks and receives the winner's
// instance. Transient resolutions never touch the singleton cache and
// proceed in parallel. Cycle tracking is scoped to a single top-level Make
// call, never shared between goroutines.
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) error {
//	    return app.Singleton("mailer", func(r *container.Resolver) (any, error) {
//	        cfg, err := container.Use[*config.Config](r, "config")
//	        if err != nil {
//	            return nil, err
//	        }
//	        return mail.NewSMTP(cfg.Mail), nil
//	    })
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
//
// # Deferred Providers
//
//	type HeavyProvider struct{ container.BaseProvider }
//
//	func (p *HeavyProvider) IsDeferred() bool   { return true }
//	func (p *HeavyProvider) Provides() []string { return []string{"heavy"} }
//	func (p *HeavyProvider) Register(app *container.Container) error {
//	    return app.Singleton("heavy", func(r *container.Resolver) (any, error) {
//	        return heavySetup() // only called on first app.Make("heavy")
//	    })
//	}
//
// # Test Reset
//
// ClearSingletons() empties the singleton cache without touching
// registrations; the next resolution of each singleton constructs a new
// instance. Flush() resets the whole container. container.Reset() discards
// the process-wide Default() container.
package container
