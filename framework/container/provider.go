package container

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider is the centralized wiring surface: each provider lists
// the bindings for one area of the application, and the registry runs them
// in a single bootstrap step. This keeps registration out of package init
// functions, where it would depend on import order.
//
//	type AuditServiceProvider struct{ container.BaseProvider }
//
//	func (p *AuditServiceProvider) Register(app *container.Container) error {
//	    return app.Singleton("audit", func(r *container.Resolver) (any, error) {
//	        logger, err := container.Use[*zap.Logger](r, "logger")
//	        if err != nil {
//	            return nil, err
//	        }
//	        return audit.NewTrail(logger), nil
//	    })
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	// Do NOT resolve other bindings here — use Boot() for that.
	Register(app *Container) error

	// Boot is called after all providers are registered.
	// Safe to resolve and use any binding here.
	Boot(app *Container) error

	// Provides returns the list of abstract keys this provider registers.
	// Used for deferred (lazy) provider loading.
	// Return nil / empty slice if the provider is always eager.
	Provides() []string

	// IsDeferred returns true if this provider should be loaded lazily —
	// only when one of its Provides() abstracts is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct that provides no-op implementations
// of Boot(), Provides(), and IsDeferred().
// Embed it in your provider and only override what you need.
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(app *container.Container) error { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }
func (p *BaseProvider) Provides() []string      { return nil }
func (p *BaseProvider) IsDeferred() bool        { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	deferred   map[string]ServiceProvider // abstract → provider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[string]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method (unless
// deferred). Registering the same provider instance twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		for _, abstract := range provider.Provides() {
			r.deferred[abstract] = provider
		}
		return r.interceptDeferred(provider)
	}

	if err := provider.Register(r.app); err != nil {
		return err
	}
	r.eager = append(r.eager, provider)

	// If already booted, boot this provider immediately
	if r.booted {
		return provider.Boot(r.app)
	}
	return nil
}

// interceptDeferred installs a placeholder binding for each deferred
// abstract. The first Make() call runs the provider's real registration
// (which overwrites the placeholder) and resolves through a fresh
// top-level call against the replaced binding.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) error {
	for _, abstract := range provider.Provides() {
		abs := abstract // capture
		err := r.app.Bind(abs, func(res *Resolver) (any, error) {
			if err := provider.Register(r.app); err != nil {
				return nil, err
			}
			delete(r.deferred, abs)
			if r.booted {
				if err := provider.Boot(r.app); err != nil {
					return nil, err
				}
			}
			return res.Container().Make(abs)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Boot calls Boot() on all eager providers.
// Must be called after ALL providers have been registered.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, provider := range r.eager {
		if err := provider.Boot(r.app); err != nil {
			return err
		}
	}
	return nil
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }
