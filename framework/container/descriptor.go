package container

// ── Lifetimes ─────────────────────────────────────────────────────────────────

// Lifetime controls how long a resolved instance is reused.
type Lifetime int

const (
	// Transient services are constructed fresh on every Make.
	Transient Lifetime = iota
	// Singleton services are constructed once and cached for the life of
	// the container (until ClearSingletons).
	Singleton
)

func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	default:
		return "unknown"
	}
}

// ── Construction strategies ───────────────────────────────────────────────────

// Builder constructs a service value. Dependencies are declared in the body
// as typed Use calls against r, so the dependency list is checked by the
// compiler rather than discovered by reflection.
type Builder func(r *Resolver) (any, error)

// Strategy identifies how a descriptor produces its service.
type Strategy int

const (
	// StrategyConcrete builds via the constructor of the service's own type.
	StrategyConcrete Strategy = iota
	// StrategyFactory builds via an ad-hoc factory function.
	StrategyFactory
	// StrategyInstance yields a value that was built before registration.
	StrategyInstance
)

func (s Strategy) String() string {
	switch s {
	case StrategyConcrete:
		return "concrete"
	case StrategyFactory:
		return "factory"
	case StrategyInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// Binding supplies the construction strategy for a registration.
// Exactly one field must be set; Register fails with ConfigurationError
// otherwise.
type Binding struct {
	// Concrete is the constructor of the service's own type.
	Concrete Builder
	// Factory is an ad-hoc factory function.
	Factory Builder
	// Instance is a pre-built value, registered as-is.
	Instance any
}

// ── Descriptor ────────────────────────────────────────────────────────────────

// Descriptor is the immutable registration record for one abstract: its
// construction strategy and lifetime. Descriptors are created by the
// Registry and never mutated afterwards; re-registration replaces the
// whole record.
type Descriptor struct {
	abstract string
	lifetime Lifetime
	strategy Strategy
	build    Builder // nil when strategy is StrategyInstance
	instance any     // set only when strategy is StrategyInstance
}

func newDescriptor(abstract string, b Binding, lifetime Lifetime) (*Descriptor, error) {
	supplied := 0
	if b.Concrete != nil {
		supplied++
	}
	if b.Factory != nil {
		supplied++
	}
	if b.Instance != nil {
		supplied++
	}
	switch {
	case supplied == 0:
		return nil, &ConfigurationError{Abstract: abstract, Reason: "no construction strategy supplied"}
	case supplied > 1:
		return nil, &ConfigurationError{Abstract: abstract, Reason: "multiple construction strategies supplied"}
	}

	d := &Descriptor{abstract: abstract, lifetime: lifetime}
	switch {
	case b.Instance != nil:
		if lifetime == Transient {
			return nil, &ConfigurationError{
				Abstract: abstract,
				Reason:   "a pre-built instance cannot have a transient lifetime",
			}
		}
		d.strategy = StrategyInstance
		d.instance = b.Instance
	case b.Concrete != nil:
		d.strategy = StrategyConcrete
		d.build = b.Concrete
	default:
		d.strategy = StrategyFactory
		d.build = b.Factory
	}
	return d, nil
}

// Abstract returns the canonical key this descriptor was registered under.
func (d *Descriptor) Abstract() string { return d.abstract }

// Lifetime returns the registered lifetime.
func (d *Descriptor) Lifetime() Lifetime { return d.lifetime }

// Strategy returns the registered construction strategy.
func (d *Descriptor) Strategy() Strategy { return d.strategy }
