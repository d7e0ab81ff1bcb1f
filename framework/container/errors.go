package container

import (
	"fmt"
	"strings"
)

// The container surfaces three error kinds. All of them indicate a wiring
// defect that must be fixed in registration code — none are retryable, and
// the container never logs them itself.

// ConfigurationError is returned at registration time when a binding is
// ambiguous: zero or more than one construction strategy supplied, a
// pre-built instance registered as transient, or an abstract aliased to
// itself. Nothing is registered when this error is returned.
type ConfigurationError struct {
	Abstract string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("container: invalid registration for [%s]: %s", e.Abstract, e.Reason)
}

// NotRegisteredError is returned at resolution time when the requested
// abstract has no binding.
type NotRegisteredError struct {
	Abstract string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("container: no binding registered for [%s]", e.Abstract)
}

// CircularDependencyError is returned when a resolution re-enters an
// abstract that is still being constructed on the same resolution stack.
// Chain holds the ordered identities from the entry point down to the
// re-entered abstract, which appears again as the final element:
//
//	a -> b -> c -> a
type CircularDependencyError struct {
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	return "container: circular dependency: " + strings.Join(e.Chain, " -> ")
}
