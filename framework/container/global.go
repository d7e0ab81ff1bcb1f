package container

import "sync"

// The process-wide container. Created on first access and shared for the
// process lifetime; tests swap it out with Reset. Access goes through
// Default() so the lifecycle is explicit rather than an import-order side
// effect.
var (
	defaultMu sync.Mutex
	defaultC  *Container
)

// Default returns the process-wide container, creating it on first access.
// Every call returns the same instance until Reset.
func Default() *Container {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultC == nil {
		defaultC = New()
	}
	return defaultC
}

// Reset discards the process-wide container. The next Default() call
// creates a fresh one. Intended for test setup; combine with
// ClearSingletons when only cached instances need to go.
func Reset() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultC = nil
}
