package grass

// GrassSystemOption configures a GrassSystem during construction.
type GrassSystemOption func(*grassSystem)

// WithStore seeds the system with an existing instance store instead of an
// empty one.
//
// Parameters:
//   - store: the instance store to adopt
//
// Returns:
//   - GrassSystemOption: a function that sets the store
func WithStore(store InstanceStore) GrassSystemOption {
	return func(g *grassSystem) {
		if store != nil {
			g.store = store
		}
	}
}

// WithInteractorRegistry shares an interactor registry with the system, so
// other gameplay code can register interactors against the same set.
//
// Parameters:
//   - reg: the registry to adopt
//
// Returns:
//   - GrassSystemOption: a function that sets the registry
func WithInteractorRegistry(reg InteractorRegistry) GrassSystemOption {
	return func(g *grassSystem) {
		if reg != nil {
			g.reg = reg
		}
	}
}

// WithComputeWorkers sets the worker count for the host-side reference
// culler's pool. Defaults to the logical CPU count.
//
// Parameters:
//   - workers: the number of pool workers, values below 1 are ignored
//
// Returns:
//   - GrassSystemOption: a function that sets the worker count
func WithComputeWorkers(workers int) GrassSystemOption {
	return func(g *grassSystem) {
		if workers >= 1 {
			g.computeWorkers = workers
		}
	}
}

// WithVisibleCountTracking toggles the per-frame host-side reference cull
// that feeds VisibleCount. Disable for very large fields where the CPU
// mirror of the kernel is not worth the cycles.
//
// Parameters:
//   - enabled: whether to track the visible count
//
// Returns:
//   - GrassSystemOption: a function that sets the tracking flag
func WithVisibleCountTracking(enabled bool) GrassSystemOption {
	return func(g *grassSystem) {
		g.trackVisible = enabled
	}
}
