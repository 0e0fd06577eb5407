package grass

import (
	"sync"

	"github.com/google/uuid"
)

// Interactor is any world entity whose proximity bends blades. Implementors
// expose a per-frame footprint; the registry only ever reads it.
type Interactor interface {
	// Footprint returns the interactor's current position and authored radius.
	//
	// Returns:
	//   - [3]float32: the position in world space
	//   - float32: the authored radius in world units
	Footprint() ([3]float32, float32)
}

// InteractorRegistry owns the explicit lifecycle of active interactors:
// register on activation, deregister on deactivation, snapshot once per
// frame. It is injected into the grass system rather than held as ambient
// process state.
type InteractorRegistry interface {
	// Register adds an interactor and returns the handle used to remove it.
	//
	// Parameters:
	//   - i: the interactor to track
	//
	// Returns:
	//   - uuid.UUID: the deregistration handle
	Register(i Interactor) uuid.UUID

	// Deregister removes the interactor registered under the given handle.
	// Unknown handles are ignored.
	//
	// Parameters:
	//   - handle: the handle returned by Register
	Deregister(handle uuid.UUID)

	// Count returns the number of registered interactors.
	//
	// Returns:
	//   - int: the registered count
	Count() int

	// Snapshot produces the fixed-size, frame-fresh footprint array handed to
	// both the culling kernel and the vertex stage. Registration order is
	// preserved; slots beyond min(Count, max) are zero-radius padded. The
	// effective radius of each slot is the authored radius times strength.
	//
	// Parameters:
	//   - max: the number of live slots to fill, clamped to 1-16
	//   - strength: the interactor strength multiplied into each radius
	//
	// Returns:
	//   - [MaxInteractors]GPUInteractor: the zero-padded snapshot
	Snapshot(max int, strength float32) [MaxInteractors]GPUInteractor
}

type registeredInteractor struct {
	handle     uuid.UUID
	interactor Interactor
}

type interactorRegistry struct {
	mu *sync.Mutex

	// Ordered by registration so snapshot slot assignment is stable.
	entries []registeredInteractor
}

var _ InteractorRegistry = &interactorRegistry{}

// NewInteractorRegistry creates an empty InteractorRegistry.
//
// Returns:
//   - InteractorRegistry: the new registry
func NewInteractorRegistry() InteractorRegistry {
	return &interactorRegistry{
		mu: &sync.Mutex{},
	}
}

func (r *interactorRegistry) Register(i Interactor) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle := uuid.New()
	r.entries = append(r.entries, registeredInteractor{
		handle:     handle,
		interactor: i,
	})
	return handle
}

func (r *interactorRegistry) Deregister(handle uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, entry := range r.entries {
		if entry.handle == handle {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

func (r *interactorRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *interactorRegistry) Snapshot(max int, strength float32) [MaxInteractors]GPUInteractor {
	r.mu.Lock()
	defer r.mu.Unlock()

	if max < 1 {
		max = 1
	}
	if max > MaxInteractors {
		max = MaxInteractors
	}

	var snapshot [MaxInteractors]GPUInteractor
	for i, entry := range r.entries {
		if i >= max {
			break
		}
		pos, radius := entry.interactor.Footprint()
		snapshot[i] = GPUInteractor{
			Position:        pos,
			EffectiveRadius: radius * strength,
		}
	}
	return snapshot
}
