package grass

import "errors"

var (
	// ErrConfiguration marks a settings problem (missing references or
	// inverted numeric ranges). It blocks initialization but is never fatal
	// to the host frame loop.
	ErrConfiguration = errors.New("grass: invalid configuration")

	// ErrCapacityMismatch marks a divergence between the GPU source buffer
	// length and the instance store length. Resolved by a forced rebuild,
	// never by in-place patching.
	ErrCapacityMismatch = errors.New("grass: buffer capacity diverged from instance store")

	// ErrResourceExhaustion marks a device allocation failure or an instance
	// list exceeding MaxBladeInstances. Surfaced as an initialization
	// failure; the pipeline stays inert.
	ErrResourceExhaustion = errors.New("grass: device resources exhausted")
)
