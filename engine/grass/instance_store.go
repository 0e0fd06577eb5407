package grass

import (
	"sync"

	"github.com/chewxy/math32"
)

// InstanceStore is the authoritative host-resident list of blade instances.
// Only the owning collaborator mutates it structurally, and the pipeline's
// sole contract with those mutations is a Rebuild call after any length
// change. No concurrent writers are assumed; the mutex exists so diagnostic
// readers (profiler, tests) can snapshot safely.
type InstanceStore interface {
	// Append adds instances to the end of the store.
	//
	// Parameters:
	//   - instances: the blade instances to append
	Append(instances ...GPUBladeInstance)

	// Replace swaps the entire store contents for the given list.
	//
	// Parameters:
	//   - instances: the new authoritative instance list
	Replace(instances []GPUBladeInstance)

	// Clear removes every instance from the store.
	Clear()

	// Len returns the current number of instances.
	//
	// Returns:
	//   - int: the instance count
	Len() int

	// Instances returns a copy of the stored instances. Copy-on-read keeps
	// callers from aliasing the authoritative list.
	//
	// Returns:
	//   - []GPUBladeInstance: a copy of the store contents
	Instances() []GPUBladeInstance

	// Bounds returns a conservative bounding sphere over all instance
	// positions, expanded by the given padding. The sphere is recomputed
	// lazily after structural changes and cached between them.
	//
	// Parameters:
	//   - padding: added to the radius, typically twice the maximum blade height
	//
	// Returns:
	//   - [3]float32: the sphere center
	//   - float32: the padded radius
	Bounds(padding float32) ([3]float32, float32)
}

type instanceStore struct {
	mu *sync.Mutex

	instances []GPUBladeInstance

	boundsDirty  bool
	boundsCenter [3]float32
	boundsRadius float32
}

var _ InstanceStore = &instanceStore{}

// NewInstanceStore creates an empty InstanceStore.
//
// Returns:
//   - InstanceStore: the new store
func NewInstanceStore() InstanceStore {
	return &instanceStore{
		mu:          &sync.Mutex{},
		boundsDirty: true,
	}
}

func (s *instanceStore) Append(instances ...GPUBladeInstance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instances = append(s.instances, instances...)
	s.boundsDirty = true
}

func (s *instanceStore) Replace(instances []GPUBladeInstance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instances = make([]GPUBladeInstance, len(instances))
	copy(s.instances, instances)
	s.boundsDirty = true
}

func (s *instanceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instances = s.instances[:0]
	s.boundsDirty = true
}

func (s *instanceStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.instances)
}

func (s *instanceStore) Instances() []GPUBladeInstance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]GPUBladeInstance, len(s.instances))
	copy(out, s.instances)
	return out
}

func (s *instanceStore) Bounds(padding float32) ([3]float32, float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.boundsDirty {
		s.recomputeBounds()
		s.boundsDirty = false
	}
	return s.boundsCenter, s.boundsRadius + padding
}

// recomputeBounds derives the bounding sphere from the axis-aligned extent of
// all instance positions. Caller must hold s.mu.
func (s *instanceStore) recomputeBounds() {
	if len(s.instances) == 0 {
		s.boundsCenter = [3]float32{}
		s.boundsRadius = 0
		return
	}

	lo := s.instances[0].Position
	hi := lo
	for i := 1; i < len(s.instances); i++ {
		p := s.instances[i].Position
		for axis := range 3 {
			lo[axis] = math32.Min(lo[axis], p[axis])
			hi[axis] = math32.Max(hi[axis], p[axis])
		}
	}

	var radiusSq float32
	for axis := range 3 {
		s.boundsCenter[axis] = (lo[axis] + hi[axis]) * 0.5
		half := (hi[axis] - lo[axis]) * 0.5
		radiusSq += half * half
	}
	s.boundsRadius = math32.Sqrt(radiusSq)
}

// ScatterInstances generates count blade instances over a rectangular ground
// region with deterministic jitter: the same seed and region always produce
// the same field. Width and height scales are drawn from the settings ranges
// and the per-instance color varies around the material-agnostic meadow base.
//
// Parameters:
//   - count: the number of instances to generate
//   - origin: the XZ corner of the region
//   - size: the XZ extent of the region
//   - s: settings providing the scale ranges
//   - seed: the jitter seed
//
// Returns:
//   - []GPUBladeInstance: the generated instances
func ScatterInstances(count int, origin, size [2]float32, s Settings, seed uint32) []GPUBladeInstance {
	instances := make([]GPUBladeInstance, count)
	for i := range instances {
		h := hashCombine(seed, uint32(i))
		instances[i] = GPUBladeInstance{
			Position: [3]float32{
				origin[0] + hashFloat(h, 0)*size[0],
				0,
				origin[1] + hashFloat(h, 1)*size[1],
			},
			Normal:      [3]float32{0, 1, 0},
			WidthScale:  lerp(s.MinWidth(), s.MaxWidth(), hashFloat(h, 2)),
			HeightScale: lerp(s.MinHeight(), s.MaxHeight(), hashFloat(h, 3)),
			Color: [3]float32{
				0.9 + 0.2*hashFloat(h, 4),
				0.9 + 0.2*hashFloat(h, 5),
				0.9 + 0.2*hashFloat(h, 6),
			},
			PatternMask: hashFloat(h, 7),
		}
	}
	return instances
}

// hashCombine mixes a seed and an index into one well-distributed word using
// a Wang-style integer hash.
func hashCombine(seed, index uint32) uint32 {
	h := seed*0x9E3779B9 + index
	h ^= h >> 16
	h *= 0x85EBCA6B
	h ^= h >> 13
	h *= 0xC2B2AE35
	h ^= h >> 16
	return h
}

// hashFloat derives a [0,1) float from a hash word and a lane index.
func hashFloat(h, lane uint32) float32 {
	return float32(hashCombine(h, lane)&0xFFFFFF) / float32(1<<24)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
