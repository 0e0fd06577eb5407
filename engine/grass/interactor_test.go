package grass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInteractor struct {
	pos    [3]float32
	radius float32
}

func (s *stubInteractor) Footprint() ([3]float32, float32) {
	return s.pos, s.radius
}

func TestInteractorRegistryRegisterDeregister(t *testing.T) {
	reg := NewInteractorRegistry()
	assert.Equal(t, 0, reg.Count())

	a := reg.Register(&stubInteractor{pos: [3]float32{1, 0, 0}, radius: 2})
	b := reg.Register(&stubInteractor{pos: [3]float32{2, 0, 0}, radius: 3})
	require.NotEqual(t, a, b)
	assert.Equal(t, 2, reg.Count())

	reg.Deregister(a)
	assert.Equal(t, 1, reg.Count())

	// Unknown handles are ignored.
	reg.Deregister(a)
	assert.Equal(t, 1, reg.Count())
}

func TestSnapshotAppliesStrengthAndPadsWithZeros(t *testing.T) {
	reg := NewInteractorRegistry()
	reg.Register(&stubInteractor{pos: [3]float32{5, 1, -2}, radius: 2})

	snap := reg.Snapshot(16, 1.5)
	assert.Equal(t, [3]float32{5, 1, -2}, snap[0].Position)
	assert.Equal(t, float32(3), snap[0].EffectiveRadius, "effective radius is radius times strength")

	for i := 1; i < MaxInteractors; i++ {
		assert.Equal(t, GPUInteractor{}, snap[i], "unused slots must be zeroed so the kernel treats them as inert")
	}
}

func TestSnapshotPreservesRegistrationOrderAndTruncates(t *testing.T) {
	reg := NewInteractorRegistry()
	for i := 0; i < 20; i++ {
		reg.Register(&stubInteractor{pos: [3]float32{float32(i), 0, 0}, radius: 1})
	}
	assert.Equal(t, 20, reg.Count())

	snap := reg.Snapshot(16, 1)
	for i := 0; i < MaxInteractors; i++ {
		assert.Equal(t, float32(i), snap[i].Position[0], "slots fill oldest registration first")
	}
}

func TestSnapshotHonorsSmallerMax(t *testing.T) {
	reg := NewInteractorRegistry()
	for i := 0; i < 8; i++ {
		reg.Register(&stubInteractor{pos: [3]float32{float32(i), 0, 0}, radius: 1})
	}

	snap := reg.Snapshot(4, 1)
	assert.NotEqual(t, GPUInteractor{}, snap[3])
	assert.Equal(t, GPUInteractor{}, snap[4], "slots past max stay inert")
}
