package grass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/material"
)

func TestInstanceStoreAppendReplaceClear(t *testing.T) {
	s := NewInstanceStore()
	assert.Equal(t, 0, s.Len())

	s.Append(GPUBladeInstance{Position: [3]float32{1, 0, 1}})
	s.Append(GPUBladeInstance{Position: [3]float32{2, 0, 2}}, GPUBladeInstance{Position: [3]float32{3, 0, 3}})
	assert.Equal(t, 3, s.Len())

	s.Replace([]GPUBladeInstance{{Position: [3]float32{9, 0, 9}}})
	require.Equal(t, 1, s.Len())
	assert.Equal(t, [3]float32{9, 0, 9}, s.Instances()[0].Position)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Instances())
}

func TestInstanceStoreInstancesReturnsCopy(t *testing.T) {
	s := NewInstanceStore()
	s.Append(GPUBladeInstance{Position: [3]float32{1, 2, 3}})

	snap := s.Instances()
	snap[0].Position = [3]float32{0, 0, 0}
	assert.Equal(t, [3]float32{1, 2, 3}, s.Instances()[0].Position, "mutating the snapshot must not touch the store")
}

func TestInstanceStoreBounds(t *testing.T) {
	s := NewInstanceStore()
	s.Append(
		GPUBladeInstance{Position: [3]float32{-10, 0, -10}},
		GPUBladeInstance{Position: [3]float32{10, 0, 10}},
	)

	center, radius := s.Bounds(0)
	assert.Equal(t, [3]float32{0, 0, 0}, center)
	assert.InDelta(t, 14.142, radius, 0.01)

	_, padded := s.Bounds(2)
	assert.InDelta(t, radius+2, padded, 1e-4)
}

func TestInstanceStoreBoundsEmpty(t *testing.T) {
	s := NewInstanceStore()
	center, radius := s.Bounds(1)
	assert.Equal(t, [3]float32{0, 0, 0}, center)
	assert.Equal(t, float32(1), radius)
}

func TestScatterInstancesDeterministic(t *testing.T) {
	settings := NewSettings(
		WithGeometry(NewProceduralBladeGeometry(4)),
		WithMaterial(material.NewMaterial()),
		WithCullShader(NewCullShader()),
		WithWidthRange(0.05, 0.15),
		WithHeightRange(0.5, 1.5),
	)

	a := ScatterInstances(500, [2]float32{-20, -20}, [2]float32{40, 40}, settings, 42)
	b := ScatterInstances(500, [2]float32{-20, -20}, [2]float32{40, 40}, settings, 42)
	require.Len(t, a, 500)
	assert.Equal(t, a, b, "same seed must scatter identically")

	c := ScatterInstances(500, [2]float32{-20, -20}, [2]float32{40, 40}, settings, 43)
	assert.NotEqual(t, a, c, "different seeds must scatter differently")
}

func TestScatterInstancesRespectsBoundsAndRanges(t *testing.T) {
	settings := NewSettings(
		WithGeometry(NewProceduralBladeGeometry(4)),
		WithMaterial(material.NewMaterial()),
		WithCullShader(NewCullShader()),
		WithWidthRange(0.05, 0.15),
		WithHeightRange(0.5, 1.5),
	)

	instances := ScatterInstances(1000, [2]float32{5, -3}, [2]float32{10, 6}, settings, 7)
	for _, inst := range instances {
		assert.GreaterOrEqual(t, inst.Position[0], float32(5))
		assert.Less(t, inst.Position[0], float32(15))
		assert.GreaterOrEqual(t, inst.Position[2], float32(-3))
		assert.Less(t, inst.Position[2], float32(3))
		assert.Equal(t, float32(0), inst.Position[1])
		assert.Equal(t, [3]float32{0, 1, 0}, inst.Normal)

		assert.GreaterOrEqual(t, inst.WidthScale, float32(0.05))
		assert.LessOrEqual(t, inst.WidthScale, float32(0.15))
		assert.GreaterOrEqual(t, inst.HeightScale, float32(0.5))
		assert.LessOrEqual(t, inst.HeightScale, float32(1.5))
		assert.GreaterOrEqual(t, inst.PatternMask, float32(0))
		assert.Less(t, inst.PatternMask, float32(1))
	}
}
