package grass

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUStructSizes(t *testing.T) {
	var (
		blade      GPUBladeInstance
		visible    GPUVisibleInstance
		args       GPUIndirectArgs
		interactor GPUInteractor
		plane      GPUFrustumPlane
		cull       GPUCullUniform
		wind       GPUWindUniform
	)
	assert.Equal(t, 48, blade.Size())
	assert.Equal(t, 52, visible.Size())
	assert.Equal(t, 20, args.Size())
	assert.Equal(t, 16, interactor.Size())
	assert.Equal(t, 16, plane.Size())
	assert.Equal(t, 128, cull.Size())
	assert.Equal(t, 288, wind.Size())
}

func float32At(t *testing.T, buf []byte, offset int) float32 {
	t.Helper()
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset : offset+4]))
}

func TestBladeInstanceMarshalOffsets(t *testing.T) {
	inst := GPUBladeInstance{
		Position:    [3]float32{1, 2, 3},
		Normal:      [3]float32{0, 1, 0},
		WidthScale:  0.1,
		HeightScale: 0.9,
		Color:       [3]float32{0.2, 0.8, 0.3},
		PatternMask: 0.5,
	}
	buf := inst.Marshal()
	require.Len(t, buf, 48)

	assert.Equal(t, float32(1), float32At(t, buf, 0))
	assert.Equal(t, float32(3), float32At(t, buf, 8))
	assert.Equal(t, float32(1), float32At(t, buf, 16))
	assert.Equal(t, float32(0.1), float32At(t, buf, 24))
	assert.Equal(t, float32(0.9), float32At(t, buf, 28))
	assert.Equal(t, float32(0.8), float32At(t, buf, 36))
	assert.Equal(t, float32(0.5), float32At(t, buf, 44))
}

func TestIndirectArgsMarshal(t *testing.T) {
	args := GPUIndirectArgs{IndexCount: 39, InstanceCount: 7, BaseVertex: -2}
	buf := args.Marshal()
	require.Len(t, buf, 20)

	assert.Equal(t, uint32(39), binary.LittleEndian.Uint32(buf[0:4]))
	assert.Equal(t, uint32(7), binary.LittleEndian.Uint32(buf[4:8]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[8:12]))
	assert.Equal(t, int32(-2), int32(binary.LittleEndian.Uint32(buf[12:16])))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[16:20]))
}

func TestCullUniformMarshalPlanesStartAt32(t *testing.T) {
	u := GPUCullUniform{
		CameraPosition:  [3]float32{5, 1, -4},
		InstanceCount:   1000,
		MinFadeDistance: 40,
		MaxDrawDistance: 80,
	}
	u.Planes[0] = GPUFrustumPlane{Normal: [3]float32{0, 0, -1}, Distance: 12}
	u.Planes[5] = GPUFrustumPlane{Normal: [3]float32{1, 0, 0}, Distance: -3}

	buf := u.Marshal()
	require.Len(t, buf, 128)

	assert.Equal(t, uint32(1000), binary.LittleEndian.Uint32(buf[12:16]))
	assert.Equal(t, float32(40), float32At(t, buf, 16))
	assert.Equal(t, float32(80), float32At(t, buf, 20))
	assert.Equal(t, float32(-1), float32At(t, buf, 40), "plane 0 normal z at offset 32+8")
	assert.Equal(t, float32(12), float32At(t, buf, 44))
	assert.Equal(t, float32(-3), float32At(t, buf, 32+5*16+12), "plane 5 distance")
}

func TestWindUniformMarshalInteractorsStartAt32(t *testing.T) {
	u := GPUWindUniform{
		Time:               2.5,
		WindSpeed:          1.2,
		WindStrength:       0.25,
		WindFrequency:      0.6,
		InteractorStrength: 1.0,
		GeometryMode:       float32(GeometryModeImported),
		UniformScale:       1.5,
		RotationOffset:     0.4,
	}
	u.Interactors[0] = GPUInteractor{Position: [3]float32{3, 0, -1}, EffectiveRadius: 2}
	u.Interactors[15] = GPUInteractor{Position: [3]float32{0, 0, 9}, EffectiveRadius: 0.5}

	buf := u.Marshal()
	require.Len(t, buf, 288)

	assert.Equal(t, float32(2.5), float32At(t, buf, 0))
	assert.Equal(t, float32(1), float32At(t, buf, 20), "imported mode tag")
	assert.Equal(t, float32(1.5), float32At(t, buf, 24))
	assert.Equal(t, float32(3), float32At(t, buf, 32), "interactor 0 starts at 32")
	assert.Equal(t, float32(2), float32At(t, buf, 44))
	assert.Equal(t, float32(0.5), float32At(t, buf, 32+15*16+12), "last interactor radius")

	// Inert slots stay zeroed.
	assert.Equal(t, float32(0), float32At(t, buf, 32+7*16+12))
}
