package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightUniform is the GPU-aligned representation of the sun light uniform
// buffer. Matches the WGSL LightUniform struct layout exactly.
// Size: 128 bytes (std430 / WGSL aligned).
type GPULightUniform struct {
	LightViewProj   [16]float32 // offset   0: shadow pass view-projection matrix (mat4x4<f32>)
	Direction       [3]float32  // offset  64: normalized sunlight direction (vec3<f32>)
	Intensity       float32     // offset  76: scalar intensity multiplier
	Color           [3]float32  // offset  80: sunlight RGB color (vec3<f32>)
	AmbientStrength float32     // offset  92: scalar weight of the ambient term
	AmbientColor    [3]float32  // offset  96: ambient RGB color (vec3<f32>)
	ShadowBias      float32     // offset 108: constant depth bias for shadow comparisons
	ShadowTexelSize float32     // offset 112: 1 / shadow map resolution
	ShadowEnabled   float32     // offset 116: 1.0 when the shadow pass ran this frame
	_pad            [2]float32  // offset 120: padding to 128 bytes
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULightUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	put := func(offset int, v float32) {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
	}
	for i := range 16 {
		put(i*4, g.LightViewProj[i])
	}
	for i := range 3 {
		put(64+i*4, g.Direction[i])
		put(80+i*4, g.Color[i])
		put(96+i*4, g.AmbientColor[i])
	}
	put(76, g.Intensity)
	put(92, g.AmbientStrength)
	put(108, g.ShadowBias)
	put(112, g.ShadowTexelSize)
	put(116, g.ShadowEnabled)
	return buf
}

func (l *lightImpl) Uniform(shadowCenter [3]float32) GPULightUniform {
	l.mu.Lock()
	defer l.mu.Unlock()

	u := GPULightUniform{
		LightViewProj:   l.shadowViewProjection(shadowCenter),
		Direction:       l.direction,
		Intensity:       l.intensity,
		Color:           l.color,
		AmbientStrength: l.ambientStrength,
		AmbientColor:    l.ambientColor,
		ShadowBias:      l.shadowBias,
		ShadowTexelSize: 1.0 / float32(l.shadowResolution),
	}
	if l.castsShadows {
		u.ShadowEnabled = 1.0
	}
	return u
}
