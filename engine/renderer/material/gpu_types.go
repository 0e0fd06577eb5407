package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialParamsSource is the canonical WGSL definition of the MaterialParams struct.
// Matches GPUMaterialParams layout exactly (32 bytes, std140 aligned).
//
//go:embed assets/material_params.wgsl
var GPUMaterialParamsSource string

// GPUMaterialParams is the GPU-aligned uniform for the grass fragment shader.
// TintBottom and TintTop define the gradient applied along blade height; the
// per-instance color multiplies into that gradient.
// Matches the WGSL MaterialParams struct layout exactly (see GPUMaterialParamsSource).
// Size: 32 bytes (two vec4<f32> slots, std140 aligned).
type GPUMaterialParams struct {
	TintBottom       [3]float32 // offset 0: RGB tint at the blade root (12 bytes)
	SpecularStrength float32    // offset 12: specular highlight factor (4 bytes)
	TintTop          [3]float32 // offset 16: RGB tint at the blade tip (12 bytes)
	Pad0             float32    // offset 28: padding to 32 bytes
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.TintBottom[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.TintBottom[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.TintBottom[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.SpecularStrength))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.TintTop[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.TintTop[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.TintTop[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Pad0))
	return buf
}
