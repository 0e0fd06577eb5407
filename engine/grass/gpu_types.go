package grass

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxInteractors is the fixed capacity of the interactor array handed to the
// culling kernel and the vertex stage. Slots beyond the active count are
// zero-radius padded; zero radius marks a slot inert.
const MaxInteractors = 16

// GPUBladeInstanceSource is the canonical WGSL definition of the BladeInstance struct.
// Matches GPUBladeInstance layout exactly (48 bytes, std430 aligned). Scalar f32
// fields keep the WGSL size identical to the host layout; vec3 fields would pad
// the struct to 64 bytes and break the byte-for-byte contract.
//
//go:embed assets/blade_instance.wgsl
var GPUBladeInstanceSource string

// GPUBladeInstance is the GPU-aligned representation of one authored blade.
// The field order is a binary contract shared with the compute kernel; any
// reordering breaks host/device compatibility and must be versioned.
// Size: 48 bytes (12 × f32).
type GPUBladeInstance struct {
	Position    [3]float32 // offset 0: blade root position in world space
	Normal      [3]float32 // offset 12: ground normal at the root
	WidthScale  float32    // offset 24: per-instance width multiplier
	HeightScale float32    // offset 28: per-instance height multiplier
	Color       [3]float32 // offset 32: per-instance RGB color
	PatternMask float32    // offset 44: pattern selector for the fragment stage
}

// Size returns the size of the GPUBladeInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUBladeInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUBladeInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUBladeInstance) Marshal() []byte {
	buf := make([]byte, 48)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.WidthScale))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.HeightScale))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.PatternMask))
	return buf
}

// GPUVisibleInstanceSource is the canonical WGSL definition of the VisibleInstance struct.
// Matches GPUVisibleInstance layout exactly (52 bytes, std430 aligned).
//
//go:embed assets/visible_instance.wgsl
var GPUVisibleInstanceSource string

// GPUVisibleInstance is one culling survivor as appended by the kernel: the
// source blade fields plus the derived distance-fade factor. Written only by
// the compute kernel, never authored on the host.
// Size: 52 bytes (13 × f32).
type GPUVisibleInstance struct {
	Position      [3]float32 // offset 0
	Normal        [3]float32 // offset 12
	WidthScale    float32    // offset 24
	HeightScale   float32    // offset 28
	Color         [3]float32 // offset 32
	PatternMask   float32    // offset 44
	DistanceScale float32    // offset 48: LOD fade, 1.0 near to 0.0 at max draw distance
}

// Size returns the size of the GPUVisibleInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVisibleInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVisibleInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 52-byte buffer ready for GPU upload.
func (g *GPUVisibleInstance) Marshal() []byte {
	buf := make([]byte, 52)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.WidthScale))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.HeightScale))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.PatternMask))
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(g.DistanceScale))
	return buf
}

// GPUIndirectArgsSource is the canonical WGSL definition of the IndirectArgs struct.
// Matches GPUIndirectArgs layout exactly (20 bytes).
//
//go:embed assets/indirect_args.wgsl
var GPUIndirectArgsSource string

// GPUIndirectArgs is the GPU-aligned DrawIndexedIndirect argument block.
// IndexCount is seeded once at initialization from the blade geometry;
// InstanceCount is reset to 0 by the host before every dispatch and is the
// only field the kernel ever mutates (one atomic add per survivor, which
// doubles as the visible-buffer append cursor).
// Size: 20 bytes (5 × u32).
type GPUIndirectArgs struct {
	IndexCount    uint32 // offset 0: number of indices per instance
	InstanceCount uint32 // offset 4: number of visible instances (written by the kernel)
	FirstIndex    uint32 // offset 8: offset into the index buffer
	BaseVertex    int32  // offset 12: added to each index value (signed)
	FirstInstance uint32 // offset 16: first instance ID
}

// Size returns the size of the GPUIndirectArgs struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUIndirectArgs) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUIndirectArgs struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 20-byte buffer ready for GPU upload.
func (g *GPUIndirectArgs) Marshal() []byte {
	buf := make([]byte, 20)
	binary.LittleEndian.PutUint32(buf[0:4], g.IndexCount)
	binary.LittleEndian.PutUint32(buf[4:8], g.InstanceCount)
	binary.LittleEndian.PutUint32(buf[8:12], g.FirstIndex)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(g.BaseVertex))
	binary.LittleEndian.PutUint32(buf[16:20], g.FirstInstance)
	return buf
}

// GPUInteractor is the GPU-aligned footprint of one interactor: position plus
// effective radius (authored radius × strength). A zero radius marks the slot
// inert, which is also the padding sentinel for unused slots.
// Size: 16 bytes (vec3 position + f32 radius, std140/std430 aligned).
type GPUInteractor struct {
	Position        [3]float32 // offset 0: interactor position in world space
	EffectiveRadius float32    // offset 12: radius × strength; 0 = inert
}

// Size returns the size of the GPUInteractor struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUInteractor) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInteractor struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUInteractor) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.EffectiveRadius))
	return buf
}

// GPUFrustumPlane is the GPU-aligned representation of a single view-frustum plane.
// Size: 16 bytes (vec3 normal + f32 distance).
type GPUFrustumPlane struct {
	Normal   [3]float32 // offset 0: plane normal pointing into the frustum
	Distance float32    // offset 12: signed distance from origin
}

// Size returns the size of the GPUFrustumPlane struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUFrustumPlane) Size() int {
	return int(unsafe.Sizeof(*g))
}

// GPUCullUniformSource is the canonical WGSL definition of the CullUniform struct.
// Matches GPUCullUniform layout exactly (128 bytes, std140 aligned).
//
//go:embed assets/cull_uniform.wgsl
var GPUCullUniformSource string

// GPUCullUniform is the per-frame uniform for the visibility culling kernel:
// camera position, the live instance count, the LOD fade band, and the six
// frustum planes extracted from the camera's view-projection matrix.
// Matches the WGSL CullUniform struct layout exactly (see GPUCullUniformSource).
// Size: 128 bytes.
type GPUCullUniform struct {
	CameraPosition  [3]float32         // offset 0
	InstanceCount   uint32             // offset 12: number of live source instances
	MinFadeDistance float32            // offset 16: distance where fade begins
	MaxDrawDistance float32            // offset 20: hard draw-distance cutoff
	_pad0           float32            // offset 24
	_pad1           float32            // offset 28: pad planes array to a 16-byte boundary
	Planes          [6]GPUFrustumPlane // offset 32: 6 × 16 bytes = 96 bytes
}

// Size returns the size of the GPUCullUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUCullUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCullUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload.
func (g *GPUCullUniform) Marshal() []byte {
	buf := make([]byte, 128)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.CameraPosition[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.CameraPosition[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.CameraPosition[2]))
	binary.LittleEndian.PutUint32(buf[12:16], g.InstanceCount)
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.MinFadeDistance))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.MaxDrawDistance))
	binary.LittleEndian.PutUint32(buf[24:28], 0) // _pad0
	binary.LittleEndian.PutUint32(buf[28:32], 0) // _pad1
	off := 32
	for i := range 6 {
		p := g.Planes[i]
		binary.LittleEndian.PutUint32(buf[off+0:off+4], math.Float32bits(p.Normal[0]))
		binary.LittleEndian.PutUint32(buf[off+4:off+8], math.Float32bits(p.Normal[1]))
		binary.LittleEndian.PutUint32(buf[off+8:off+12], math.Float32bits(p.Normal[2]))
		binary.LittleEndian.PutUint32(buf[off+12:off+16], math.Float32bits(p.Distance))
		off += 16
	}
	return buf
}

// GPUWindUniformSource is the canonical WGSL definition of the WindUniform struct.
// Matches GPUWindUniform layout exactly (288 bytes, std140 aligned).
//
//go:embed assets/wind_uniform.wgsl
var GPUWindUniformSource string

// GPUWindUniform is the per-frame uniform for the blade vertex stage: wind
// parameters, elapsed time, the geometry-mode tag, and the frame-fresh
// interactor snapshot. Matches the WGSL WindUniform struct layout exactly
// (see GPUWindUniformSource).
// Size: 288 bytes (32-byte scalar block + 16 × GPUInteractor).
type GPUWindUniform struct {
	Time               float32                       // offset 0: elapsed time in seconds
	WindSpeed          float32                       // offset 4
	WindStrength       float32                       // offset 8
	WindFrequency      float32                       // offset 12
	InteractorStrength float32                       // offset 16: push gain shared by all interactors
	GeometryMode       float32                       // offset 20: tag from GeometryMode, set once at configuration
	UniformScale       float32                       // offset 24: imported-mode uniform scale
	RotationOffset     float32                       // offset 28: imported-mode yaw offset in radians
	Interactors        [MaxInteractors]GPUInteractor // offset 32: 16 × 16 bytes = 256 bytes
}

// Size returns the size of the GPUWindUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUWindUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUWindUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 288-byte buffer ready for GPU upload.
func (g *GPUWindUniform) Marshal() []byte {
	buf := make([]byte, 288)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Time))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.WindSpeed))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.WindStrength))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.WindFrequency))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.InteractorStrength))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.GeometryMode))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.UniformScale))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.RotationOffset))
	off := 32
	for i := range MaxInteractors {
		it := g.Interactors[i]
		binary.LittleEndian.PutUint32(buf[off+0:off+4], math.Float32bits(it.Position[0]))
		binary.LittleEndian.PutUint32(buf[off+4:off+8], math.Float32bits(it.Position[1]))
		binary.LittleEndian.PutUint32(buf[off+8:off+12], math.Float32bits(it.Position[2]))
		binary.LittleEndian.PutUint32(buf[off+12:off+16], math.Float32bits(it.EffectiveRadius))
		off += 16
	}
	return buf
}
