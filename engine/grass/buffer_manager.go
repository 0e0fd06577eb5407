package grass

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/devotobrendo/GrassSystem-sub001/common"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/bind_group_provider"
)

// MaxBladeInstances caps the source instance buffer. A full field at this cap
// is 48 MiB of source data plus 52 MiB of visible output, which is as far as
// a single indirect draw should be pushed on mainstream hardware.
const MaxBladeInstances = 1 << 20

// Compute bind group bindings (group 0 of the cull shader).
const (
	CullUniformBinding   = 0
	SourceBufferBinding  = 1
	VisibleBufferBinding = 2
	IndirectArgsBinding  = 3
)

// Output bind group bindings (group 1 of the grass render shaders). The
// visible buffer is the same GPU buffer the compute provider writes into.
const (
	VisibleOutBinding  = 0
	WindUniformBinding = 1
)

// bufferManager is the unexported implementation of BufferManager.
type bufferManager struct {
	mu sync.Mutex

	r renderer.Renderer

	computeProvider bind_group_provider.BindGroupProvider
	outputProvider  bind_group_provider.BindGroupProvider

	instanceCount uint32
	indexCount    uint32
	initialized   bool

	// Reusable staging buffers to avoid per-frame heap allocations. The
	// staged write slices alias these, so StagedWriteData must be drained
	// (via Renderer.WriteBuffers) before the next staging call.
	stagingCull, stagingWind, stagingIndirectRst []byte

	stagedWriteData []bind_group_provider.BufferWrite
}

// BufferManager owns the GPU resources behind the culling dispatch and the
// indirect draw: the source instance buffer, the visible output buffer, the
// indirect args buffer, and the per-frame uniforms. All-or-nothing
// initialization; a failed Initialize leaves no partial GPU state behind.
type BufferManager interface {
	// Initialize validates the settings and instance list, creates the
	// compute and output bind groups, and uploads the source instances once.
	// Errors wrap ErrConfiguration for invalid input and ErrResourceExhaustion
	// when the instance list exceeds MaxBladeInstances or a GPU allocation
	// fails.
	//
	// Parameters:
	//   - instances: the full source instance list, uploaded verbatim
	//   - s: the validated settings carrying the cull shader and geometry
	//   - outputLayout: the render-side bind group layout for the visible
	//     buffer and wind uniform, declared by the grass vertex shader
	//
	// Returns:
	//   - error: an error if validation or GPU resource creation fails
	Initialize(instances []GPUBladeInstance, s Settings, outputLayout wgpu.BindGroupLayoutDescriptor) error

	// Rebuild releases all GPU resources and initializes again from the new
	// instance list. Use after the instance store contents change.
	//
	// Parameters:
	//   - instances: the new source instance list
	//   - s: the settings to rebuild with
	//   - outputLayout: the render-side bind group layout
	//
	// Returns:
	//   - error: an error if re-initialization fails
	Rebuild(instances []GPUBladeInstance, s Settings, outputLayout wgpu.BindGroupLayoutDescriptor) error

	// Release frees all GPU resources. Safe to call more than once, and safe
	// to call on an uninitialized manager.
	Release()

	// Initialized reports whether GPU resources are currently live.
	Initialized() bool

	// InstanceCount returns the number of source instances uploaded at the
	// last Initialize, or 0 when uninitialized.
	InstanceCount() uint32

	// ComputeProvider returns the bind group provider for the culling
	// dispatch, or nil when uninitialized.
	ComputeProvider() bind_group_provider.BindGroupProvider

	// OutputProvider returns the bind group provider the render shaders read
	// the visible buffer and wind uniform through, or nil when uninitialized.
	OutputProvider() bind_group_provider.BindGroupProvider

	// IndirectBuffer returns the GPU buffer holding the DrawIndexedIndirect
	// arguments, or nil when uninitialized. The culling kernel's atomic
	// append writes the instance count field of this buffer.
	IndirectBuffer() *wgpu.Buffer

	// ResetIndirectArgs stages a write that reseeds the indirect args with
	// the blade mesh index count and a zero instance count. Must be staged
	// every frame before the culling dispatch; the kernel's atomic append
	// counts up from zero.
	ResetIndirectArgs()

	// StageCullUniform stages this frame's cull uniform write.
	//
	// Parameters:
	//   - u: the cull uniform with camera position, distances, and planes
	StageCullUniform(u *GPUCullUniform)

	// StageWindUniform stages this frame's wind uniform write.
	//
	// Parameters:
	//   - w: the wind uniform with time, wind params, and interactors
	StageWindUniform(w *GPUWindUniform)

	// StagedWriteData drains and returns the staged buffer writes for this
	// frame. The returned slices alias reusable staging memory, so pass them
	// to Renderer.WriteBuffers before staging again.
	//
	// Returns:
	//   - []bind_group_provider.BufferWrite: the staged writes, oldest first
	StagedWriteData() []bind_group_provider.BufferWrite
}

// Compile-time check that bufferManager implements BufferManager
var _ BufferManager = &bufferManager{}

// NewBufferManager creates a BufferManager bound to the given renderer.
//
// Parameters:
//   - r: the renderer used for bind group creation and buffer uploads
//
// Returns:
//   - BufferManager: a new uninitialized BufferManager
func NewBufferManager(r renderer.Renderer) BufferManager {
	return &bufferManager{r: r}
}

func (m *bufferManager) Initialize(instances []GPUBladeInstance, s Settings, outputLayout wgpu.BindGroupLayoutDescriptor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initializeLocked(instances, s, outputLayout)
}

func (m *bufferManager) initializeLocked(instances []GPUBladeInstance, s Settings, outputLayout wgpu.BindGroupLayoutDescriptor) error {
	if m.initialized {
		return fmt.Errorf("%w: buffer manager already initialized, use Rebuild", ErrConfiguration)
	}
	if ok, reason := Validate(s); !ok {
		return fmt.Errorf("%w: %s", ErrConfiguration, reason)
	}
	if len(instances) == 0 {
		return fmt.Errorf("%w: instance list is empty", ErrConfiguration)
	}
	if len(instances) > MaxBladeInstances {
		return fmt.Errorf("%w: %d instances exceeds the cap of %d", ErrResourceExhaustion, len(instances), MaxBladeInstances)
	}

	count := uint64(len(instances))
	var (
		blade   GPUBladeInstance
		visible GPUVisibleInstance
		args    GPUIndirectArgs
		cull    GPUCullUniform
		wind    GPUWindUniform
	)

	computeProvider := bind_group_provider.NewBindGroupProvider("grass_compute")
	cullLayout := s.CullShader().BindGroupLayoutDescriptor(0)
	err := m.r.InitBindGroup(computeProvider, cullLayout,
		map[int]wgpu.BufferUsage{
			// The args buffer doubles as the DrawIndexedIndirect source.
			IndirectArgsBinding: wgpu.BufferUsageIndirect,
		},
		map[int]uint64{
			CullUniformBinding:   uint64(cull.Size()),
			SourceBufferBinding:  count * uint64(blade.Size()),
			VisibleBufferBinding: count * uint64(visible.Size()),
			IndirectArgsBinding:  uint64(args.Size()),
		})
	if err != nil {
		computeProvider.Release()
		return fmt.Errorf("%w: compute bind group: %v", ErrResourceExhaustion, err)
	}

	// The render side reads the same visible buffer the kernel appends to.
	// Pre-setting it makes InitBindGroup reuse the buffer instead of
	// allocating a second one.
	outputProvider := bind_group_provider.NewBindGroupProvider("grass_output")
	outputProvider.SetBuffer(VisibleOutBinding, computeProvider.Buffer(VisibleBufferBinding))
	err = m.r.InitBindGroup(outputProvider, outputLayout, nil,
		map[int]uint64{
			WindUniformBinding: uint64(wind.Size()),
		})
	if err != nil {
		outputProvider.SetBuffer(VisibleOutBinding, nil)
		outputProvider.Release()
		computeProvider.Release()
		return fmt.Errorf("%w: output bind group: %v", ErrResourceExhaustion, err)
	}

	m.computeProvider = computeProvider
	m.outputProvider = outputProvider
	m.instanceCount = uint32(count)
	m.indexCount = uint32(s.Geometry().IndexCount())
	m.initialized = true

	m.stagingCull = make([]byte, cull.Size())
	m.stagingWind = make([]byte, wind.Size())
	m.stagingIndirectRst = make([]byte, args.Size())

	// One-shot source upload and initial args seed.
	seed := GPUIndirectArgs{IndexCount: m.indexCount}
	m.r.WriteBuffers([]bind_group_provider.BufferWrite{
		{
			Provider: computeProvider,
			Binding:  SourceBufferBinding,
			Offset:   0,
			Data:     common.SliceToBytes(instances),
		},
		{
			Provider: computeProvider,
			Binding:  IndirectArgsBinding,
			Offset:   0,
			Data:     seed.Marshal(),
		},
	})

	return nil
}

func (m *bufferManager) Rebuild(instances []GPUBladeInstance, s Settings, outputLayout wgpu.BindGroupLayoutDescriptor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseLocked()
	return m.initializeLocked(instances, s, outputLayout)
}

func (m *bufferManager) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseLocked()
}

func (m *bufferManager) releaseLocked() {
	if m.outputProvider != nil {
		// The visible binding aliases the compute provider's buffer; clear it
		// so the buffer is only released once.
		m.outputProvider.SetBuffer(VisibleOutBinding, nil)
		m.outputProvider.Release()
		m.outputProvider = nil
	}
	if m.computeProvider != nil {
		m.computeProvider.Release()
		m.computeProvider = nil
	}
	m.instanceCount = 0
	m.indexCount = 0
	m.initialized = false
	m.stagingCull = nil
	m.stagingWind = nil
	m.stagingIndirectRst = nil
	m.stagedWriteData = nil
}

func (m *bufferManager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

func (m *bufferManager) InstanceCount() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.instanceCount
}

func (m *bufferManager) ComputeProvider() bind_group_provider.BindGroupProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.computeProvider
}

func (m *bufferManager) OutputProvider() bind_group_provider.BindGroupProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outputProvider
}

func (m *bufferManager) IndirectBuffer() *wgpu.Buffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.computeProvider == nil {
		return nil
	}
	return m.computeProvider.Buffer(IndirectArgsBinding)
}

func (m *bufferManager) ResetIndirectArgs() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}

	args := GPUIndirectArgs{
		IndexCount:    m.indexCount,
		InstanceCount: 0,
		FirstIndex:    0,
		BaseVertex:    0,
		FirstInstance: 0,
	}
	raw := args.Marshal()
	buf := m.stagingIndirectRst[:len(raw)]
	copy(buf, raw)

	m.stagedWriteData = append(m.stagedWriteData, bind_group_provider.BufferWrite{
		Provider: m.computeProvider,
		Binding:  IndirectArgsBinding,
		Offset:   0,
		Data:     buf,
	})
}

func (m *bufferManager) StageCullUniform(u *GPUCullUniform) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}

	raw := u.Marshal()
	buf := m.stagingCull[:len(raw)]
	copy(buf, raw)

	m.stagedWriteData = append(m.stagedWriteData, bind_group_provider.BufferWrite{
		Provider: m.computeProvider,
		Binding:  CullUniformBinding,
		Offset:   0,
		Data:     buf,
	})
}

func (m *bufferManager) StageWindUniform(w *GPUWindUniform) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}

	raw := w.Marshal()
	buf := m.stagingWind[:len(raw)]
	copy(buf, raw)

	m.stagedWriteData = append(m.stagedWriteData, bind_group_provider.BufferWrite{
		Provider: m.outputProvider,
		Binding:  WindUniformBinding,
		Offset:   0,
		Data:     buf,
	})
}

func (m *bufferManager) StagedWriteData() []bind_group_provider.BufferWrite {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := m.stagedWriteData
	m.stagedWriteData = m.stagedWriteData[:0]
	return w
}
