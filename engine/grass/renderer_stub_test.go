package grass

import (
	"errors"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/devotobrendo/GrassSystem-sub001/common"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/bind_group_provider"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/pipeline"
)

// recordedWrite is a stubRenderer copy of one staged buffer write. Data is
// copied because callers reuse their staging memory between frames.
type recordedWrite struct {
	Label   string
	Binding int
	Offset  uint64
	Data    []byte
}

type recordedDispatch struct {
	PipelineKey    string
	ProviderLabel  string
	WorkGroupCount [3]uint32
}

type recordedIndirectDraw struct {
	PipelineKey string
	MeshLabel   string
	GroupLabels []string
}

// stubRenderer records every call the grass system and buffer manager make,
// without touching the GPU. Bind group initialization leaves buffers nil, so
// provider Release stays safe.
type stubRenderer struct {
	mu sync.Mutex

	pipelines      map[string]pipeline.Pipeline
	bindGroupInits []string
	textureInits   []string
	samplerInits   []string
	meshInits      []string

	writes     []recordedWrite
	dispatches []recordedDispatch

	computeFrames int
	shadowFrames  int
	shadowPasses  int

	indirectDraws       []recordedIndirectDraw
	shadowIndirectDraws []recordedIndirectDraw

	failBindGroupFor string
}

var _ renderer.Renderer = &stubRenderer{}

var errStubBindGroup = errors.New("stub bind group failure")

func newStubRenderer() *stubRenderer {
	return &stubRenderer{pipelines: make(map[string]pipeline.Pipeline)}
}

func (s *stubRenderer) Pipeline(key string) pipeline.Pipeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pipelines[key]
}

func (s *stubRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range pipelines {
		s.pipelines[p.PipelineKey()] = p
	}
	return nil
}

func (s *stubRenderer) Resize(width, height int) {}

func (s *stubRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meshInits = append(s.meshInits, provider.Label())
	provider.SetIndexCount(indexCount)
	return nil
}

func (s *stubRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failBindGroupFor != "" && provider.Label() == s.failBindGroupFor {
		return errStubBindGroup
	}
	s.bindGroupInits = append(s.bindGroupInits, provider.Label())
	return nil
}

func (s *stubRenderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.textureInits = append(s.textureInits, provider.Label())
	return nil
}

func (s *stubRenderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samplerInits = append(s.samplerInits, provider.Label())
	return nil
}

func (s *stubRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range writes {
		data := make([]byte, len(w.Data))
		copy(data, w.Data)
		s.writes = append(s.writes, recordedWrite{
			Label:   w.Provider.Label(),
			Binding: w.Binding,
			Offset:  w.Offset,
			Data:    data,
		})
	}
}

func (s *stubRenderer) BeginComputeFrame() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.computeFrames++
	return nil
}

func (s *stubRenderer) EndComputeFrame() {}

func (s *stubRenderer) DispatchCompute(pipelineKey string, computeProvider bind_group_provider.BindGroupProvider, workGroupCount [3]uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatches = append(s.dispatches, recordedDispatch{
		PipelineKey:    pipelineKey,
		ProviderLabel:  computeProvider.Label(),
		WorkGroupCount: workGroupCount,
	})
}

func (s *stubRenderer) BeginFrame() error { return nil }

func (s *stubRenderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	return nil
}

func (s *stubRenderer) DrawCallIndirect(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, indirectBuffer *wgpu.Buffer, bindGroups []bind_group_provider.BindGroupProvider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indirectDraws = append(s.indirectDraws, recordedIndirectDraw{
		PipelineKey: pipelineKey,
		MeshLabel:   meshProvider.Label(),
		GroupLabels: groupLabels(bindGroups),
	})
	return nil
}

func (s *stubRenderer) EndFrame() {}

func (s *stubRenderer) Present() {}

func (s *stubRenderer) SetPresentMode(mode renderer.PresentMode) {}

func (s *stubRenderer) CreateShadowDepthTexture(width, height int) (*wgpu.TextureView, *wgpu.Texture, error) {
	return nil, nil, nil
}

func (s *stubRenderer) CreateComparisonSampler() (*wgpu.Sampler, error) {
	return nil, nil
}

func (s *stubRenderer) RegisterShadowPipeline(p pipeline.Pipeline) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pipelines[p.PipelineKey()] = p
	return nil
}

func (s *stubRenderer) BeginShadowFrame() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shadowFrames++
	return nil
}

func (s *stubRenderer) BeginShadowPass(depthView *wgpu.TextureView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shadowPasses++
}

func (s *stubRenderer) ShadowDrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	return nil
}

func (s *stubRenderer) ShadowDrawCallIndirect(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, indirectBuffer *wgpu.Buffer, bindGroups []bind_group_provider.BindGroupProvider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shadowIndirectDraws = append(s.shadowIndirectDraws, recordedIndirectDraw{
		PipelineKey: pipelineKey,
		MeshLabel:   meshProvider.Label(),
		GroupLabels: groupLabels(bindGroups),
	})
	return nil
}

func (s *stubRenderer) EndShadowPass() {}

func (s *stubRenderer) EndShadowFrame() {}

func groupLabels(bindGroups []bind_group_provider.BindGroupProvider) []string {
	labels := make([]string, len(bindGroups))
	for i, bg := range bindGroups {
		labels[i] = bg.Label()
	}
	return labels
}

// writesFor filters recorded writes by provider label and binding.
func (s *stubRenderer) writesFor(label string, binding int) []recordedWrite {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []recordedWrite
	for _, w := range s.writes {
		if w.Label == label && w.Binding == binding {
			out = append(out, w)
		}
	}
	return out
}
