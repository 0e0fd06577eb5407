package grass

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/devotobrendo/GrassSystem-sub001/common"
	"github.com/devotobrendo/GrassSystem-sub001/engine/camera"
	"github.com/devotobrendo/GrassSystem-sub001/engine/light"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/bind_group_provider"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/material"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/pipeline"

	"github.com/cogentcore/webgpu/wgpu"
)

// SystemState tracks the grass system lifecycle.
type SystemState int

const (
	// StateUninitialized is the state before Initialize and after a released
	// system is re-initialized from scratch.
	StateUninitialized SystemState = iota

	// StateInitialized means GPU resources are live and frames can run.
	StateInitialized

	// StateReleased means Release freed all GPU resources. Initialize brings
	// the system back up.
	StateReleased
)

func (s SystemState) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateReleased:
		return "released"
	default:
		return "uninitialized"
	}
}

// grassSystem is the unexported implementation of GrassSystem.
type grassSystem struct {
	mu sync.Mutex

	r        renderer.Renderer
	settings Settings
	store    InstanceStore
	reg      InteractorRegistry

	bm   BufferManager
	pool worker.DynamicWorkerPool

	cam camera.Camera
	sun light.Light

	materialBGP bind_group_provider.BindGroupProvider
	lightBGP    bind_group_provider.BindGroupProvider
	shadowBGP   bind_group_provider.BindGroupProvider
	shadowView  *wgpu.TextureView
	shadowTex   *wgpu.Texture

	state        SystemState
	inert        bool
	shadowActive bool
	time         float32
	visibleCount uint32

	// sourceInstances mirrors the last upload so the reference culler does
	// not copy the store every frame.
	sourceInstances []GPUBladeInstance

	computeWorkers int
	trackVisible   bool
	loggedInert    bool
}

// GrassSystem is the top-level orchestrator: it owns the instance store, the
// interactor registry, and the GPU resources, and drives the per-frame
// reset, culling dispatch, and indirect draw.
//
// Frame order matters: PrepareCompute before PrepareShadows before Draw, all
// between the renderer's frame boundaries. The compute submission lands on
// the same queue as the draw, so queue order is the only barrier needed
// between the kernel's appends and the indirect draw that consumes them.
type GrassSystem interface {
	// Initialize registers the pipelines, creates all GPU resources, and
	// uploads the store's instances. All or nothing: on error, no partial
	// GPU state is left behind. An empty store is not an error; the system
	// comes up inert and Rebuild activates it once instances exist.
	//
	// Parameters:
	//   - cam: the camera whose frustum drives culling
	//   - sun: the directional light for shading and shadows
	//
	// Returns:
	//   - error: an error if validation or GPU resource creation fails
	Initialize(cam camera.Camera, sun light.Light) error

	// Rebuild re-uploads the instance store after its contents changed.
	// Releases and recreates the per-instance GPU buffers; the pipelines and
	// static resources are kept.
	//
	// Returns:
	//   - error: an error if re-initialization fails
	Rebuild() error

	// Release frees all GPU resources. Safe to call more than once.
	Release()

	// State returns the current lifecycle state. An empty store still
	// initializes to StateInitialized, but in inert mode: the GPU buffer
	// manager stays down and no dispatch or draw ever runs until a Rebuild
	// plants instances.
	State() SystemState

	// Store returns the instance store. Mutations take effect on the GPU
	// after Rebuild.
	Store() InstanceStore

	// Interactors returns the interactor registry. Registration changes are
	// picked up by the next PrepareCompute without a rebuild.
	Interactors() InteractorRegistry

	// Settings returns the settings this system was built with.
	Settings() Settings

	// VisibleCount returns the host-side reference count of blades that
	// survived culling last frame, or 0 when count tracking is disabled.
	// Always one frame behind the GPU.
	//
	// Returns:
	//   - uint32: the visible blade count from the last PrepareCompute
	VisibleCount() uint32

	// PrepareCompute stages this frame's uniforms, resets the indirect args,
	// flushes the staged writes, and encodes the culling dispatch. Inert
	// systems (empty store) skip the frame with a single log line.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame, accumulated into the
	//     wind clock
	//
	// Returns:
	//   - error: ErrCapacityMismatch if the store length diverged from the
	//     uploaded GPU buffers, or an error if the compute encoder could not
	//     be created
	PrepareCompute(deltaTime float32) error

	// PrepareShadows runs the depth-only shadow pass over the visible
	// blades. No-op when shadows are disabled in settings or on the light.
	//
	// Returns:
	//   - error: an error if the shadow encoder could not be created
	PrepareShadows() error

	// Draw encodes the single indirect draw for all visible blades within
	// the renderer's current render pass.
	//
	// Returns:
	//   - error: an error if the render pipeline is not registered
	Draw() error
}

// Compile-time check that grassSystem implements GrassSystem
var _ GrassSystem = &grassSystem{}

// NewGrassSystem creates a GrassSystem bound to the given renderer and
// settings. GPU resources are not touched until Initialize.
//
// Parameters:
//   - r: the renderer the system drives
//   - s: the settings carrying geometry, material, and the cull shader
//   - options: a variadic list of options to configure the system
//
// Returns:
//   - GrassSystem: a new uninitialized GrassSystem
func NewGrassSystem(r renderer.Renderer, s Settings, options ...GrassSystemOption) GrassSystem {
	g := &grassSystem{
		r:              r,
		settings:       s,
		store:          NewInstanceStore(),
		reg:            NewInteractorRegistry(),
		computeWorkers: runtime.NumCPU(),
		trackVisible:   true,
	}
	for _, opt := range options {
		opt(g)
	}
	g.bm = NewBufferManager(r)
	return g
}

func (g *grassSystem) Initialize(cam camera.Camera, sun light.Light) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == StateInitialized {
		return fmt.Errorf("%w: system already initialized", ErrConfiguration)
	}
	if cam == nil || sun == nil {
		return fmt.Errorf("%w: camera and light are required", ErrConfiguration)
	}
	if ok, reason := Validate(g.settings); !ok {
		return fmt.Errorf("%w: %s", ErrConfiguration, reason)
	}

	g.cam = cam
	g.sun = sun
	g.shadowActive = g.settings.CastShadows() && sun.CastsShadows()
	g.pool = worker.NewDynamicWorkerPool(g.computeWorkers, 256, 1*time.Second)

	if err := g.initStaticResourcesLocked(); err != nil {
		g.releaseLocked()
		return err
	}

	instances := g.store.Instances()
	if len(instances) == 0 {
		g.inert = true
		g.loggedInert = false
	} else {
		if err := g.bm.Initialize(instances, g.settings, OutputBindGroupLayout()); err != nil {
			g.releaseLocked()
			return err
		}
		g.sourceInstances = instances
		g.inert = false
	}

	g.state = StateInitialized
	return nil
}

// initStaticResourcesLocked creates everything that survives a Rebuild:
// pipelines, mesh buffers, and the camera, material, light, and shadow bind
// groups.
func (g *grassSystem) initStaticResourcesLocked() error {
	geom := g.settings.Geometry()
	mat := g.settings.Material()

	vertexShader := NewBladeVertexShader()
	renderPipeline := pipeline.NewPipeline(RenderPipelineKey, pipeline.PipelineTypeRender,
		pipeline.WithVertexShader(vertexShader),
		pipeline.WithFragmentShader(NewBladeFragmentShader()),
		pipeline.WithCullMode(wgpu.CullModeNone),
	)
	cullPipeline := pipeline.NewPipeline(CullPipelineKey, pipeline.PipelineTypeCompute,
		pipeline.WithComputeShader(g.settings.CullShader()),
	)
	if err := g.r.RegisterPipelines(cullPipeline, renderPipeline); err != nil {
		return fmt.Errorf("%w: pipeline registration: %v", ErrResourceExhaustion, err)
	}

	if err := g.r.InitMeshBuffers(geom.MeshProvider(), geom.VertexData(), geom.IndexData(), geom.IndexCount()); err != nil {
		return fmt.Errorf("%w: blade mesh buffers: %v", ErrResourceExhaustion, err)
	}

	if err := g.r.InitBindGroup(g.cam.BindGroupProvider(), vertexShader.BindGroupLayoutDescriptor(0), nil, nil); err != nil {
		return fmt.Errorf("%w: camera bind group: %v", ErrResourceExhaustion, err)
	}

	// Material: params uniform plus the pattern texture. A 1x1 white texture
	// stands in when the material has none, so the layout never changes.
	materialBGP := bind_group_provider.NewBindGroupProvider("grass_material")
	pattern := mat.PatternTexture()
	if pattern == nil {
		pattern = &common.TextureStagingData{
			Data:   []byte{255, 255, 255, 255},
			Width:  1,
			Height: 1,
			Label:  "grass_pattern_fallback",
		}
	}
	if err := g.r.InitTextureView(materialBGP, 1, *pattern); err != nil {
		materialBGP.Release()
		return fmt.Errorf("%w: pattern texture: %v", ErrResourceExhaustion, err)
	}
	if err := g.r.InitSampler(materialBGP, 2, common.SamplerStagingData{Label: "grass_pattern_sampler"}); err != nil {
		materialBGP.Release()
		return fmt.Errorf("%w: pattern sampler: %v", ErrResourceExhaustion, err)
	}
	if err := g.r.InitBindGroup(materialBGP, vertexShader.BindGroupLayoutDescriptor(2), nil, nil); err != nil {
		materialBGP.Release()
		return fmt.Errorf("%w: material bind group: %v", ErrResourceExhaustion, err)
	}
	g.materialBGP = materialBGP
	mat.SetPipelineKey(RenderPipelineKey)
	mat.SetBindGroupProvider(materialBGP)

	params := material.GPUMaterialParams{
		TintBottom:       mat.TintBottom(),
		SpecularStrength: mat.SpecularStrength(),
		TintTop:          mat.TintTop(),
	}
	g.r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: materialBGP, Binding: 0, Offset: 0, Data: params.Marshal()},
	})

	// Shadow map resources are created regardless of the shadow toggle; the
	// light bind group layout always carries the depth texture and
	// comparison sampler, and the fragment shader gates on shadow_enabled.
	res := int(g.sun.ShadowResolution())
	shadowView, shadowTex, err := g.r.CreateShadowDepthTexture(res, res)
	if err != nil {
		return fmt.Errorf("%w: shadow depth texture: %v", ErrResourceExhaustion, err)
	}
	g.shadowTex = shadowTex

	compSampler, err := g.r.CreateComparisonSampler()
	if err != nil {
		shadowView.Release()
		return fmt.Errorf("%w: comparison sampler: %v", ErrResourceExhaustion, err)
	}

	lightBGP := bind_group_provider.NewBindGroupProvider("grass_light")
	lightBGP.SetTextureView(1, shadowView)
	lightBGP.SetSampler(2, compSampler)
	if err := g.r.InitBindGroup(lightBGP, vertexShader.BindGroupLayoutDescriptor(3), nil, nil); err != nil {
		// Releases the shadow view and comparison sampler set above.
		lightBGP.Release()
		return fmt.Errorf("%w: light bind group: %v", ErrResourceExhaustion, err)
	}
	g.lightBGP = lightBGP
	g.shadowView = shadowView

	if g.shadowActive {
		shadowShader := NewShadowVertexShader()
		shadowPipeline := pipeline.NewPipeline(ShadowMapPipelineKey, pipeline.PipelineTypeRender,
			pipeline.WithVertexShader(shadowShader),
			pipeline.WithCullMode(wgpu.CullModeNone),
			pipeline.WithDepthBias(2, 1.5),
		)
		if err := g.r.RegisterShadowPipeline(shadowPipeline); err != nil {
			return fmt.Errorf("%w: shadow pipeline: %v", ErrResourceExhaustion, err)
		}

		shadowBGP := bind_group_provider.NewBindGroupProvider("grass_shadow_data")
		if err := g.r.InitBindGroup(shadowBGP, shadowShader.BindGroupLayoutDescriptor(0), nil, nil); err != nil {
			shadowBGP.Release()
			return fmt.Errorf("%w: shadow data bind group: %v", ErrResourceExhaustion, err)
		}
		g.shadowBGP = shadowBGP
	}

	return nil
}

func (g *grassSystem) Rebuild() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateInitialized {
		return fmt.Errorf("%w: rebuild requires an initialized system, state is %s", ErrConfiguration, g.state)
	}

	instances := g.store.Instances()
	if len(instances) == 0 {
		g.bm.Release()
		g.sourceInstances = nil
		g.visibleCount = 0
		g.inert = true
		g.loggedInert = false
		return nil
	}

	var err error
	if g.bm.Initialized() {
		err = g.bm.Rebuild(instances, g.settings, OutputBindGroupLayout())
	} else {
		err = g.bm.Initialize(instances, g.settings, OutputBindGroupLayout())
	}
	if err != nil {
		return err
	}

	g.sourceInstances = instances
	g.inert = false
	return nil
}

func (g *grassSystem) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateUninitialized {
		return
	}
	g.releaseLocked()
	g.state = StateReleased
}

func (g *grassSystem) releaseLocked() {
	g.bm.Release()
	if g.materialBGP != nil {
		g.materialBGP.Release()
		g.materialBGP = nil
	}
	if g.lightBGP != nil {
		// Owns the shadow view and comparison sampler via its bindings.
		g.lightBGP.Release()
		g.lightBGP = nil
		g.shadowView = nil
	}
	if g.shadowBGP != nil {
		g.shadowBGP.Release()
		g.shadowBGP = nil
	}
	if g.shadowTex != nil {
		g.shadowTex.Release()
		g.shadowTex = nil
	}
	g.sourceInstances = nil
	g.visibleCount = 0
	g.inert = false
	g.loggedInert = false
}

func (g *grassSystem) State() SystemState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *grassSystem) Store() InstanceStore {
	return g.store
}

func (g *grassSystem) Interactors() InteractorRegistry {
	return g.reg
}

func (g *grassSystem) Settings() Settings {
	return g.settings
}

func (g *grassSystem) VisibleCount() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.visibleCount
}

func (g *grassSystem) PrepareCompute(deltaTime float32) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateInitialized {
		return nil
	}
	if g.inert {
		if !g.loggedInert {
			log.Printf("[Grass] instance store is empty, skipping frames until Rebuild")
			g.loggedInert = true
		}
		return nil
	}

	// Store mutations are never patched into the GPU buffers in place; a
	// diverged length forces a Rebuild.
	if n := g.store.Len(); uint32(n) != g.bm.InstanceCount() {
		return fmt.Errorf("%w: store has %d instances, GPU source has %d, call Rebuild",
			ErrCapacityMismatch, n, g.bm.InstanceCount())
	}

	g.time += deltaTime

	cullU := g.cullUniformLocked()
	windU := g.windUniformLocked()

	g.bm.ResetIndirectArgs()
	g.bm.StageCullUniform(&cullU)
	g.bm.StageWindUniform(&windU)

	writes := g.bm.StagedWriteData()
	camU := g.cam.Uniform()
	writes = append(writes, bind_group_provider.BufferWrite{
		Provider: g.cam.BindGroupProvider(),
		Binding:  0,
		Offset:   0,
		Data:     camU.Marshal(),
	})
	lightU := g.sun.Uniform(g.shadowCenterLocked())
	if !g.shadowActive {
		lightU.ShadowEnabled = 0
	}
	writes = append(writes, bind_group_provider.BufferWrite{
		Provider: g.lightBGP,
		Binding:  0,
		Offset:   0,
		Data:     lightU.Marshal(),
	})
	g.r.WriteBuffers(writes)

	if err := g.r.BeginComputeFrame(); err != nil {
		return err
	}
	groups := (g.bm.InstanceCount() + CullWorkgroupSize - 1) / CullWorkgroupSize
	g.r.DispatchCompute(CullPipelineKey, g.bm.ComputeProvider(), [3]uint32{groups, 1, 1})
	g.r.EndComputeFrame()

	if g.trackVisible {
		g.visibleCount = uint32(len(CullVisible(g.pool, g.sourceInstances, &cullU)))
	}
	return nil
}

func (g *grassSystem) PrepareShadows() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateInitialized || g.inert || !g.shadowActive {
		return nil
	}

	vp := g.sun.ShadowViewProjection(g.shadowCenterLocked())
	raw := make([]byte, 64)
	for i, f := range vp {
		binary.LittleEndian.PutUint32(raw[i*4:i*4+4], math.Float32bits(f))
	}
	g.r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: g.shadowBGP, Binding: 0, Offset: 0, Data: raw},
	})

	if err := g.r.BeginShadowFrame(); err != nil {
		return err
	}
	g.r.BeginShadowPass(g.shadowView)
	err := g.r.ShadowDrawCallIndirect(ShadowMapPipelineKey, g.settings.Geometry().MeshProvider(), g.bm.IndirectBuffer(),
		[]bind_group_provider.BindGroupProvider{g.shadowBGP, g.bm.OutputProvider()})
	g.r.EndShadowPass()
	g.r.EndShadowFrame()
	return err
}

func (g *grassSystem) Draw() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateInitialized || g.inert {
		return nil
	}

	return g.r.DrawCallIndirect(RenderPipelineKey, g.settings.Geometry().MeshProvider(), g.bm.IndirectBuffer(),
		[]bind_group_provider.BindGroupProvider{
			g.cam.BindGroupProvider(),
			g.bm.OutputProvider(),
			g.materialBGP,
			g.lightBGP,
		})
}

func (g *grassSystem) cullUniformLocked() GPUCullUniform {
	pos := g.cam.Position()
	u := GPUCullUniform{
		CameraPosition:  [3]float32{pos.X(), pos.Y(), pos.Z()},
		InstanceCount:   g.bm.InstanceCount(),
		MinFadeDistance: g.settings.MinFadeDistance(),
		MaxDrawDistance: g.settings.MaxDrawDistance(),
	}
	planes := g.cam.Frustum()
	for i := range u.Planes {
		u.Planes[i] = GPUFrustumPlane{
			Normal:   planes[i].Normal,
			Distance: planes[i].Distance,
		}
	}
	return u
}

func (g *grassSystem) windUniformLocked() GPUWindUniform {
	geom := g.settings.Geometry()
	return GPUWindUniform{
		Time:               g.time,
		WindSpeed:          g.settings.WindSpeed(),
		WindStrength:       g.settings.WindStrength(),
		WindFrequency:      g.settings.WindFrequency(),
		InteractorStrength: g.settings.InteractorStrength(),
		GeometryMode:       float32(geom.Mode()),
		UniformScale:       geom.UniformScale(),
		RotationOffset:     geom.RotationOffset(),
		Interactors:        g.reg.Snapshot(g.settings.MaxInteractors(), g.settings.InteractorStrength()),
	}
}

// shadowCenterLocked is the point the sun's orthographic shadow volume is
// fitted around: the center of the planted field, padded by twice the tallest
// blade so swaying tips stay inside.
func (g *grassSystem) shadowCenterLocked() [3]float32 {
	center, _ := g.store.Bounds(2 * g.settings.MaxHeight() * g.settings.Geometry().Height())
	return center
}
