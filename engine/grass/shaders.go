package grass

import (
	_ "embed"
	"strings"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/devotobrendo/GrassSystem-sub001/engine/camera"
	"github.com/devotobrendo/GrassSystem-sub001/engine/light"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/material"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/shader"
)

// Shader keys registered by the grass system. Also the pipeline keys, since
// each pipeline is built around exactly one of these shader sets.
const (
	CullShaderKey        = "grass_cull"
	BladeVertexKey       = "grass_blade_vert"
	BladeFragmentKey     = "grass_blade_frag"
	ShadowVertexKey      = "grass_shadow_vert"
	CullPipelineKey      = "grass_cull_pipeline"
	RenderPipelineKey    = "grass_render_pipeline"
	ShadowMapPipelineKey = "grass_shadow_pipeline"
)

//go:embed assets/grass_cull.wgsl
var grassCullSource string

//go:embed assets/blade_deform.wgsl
var bladeDeformSource string

//go:embed assets/grass_vert.wgsl
var grassVertSource string

//go:embed assets/grass_frag.wgsl
var grassFragSource string

//go:embed assets/grass_shadow.wgsl
var grassShadowSource string

// OutputBindGroupLayout returns the layout for the bind group the render
// vertex stages read culling output through: the visible instance buffer and
// the wind uniform. Group 1 on both the lit and shadow pipelines, and the
// layout BufferManager initializes the output provider against.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the output bind group layout
func OutputBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	var (
		visible GPUVisibleInstance
		wind    GPUWindUniform
	)
	return wgpu.BindGroupLayoutDescriptor{
		Label: "grass_output_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    VisibleOutBinding,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeReadOnlyStorage,
					MinBindingSize: uint64(visible.Size()),
				},
			},
			{
				Binding:    WindUniformBinding,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(wind.Size()),
				},
			},
		},
	}
}

// NewCullShader builds the culling compute shader: the struct mirror sources
// concatenated with the kernel, plus the declared group 0 layout the
// BufferManager allocates buffers against.
//
// Returns:
//   - shader.Shader: the compute shader for the culling dispatch
func NewCullShader() shader.Shader {
	var (
		blade   GPUBladeInstance
		visible GPUVisibleInstance
		args    GPUIndirectArgs
		cull    GPUCullUniform
	)
	source := strings.Join([]string{
		GPUCullUniformSource,
		GPUBladeInstanceSource,
		GPUVisibleInstanceSource,
		GPUIndirectArgsSource,
		grassCullSource,
	}, "\n")

	return shader.NewShader(CullShaderKey, shader.ShaderTypeCompute, source,
		shader.WithWorkgroupSize(CullWorkgroupSize, 1, 1),
		shader.WithBindGroupLayout(0, wgpu.BindGroupLayoutDescriptor{
			Label: "grass_cull_layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    CullUniformBinding,
					Visibility: wgpu.ShaderStageCompute,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: uint64(cull.Size()),
					},
				},
				{
					Binding:    SourceBufferBinding,
					Visibility: wgpu.ShaderStageCompute,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeReadOnlyStorage,
						MinBindingSize: uint64(blade.Size()),
					},
				},
				{
					Binding:    VisibleBufferBinding,
					Visibility: wgpu.ShaderStageCompute,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeStorage,
						MinBindingSize: uint64(visible.Size()),
					},
				},
				{
					Binding:    IndirectArgsBinding,
					Visibility: wgpu.ShaderStageCompute,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeStorage,
						MinBindingSize: uint64(args.Size()),
					},
				},
			},
		}))
}

// NewBladeVertexShader builds the lit vertex shader. It declares the full
// pipeline layout for the render pass (all four groups), since layouts are
// taken from the vertex shader at pipeline registration.
//
// Returns:
//   - shader.Shader: the lit vertex shader
func NewBladeVertexShader() shader.Shader {
	var (
		cam      camera.GPUCameraUniform
		lit      light.GPULightUniform
		matParam material.GPUMaterialParams
	)
	source := strings.Join([]string{
		GPUVisibleInstanceSource,
		GPUWindUniformSource,
		bladeDeformSource,
		grassVertSource,
	}, "\n")

	return shader.NewShader(BladeVertexKey, shader.ShaderTypeVertex, source,
		shader.WithVertexLayouts(bladeVertexLayout()),
		shader.WithBindGroupLayout(0, wgpu.BindGroupLayoutDescriptor{
			Label: "grass_camera_layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: uint64(cam.Size()),
					},
				},
			},
		}),
		shader.WithBindGroupLayout(1, OutputBindGroupLayout()),
		shader.WithBindGroupLayout(2, wgpu.BindGroupLayoutDescriptor{
			Label: "grass_material_layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageFragment,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: uint64(matParam.Size()),
					},
				},
				{
					Binding:    1,
					Visibility: wgpu.ShaderStageFragment,
					Texture: wgpu.TextureBindingLayout{
						SampleType:    wgpu.TextureSampleTypeFloat,
						ViewDimension: wgpu.TextureViewDimension2D,
					},
				},
				{
					Binding:    2,
					Visibility: wgpu.ShaderStageFragment,
					Sampler: wgpu.SamplerBindingLayout{
						Type: wgpu.SamplerBindingTypeFiltering,
					},
				},
			},
		}),
		shader.WithBindGroupLayout(3, wgpu.BindGroupLayoutDescriptor{
			Label: "grass_light_layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageFragment,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: uint64(lit.Size()),
					},
				},
				{
					Binding:    1,
					Visibility: wgpu.ShaderStageFragment,
					Texture: wgpu.TextureBindingLayout{
						SampleType:    wgpu.TextureSampleTypeDepth,
						ViewDimension: wgpu.TextureViewDimension2D,
					},
				},
				{
					Binding:    2,
					Visibility: wgpu.ShaderStageFragment,
					Sampler: wgpu.SamplerBindingLayout{
						Type: wgpu.SamplerBindingTypeComparison,
					},
				},
			},
		}))
}

// NewBladeFragmentShader builds the lit fragment shader. Layouts come from
// the vertex shader, so only the source is declared here.
//
// Returns:
//   - shader.Shader: the lit fragment shader
func NewBladeFragmentShader() shader.Shader {
	source := strings.Join([]string{
		material.GPUMaterialParamsSource,
		grassFragSource,
	}, "\n")
	return shader.NewShader(BladeFragmentKey, shader.ShaderTypeFragment, source)
}

// NewShadowVertexShader builds the depth-only shadow vertex shader. Group 0
// holds the sun's view-projection matrix, group 1 reuses the output layout so
// the shadow pass reads the same visible buffer as the lit pass.
//
// Returns:
//   - shader.Shader: the shadow vertex shader
func NewShadowVertexShader() shader.Shader {
	source := strings.Join([]string{
		GPUVisibleInstanceSource,
		GPUWindUniformSource,
		bladeDeformSource,
		grassShadowSource,
	}, "\n")

	return shader.NewShader(ShadowVertexKey, shader.ShaderTypeVertex, source,
		shader.WithVertexLayouts(bladeVertexLayout()),
		shader.WithBindGroupLayout(0, wgpu.BindGroupLayoutDescriptor{
			Label: "grass_shadow_layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageVertex,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: 64,
					},
				},
			},
		}),
		shader.WithBindGroupLayout(1, OutputBindGroupLayout()))
}

func bladeVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(BladeVertex{})),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 16, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32, Offset: 28, ShaderLocation: 3},
		},
	}
}
