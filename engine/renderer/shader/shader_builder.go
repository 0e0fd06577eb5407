package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithEntryPoint overrides the entry point name. Defaults to "main".
//
// Parameters:
//   - entryPoint: the entry point function name in the WGSL source
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point
func WithEntryPoint(entryPoint string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = entryPoint
	}
}

// WithBindGroupLayout declares the bind group layout descriptor for a group
// index. The entries must match the @group/@binding attributes in the WGSL
// source; for render shaders, declare the combined visibility of all stages
// that read the group.
//
// Parameters:
//   - group: the bind group index
//   - descriptor: the layout descriptor for the group
//
// Returns:
//   - ShaderBuilderOption: a function that declares the layout
func WithBindGroupLayout(group int, descriptor wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = descriptor
	}
}

// WithVertexLayouts declares the vertex buffer layouts for a vertex shader,
// in slot order.
//
// Parameters:
//   - layouts: the vertex buffer layouts
//
// Returns:
//   - ShaderBuilderOption: a function that declares the vertex layouts
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts = layouts
	}
}

// WithWorkgroupSize declares the workgroup size for a compute shader. Must
// match the @workgroup_size attribute in the WGSL source.
//
// Parameters:
//   - x, y, z: the workgroup dimensions
//
// Returns:
//   - ShaderBuilderOption: a function that declares the workgroup size
func WithWorkgroupSize(x, y, z uint32) ShaderBuilderOption {
	return func(s *shader) {
		s.workGroupSize = [3]uint32{x, y, z}
	}
}
