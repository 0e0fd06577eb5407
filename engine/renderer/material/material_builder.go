package material

import (
	"github.com/devotobrendo/GrassSystem-sub001/common"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/bind_group_provider"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithTintBottom is an option builder that sets the RGB tint at the blade root.
//
// Parameters:
//   - color: the root tint color as RGB float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the root tint option to a material
func WithTintBottom(color [3]float32) MaterialBuilderOption {
	return func(m *material) {
		m.tintBottom = color
	}
}

// WithTintTop is an option builder that sets the RGB tint at the blade tip.
//
// Parameters:
//   - color: the tip tint color as RGB float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the tip tint option to a material
func WithTintTop(color [3]float32) MaterialBuilderOption {
	return func(m *material) {
		m.tintTop = color
	}
}

// WithSpecularStrength is an option builder that sets the specular highlight factor.
//
// Parameters:
//   - strength: the specular strength (0.0 disables the highlight)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular option to a material
func WithSpecularStrength(strength float32) MaterialBuilderOption {
	return func(m *material) {
		m.specularStrength = strength
	}
}

// WithPatternTexture is an option builder that sets the optional pattern texture.
//
// Parameters:
//   - tex: the staging data for the pattern texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the pattern texture option to a material
func WithPatternTexture(tex *common.TextureStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.patternTexture = tex
	}
}

// WithPipelineKey is an option builder that sets the render pipeline key for the material.
//
// Parameters:
//   - key: the pipeline key to associate with the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the pipeline key option to a material
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}

// WithBindGroupProvider is an option builder that sets the bind group provider for the material.
//
// Parameters:
//   - provider: the bind group provider containing GPU resources for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the bind group provider option to a material
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) MaterialBuilderOption {
	return func(m *material) {
		m.bindGroupProvider = provider
	}
}
