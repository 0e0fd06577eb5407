package material

import (
	"github.com/devotobrendo/GrassSystem-sub001/common"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/bind_group_provider"
)

// material is the implementation of the Material interface.
type material struct {
	name              string
	tintBottom        [3]float32
	tintTop           [3]float32
	specularStrength  float32
	patternTexture    *common.TextureStagingData
	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material defines the interface for a grass surface material: the tint
// gradient applied along blade height, an optional pattern texture, and the
// GPU resource bindings needed for draw calls.
//
// Surface properties (name, tints, specular, texture) are set at construction
// and are read-only through this interface. GPU resource references (pipeline
// key, bind group provider) are mutable so they can be configured during the
// renderer init phase.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// TintBottom retrieves the RGB tint applied at the blade root. Per-instance
	// color multiplies into the gradient between TintBottom and TintTop.
	//
	// Returns:
	//   - [3]float32: the root tint color
	TintBottom() [3]float32

	// TintTop retrieves the RGB tint applied at the blade tip.
	//
	// Returns:
	//   - [3]float32: the tip tint color
	TintTop() [3]float32

	// SpecularStrength retrieves the specular highlight factor.
	// A value of 0.0 disables the highlight entirely.
	//
	// Returns:
	//   - float32: the specular strength
	SpecularStrength() float32

	// PatternTexture retrieves the optional pattern texture staging data, or nil if none is set.
	//
	// Returns:
	//   - *common.TextureStagingData: the pattern texture, or nil
	PatternTexture() *common.TextureStagingData

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider, or nil if not yet initialized
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetPipelineKey sets the render pipeline key for this material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this material
	SetPipelineKey(key string)

	// SetBindGroupProvider sets the bind group provider for this material.
	//
	// Parameters:
	//   - provider: the bind group provider containing GPU resources for this material
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Defaults are a green meadow gradient with a subtle highlight.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		name:             "grass",
		tintBottom:       [3]float32{0.05, 0.22, 0.04},
		tintTop:          [3]float32{0.45, 0.75, 0.25},
		specularStrength: 0.15,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) TintBottom() [3]float32 {
	return m.tintBottom
}

func (m *material) TintTop() [3]float32 {
	return m.tintTop
}

func (m *material) SpecularStrength() float32 {
	return m.specularStrength
}

func (m *material) PatternTexture() *common.TextureStagingData {
	return m.patternTexture
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}
