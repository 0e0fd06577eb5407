package grass

import (
	"fmt"

	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/material"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/shader"
)

// Settings carries every configurable parameter of the grass pipeline: the
// geometry, material, and cull-kernel references plus the scalar ranges the
// kernel and vertex stage consume. Construct with NewSettings and validate
// with Validate before handing it to a GrassSystem.
type Settings interface {
	// Geometry returns the blade geometry reference.
	Geometry() BladeGeometry

	// Material returns the draw material reference.
	Material() material.Material

	// CullShader returns the visibility culling kernel reference.
	CullShader() shader.Shader

	// MinWidth returns the lower bound of the per-instance width scale range.
	MinWidth() float32

	// MaxWidth returns the upper bound of the per-instance width scale range.
	MaxWidth() float32

	// MinHeight returns the lower bound of the per-instance height scale range.
	MinHeight() float32

	// MaxHeight returns the upper bound of the per-instance height scale range.
	MaxHeight() float32

	// WindSpeed returns the wind scroll speed in world units per second.
	WindSpeed() float32

	// WindStrength returns the maximum lateral wind offset at the blade tip.
	WindStrength() float32

	// WindFrequency returns the spatial frequency of the wind pattern.
	WindFrequency() float32

	// MinFadeDistance returns the camera distance where LOD fade begins.
	MinFadeDistance() float32

	// MaxDrawDistance returns the hard draw-distance cutoff.
	MaxDrawDistance() float32

	// InteractorStrength returns the push gain shared by all interactors.
	InteractorStrength() float32

	// MaxInteractors returns the per-frame interactor snapshot size (1-16).
	MaxInteractors() int

	// CastShadows reports whether blades render into the shadow depth pass.
	CastShadows() bool
}

type settings struct {
	geometry   BladeGeometry
	mat        material.Material
	cullShader shader.Shader

	minWidth, maxWidth   float32
	minHeight, maxHeight float32

	windSpeed, windStrength, windFrequency float32

	minFadeDistance, maxDrawDistance float32

	interactorStrength float32
	maxInteractors     int
	castShadows        bool
}

var _ Settings = &settings{}

// NewSettings creates a Settings instance with meadow-scale defaults. The
// geometry, material, and cull shader references have no defaults and must be
// supplied through options before validation passes.
//
// Parameters:
//   - options: variadic list of SettingsBuilderOption functions
//
// Returns:
//   - Settings: the configured settings
func NewSettings(options ...SettingsBuilderOption) Settings {
	s := &settings{
		minWidth:           0.06,
		maxWidth:           0.14,
		minHeight:          0.5,
		maxHeight:          1.2,
		windSpeed:          1.2,
		windStrength:       0.25,
		windFrequency:      0.6,
		minFadeDistance:    40,
		maxDrawDistance:    80,
		interactorStrength: 1.0,
		maxInteractors:     MaxInteractors,
		castShadows:        true,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Validate checks a Settings instance for missing references and inverted
// numeric ranges. The reason string names the first problem found.
//
// Parameters:
//   - s: the settings to validate
//
// Returns:
//   - bool: true when the settings are usable
//   - string: empty when ok, otherwise the specific failure
func Validate(s Settings) (bool, string) {
	if s == nil {
		return false, "settings is nil"
	}
	if s.Geometry() == nil {
		return false, "missing blade geometry reference"
	}
	if s.Material() == nil {
		return false, "missing material reference"
	}
	if s.CullShader() == nil {
		return false, "missing cull shader reference"
	}
	if s.MinWidth() > s.MaxWidth() {
		return false, fmt.Sprintf("min width %.3f exceeds max width %.3f", s.MinWidth(), s.MaxWidth())
	}
	if s.MinHeight() > s.MaxHeight() {
		return false, fmt.Sprintf("min height %.3f exceeds max height %.3f", s.MinHeight(), s.MaxHeight())
	}
	if s.MinFadeDistance() >= s.MaxDrawDistance() {
		return false, fmt.Sprintf("min fade distance %.1f must be below max draw distance %.1f", s.MinFadeDistance(), s.MaxDrawDistance())
	}
	if s.MaxInteractors() < 1 || s.MaxInteractors() > MaxInteractors {
		return false, fmt.Sprintf("max interactors %d outside range 1-%d", s.MaxInteractors(), MaxInteractors)
	}
	return true, ""
}

func (s *settings) Geometry() BladeGeometry     { return s.geometry }
func (s *settings) Material() material.Material { return s.mat }
func (s *settings) CullShader() shader.Shader   { return s.cullShader }
func (s *settings) MinWidth() float32           { return s.minWidth }
func (s *settings) MaxWidth() float32           { return s.maxWidth }
func (s *settings) MinHeight() float32          { return s.minHeight }
func (s *settings) MaxHeight() float32          { return s.maxHeight }
func (s *settings) WindSpeed() float32          { return s.windSpeed }
func (s *settings) WindStrength() float32       { return s.windStrength }
func (s *settings) WindFrequency() float32      { return s.windFrequency }
func (s *settings) MinFadeDistance() float32    { return s.minFadeDistance }
func (s *settings) MaxDrawDistance() float32    { return s.maxDrawDistance }
func (s *settings) InteractorStrength() float32 { return s.interactorStrength }
func (s *settings) MaxInteractors() int         { return s.maxInteractors }
func (s *settings) CastShadows() bool           { return s.castShadows }
