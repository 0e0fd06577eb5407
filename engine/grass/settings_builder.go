package grass

import (
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/material"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/shader"
)

// SettingsBuilderOption is a function that configures a settings instance during construction.
type SettingsBuilderOption func(*settings)

// WithGeometry is an option builder that sets the blade geometry reference.
//
// Parameters:
//   - g: the blade geometry to draw per visible instance
//
// Returns:
//   - SettingsBuilderOption: a function that applies the geometry option to settings
func WithGeometry(g BladeGeometry) SettingsBuilderOption {
	return func(s *settings) {
		s.geometry = g
	}
}

// WithMaterial is an option builder that sets the draw material reference.
//
// Parameters:
//   - m: the material providing the tint gradient and pipeline binding
//
// Returns:
//   - SettingsBuilderOption: a function that applies the material option to settings
func WithMaterial(m material.Material) SettingsBuilderOption {
	return func(s *settings) {
		s.mat = m
	}
}

// WithCullShader is an option builder that sets the visibility culling kernel reference.
//
// Parameters:
//   - sh: the compute shader performing per-instance culling
//
// Returns:
//   - SettingsBuilderOption: a function that applies the cull shader option to settings
func WithCullShader(sh shader.Shader) SettingsBuilderOption {
	return func(s *settings) {
		s.cullShader = sh
	}
}

// WithWidthRange is an option builder that sets the per-instance width scale range.
//
// Parameters:
//   - min: the lower bound of the width scale
//   - max: the upper bound of the width scale
//
// Returns:
//   - SettingsBuilderOption: a function that applies the width range option to settings
func WithWidthRange(min, max float32) SettingsBuilderOption {
	return func(s *settings) {
		s.minWidth = min
		s.maxWidth = max
	}
}

// WithHeightRange is an option builder that sets the per-instance height scale range.
//
// Parameters:
//   - min: the lower bound of the height scale
//   - max: the upper bound of the height scale
//
// Returns:
//   - SettingsBuilderOption: a function that applies the height range option to settings
func WithHeightRange(min, max float32) SettingsBuilderOption {
	return func(s *settings) {
		s.minHeight = min
		s.maxHeight = max
	}
}

// WithWind is an option builder that sets the wind animation parameters.
//
// Parameters:
//   - speed: the wind scroll speed in world units per second
//   - strength: the maximum lateral offset at the blade tip
//   - frequency: the spatial frequency of the wind pattern
//
// Returns:
//   - SettingsBuilderOption: a function that applies the wind option to settings
func WithWind(speed, strength, frequency float32) SettingsBuilderOption {
	return func(s *settings) {
		s.windSpeed = speed
		s.windStrength = strength
		s.windFrequency = frequency
	}
}

// WithDrawDistances is an option builder that sets the LOD fade band.
// Blades fade from full size at minFade to zero at maxDraw; beyond maxDraw
// they are culled outright.
//
// Parameters:
//   - minFade: the camera distance where fade begins
//   - maxDraw: the hard draw-distance cutoff
//
// Returns:
//   - SettingsBuilderOption: a function that applies the distance option to settings
func WithDrawDistances(minFade, maxDraw float32) SettingsBuilderOption {
	return func(s *settings) {
		s.minFadeDistance = minFade
		s.maxDrawDistance = maxDraw
	}
}

// WithInteractorStrength is an option builder that sets the push gain shared
// by all interactors.
//
// Parameters:
//   - strength: the interactor push gain
//
// Returns:
//   - SettingsBuilderOption: a function that applies the strength option to settings
func WithInteractorStrength(strength float32) SettingsBuilderOption {
	return func(s *settings) {
		s.interactorStrength = strength
	}
}

// WithMaxInteractors is an option builder that sets the per-frame interactor
// snapshot size. Must be between 1 and 16 to pass validation.
//
// Parameters:
//   - count: the snapshot capacity
//
// Returns:
//   - SettingsBuilderOption: a function that applies the interactor count option to settings
func WithMaxInteractors(count int) SettingsBuilderOption {
	return func(s *settings) {
		s.maxInteractors = count
	}
}

// WithCastShadows is an option builder that toggles the blade shadow pass.
//
// Parameters:
//   - cast: true to render blades into the shadow depth map
//
// Returns:
//   - SettingsBuilderOption: a function that applies the shadow option to settings
func WithCastShadows(cast bool) SettingsBuilderOption {
	return func(s *settings) {
		s.castShadows = cast
	}
}
