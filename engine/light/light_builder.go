package light

// LightBuilderOption is a functional option for configuring a lightImpl.
type LightBuilderOption func(*lightImpl)

// WithDirection sets the direction the sunlight travels. The vector is
// normalized when applied.
//
// Parameters:
//   - x, y, z: direction components
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.direction = normalize3(x, y, z)
	}
}

// WithColor sets the RGB color of the sunlight.
//
// Parameters:
//   - r, g, b: color components
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = [3]float32{r, g, b}
	}
}

// WithIntensity sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithAmbient sets the flat ambient color and strength.
//
// Parameters:
//   - r, g, b: ambient color components
//   - strength: scalar weight of the ambient term
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithAmbient(r, g, b, strength float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.ambientColor = [3]float32{r, g, b}
		l.ambientStrength = strength
	}
}

// WithCastsShadows toggles the depth-only shadow pass for this light.
//
// Parameters:
//   - castsShadows: true to enable shadow casting
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}

// WithShadowHalfExtent sets the orthographic half-extent in world units of
// the shadow frustum.
//
// Parameters:
//   - halfExtent: half the width and height of the shadow volume
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithShadowHalfExtent(halfExtent float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadowHalfExtent = halfExtent
	}
}

// WithShadowResolution sets the width and height in texels of the shadow
// depth texture.
//
// Parameters:
//   - resolution: texture size in texels
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithShadowResolution(resolution uint32) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadowResolution = resolution
	}
}
