package light

import (
	"sync"

	"github.com/chewxy/math32"
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	direction       [3]float32
	color           [3]float32
	intensity       float32
	ambientColor    [3]float32
	ambientStrength float32

	castsShadows     bool
	shadowHalfExtent float32
	shadowNear       float32
	shadowFar        float32
	shadowBias       float32
	shadowResolution uint32
}

// Light models the single directional sun that lights the field. It carries
// the direction, color, and intensity of the sun plus a flat ambient term,
// and owns the orthographic shadow projection parameters when shadow casting
// is enabled.
//
// The light is marshaled into a GPU uniform each frame via Uniform().
type Light interface {
	// Direction returns the normalized direction the sunlight travels.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the sunlight.
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the sunlight.
	Intensity() float32

	// AmbientColor returns the RGB color of the flat ambient term.
	AmbientColor() [3]float32

	// AmbientStrength returns the scalar weight of the ambient term.
	AmbientStrength() float32

	// CastsShadows returns whether a depth-only shadow pass runs for this
	// light each frame.
	CastsShadows() bool

	// ShadowResolution returns the width and height in texels of the shadow
	// depth texture.
	ShadowResolution() uint32

	// ShadowViewProjection computes the orthographic view-projection matrix
	// for the shadow pass, centered on the given world-space point.
	//
	// Parameters:
	//   - center: world-space point the shadow frustum is centered on,
	//     typically near the camera
	//
	// Returns:
	//   - [16]float32: column-major light view-projection matrix
	ShadowViewProjection(center [3]float32) [16]float32

	// Uniform packs the light state into the GPU uniform layout, including
	// the shadow matrix centered on the given point.
	Uniform(shadowCenter [3]float32) GPULightUniform

	// SetDirection sets the direction of the sunlight and normalizes it.
	SetDirection(x, y, z float32)

	// SetColor sets the RGB color of the sunlight.
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	SetIntensity(intensity float32)

	// SetAmbient sets the ambient color and strength.
	SetAmbient(r, g, b, strength float32)

	// SetCastsShadows toggles the shadow pass for this light.
	SetCastsShadows(castsShadows bool)
}

var _ Light = &lightImpl{}

// NewLight creates a directional sun with sensible defaults and any provided
// options applied.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:               &sync.Mutex{},
		direction:        normalize3(-0.4, -1, -0.3),
		color:            [3]float32{1, 0.97, 0.9},
		intensity:        1.0,
		ambientColor:     [3]float32{0.45, 0.55, 0.4},
		ambientStrength:  0.3,
		castsShadows:     true,
		shadowHalfExtent: DefaultShadowHalfExtent,
		shadowNear:       DefaultShadowNear,
		shadowFar:        DefaultShadowFar,
		shadowBias:       DefaultShadowBias,
		shadowResolution: ShadowMapResolution,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Direction() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.direction
}

func (l *lightImpl) Color() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) AmbientColor() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ambientColor
}

func (l *lightImpl) AmbientStrength() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ambientStrength
}

func (l *lightImpl) CastsShadows() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.castsShadows
}

func (l *lightImpl) ShadowResolution() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.shadowResolution
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.direction = normalize3(x, y, z)
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) SetAmbient(r, g, b, strength float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ambientColor = [3]float32{r, g, b}
	l.ambientStrength = strength
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.castsShadows = castsShadows
}

// normalize3 returns the unit vector for (x, y, z), or a default downward
// direction when the input has no length.
func normalize3(x, y, z float32) [3]float32 {
	length := math32.Sqrt(x*x + y*y + z*z)
	if length == 0 {
		return [3]float32{0, -1, 0}
	}
	inv := 1.0 / length
	return [3]float32{x * inv, y * inv, z * inv}
}
