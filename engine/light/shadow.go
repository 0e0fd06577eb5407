package light

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/devotobrendo/GrassSystem-sub001/common"
)

// ShadowMapResolution is the default width and height in texels of the shadow
// depth texture. Override via the WithShadowResolution builder option.
const ShadowMapResolution = 2048

// DefaultShadowHalfExtent is the default orthographic half-extent (in world units)
// used for the directional light shadow frustum. Controls how much of the field
// around the camera center is captured in the shadow map.
const DefaultShadowHalfExtent float32 = 40.0

// DefaultShadowNear is the default near plane for the directional light's
// orthographic shadow projection.
const DefaultShadowNear float32 = 0.1

// DefaultShadowFar is the default far plane for the directional light's
// orthographic shadow projection.
const DefaultShadowFar float32 = 200.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.001

func (l *lightImpl) ShadowViewProjection(center [3]float32) [16]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.shadowViewProjection(center)
}

// shadowViewProjection builds the orthographic light view-projection matrix
// centered on the given point. Depth maps to [0, 1] so the matrix feeds the
// depth-only shadow pass and the fragment comparison unchanged. Caller must
// hold the mutex.
func (l *lightImpl) shadowViewProjection(center [3]float32) [16]float32 {
	c := mgl32.Vec3{center[0], center[1], center[2]}
	dir := mgl32.Vec3{l.direction[0], l.direction[1], l.direction[2]}

	// Place the eye far enough back along the light direction that the whole
	// shadow volume sits in front of the near plane.
	eye := c.Sub(dir.Mul(l.shadowFar * 0.5))

	up := mgl32.Vec3{0, 1, 0}
	if math32.Abs(dir.Y()) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}

	view := mgl32.LookAtV(eye, c, up)
	proj := common.Ortho(
		-l.shadowHalfExtent, l.shadowHalfExtent,
		-l.shadowHalfExtent, l.shadowHalfExtent,
		l.shadowNear, l.shadowFar,
	)
	vp := proj.Mul4(view)
	return [16]float32(vp)
}
