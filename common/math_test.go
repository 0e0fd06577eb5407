package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// ndcZ projects a view-space point through proj and returns its depth after
// the perspective divide.
func ndcZ(proj mgl32.Mat4, p mgl32.Vec3) float32 {
	clip := proj.Mul4x1(p.Vec4(1))
	return clip.Z() / clip.W()
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 100.0)

	assert.InDelta(t, 0.0, ndcZ(proj, mgl32.Vec3{0, 0, -0.1}), 1e-5)
	assert.InDelta(t, 1.0, ndcZ(proj, mgl32.Vec3{0, 0, -100}), 1e-5)

	mid := ndcZ(proj, mgl32.Vec3{0, 0, -10})
	assert.Greater(t, mid, float32(0))
	assert.Less(t, mid, float32(1))
}

func TestOrthoDepthRange(t *testing.T) {
	proj := Ortho(-20, 20, -20, 20, 0.1, 200.0)

	assert.InDelta(t, 0.0, ndcZ(proj, mgl32.Vec3{0, 0, -0.1}), 1e-5)
	assert.InDelta(t, 1.0, ndcZ(proj, mgl32.Vec3{0, 0, -200}), 1e-5)

	// Depth grows away from the eye.
	nearHalf := ndcZ(proj, mgl32.Vec3{0, 0, -50})
	farHalf := ndcZ(proj, mgl32.Vec3{0, 0, -150})
	assert.Less(t, nearHalf, farHalf)
}

func TestOrthoLateralExtents(t *testing.T) {
	proj := Ortho(-20, 20, -20, 20, 0.1, 200.0)
	clip := proj.Mul4x1(mgl32.Vec4{20, -20, -100, 1})
	assert.InDelta(t, 1.0, clip.X(), 1e-5)
	assert.InDelta(t, -1.0, clip.Y(), 1e-5)
}
