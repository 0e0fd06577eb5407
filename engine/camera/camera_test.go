package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devotobrendo/GrassSystem-sub001/common"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.InDelta(t, mgl32.DegToRad(45), c.Fov(), 1e-6)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(200.0), c.Far())
	require.NotNil(t, c.BindGroupProvider())
}

func TestCameraMatricesTrackPosition(t *testing.T) {
	c := NewCamera(
		WithPosition(mgl32.Vec3{0, 10, 0}),
		WithTarget(mgl32.Vec3{0, 0, -20}),
		WithAspect(1.0),
	)

	before := c.ViewProjectionMatrix()
	c.SetPosition(mgl32.Vec3{5, 10, 0})
	after := c.ViewProjectionMatrix()
	assert.NotEqual(t, before, after, "moving the camera should change the view-projection matrix")
}

func TestCameraFrustumContainsTarget(t *testing.T) {
	c := NewCamera(
		WithPosition(mgl32.Vec3{0, 2, 10}),
		WithTarget(mgl32.Vec3{0, 0, 0}),
	)

	planes := c.Frustum()
	assert.True(t, common.SphereInFrustum(planes, [3]float32{0, 0, 0}, 0.1))
	assert.False(t, common.SphereInFrustum(planes, [3]float32{0, 2, 20}, 0.1), "point behind the camera should fall outside")
}

func TestCameraProjectionDepthInRange(t *testing.T) {
	c := NewCamera(
		WithPosition(mgl32.Vec3{0, 5, 10}),
		WithTarget(mgl32.Vec3{0, 0, 0}),
	)

	// A visible point between the near and far planes must land in WebGPU's
	// [0, 1] depth range after the perspective divide.
	vp := c.ViewProjectionMatrix()
	clip := vp.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	depth := clip.Z() / clip.W()
	assert.Greater(t, depth, float32(0))
	assert.Less(t, depth, float32(1))
}

func TestCameraUniformRoundTrip(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{1, 2, 3}))
	u := c.Uniform()

	require.Equal(t, 80, u.Size())
	assert.Equal(t, [3]float32{1, 2, 3}, u.CameraPosition)

	vp := c.ViewProjectionMatrix()
	assert.Equal(t, [16]float32(vp), u.ViewProj)

	buf := u.Marshal()
	require.Len(t, buf, 80)
}
