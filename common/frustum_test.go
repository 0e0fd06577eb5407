package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrustum(t *testing.T) [FrustumPlaneCount]Plane {
	t.Helper()
	proj := Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 100.0)
	view := mgl32.LookAtV(mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, 2, -1}, mgl32.Vec3{0, 1, 0})
	vp := proj.Mul4(view)
	return ExtractFrustumFromMatrix(vp[:])
}

func TestExtractFrustumNormalized(t *testing.T) {
	planes := testFrustum(t)
	for i, p := range planes {
		length := p.Normal[0]*p.Normal[0] + p.Normal[1]*p.Normal[1] + p.Normal[2]*p.Normal[2]
		assert.InDelta(t, 1.0, length, 1e-4, "plane %d normal should be unit length", i)
	}
}

func TestSphereInFrustum(t *testing.T) {
	planes := testFrustum(t)

	tests := []struct {
		name   string
		center [3]float32
		radius float32
		want   bool
	}{
		{"directly ahead", [3]float32{0, 2, -10}, 0.5, true},
		{"behind camera", [3]float32{0, 2, 10}, 0.5, false},
		{"beyond far plane", [3]float32{0, 2, -150}, 0.5, false},
		{"far off to the side", [3]float32{200, 2, -10}, 0.5, false},
		{"straddling left plane", [3]float32{-12, 2, -10}, 5.0, true},
		{"point on near plane", [3]float32{0, 2, -0.1}, 0, true},
		{"large sphere enclosing camera", [3]float32{0, 2, 0}, 50, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SphereInFrustum(planes, tc.center, tc.radius)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestSignedDistanceAhead(t *testing.T) {
	planes := testFrustum(t)
	near := planes[FrustumNear]
	assert.Greater(t, near.SignedDistance([3]float32{0, 2, -5}), float32(0))
	assert.Less(t, near.SignedDistance([3]float32{0, 2, 5}), float32(0))
}

func TestExtractFrustumShortMatrix(t *testing.T) {
	planes := ExtractFrustumFromMatrix([]float32{1, 2, 3})
	for _, p := range planes {
		assert.Zero(t, p.Distance)
	}
}
