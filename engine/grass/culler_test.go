package grass

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devotobrendo/GrassSystem-sub001/engine/camera"
)

// openPlanes accepts every position: zero normals with a positive distance
// make every signed-distance test pass.
func openPlanes() [6]GPUFrustumPlane {
	var planes [6]GPUFrustumPlane
	for i := range planes {
		planes[i] = GPUFrustumPlane{Distance: 1}
	}
	return planes
}

func cullUniformFor(camPos [3]float32, planes [6]GPUFrustumPlane, count uint32, minFade, maxDraw float32) GPUCullUniform {
	return GPUCullUniform{
		CameraPosition:  camPos,
		InstanceCount:   count,
		MinFadeDistance: minFade,
		MaxDrawDistance: maxDraw,
		Planes:          planes,
	}
}

func TestDistanceScaleEndpoints(t *testing.T) {
	assert.Equal(t, float32(1), DistanceScale(0, 40, 80))
	assert.Equal(t, float32(1), DistanceScale(40, 40, 80), "at minFade the blade is still full size")
	assert.Equal(t, float32(0), DistanceScale(80, 40, 80))
	assert.Equal(t, float32(0), DistanceScale(500, 40, 80))
	assert.InDelta(t, 0.5, DistanceScale(60, 40, 80), 1e-6)
}

func TestDistanceScaleMonotonic(t *testing.T) {
	prev := DistanceScale(0, 10, 100)
	for d := float32(1); d <= 120; d += 1 {
		cur := DistanceScale(d, 10, 100)
		assert.LessOrEqual(t, cur, prev, "fade must never grow with distance")
		prev = cur
	}
}

func TestInstanceVisibleDistanceCutoff(t *testing.T) {
	u := cullUniformFor([3]float32{0, 0, 0}, openPlanes(), 1, 40, 80)

	near := GPUBladeInstance{Position: [3]float32{10, 0, 0}}
	visible, d := InstanceVisible(&near, &u)
	assert.True(t, visible)
	assert.InDelta(t, 10, d, 1e-5)

	far := GPUBladeInstance{Position: [3]float32{81, 0, 0}}
	visible, d = InstanceVisible(&far, &u)
	assert.False(t, visible)
	assert.InDelta(t, 81, d, 1e-4)
}

func TestInstanceVisiblePlaneRejection(t *testing.T) {
	planes := openPlanes()
	// A plane facing +x through the origin rejects everything at negative x.
	planes[2] = GPUFrustumPlane{Normal: [3]float32{1, 0, 0}, Distance: 0}
	u := cullUniformFor([3]float32{0, 0, 0}, planes, 1, 40, 80)

	inFront := GPUBladeInstance{Position: [3]float32{5, 0, 0}}
	visible, _ := InstanceVisible(&inFront, &u)
	assert.True(t, visible)

	behind := GPUBladeInstance{Position: [3]float32{-5, 0, 0}}
	visible, _ = InstanceVisible(&behind, &u)
	assert.False(t, visible)
}

func TestCullVisibleAllBeyondMaxDraw(t *testing.T) {
	instances := make([]GPUBladeInstance, 1000)
	for i := range instances {
		instances[i].Position = [3]float32{200 + float32(i), 0, 0}
	}
	u := cullUniformFor([3]float32{0, 0, 0}, openPlanes(), 1000, 40, 80)

	visible := CullVisible(nil, instances, &u)
	assert.Empty(t, visible)
}

func TestCullVisibleAllWithinMinFade(t *testing.T) {
	instances := make([]GPUBladeInstance, 1000)
	for i := range instances {
		instances[i].Position = [3]float32{float32(i%20) - 10, 0, float32(i/100) - 5}
	}
	u := cullUniformFor([3]float32{0, 0, 0}, openPlanes(), 1000, 40, 80)

	visible := CullVisible(nil, instances, &u)
	require.Len(t, visible, 1000)
	for _, v := range visible {
		assert.Equal(t, float32(1), v.DistanceScale, "inside minFade every blade draws at full size")
	}
}

func TestCullVisibleAgainstCameraFrustum(t *testing.T) {
	cam := camera.NewCamera(
		camera.WithPosition(mgl32.Vec3{0, 5, 20}),
		camera.WithTarget(mgl32.Vec3{0, 0, 0}),
		camera.WithAspect(1.0),
	)

	frustum := cam.Frustum()
	var planes [6]GPUFrustumPlane
	for i := range planes {
		planes[i] = GPUFrustumPlane{Normal: frustum[i].Normal, Distance: frustum[i].Distance}
	}
	pos := cam.Position()
	u := cullUniformFor([3]float32{pos.X(), pos.Y(), pos.Z()}, planes, 2, 40, 80)

	instances := []GPUBladeInstance{
		{Position: [3]float32{0, 0, 0}},  // straight ahead
		{Position: [3]float32{0, 0, 40}}, // behind the camera
	}

	visible := CullVisible(nil, instances, &u)
	require.Len(t, visible, 1)
	assert.Equal(t, [3]float32{0, 0, 0}, visible[0].Position)
}

func TestCullVisibleParallelMatchesSerial(t *testing.T) {
	instances := make([]GPUBladeInstance, 5000)
	for i := range instances {
		instances[i].Position = [3]float32{float32(i % 300), 0, float32(i % 170)}
		instances[i].WidthScale = 0.1
		instances[i].HeightScale = 1
		instances[i].PatternMask = float32(i%7) / 7
	}
	u := cullUniformFor([3]float32{150, 0, 85}, openPlanes(), 5000, 40, 120)

	serial := CullVisible(nil, instances, &u)

	pool := worker.NewDynamicWorkerPool(4, 256, 1*time.Second)
	parallel := CullVisible(pool, instances, &u)

	assert.Equal(t, serial, parallel, "chunk concatenation keeps source order regardless of worker scheduling")
}

func TestCullVisibleCarriesInstanceFields(t *testing.T) {
	instances := []GPUBladeInstance{{
		Position:    [3]float32{50, 0, 0},
		Normal:      [3]float32{0, 1, 0},
		WidthScale:  0.12,
		HeightScale: 0.8,
		Color:       [3]float32{0.9, 1.0, 0.95},
		PatternMask: 0.3,
	}}
	u := cullUniformFor([3]float32{0, 0, 0}, openPlanes(), 1, 40, 80)

	visible := CullVisible(nil, instances, &u)
	require.Len(t, visible, 1)

	v := visible[0]
	assert.Equal(t, instances[0].Position, v.Position)
	assert.Equal(t, instances[0].Normal, v.Normal)
	assert.Equal(t, instances[0].WidthScale, v.WidthScale)
	assert.Equal(t, instances[0].HeightScale, v.HeightScale)
	assert.Equal(t, instances[0].Color, v.Color)
	assert.Equal(t, instances[0].PatternMask, v.PatternMask)
	assert.InDelta(t, 0.75, v.DistanceScale, 1e-5, "50 units into a 40..80 band fades to 0.75")
}
