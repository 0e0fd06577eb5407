package grass

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devotobrendo/GrassSystem-sub001/engine/camera"
	"github.com/devotobrendo/GrassSystem-sub001/engine/light"
)

// overviewCamera looks down at the scatter patch from far enough back that
// the whole field sits inside the frustum, 81 to 99 units away.
func overviewCamera() camera.Camera {
	return camera.NewCamera(
		camera.WithPosition(mgl32.Vec3{0, 40, 80}),
		camera.WithTarget(mgl32.Vec3{0, 0, 0}),
	)
}

func plantedSystem(t *testing.T, r *stubRenderer, count int, opts ...SettingsBuilderOption) GrassSystem {
	t.Helper()
	s := validTestSettings(opts...)
	sys := NewGrassSystem(r, s, WithComputeWorkers(2))
	sys.Store().Replace(scatterTestInstances(count, s))
	require.NoError(t, sys.Initialize(overviewCamera(), light.NewLight()))
	return sys
}

func TestGrassSystemInitializeValidation(t *testing.T) {
	t.Run("nil camera or light", func(t *testing.T) {
		sys := NewGrassSystem(newStubRenderer(), validTestSettings())
		require.ErrorIs(t, sys.Initialize(nil, light.NewLight()), ErrConfiguration)
		require.ErrorIs(t, sys.Initialize(overviewCamera(), nil), ErrConfiguration)
		assert.Equal(t, StateUninitialized, sys.State())
	})

	t.Run("invalid settings", func(t *testing.T) {
		sys := NewGrassSystem(newStubRenderer(), validTestSettings(WithMaxInteractors(0)))
		require.ErrorIs(t, sys.Initialize(overviewCamera(), light.NewLight()), ErrConfiguration)
	})

	t.Run("double initialize", func(t *testing.T) {
		sys := plantedSystem(t, newStubRenderer(), 10)
		require.ErrorIs(t, sys.Initialize(overviewCamera(), light.NewLight()), ErrConfiguration)
	})
}

func TestGrassSystemEmptyStoreComesUpInert(t *testing.T) {
	r := newStubRenderer()
	sys := NewGrassSystem(r, validTestSettings())

	require.NoError(t, sys.Initialize(overviewCamera(), light.NewLight()))
	assert.Equal(t, StateInitialized, sys.State())

	// Frames are skipped entirely while the store is empty.
	require.NoError(t, sys.PrepareCompute(0.016))
	require.NoError(t, sys.PrepareCompute(0.016))
	require.NoError(t, sys.PrepareShadows())
	require.NoError(t, sys.Draw())
	assert.Zero(t, r.computeFrames)
	assert.Empty(t, r.dispatches)
	assert.Empty(t, r.indirectDraws)
	assert.Zero(t, sys.VisibleCount())
}

func TestGrassSystemPrepareComputeDispatch(t *testing.T) {
	r := newStubRenderer()
	sys := plantedSystem(t, r, 1000, WithDrawDistances(150, 200))

	require.NoError(t, sys.PrepareCompute(0.016))

	assert.Equal(t, 1, r.computeFrames)
	require.Len(t, r.dispatches, 1)
	assert.Equal(t, CullPipelineKey, r.dispatches[0].PipelineKey)
	assert.Equal(t, "grass_compute", r.dispatches[0].ProviderLabel)
	// 1000 instances at 128 lanes per workgroup.
	assert.Equal(t, [3]uint32{8, 1, 1}, r.dispatches[0].WorkGroupCount)

	var (
		cull GPUCullUniform
		wind GPUWindUniform
		args GPUIndirectArgs
	)
	cullWrites := r.writesFor("grass_compute", CullUniformBinding)
	require.Len(t, cullWrites, 1)
	assert.Len(t, cullWrites[0].Data, cull.Size())

	windWrites := r.writesFor("grass_output", WindUniformBinding)
	require.Len(t, windWrites, 1)
	assert.Len(t, windWrites[0].Data, wind.Size())

	// Source seed at Initialize plus the per-frame reset.
	argsWrites := r.writesFor("grass_compute", IndirectArgsBinding)
	require.Len(t, argsWrites, 2)
	assert.Len(t, argsWrites[1].Data, args.Size())

	lightWrites := r.writesFor("grass_light", 0)
	require.Len(t, lightWrites, 1)

	// The whole patch is inside the frustum and under the fade distance.
	assert.Equal(t, uint32(1000), sys.VisibleCount())
}

func TestGrassSystemVisibleCountBeyondMaxDraw(t *testing.T) {
	r := newStubRenderer()
	sys := plantedSystem(t, r, 500, WithDrawDistances(5, 10))

	require.NoError(t, sys.PrepareCompute(0.016))

	// The dispatch is encoded regardless; the host reference count sees every
	// blade past the draw distance.
	require.Len(t, r.dispatches, 1)
	assert.Zero(t, sys.VisibleCount())
}

func TestGrassSystemVisibleCountTrackingDisabled(t *testing.T) {
	r := newStubRenderer()
	s := validTestSettings(WithDrawDistances(150, 200))
	sys := NewGrassSystem(r, s, WithVisibleCountTracking(false))
	sys.Store().Replace(scatterTestInstances(100, s))
	require.NoError(t, sys.Initialize(overviewCamera(), light.NewLight()))

	require.NoError(t, sys.PrepareCompute(0.016))
	assert.Zero(t, sys.VisibleCount())
}

func TestGrassSystemDrawUsesRegisteredPipelines(t *testing.T) {
	r := newStubRenderer()
	sys := plantedSystem(t, r, 64)

	require.NoError(t, sys.Draw())
	require.Len(t, r.indirectDraws, 1)
	assert.Equal(t, RenderPipelineKey, r.indirectDraws[0].PipelineKey)
	require.Len(t, r.indirectDraws[0].GroupLabels, 4)
	assert.Equal(t, "grass_output", r.indirectDraws[0].GroupLabels[1])
	assert.Equal(t, "grass_material", r.indirectDraws[0].GroupLabels[2])
	assert.Equal(t, "grass_light", r.indirectDraws[0].GroupLabels[3])

	assert.NotNil(t, r.Pipeline(RenderPipelineKey))
	assert.NotNil(t, r.Pipeline(CullPipelineKey))
}

func TestGrassSystemShadowPass(t *testing.T) {
	r := newStubRenderer()
	sys := plantedSystem(t, r, 64)

	require.NoError(t, sys.PrepareShadows())
	assert.Equal(t, 1, r.shadowFrames)
	assert.Equal(t, 1, r.shadowPasses)
	require.Len(t, r.shadowIndirectDraws, 1)
	assert.Equal(t, ShadowMapPipelineKey, r.shadowIndirectDraws[0].PipelineKey)
	assert.Equal(t, []string{"grass_shadow_data", "grass_output"}, r.shadowIndirectDraws[0].GroupLabels)

	// The light view-projection matrix lands in the shadow data uniform.
	vpWrites := r.writesFor("grass_shadow_data", 0)
	require.Len(t, vpWrites, 1)
	assert.Len(t, vpWrites[0].Data, 64)
}

func TestGrassSystemShadowsDisabled(t *testing.T) {
	r := newStubRenderer()
	sys := plantedSystem(t, r, 64, WithCastShadows(false))

	require.NoError(t, sys.PrepareShadows())
	assert.Zero(t, r.shadowFrames)
	assert.Empty(t, r.shadowIndirectDraws)
	assert.Nil(t, r.Pipeline(ShadowMapPipelineKey))
}

func TestGrassSystemRebuild(t *testing.T) {
	r := newStubRenderer()
	sys := plantedSystem(t, r, 100, WithDrawDistances(150, 200))

	require.NoError(t, sys.PrepareCompute(0.016))
	require.Len(t, r.dispatches, 1)
	assert.Equal(t, [3]uint32{1, 1, 1}, r.dispatches[0].WorkGroupCount)

	// Grow the field and rebuild; the next dispatch covers the new count.
	sys.Store().Replace(scatterTestInstances(250, sys.Settings()))
	require.NoError(t, sys.Rebuild())
	require.NoError(t, sys.PrepareCompute(0.016))
	require.Len(t, r.dispatches, 2)
	assert.Equal(t, [3]uint32{2, 1, 1}, r.dispatches[1].WorkGroupCount)
	assert.Equal(t, uint32(250), sys.VisibleCount())

	// Clearing the store drops the system back to inert.
	sys.Store().Clear()
	require.NoError(t, sys.Rebuild())
	require.NoError(t, sys.PrepareCompute(0.016))
	require.Len(t, r.dispatches, 2)
	assert.Zero(t, sys.VisibleCount())

	// And a replant brings it back.
	sys.Store().Replace(scatterTestInstances(10, sys.Settings()))
	require.NoError(t, sys.Rebuild())
	require.NoError(t, sys.PrepareCompute(0.016))
	require.Len(t, r.dispatches, 3)
	assert.Equal(t, [3]uint32{1, 1, 1}, r.dispatches[2].WorkGroupCount)
}

func TestGrassSystemRebuildIdempotent(t *testing.T) {
	r := newStubRenderer()
	sys := plantedSystem(t, r, 200, WithDrawDistances(150, 200))

	centerBefore, radiusBefore := sys.Store().Bounds(2.0)

	// Rebuilding with an unchanged store re-uploads byte-identical source
	// data and leaves the bounding volume alone.
	require.NoError(t, sys.Rebuild())
	require.NoError(t, sys.Rebuild())

	uploads := r.writesFor("grass_compute", SourceBufferBinding)
	require.Len(t, uploads, 3)
	assert.Equal(t, uploads[0].Data, uploads[1].Data)
	assert.Equal(t, uploads[1].Data, uploads[2].Data)

	centerAfter, radiusAfter := sys.Store().Bounds(2.0)
	assert.Equal(t, centerBefore, centerAfter)
	assert.Equal(t, radiusBefore, radiusAfter)

	require.NoError(t, sys.PrepareCompute(0.016))
	assert.Equal(t, uint32(200), sys.VisibleCount())
}

func TestGrassSystemCapacityMismatchForcesRebuild(t *testing.T) {
	r := newStubRenderer()
	sys := plantedSystem(t, r, 64, WithDrawDistances(150, 200))

	// Mutating the store without a rebuild is never patched in place.
	sys.Store().Append(scatterTestInstances(1, sys.Settings())...)
	require.ErrorIs(t, sys.PrepareCompute(0.016), ErrCapacityMismatch)
	assert.Empty(t, r.dispatches)

	require.NoError(t, sys.Rebuild())
	require.NoError(t, sys.PrepareCompute(0.016))
	require.Len(t, r.dispatches, 1)
	assert.Equal(t, uint32(65), sys.VisibleCount())
}

func TestGrassSystemReleaseLifecycle(t *testing.T) {
	r := newStubRenderer()
	sys := plantedSystem(t, r, 32)

	sys.Release()
	assert.Equal(t, StateReleased, sys.State())
	sys.Release()

	// Released systems skip every frame hook.
	require.NoError(t, sys.PrepareCompute(0.016))
	require.NoError(t, sys.PrepareShadows())
	require.NoError(t, sys.Draw())
	assert.Zero(t, r.computeFrames)
	assert.Empty(t, r.indirectDraws)

	require.ErrorIs(t, sys.Rebuild(), ErrConfiguration)

	// Initialize brings a released system back up.
	require.NoError(t, sys.Initialize(overviewCamera(), light.NewLight()))
	assert.Equal(t, StateInitialized, sys.State())
	require.NoError(t, sys.PrepareCompute(0.016))
	assert.Equal(t, 1, r.computeFrames)
}
