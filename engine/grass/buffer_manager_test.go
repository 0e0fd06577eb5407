package grass

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scatterTestInstances(count int, s Settings) []GPUBladeInstance {
	return ScatterInstances(count, [2]float32{-10, -10}, [2]float32{20, 20}, s, 7)
}

func TestBufferManagerInitializeValidation(t *testing.T) {
	s := validTestSettings()
	layout := OutputBindGroupLayout()

	t.Run("empty instance list", func(t *testing.T) {
		m := NewBufferManager(newStubRenderer())
		err := m.Initialize(nil, s, layout)
		require.ErrorIs(t, err, ErrConfiguration)
		assert.False(t, m.Initialized())
	})

	t.Run("invalid settings", func(t *testing.T) {
		m := NewBufferManager(newStubRenderer())
		bad := validTestSettings(WithWidthRange(2, 1))
		err := m.Initialize(scatterTestInstances(10, s), bad, layout)
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("over instance cap", func(t *testing.T) {
		m := NewBufferManager(newStubRenderer())
		err := m.Initialize(make([]GPUBladeInstance, MaxBladeInstances+1), s, layout)
		require.ErrorIs(t, err, ErrResourceExhaustion)
		assert.False(t, m.Initialized())
	})
}

func TestBufferManagerInitializeUploadsSource(t *testing.T) {
	r := newStubRenderer()
	m := NewBufferManager(r)
	s := validTestSettings()
	instances := scatterTestInstances(1000, s)

	require.NoError(t, m.Initialize(instances, s, OutputBindGroupLayout()))
	assert.True(t, m.Initialized())
	assert.Equal(t, uint32(1000), m.InstanceCount())
	require.NotNil(t, m.ComputeProvider())
	require.NotNil(t, m.OutputProvider())
	assert.Equal(t, "grass_compute", m.ComputeProvider().Label())
	assert.Equal(t, "grass_output", m.OutputProvider().Label())

	var blade GPUBladeInstance
	sourceWrites := r.writesFor("grass_compute", SourceBufferBinding)
	require.Len(t, sourceWrites, 1)
	assert.Len(t, sourceWrites[0].Data, 1000*blade.Size())

	argsWrites := r.writesFor("grass_compute", IndirectArgsBinding)
	require.Len(t, argsWrites, 1)
	var args GPUIndirectArgs
	require.Len(t, argsWrites[0].Data, args.Size())
	indexCount := binary.LittleEndian.Uint32(argsWrites[0].Data[0:4])
	instanceCount := binary.LittleEndian.Uint32(argsWrites[0].Data[4:8])
	assert.Equal(t, uint32(s.Geometry().IndexCount()), indexCount)
	assert.Zero(t, instanceCount)
}

func TestBufferManagerDoubleInitialize(t *testing.T) {
	m := NewBufferManager(newStubRenderer())
	s := validTestSettings()
	instances := scatterTestInstances(16, s)
	layout := OutputBindGroupLayout()

	require.NoError(t, m.Initialize(instances, s, layout))
	err := m.Initialize(instances, s, layout)
	require.ErrorIs(t, err, ErrConfiguration)

	// Rebuild accepts a new list where Initialize refuses.
	require.NoError(t, m.Rebuild(scatterTestInstances(32, s), s, layout))
	assert.Equal(t, uint32(32), m.InstanceCount())
}

func TestBufferManagerInitializeFailureLeavesNoState(t *testing.T) {
	r := newStubRenderer()
	r.failBindGroupFor = "grass_output"
	m := NewBufferManager(r)
	s := validTestSettings()

	err := m.Initialize(scatterTestInstances(8, s), s, OutputBindGroupLayout())
	require.ErrorIs(t, err, ErrResourceExhaustion)
	assert.False(t, m.Initialized())
	assert.Nil(t, m.ComputeProvider())
	assert.Nil(t, m.OutputProvider())
}

func TestBufferManagerResetIndirectArgs(t *testing.T) {
	m := NewBufferManager(newStubRenderer())
	s := validTestSettings()
	require.NoError(t, m.Initialize(scatterTestInstances(4, s), s, OutputBindGroupLayout()))

	m.ResetIndirectArgs()
	writes := m.StagedWriteData()
	require.Len(t, writes, 1)
	assert.Equal(t, IndirectArgsBinding, writes[0].Binding)
	var args GPUIndirectArgs
	require.Len(t, writes[0].Data, args.Size())
	assert.Equal(t, uint32(s.Geometry().IndexCount()), binary.LittleEndian.Uint32(writes[0].Data[0:4]))
	assert.Zero(t, binary.LittleEndian.Uint32(writes[0].Data[4:8]))

	// Drained after the first call.
	assert.Empty(t, m.StagedWriteData())
}

func TestBufferManagerStageUniforms(t *testing.T) {
	m := NewBufferManager(newStubRenderer())
	s := validTestSettings()
	require.NoError(t, m.Initialize(scatterTestInstances(4, s), s, OutputBindGroupLayout()))

	cull := GPUCullUniform{InstanceCount: 4, MaxDrawDistance: 120}
	wind := GPUWindUniform{Time: 1.5}
	m.StageCullUniform(&cull)
	m.StageWindUniform(&wind)

	writes := m.StagedWriteData()
	require.Len(t, writes, 2)

	assert.Equal(t, CullUniformBinding, writes[0].Binding)
	assert.Equal(t, "grass_compute", writes[0].Provider.Label())
	assert.Len(t, writes[0].Data, cull.Size())

	assert.Equal(t, WindUniformBinding, writes[1].Binding)
	assert.Equal(t, "grass_output", writes[1].Provider.Label())
	assert.Len(t, writes[1].Data, wind.Size())
}

func TestBufferManagerReleaseIdempotent(t *testing.T) {
	m := NewBufferManager(newStubRenderer())
	s := validTestSettings()
	layout := OutputBindGroupLayout()
	require.NoError(t, m.Initialize(scatterTestInstances(4, s), s, layout))

	m.Release()
	assert.False(t, m.Initialized())
	assert.Zero(t, m.InstanceCount())
	assert.Nil(t, m.IndirectBuffer())
	m.Release()

	// Staging on a released manager is a no-op.
	m.ResetIndirectArgs()
	m.StageCullUniform(&GPUCullUniform{})
	assert.Empty(t, m.StagedWriteData())

	// A released manager can be initialized again.
	require.NoError(t, m.Initialize(scatterTestInstances(4, s), s, layout))
	assert.True(t, m.Initialized())
}
