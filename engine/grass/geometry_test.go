package grass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devotobrendo/GrassSystem-sub001/common"
)

func TestProceduralBladeGeometry(t *testing.T) {
	g := NewProceduralBladeGeometry(6)

	assert.Equal(t, GeometryModeProcedural, g.Mode())
	assert.Equal(t, float32(1), g.Height(), "procedural blades are authored one unit tall")
	require.NotNil(t, g.MeshProvider())

	vertices := common.BytesToSlice[BladeVertex](g.VertexData())
	require.Len(t, vertices, 6*2+1, "two edge vertices per ring plus the tip")

	// Rings taper toward the tip; the tip vertex sits on the spine.
	assert.Greater(t, vertices[1].Position[0]-vertices[0].Position[0], float32(0))
	assert.Equal(t, float32(-1), vertices[0].Side)
	tip := vertices[len(vertices)-1]
	assert.Equal(t, [3]float32{0, 1, 0}, tip.Position)
	assert.Equal(t, float32(1), tip.HeightParam)

	// (segments-1) quads of two triangles plus the tip triangle.
	assert.Equal(t, 5*6+3, g.IndexCount())
	require.Len(t, g.IndexData(), g.IndexCount()*4)
}

func TestProceduralBladeHeightParamsAscend(t *testing.T) {
	g := NewProceduralBladeGeometry(4)
	vertices := common.BytesToSlice[BladeVertex](g.VertexData())

	prev := float32(-1)
	for i := 0; i < len(vertices)-1; i += 2 {
		assert.Equal(t, vertices[i].HeightParam, vertices[i+1].HeightParam, "ring edges share a height param")
		assert.Greater(t, vertices[i].HeightParam, prev)
		prev = vertices[i].HeightParam
	}
}

func TestProceduralBladeGeometryPanicsOnBadSegments(t *testing.T) {
	assert.Panics(t, func() { NewProceduralBladeGeometry(0) })
}

func TestImportedBladeGeometry(t *testing.T) {
	vertices := []BladeVertex{
		{Position: [3]float32{-0.05, 0, 0}, HeightParam: 0, Normal: [3]float32{0, 0, 1}, Side: -1},
		{Position: [3]float32{0.05, 0, 0}, HeightParam: 0, Normal: [3]float32{0, 0, 1}, Side: 1},
		{Position: [3]float32{0, 1.8, 0}, HeightParam: 1, Normal: [3]float32{0, 0, 1}},
	}
	indices := []uint32{0, 1, 2}

	g := NewImportedBladeGeometry(common.SliceToBytes(vertices), common.SliceToBytes(indices), 3,
		WithUniformScale(1.4),
		WithRotationOffset(0.25),
	)

	assert.Equal(t, GeometryModeImported, g.Mode())
	assert.Equal(t, 3, g.IndexCount())
	assert.Equal(t, float32(1.4), g.UniformScale())
	assert.Equal(t, float32(0.25), g.RotationOffset())
	assert.InDelta(t, 1.8, g.Height(), 1e-5, "height derives from the tallest vertex")
}

func TestImportedBladeGeometryPanicsOnEmptyData(t *testing.T) {
	assert.Panics(t, func() { NewImportedBladeGeometry(nil, nil, 0) })
}
