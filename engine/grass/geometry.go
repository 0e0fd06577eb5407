package grass

import (
	"github.com/chewxy/math32"

	"github.com/devotobrendo/GrassSystem-sub001/common"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer/bind_group_provider"
)

// GeometryMode selects how blade vertices are produced. The mode is chosen
// once at configuration time and carried to the vertex stage through the wind
// uniform; the host never branches on it per frame.
type GeometryMode int

const (
	// GeometryModeProcedural renders the generated tapered blade strip,
	// scaled per instance by width and height scale.
	GeometryModeProcedural GeometryMode = iota
	// GeometryModeImported renders caller-supplied mesh data with a uniform
	// scale and a fixed rotation offset. Asset import itself stays external;
	// this mode only consumes already-decoded vertex and index bytes.
	GeometryModeImported
)

// BladeVertex is the vertex layout shared by the procedural mesh and the
// grass vertex shader: position, the normalized height parameter used for
// wind and bend weighting, the authored normal, and the -1/+1 side sign.
// Size: 32 bytes.
type BladeVertex struct {
	Position    [3]float32 // offset 0: authored position, blade in the XY plane
	HeightParam float32    // offset 12: 0 at the root, 1 at the tip
	Normal      [3]float32 // offset 16
	Side        float32    // offset 28: -1 left edge, +1 right edge, 0 tip
}

// BladeGeometry describes the mesh drawn once per visible instance and the
// mode-specific transform parameters the vertex stage needs.
type BladeGeometry interface {
	// Mode returns the geometry mode tag carried to the vertex stage.
	//
	// Returns:
	//   - GeometryMode: GeometryModeProcedural or GeometryModeImported
	Mode() GeometryMode

	// VertexData returns the raw vertex bytes for the blade mesh.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the raw uint32 index bytes for the blade mesh.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices, which also seeds the
	// indirect args index count at initialization.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Height returns the unscaled blade height in world units. Used to pad
	// the instance store's bounding volume against wind and interaction
	// displacement.
	//
	// Returns:
	//   - float32: the authored blade height
	Height() float32

	// UniformScale returns the imported-mode uniform scale. 1.0 for
	// procedural geometry.
	//
	// Returns:
	//   - float32: the uniform scale factor
	UniformScale() float32

	// RotationOffset returns the imported-mode yaw offset in radians added
	// to the per-instance deterministic yaw. 0 for procedural geometry.
	//
	// Returns:
	//   - float32: the rotation offset in radians
	RotationOffset() float32

	// MeshProvider retrieves the BindGroupProvider holding the GPU vertex
	// and index buffers, or their staging slot before initialization.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider
}

type bladeGeometry struct {
	mode           GeometryMode
	vertexData     []byte
	indexData      []byte
	indexCount     int
	height         float32
	uniformScale   float32
	rotationOffset float32
	meshProvider   bind_group_provider.BindGroupProvider
}

var _ BladeGeometry = &bladeGeometry{}

// NewProceduralBladeGeometry generates a tapered blade strip in the XY plane:
// segment rings of two vertices each narrowing toward a single tip vertex,
// one unit tall and one unit wide at the root before per-instance scaling.
// Panics if segments < 1.
//
// Parameters:
//   - segments: the number of vertical segments (more segments bend smoother)
//   - options: variadic list of GeometryBuilderOption functions
//
// Returns:
//   - BladeGeometry: the generated procedural geometry
func NewProceduralBladeGeometry(segments int, options ...GeometryBuilderOption) BladeGeometry {
	if segments < 1 {
		panic("grass: NewProceduralBladeGeometry requires at least 1 segment")
	}

	// Rings 0..segments-1 carry two edge vertices; the tip is a single vertex.
	vertices := make([]BladeVertex, 0, segments*2+1)
	for i := range segments {
		t := float32(i) / float32(segments)
		// Linear taper keeps a visible blade silhouette up to the tip triangle.
		halfWidth := 0.5 * (1.0 - 0.8*t)
		for _, side := range [2]float32{-1, 1} {
			vertices = append(vertices, BladeVertex{
				Position:    [3]float32{side * halfWidth, t, 0},
				HeightParam: t,
				Normal:      [3]float32{0, 0, 1},
				Side:        side,
			})
		}
	}
	tip := uint32(len(vertices))
	vertices = append(vertices, BladeVertex{
		Position:    [3]float32{0, 1, 0},
		HeightParam: 1,
		Normal:      [3]float32{0, 0, 1},
	})

	indices := make([]uint32, 0, (segments-1)*6+3)
	for i := range segments - 1 {
		bl := uint32(i * 2)
		br := bl + 1
		tl := bl + 2
		tr := bl + 3
		indices = append(indices, bl, br, tr, bl, tr, tl)
	}
	last := uint32((segments - 1) * 2)
	indices = append(indices, last, last+1, tip)

	g := &bladeGeometry{
		mode:         GeometryModeProcedural,
		vertexData:   common.SliceToBytes(vertices),
		indexData:    common.SliceToBytes(indices),
		indexCount:   len(indices),
		height:       1.0,
		uniformScale: 1.0,
		meshProvider: bind_group_provider.NewBindGroupProvider("blade_mesh"),
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

// NewImportedBladeGeometry wraps caller-supplied mesh data in imported mode.
// The vertex data must follow the BladeVertex layout; indices are uint32.
// Panics if either buffer is empty or indexCount is not positive.
//
// Parameters:
//   - vertexData: the raw vertex bytes in BladeVertex layout
//   - indexData: the raw uint32 index bytes
//   - indexCount: the number of indices
//   - options: variadic list of GeometryBuilderOption functions
//
// Returns:
//   - BladeGeometry: the wrapped imported geometry
func NewImportedBladeGeometry(vertexData, indexData []byte, indexCount int, options ...GeometryBuilderOption) BladeGeometry {
	if len(vertexData) == 0 || len(indexData) == 0 || indexCount <= 0 {
		panic("grass: NewImportedBladeGeometry requires non-empty vertex and index data")
	}

	g := &bladeGeometry{
		mode:         GeometryModeImported,
		vertexData:   vertexData,
		indexData:    indexData,
		indexCount:   indexCount,
		height:       importedBladeHeight(vertexData),
		uniformScale: 1.0,
		meshProvider: bind_group_provider.NewBindGroupProvider("blade_mesh_imported"),
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

// importedBladeHeight derives the blade height from the highest Y coordinate
// in the vertex data. Callers with a known height can override it through
// WithBladeHeight.
func importedBladeHeight(vertexData []byte) float32 {
	vertices := common.BytesToSlice[BladeVertex](vertexData)
	height := float32(0)
	for i := range vertices {
		height = math32.Max(height, vertices[i].Position[1])
	}
	if height == 0 {
		height = 1.0
	}
	return height
}

func (g *bladeGeometry) Mode() GeometryMode {
	return g.mode
}

func (g *bladeGeometry) VertexData() []byte {
	return g.vertexData
}

func (g *bladeGeometry) IndexData() []byte {
	return g.indexData
}

func (g *bladeGeometry) IndexCount() int {
	return g.indexCount
}

func (g *bladeGeometry) Height() float32 {
	return g.height
}

func (g *bladeGeometry) UniformScale() float32 {
	return g.uniformScale
}

func (g *bladeGeometry) RotationOffset() float32 {
	return g.rotationOffset
}

func (g *bladeGeometry) MeshProvider() bind_group_provider.BindGroupProvider {
	return g.meshProvider
}
