package grass

// GeometryBuilderOption is a function that configures a bladeGeometry instance during construction.
type GeometryBuilderOption func(*bladeGeometry)

// WithUniformScale is an option builder that sets the imported-mode uniform scale.
//
// Parameters:
//   - scale: the uniform scale applied to every vertex
//
// Returns:
//   - GeometryBuilderOption: a function that applies the scale option to a geometry
func WithUniformScale(scale float32) GeometryBuilderOption {
	return func(g *bladeGeometry) {
		g.uniformScale = scale
	}
}

// WithRotationOffset is an option builder that sets the imported-mode yaw offset.
//
// Parameters:
//   - radians: the yaw offset added to the per-instance deterministic yaw
//
// Returns:
//   - GeometryBuilderOption: a function that applies the rotation option to a geometry
func WithRotationOffset(radians float32) GeometryBuilderOption {
	return func(g *bladeGeometry) {
		g.rotationOffset = radians
	}
}

// WithBladeHeight is an option builder that overrides the derived blade height.
//
// Parameters:
//   - height: the unscaled blade height in world units
//
// Returns:
//   - GeometryBuilderOption: a function that applies the height option to a geometry
func WithBladeHeight(height float32) GeometryBuilderOption {
	return func(g *bladeGeometry) {
		g.height = height
	}
}
