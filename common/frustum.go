package common

import "github.com/chewxy/math32"

// Plane represents a single frustum plane in the form
// Normal·P + Distance = 0, with the normal pointing into the frustum.
type Plane struct {
	Normal   [3]float32
	Distance float32
}

// Frustum plane indices into the array returned by ExtractFrustumFromMatrix.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
	FrustumPlaneCount
)

// ExtractFrustumFromMatrix derives the six clip planes from a column-major
// view-projection matrix using the Gribb/Hartmann row combinations for
// WebGPU clip space (Z in [0, 1], so the near plane is row 2 alone). Each
// plane is normalized so Distance measures world units.
//
// Parameters:
//   - vp: 16-element column-major view-projection matrix.
//
// Returns:
//   - [FrustumPlaneCount]Plane: left, right, bottom, top, near, far planes
//     with inward-facing normals.
func ExtractFrustumFromMatrix(vp []float32) [FrustumPlaneCount]Plane {
	var planes [FrustumPlaneCount]Plane
	if len(vp) < 16 {
		return planes
	}

	// row i of the matrix, given column-major storage
	row := func(i int) [4]float32 {
		return [4]float32{vp[i], vp[i+4], vp[i+8], vp[i+12]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	set := func(idx int, p [4]float32) {
		length := math32.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
		if length > 0 {
			inv := 1.0 / length
			p[0] *= inv
			p[1] *= inv
			p[2] *= inv
			p[3] *= inv
		}
		planes[idx] = Plane{Normal: [3]float32{p[0], p[1], p[2]}, Distance: p[3]}
	}
	combine := func(a, b [4]float32, sub bool) [4]float32 {
		var p [4]float32
		for i := range 4 {
			if sub {
				p[i] = a[i] - b[i]
			} else {
				p[i] = a[i] + b[i]
			}
		}
		return p
	}

	set(FrustumLeft, combine(r3, r0, false))
	set(FrustumRight, combine(r3, r0, true))
	set(FrustumBottom, combine(r3, r1, false))
	set(FrustumTop, combine(r3, r1, true))
	// z_clip >= 0 bounds the near side in the [0, 1] depth convention.
	set(FrustumNear, r2)
	set(FrustumFar, combine(r3, r2, true))
	return planes
}

// SignedDistance returns the signed distance from point to the plane.
// Positive values are on the inside of the frustum for planes produced by
// ExtractFrustumFromMatrix.
func (p Plane) SignedDistance(point [3]float32) float32 {
	return p.Normal[0]*point[0] + p.Normal[1]*point[1] + p.Normal[2]*point[2] + p.Distance
}

// SphereInFrustum reports whether a bounding sphere intersects or is
// contained by the frustum.
//
// Parameters:
//   - planes: the six frustum planes.
//   - center: sphere center in world space.
//   - radius: sphere radius; zero tests a single point.
//
// Returns:
//   - bool: false if the sphere is entirely outside any plane.
func SphereInFrustum(planes [FrustumPlaneCount]Plane, center [3]float32, radius float32) bool {
	for i := range planes {
		if planes[i].SignedDistance(center) < -radius {
			return false
		}
	}
	return true
}
