package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Perspective creates a perspective projection matrix mapping depth to
// WebGPU's clip-space convention: X/Y in [-1, 1], Z in [0, 1]. mgl32's own
// Perspective targets OpenGL's [-1, 1] depth range and would clip against
// the wrong half of clip space.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / math32.Tan(fovY/2.0)
	var m mgl32.Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1.0
	m[14] = (near * far) / (near - far)
	return m
}

// Ortho creates an orthographic projection matrix mapping depth to WebGPU's
// clip-space convention: X/Y in [-1, 1], Z in [0, 1].
//
// Parameters:
//   - left, right, bottom, top: view volume extents on the near plane
//   - near, far: clipping plane distances along -Z
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Ortho(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	rl := right - left
	tb := top - bottom
	fn := far - near

	m := mgl32.Ident4()
	m[0] = 2.0 / rl
	m[5] = 2.0 / tb
	m[10] = -1.0 / fn
	m[12] = -(right + left) / rl
	m[13] = -(top + bottom) / tb
	m[14] = -near / fn
	return m
}
