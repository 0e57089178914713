package common

import (
	"github.com/chewxy/math32"
)

// Mat4 is a 4x4 matrix stored in column-major order (WebGPU convention).
type Mat4 [16]float32

// Identity4 returns the 4x4 identity matrix.
//
// Returns:
//   - Mat4: the identity matrix
func Identity4() Mat4 {
	return Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

// DegToRad converts an angle from degrees to radians.
//
// Parameters:
//   - deg: angle in degrees
//
// Returns:
//   - float32: angle in radians
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Mul returns a * b.
//
// Parameters:
//   - b: right-hand matrix
//
// Returns:
//   - Mat4: the product a * b
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// Transpose returns the transpose of m.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[row*4+col] = m[col*4+row]
		}
	}
	return out
}

// MulPoint transforms the point (x, y, z, 1) by m and returns the resulting xyz.
//
// Parameters:
//   - x, y, z: point coordinates
//
// Returns:
//   - [3]float32: transformed point (w is ignored)
func (m Mat4) MulPoint(x, y, z float32) [3]float32 {
	return [3]float32{
		m[0]*x + m[4]*y + m[8]*z + m[12],
		m[1]*x + m[5]*y + m[9]*z + m[13],
		m[2]*x + m[6]*y + m[10]*z + m[14],
	}
}

// Inverse returns the inverse of m using cofactor expansion.
// If m is singular the identity matrix is returned together with false.
//
// Returns:
//   - Mat4: the inverse matrix, or identity if singular
//   - bool: false if m is singular
func (m Mat4) Inverse() (Mat4, bool) {
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	b00 := a00*a11 - a01*a10
	b01 := a00*a12 - a02*a10
	b02 := a00*a13 - a03*a10
	b03 := a01*a12 - a02*a11
	b04 := a01*a13 - a03*a11
	b05 := a02*a13 - a03*a12
	b06 := a20*a31 - a21*a30
	b07 := a20*a32 - a22*a30
	b08 := a20*a33 - a23*a30
	b09 := a21*a32 - a22*a31
	b10 := a21*a33 - a23*a31
	b11 := a22*a33 - a23*a32

	det := b00*b11 - b01*b10 + b02*b09 + b03*b08 - b04*b07 + b05*b06
	if math32.Abs(det) < 1e-12 {
		return Identity4(), false
	}
	inv := 1 / det

	return Mat4{
		(a11*b11 - a12*b10 + a13*b09) * inv,
		(a02*b10 - a01*b11 - a03*b09) * inv,
		(a31*b05 - a32*b04 + a33*b03) * inv,
		(a22*b04 - a21*b05 - a23*b03) * inv,
		(a12*b08 - a10*b11 - a13*b07) * inv,
		(a00*b11 - a02*b08 + a03*b07) * inv,
		(a32*b02 - a30*b05 - a33*b01) * inv,
		(a20*b05 - a22*b02 + a23*b01) * inv,
		(a10*b10 - a11*b08 + a13*b06) * inv,
		(a01*b08 - a00*b10 - a03*b06) * inv,
		(a30*b04 - a31*b02 + a33*b00) * inv,
		(a21*b02 - a20*b04 - a23*b00) * inv,
		(a11*b07 - a10*b09 - a12*b06) * inv,
		(a00*b09 - a01*b07 + a02*b06) * inv,
		(a31*b01 - a30*b03 - a32*b00) * inv,
		(a20*b03 - a21*b01 + a22*b00) * inv,
	}, true
}

// NormalMatrix returns the inverse-transpose of m, used to transform normals
// under non-uniform scale. Singular matrices yield the identity.
func (m Mat4) NormalMatrix() Mat4 {
	inv, _ := m.Inverse()
	return inv.Transpose()
}

// Perspective builds a perspective projection matrix for WebGPU clip space,
// where depth maps to [0, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width / height)
//   - near: near clipping plane distance (> 0)
//   - far: far clipping plane distance (> near)
//
// Returns:
//   - Mat4: the projection matrix
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	if aspect == 0 {
		aspect = 1
	}
	var out Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1
	out[14] = near * far / (near - far)
	return out
}

// LookAt builds a right-handed view matrix for an eye looking at center.
//
// Parameters:
//   - eye: camera position
//   - center: look-at point
//   - up: world up vector
//
// Returns:
//   - Mat4: the view matrix
func LookAt(eye, center, up [3]float32) Mat4 {
	z := Normalize3(Sub3(eye, center))
	if z == ([3]float32{}) {
		z = [3]float32{0, 0, 1}
	}
	x := Normalize3(Cross3(up, z))
	if x == ([3]float32{}) {
		// Looking straight along up; pick any perpendicular axis.
		x = Normalize3(Cross3([3]float32{0, 0, 1}, z))
	}
	y := Cross3(z, x)

	return Mat4{
		x[0], y[0], z[0], 0,
		x[1], y[1], z[1], 0,
		x[2], y[2], z[2], 0,
		-Dot3(x, eye), -Dot3(y, eye), -Dot3(z, eye), 1,
	}
}

// Compose builds a model matrix T * R * S where R applies Euler rotations in
// X, Y, Z order (R = Rx * Ry * Rz).
//
// Parameters:
//   - position: translation
//   - rotation: Euler angles in radians
//   - scale: per-axis scale
//
// Returns:
//   - Mat4: the model matrix
func Compose(position, rotation, scale [3]float32) Mat4 {
	a, b := math32.Cos(rotation[0]), math32.Sin(rotation[0])
	c, d := math32.Cos(rotation[1]), math32.Sin(rotation[1])
	e, f := math32.Cos(rotation[2]), math32.Sin(rotation[2])

	ae, af, be, bf := a*e, a*f, b*e, b*f

	return Mat4{
		c * e * scale[0], (af + be*d) * scale[0], (bf - ae*d) * scale[0], 0,
		-c * f * scale[1], (ae - bf*d) * scale[1], (be + af*d) * scale[1], 0,
		d * scale[2], -b * c * scale[2], a * c * scale[2], 0,
		position[0], position[1], position[2], 1,
	}
}

// Sub3 returns a - b.
func Sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Dot3 returns the dot product of a and b.
func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross3 returns the cross product a x b.
func Cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Length3 returns the Euclidean length of v.
func Length3(v [3]float32) float32 {
	return math32.Sqrt(Dot3(v, v))
}

// Normalize3 returns v scaled to unit length, or the zero vector if v is
// (nearly) zero.
func Normalize3(v [3]float32) [3]float32 {
	l := Length3(v)
	if l < 1e-8 {
		return [3]float32{}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

// Clamp restricts v to [lo, hi].
func Clamp[T float32 | float64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
