package core

import "math"

// Translation returns a matrix that translates points by (x, y, z)
func Translation(x, y, z float64) Matrix4 {
	m := Identity()
	m[0][3] = x
	m[1][3] = y
	m[2][3] = z
	return m
}

// Scaling returns a matrix that scales by (x, y, z)
func Scaling(x, y, z float64) Matrix4 {
	m := Identity()
	m[0][0] = x
	m[1][1] = y
	m[2][2] = z
	return m
}

// RotationX returns a matrix that rotates about the x axis by rad radians
func RotationX(rad float64) Matrix4 {
	m := Identity()
	cos, sin := math.Cos(rad), math.Sin(rad)
	m[1][1] = cos
	m[1][2] = -sin
	m[2][1] = sin
	m[2][2] = cos
	return m
}

// RotationY returns a matrix that rotates about the y axis by rad radians
func RotationY(rad float64) Matrix4 {
	m := Identity()
	cos, sin := math.Cos(rad), math.Sin(rad)
	m[0][0] = cos
	m[0][2] = sin
	m[2][0] = -sin
	m[2][2] = cos
	return m
}

// RotationZ returns a matrix that rotates about the z axis by rad radians
func RotationZ(rad float64) Matrix4 {
	m := Identity()
	cos, sin := math.Cos(rad), math.Sin(rad)
	m[0][0] = cos
	m[0][1] = -sin
	m[1][0] = sin
	m[1][1] = cos
	return m
}

// Shearing returns a matrix that shears each coordinate in proportion to
// the other two
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix4 {
	m := Identity()
	m[0][1] = xy
	m[0][2] = xz
	m[1][0] = yx
	m[1][2] = yz
	m[2][0] = zx
	m[2][1] = zy
	return m
}

// ViewTransform returns a world-to-camera matrix for an eye at from, looking
// at to, with the given up vector
func ViewTransform(from, to, up Tuple) Matrix4 {
	forward := to.Subtract(from).Normalize()
	left := forward.Cross(up.Normalize())
	trueUp := left.Cross(forward)

	orientation := Matrix4{
		{left.X, left.Y, left.Z, 0},
		{trueUp.X, trueUp.Y, trueUp.Z, 0},
		{-forward.X, -forward.Y, -forward.Z, 0},
		{0, 0, 0, 1},
	}
	return orientation.Multiply(Translation(-from.X, -from.Y, -from.Z))
}
