package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix4 is a 4x4 real-valued matrix in row-major order. It is used
// exclusively as an invertible affine transform; a singular Matrix4 reaching
// Inverse indicates a construction bug, not a recoverable condition.
type Matrix4 [4][4]float64

// Identity returns the 4x4 identity matrix
func Identity() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Multiply returns the matrix product m * other
func (m Matrix4) Multiply(other Matrix4) Matrix4 {
	var result Matrix4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[row][col] = m[row][0]*other[0][col] +
				m[row][1]*other[1][col] +
				m[row][2]*other[2][col] +
				m[row][3]*other[3][col]
		}
	}
	return result
}

// MultiplyTuple transforms a tuple by the matrix
func (m Matrix4) MultiplyTuple(t Tuple) Tuple {
	return Tuple{
		X: m[0][0]*t.X + m[0][1]*t.Y + m[0][2]*t.Z + m[0][3]*t.W,
		Y: m[1][0]*t.X + m[1][1]*t.Y + m[1][2]*t.Z + m[1][3]*t.W,
		Z: m[2][0]*t.X + m[2][1]*t.Y + m[2][2]*t.Z + m[2][3]*t.W,
		W: m[3][0]*t.X + m[3][1]*t.Y + m[3][2]*t.Z + m[3][3]*t.W,
	}
}

// Transpose returns the transposed matrix
func (m Matrix4) Transpose() Matrix4 {
	var result Matrix4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[col][row] = m[row][col]
		}
	}
	return result
}

// Determinant returns the determinant of the matrix
func (m Matrix4) Determinant() float64 {
	return mat.Det(m.dense())
}

// Inverse returns the inverse of the matrix. It panics if the matrix is
// singular: every transform built by the public constructors is invertible,
// so a singular matrix here means the caller assembled a broken transform.
func (m Matrix4) Inverse() Matrix4 {
	var inv mat.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		panic(fmt.Sprintf("core: cannot invert singular transform %v: %v", m, err))
	}
	var result Matrix4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[row][col] = inv.At(row, col)
		}
	}
	return result
}

// IsInvertible reports whether the matrix has a non-zero determinant
func (m Matrix4) IsInvertible() bool {
	return math.Abs(m.Determinant()) > Epsilon
}

// Equals compares two matrices element-wise within Epsilon
func (m Matrix4) Equals(other Matrix4) bool {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if !floatEquals(m[row][col], other[row][col]) {
				return false
			}
		}
	}
	return true
}

func (m Matrix4) dense() *mat.Dense {
	data := make([]float64, 0, 16)
	for row := 0; row < 4; row++ {
		data = append(data, m[row][0], m[row][1], m[row][2], m[row][3])
	}
	return mat.NewDense(4, 4, data)
}
