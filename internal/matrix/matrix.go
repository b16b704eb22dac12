// Package matrix provides the 3x3 linear algebra used by color transforms.
//
// Matrices are f64.Mat3 values in row-major order: m[3*r+c] is the element
// in row r and column c. Vectors are column vectors, so Apply computes m·v.
package matrix

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Identity returns the 3x3 identity matrix.
func Identity() f64.Mat3 {
	return f64.Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Diag returns a diagonal matrix with the given entries.
func Diag(x, y, z float64) f64.Mat3 {
	return f64.Mat3{
		x, 0, 0,
		0, y, 0,
		0, 0, z,
	}
}

// Mul returns the product a·b.
func Mul(a, b f64.Mat3) f64.Mat3 {
	return f64.Mat3{
		a[0]*b[0] + a[1]*b[3] + a[2]*b[6],
		a[0]*b[1] + a[1]*b[4] + a[2]*b[7],
		a[0]*b[2] + a[1]*b[5] + a[2]*b[8],

		a[3]*b[0] + a[4]*b[3] + a[5]*b[6],
		a[3]*b[1] + a[4]*b[4] + a[5]*b[7],
		a[3]*b[2] + a[4]*b[5] + a[5]*b[8],

		a[6]*b[0] + a[7]*b[3] + a[8]*b[6],
		a[6]*b[1] + a[7]*b[4] + a[8]*b[7],
		a[6]*b[2] + a[7]*b[5] + a[8]*b[8],
	}
}

// Apply returns m·v.
func Apply(m f64.Mat3, v [3]float64) [3]float64 {
	return [3]float64{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// MulDiag returns diag(d)·m, scaling row i of m by d[i].
func MulDiag(d [3]float64, m f64.Mat3) f64.Mat3 {
	return f64.Mat3{
		d[0] * m[0], d[0] * m[1], d[0] * m[2],
		d[1] * m[3], d[1] * m[4], d[1] * m[5],
		d[2] * m[6], d[2] * m[7], d[2] * m[8],
	}
}

// Determinant returns det(m).
func Determinant(m f64.Mat3) float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// singularEpsilon is the determinant, relative to the cube of the largest
// element, below which a matrix is treated as singular.
const singularEpsilon = 1e-12

// Invert returns the inverse of m computed from the adjugate.
//
// ok is false when the determinant is numerically zero or not finite. The
// returned matrix is still the adjugate divided by the determinant, so a
// singular input yields huge, Inf or NaN entries rather than a panic;
// callers that store inverses of user-supplied matrices rely on that.
func Invert(m f64.Mat3) (inv f64.Mat3, ok bool) {
	a := m[4]*m[8] - m[5]*m[7]
	b := -(m[3]*m[8] - m[5]*m[6])
	c := m[3]*m[7] - m[4]*m[6]

	d := -(m[1]*m[8] - m[2]*m[7])
	e := m[0]*m[8] - m[2]*m[6]
	f := -(m[0]*m[7] - m[1]*m[6])

	g := m[1]*m[5] - m[2]*m[4]
	h := -(m[0]*m[5] - m[2]*m[3])
	i := m[0]*m[4] - m[1]*m[3]

	det := Determinant(m)

	inv = f64.Mat3{
		a / det, d / det, g / det,
		b / det, e / det, h / det,
		c / det, f / det, i / det,
	}
	ok = !math.IsNaN(det) && !math.IsInf(det, 0) && math.Abs(det) > singularEpsilon*norm3(m)
	return inv, ok
}

// norm3 returns the cube of the largest absolute element of m.
func norm3(m f64.Mat3) float64 {
	n := 0.0
	for _, v := range m {
		n = max(n, math.Abs(v))
	}
	return n * n * n
}

// Approx reports whether every element of a and b differs by at most tol.
func Approx(a, b f64.Mat3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

// Transpose returns the transpose of m.
func Transpose(m f64.Mat3) f64.Mat3 {
	return f64.Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}
