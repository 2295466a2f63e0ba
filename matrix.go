package sapling

import (
	"math"
	"strconv"
	"strings"
)

// Matrix is a 2D affine transform:
//
//	| A  C  TX |
//	| B  D  TY |
//	| 0  0   1 |
//
// The zero value is not the identity; use IdentityMatrix.
type Matrix struct {
	A, B, C, D, TX, TY float64
}

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return Matrix{A: 1, D: 1}
}

// NewMatrix returns a matrix with the given parameters.
func NewMatrix(a, b, c, d, tx, ty float64) Matrix {
	return Matrix{A: a, B: b, C: c, D: d, TX: tx, TY: ty}
}

// TranslationMatrix returns a pure translation by (x, y).
func TranslationMatrix(x, y float64) Matrix {
	return Matrix{A: 1, D: 1, TX: x, TY: y}
}

// RotationMatrix returns a counter-clockwise rotation by rad radians.
func RotationMatrix(rad float64) Matrix {
	sin, cos := math.Sincos(rad)
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// SkewMatrix returns the skew matrix for the given angles in radians. The
// components are deliberately asymmetric: skewY drives the first column and
// skewX the second.
func SkewMatrix(skewX, skewY float64) Matrix {
	return Matrix{
		A: math.Cos(skewY),
		B: math.Sin(skewY),
		C: math.Sin(skewX),
		D: math.Cos(skewX),
	}
}

// ScaleMatrix returns a scale by (sx, sy).
func ScaleMatrix(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Multiply returns m1 * m2. Applying the result to a point applies m2 first,
// then m1.
func Multiply(m1, m2 Matrix) Matrix {
	return Matrix{
		A:  m1.A*m2.A + m1.C*m2.B,
		B:  m1.B*m2.A + m1.D*m2.B,
		C:  m1.A*m2.C + m1.C*m2.D,
		D:  m1.B*m2.C + m1.D*m2.D,
		TX: m1.A*m2.TX + m1.C*m2.TY + m1.TX,
		TY: m1.B*m2.TX + m1.D*m2.TY + m1.TY,
	}
}

// Set overwrites all six parameters and returns m.
func (m *Matrix) Set(a, b, c, d, tx, ty float64) *Matrix {
	*m = Matrix{A: a, B: b, C: c, D: d, TX: tx, TY: ty}
	return m
}

// Append right-multiplies m by o (m = m * o) and returns m.
func (m *Matrix) Append(o Matrix) *Matrix {
	*m = Multiply(*m, o)
	return m
}

// Prepend left-multiplies m by o (m = o * m) and returns m.
func (m *Matrix) Prepend(o Matrix) *Matrix {
	*m = Multiply(o, *m)
	return m
}

// Apply maps p through m.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.TX,
		Y: m.B*p.X + m.D*p.Y + m.TY,
	}
}

// ApplyInverse maps p through the inverse of m. For a singular matrix the
// result has non-finite coordinates.
func (m Matrix) ApplyInverse(p Point) Point {
	id := 1 / (m.A*m.D - m.C*m.B)
	return Point{
		X: m.D*id*p.X - m.C*id*p.Y + (m.TY*m.C-m.TX*m.D)*id,
		Y: m.A*id*p.Y - m.B*id*p.X + (-m.TY*m.A+m.TX*m.B)*id,
	}
}

// Determinant returns A*D - C*B.
func (m Matrix) Determinant() float64 {
	return m.A*m.D - m.C*m.B
}

// Invert returns the inverse of m. ok is false when m is singular.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m.Determinant()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return IdentityMatrix(), false
	}
	id := 1 / det
	return Matrix{
		A:  m.D * id,
		B:  -m.B * id,
		C:  -m.C * id,
		D:  m.A * id,
		TX: (m.C*m.TY - m.D*m.TX) * id,
		TY: (m.B*m.TX - m.A*m.TY) * id,
	}, true
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == IdentityMatrix()
}

// ID returns "a,b,c,d,tx,ty" using the shortest representation that
// round-trips each float64. Two matrices have the same ID only when every
// parameter is bit-for-bit equal (modulo the sign of zero).
func (m Matrix) ID() string {
	var b strings.Builder
	b.Grow(64)
	for i, v := range [6]float64{m.A, m.B, m.C, m.D, m.TX, m.TY} {
		if i > 0 {
			b.WriteByte(',')
		}
		if v == 0 {
			v = 0 // normalize -0
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}

// identityID is the ID of IdentityMatrix, precomputed for the root's parent.
var identityID = IdentityMatrix().ID()
