package transform

import (
	"fmt"
	"math"
)

// Matrix is a 2D affine transformation.
// Layout: [a, b, c, d, e, f] representing:
// | a  c  e |
// | b  d  f |
// | 0  0  1 |
type Matrix [6]float64

// determinants smaller than this are treated as singular
const degenerateEpsilon = 1e-12

// DegenerateTransformError is returned when a matrix cannot be inverted.
type DegenerateTransformError struct {
	Matrix      Matrix
	Determinant float64
}

func (e *DegenerateTransformError) Error() string {
	return fmt.Sprintf("degenerate transform %v (determinant %g)", [6]float64(e.Matrix), e.Determinant)
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale returns a scale matrix. Callers that need an invertible result must
// reject zero factors before building it.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a counter-clockwise rotation matrix (angle in radians).
func Rotate(radians float64) Matrix {
	sin, cos := math.Sincos(radians)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Compose returns a matrix that applies inner first, then outer.
func Compose(outer, inner Matrix) Matrix {
	return Matrix{
		outer[0]*inner[0] + outer[2]*inner[1],
		outer[1]*inner[0] + outer[3]*inner[1],
		outer[0]*inner[2] + outer[2]*inner[3],
		outer[1]*inner[2] + outer[3]*inner[3],
		outer[0]*inner[4] + outer[2]*inner[5] + outer[4],
		outer[1]*inner[4] + outer[3]*inner[5] + outer[5],
	}
}

// Chain composes ms right to left: the last matrix is applied first.
// Chain(screen, proj, view) maps world points to the screen.
func Chain(ms ...Matrix) Matrix {
	out := Identity()
	for _, m := range ms {
		out = Compose(out, m)
	}
	return out
}

// Transform applies the matrix to a point.
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// TransformVector applies only the linear part of the matrix.
func (m Matrix) TransformVector(v Point) Point {
	return Point{
		X: m[0]*v.X + m[2]*v.Y,
		Y: m[1]*v.X + m[3]*v.Y,
	}
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the exact inverse of m.
func (m Matrix) Invert() (Matrix, error) {
	det := m.Determinant()
	if math.Abs(det) < degenerateEpsilon || math.IsNaN(det) || math.IsInf(det, 0) {
		return Identity(), &DegenerateTransformError{Matrix: m, Determinant: det}
	}

	invDet := 1.0 / det
	return Matrix{
		m[3] * invDet,
		-m[1] * invDet,
		-m[2] * invDet,
		m[0] * invDet,
		(m[2]*m[5] - m[3]*m[4]) * invDet,
		(m[1]*m[4] - m[0]*m[5]) * invDet,
	}, nil
}

// Basis returns the images of the origin and of the two unit axes: the local
// frame of whatever m places in the world.
func (m Matrix) Basis() (origin, ox, oy Point) {
	return m.Transform(Point{}), m.TransformVector(Point{X: 1}), m.TransformVector(Point{Y: 1})
}

// ApproxEqual reports whether every coefficient differs by less than eps.
func (m Matrix) ApproxEqual(other Matrix, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) >= eps {
			return false
		}
	}
	return true
}
