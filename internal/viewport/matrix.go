package viewport

import "math"

// Matrix is a 2D affine transformation in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// mapping (x, y) to (a*x + b*y + c, d*x + e*y + f).
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translation returns a translation by (x, y).
func Translation(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scaling returns a uniform scale by s.
func Scaling(s float64) Matrix {
	return Matrix{A: s, E: s}
}

// Multiply returns m * other, i.e. other is applied first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// Invert returns the inverse transformation. The second result is false if
// the matrix is singular.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-12 {
		return Matrix{}, false
	}
	inv := 1 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}, true
}

// quarterTurn maps a w x h image onto its rotated frame, turned q times
// clockwise about the origin and shifted back into positive coordinates.
func quarterTurn(q Quarter, w, h float64) Matrix {
	switch q {
	case 1:
		return Matrix{B: -1, C: h, D: 1}
	case 2:
		return Matrix{A: -1, C: w, E: -1, F: h}
	case 3:
		return Matrix{B: 1, D: -1, F: w}
	default:
		return Identity()
	}
}

// RotatedSize returns the dimensions of a w x h image after q quarter turns.
func RotatedSize(q Quarter, w, h int) (int, int) {
	if q%2 == 1 {
		return h, w
	}
	return w, h
}

// Placement returns the transformation from image pixel coordinates to
// viewport coordinates for an imgW x imgH image shown in a viewW x viewH
// viewport under state s.
func Placement(s State, imgW, imgH, viewW, viewH int) Matrix {
	rw, rh := RotatedSize(s.Rotation, imgW, imgH)
	ox := (float64(viewW)-float64(rw)*s.Scale)/2 + s.Pan.X
	oy := (float64(viewH)-float64(rh)*s.Scale)/2 + s.Pan.Y
	return Translation(ox, oy).
		Multiply(Scaling(s.Scale)).
		Multiply(quarterTurn(s.Rotation, float64(imgW), float64(imgH)))
}
