package svgicon

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix2D represents an SVG affine transformation.
// It maps the point (x, y) to (A*x + C*y + E, B*x + D*y + F),
// following the matrix(a,b,c,d,e,f) notation of the SVG standard.
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a times b, that is the transform obtained by
// applying b first, then a. Composing with Identity on either
// side is a no-op.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate postmultiplies a translation by (x, y)
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale postmultiplies a scaling by (x, y)
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate postmultiplies a rotation by `theta` (in radians)
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sin(theta), math.Cos(theta)
	return a.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// SkewX postmultiplies a skew along the x axis by `theta` (in radians)
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY postmultiplies a skew along the y axis by `theta` (in radians)
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, math.Tan(theta), 0, 1, 0, 0})
}

// Apply maps the point (x, y) through the transform.
func (a Matrix2D) Apply(x, y float64) (float64, float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

// RotationDegrees extracts the rotation angle of the linear part,
// as atan2(B, A), expressed in degrees.
// The result is only exact when the linear part is a rotation,
// possibly uniformly scaled: shear or non uniform scaling yield
// an approximate angle, which is not corrected.
func (a Matrix2D) RotationDegrees() float64 {
	return math.Atan2(a.B, a.A) * 180 / math.Pi
}

// transformations of the path operations, in fixed point coordinates

func (a Matrix2D) trPoint(p fixed.Point26_6) fixed.Point26_6 {
	x, y := a.Apply(float64(p.X)/64, float64(p.Y)/64)
	return toFixedP(x, y)
}

func (a Matrix2D) trMove(op MoveTo) fixed.Point26_6 {
	return a.trPoint(fixed.Point26_6(op))
}

func (a Matrix2D) trLine(op LineTo) fixed.Point26_6 {
	return a.trPoint(fixed.Point26_6(op))
}

func (a Matrix2D) trQuad(op QuadTo) (b, c fixed.Point26_6) {
	return a.trPoint(op[0]), a.trPoint(op[1])
}

func (a Matrix2D) trCubic(op CubicTo) (b, c, d fixed.Point26_6) {
	return a.trPoint(op[0]), a.trPoint(op[1]), a.trPoint(op[2])
}
