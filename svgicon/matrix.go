package svgicon

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix2D is an affine transform:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{A: 1, D: 1}

// Mult returns a times b: the transform applying b to points first,
// then a.
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

// Translate composes a translation after the transform.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, D: 1, E: x, F: y})
}

// Scale composes a scaling after the transform.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{A: x, D: y})
}

// Rotate composes a rotation of theta radians after the transform.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sin(theta), math.Cos(theta)
	return a.Mult(Matrix2D{A: cos, B: sin, C: -sin, D: cos})
}

// SkewX composes an x axis shear of theta radians after the transform.
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, C: math.Tan(theta), D: 1})
}

// SkewY composes a y axis shear of theta radians after the transform.
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, B: math.Tan(theta), D: 1})
}

func (a Matrix2D) transform(x, y float64) (float64, float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

func (a Matrix2D) transformFixed(p fixed.Point26_6) fixed.Point26_6 {
	x, y := a.transform(float64(p.X)/64, float64(p.Y)/64)
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

func (a Matrix2D) trMove(op MoveTo) fixed.Point26_6 {
	return a.transformFixed(fixed.Point26_6(op))
}

func (a Matrix2D) trLine(op LineTo) fixed.Point26_6 {
	return a.transformFixed(fixed.Point26_6(op))
}

func (a Matrix2D) trQuad(op QuadTo) (fixed.Point26_6, fixed.Point26_6) {
	return a.transformFixed(op[0]), a.transformFixed(op[1])
}

func (a Matrix2D) trCubic(op CubicTo) (fixed.Point26_6, fixed.Point26_6, fixed.Point26_6) {
	return a.transformFixed(op[0]), a.transformFixed(op[1]), a.transformFixed(op[2])
}

// transformBounds maps a rectangle and returns the bounding box of its
// four transformed corners.
func (a Matrix2D) transformBounds(b Bounds) Bounds {
	x0, y0 := a.transform(b.X, b.Y)
	x1, y1 := a.transform(b.X+b.W, b.Y)
	x2, y2 := a.transform(b.X+b.W, b.Y+b.H)
	x3, y3 := a.transform(b.X, b.Y+b.H)
	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))
	return Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
