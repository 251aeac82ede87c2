package cadence

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// identityAffine is the identity affine matrix.
var identityAffine = [6]float64{1, 0, 0, 1, 0, 0}

// Transform is a 2D local transform with a depth component. Rotation is in
// degrees, counter-clockwise. Position Z is depth and does not take part in
// the affine matrix; it accumulates separately down a chain.
type Transform struct {
	Position mgl32.Vec3
	Scale    mgl32.Vec2
	Rotation float32
}

// IdentityTransform is the zero position, unit scale, zero rotation transform.
var IdentityTransform = Transform{Scale: mgl32.Vec2{1, 1}}

// Affine returns the local affine matrix [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Scale -> Rotate -> Translate(X, Y)
func (t Transform) Affine() [6]float64 {
	sx := float64(t.Scale[0])
	sy := float64(t.Scale[1])
	sin, cos := math.Sincos(float64(t.Rotation) * math.Pi / 180)
	return [6]float64{
		cos * sx, sin * sx,
		-sin * sy, cos * sy,
		float64(t.Position[0]), float64(t.Position[1]),
	}
}

// Compose returns the transform that applies child first and then t, as a
// flattened 2D matrix plus accumulated depth.
func (t Transform) Compose(child Transform) ([6]float64, float32) {
	return multiplyAffine(t.Affine(), child.Affine()), t.Position[2] + child.Position[2]
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityAffine
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// AffinePosition returns the translation of an affine matrix.
func AffinePosition(m [6]float64) (x, y float64) {
	return m[4], m[5]
}

// AffineScale returns the x and y axis lengths of an affine matrix.
func AffineScale(m [6]float64) (sx, sy float64) {
	return math.Hypot(m[0], m[1]), math.Hypot(m[2], m[3])
}

// AffineRotation returns the rotation of an affine matrix in degrees.
func AffineRotation(m [6]float64) float64 {
	return math.Atan2(m[1], m[0]) * 180 / math.Pi
}
