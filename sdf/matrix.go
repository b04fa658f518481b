package sdf

import (
	"math"

	"github.com/filabank/filabank/internal/d2"
	"github.com/filabank/filabank/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// M33 is a 3x3 homogeneous transformation matrix for 2D points,
// stored in row-major order.
type M33 struct {
	x00, x01, x02 float64
	x10, x11, x12 float64
	x20, x21, x22 float64
}

// M44 is a 4x4 homogeneous transformation matrix for 3D points,
// stored in row-major order.
type M44 struct {
	x00, x01, x02, x03 float64
	x10, x11, x12, x13 float64
	x20, x21, x22, x23 float64
	x30, x31, x32, x33 float64
}

// Translate2D returns a 2D translation matrix.
func Translate2D(v r2.Vec) M33 {
	return M33{
		1, 0, v.X,
		0, 1, v.Y,
		0, 0, 1,
	}
}

// Scale2D returns a 2D scaling matrix. Distance is not preserved.
func Scale2D(v r2.Vec) M33 {
	return M33{
		v.X, 0, 0,
		0, v.Y, 0,
		0, 0, 1,
	}
}

// Rotate2D returns an anticlockwise 2D rotation of a radians about the origin.
func Rotate2D(a float64) M33 {
	s, c := math.Sincos(a)
	return M33{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// Mul returns a*b.
func (a M33) Mul(b M33) M33 {
	return M33{
		x00: a.x00*b.x00 + a.x01*b.x10 + a.x02*b.x20,
		x01: a.x00*b.x01 + a.x01*b.x11 + a.x02*b.x21,
		x02: a.x00*b.x02 + a.x01*b.x12 + a.x02*b.x22,
		x10: a.x10*b.x00 + a.x11*b.x10 + a.x12*b.x20,
		x11: a.x10*b.x01 + a.x11*b.x11 + a.x12*b.x21,
		x12: a.x10*b.x02 + a.x11*b.x12 + a.x12*b.x22,
		x20: a.x20*b.x00 + a.x21*b.x10 + a.x22*b.x20,
		x21: a.x20*b.x01 + a.x21*b.x11 + a.x22*b.x21,
		x22: a.x20*b.x02 + a.x21*b.x12 + a.x22*b.x22,
	}
}

// MulPosition applies the transform to a point.
func (a M33) MulPosition(b r2.Vec) r2.Vec {
	return r2.Vec{
		X: a.x00*b.X + a.x01*b.Y + a.x02,
		Y: a.x10*b.X + a.x11*b.Y + a.x12,
	}
}

// MulBox returns the axis aligned box enclosing the transformed box.
func (a M33) MulBox(box r2.Box) r2.Box {
	verts := d2.Box(box).Vertices()
	for i := range verts {
		verts[i] = a.MulPosition(verts[i])
	}
	return r2.Box{Min: verts.Min(), Max: verts.Max()}
}

// Determinant returns the determinant of a.
func (a M33) Determinant() float64 {
	return a.x00*(a.x11*a.x22-a.x21*a.x12) -
		a.x01*(a.x10*a.x22-a.x20*a.x12) +
		a.x02*(a.x10*a.x21-a.x20*a.x11)
}

// Inverse returns the inverse of a. It panics if a is singular.
func (a M33) Inverse() M33 {
	det := a.Determinant()
	if math.Abs(det) < epsilon {
		panic("singular transform matrix")
	}
	k := 1 / det
	return M33{
		x00: k * (a.x11*a.x22 - a.x12*a.x21),
		x01: k * (a.x02*a.x21 - a.x01*a.x22),
		x02: k * (a.x01*a.x12 - a.x02*a.x11),
		x10: k * (a.x12*a.x20 - a.x10*a.x22),
		x11: k * (a.x00*a.x22 - a.x02*a.x20),
		x12: k * (a.x02*a.x10 - a.x00*a.x12),
		x20: k * (a.x10*a.x21 - a.x11*a.x20),
		x21: k * (a.x01*a.x20 - a.x00*a.x21),
		x22: k * (a.x00*a.x11 - a.x01*a.x10),
	}
}

// Identity3D returns the 3D identity transform.
func Identity3D() M44 {
	return M44{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate3D returns a 3D translation matrix.
func Translate3D(v r3.Vec) M44 {
	return M44{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// Scale3D returns a 3D scaling matrix. Distance is not preserved.
func Scale3D(v r3.Vec) M44 {
	return M44{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// Rotate3D returns the right-handed rotation of a radians about axis v.
func Rotate3D(v r3.Vec, a float64) M44 {
	v = r3.Unit(v)
	s, c := math.Sincos(a)
	m := 1 - c
	return M44{
		m*v.X*v.X + c, m*v.X*v.Y - v.Z*s, m*v.Z*v.X + v.Y*s, 0,
		m*v.X*v.Y + v.Z*s, m*v.Y*v.Y + c, m*v.Y*v.Z - v.X*s, 0,
		m*v.Z*v.X - v.Y*s, m*v.Y*v.Z + v.X*s, m*v.Z*v.Z + c, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation of a radians about the X axis.
func RotateX(a float64) M44 { return Rotate3D(r3.Vec{X: 1}, a) }

// RotateY returns a rotation of a radians about the Y axis.
func RotateY(a float64) M44 { return Rotate3D(r3.Vec{Y: 1}, a) }

// RotateZ returns a rotation of a radians about the Z axis.
func RotateZ(a float64) M44 { return Rotate3D(r3.Vec{Z: 1}, a) }

// Mul returns a*b.
func (a M44) Mul(b M44) M44 {
	return M44{
		x00: a.x00*b.x00 + a.x01*b.x10 + a.x02*b.x20 + a.x03*b.x30,
		x01: a.x00*b.x01 + a.x01*b.x11 + a.x02*b.x21 + a.x03*b.x31,
		x02: a.x00*b.x02 + a.x01*b.x12 + a.x02*b.x22 + a.x03*b.x32,
		x03: a.x00*b.x03 + a.x01*b.x13 + a.x02*b.x23 + a.x03*b.x33,
		x10: a.x10*b.x00 + a.x11*b.x10 + a.x12*b.x20 + a.x13*b.x30,
		x11: a.x10*b.x01 + a.x11*b.x11 + a.x12*b.x21 + a.x13*b.x31,
		x12: a.x10*b.x02 + a.x11*b.x12 + a.x12*b.x22 + a.x13*b.x32,
		x13: a.x10*b.x03 + a.x11*b.x13 + a.x12*b.x23 + a.x13*b.x33,
		x20: a.x20*b.x00 + a.x21*b.x10 + a.x22*b.x20 + a.x23*b.x30,
		x21: a.x20*b.x01 + a.x21*b.x11 + a.x22*b.x21 + a.x23*b.x31,
		x22: a.x20*b.x02 + a.x21*b.x12 + a.x22*b.x22 + a.x23*b.x32,
		x23: a.x20*b.x03 + a.x21*b.x13 + a.x22*b.x23 + a.x23*b.x33,
		x30: a.x30*b.x00 + a.x31*b.x10 + a.x32*b.x20 + a.x33*b.x30,
		x31: a.x30*b.x01 + a.x31*b.x11 + a.x32*b.x21 + a.x33*b.x31,
		x32: a.x30*b.x02 + a.x31*b.x12 + a.x32*b.x22 + a.x33*b.x32,
		x33: a.x30*b.x03 + a.x31*b.x13 + a.x32*b.x23 + a.x33*b.x33,
	}
}

// MulPosition applies the transform to a point.
func (a M44) MulPosition(b r3.Vec) r3.Vec {
	return r3.Vec{
		X: a.x00*b.X + a.x01*b.Y + a.x02*b.Z + a.x03,
		Y: a.x10*b.X + a.x11*b.Y + a.x12*b.Z + a.x13,
		Z: a.x20*b.X + a.x21*b.Y + a.x22*b.Z + a.x23,
	}
}

// MulBox returns the axis aligned box enclosing the transformed box.
func (a M44) MulBox(box r3.Box) r3.Box {
	verts := d3.Box(box).Vertices()
	for i := range verts {
		verts[i] = a.MulPosition(verts[i])
	}
	return r3.Box{Min: verts.Min(), Max: verts.Max()}
}

// Inverse returns the inverse of an affine transform. The bottom row
// of a is assumed to be (0, 0, 0, 1). It panics if a is singular.
func (a M44) Inverse() M44 {
	det := a.x00*(a.x11*a.x22-a.x21*a.x12) -
		a.x01*(a.x10*a.x22-a.x20*a.x12) +
		a.x02*(a.x10*a.x21-a.x20*a.x11)
	if math.Abs(det) < epsilon {
		panic("singular transform matrix")
	}
	k := 1 / det
	m := M44{
		x00: k * (a.x11*a.x22 - a.x12*a.x21),
		x01: k * (a.x02*a.x21 - a.x01*a.x22),
		x02: k * (a.x01*a.x12 - a.x02*a.x11),
		x10: k * (a.x12*a.x20 - a.x10*a.x22),
		x11: k * (a.x00*a.x22 - a.x02*a.x20),
		x12: k * (a.x02*a.x10 - a.x00*a.x12),
		x20: k * (a.x10*a.x21 - a.x11*a.x20),
		x21: k * (a.x01*a.x20 - a.x00*a.x21),
		x22: k * (a.x00*a.x11 - a.x01*a.x10),
		x33: 1,
	}
	// Translation of the inverse is -R^-1 * t.
	m.x03 = -(m.x00*a.x03 + m.x01*a.x13 + m.x02*a.x23)
	m.x13 = -(m.x10*a.x03 + m.x11*a.x13 + m.x12*a.x23)
	m.x23 = -(m.x20*a.x03 + m.x21*a.x13 + m.x22*a.x23)
	return m
}

// equals reports whether a and b match within tol.
func (a M44) equals(b M44, tol float64) bool {
	av := [16]float64{a.x00, a.x01, a.x02, a.x03, a.x10, a.x11, a.x12, a.x13, a.x20, a.x21, a.x22, a.x23, a.x30, a.x31, a.x32, a.x33}
	bv := [16]float64{b.x00, b.x01, b.x02, b.x03, b.x10, b.x11, b.x12, b.x13, b.x20, b.x21, b.x22, b.x23, b.x30, b.x31, b.x32, b.x33}
	for i := range av {
		if math.Abs(av[i]-bv[i]) > tol {
			return false
		}
	}
	return true
}
