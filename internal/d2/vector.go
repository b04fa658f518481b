package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Elem returns a vector with both components set to v.
func Elem(v float64) r2.Vec {
	return r2.Vec{X: v, Y: v}
}

// EqualWithin returns true if a and b are within tol of each other component-wise.
func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// MinElem returns the component-wise minimum of two vectors.
func MinElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// MaxElem returns the component-wise maximum of two vectors.
func MaxElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// AbsElem returns the vector with components set to their absolute value.
func AbsElem(a r2.Vec) r2.Vec {
	return r2.Vec{X: math.Abs(a.X), Y: math.Abs(a.Y)}
}

// MulElem returns the Hadamard product of a and b.
func MulElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: a.X * b.X, Y: a.Y * b.Y}
}

// Set is a set of 2D points.
type Set []r2.Vec

// Min returns the component-wise minimum of the set.
func (a Set) Min() r2.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max returns the component-wise maximum of the set.
func (a Set) Max() r2.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}

// PolarToXY converts polar coordinates to cartesian.
func PolarToXY(r, theta float64) r2.Vec {
	sin, cos := math.Sincos(theta)
	return r2.Vec{X: r * cos, Y: r * sin}
}
