package sdf

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// V2i is a 2D integer vector.
type V2i [2]int

// V3i is a 3D integer vector.
type V3i [3]int

// ToV2 converts V2i (integer) to r2.Vec (float).
func (a V2i) ToV2() r2.Vec {
	return r2.Vec{X: float64(a[0]), Y: float64(a[1])}
}

// ToV3 converts V3i (integer) to r3.Vec (float).
func (a V3i) ToV3() r3.Vec {
	return r3.Vec{X: float64(a[0]), Y: float64(a[1]), Z: float64(a[2])}
}

// Add adds two vectors. Return v = a + b.
func (a V3i) Add(b V3i) V3i {
	return V3i{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// AddScalar adds a scalar to each component of the vector.
func (a V3i) AddScalar(b int) V3i {
	return V3i{a[0] + b, a[1] + b, a[2] + b}
}
