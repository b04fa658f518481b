package sdf

import (
	"math"

	"github.com/filabank/filabank/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	pi        = math.Pi
	tau       = 2 * pi
	tolerance = 1e-9
	epsilon   = 1e-12
)

// MinFunc is a minimum function for SDF blending.
type MinFunc func(a, b float64) float64

// MaxFunc is a maximum function for SDF blending.
type MaxFunc func(a, b float64) float64

// DtoR converts degrees to radians.
func DtoR(degrees float64) float64 {
	return (pi / 180) * degrees
}

// Clamp x between a and b, assume a <= b.
func Clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

// Mix does a linear interpolation from x to y, a = [0,1].
func Mix(x, y, a float64) float64 {
	return x + (a * (y - x))
}

// SawTooth generates a sawtooth function. Returns [-period/2, period/2).
func SawTooth(x, period float64) float64 {
	x += period / 2
	t := x / period
	return period*(t-math.Floor(t)) - period/2
}

// RoundMin returns a minimum function that uses a quarter-circle to join the two objects smoothly.
func RoundMin(k float64) MinFunc {
	return func(a, b float64) float64 {
		u := d2.MaxElem(r2.Vec{X: k - a, Y: k - b}, r2.Vec{})
		return math.Max(k, math.Min(a, b)) - r2.Norm(u)
	}
}

func poly(a, b, k float64) float64 {
	h := Clamp(0.5+0.5*(b-a)/k, 0.0, 1.0)
	return Mix(b, a, h) - k*h*(1.0-h)
}

// PolyMin returns a polynomial smooth minimum. A bigger k gives a bigger fillet.
func PolyMin(k float64) MinFunc {
	return func(a, b float64) float64 {
		return poly(a, b, k)
	}
}

// PolyMax returns a polynomial smooth maximum. A bigger k gives a bigger fillet.
func PolyMax(k float64) MaxFunc {
	return func(a, b float64) float64 {
		return -poly(-a, -b, k)
	}
}

// ExtrudeFunc maps a 3D point to the 2D point used to evaluate the extruded SDF2.
type ExtrudeFunc func(p r3.Vec) r2.Vec

// NormalExtrude projects p onto the XY plane.
func NormalExtrude(p r3.Vec) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

