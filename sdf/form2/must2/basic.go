package must2

import (
	"math"

	"github.com/filabank/filabank/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

const tolerance = 1e-9

// circle is the 2d signed distance object for a circle.
type circle struct {
	radius float64
	bb     r2.Box
}

// Circle returns the SDF2 for a 2d circle centered on the origin.
func Circle(radius float64) *circle {
	if radius <= 0 {
		panic("circle radius must be positive")
	}
	return &circle{radius: radius, bb: r2.Box{Min: d2.Elem(-radius), Max: d2.Elem(radius)}}
}

// Evaluate returns the minimum distance to a 2d circle.
func (s *circle) Evaluate(p r2.Vec) float64 {
	return r2.Norm(p) - s.radius
}

// Bounds returns the bounding box of a 2d circle.
func (s *circle) Bounds() r2.Box { return s.bb }

// box is the 2d signed distance object for a rectangle.
type box struct {
	size  r2.Vec // half size without rounding
	round float64
	bb    r2.Box
}

// Box returns a 2d rectangle of given size centered on the origin.
// Corners are rounded with radius round.
func Box(size r2.Vec, round float64) *box {
	if size.X <= 0 || size.Y <= 0 {
		panic("box size must be positive")
	}
	if round < 0 || 2*round > math.Min(size.X, size.Y) {
		panic("invalid box rounding")
	}
	half := r2.Scale(0.5, size)
	return &box{
		size:  r2.Sub(half, d2.Elem(round)),
		round: round,
		bb:    r2.Box{Min: r2.Scale(-1, half), Max: half},
	}
}

// Evaluate returns the minimum distance to a 2d box.
func (s *box) Evaluate(p r2.Vec) float64 {
	return sdfBox2d(p, s.size) - s.round
}

// Bounds returns the bounding box for a 2d box.
func (s *box) Bounds() r2.Box { return s.bb }

func sdfBox2d(p, s r2.Vec) float64 {
	p = d2.AbsElem(p)
	d := r2.Sub(p, s)
	outside := r2.Norm(d2.MaxElem(d, r2.Vec{}))
	inside := math.Min(math.Max(d.X, d.Y), 0)
	return outside + inside
}

// slot is a 2d stadium: a line segment along X with rounded ends.
type slot struct {
	half   float64 // half of the straight length
	radius float64
	bb     r2.Box
}

// Slot returns a stadium of total length l and width w along the X axis.
func Slot(l, w float64) *slot {
	if w <= 0 || l < w {
		panic("slot length must be at least its width")
	}
	r := w / 2
	return &slot{
		half:   l/2 - r,
		radius: r,
		bb:     r2.Box{Min: r2.Vec{X: -l / 2, Y: -r}, Max: r2.Vec{X: l / 2, Y: r}},
	}
}

// Evaluate returns the minimum distance to a 2d slot.
func (s *slot) Evaluate(p r2.Vec) float64 {
	p = d2.AbsElem(p)
	p.X = math.Max(p.X-s.half, 0)
	return r2.Norm(p) - s.radius
}

// Bounds returns the bounding box of a 2d slot.
func (s *slot) Bounds() r2.Box { return s.bb }
