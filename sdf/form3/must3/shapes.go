package must3

import (
	"math"

	"github.com/filabank/filabank/internal/d3"
	"github.com/filabank/filabank/sdf"
	"github.com/filabank/filabank/sdf/form2/must2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// box is a 3d box centered on the origin.
type box struct {
	size  r3.Vec // half size without rounding
	round float64
	bb    r3.Box
}

// Box returns an SDF3 for a 3d box with edges rounded by round.
func Box(size r3.Vec, round float64) *box {
	if d3.LTEZero(size) {
		panic("box size must be positive")
	}
	if round < 0 || 2*round > d3.Min(size) {
		panic("invalid box rounding")
	}
	half := r3.Scale(0.5, size)
	return &box{
		size:  r3.Sub(half, d3.Elem(round)),
		round: round,
		bb:    r3.Box{Min: r3.Scale(-1, half), Max: half},
	}
}

// Evaluate returns the minimum distance to a 3d box.
func (s *box) Evaluate(p r3.Vec) float64 {
	d := r3.Sub(d3.AbsElem(p), s.size)
	outside := r3.Norm(d3.MaxElem(d, r3.Vec{}))
	inside := math.Min(d3.Max(d), 0)
	return outside + inside - s.round
}

// Bounds returns the bounding box of a 3d box.
func (s *box) Bounds() r3.Box { return s.bb }

// sphere is a sphere centered on the origin.
type sphere struct {
	radius float64
	bb     r3.Box
}

// Sphere returns an SDF3 for a sphere.
func Sphere(radius float64) *sphere {
	if radius <= 0 {
		panic("sphere radius must be positive")
	}
	return &sphere{radius: radius, bb: r3.Box{Min: d3.Elem(-radius), Max: d3.Elem(radius)}}
}

// Evaluate returns the minimum distance to a sphere.
func (s *sphere) Evaluate(p r3.Vec) float64 {
	return r3.Norm(p) - s.radius
}

// Bounds returns the bounding box of a sphere.
func (s *sphere) Bounds() r3.Box { return s.bb }

// cylinder is a Z aligned cylinder centered on the origin.
type cylinder struct {
	height float64 // half height without rounding
	radius float64 // radius without rounding
	round  float64
	bb     r3.Box
}

// Cylinder returns an SDF3 for a Z aligned cylinder with edges rounded by round.
func Cylinder(height, radius, round float64) *cylinder {
	switch {
	case radius <= 0:
		panic("cylinder radius must be positive")
	case height <= 0:
		panic("cylinder height must be positive")
	case round < 0 || round > radius:
		panic("invalid cylinder rounding")
	case height < 2*round:
		panic("cylinder height less than twice rounding")
	}
	d := r3.Vec{X: radius, Y: radius, Z: height / 2}
	return &cylinder{
		height: height/2 - round,
		radius: radius - round,
		round:  round,
		bb:     r3.Box{Min: r3.Scale(-1, d), Max: d},
	}
}

// Evaluate returns the minimum distance to a cylinder.
func (s *cylinder) Evaluate(p r3.Vec) float64 {
	d := r2.Vec{X: math.Hypot(p.X, p.Y) - s.radius, Y: math.Abs(p.Z) - s.height}
	outside := r2.Norm(r2.Vec{X: math.Max(d.X, 0), Y: math.Max(d.Y, 0)})
	inside := math.Min(math.Max(d.X, d.Y), 0)
	return outside + inside - s.round
}

// Bounds returns the bounding box of a cylinder.
func (s *cylinder) Bounds() r3.Box { return s.bb }

// cone is a Z aligned truncated cone centered on the origin.
type cone struct {
	r0, r1 float64 // base and top radius
	height float64 // half height
	u      r2.Vec  // unit slope vector from base to top
	n      r2.Vec  // outward normal to the slope
	l      float64 // slope length
	bb     r3.Box
}

// Cone returns an SDF3 for a truncated cone with base radius r0 at
// Z=-height/2 and top radius r1 at Z=height/2. Either radius may be zero.
func Cone(height, r0, r1 float64) *cone {
	switch {
	case height <= 0:
		panic("cone height must be positive")
	case r0 < 0 || r1 < 0 || r0+r1 == 0:
		panic("invalid cone radii")
	}
	h := height / 2
	slope := r2.Sub(r2.Vec{X: r1, Y: h}, r2.Vec{X: r0, Y: -h})
	s := cone{r0: r0, r1: r1, height: h, u: r2.Unit(slope), l: r2.Norm(slope)}
	s.n = r2.Vec{X: s.u.Y, Y: -s.u.X}
	r := math.Max(r0, r1)
	s.bb = r3.Box{Min: r3.Vec{X: -r, Y: -r, Z: -h}, Max: r3.Vec{X: r, Y: r, Z: h}}
	return &s
}

// Evaluate returns the minimum distance to a truncated cone.
func (s *cone) Evaluate(p r3.Vec) float64 {
	p2 := r2.Vec{X: math.Hypot(p.X, p.Y), Y: p.Z}
	if p2.Y >= s.height && p2.X <= s.r1 {
		return p2.Y - s.height
	}
	if p2.Y <= -s.height && p2.X <= s.r0 {
		return -p2.Y - s.height
	}
	v := r2.Sub(p2, r2.Vec{X: s.r0, Y: -s.height})
	dSlope := r2.Dot(v, s.n)
	if dSlope < 0 && math.Abs(p2.Y) < s.height {
		return -math.Min(-dSlope, s.height-math.Abs(p2.Y))
	}
	t := r2.Dot(v, s.u)
	switch {
	case t >= 0 && t <= s.l:
		return dSlope
	case t < 0:
		return r2.Norm(v)
	}
	return r2.Norm(r2.Sub(p2, r2.Vec{X: s.r1, Y: s.height}))
}

// Bounds returns the bounding box of a truncated cone.
func (s *cone) Bounds() r3.Box { return s.bb }

// ChamferedCylinder returns a Z aligned cylinder whose bottom and top
// circular edges are chamfered by cb and ct respectively.
func ChamferedCylinder(height, radius, cb, ct float64) sdf.SDF3 {
	if radius <= 0 || height <= 0 {
		panic("chamfered cylinder dimensions must be positive")
	}
	if cb < 0 || ct < 0 || cb >= radius || ct >= radius || cb+ct >= height {
		panic("invalid cylinder chamfer")
	}
	h := height / 2
	p := must2.NewPolygon()
	p.Add(0, -h)
	p.Add(radius, -h).Chamfer(cb)
	p.Add(radius, h).Chamfer(ct)
	p.Add(0, h)
	return sdf.Revolve3D(must2.Polygon(p.Vertices()), 2*math.Pi)
}
