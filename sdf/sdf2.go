package sdf

import (
	"math"
	"strconv"

	"github.com/filabank/filabank/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// SDF2 is the interface to a 2d signed distance function object.
type SDF2 interface {
	// Evaluate takes a point in 2D space as input and returns
	// the minimum distance of the SDF2 to the point. The distance
	// is negative if the point is contained within the SDF2.
	Evaluate(p r2.Vec) float64
	// Bounds returns the bounding box that completely contains the SDF2.
	Bounds() r2.Box
}

// SDF2Union is an SDF2 whose blending minimum function can be set.
type SDF2Union interface {
	SDF2
	SetMin(MinFunc)
}

// SDF2Diff is an SDF2 whose blending maximum function can be set.
type SDF2Diff interface {
	SDF2
	SetMax(MaxFunc)
}

// union2 is a union of multiple SDF2 objects.
type union2 struct {
	sdf []SDF2
	min MinFunc
	bb  r2.Box
}

// Union2D returns the union of one or more SDF2 objects.
// Union2D panics if no arguments are passed or if one of them is nil.
func Union2D(sdf ...SDF2) SDF2Union {
	if len(sdf) == 0 {
		panic("union requires at least one sdf")
	}
	bb := d2.Box{Min: d2.Elem(math.Inf(1)), Max: d2.Elem(math.Inf(-1))}
	for i, x := range sdf {
		if x == nil {
			panic("nil sdf argument (" + strconv.Itoa(i) + ") to Union2D")
		}
		bb = bb.Extend(d2.Box(x.Bounds()))
	}
	return &union2{sdf: sdf, min: math.Min, bb: r2.Box(bb)}
}

// Evaluate returns the minimum distance to the SDF2 union.
func (s *union2) Evaluate(p r2.Vec) float64 {
	d := s.sdf[0].Evaluate(p)
	for _, x := range s.sdf[1:] {
		d = s.min(d, x.Evaluate(p))
	}
	return d
}

// SetMin sets the minimum function to control SDF2 blending.
func (s *union2) SetMin(min MinFunc) { s.min = min }

// Bounds returns the bounding box of an SDF2 union.
func (s *union2) Bounds() r2.Box { return s.bb }

// diff2 is the difference of two SDF2s, s0 - s1.
type diff2 struct {
	s0, s1 SDF2
	max    MaxFunc
}

// Difference2D returns the difference of two SDF2 objects, s0 - s1.
func Difference2D(s0, s1 SDF2) SDF2Diff {
	if s0 == nil || s1 == nil {
		panic("nil argument to Difference2D")
	}
	return &diff2{s0: s0, s1: s1, max: math.Max}
}

// Evaluate returns the minimum distance to the difference of two SDF2s.
func (s *diff2) Evaluate(p r2.Vec) float64 {
	return s.max(s.s0.Evaluate(p), -s.s1.Evaluate(p))
}

// SetMax sets the maximum function to control blending.
func (s *diff2) SetMax(max MaxFunc) { s.max = max }

// Bounds returns the bounding box of the difference, that of s0.
func (s *diff2) Bounds() r2.Box { return s.s0.Bounds() }

// intersection2 is the intersection of two SDF2s.
type intersection2 struct {
	s0, s1 SDF2
	max    MaxFunc
	bb     r2.Box
}

// Intersect2D returns the intersection of two SDF2s.
func Intersect2D(s0, s1 SDF2) SDF2Diff {
	if s0 == nil || s1 == nil {
		panic("nil argument to Intersect2D")
	}
	b0, b1 := s0.Bounds(), s1.Bounds()
	bb := r2.Box{Min: d2.MaxElem(b0.Min, b1.Min), Max: d2.MinElem(b0.Max, b1.Max)}
	if bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y {
		// Disjoint boxes. Keep a degenerate box at the midpoint.
		c := d2.Box(b0).Center()
		bb = r2.Box{Min: c, Max: c}
	}
	return &intersection2{s0: s0, s1: s1, max: math.Max, bb: bb}
}

// Evaluate returns the minimum distance to the SDF2 intersection.
func (s *intersection2) Evaluate(p r2.Vec) float64 {
	return s.max(s.s0.Evaluate(p), s.s1.Evaluate(p))
}

// SetMax sets the maximum function to control blending.
func (s *intersection2) SetMax(max MaxFunc) { s.max = max }

// Bounds returns the bounding box of an SDF2 intersection.
func (s *intersection2) Bounds() r2.Box { return s.bb }

// transform2 is an SDF2 transformed by a 3x3 matrix.
type transform2 struct {
	sdf  SDF2
	mInv M33
	bb   r2.Box
}

// Transform2D applies a transformation matrix to an SDF2.
// Distance is not preserved with scaling.
func Transform2D(sdf SDF2, m M33) SDF2 {
	if sdf == nil {
		panic("nil argument to Transform2D")
	}
	return &transform2{sdf: sdf, mInv: m.Inverse(), bb: m.MulBox(sdf.Bounds())}
}

// Evaluate returns the minimum distance to a transformed SDF2.
func (s *transform2) Evaluate(p r2.Vec) float64 {
	return s.sdf.Evaluate(s.mInv.MulPosition(p))
}

// Bounds returns the bounding box of a transformed SDF2.
func (s *transform2) Bounds() r2.Box { return s.bb }

type offset2 struct {
	sdf    SDF2
	offset float64
	bb     r2.Box
}

// Offset2D returns an SDF2 that offsets the distance function of another SDF2.
// A positive offset grows the shape, a negative offset shrinks it.
func Offset2D(sdf SDF2, offset float64) SDF2 {
	bb := d2.Box(sdf.Bounds())
	return &offset2{
		sdf:    sdf,
		offset: offset,
		bb:     r2.Box(d2.NewBox(bb.Center(), r2.Add(bb.Size(), d2.Elem(2*offset)))),
	}
}

// Evaluate returns the minimum distance to an offset SDF2.
func (s *offset2) Evaluate(p r2.Vec) float64 {
	return s.sdf.Evaluate(p) - s.offset
}

// Bounds returns the bounding box of an offset SDF2.
func (s *offset2) Bounds() r2.Box { return s.bb }

// array2 defines an XY grid array of an existing SDF2.
type array2 struct {
	sdf  SDF2
	num  V2i    // grid size
	step r2.Vec // grid step size
	min  MinFunc
	bb   r2.Box
}

// Array2D returns an XY grid array of an existing SDF2.
// The first copy sits at the original position.
func Array2D(sdf SDF2, num V2i, step r2.Vec) SDF2Union {
	if num[0] <= 0 || num[1] <= 0 {
		return empty2From(sdf)
	}
	bb0 := d2.Box(sdf.Bounds())
	bb1 := bb0.Translate(d2.MulElem(step, r2.Sub(num.ToV2(), d2.Elem(1))))
	return &array2{
		sdf:  sdf,
		num:  num,
		step: step,
		min:  math.Min,
		bb:   r2.Box(bb0.Extend(bb1)),
	}
}

// SetMin sets the minimum function to control blending.
func (s *array2) SetMin(min MinFunc) { s.min = min }

// Evaluate returns the minimum distance to a grid array of SDF2s.
func (s *array2) Evaluate(p r2.Vec) float64 {
	d := math.MaxFloat64
	for j := 0; j < s.num[0]; j++ {
		for k := 0; k < s.num[1]; k++ {
			x := r2.Sub(p, r2.Vec{X: float64(j) * s.step.X, Y: float64(k) * s.step.Y})
			d = s.min(d, s.sdf.Evaluate(x))
		}
	}
	return d
}

// Bounds returns the bounding box of a grid array of SDF2s.
func (s *array2) Bounds() r2.Box { return s.bb }

// rotateCopy2 copies an SDF2 n times in a full circle.
// Multi2D creates a union of an SDF2 at a set of 2D positions.
func Multi2D(s SDF2, positions d2.Set) SDF2 {
	if s == nil {
		panic("nil sdf argument")
	}
	if len(positions) == 0 {
		return empty2From(s)
	}
	objects := make([]SDF2, len(positions))
	for i, p := range positions {
		objects[i] = Transform2D(s, Translate2D(p))
	}
	return Union2D(objects...)
}

func empty2From(s SDF2) empty2 {
	return empty2{center: d2.Box(s.Bounds()).Center()}
}

type empty2 struct {
	center r2.Vec
}

var _ SDF2Union = empty2{}

func (e empty2) Evaluate(r2.Vec) float64 { return math.MaxFloat64 }

func (e empty2) Bounds() r2.Box { return r2.Box{Min: e.center, Max: e.center} }

func (e empty2) SetMin(MinFunc) {}
func (e empty2) SetMax(MaxFunc) {}
