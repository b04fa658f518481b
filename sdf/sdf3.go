package sdf

import (
	"math"
	"strconv"

	"github.com/filabank/filabank/internal/d2"
	"github.com/filabank/filabank/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// SDF3 is the interface to a 3d signed distance function object.
type SDF3 interface {
	// Evaluate takes a point in 3D space as input and returns
	// the minimum distance of the SDF3 to the point. The distance
	// is negative if the point is contained within the SDF3.
	Evaluate(p r3.Vec) float64
	// Bounds returns the bounding box that completely contains
	// the SDF3.
	Bounds() r3.Box
}

// SDF3Union is an SDF3 whose blending minimum function can be set.
type SDF3Union interface {
	SDF3
	SetMin(MinFunc)
}

// SDF3Diff is an SDF3 whose blending maximum function can be set.
type SDF3Diff interface {
	SDF3
	SetMax(MaxFunc)
}

// revolution3 is a solid of revolution of an SDF2 about the Z axis.
type revolution3 struct {
	sdf   SDF2
	theta float64 // 0 means a full revolution
	norm  r2.Vec  // normal to the theta plane
	bb    r3.Box
}

// Revolve3D returns the solid of revolution of an (r, z) profile about
// the Z axis. The profile's X coordinate is the radius and its Y
// coordinate is the height. theta is in radians, 2*pi for a full revolution.
func Revolve3D(sdf SDF2, theta float64) SDF3 {
	if sdf == nil {
		panic("nil SDF2 argument to Revolve3D")
	}
	if theta <= 0 {
		return empty3{}
	}
	if math.Abs(theta-tau) < tolerance || theta > tau {
		theta = 0
	}
	s := revolution3{sdf: sdf, theta: theta}
	sin, cos := math.Sincos(theta)
	s.norm = r2.Vec{X: -sin, Y: cos}
	var vset d2.Set
	if theta == 0 {
		vset = d2.Set{{X: 1, Y: 1}, {X: -1, Y: -1}}
	} else {
		vset = d2.Set{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: cos, Y: sin}}
		if theta > 0.5*pi {
			vset = append(vset, r2.Vec{X: 0, Y: 1})
		}
		if theta > pi {
			vset = append(vset, r2.Vec{X: -1, Y: 0})
		}
		if theta > 1.5*pi {
			vset = append(vset, r2.Vec{X: 0, Y: -1})
		}
	}
	bb := sdf.Bounds()
	l := math.Max(math.Abs(bb.Min.X), math.Abs(bb.Max.X))
	vmin := r2.Scale(l, vset.Min())
	vmax := r2.Scale(l, vset.Max())
	s.bb = r3.Box{
		Min: r3.Vec{X: vmin.X, Y: vmin.Y, Z: bb.Min.Y},
		Max: r3.Vec{X: vmax.X, Y: vmax.Y, Z: bb.Max.Y},
	}
	return &s
}

// Evaluate returns the minimum distance to a solid of revolution.
func (s *revolution3) Evaluate(p r3.Vec) float64 {
	a := s.sdf.Evaluate(r2.Vec{X: math.Hypot(p.X, p.Y), Y: p.Z})
	if s.theta == 0 {
		return a
	}
	// Wedge bounded by the XZ plane and the theta plane.
	d := r2.Dot(s.norm, r2.Vec{X: p.X, Y: p.Y})
	var b float64
	if s.theta < pi {
		b = math.Max(-p.Y, d)
	} else {
		b = math.Min(-p.Y, d)
	}
	return math.Max(a, b)
}

// Bounds returns the bounding box for a solid of revolution.
func (s *revolution3) Bounds() r3.Box { return s.bb }

// extrude3 extrudes an SDF2 along Z, centered on Z=0.
type extrude3 struct {
	sdf     SDF2
	height  float64 // half height
	extrude ExtrudeFunc
	bb      r3.Box
}

// Extrude3D does a linear extrude of an SDF2 along Z, centered on Z=0.
func Extrude3D(sdf SDF2, height float64) SDF3 {
	if sdf == nil {
		panic("nil SDF2 argument to Extrude3D")
	}
	if height <= 0 {
		return empty3{}
	}
	bb := sdf.Bounds()
	h := height / 2
	return &extrude3{
		sdf:     sdf,
		height:  h,
		extrude: NormalExtrude,
		bb:      r3.Box{Min: r3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: -h}, Max: r3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: h}},
	}
}

// Evaluate returns the minimum distance to an extrusion.
func (s *extrude3) Evaluate(p r3.Vec) float64 {
	a := s.sdf.Evaluate(s.extrude(p))
	b := math.Abs(p.Z) - s.height
	return math.Max(a, b)
}

// Bounds returns the bounding box for an extrusion.
func (s *extrude3) Bounds() r3.Box { return s.bb }

// extrudeRounded extrudes an SDF2 to an SDF3 with rounded edges.
type extrudeRounded struct {
	sdf    SDF2
	height float64
	round  float64
	bb     r3.Box
}

// ExtrudeRounded3D extrudes an SDF2 with its top and bottom edges rounded
// by round. The total height includes the rounding, the profile is grown
// by round in XY.
func ExtrudeRounded3D(sdf SDF2, height, round float64) SDF3 {
	switch {
	case round == 0:
		return Extrude3D(sdf, height)
	case sdf == nil:
		panic("nil SDF2 argument to ExtrudeRounded3D")
	case height <= 0 || round < 0 || height < 2*round:
		return empty3{}
	}
	s := extrudeRounded{sdf: sdf, height: height/2 - round, round: round}
	bb := sdf.Bounds()
	s.bb = r3.Box{
		Min: r3.Sub(r3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: -s.height}, d3.Elem(round)),
		Max: r3.Add(r3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: s.height}, d3.Elem(round)),
	}
	return &s
}

// Evaluate returns the minimum distance to a rounded extrusion.
func (s *extrudeRounded) Evaluate(p r3.Vec) float64 {
	a := s.sdf.Evaluate(r2.Vec{X: p.X, Y: p.Y})
	b := math.Abs(p.Z) - s.height
	return roundedSlab(a, b) - s.round
}

// Bounds returns the bounding box for a rounded extrusion.
func (s *extrudeRounded) Bounds() r3.Box { return s.bb }

// roundedSlab combines a profile distance a with a slab distance b.
func roundedSlab(a, b float64) float64 {
	switch {
	case b > 0 && a < 0:
		return b
	case b > 0:
		return math.Hypot(a, b)
	case a < 0:
		return math.Max(a, b)
	default:
		return a
	}
}

// transform3 is an SDF3 transformed with a 4x4 transformation matrix.
type transform3 struct {
	sdf     SDF3
	inverse M44
	bb      r3.Box
}

// Transform3D applies a transformation matrix to an SDF3.
// Distance is not preserved with scaling.
func Transform3D(sdf SDF3, matrix M44) SDF3 {
	if sdf == nil {
		panic("nil SDF3 argument to Transform3D")
	}
	return &transform3{
		sdf:     sdf,
		inverse: matrix.Inverse(),
		bb:      matrix.MulBox(sdf.Bounds()),
	}
}

// Evaluate returns the minimum distance to a transformed SDF3.
func (s *transform3) Evaluate(p r3.Vec) float64 {
	return s.sdf.Evaluate(s.inverse.MulPosition(p))
}

// Bounds returns the bounding box of a transformed SDF3.
func (s *transform3) Bounds() r3.Box { return s.bb }

// scaleUniform3 is an SDF3 scaled equally on every axis.
type scaleUniform3 struct {
	sdf     SDF3
	k, invK float64
	bb      r3.Box
}

// ScaleUniform3D scales an SDF3 by k on all axes. Unlike Transform3D
// the distance stays correct.
func ScaleUniform3D(sdf SDF3, k float64) SDF3 {
	if k <= 0 {
		panic("scale factor must be positive")
	}
	return &scaleUniform3{
		sdf:  sdf,
		k:    k,
		invK: 1 / k,
		bb:   Scale3D(r3.Vec{X: k, Y: k, Z: k}).MulBox(sdf.Bounds()),
	}
}

// Evaluate returns the minimum distance to a uniformly scaled SDF3.
func (s *scaleUniform3) Evaluate(p r3.Vec) float64 {
	return s.sdf.Evaluate(r3.Scale(s.invK, p)) * s.k
}

// Bounds returns the bounding box of a uniformly scaled SDF3.
func (s *scaleUniform3) Bounds() r3.Box { return s.bb }

// union3 is a union of SDF3s.
type union3 struct {
	sdf []SDF3
	min MinFunc
	bb  r3.Box
}

// Union3D returns the union of one or more SDF3 objects.
// Union3D panics if the argument list is empty or holds a nil SDF3.
func Union3D(sdf ...SDF3) SDF3Union {
	if len(sdf) == 0 {
		panic("union requires at least one sdf")
	}
	bb := d3.Box{Min: d3.Elem(math.Inf(1)), Max: d3.Elem(math.Inf(-1))}
	for i, x := range sdf {
		if x == nil {
			panic("nil sdf argument (" + strconv.Itoa(i) + ") to Union3D")
		}
		bb = bb.Extend(d3.Box(x.Bounds()))
	}
	return &union3{sdf: sdf, min: math.Min, bb: r3.Box(bb)}
}

// Evaluate returns the minimum distance to an SDF3 union.
func (s *union3) Evaluate(p r3.Vec) float64 {
	d := s.sdf[0].Evaluate(p)
	for _, x := range s.sdf[1:] {
		d = s.min(d, x.Evaluate(p))
	}
	return d
}

// SetMin sets the minimum function to control blending.
func (s *union3) SetMin(min MinFunc) { s.min = min }

// Bounds returns the bounding box of an SDF3 union.
func (s *union3) Bounds() r3.Box { return s.bb }

// diff3 is the difference of two SDF3s, s0 - s1.
type diff3 struct {
	s0, s1 SDF3
	max    MaxFunc
}

// Difference3D returns the difference of two SDF3s, s0 - s1.
// Difference3D panics if any of the arguments is nil.
func Difference3D(s0, s1 SDF3) SDF3Diff {
	if s0 == nil || s1 == nil {
		panic("nil argument to Difference3D")
	}
	return &diff3{s0: s0, s1: s1, max: math.Max}
}

// Evaluate returns the minimum distance to the SDF3 difference.
func (s *diff3) Evaluate(p r3.Vec) float64 {
	return s.max(s.s0.Evaluate(p), -s.s1.Evaluate(p))
}

// SetMax sets the maximum function to control blending.
func (s *diff3) SetMax(max MaxFunc) { s.max = max }

// Bounds returns the bounding box of the difference, that of s0.
func (s *diff3) Bounds() r3.Box { return s.s0.Bounds() }

// intersection3 is the intersection of two SDF3s.
type intersection3 struct {
	s0, s1 SDF3
	max    MaxFunc
	bb     r3.Box
}

// Intersect3D returns the intersection of two SDF3s.
// Intersect3D panics if any of the arguments is nil.
func Intersect3D(s0, s1 SDF3) SDF3Diff {
	if s0 == nil || s1 == nil {
		panic("nil argument to Intersect3D")
	}
	b0, b1 := s0.Bounds(), s1.Bounds()
	bb := r3.Box{Min: d3.MaxElem(b0.Min, b1.Min), Max: d3.MinElem(b0.Max, b1.Max)}
	if d3.LTEZero(r3.Sub(bb.Max, bb.Min)) {
		c := d3.Box(b0).Center()
		bb = r3.Box{Min: c, Max: c}
	}
	return &intersection3{s0: s0, s1: s1, max: math.Max, bb: bb}
}

// Evaluate returns the minimum distance to the SDF3 intersection.
func (s *intersection3) Evaluate(p r3.Vec) float64 {
	return s.max(s.s0.Evaluate(p), s.s1.Evaluate(p))
}

// SetMax sets the maximum function to control blending.
func (s *intersection3) SetMax(max MaxFunc) { s.max = max }

// Bounds returns the bounding box of an SDF3 intersection.
func (s *intersection3) Bounds() r3.Box { return s.bb }

// rotateCopy3 rotates and creates N copies of an SDF3 about the Z axis.
type rotateCopy3 struct {
	sdf   SDF3
	theta float64
	bb    r3.Box
}

// RotateCopy3D creates num copies of an SDF3 evenly spaced about the Z axis.
// Copies must not overlap the sector boundaries for distances to be exact.
func RotateCopy3D(sdf SDF3, num int) SDF3 {
	if num <= 0 {
		return empty3From(sdf)
	}
	bb := d3.Box(sdf.Bounds())
	rmax := 0.0
	for _, v := range bb.Vertices() {
		rmax = math.Max(rmax, math.Hypot(v.X, v.Y))
	}
	return &rotateCopy3{
		sdf:   sdf,
		theta: tau / float64(num),
		bb: r3.Box{
			Min: r3.Vec{X: -rmax, Y: -rmax, Z: bb.Min.Z},
			Max: r3.Vec{X: rmax, Y: rmax, Z: bb.Max.Z},
		},
	}
}

// Evaluate maps p into the first copy sector and evaluates it there.
func (s *rotateCopy3) Evaluate(p r3.Vec) float64 {
	p2 := d2.PolarToXY(math.Hypot(p.X, p.Y), SawTooth(math.Atan2(p.Y, p.X), s.theta))
	return s.sdf.Evaluate(r3.Vec{X: p2.X, Y: p2.Y, Z: p.Z})
}

// Bounds returns the bounding box of a rotate/copy SDF3.
func (s *rotateCopy3) Bounds() r3.Box { return s.bb }

// Multi3D creates a union of an SDF3 at translated positions.
func Multi3D(s SDF3, positions d3.Set) SDF3 {
	if s == nil {
		panic("nil sdf argument to Multi3D")
	}
	if len(positions) == 0 {
		return empty3From(s)
	}
	objects := make([]SDF3, len(positions))
	for i, p := range positions {
		objects[i] = Transform3D(s, Translate3D(p))
	}
	return Union3D(objects...)
}

func empty3From(s SDF3) empty3 {
	return empty3{center: d3.Box(s.Bounds()).Center()}
}

type empty3 struct {
	center r3.Vec
}

var _ SDF3Union = empty3{}

func (e empty3) Evaluate(r3.Vec) float64 { return math.MaxFloat64 }

func (e empty3) Bounds() r3.Box { return r3.Box{Min: e.center, Max: e.center} }

func (e empty3) SetMin(MinFunc) {}
func (e empty3) SetMax(MaxFunc) {}
