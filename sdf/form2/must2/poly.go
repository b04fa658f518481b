package must2

import (
	"math"

	"github.com/filabank/filabank/internal/d2"
	"github.com/filabank/filabank/sdf"
	"gonum.org/v1/gonum/spatial/r2"
)

// polygon is an SDF2 made from a closed set of line segments.
type polygon struct {
	vertex []r2.Vec  // vertices, first one repeated at the end
	vector []r2.Vec  // unit line vectors
	length []float64 // line lengths
	bb     r2.Box
}

// Polygon returns an SDF2 made from a closed set of line segments.
// Vertex winding may be either direction.
func Polygon(vertex []r2.Vec) sdf.SDF2 {
	n := len(vertex)
	if n < 3 {
		panic("polygon needs at least 3 vertices")
	}
	s := polygon{vertex: append([]r2.Vec{}, vertex...)}
	if !d2.EqualWithin(vertex[0], vertex[n-1], tolerance) {
		s.vertex = append(s.vertex, vertex[0])
	}
	nsegs := len(s.vertex) - 1
	s.vector = make([]r2.Vec, nsegs)
	s.length = make([]float64, nsegs)
	for i := 0; i < nsegs; i++ {
		l := r2.Sub(s.vertex[i+1], s.vertex[i])
		s.length[i] = r2.Norm(l)
		if s.length[i] < tolerance {
			panic("polygon has repeated vertices")
		}
		s.vector[i] = r2.Unit(l)
	}
	vs := d2.Set(s.vertex)
	s.bb = r2.Box{Min: vs.Min(), Max: vs.Max()}
	return &s
}

// Evaluate returns the minimum distance for a 2d polygon.
func (s *polygon) Evaluate(p r2.Vec) float64 {
	dd := math.MaxFloat64 // squared distance to the outline
	wn := 0               // winding number
	pb := r2.Sub(p, s.vertex[0])
	for i := range s.vector {
		a, b := s.vertex[i], s.vertex[i+1]
		pa := pb
		pb = r2.Sub(p, b)
		t := r2.Dot(pa, s.vector[i])
		dn := r2.Dot(pa, r2.Vec{X: s.vector[i].Y, Y: -s.vector[i].X})
		switch {
		case t < 0:
			dd = math.Min(dd, r2.Norm2(pa))
		case t > s.length[i]:
			dd = math.Min(dd, r2.Norm2(pb))
		default:
			dd = math.Min(dd, dn*dn)
		}
		// See: http://geomalgorithms.com/a03-_inclusion.html
		if a.Y <= p.Y {
			if b.Y > p.Y && dn < 0 {
				wn++
			}
		} else if b.Y <= p.Y && dn > 0 {
			wn--
		}
	}
	d := math.Sqrt(dd)
	if wn != 0 {
		return -d
	}
	return d
}

// Bounds returns the bounding box of a 2d polygon.
func (s *polygon) Bounds() r2.Box { return s.bb }

// PolygonBuilder accumulates polygon vertices with optional corner
// smoothing and chamfering.
type PolygonBuilder struct {
	vlist []PolygonVertex
}

// PolygonVertex is a vertex of a PolygonBuilder. Its methods modify the
// vertex in place and return it for chaining.
type PolygonVertex struct {
	relative bool
	vtype    pvType
	vertex   r2.Vec
	facets   int
	size     float64 // smoothing radius or chamfer leg length
}

type pvType int

const (
	pvNormal pvType = iota
	pvSmooth
	pvChamfer
)

// Rel positions the vertex relative to the prior vertex.
func (v *PolygonVertex) Rel() *PolygonVertex {
	v.relative = true
	return v
}

// Smooth rounds the corner at the vertex with an arc of given radius.
func (v *PolygonVertex) Smooth(radius float64, facets int) *PolygonVertex {
	if radius > 0 && facets > 0 {
		v.size = radius
		v.facets = facets
		v.vtype = pvSmooth
	}
	return v
}

// Chamfer cuts the corner at the vertex, removing size along both edges.
func (v *PolygonVertex) Chamfer(size float64) *PolygonVertex {
	if size > 0 {
		v.size = size
		v.vtype = pvChamfer
	}
	return v
}

// NewPolygon returns an empty polygon builder.
func NewPolygon() *PolygonBuilder {
	return &PolygonBuilder{}
}

// Add adds an x,y vertex to the polygon.
func (p *PolygonBuilder) Add(x, y float64) *PolygonVertex {
	return p.AddV2(r2.Vec{X: x, Y: y})
}

// AddV2 adds a vertex to the polygon.
func (p *PolygonBuilder) AddV2(x r2.Vec) *PolygonVertex {
	p.vlist = append(p.vlist, PolygonVertex{vertex: x})
	return &p.vlist[len(p.vlist)-1]
}

// Vertices returns the resolved vertices of the closed polygon.
// It panics if a relative vertex has no absolute predecessor or a
// corner treatment is larger than its adjacent edges.
func (p *PolygonBuilder) Vertices() []r2.Vec {
	n := len(p.vlist)
	if n < 3 {
		panic("polygon needs at least 3 vertices")
	}
	abs := make([]PolygonVertex, n)
	copy(abs, p.vlist)
	if abs[0].relative {
		panic("first polygon vertex must be absolute")
	}
	for i := 1; i < n; i++ {
		if abs[i].relative {
			abs[i].vertex = r2.Add(abs[i].vertex, abs[i-1].vertex)
			abs[i].relative = false
		}
	}
	out := make([]r2.Vec, 0, n)
	for i, v := range abs {
		prev := abs[(i+n-1)%n].vertex
		next := abs[(i+1)%n].vertex
		switch v.vtype {
		case pvChamfer:
			out = append(out, chamferCorner(prev, v.vertex, next, v.size)...)
		case pvSmooth:
			out = append(out, smoothCorner(prev, v.vertex, next, v.size, v.facets)...)
		default:
			out = append(out, v.vertex)
		}
	}
	return out
}

func chamferCorner(prev, v, next r2.Vec, size float64) []r2.Vec {
	e0 := r2.Sub(prev, v)
	e1 := r2.Sub(next, v)
	if size >= r2.Norm(e0) || size >= r2.Norm(e1) {
		panic("chamfer larger than adjacent edge")
	}
	return []r2.Vec{
		r2.Add(v, r2.Scale(size, r2.Unit(e0))),
		r2.Add(v, r2.Scale(size, r2.Unit(e1))),
	}
}

func smoothCorner(prev, v, next r2.Vec, radius float64, facets int) []r2.Vec {
	v0 := r2.Unit(r2.Sub(prev, v))
	v1 := r2.Unit(r2.Sub(next, v))
	theta := math.Acos(sdf.Clamp(r2.Dot(v0, v1), -1, 1))
	if theta < tolerance || math.Pi-theta < tolerance {
		return []r2.Vec{v}
	}
	// distance from vertex to tangent points
	dt := radius / math.Tan(theta/2)
	if dt >= r2.Norm(r2.Sub(prev, v)) || dt >= r2.Norm(r2.Sub(next, v)) {
		panic("smoothing radius too large for adjacent edges")
	}
	p0 := r2.Add(v, r2.Scale(dt, v0))
	c := r2.Add(v, r2.Scale(radius/math.Sin(theta/2), r2.Unit(r2.Add(v0, v1))))
	dtheta := math.Copysign((math.Pi-theta)/float64(facets), r2.Cross(v1, v0))
	rm := sdf.Rotate2D(dtheta)
	rv := r2.Sub(p0, c)
	points := make([]r2.Vec, facets+1)
	for j := range points {
		points[j] = r2.Add(c, rv)
		rv = rm.MulPosition(rv)
	}
	return points
}

// Nagon returns the vertices of an n sided regular polygon
// inscribed in a circle of given radius.
func Nagon(n int, radius float64) d2.Set {
	if n < 3 {
		panic("n-gon needs at least 3 sides")
	}
	m := sdf.Rotate2D(2 * math.Pi / float64(n))
	v := make(d2.Set, n)
	p := r2.Vec{X: radius}
	for i := range v {
		v[i] = p
		p = m.MulPosition(p)
	}
	return v
}
