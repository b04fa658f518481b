package render

import (
	"io"
	"math"
	"sync"

	"github.com/filabank/filabank/internal/d3"
	"github.com/filabank/filabank/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// maxCubeTriangles is the most triangles a single cube can produce:
// two for each of its six tetrahedra.
const maxCubeTriangles = 12

// octree renders an SDF3 with marching tetrahedra over an octree
// subdivision of its bounding box.
type octree struct {
	dc        *dc3
	todo      []cube // stack of cubes left to process
	unwritten triangle3Buffer
}

type cube struct {
	sdf.V3i      // origin of cube as integers
	n       uint // level of cube, size = 1 << n
}

// NewOctreeRenderer returns a Renderer that meshes s with marching
// tetrahedra. meshCells is the number of cells along the longest axis
// of the bounding box.
func NewOctreeRenderer(s sdf.SDF3, meshCells int) Renderer {
	if meshCells < 2 {
		panic("meshCells must be 2 or larger")
	}
	// Scale the bounding box about the center to make sure the boundaries
	// aren't on the object surface.
	bb := d3.Box(s.Bounds()).ScaleAboutCenter(1.01)
	longAxis := d3.Max(bb.Size())
	if longAxis <= 0 {
		return &octree{}
	}
	// Emptiness is tested for the smallest cube (side == 2*resolution) so the
	// level 0 cube is at half resolution.
	resolution := 0.5 * longAxis / float64(meshCells)
	levels := uint(math.Ceil(math.Log2(longAxis/resolution))) + 1
	return &octree{
		dc:        newDc3(s, bb.Min, resolution, levels),
		unwritten: triangle3Buffer{buf: make([]Triangle3, 0, maxCubeTriangles)},
		todo:      []cube{{sdf.V3i{0, 0, 0}, levels - 1}},
	}
}

// ReadTriangles writes triangles rendered from the model into dst.
// It returns the number of triangles written and io.EOF when done.
func (oc *octree) ReadTriangles(dst []Triangle3) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	n += oc.unwritten.Read(dst)
	for n < len(dst) && len(oc.todo) > 0 {
		c := oc.todo[len(oc.todo)-1]
		oc.todo = oc.todo[:len(oc.todo)-1]
		if len(dst)-n >= maxCubeTriangles {
			n += oc.processCube(dst[n:], c)
			continue
		}
		// Not enough room for a worst case cube. Buffer the overflow.
		var tmp [maxCubeTriangles]Triangle3
		nt := oc.processCube(tmp[:], c)
		oc.unwritten.Write(tmp[:nt])
		n += oc.unwritten.Read(dst[n:])
	}
	if len(oc.todo) == 0 && oc.unwritten.Len() == 0 {
		return n, io.EOF
	}
	return n, nil
}

// processCube either meshes a cube at the required resolution or pushes
// its non-empty sub cubes onto the stack.
func (oc *octree) processCube(dst []Triangle3, c cube) int {
	if c.n == 1 {
		var corners [8]r3.Vec
		var values [8]float64
		for i := range corners {
			// Corner index bits select the offset on each axis: x=1, y=2, z=4.
			off := sdf.V3i{2 * (i & 1), (i & 2), (i & 4) / 2}
			corners[i], values[i] = oc.dc.Evaluate(c.Add(off))
		}
		return mtCube(dst, &corners, &values)
	}
	n := c.n - 1
	s := 1 << n
	for i := 7; i >= 0; i-- {
		sub := cube{c.Add(sdf.V3i{s * (i & 1), s * (i & 2) / 2, s * (i & 4) / 4}), n}
		if !oc.dc.IsEmpty(&sub) {
			oc.todo = append(oc.todo, sub)
		}
	}
	return 0
}

// kuhn lists the six tetrahedra of the Kuhn decomposition of a cube as
// corner indices. Every tetrahedron runs along the 0-7 diagonal so
// neighbouring cubes split their shared faces identically.
var kuhn = [6][4]int{
	{0, 1, 3, 7},
	{0, 1, 5, 7},
	{0, 2, 3, 7},
	{0, 2, 6, 7},
	{0, 4, 5, 7},
	{0, 4, 6, 7},
}

// mtCube writes the triangles of a cube's isosurface to dst.
func mtCube(dst []Triangle3, p *[8]r3.Vec, v *[8]float64) int {
	n := 0
	for _, tet := range kuhn {
		n += mtTetra(dst[n:],
			[4]r3.Vec{p[tet[0]], p[tet[1]], p[tet[2]], p[tet[3]]},
			[4]float64{v[tet[0]], v[tet[1]], v[tet[2]], v[tet[3]]},
		)
	}
	return n
}

// mtTetra writes the zero isosurface of one tetrahedron to dst.
// Triangles are oriented to face away from the inside vertices.
func mtTetra(dst []Triangle3, p [4]r3.Vec, v [4]float64) int {
	var in, out [4]int
	var nin, nout int
	for i := range v {
		if v[i] < 0 {
			in[nin] = i
			nin++
		} else {
			out[nout] = i
			nout++
		}
	}
	if nin == 0 || nout == 0 {
		return 0
	}
	cin, cout := centroid(p, in[:nin]), centroid(p, out[:nout])
	dir := r3.Sub(cout, cin)
	edge := func(a, b int) r3.Vec { return interpolate(p[a], p[b], v[a], v[b]) }
	n := 0
	switch nin {
	case 1, 3:
		var lone int
		var others [3]int
		if nin == 1 {
			lone, others = in[0], [3]int{out[0], out[1], out[2]}
		} else {
			lone, others = out[0], [3]int{in[0], in[1], in[2]}
		}
		n += emit(dst[n:], dir, edge(lone, others[0]), edge(lone, others[1]), edge(lone, others[2]))
	case 2:
		a, b := in[0], in[1]
		c, d := out[0], out[1]
		ac, ad, bd, bc := edge(a, c), edge(a, d), edge(b, d), edge(b, c)
		n += emit(dst[n:], dir, ac, ad, bd)
		n += emit(dst[n:], dir, ac, bd, bc)
	}
	return n
}

// emit writes triangle abc to dst facing along dir. Triangles with
// coincident vertices are dropped.
func emit(dst []Triangle3, dir, a, b, c r3.Vec) int {
	if a == b || b == c || c == a {
		return 0
	}
	t := Triangle3{V: [3]r3.Vec{a, b, c}}
	if r3.Dot(r3.Cross(r3.Sub(b, a), r3.Sub(c, a)), dir) < 0 {
		t.V[1], t.V[2] = t.V[2], t.V[1]
	}
	dst[0] = t
	return 1
}

func centroid(p [4]r3.Vec, idx []int) r3.Vec {
	var c r3.Vec
	for _, i := range idx {
		c = r3.Add(c, p[i])
	}
	return r3.Scale(1/float64(len(idx)), c)
}

// interpolate returns the zero crossing on the edge p0-p1. Endpoints are
// always taken in the same order so the crossing is bit-identical in
// every tetrahedron sharing the edge. Crossings very close to a corner
// are snapped onto it.
func interpolate(p0, p1 r3.Vec, v0, v1 float64) r3.Vec {
	const snap = 1e-2
	if lessVec(p1, p0) {
		p0, p1, v0, v1 = p1, p0, v1, v0
	}
	t := v0 / (v0 - v1)
	switch {
	case t < snap:
		return p0
	case t > 1-snap:
		return p1
	}
	return r3.Add(p0, r3.Scale(t, r3.Sub(p1, p0)))
}

func lessVec(a, b r3.Vec) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// dc3 is a 3 dimensional distance cache. It evaluates the SDF3 via a
// cache keyed on lattice coordinates to avoid repeated evaluations of
// shared cube corners.
type dc3 struct {
	mu         sync.Mutex
	cache      map[sdf.V3i]float64
	origin     r3.Vec    // origin of the overall bounding cube
	resolution float64   // size of smallest octree cube
	hdiag      []float64 // lookup table of cube half diagonals
	s          sdf.SDF3
}

func newDc3(s sdf.SDF3, origin r3.Vec, resolution float64, n uint) *dc3 {
	if n >= 64 {
		panic("size of n must be less than size of word for hdiag generation")
	}
	dc := dc3{
		origin:     origin,
		resolution: resolution,
		hdiag:      make([]float64, n),
		s:          s,
		cache:      make(map[sdf.V3i]float64),
	}
	for i := range dc.hdiag {
		side := float64(uint(1)<<uint(i)) * dc.resolution
		dc.hdiag[i] = 0.5 * math.Sqrt(3.0*side*side)
	}
	return &dc
}

// Evaluate returns the position of lattice point vi and the SDF3 value there.
func (dc *dc3) Evaluate(vi sdf.V3i) (r3.Vec, float64) {
	v := r3.Add(dc.origin, r3.Scale(dc.resolution, vi.ToV3()))
	dc.mu.Lock()
	dist, found := dc.cache[vi]
	dc.mu.Unlock()
	if found {
		return v, dist
	}
	dist = dc.s.Evaluate(v)
	dc.mu.Lock()
	dc.cache[vi] = dist
	dc.mu.Unlock()
	return v, dist
}

// IsEmpty returns true if the cube contains no SDF surface.
func (dc *dc3) IsEmpty(c *cube) bool {
	s := 1 << (c.n - 1) // half side
	_, d := dc.Evaluate(c.AddScalar(s))
	return math.Abs(d) >= dc.hdiag[c.n]
}
