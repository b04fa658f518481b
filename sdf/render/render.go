// Package render meshes SDF3 solids into triangles and reads and writes
// them as binary STL. It can also render an STL file to a PNG preview.
package render

import (
	"github.com/filabank/filabank/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer produces the triangles of a mesh. ReadTriangles fills dst and
// returns the number of triangles written. It returns io.EOF once the
// mesh is exhausted.
type Renderer interface {
	ReadTriangles(dst []Triangle3) (int, error)
}

// Triangle3 is a 3D triangle. Vertices are ordered anticlockwise when
// seen from outside the solid.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit normal of the triangle following the right
// hand rule. A zero area triangle returns the zero vector.
func (t Triangle3) Normal() r3.Vec {
	n := r3.Cross(r3.Sub(t.V[1], t.V[0]), r3.Sub(t.V[2], t.V[0]))
	l := r3.Norm(n)
	if l == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/l, n)
}

// Bounds returns the bounding box of a set of triangles.
func Bounds(model []Triangle3) r3.Box {
	if len(model) == 0 {
		return r3.Box{}
	}
	bb := r3.Box{Min: model[0].V[0], Max: model[0].V[0]}
	for _, t := range model {
		for _, v := range t.V {
			bb = r3.Box(d3.Box(bb).Include(v))
		}
	}
	return bb
}
