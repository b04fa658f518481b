// Package form2 provides 2D primitives that return errors instead of
// panicking on invalid parameters. See must2 for the panicking versions.
package form2

import (
	"fmt"
	"runtime/debug"

	"github.com/filabank/filabank/sdf"
	"github.com/filabank/filabank/sdf/form2/must2"
	"gonum.org/v1/gonum/spatial/r2"
)

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// recoverShape turns a panic raised by a must2 constructor into an error.
func recoverShape(err *error) {
	if a := recover(); a != nil {
		*err = &shapeErr{
			panicObj: a,
			stack:    string(debug.Stack()),
		}
	}
}

// Circle returns the SDF2 for a 2d circle.
func Circle(radius float64) (s sdf.SDF2, err error) {
	defer recoverShape(&err)
	return must2.Circle(radius), err
}

// Box returns a 2d box with rounded corners.
func Box(size r2.Vec, round float64) (s sdf.SDF2, err error) {
	defer recoverShape(&err)
	return must2.Box(size, round), err
}

// Slot returns a stadium of length l and width w along X.
func Slot(l, w float64) (s sdf.SDF2, err error) {
	defer recoverShape(&err)
	return must2.Slot(l, w), err
}

// Polygon returns an SDF2 made from a closed set of line segments.
func Polygon(vertex []r2.Vec) (s sdf.SDF2, err error) {
	defer recoverShape(&err)
	return must2.Polygon(vertex), err
}

// BuildPolygon resolves the builder's vertices and returns the polygon.
func BuildPolygon(b *must2.PolygonBuilder) (s sdf.SDF2, err error) {
	defer recoverShape(&err)
	return must2.Polygon(b.Vertices()), err
}
