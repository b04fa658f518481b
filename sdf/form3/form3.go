// Package form3 provides 3D primitives that return errors instead of
// panicking on invalid parameters. See must3 for the panicking versions.
package form3

import (
	"fmt"
	"runtime/debug"

	"github.com/filabank/filabank/sdf"
	"github.com/filabank/filabank/sdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

func recoverShape(err *error) {
	if a := recover(); a != nil {
		*err = &shapeErr{
			panicObj: a,
			stack:    string(debug.Stack()),
		}
	}
}

// Box returns an SDF3 for a 3d box (rounded edges with round > 0).
func Box(size r3.Vec, round float64) (s sdf.SDF3, err error) {
	defer recoverShape(&err)
	return must3.Box(size, round), err
}

// Sphere returns an SDF3 for a sphere.
func Sphere(radius float64) (s sdf.SDF3, err error) {
	defer recoverShape(&err)
	return must3.Sphere(radius), err
}

// Cylinder returns an SDF3 for a Z aligned cylinder (rounded edges with round > 0).
func Cylinder(height, radius, round float64) (s sdf.SDF3, err error) {
	defer recoverShape(&err)
	return must3.Cylinder(height, radius, round), err
}

// Cone returns an SDF3 for a Z aligned truncated cone.
func Cone(height, r0, r1 float64) (s sdf.SDF3, err error) {
	defer recoverShape(&err)
	return must3.Cone(height, r0, r1), err
}

// ChamferedCylinder returns a Z aligned cylinder with chamfered end edges.
func ChamferedCylinder(height, radius, cb, ct float64) (s sdf.SDF3, err error) {
	defer recoverShape(&err)
	return must3.ChamferedCylinder(height, radius, cb, ct), err
}
