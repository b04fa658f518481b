// Package parts generates the solids of every printed component of a
// filament bank from a bank.Config. Parts are positioned in print
// orientation with their lowest face on Z=0 unless noted otherwise.
package parts

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/filabank/filabank/bank"
	"github.com/filabank/filabank/partomatic"
	"github.com/filabank/filabank/sdf"
	"github.com/filabank/filabank/sdf/form2/must2"
	"github.com/filabank/filabank/sdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// epsilon extends cutting tools past the faces they cut through so no
// zero thickness skins are left behind.
const epsilon = 0.5

// All returns every part of one bank in a stable order.
func All(cfg *bank.Config) []partomatic.Part {
	return []partomatic.Part{
		&Wheel{cfg},
		&Bearing{cfg},
		&Bracket{cfg},
		&Frame{cfg},
		&Sidewall{cfg},
		&Guidewall{cfg},
		&Connector{cfg},
		&LockPin{cfg},
		&TwistSnapConnector{cfg},
		&TwistSnapSocket{cfg},
	}
}

// Select returns the parts of cfg with the given names, in the order of
// All. No names selects every part.
func Select(cfg *bank.Config, names ...string) ([]partomatic.Part, error) {
	all := All(cfg)
	if len(names) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(names))
	for _, name := range names {
		want[name] = true
	}
	var selected []partomatic.Part
	for _, p := range all {
		if want[p.Name()] {
			selected = append(selected, p)
			delete(want, p.Name())
		}
	}
	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for name := range want {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown parts: %s (want one of %s)", strings.Join(unknown, ", "), strings.Join(Names(), ", "))
	}
	return selected, nil
}

// Names returns the names of all parts in the order of All.
func Names() []string {
	var names []string
	for _, p := range All(bank.DefaultConfig()) {
		names = append(names, p.Name())
	}
	return names
}

// recoverPart turns a panic raised by the kernel while compiling part
// into an error.
func recoverPart(part string, err *error) {
	if a := recover(); a != nil {
		*err = fmt.Errorf("compiling %s: %v", part, a)
	}
}

func translate(s sdf.SDF3, x, y, z float64) sdf.SDF3 {
	return sdf.Transform3D(s, sdf.Translate3D(r3.Vec{X: x, Y: y, Z: z}))
}

// box returns a box with its bottom face centred on (x, y, z0).
func box(sx, sy, sz, x, y, z0 float64) sdf.SDF3 {
	return translate(must3.Box(r3.Vec{X: sx, Y: sy, Z: sz}, 0), x, y, z0+sz/2)
}

// rodX returns a cylinder along X centred on (x, y, z).
func rodX(length, radius, x, y, z float64) sdf.SDF3 {
	rod := sdf.Transform3D(must3.Cylinder(length, radius, 0), sdf.RotateY(math.Pi/2))
	return translate(rod, x, y, z)
}

// rodY returns a cylinder along Y centred on (x, y, z).
func rodY(length, radius, x, y, z float64) sdf.SDF3 {
	rod := sdf.Transform3D(must3.Cylinder(length, radius, 0), sdf.RotateX(math.Pi/2))
	return translate(rod, x, y, z)
}

// yzPlate extrudes a profile drawn in the YZ plane along X. The
// profile's X axis maps to Y and its Y axis to Z. The plate is centred
// on X=0.
func yzPlate(profile sdf.SDF2, thickness float64) sdf.SDF3 {
	m := sdf.RotateZ(math.Pi / 2).Mul(sdf.RotateX(math.Pi / 2))
	return sdf.Transform3D(sdf.Extrude3D(profile, thickness), m)
}

// roundedPanel returns a width by height panel standing on Y=0, centred
// on X=0, with its top corners rounded by radius.
func roundedPanel(width, height, radius float64) sdf.SDF2 {
	p := must2.NewPolygon()
	p.Add(-width/2, 0)
	p.Add(width/2, 0)
	p.Add(width/2, height).Smooth(radius, 6)
	p.Add(-width/2, height).Smooth(radius, 6)
	return must2.Polygon(p.Vertices())
}

// lighteningHoles returns a centred grid of round holes inside the
// rectangle spanning width around X=0 and ymin to ymax, or nil if no
// hole fits.
func lighteningHoles(cfg *bank.Config, width, ymin, ymax float64) sdf.SDF2 {
	r, pitch := cfg.LighteningHoleRadius(), cfg.LighteningHolePitch()
	fit := func(span float64) int {
		if span < 2*r {
			return 0
		}
		return int(math.Floor((span-2*r)/pitch)) + 1
	}
	nx, ny := fit(width), fit(ymax-ymin)
	if nx == 0 || ny == 0 {
		return nil
	}
	grid := sdf.Array2D(must2.Circle(r), sdf.V2i{nx, ny}, r2.Vec{X: pitch, Y: pitch})
	origin := r2.Vec{
		X: -pitch * float64(nx-1) / 2,
		Y: (ymin+ymax)/2 - pitch*float64(ny-1)/2,
	}
	return sdf.Transform2D(grid, sdf.Translate2D(origin))
}

// sector returns the part of a circle of given radius between angles
// a0 and a1, in radians, measured counterclockwise from the X axis.
func sector(radius, a0, a1 float64) sdf.SDF2 {
	if a1 <= a0 {
		panic("empty sector")
	}
	const maxStep = math.Pi / 6
	n := int(math.Ceil((a1 - a0) / maxStep))
	fan := []r2.Vec{{}}
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		fan = append(fan, r2.Vec{X: 2 * radius * math.Cos(a), Y: 2 * radius * math.Sin(a)})
	}
	return sdf.Intersect2D(must2.Circle(radius), must2.Polygon(fan))
}
