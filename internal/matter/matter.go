// Package matter compensates printed geometry for the dimensional
// behaviour of filament materials.
package matter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/filabank/filabank/sdf"
)

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{name: "pla", shrink: 0.2e-2, pullShrink: .45} // 0.2% shrinkage
	// PETG strings more than PLA and pulls holes in a little less.
	PETG = ViscousMaterial{name: "petg", shrink: 0.4e-2, pullShrink: .35}
	// ABS shrinks the most of the common materials as it cools.
	ABS = ViscousMaterial{name: "abs", shrink: 0.7e-2, pullShrink: .4}
)

var materials = map[string]ViscousMaterial{
	PLA.name:  PLA,
	PETG.name: PETG,
	ABS.name:  ABS,
}

// ViscousMaterial models a thermoplastic extruded as a viscous bead.
type ViscousMaterial struct {
	name string
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
	// pullShrink takes into account viscoelastic shrinkage of internal
	// features, in millimetres of diameter.
	pullShrink float64
}

// Lookup returns the material with the given name. Names are case insensitive.
func Lookup(name string) (ViscousMaterial, error) {
	m, ok := materials[strings.ToLower(name)]
	if !ok {
		return ViscousMaterial{}, fmt.Errorf("unknown material %q, want one of %s", name, strings.Join(Names(), ", "))
	}
	return m, nil
}

// Names returns the known material names in sorted order.
func Names() []string {
	names := make([]string, 0, len(materials))
	for name := range materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m ViscousMaterial) String() string { return m.name }

// ScaleFactor is how much larger a part must be printed to cool down to
// its modelled size.
func (m ViscousMaterial) ScaleFactor() float64 { return 1 / (1 - m.shrink) }

// Scale enlarges s so it cools down to its modelled size.
func (m ViscousMaterial) Scale(s sdf.SDF3) sdf.SDF3 {
	return sdf.ScaleUniform3D(s, m.ScaleFactor())
}

// InternalDimScale returns the diameter to model so that a hole prints
// with the real diameter.
func (m ViscousMaterial) InternalDimScale(real float64) float64 {
	if real <= 0 {
		panic("InternalDimScale only works for non-zero dimensions")
	}
	return real*(m.shrink+1) + m.pullShrink
}

// InternalRadius is InternalDimScale for radii.
func (m ViscousMaterial) InternalRadius(real float64) float64 {
	return m.InternalDimScale(2*real) / 2
}
