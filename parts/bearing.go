package parts

import (
	"math"

	"github.com/filabank/filabank/bank"
	"github.com/filabank/filabank/sdf"
	"github.com/filabank/filabank/sdf/form2/must2"
)

// Bearing is a print in place roller bearing. Rollers carry a V ridge
// running in V grooves cut in both rings, which keeps them captive.
// It lies flat and is centred on the origin.
type Bearing struct{ cfg *bank.Config }

func NewBearing(cfg *bank.Config) *Bearing { return &Bearing{cfg} }

func (b *Bearing) Name() string { return "bearing" }

func (b *Bearing) Compile() (s sdf.SDF3, err error) {
	defer recoverPart(b.Name(), &err)
	c := b.cfg
	h := c.BearingHeight() / 2
	g := c.BearingGrooveDepth()

	inner := must2.NewPolygon()
	inner.Add(c.BearingBoreRadius(), -h)
	inner.Add(c.BearingInnerRingRadius(), -h)
	inner.Add(c.BearingInnerRingRadius(), -g)
	inner.Add(c.BearingInnerRingRadius()-g, 0)
	inner.Add(c.BearingInnerRingRadius(), g)
	inner.Add(c.BearingInnerRingRadius(), h)
	inner.Add(c.BearingBoreRadius(), h)

	outer := must2.NewPolygon()
	outer.Add(c.BearingOuterRingInnerRadius(), -h)
	outer.Add(c.BearingOuterRadius(), -h)
	outer.Add(c.BearingOuterRadius(), h)
	outer.Add(c.BearingOuterRingInnerRadius(), h)
	outer.Add(c.BearingOuterRingInnerRadius(), g)
	outer.Add(c.BearingOuterRingInnerRadius()+g, 0)
	outer.Add(c.BearingOuterRingInnerRadius(), -g)

	rings := sdf.Union2D(must2.Polygon(inner.Vertices()), must2.Polygon(outer.Vertices()))
	ringSolid := sdf.Revolve3D(rings, 2*math.Pi)
	return sdf.Union3D(ringSolid, b.rollers()), nil
}

// rollers returns the rollers around the pitch circle. Their ridges are
// centred in the grooves so both flanks keep the same clearance. They
// rest on the print bed with their tops Tolerance*2 below the rings.
func (b *Bearing) rollers() sdf.SDF3 {
	c := b.cfg
	r := c.BearingRollerRadius()
	bottom := -c.BearingHeight() / 2
	top := bottom + c.BearingRollerHeight()
	ridge := c.BearingRidgeHeight()
	p := must2.NewPolygon()
	p.Add(0, bottom)
	p.Add(r, bottom)
	p.Add(r, -ridge)
	p.Add(r+ridge, 0)
	p.Add(r, ridge)
	p.Add(r, top)
	p.Add(0, top)
	roller := sdf.Revolve3D(must2.Polygon(p.Vertices()), 2*math.Pi)
	roller = translate(roller, c.BearingPitchRadius(), 0, 0)
	return sdf.RotateCopy3D(roller, c.BearingRollerCount())
}
