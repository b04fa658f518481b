package parts

import (
	"math"

	"github.com/filabank/filabank/bank"
	"github.com/filabank/filabank/sdf"
	"github.com/filabank/filabank/sdf/form2/must2"
	"github.com/filabank/filabank/sdf/form3/must3"
)

// Wheel is a spool wheel: a hub seating the bearing, a web and a rim
// with lips either side that keep the spool flange on the tread.
// It lies flat and is centred on the origin.
type Wheel struct{ cfg *bank.Config }

func NewWheel(cfg *bank.Config) *Wheel { return &Wheel{cfg} }

func (w *Wheel) Name() string { return "wheel" }

func (w *Wheel) Compile() (s sdf.SDF3, err error) {
	defer recoverPart(w.Name(), &err)
	c := w.cfg
	var (
		h      = c.Wheel.Thickness / 2
		web    = c.WheelWebThickness() / 2
		lip    = h - c.Wheel.LipThickness
		bore   = c.WheelBoreRadius()
		hub    = c.WheelHubRadius()
		rimIn  = c.WheelRimInnerRadius()
		tread  = c.WheelRadius()
		lipR   = c.WheelLipRadius()
		edge   = c.MinimumThickness / 2
		lipCh  = c.Wheel.LipThickness / 4
		fillet = math.Min(h-web, (rimIn-hub)/2) / 2
	)
	// (r, z) profile, counterclockwise from the bottom of the bore.
	p := must2.NewPolygon()
	p.Add(bore, -h).Chamfer(edge)
	p.Add(hub, -h).Chamfer(edge)
	p.Add(hub, -web).Smooth(fillet, 6)
	p.Add(rimIn, -web).Smooth(fillet, 6)
	p.Add(rimIn, -h).Chamfer(edge)
	p.Add(lipR, -h).Chamfer(lipCh)
	p.Add(lipR, -lip).Chamfer(lipCh)
	p.Add(tread, -lip)
	p.Add(tread, lip)
	p.Add(lipR, lip).Chamfer(lipCh)
	p.Add(lipR, h).Chamfer(lipCh)
	p.Add(rimIn, h).Chamfer(edge)
	p.Add(rimIn, web).Smooth(fillet, 6)
	p.Add(hub, web).Smooth(fillet, 6)
	p.Add(hub, h).Chamfer(edge)
	p.Add(bore, h).Chamfer(edge)
	wheel := sdf.Revolve3D(must2.Polygon(p.Vertices()), 2*math.Pi)
	if c.Wheel.SpokeCount == 0 {
		return wheel, nil
	}
	hole := must3.Cylinder(c.Wheel.Thickness+2*epsilon, c.WheelSpokeHoleRadius(), 0)
	holes := sdf.RotateCopy3D(translate(hole, c.WheelSpokeHolePitchRadius(), 0, 0), c.Wheel.SpokeCount)
	return sdf.Difference3D(wheel, holes), nil
}
