package parts

import (
	"math"

	"github.com/filabank/filabank/bank"
	"github.com/filabank/filabank/sdf"
	"github.com/filabank/filabank/sdf/form2/must2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Connector is a double dovetail key joining the end sockets of two
// frames. It is shrunk by Tolerance so it slides in from above.
type Connector struct{ cfg *bank.Config }

func NewConnector(cfg *bank.Config) *Connector { return &Connector{cfg} }

func (k *Connector) Name() string { return "connector" }

func (k *Connector) Compile() (s sdf.SDF3, err error) {
	defer recoverPart(k.Name(), &err)
	c := k.cfg
	l := c.Frame.ConnectorLength / 2
	neck, wide := c.ConnectorNeckWidth()/2, c.ConnectorWideWidth()/2
	bowtie := must2.Polygon([]r2.Vec{
		{X: -l, Y: -wide},
		{X: 0, Y: -neck},
		{X: l, Y: -wide},
		{X: l, Y: wide},
		{X: 0, Y: neck},
		{X: -l, Y: wide},
	})
	key := sdf.Offset2D(bowtie, -c.Tolerance/2)
	height := c.FrameHeight() - c.Tolerance
	return translate(sdf.Extrude3D(key, height), 0, 0, height/2), nil
}

// LockPin holds a bracket tab in its frame pocket. The shank has a
// chamfered tip and a flex slot so it clicks into the tab hole. It is
// printed head down.
type LockPin struct{ cfg *bank.Config }

func NewLockPin(cfg *bank.Config) *LockPin { return &LockPin{cfg} }

func (p *LockPin) Name() string { return "lock_pin" }

func (p *LockPin) Compile() (s sdf.SDF3, err error) {
	defer recoverPart(p.Name(), &err)
	c := p.cfg
	r, headR := c.LockPinRadius(), c.LockPinHeadRadius()
	headH, length := c.LockPinHeadHeight(), c.LockPinLength()
	top := headH + length

	profile := must2.NewPolygon()
	profile.Add(0, 0)
	profile.Add(headR, 0)
	profile.Add(headR, headH).Chamfer(headH / 3)
	profile.Add(r, headH)
	profile.Add(r, top).Chamfer(r / 3)
	profile.Add(0, top)
	pin := sdf.Revolve3D(must2.Polygon(profile.Vertices()), 2*math.Pi)

	slotW := math.Min(c.MinimumThickness, 2*r/3)
	slotL := length / 2
	slot := box(slotW, 2*(r+epsilon), slotL+epsilon, 0, 0, top-slotL)
	return sdf.Difference3D(pin, slot), nil
}
