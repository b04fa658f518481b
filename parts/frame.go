package parts

import (
	"math"

	"github.com/filabank/filabank/bank"
	"github.com/filabank/filabank/internal/d3"
	"github.com/filabank/filabank/sdf"
	"github.com/filabank/filabank/sdf/form2/must2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Frame is the base rail. Each filament slot has a pocket for a bracket
// with a lock pin hole along Y. Guide grooves between slots hold the
// guidewalls. Both ends carry a dovetail socket for a Connector and an
// end cap with twist-snap sockets for a Sidewall.
type Frame struct{ cfg *bank.Config }

func NewFrame(cfg *bank.Config) *Frame { return &Frame{cfg} }

func (f *Frame) Name() string { return "frame" }

func (f *Frame) Compile() (s sdf.SDF3, err error) {
	defer recoverPart(f.Name(), &err)
	c := f.cfg
	length, depth, height := c.FrameLength(), c.FrameDepth(), c.FrameHeight()
	body := box(length, depth, height, 0, 0, 0)

	var cuts []sdf.SDF3
	for _, x := range c.SlotCenters() {
		cuts = append(cuts,
			box(c.PocketWidth(), c.PocketDepth(), c.Frame.BaseDepth+epsilon, x, 0, c.FrameFloor()),
			rodY(depth+2*epsilon, c.LockPinHoleRadius(), x, 0, c.LockPinHeight()),
		)
	}
	for _, x := range c.GuideGrooveCenters() {
		cuts = append(cuts, box(c.GuideGrooveWidth(), depth+2*epsilon, c.GuideGrooveDepth()+epsilon,
			x, 0, height-c.GuideGrooveDepth()))
	}
	dovetail := dovetailSocket(c)
	cuts = append(cuts, dovetail, sdf.Transform3D(dovetail, sdf.RotateZ(math.Pi)))

	x, y := c.EndCapCenter(), c.TwistSnapOffset()
	cuts = append(cuts, sdf.Multi3D(twistSnapSocketCut(c), d3.Set{
		{X: -x, Y: -y, Z: height},
		{X: -x, Y: y, Z: height},
		{X: x, Y: -y, Z: height},
		{X: x, Y: y, Z: height},
	}))
	return sdf.Difference3D(body, sdf.Union3D(cuts...)), nil
}

// dovetailSocket returns the dovetail cut at the positive X end of the
// frame, running through the full frame height.
func dovetailSocket(c *bank.Config) sdf.SDF3 {
	end := c.FrameLength() / 2
	inner := end - c.Frame.ConnectorLength/2
	neck, wide := c.ConnectorNeckWidth()/2, c.ConnectorWideWidth()/2
	profile := must2.Polygon([]r2.Vec{
		{X: end + epsilon, Y: -neck},
		{X: end, Y: -neck},
		{X: inner, Y: -wide},
		{X: inner, Y: wide},
		{X: end, Y: neck},
		{X: end + epsilon, Y: neck},
	})
	h := c.FrameHeight() + 2*epsilon
	return translate(sdf.Extrude3D(profile, h), 0, 0, c.FrameHeight()/2)
}
