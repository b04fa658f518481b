package parts

import (
	"math"

	"github.com/filabank/filabank/bank"
	"github.com/filabank/filabank/sdf"
	"github.com/filabank/filabank/sdf/form3/must3"
)

// The twist-snap is a bayonet. Lugs at the tip of a post drop down the
// entry channels of a socket and are turned TwistDegrees along a twist
// channel at the bottom, ending up under the socket lip.

// twistSnapPost returns a post hanging from Z=0 down to -Height with the
// lugs at its tip. It reaches epsilon above Z=0 to fuse with its base.
func twistSnapPost(c *bank.Config) sdf.SDF3 {
	h := c.TwistSnap.Height
	post := translate(must3.Cylinder(h+epsilon, c.TwistSnapPostRadius(), 0), 0, 0, (epsilon-h)/2)
	lugH := c.TwistSnapLugHeight()
	half := sdf.DtoR(c.TwistSnapLugAngle()) / 2
	lugs := []sdf.SDF3{post}
	for _, a := range lugAngles(c) {
		lug := sdf.Extrude3D(sector(c.TwistSnapLugRadius(), a-half, a+half), lugH)
		lugs = append(lugs, translate(lug, 0, 0, -h+lugH/2))
	}
	return sdf.Union3D(lugs...)
}

// twistSnapSocketCut returns the socket cut with its mouth on Z=0,
// extending epsilon above so it opens cleanly.
func twistSnapSocketCut(c *bank.Config) sdf.SDF3 {
	depth := c.TwistSnapSocketDepth()
	r := c.TwistSnapSocketRadius()
	tall := depth + epsilon
	cuts := []sdf.SDF3{
		translate(must3.Cylinder(tall, c.TwistSnapBoreRadius(), 0), 0, 0, (epsilon-depth)/2),
	}
	half := sdf.DtoR(c.TwistSnapLugAngle())/2 + c.Tolerance/r
	twist := sdf.DtoR(c.TwistSnap.TwistDegrees)
	channelH := c.TwistSnapLugHeight() + 2*c.Tolerance
	for _, a := range lugAngles(c) {
		entry := sdf.Extrude3D(sector(r, a-half, a+half), tall)
		turn := sdf.Extrude3D(sector(r, a-half, a+half+twist), channelH)
		cuts = append(cuts,
			translate(entry, 0, 0, (epsilon-depth)/2),
			translate(turn, 0, 0, -depth+channelH/2),
		)
	}
	return sdf.Union3D(cuts...)
}

// lugAngles returns the angular position of each lug in radians.
func lugAngles(c *bank.Config) []float64 {
	n := c.TwistSnap.LugCount
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = 2 * math.Pi * float64(i) / float64(n)
	}
	return angles
}

// TwistSnapConnector is a standalone twist-snap post on a round base,
// printed post up.
type TwistSnapConnector struct{ cfg *bank.Config }

func NewTwistSnapConnector(cfg *bank.Config) *TwistSnapConnector { return &TwistSnapConnector{cfg} }

func (t *TwistSnapConnector) Name() string { return "twist_snap_connector" }

func (t *TwistSnapConnector) Compile() (s sdf.SDF3, err error) {
	defer recoverPart(t.Name(), &err)
	c := t.cfg
	baseH := c.MinimumStructureThickness
	base := translate(must3.Cylinder(baseH, c.TwistSnapSocketRadius()+c.MinimumStructureThickness, 0), 0, 0, baseH/2)
	post := twistSnapPost(c)
	// Flip so the base rests on the bed.
	connector := sdf.Transform3D(sdf.Union3D(base, post), sdf.RotateX(math.Pi))
	return translate(connector, 0, 0, baseH), nil
}

// TwistSnapSocket is a test block with the socket cut used by the
// frame end caps.
type TwistSnapSocket struct{ cfg *bank.Config }

func NewTwistSnapSocket(cfg *bank.Config) *TwistSnapSocket { return &TwistSnapSocket{cfg} }

func (t *TwistSnapSocket) Name() string { return "twist_snap_socket" }

func (t *TwistSnapSocket) Compile() (s sdf.SDF3, err error) {
	defer recoverPart(t.Name(), &err)
	c := t.cfg
	side := 2 * (c.TwistSnapSocketRadius() + c.MinimumStructureThickness)
	height := c.TwistSnapSocketDepth() + c.MinimumStructureThickness
	block := box(side, side, height, 0, 0, 0)
	return sdf.Difference3D(block, translate(twistSnapSocketCut(c), 0, 0, height)), nil
}
