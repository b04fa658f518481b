package parts

import (
	"github.com/filabank/filabank/bank"
	"github.com/filabank/filabank/sdf"
)

// Sidewall is the end panel of a bank. It stands on a foot resting on a
// frame end cap, fastened by twist-snap posts hanging below the foot.
type Sidewall struct{ cfg *bank.Config }

func NewSidewall(cfg *bank.Config) *Sidewall { return &Sidewall{cfg} }

func (w *Sidewall) Name() string { return "sidewall" }

func (w *Sidewall) Compile() (s sdf.SDF3, err error) {
	defer recoverPart(w.Name(), &err)
	c := w.cfg
	depth, height := c.FrameDepth(), c.SidewallHeight()
	wall := c.MinimumStructureThickness
	footH := c.SidewallFootHeight()

	profile := roundedPanel(depth, height, c.CornerRadius())
	if c.Wall.LighteningHoles {
		holes := lighteningHoles(c, depth-4*wall, footH+2*wall, height-c.CornerRadius()-wall)
		if holes != nil {
			profile = sdf.Difference2D(profile, holes)
		}
	}
	panel := yzPlate(profile, c.Wall.Thickness)
	foot := box(c.SidewallFootWidth(), depth, footH, 0, 0, 0)
	sidewall := sdf.Union3D(panel, foot)
	sidewall.SetMin(sdf.RoundMin(c.MinimumThickness))

	pieces := []sdf.SDF3{sidewall}
	post := twistSnapPost(c)
	for _, y := range []float64{-c.TwistSnapOffset(), c.TwistSnapOffset()} {
		pieces = append(pieces, translate(post, 0, y, 0))
	}
	return sdf.Union3D(pieces...), nil
}

// Guidewall divides neighbouring slots. Its tab drops into a frame guide
// groove and shoulders rest on the frame top. A PTFE tube channel runs
// through its top front corner.
type Guidewall struct{ cfg *bank.Config }

func NewGuidewall(cfg *bank.Config) *Guidewall { return &Guidewall{cfg} }

func (w *Guidewall) Name() string { return "guidewall" }

func (w *Guidewall) Compile() (s sdf.SDF3, err error) {
	defer recoverPart(w.Name(), &err)
	c := w.cfg
	depth, height := c.FrameDepth(), c.GuidewallHeight()
	wall := c.MinimumStructureThickness
	groove := c.GuideGrooveDepth()
	thick := c.Wall.GuidewallThickness

	profile := roundedPanel(depth, height, c.CornerRadius())
	if c.Wall.LighteningHoles {
		top := c.TubeChannelHeight() - c.TubeChannelRadius() - wall
		holes := lighteningHoles(c, depth-4*wall, groove+3*wall, top)
		if holes != nil {
			profile = sdf.Difference2D(profile, holes)
		}
	}
	plate := yzPlate(profile, thick)
	shoulders := box(thick+2*c.MinimumThickness, depth, wall, 0, 0, groove)
	guidewall := sdf.Union3D(plate, shoulders)
	guidewall.SetMin(sdf.RoundMin(c.MinimumThickness))

	tube := rodX(thick+2*c.MinimumThickness+2*epsilon, c.TubeChannelRadius(), 0, c.TubeChannelOffset(), c.TubeChannelHeight())
	return sdf.Difference3D(guidewall, tube), nil
}
