package bank

import "fmt"

// Units of a Dimension.
const (
	Millimetre = "mm"
	Degree     = "deg"
	Count      = ""
)

// Dimension is one named derived value.
type Dimension struct {
	Name  string
	Value float64
	Unit  string
}

func (d Dimension) String() string {
	if d.Unit == Count {
		return fmt.Sprintf("%s=%g", d.Name, d.Value)
	}
	return fmt.Sprintf("%s=%.3f%s", d.Name, d.Value, d.Unit)
}

// Dimensions is an ordered report of derived values.
type Dimensions []Dimension

// Lookup returns the value of the named dimension.
func (ds Dimensions) Lookup(name string) (float64, bool) {
	for _, d := range ds {
		if d.Name == name {
			return d.Value, true
		}
	}
	return 0, false
}

// Dimensions returns every derived dimension in cascade order.
func (c *Config) Dimensions() Dimensions {
	mm := func(name string, v float64) Dimension { return Dimension{name, v, Millimetre} }
	count := func(name string, n int) Dimension { return Dimension{name, float64(n), Count} }
	return Dimensions{
		mm("bearing_bore_radius", c.BearingBoreRadius()),
		mm("bearing_inner_ring_radius", c.BearingInnerRingRadius()),
		mm("bearing_pitch_radius", c.BearingPitchRadius()),
		mm("bearing_outer_ring_inner_radius", c.BearingOuterRingInnerRadius()),
		mm("bearing_outer_radius", c.BearingOuterRadius()),
		count("bearing_roller_count", c.BearingRollerCount()),
		mm("bearing_height", c.BearingHeight()),
		mm("bearing_groove_depth", c.BearingGrooveDepth()),

		mm("wheel_radius", c.WheelRadius()),
		mm("wheel_bore_radius", c.WheelBoreRadius()),
		mm("wheel_hub_radius", c.WheelHubRadius()),
		mm("wheel_rim_inner_radius", c.WheelRimInnerRadius()),
		mm("wheel_lip_radius", c.WheelLipRadius()),
		mm("wheel_web_thickness", c.WheelWebThickness()),
		mm("wheel_spoke_hole_radius", c.WheelSpokeHoleRadius()),
		mm("wheel_spoke_hole_pitch_radius", c.WheelSpokeHolePitchRadius()),

		mm("wheel_separation", c.WheelSeparation()),
		mm("spool_rise", c.SpoolRise()),

		mm("axle_boss_radius", c.AxleBossRadius()),
		mm("axle_radius", c.AxleRadius()),
		mm("axle_height", c.AxleHeight()),
		mm("bracket_inner_width", c.BracketInnerWidth()),
		mm("bracket_width", c.BracketWidth()),
		mm("bracket_depth", c.BracketDepth()),
		mm("bracket_base_height", c.BracketBaseHeight()),
		mm("bracket_height", c.BracketHeight()),

		mm("frame_floor", c.FrameFloor()),
		mm("frame_height", c.FrameHeight()),
		mm("pocket_width", c.PocketWidth()),
		mm("pocket_depth", c.PocketDepth()),
		mm("slot_width", c.SlotWidth()),
		mm("end_cap_width", c.EndCapWidth()),
		mm("frame_length", c.FrameLength()),
		mm("frame_depth", c.FrameDepth()),
		mm("guide_groove_width", c.GuideGrooveWidth()),
		mm("guide_groove_depth", c.GuideGrooveDepth()),
		mm("lock_pin_height", c.LockPinHeight()),

		mm("spool_axis_height", c.SpoolAxisHeight()),
		mm("sidewall_height", c.SidewallHeight()),
		mm("guidewall_height", c.GuidewallHeight()),
		mm("tube_channel_height", c.TubeChannelHeight()),

		mm("twist_snap_socket_radius", c.TwistSnapSocketRadius()),
		Dimension{"twist_snap_lug_angle", c.TwistSnapLugAngle(), Degree},
		mm("twist_snap_lug_width", c.TwistSnapLugWidth()),
		mm("lock_pin_length", c.LockPinLength()),
		mm("lock_pin_head_radius", c.LockPinHeadRadius()),
	}
}
