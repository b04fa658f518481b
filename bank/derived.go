package bank

import (
	"math"

	"github.com/filabank/filabank/internal/matter"
)

// Derived dimensions. Each accessor depends only on base parameters and
// accessors declared above it, so the cascade has no cycles.

// Matter returns the configured material. Unknown names fall back to PLA;
// Validate reports them.
func (c *Config) Matter() matter.ViscousMaterial {
	m, err := matter.Lookup(c.Material)
	if err != nil {
		return matter.PLA
	}
	return m
}

// Bearing.

func (c *Config) BearingBoreRadius() float64 {
	return c.Bearing.AxleDiameter/2 + c.Tolerance
}

func (c *Config) BearingInnerRingRadius() float64 {
	return c.BearingBoreRadius() + c.Bearing.RingThickness
}

// BearingPitchRadius is the radius of the circle through the roller axes.
func (c *Config) BearingPitchRadius() float64 {
	return c.BearingInnerRingRadius() + c.Tolerance + c.Bearing.RollerDiameter/2
}

func (c *Config) BearingOuterRingInnerRadius() float64 {
	return c.BearingPitchRadius() + c.Bearing.RollerDiameter/2 + c.Tolerance
}

func (c *Config) BearingOuterRadius() float64 {
	return c.BearingOuterRingInnerRadius() + c.Bearing.RingThickness
}

// BearingRollerCount is the configured roller count or, when zero, the
// most rollers that fit around the pitch circle with clearance.
func (c *Config) BearingRollerCount() int {
	if c.Bearing.RollerCount != 0 {
		return c.Bearing.RollerCount
	}
	pitch := 2 * math.Pi * c.BearingPitchRadius()
	space := c.Bearing.RollerDiameter + 2*c.Tolerance + c.MinimumThickness
	if pitch <= 0 || space <= 0 {
		return 0
	}
	return int(math.Floor(pitch / space))
}

func (c *Config) BearingHeight() float64 { return c.Wheel.Thickness }

// BearingGrooveDepth is the depth of the V grooves in both rings.
func (c *Config) BearingGrooveDepth() float64 { return c.Bearing.RollerDiameter / 4 }

func (c *Config) BearingRollerRadius() float64 { return c.Bearing.RollerDiameter / 2 }

func (c *Config) BearingRollerHeight() float64 { return c.BearingHeight() - 2*c.Tolerance }

// BearingRidgeHeight is how far the V ridge of a roller stands proud.
func (c *Config) BearingRidgeHeight() float64 { return c.BearingGrooveDepth() - c.Tolerance }

// Wheel.

func (c *Config) WheelRadius() float64 { return c.Wheel.Diameter / 2 }

// WheelBoreRadius is the bearing seat, compensated for material shrink.
// It is zero when the bearing has no outside. With Render.CompensateShrink
// the whole wheel is scaled up at export, so the bore is modelled that
// much smaller.
func (c *Config) WheelBoreRadius() float64 {
	outer := c.BearingOuterRadius()
	if outer <= 0 {
		return 0
	}
	r := c.Matter().InternalRadius(outer)
	if c.Render.CompensateShrink {
		r /= c.Matter().ScaleFactor()
	}
	return r
}

func (c *Config) WheelHubRadius() float64 {
	return c.BearingOuterRadius() + c.MinimumStructureThickness
}

func (c *Config) WheelRimInnerRadius() float64 {
	return c.WheelRadius() - c.Wheel.RimThickness
}

func (c *Config) WheelLipRadius() float64 {
	return c.WheelRadius() + c.Wheel.LipHeight
}

func (c *Config) WheelWebThickness() float64 { return c.MinimumStructureThickness }

// WheelSpokeHolePitchRadius is the radius of the circle through the
// centres of the lightening holes in the web.
func (c *Config) WheelSpokeHolePitchRadius() float64 {
	return (c.WheelHubRadius() + c.WheelRimInnerRadius()) / 2
}

// WheelSpokeHoleRadius leaves at least MinimumThickness of web between
// holes and around them. It is zero for a solid web.
func (c *Config) WheelSpokeHoleRadius() float64 {
	if c.Wheel.SpokeCount <= 0 {
		return 0
	}
	radial := (c.WheelRimInnerRadius()-c.WheelHubRadius())/2 - c.MinimumThickness
	angular := c.WheelSpokeHolePitchRadius()*math.Sin(math.Pi/float64(c.Wheel.SpokeCount)) - c.MinimumThickness/2
	return math.Max(0, math.Min(radial, angular))
}

// Cradle.

func (c *Config) spoolWheelDistance() float64 {
	return c.Spool.Diameter/2 + c.WheelRadius()
}

func (c *Config) halfCradle() float64 {
	return c.Spool.CradleAngle / 2 * math.Pi / 180
}

// WheelSeparation is the distance between the axles of the two wheels
// a spool rests on.
func (c *Config) WheelSeparation() float64 {
	return 2 * c.spoolWheelDistance() * math.Sin(c.halfCradle())
}

// SpoolRise is the height of the spool axis above the wheel axles.
func (c *Config) SpoolRise() float64 {
	return c.spoolWheelDistance() * math.Cos(c.halfCradle())
}

// Bracket.

func (c *Config) AxleBossRadius() float64 {
	return c.Bearing.AxleDiameter/2 + c.MinimumStructureThickness
}

// BracketInnerWidth is the gap between the uprights the wheels turn in.
func (c *Config) BracketInnerWidth() float64 {
	return c.Wheel.Thickness + 2*c.Tolerance
}

func (c *Config) BracketWidth() float64 {
	return c.BracketInnerWidth() + 2*c.MinimumStructureThickness
}

func (c *Config) BracketDepth() float64 {
	return c.WheelSeparation() + 2*c.AxleBossRadius()
}

func (c *Config) BracketBaseHeight() float64 { return c.Frame.BaseDepth }

// AxleHeight is the height of the wheel axles above the bracket bottom.
func (c *Config) AxleHeight() float64 {
	return c.Frame.BaseDepth + c.WheelLipRadius() + c.Tolerance
}

func (c *Config) BracketHeight() float64 {
	return c.AxleHeight() + c.AxleBossRadius()
}

// AxleRadius is the radius of the axle pins the bearings turn on.
func (c *Config) AxleRadius() float64 {
	return c.Bearing.AxleDiameter/2 - c.Tolerance/2
}

// AxlePinLength is the length of each axle pin. Opposing pins leave a
// Tolerance gap between them.
func (c *Config) AxlePinLength() float64 {
	return c.BracketInnerWidth()/2 - c.Tolerance/2
}

// Frame.

func (c *Config) FrameFloor() float64 { return c.MinimumStructureThickness }

func (c *Config) FrameHeight() float64 { return c.FrameFloor() + c.Frame.BaseDepth }

func (c *Config) PocketWidth() float64 { return c.BracketWidth() + 2*c.Tolerance }

func (c *Config) PocketDepth() float64 { return c.BracketDepth() + 2*c.Tolerance }

func (c *Config) GuideGrooveWidth() float64 {
	return c.Wall.GuidewallThickness + 2*c.Tolerance
}

func (c *Config) GuideGrooveDepth() float64 { return c.Frame.BaseDepth / 2 }

// SlotWidth is the frame length taken by one spool.
func (c *Config) SlotWidth() float64 {
	return math.Max(c.Spool.Width, c.BracketWidth()) + 2*c.Tolerance + c.GuideGrooveWidth()
}

func (c *Config) EndCapWidth() float64 {
	return math.Max(c.Frame.ConnectorLength/2, 2*c.TwistSnapSocketRadius()) + 2*c.MinimumStructureThickness
}

func (c *Config) FrameLength() float64 {
	return 2*c.EndCapWidth() + float64(c.FilamentCount)*c.SlotWidth()
}

func (c *Config) FrameDepth() float64 {
	return c.PocketDepth() + 2*c.MinimumStructureThickness
}

// SlotCenters returns the X coordinate of each slot centre. The frame
// is centred on the origin.
func (c *Config) SlotCenters() []float64 {
	x0 := -c.FrameLength()/2 + c.EndCapWidth()
	centers := make([]float64, c.FilamentCount)
	for i := range centers {
		centers[i] = x0 + c.SlotWidth()*(float64(i)+0.5)
	}
	return centers
}

// GuideGrooveCenters returns the X coordinates of the grooves between
// neighbouring slots.
func (c *Config) GuideGrooveCenters() []float64 {
	if c.FilamentCount < 2 {
		return nil
	}
	x0 := -c.FrameLength()/2 + c.EndCapWidth()
	centers := make([]float64, c.FilamentCount-1)
	for i := range centers {
		centers[i] = x0 + c.SlotWidth()*float64(i+1)
	}
	return centers
}

// EndCapCenter is the X coordinate of the centre of the positive end cap.
func (c *Config) EndCapCenter() float64 {
	return c.FrameLength()/2 - c.EndCapWidth()/2
}

// LockPinHeight is the height of the lock pin axis above the frame bottom.
func (c *Config) LockPinHeight() float64 {
	return c.FrameFloor() + c.BracketBaseHeight()/2
}

// ConnectorNeckWidth is the narrow width of the dovetail at the frame end.
func (c *Config) ConnectorNeckWidth() float64 { return 2 * c.MinimumStructureThickness }

// ConnectorWideWidth is the width of the dovetail ConnectorLength/2
// into the frame.
func (c *Config) ConnectorWideWidth() float64 {
	return c.ConnectorNeckWidth() + c.Frame.ConnectorLength/2
}

// TwistSnapOffset is the Y distance of the twist-snap sockets from the
// frame centre line.
func (c *Config) TwistSnapOffset() float64 {
	return c.FrameDepth()/2 - c.MinimumStructureThickness - c.TwistSnapSocketRadius()
}

// Walls.

// SpoolAxisHeight is the height of the spool axis above the frame bottom.
func (c *Config) SpoolAxisHeight() float64 {
	return c.FrameFloor() + c.AxleHeight() + c.SpoolRise()
}

// SidewallHeight is measured from the frame top.
func (c *Config) SidewallHeight() float64 {
	return c.SpoolAxisHeight() - c.FrameHeight()
}

// SidewallFootHeight is the thickness of the foot the sidewall stands on.
func (c *Config) SidewallFootHeight() float64 { return c.MinimumStructureThickness }

func (c *Config) SidewallFootWidth() float64 { return c.EndCapWidth() - 2*c.Tolerance }

// GuidewallHeight is measured from the bottom of the guide groove.
func (c *Config) GuidewallHeight() float64 {
	return c.SidewallHeight() + c.GuideGrooveDepth()
}

func (c *Config) TubeChannelRadius() float64 {
	return c.Wall.TubeDiameter/2 + c.Tolerance/2
}

// TubeChannelHeight is the height of the tube channel axis above the
// guidewall bottom.
func (c *Config) TubeChannelHeight() float64 {
	return c.GuidewallHeight() - c.MinimumStructureThickness - c.TubeChannelRadius()
}

// TubeChannelOffset is the Y position of the tube channel axis.
func (c *Config) TubeChannelOffset() float64 {
	return c.FrameDepth()/2 - c.MinimumStructureThickness - c.TubeChannelRadius()
}

// CornerRadius rounds the top corners of the walls.
func (c *Config) CornerRadius() float64 { return 2 * c.MinimumStructureThickness }

// LighteningHoleRadius is the radius of the holes cut in walls when
// Wall.LighteningHoles is set.
func (c *Config) LighteningHoleRadius() float64 { return 3 * c.MinimumStructureThickness }

// LighteningHolePitch is the spacing between lightening hole centres.
func (c *Config) LighteningHolePitch() float64 {
	return 2*c.LighteningHoleRadius() + 2*c.MinimumStructureThickness
}

// Fasteners.

func (c *Config) TwistSnapPostRadius() float64 { return c.TwistSnap.Diameter / 2 }

// TwistSnapBoreRadius is the radius of the socket hole the post enters.
func (c *Config) TwistSnapBoreRadius() float64 { return c.TwistSnapPostRadius() + c.Tolerance }

// TwistSnapLugRadius is the outer radius of the lugs.
func (c *Config) TwistSnapLugRadius() float64 {
	return c.TwistSnapPostRadius() + c.TwistSnap.LugDepth
}

// TwistSnapSocketRadius is the outer radius of the socket channels.
func (c *Config) TwistSnapSocketRadius() float64 {
	return c.TwistSnapLugRadius() + c.Tolerance
}

func (c *Config) TwistSnapLugHeight() float64 { return c.TwistSnap.Height / 3 }

// TwistSnapLugAngle is the angular width of one lug in degrees. A lug,
// its twist and the clearance around them take a third of the space
// per lug.
func (c *Config) TwistSnapLugAngle() float64 {
	if c.TwistSnap.LugCount <= 0 {
		return 0
	}
	return (360/float64(c.TwistSnap.LugCount) - c.TwistSnap.TwistDegrees) / 3
}

// TwistSnapLugWidth is the arc length of a lug at the post surface.
func (c *Config) TwistSnapLugWidth() float64 {
	return c.TwistSnapPostRadius() * c.TwistSnapLugAngle() * math.Pi / 180
}

// TwistSnapSocketDepth is the depth of the socket cut below the surface.
func (c *Config) TwistSnapSocketDepth() float64 { return c.TwistSnap.Height + c.Tolerance }

func (c *Config) LockPinRadius() float64 { return c.LockPin.Diameter/2 - c.Tolerance/2 }

func (c *Config) LockPinHoleRadius() float64 { return c.LockPin.Diameter/2 + c.Tolerance/2 }

// LockPinLength is the shank length: through the frame wall and two
// diameters into the bracket tab.
func (c *Config) LockPinLength() float64 {
	return c.MinimumStructureThickness + c.Tolerance + 2*c.LockPin.Diameter
}

func (c *Config) LockPinHeadRadius() float64 {
	return c.LockPin.Diameter/2 + c.MinimumStructureThickness/2
}

func (c *Config) LockPinHeadHeight() float64 { return c.MinimumStructureThickness / 2 }
