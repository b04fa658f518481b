package bank

import (
	"errors"
	"fmt"

	"github.com/filabank/filabank/internal/matter"
)

// ErrInvalidConfig is wrapped by every error returned from Validate.
var ErrInvalidConfig = errors.New("invalid filament bank config")

// Validate checks the base parameters and the derived dimensions for
// geometry that cannot be built or assembled. Every violation is reported.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	positive := func(name string, v float64) {
		check(v > 0, "%s must be positive, got %g", name, v)
	}
	positive("minimum_thickness", c.MinimumThickness)
	positive("minimum_structure_thickness", c.MinimumStructureThickness)
	positive("spool.diameter", c.Spool.Diameter)
	positive("spool.width", c.Spool.Width)
	positive("wheel.diameter", c.Wheel.Diameter)
	positive("wheel.thickness", c.Wheel.Thickness)
	positive("wheel.lip_height", c.Wheel.LipHeight)
	positive("wheel.lip_thickness", c.Wheel.LipThickness)
	positive("wheel.rim_thickness", c.Wheel.RimThickness)
	positive("bearing.axle_diameter", c.Bearing.AxleDiameter)
	positive("bearing.roller_diameter", c.Bearing.RollerDiameter)
	positive("bearing.ring_thickness", c.Bearing.RingThickness)
	positive("frame.base_depth", c.Frame.BaseDepth)
	positive("frame.connector_length", c.Frame.ConnectorLength)
	positive("wall.thickness", c.Wall.Thickness)
	positive("wall.guidewall_thickness", c.Wall.GuidewallThickness)
	positive("wall.tube_diameter", c.Wall.TubeDiameter)
	positive("twist_snap.diameter", c.TwistSnap.Diameter)
	positive("twist_snap.height", c.TwistSnap.Height)
	positive("twist_snap.lug_depth", c.TwistSnap.LugDepth)
	positive("lock_pin.diameter", c.LockPin.Diameter)
	check(c.Tolerance >= 0, "tolerance must not be negative, got %g", c.Tolerance)
	check(c.OutputDir != "", "output_dir must not be empty")
	if _, err := matter.Lookup(c.Material); err != nil {
		errs = append(errs, err)
	}
	check(c.FilamentCount >= 1, "filament_count must be at least 1, got %d", c.FilamentCount)
	check(c.Render.Resolution >= 2, "render.resolution must be at least 2, got %d", c.Render.Resolution)
	check(c.Spool.CradleAngle > 0 && c.Spool.CradleAngle < 180,
		"spool.cradle_angle must be within (0, 180), got %g", c.Spool.CradleAngle)
	if len(errs) > 0 {
		// Derived checks are meaningless with broken base parameters.
		return c.joined(errs)
	}

	check(c.Wheel.SpokeCount == 0 || c.Wheel.SpokeCount >= 3,
		"wheel.spoke_count must be 0 or at least 3, got %d", c.Wheel.SpokeCount)
	check(c.BearingRollerCount() >= 3, "bearing needs at least 3 rollers, got %d", c.BearingRollerCount())
	check(c.WheelRimInnerRadius()-c.WheelHubRadius() >= c.MinimumThickness,
		"wheel web %.3g mm between hub and rim is thinner than minimum_thickness %g",
		c.WheelRimInnerRadius()-c.WheelHubRadius(), c.MinimumThickness)
	if c.Wheel.SpokeCount >= 3 {
		check(c.WheelSpokeHoleRadius() > 0, "wheel web is too narrow for %d spoke holes", c.Wheel.SpokeCount)
	}
	check(c.Wheel.LipThickness*2 < c.Wheel.Thickness,
		"wheel.lip_thickness %g leaves no tread on a %g mm wheel", c.Wheel.LipThickness, c.Wheel.Thickness)
	check(c.WheelWebThickness() <= c.Wheel.Thickness,
		"wheel web %g mm is thicker than the wheel %g mm", c.WheelWebThickness(), c.Wheel.Thickness)
	check(c.BearingGrooveDepth() < c.Bearing.RingThickness,
		"bearing groove depth %g cuts through ring_thickness %g", c.BearingGrooveDepth(), c.Bearing.RingThickness)
	check(c.BearingRidgeHeight() > 0, "tolerance %g leaves no roller ridge", c.Tolerance)
	check(c.WheelSeparation() > 2*c.WheelLipRadius()+c.Tolerance,
		"wheels collide: separation %.4g mm, need more than %.4g mm",
		c.WheelSeparation(), 2*c.WheelLipRadius()+c.Tolerance)
	check(c.LockPin.Diameter+2*c.MinimumThickness <= c.Frame.BaseDepth,
		"lock pin diameter %g does not fit frame.base_depth %g", c.LockPin.Diameter, c.Frame.BaseDepth)
	check(c.AxleRadius() > 0, "bearing.axle_diameter %g is too small for tolerance %g",
		c.Bearing.AxleDiameter, c.Tolerance)
	check(c.TwistSnap.LugCount >= 1, "twist_snap.lug_count must be at least 1, got %d", c.TwistSnap.LugCount)
	check(c.TwistSnap.LugDepth < c.TwistSnapPostRadius(),
		"twist-snap lug depth %g is not smaller than the post radius %g", c.TwistSnap.LugDepth, c.TwistSnapPostRadius())
	check(c.TwistSnap.TwistDegrees > 0, "twist_snap.twist_degrees must be positive, got %g", c.TwistSnap.TwistDegrees)
	if c.TwistSnap.LugCount >= 1 {
		check(c.TwistSnapLugAngle() > 0, "twist of %g degrees leaves no room for %d lugs",
			c.TwistSnap.TwistDegrees, c.TwistSnap.LugCount)
	}
	check(c.TwistSnapSocketDepth() < c.FrameHeight(),
		"twist-snap socket %g mm deep does not fit frame height %g mm", c.TwistSnapSocketDepth(), c.FrameHeight())
	check(c.SidewallHeight() > c.SidewallFootHeight()+c.CornerRadius(),
		"sidewall height %.4g mm is too short", c.SidewallHeight())
	check(c.TubeChannelRadius()+c.MinimumStructureThickness < c.SidewallHeight(),
		"tube channel does not fit the guidewall")
	if len(errs) == 0 {
		return nil
	}
	return c.joined(errs)
}

func (c *Config) joined(errs []error) error {
	return fmt.Errorf("%w %q: %w", ErrInvalidConfig, c.Name, errors.Join(errs...))
}
