package parts

import (
	"math"
	"testing"

	"github.com/filabank/filabank/bank"
	"github.com/filabank/filabank/sdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func compile(t *testing.T, p interface {
	Name() string
	Compile() (sdf.SDF3, error)
}) sdf.SDF3 {
	t.Helper()
	s, err := p.Compile()
	require.NoError(t, err, p.Name())
	return s
}

func TestAllPartsCompile(t *testing.T) {
	small := bank.DefaultConfig()
	small.FilamentCount = 1
	small.Wheel.SpokeCount = 0
	small.Wall.LighteningHoles = false
	small.TwistSnap.LugCount = 3
	require.NoError(t, small.Validate())

	for _, cfg := range []*bank.Config{bank.DefaultConfig(), small} {
		seen := make(map[string]bool)
		for _, p := range All(cfg) {
			assert.False(t, seen[p.Name()], "duplicate part name %s", p.Name())
			seen[p.Name()] = true
			s := compile(t, p)
			bb := s.Bounds()
			for _, v := range []float64{bb.Min.X, bb.Min.Y, bb.Min.Z, bb.Max.X, bb.Max.Y, bb.Max.Z} {
				require.False(t, math.IsInf(v, 0) || math.IsNaN(v), "%s: bounds %v not finite", p.Name(), bb)
			}
			assert.True(t, bb.Max.X > bb.Min.X && bb.Max.Y > bb.Min.Y && bb.Max.Z > bb.Min.Z,
				"%s: empty bounds %v", p.Name(), bb)
			center := r3.Scale(0.5, r3.Add(bb.Min, bb.Max))
			assert.False(t, math.IsNaN(s.Evaluate(center)), p.Name())
		}
		assert.Len(t, seen, 10)
	}
}

func TestSelect(t *testing.T) {
	cfg := bank.DefaultConfig()
	got, err := Select(cfg, "frame", "wheel")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "wheel", got[0].Name(), "selection keeps the order of All")
	assert.Equal(t, "frame", got[1].Name())

	all, err := Select(cfg)
	require.NoError(t, err)
	assert.Len(t, all, len(Names()))

	_, err = Select(cfg, "wheel", "spaceship")
	assert.ErrorContains(t, err, "spaceship")
}

func TestCompileErrorNamesPart(t *testing.T) {
	cfg := bank.DefaultConfig()
	cfg.Wheel.Diameter = 10 // hub outside the rim
	_, err := NewWheel(cfg).Compile()
	assert.ErrorContains(t, err, "compiling wheel")
}

func inside(s sdf.SDF3, x, y, z float64) bool { return s.Evaluate(r3.Vec{X: x, Y: y, Z: z}) < 0 }

func TestWheel(t *testing.T) {
	cfg := bank.DefaultConfig()
	s := compile(t, NewWheel(cfg))
	assert.True(t, inside(s, cfg.WheelRadius()-0.5, 0, 0), "tread")
	assert.True(t, inside(s, cfg.WheelLipRadius()-0.5, 0, cfg.Wheel.Thickness/2-cfg.Wheel.LipThickness/2), "lip")
	assert.False(t, inside(s, cfg.WheelLipRadius()-0.5, 0, 0), "spool flange channel")
	assert.False(t, inside(s, cfg.WheelBoreRadius()-0.1, 0, 0), "bore")
	assert.False(t, inside(s, cfg.WheelSpokeHolePitchRadius(), 0, 0), "spoke hole")
	assert.True(t, inside(s, cfg.WheelHubRadius()-0.5, 0, 0), "hub")
	assert.InDelta(t, cfg.WheelLipRadius(), s.Bounds().Max.X, 1e-9)

	cfg.Wheel.SpokeCount = 0
	solid := compile(t, NewWheel(cfg))
	assert.True(t, inside(solid, cfg.WheelSpokeHolePitchRadius(), 0, 0), "solid web")
}

func TestBearing(t *testing.T) {
	cfg := bank.DefaultConfig()
	s := compile(t, NewBearing(cfg))
	h := cfg.BearingHeight() / 2
	pitch := cfg.BearingPitchRadius()
	assert.False(t, inside(s, 0, 0, 0), "axle bore")
	assert.True(t, inside(s, (cfg.BearingBoreRadius()+cfg.BearingInnerRingRadius())/2, 0, h*0.8), "inner ring")
	assert.True(t, inside(s, (cfg.BearingOuterRingInnerRadius()+cfg.BearingOuterRadius())/2, 0, h*0.8), "outer ring")
	assert.True(t, inside(s, pitch, 0, 0), "roller")
	assert.False(t, inside(s, cfg.BearingInnerRingRadius()+cfg.Tolerance/2, 0, h*0.8), "inner running gap")
	assert.False(t, inside(s, cfg.BearingOuterRingInnerRadius()-cfg.Tolerance/2, 0, h*0.8), "outer running gap")
	// The ridge sits deeper in the groove than the ring face.
	assert.True(t, inside(s, cfg.BearingInnerRingRadius()-cfg.BearingGrooveDepth()/2+cfg.Tolerance, 0, 0), "roller ridge")
	assert.InDelta(t, -h, s.Bounds().Min.Z, 1e-9)
	assert.InDelta(t, cfg.BearingOuterRadius(), s.Bounds().Max.X, 1e-9)
}

func TestBearingFlankClearance(t *testing.T) {
	cfg := bank.DefaultConfig()
	s := compile(t, NewBearing(cfg))
	g, tol := cfg.BearingGrooveDepth(), cfg.Tolerance
	innerApex := cfg.BearingInnerRingRadius() - g
	outerApex := cfg.BearingOuterRingInnerRadius() + g
	for _, z := range []float64{-0.75, -0.5, -0.25, 0.25, 0.5, 0.75} {
		z *= cfg.BearingRidgeHeight()
		// Midway between a groove flank and the ridge flank facing it,
		// the distance to both is half the gap across the flanks.
		x := innerApex + math.Abs(z) + tol
		assert.GreaterOrEqual(t, s.Evaluate(r3.Vec{X: x, Z: z}), tol/2, "inner flank at z=%v", z)
		x = outerApex - math.Abs(z) - tol
		assert.GreaterOrEqual(t, s.Evaluate(r3.Vec{X: x, Z: z}), tol/2, "outer flank at z=%v", z)
	}
}

func TestBracket(t *testing.T) {
	cfg := bank.DefaultConfig()
	s := compile(t, NewBracket(cfg))
	axleY, axleZ := cfg.WheelSeparation()/2, cfg.AxleHeight()
	assert.False(t, inside(s, 0, 0, cfg.BracketBaseHeight()/2), "lock pin hole")
	assert.True(t, inside(s, cfg.BracketWidth()/2-1, 0, cfg.BracketBaseHeight()/2), "tab")
	assert.True(t, inside(s, cfg.BracketInnerWidth()/2-0.5, axleY, axleZ), "axle pin")
	assert.False(t, inside(s, 0, axleY, axleZ), "gap between opposing pins")
	assert.False(t, inside(s, 0, 0, axleZ), "wheel space")
	bb := s.Bounds()
	assert.InDelta(t, 0, bb.Min.Z, 1e-9)
	assert.InDelta(t, cfg.BracketWidth(), bb.Max.X-bb.Min.X, 1e-9)
	assert.InDelta(t, cfg.BracketDepth(), bb.Max.Y-bb.Min.Y, 1e-9)
	assert.InDelta(t, cfg.BracketHeight(), bb.Max.Z, 1e-6)
}

func TestFrame(t *testing.T) {
	cfg := bank.DefaultConfig()
	s := compile(t, NewFrame(cfg))
	bb := s.Bounds()
	assert.InDelta(t, cfg.FrameLength(), bb.Max.X-bb.Min.X, 1e-9)
	assert.InDelta(t, cfg.FrameDepth(), bb.Max.Y-bb.Min.Y, 1e-9)
	assert.InDelta(t, cfg.FrameHeight(), bb.Max.Z-bb.Min.Z, 1e-9)
	for _, x := range cfg.SlotCenters() {
		assert.False(t, inside(s, x, 0, cfg.FrameFloor()+1), "pocket at %v", x)
		assert.True(t, inside(s, x, 0, cfg.FrameFloor()/2), "floor at %v", x)
		assert.False(t, inside(s, x, cfg.FrameDepth()/2-0.5, cfg.LockPinHeight()), "lock pin hole at %v", x)
	}
	for _, x := range cfg.GuideGrooveCenters() {
		assert.False(t, inside(s, x, 0, cfg.FrameHeight()-0.5), "guide groove at %v", x)
	}
	end := cfg.FrameLength() / 2
	assert.False(t, inside(s, end-0.5, 0, cfg.FrameHeight()/2), "dovetail socket")
	assert.False(t, inside(s, -end+0.5, 0, cfg.FrameHeight()/2), "dovetail socket")
	assert.False(t, inside(s, cfg.EndCapCenter(), cfg.TwistSnapOffset(), cfg.FrameHeight()-1), "twist-snap socket")
	assert.True(t, inside(s, cfg.EndCapCenter(), cfg.FrameDepth()/4, cfg.FrameHeight()-1), "end cap")
}

func TestConnectorFitsSocket(t *testing.T) {
	cfg := bank.DefaultConfig()
	key := compile(t, NewConnector(cfg))
	bb := key.Bounds()
	assert.InDelta(t, cfg.Frame.ConnectorLength-cfg.Tolerance, bb.Max.X-bb.Min.X, 1e-9)
	assert.InDelta(t, cfg.FrameHeight()-cfg.Tolerance, bb.Max.Z, 1e-9)
	// Place the key across the joint of two frames at the positive end.
	socket := dovetailSocket(cfg)
	end := cfg.FrameLength() / 2
	for x := 0.0; x < cfg.Frame.ConnectorLength/2; x += 0.25 {
		for y := -cfg.ConnectorWideWidth() / 2; y <= cfg.ConnectorWideWidth()/2; y += 0.25 {
			p := r3.Vec{X: -x, Y: y, Z: cfg.FrameHeight() / 2}
			if key.Evaluate(p) < 0 {
				q := r3.Vec{X: end - x, Y: y, Z: p.Z}
				require.Negative(t, socket.Evaluate(q), "key point %v outside socket", p)
			}
		}
	}
}

func TestLockPin(t *testing.T) {
	cfg := bank.DefaultConfig()
	s := compile(t, NewLockPin(cfg))
	bb := s.Bounds()
	assert.InDelta(t, cfg.LockPinHeadHeight()+cfg.LockPinLength(), bb.Max.Z, 1e-9)
	assert.InDelta(t, cfg.LockPinHeadRadius(), bb.Max.X, 1e-9)
	top := cfg.LockPinHeadHeight() + cfg.LockPinLength()
	assert.False(t, inside(s, 0, 0, top-0.5), "flex slot")
	assert.True(t, inside(s, 0, cfg.LockPinRadius()/2, cfg.LockPinHeadHeight()+1), "shank")
	assert.Less(t, cfg.LockPinRadius(), cfg.LockPinHoleRadius())
}

func TestTwistSnapFits(t *testing.T) {
	cfg := bank.DefaultConfig()
	post := twistSnapPost(cfg)
	cut := twistSnapSocketCut(cfg)
	twist := sdf.DtoR(cfg.TwistSnap.TwistDegrees)
	for _, angle := range []float64{0, twist / 2, twist} {
		turned := sdf.Transform3D(post, sdf.RotateZ(angle))
		bb := turned.Bounds()
		const step = 0.3
		for x := bb.Min.X; x <= bb.Max.X; x += step {
			for y := bb.Min.Y; y <= bb.Max.Y; y += step {
				for z := bb.Min.Z; z <= bb.Max.Z; z += step {
					p := r3.Vec{X: x, Y: y, Z: z}
					if turned.Evaluate(p) < 0 {
						require.Negative(t, cut.Evaluate(p), "post point %v at %.3f rad collides with socket", p, angle)
					}
				}
			}
		}
	}
	// Once turned, the socket lip sits above each lug.
	r := (cfg.TwistSnapPostRadius() + cfg.TwistSnapLugRadius()) / 2
	z := -cfg.TwistSnapSocketDepth() + cfg.TwistSnapLugHeight() + 2*cfg.Tolerance + 0.5
	for _, a := range lugAngles(cfg) {
		s, c := math.Sincos(a + twist)
		assert.Positive(t, cut.Evaluate(r3.Vec{X: r * c, Y: r * s, Z: z}), "lip over lug at %.3f rad", a)
	}
}

func TestTwistSnapParts(t *testing.T) {
	cfg := bank.DefaultConfig()
	conn := compile(t, NewTwistSnapConnector(cfg))
	assert.InDelta(t, 0, conn.Bounds().Min.Z, 1e-9)
	assert.InDelta(t, cfg.MinimumStructureThickness+cfg.TwistSnap.Height, conn.Bounds().Max.Z, 1e-9)
	sock := compile(t, NewTwistSnapSocket(cfg))
	top := cfg.TwistSnapSocketDepth() + cfg.MinimumStructureThickness
	assert.False(t, inside(sock, 0, 0, top-1), "socket bore")
	assert.True(t, inside(sock, 0, 0, cfg.MinimumStructureThickness/2), "socket floor")
}

func TestWalls(t *testing.T) {
	cfg := bank.DefaultConfig()
	side := compile(t, NewSidewall(cfg))
	bb := side.Bounds()
	assert.InDelta(t, -cfg.TwistSnap.Height, bb.Min.Z, 1e-9, "posts hang below the foot")
	assert.InDelta(t, cfg.SidewallHeight(), bb.Max.Z, 1e-6)
	assert.True(t, inside(side, 0, cfg.TwistSnapOffset(), -1), "twist-snap post")

	guide := compile(t, NewGuidewall(cfg))
	assert.False(t, inside(guide, 0, cfg.TubeChannelOffset(), cfg.TubeChannelHeight()), "tube channel")
	assert.True(t, inside(guide, 0, 0, cfg.GuideGrooveDepth()/2), "groove tab")
	assert.True(t, inside(guide, cfg.Wall.GuidewallThickness/2+cfg.MinimumThickness/2, 0, cfg.GuideGrooveDepth()+1), "shoulder")
	assert.False(t, inside(guide, cfg.Wall.GuidewallThickness/2+cfg.MinimumThickness/2, 0, cfg.GuideGrooveDepth()-1), "tab is narrower than the shoulders")
	assert.InDelta(t, cfg.GuidewallHeight(), guide.Bounds().Max.Z, 1e-6)
}
