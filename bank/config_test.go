package bank

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestDerivedCascade(t *testing.T) {
	cfg := DefaultConfig()
	const tol = 1e-9
	assert.InDelta(t, 2.2, cfg.BearingBoreRadius(), tol)
	assert.InDelta(t, 3.8, cfg.BearingInnerRingRadius(), tol)
	assert.InDelta(t, 6.0, cfg.BearingPitchRadius(), tol)
	assert.InDelta(t, 8.2, cfg.BearingOuterRingInnerRadius(), tol)
	assert.InDelta(t, 9.8, cfg.BearingOuterRadius(), tol)
	assert.Equal(t, 6, cfg.BearingRollerCount())
	assert.InDelta(t, 13.8, cfg.WheelHubRadius(), tol)
	assert.InDelta(t, 32.0, cfg.WheelRimInnerRadius(), tol)
	assert.InDelta(t, 37.0, cfg.WheelLipRadius(), tol)
	assert.Greater(t, cfg.WheelBoreRadius(), cfg.BearingOuterRadius())
	assert.Less(t, cfg.WheelBoreRadius(), cfg.WheelHubRadius())
	assert.InDelta(t, 135.0, cfg.WheelSeparation(), tol)
	assert.InDelta(t, 116.913, cfg.SpoolRise(), 1e-3)
	assert.InDelta(t, 45.2, cfg.AxleHeight(), tol)
	assert.InDelta(t, 18.4, cfg.BracketWidth(), tol)
	assert.InDelta(t, 147.0, cfg.BracketDepth(), tol)
	assert.InDelta(t, 72.8, cfg.SlotWidth(), tol)
	assert.InDelta(t, 18.4, cfg.EndCapWidth(), tol)
	assert.InDelta(t, 328.0, cfg.FrameLength(), tol)
	assert.InDelta(t, 155.4, cfg.FrameDepth(), tol)
	assert.InDelta(t, cfg.SidewallHeight()+cfg.FrameHeight(), cfg.SpoolAxisHeight(), tol)

	centers := cfg.SlotCenters()
	require.Len(t, centers, cfg.FilamentCount)
	assert.InDelta(t, 0, centers[0]+centers[len(centers)-1], tol, "slots must be symmetric")
	grooves := cfg.GuideGrooveCenters()
	require.Len(t, grooves, cfg.FilamentCount-1)
	for i, g := range grooves {
		assert.InDelta(t, (centers[i]+centers[i+1])/2, g, tol)
	}
}

func TestRollerCountOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bearing.RollerCount = 4
	assert.Equal(t, 4, cfg.BearingRollerCount())
	cfg.Bearing.RollerCount = 2
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestValidateReportsEveryViolation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FilamentCount = 0
	cfg.Material = "nylon"
	cfg.Tolerance = -1
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorContains(t, err, "filament_count")
	assert.ErrorContains(t, err, "nylon")
	assert.ErrorContains(t, err, "tolerance")
}

func TestValidateGeometry(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"wheels collide":   func(c *Config) { c.Spool.CradleAngle = 20 },
		"cradle too wide":  func(c *Config) { c.Spool.CradleAngle = 180 },
		"two spokes":       func(c *Config) { c.Wheel.SpokeCount = 2 },
		"hub over rim":     func(c *Config) { c.Wheel.Diameter = 30 },
		"lock pin too big": func(c *Config) { c.LockPin.Diameter = 7 },
		"lugs too deep":    func(c *Config) { c.TwistSnap.LugDepth = 4 },
		"twist too far":    func(c *Config) { c.TwistSnap.TwistDegrees = 180 },
		"no resolution":    func(c *Config) { c.Render.Resolution = 1 },
	} {
		cfg := DefaultConfig()
		mutate(cfg)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, name)
	}
	cfg := DefaultConfig()
	cfg.Wheel.SpokeCount = 0
	assert.NoError(t, cfg.Validate(), "solid web")
	assert.Zero(t, cfg.WheelSpokeHoleRadius())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := DefaultConfig()
	want.Name = "round-trip"
	want.FilamentCount = 6
	want.Material = "petg"
	want.Wall.LighteningHoles = false
	for _, file := range []string{"bank.yaml", "bank.yml", "bank.toml"} {
		path := filepath.Join(dir, "sub", file)
		require.NoError(t, want.Save(path))
		got, err := Load(path)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s round trip mismatch (-want +got):\n%s", file, diff)
		}
	}
}

func TestLoadPartial(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"small.yaml": "filament_count: 2\nwheel:\n  diameter: 60\n",
		"small.toml": "filament_count = 2\n[wheel]\ndiameter = 60.0\n",
	}
	for file, content := range files {
		path := filepath.Join(dir, file)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		got, err := Load(path)
		require.NoError(t, err)

		want := DefaultConfig()
		want.Name = "small"
		want.FilamentCount = 2
		want.Wheel.Diameter = 60
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s: defaults not kept (-want +got):\n%s", file, diff)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "bank.json"))
	assert.ErrorContains(t, err, "unsupported config extension")
	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("filament_count: [1, 2"), 0644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "failed to parse config")

	assert.Error(t, DefaultConfig().Save(filepath.Join(dir, "bank.ini")))
}

func TestDimensions(t *testing.T) {
	cfg := DefaultConfig()
	dims := cfg.Dimensions()
	seen := make(map[string]bool)
	for _, d := range dims {
		assert.False(t, seen[d.Name], "duplicate dimension %s", d.Name)
		seen[d.Name] = true
	}
	v, ok := dims.Lookup("frame_length")
	require.True(t, ok)
	assert.InDelta(t, cfg.FrameLength(), v, 1e-12)
	v, ok = dims.Lookup("bearing_roller_count")
	require.True(t, ok)
	assert.Equal(t, float64(cfg.BearingRollerCount()), v)
	_, ok = dims.Lookup("nonexistent")
	assert.False(t, ok)
	assert.Equal(t, "bearing_roller_count=6", Dimension{"bearing_roller_count", 6, Count}.String())
}

func TestDimensionsDegenerate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bearing.AxleDiameter = -20
	cfg.Bearing.RollerDiameter = 0
	cfg.Tolerance = 0
	cfg.MinimumThickness = 0
	cfg.TwistSnap.LugCount = 0
	require.Error(t, cfg.Validate())

	var dims Dimensions
	require.NotPanics(t, func() { dims = cfg.Dimensions() })
	assert.Zero(t, cfg.WheelBoreRadius())
	assert.Zero(t, cfg.BearingRollerCount())
	assert.Zero(t, cfg.TwistSnapLugAngle())
	for _, d := range dims {
		assert.False(t, math.IsNaN(d.Value) || math.IsInf(d.Value, 0), "%s is not finite", d.Name)
	}
}

func TestWheelBoreCompensateShrink(t *testing.T) {
	cfg := DefaultConfig()
	want := cfg.WheelBoreRadius()
	cfg.Render.CompensateShrink = true
	// Exporting scales the wheel by the shrink factor, bringing the bore
	// back to the same printed size.
	assert.InDelta(t, want, cfg.WheelBoreRadius()*cfg.Matter().ScaleFactor(), 1e-12)
	assert.Less(t, cfg.WheelBoreRadius(), want)
}
