package partomatic_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/filabank/filabank/bank"
	"github.com/filabank/filabank/partomatic"
	"github.com/filabank/filabank/parts"
	"github.com/filabank/filabank/sdf"
	"github.com/filabank/filabank/sdf/form3/must3"
	"github.com/filabank/filabank/sdf/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gonum.org/v1/gonum/spatial/r3"
)

const testResolution = 24

type sphere struct{ name string }

func (s sphere) Name() string { return s.name }

func (s sphere) Compile() (sdf.SDF3, error) { return must3.Sphere(5), nil }

type broken struct{}

func (broken) Name() string { return "broken" }

func (broken) Compile() (sdf.SDF3, error) { return nil, errors.New("bad geometry") }

// cancelling cancels its build while compiling.
type cancelling struct{ cancel context.CancelFunc }

func (cancelling) Name() string { return "cancelling" }

func (c cancelling) Compile() (sdf.SDF3, error) {
	c.cancel()
	return must3.Sphere(5), nil
}

type cube struct{}

func (cube) Name() string { return "cube" }

func (cube) Compile() (sdf.SDF3, error) { return must3.Box(r3.Vec{X: 10, Y: 10, Z: 10}, 0), nil }

func noPreview() *bool { b := false; return &b }

// maxX returns the largest X coordinate in an STL file.
func maxX(t *testing.T, path string) float64 {
	t.Helper()
	fp, err := os.Open(path)
	require.NoError(t, err)
	defer fp.Close()
	model, err := render.ReadSTL(fp)
	require.NoError(t, err)
	x := math.Inf(-1)
	for _, tri := range model {
		for _, v := range tri.V {
			x = math.Max(x, v.X)
		}
	}
	return x
}

func TestBuild(t *testing.T) {
	cfg := bank.DefaultConfig()
	dir := t.TempDir()
	p := partomatic.New(cfg, zaptest.NewLogger(t), partomatic.Options{
		OutputDir:  dir,
		Resolution: testResolution,
		Preview:    noPreview(),
	})
	results, err := p.Build(context.Background(), sphere{"a"}, sphere{"b"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for i, name := range []string{"a", "b"} {
		res := results[i]
		assert.Equal(t, name, res.Part)
		assert.Equal(t, filepath.Join(dir, name+".stl"), res.STLPath)
		assert.Empty(t, res.PNGPath)
		assert.Positive(t, res.Triangles)
		// 80 byte header, 4 byte count and 50 bytes per triangle.
		assert.EqualValues(t, 84+50*res.Triangles, res.Size)

		fp, err := os.Open(res.STLPath)
		require.NoError(t, err)
		model, err := render.ReadSTL(fp)
		fp.Close()
		require.NoError(t, err)
		assert.Len(t, model, res.Triangles)
	}
}

func TestBuildPreview(t *testing.T) {
	cfg := bank.DefaultConfig()
	view := render.DefaultView
	view.Width, view.Height = 64, 48
	preview := true
	p := partomatic.New(cfg, nil, partomatic.Options{
		OutputDir:  t.TempDir(),
		Resolution: testResolution,
		Preview:    &preview,
		View:       view,
	})
	results, err := p.Build(context.Background(), sphere{"ball"})
	require.NoError(t, err)
	require.NotEmpty(t, results[0].PNGPath)
	assert.FileExists(t, results[0].PNGPath)
}

func TestNewDefaults(t *testing.T) {
	cfg := bank.DefaultConfig()
	cfg.Render.Preview = true
	opts := partomatic.New(cfg, nil, partomatic.Options{}).Options()
	assert.Equal(t, cfg.OutputDir, opts.OutputDir)
	assert.Equal(t, cfg.Render.Resolution, opts.Resolution)
	require.NotNil(t, opts.Preview)
	assert.True(t, *opts.Preview)
	assert.Positive(t, opts.Concurrency)
	assert.Equal(t, render.DefaultView, opts.View)
}

func TestBuildErrors(t *testing.T) {
	cfg := bank.DefaultConfig()
	p := partomatic.New(cfg, nil, partomatic.Options{
		OutputDir:  t.TempDir(),
		Resolution: testResolution,
		Preview:    noPreview(),
	})
	_, err := p.Build(context.Background())
	assert.ErrorIs(t, err, partomatic.ErrNoParts)

	_, err = p.Build(context.Background(), sphere{"ok"}, broken{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "part broken")
	assert.Contains(t, err.Error(), "bad geometry")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Build(ctx, sphere{"late"})
	assert.ErrorIs(t, err, context.Canceled)

	// A build cancelled while meshing leaves no partial STL.
	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	_, err = p.Build(ctx, cancelling{cancel})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(p.Options().OutputDir, "cancelling.stl"))
}

func TestBuildCompensateShrink(t *testing.T) {
	cfg := bank.DefaultConfig()
	cfg.Material = "abs"
	build := func(compensate bool) float64 {
		cfg.Render.CompensateShrink = compensate
		p := partomatic.New(cfg, nil, partomatic.Options{
			OutputDir:  t.TempDir(),
			Resolution: 2 * testResolution,
			Preview:    noPreview(),
		})
		results, err := p.Build(context.Background(), cube{})
		require.NoError(t, err)
		return maxX(t, results[0].STLPath)
	}
	plain, scaled := build(false), build(true)
	assert.InDelta(t, 5, plain, 0.01)
	// Marching snaps crossings within 1% of a cell onto the grid.
	assert.InDelta(t, cfg.Matter().ScaleFactor(), scaled/plain, 0.002)
}

func TestBuildConfigs(t *testing.T) {
	dir := t.TempDir()
	cfg := bank.DefaultConfig()
	cfg.Name = "twin"
	cfg.FilamentCount = 2
	path := filepath.Join(dir, "twin.yaml")
	require.NoError(t, cfg.Save(path))

	out := filepath.Join(dir, "out")
	catalog := func(c *bank.Config) []partomatic.Part {
		sel, err := parts.Select(c, "lock_pin", "connector")
		require.NoError(t, err)
		return sel
	}
	results, err := partomatic.BuildConfigs(context.Background(), zaptest.NewLogger(t), partomatic.Options{
		OutputDir:  out,
		Resolution: testResolution,
		Preview:    noPreview(),
	}, catalog, path)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.FileExists(t, filepath.Join(out, "twin", "connector.stl"))
	assert.FileExists(t, filepath.Join(out, "twin", "lock_pin.stl"))

	bad := bank.DefaultConfig()
	bad.Wheel.Diameter = 10
	badPath := filepath.Join(dir, "bad.toml")
	require.NoError(t, bad.Save(badPath))
	_, err = partomatic.BuildConfigs(context.Background(), nil, partomatic.Options{OutputDir: out}, catalog, badPath)
	assert.ErrorIs(t, err, bank.ErrInvalidConfig)

	_, err = partomatic.BuildConfigs(context.Background(), nil, partomatic.Options{}, catalog)
	assert.Error(t, err)

	// A second config with the same name would overwrite the first bank.
	twin := filepath.Join(dir, "twin.toml")
	require.NoError(t, cfg.Save(twin))
	fresh := filepath.Join(dir, "fresh")
	_, err = partomatic.BuildConfigs(context.Background(), nil, partomatic.Options{OutputDir: fresh}, catalog, path, twin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), twin)
	assert.NoDirExists(t, fresh)
}
