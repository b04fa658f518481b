// Package partomatic builds printable parts: it compiles each part's
// solid, meshes it and exports an STL file and an optional PNG preview.
package partomatic

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/filabank/filabank/bank"
	"github.com/filabank/filabank/sdf"
	"github.com/filabank/filabank/sdf/render"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoParts is returned when Build is given nothing to build.
var ErrNoParts = errors.New("no parts to build")

// Part is a printable component generated from a configuration.
type Part interface {
	// Name identifies the part and names its output files.
	Name() string
	// Compile builds the part's solid.
	Compile() (sdf.SDF3, error)
}

// Catalog returns the parts of a bank built from cfg.
type Catalog func(cfg *bank.Config) []Part

// Options control a build. Zero values fall back to the bank config.
type Options struct {
	// OutputDir receives <part>.stl and <part>.png files.
	OutputDir string
	// Resolution is the number of mesh cells along the longest axis.
	Resolution int
	// Preview enables PNG previews. Nil uses the config's setting.
	Preview *bool
	// Concurrency bounds the parts built in parallel. Zero uses GOMAXPROCS.
	Concurrency int
	// View is the preview camera. The zero value uses render.DefaultView.
	View render.View
}

// Result describes one exported part.
type Result struct {
	Part      string
	STLPath   string
	PNGPath   string // empty without preview
	Triangles int
	Size      int64 // STL file size in bytes
	Elapsed   time.Duration
}

// Partomatic builds the parts of one bank.
type Partomatic struct {
	cfg  *bank.Config
	log  *zap.Logger
	opts Options
}

// New returns a Partomatic for cfg. Unset options are taken from cfg.
func New(cfg *bank.Config, logger *zap.Logger, opts Options) *Partomatic {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = cfg.OutputDir
	}
	if opts.Resolution == 0 {
		opts.Resolution = cfg.Render.Resolution
	}
	if opts.Preview == nil {
		preview := cfg.Render.Preview
		opts.Preview = &preview
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}
	if opts.View.Width == 0 {
		opts.View = render.DefaultView
	}
	return &Partomatic{
		cfg:  cfg,
		log:  logger.With(zap.String("bank", cfg.Name)),
		opts: opts,
	}
}

// Options returns the effective build options.
func (p *Partomatic) Options() Options { return p.opts }

// Build compiles and exports parts in parallel. The first failure
// cancels the remaining parts and is returned naming the failing part.
// Results are in the order of parts.
func (p *Partomatic) Build(ctx context.Context, parts ...Part) ([]Result, error) {
	if len(parts) == 0 {
		return nil, ErrNoParts
	}
	if p.opts.Resolution < 2 {
		return nil, fmt.Errorf("resolution must be at least 2, got %d", p.opts.Resolution)
	}
	if err := os.MkdirAll(p.opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	results := make([]Result, len(parts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for i, part := range parts {
		i, part := i, part
		g.Go(func() error {
			res, err := p.build(ctx, part)
			if err != nil {
				return fmt.Errorf("part %s: %w", part.Name(), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Partomatic) build(ctx context.Context, part Part) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	start := time.Now()
	name := part.Name()
	log := p.log.With(zap.String("part", name))
	log.Debug("compiling part")
	solid, err := part.Compile()
	if err != nil {
		return Result{}, err
	}
	log.Debug("compiled part", zap.Duration("elapsed", time.Since(start)))
	if p.cfg.Render.CompensateShrink {
		solid = p.cfg.Matter().Scale(solid)
	}

	res := Result{
		Part:    name,
		STLPath: filepath.Join(p.opts.OutputDir, name+".stl"),
	}
	r := &ctxRenderer{ctx: ctx, r: render.NewOctreeRenderer(solid, p.opts.Resolution)}
	res.Triangles, err = render.CreateSTL(res.STLPath, r)
	if err != nil {
		return Result{}, err
	}
	info, err := os.Stat(res.STLPath)
	if err != nil {
		return Result{}, err
	}
	res.Size = info.Size()
	if *p.opts.Preview {
		res.PNGPath = filepath.Join(p.opts.OutputDir, name+".png")
		if err := render.STLToPNG(res.STLPath, res.PNGPath, p.opts.View); err != nil {
			return Result{}, fmt.Errorf("preview: %w", err)
		}
	}
	res.Elapsed = time.Since(start)
	log.Info("exported part",
		zap.String("stl", res.STLPath),
		zap.Int("triangles", res.Triangles),
		zap.String("size", humanize.Bytes(uint64(res.Size))),
		zap.Duration("elapsed", res.Elapsed.Round(time.Millisecond)),
	)
	return res, nil
}

// ctxRenderer stops a Renderer once its context is done.
type ctxRenderer struct {
	ctx context.Context
	r   render.Renderer
}

func (c *ctxRenderer) ReadTriangles(dst []render.Triangle3) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.ReadTriangles(dst)
}

// BuildConfigs loads, validates and builds every config file in paths.
// Each bank is written to <output dir>/<config name>, where the output
// dir is opts.OutputDir or the config's own output_dir. Every config is
// checked before the first bank is built, and two configs writing to the
// same directory are rejected.
func BuildConfigs(ctx context.Context, logger *zap.Logger, opts Options, catalog Catalog, paths ...string) ([]Result, error) {
	if len(paths) == 0 {
		return nil, errors.New("no config files given")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	type job struct {
		path string
		cfg  *bank.Config
		opts Options
	}
	jobs := make([]job, 0, len(paths))
	owner := make(map[string]string, len(paths))
	for _, path := range paths {
		cfg, err := bank.Load(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		o := opts
		base := o.OutputDir
		if base == "" {
			base = cfg.OutputDir
		}
		o.OutputDir = filepath.Clean(filepath.Join(base, cfg.Name))
		if prev, ok := owner[o.OutputDir]; ok {
			return nil, fmt.Errorf("%s and %s both write to %s: give them different names", prev, path, o.OutputDir)
		}
		owner[o.OutputDir] = path
		jobs = append(jobs, job{path: path, cfg: cfg, opts: o})
	}

	var all []Result
	for _, j := range jobs {
		logger.Info("building bank",
			zap.String("config", j.path),
			zap.String("output", j.opts.OutputDir),
			zap.Int("filaments", j.cfg.FilamentCount),
		)
		results, err := New(j.cfg, logger, j.opts).Build(ctx, catalog(j.cfg)...)
		if err != nil {
			return all, fmt.Errorf("%s: %w", j.path, err)
		}
		all = append(all, results...)
	}
	return all, nil
}
