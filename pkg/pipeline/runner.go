package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/venntower/pkg/cache"
	"github.com/matzehuels/venntower/pkg/decompose"
	"github.com/matzehuels/venntower/pkg/diagram"
	"github.com/matzehuels/venntower/pkg/errors"
	"github.com/matzehuels/venntower/pkg/observability"
	"github.com/matzehuels/venntower/pkg/recompose"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so they share the caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different descriptions, each owning its own registry.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// ArtifactTTL overrides cache.TTLArtifact when positive.
	ArtifactTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete decompose → recompose → render pipeline.
// Any stage failure abandons the run; no partial result is returned.
func (r *Runner) Execute(ctx context.Context, d *diagram.Description, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.New(errors.ErrCodeInvalidDescription, "description is nil")
	}

	result := &Result{
		Description: d,
		Hash:        DescriptionHash(d),
		Stats: Stats{
			Curves: d.NumCurves(),
			Zones:  d.NumZones(),
		},
	}

	// Stage 1: Decompose
	decompStart := time.Now()
	steps, err := r.Decompose(ctx, d, opts)
	if err != nil {
		return nil, err
	}
	result.Decomposition = steps
	result.Stats.DecomposeTime = time.Since(decompStart)
	result.Stats.Steps = len(steps)
	result.Stats.DecompositionChecksum = decompose.Checksum(steps)

	// Stage 2: Recompose
	recompStart := time.Now()
	recomp, err := r.Recompose(ctx, steps, opts)
	if err != nil {
		return nil, err
	}
	result.Recomposition = recomp
	result.Stats.RecomposeTime = time.Since(recompStart)
	result.Stats.CurvesAdded = curvesAdded(recomp)
	result.Checksum = recompose.Checksum(recomp)

	r.Logger.Info("recomposed description",
		"steps", len(recomp),
		"curves", result.Stats.CurvesAdded,
		"checksum", result.Checksum)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Decompose runs the decomposition stage.
func (r *Runner) Decompose(ctx context.Context, d *diagram.Description, opts Options) ([]decompose.Step, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.New(errors.ErrCodeInvalidDescription, "description is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnDecomposeStart(ctx, opts.Decomposition, d.NumCurves())
	start := time.Now()

	steps, err := decompose.New(opts.DecompositionStrategy(), opts.Logger).Decompose(d)
	hooks.OnDecomposeComplete(ctx, opts.Decomposition, len(steps), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("decomposed description",
		"strategy", opts.Decomposition,
		"steps", len(steps),
		"duration", time.Since(start))
	return steps, nil
}

// Recompose runs the recomposition stage over a decomposition.
func (r *Runner) Recompose(ctx context.Context, steps []decompose.Step, opts Options) ([]recompose.Step, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRecomposeStart(ctx, opts.Recomposition, len(steps))
	start := time.Now()

	recomp, err := recompose.New(opts.RecompositionStrategy(), opts.Logger).Recompose(steps)
	hooks.OnRecomposeComplete(ctx, opts.Recomposition, curvesAdded(recomp), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return recomp, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns whether
// every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if res.Hash == "" {
		res.Hash = DescriptionHash(res.Description)
	}

	runKey := r.Keyer.RunKey(res.Hash, opts.RunKeyOpts())
	cacheHooks := observability.Cache()

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(runKey, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "error", err)
			}
			if err != nil || !hit {
				cacheHooks.OnCacheMiss(ctx, "artifact")
				break
			}
			cacheHooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(res, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	ttl := cache.TTLArtifact
	if r.ArtifactTTL > 0 {
		ttl = r.ArtifactTTL
	}
	// Cache each format. A failed write only costs a future render.
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(runKey, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res *Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func curvesAdded(steps []recompose.Step) int {
	n := 0
	for _, s := range steps {
		n += len(s.Added)
	}
	return n
}
