package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/KudcraftsHQ/slidekit/pkg/cache"
	"github.com/KudcraftsHQ/slidekit/pkg/observability"
	"github.com/KudcraftsHQ/slidekit/pkg/render"
	"github.com/KudcraftsHQ/slidekit/pkg/render/raster"
	svgbackend "github.com/KudcraftsHQ/slidekit/pkg/render/svg"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// Runner executes render requests with caching.
//
// The Runner is stateless except for the cache, the engine's asset
// caches, and the logger - it doesn't store render results. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Engine *render.Engine
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache, keyer, and engine.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// If engine is nil, an engine with default caches is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, engine *render.Engine, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if engine == nil {
		engine = render.NewEngine(render.Options{Logger: logger})
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Engine: engine,
		Logger: logger,
	}
}

// Render runs the complete validate → render → encode flow with caching.
func (r *Runner) Render(ctx context.Context, sl *slide.Slide, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := sl.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	start := time.Now()
	w, h := opts.TargetSize(sl.Canvas)
	result := &Result{
		ID:        uuid.NewString(),
		SlideHash: sl.Hash(),
		Format:    opts.Format,
		Width:     w,
		Height:    h,
	}
	key := r.Keyer.RenderKey(result.SlideHash, opts.renderKeyOpts(w, h))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			result.Data = data
			result.CacheInfo.RenderHit = true
			result.Stats.TotalTime = time.Since(start)
			logger.Debug("render cache hit", "hash", result.SlideHash[:12], "format", opts.Format)
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	renderStart := time.Now()
	data, warnings, err := r.renderEncode(ctx, sl, w, h, opts)
	if err != nil {
		return nil, err
	}
	result.Data = data
	result.Warnings = warnings
	result.Stats.RenderTime = time.Since(renderStart)

	if err := r.Cache.Set(ctx, key, data, cache.TTLRender); err != nil {
		logger.Warn("render cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}

	result.Stats.TotalTime = time.Since(start)
	logger.Info("rendered slide",
		"hash", result.SlideHash[:12],
		"format", opts.Format,
		"size", len(data),
		"duration", result.Stats.RenderTime)
	return result, nil
}

// renderEncode draws the slide on the backend the format demands and
// encodes the output.
func (r *Runner) renderEncode(ctx context.Context, sl *slide.Slide, w, h int, opts Options) ([]byte, []string, error) {
	renderOpts := render.RenderOptions{ApplyViewport: opts.ApplyViewport}

	if opts.Format == FormatSVG {
		surface := svgbackend.New(w, h)
		rep, err := r.Engine.Render(ctx, surface, sl, renderOpts)
		if err != nil {
			return nil, nil, err
		}
		return surface.Bytes(), rep.Warnings, nil
	}

	surface := raster.New(w, h, r.Engine.Faces())
	rep, err := r.Engine.Render(ctx, surface, sl, renderOpts)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := raster.Encode(&buf, surface.Image(), opts.Format, opts.JPEGQuality); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), rep.Warnings, nil
}

// Evict drops the cached output for one slide and option set.
func (r *Runner) Evict(ctx context.Context, sl *slide.Slide, opts Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	w, h := opts.TargetSize(sl.Canvas)
	return r.Cache.Delete(ctx, r.Keyer.RenderKey(sl.Hash(), opts.renderKeyOpts(w, h)))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
