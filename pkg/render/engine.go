package render

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/KudcraftsHQ/slidekit/pkg/errors"
	"github.com/KudcraftsHQ/slidekit/pkg/fonts"
	"github.com/KudcraftsHQ/slidekit/pkg/layout"
	"github.com/KudcraftsHQ/slidekit/pkg/observability"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// Options configures an Engine. Zero values get sensible defaults.
type Options struct {
	// Fonts resolves font assets. Defaults to a service with the
	// built-in registry and no disk cache.
	Fonts *fonts.Service

	// Faces caches parsed font faces. Defaults to a fresh cache.
	Faces *fonts.FaceCache

	// Images loads layer images. Defaults to an uncached loader.
	Images *Loader

	// Logger for render diagnostics. Defaults to a silent logger.
	Logger *log.Logger
}

// Engine renders validated slide documents onto surfaces.
//
// An Engine is safe for concurrent use; its caches (fonts, faces, images)
// are shared across renders and should live for the process lifetime.
type Engine struct {
	fonts  *fonts.Service
	faces  *fonts.FaceCache
	images *Loader
	logger *log.Logger
}

// NewEngine creates a rendering engine.
func NewEngine(opts Options) *Engine {
	if opts.Fonts == nil {
		opts.Fonts = fonts.NewService(fonts.Options{})
	}
	if opts.Faces == nil {
		opts.Faces = fonts.NewFaceCache()
	}
	if opts.Images == nil {
		opts.Images = NewLoader(nil, nil)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Engine{
		fonts:  opts.Fonts,
		faces:  opts.Faces,
		images: opts.Images,
		logger: opts.Logger,
	}
}

// Fonts returns the engine's font service, for prefetching and listing.
func (e *Engine) Fonts() *fonts.Service { return e.fonts }

// Faces returns the engine's face cache. Raster surfaces share it so
// draw faces are parsed and sized once per process.
func (e *Engine) Faces() *fonts.FaceCache { return e.faces }

// RenderOptions control a single render pass.
type RenderOptions struct {
	// ApplyViewport bakes the document's preview viewport (zoom and
	// offset) into the output. Off by default: exports show the canvas,
	// not the editor's current view of it.
	ApplyViewport bool
}

// Report collects non-fatal conditions from a render. A render that
// returns a Report succeeded; the warnings describe substitutions such as
// fallback gradients for unreachable images.
type Report struct {
	Warnings []string
	Duration time.Duration
}

// frame carries the document-to-surface coordinate mapping through one
// render pass. Relative coordinates resolve directly into the target
// size; pixel-denominated values (font sizes, paddings, offsets) scale
// by the target/document ratio, and optionally by the viewport zoom.
type frame struct {
	target slide.CanvasSize
	scale  float64
	vp     *slide.Viewport
}

func (f frame) apply(r layout.Rect) layout.Rect {
	if f.vp == nil {
		return r
	}
	return layout.ApplyViewport(r, *f.vp)
}

func (f frame) px(v float64) float64 {
	v *= f.scale
	if f.vp != nil {
		if z := f.vp.Zoom; z > 0 {
			v *= z
		}
	}
	return v
}

// Render draws the slide onto the surface.
//
// The document is validated first; an invalid document fails before any
// drawing. The surface size sets the output resolution: relative
// geometry maps onto it directly and pixel-valued styling scales by the
// surface/canvas ratio, so any backend at any resolution receives
// proportionally identical primitives.
func (e *Engine) Render(ctx context.Context, s Surface, sl *slide.Slide, opts RenderOptions) (*Report, error) {
	if err := sl.Validate(); err != nil {
		return nil, err
	}

	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "surface has no area: %dx%d", w, h)
	}

	hash := sl.Hash()
	start := time.Now()
	observability.Render().OnRenderStart(ctx, hash, w, h)

	rep := &Report{}
	err := e.render(ctx, s, sl, w, h, opts, rep)
	rep.Duration = time.Since(start)
	observability.Render().OnRenderComplete(ctx, hash, rep.Duration, err)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("rendered slide",
		"hash", hash[:12], "size", w, "duration", rep.Duration, "warnings", len(rep.Warnings))
	return rep, nil
}

func (e *Engine) render(ctx context.Context, s Surface, sl *slide.Slide, w, h int, opts RenderOptions, rep *Report) error {
	f := frame{
		target: slide.CanvasSize{Width: w, Height: h},
		scale:  float64(w) / float64(sl.Canvas.Width),
	}
	if opts.ApplyViewport && sl.Viewport != nil {
		f.vp = sl.Viewport
	}

	e.drawLayers(ctx, s, sl, f, rep)
	return e.drawTextBoxes(ctx, s, sl, f)
}
