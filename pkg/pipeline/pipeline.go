// Package pipeline runs the full document-to-bytes render flow with
// caching: validate, render onto the requested backend, encode, and
// store the encoded output keyed by the slide's content hash.
//
// Both the CLI and the preview server drive renders through a Runner so
// cache and key handling never duplicates.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/KudcraftsHQ/slidekit/pkg/cache"
	"github.com/KudcraftsHQ/slidekit/pkg/errors"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultFormat is the output format when none is requested.
	DefaultFormat = FormatPNG

	// DefaultJPEGQuality is the JPEG quality fraction when none is
	// requested.
	DefaultJPEGQuality = 0.9

	// DefaultThumbnailWidth is the pixel width of editor thumbnails.
	DefaultThumbnailWidth = 256
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
	FormatSVG:  true,
}

// FormatExt returns the file extension for a format, dot included.
func FormatExt(format string) string {
	if format == FormatJPEG {
		return ".jpg"
	}
	return "." + format
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (png, jpeg, svg)", format)
	}
	return nil
}

// =============================================================================
// Options - Render Request Configuration
// =============================================================================

// Options configures one render request. The struct serializes to JSON
// so the preview server accepts it verbatim in request bodies.
type Options struct {
	// Width and Height select the output resolution. Zero means the
	// document's canvas size; when exactly one is set, the other follows
	// the canvas aspect ratio.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	Format      string  `json:"format,omitempty"`
	JPEGQuality float64 `json:"jpeg_quality,omitempty"`

	// ApplyViewport bakes the document's preview viewport into the
	// output.
	ApplyViewport bool `json:"apply_viewport,omitempty"`

	// Refresh bypasses the render cache and overwrites the entry.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults fills in defaults and rejects invalid settings.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "negative output size %dx%d", o.Width, o.Height)
	}
	if o.JPEGQuality < 0 || o.JPEGQuality > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "jpeg quality %g out of range [0,1]", o.JPEGQuality)
	}
	if o.Format == FormatJPEG && o.JPEGQuality == 0 {
		o.JPEGQuality = DefaultJPEGQuality
	}
	o.validated = true
	return nil
}

// TargetSize resolves the output pixel size against a document canvas.
func (o *Options) TargetSize(canvas slide.CanvasSize) (int, int) {
	w, h := o.Width, o.Height
	switch {
	case w == 0 && h == 0:
		return canvas.Width, canvas.Height
	case w == 0:
		return h * canvas.Width / canvas.Height, h
	case h == 0:
		return w, w * canvas.Height / canvas.Width
	default:
		return w, h
	}
}

// renderKeyOpts builds the cache key parameters for a resolved size.
func (o *Options) renderKeyOpts(w, h int) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Width:         w,
		Height:        h,
		Format:        o.Format,
		JPEGQuality:   o.JPEGQuality,
		ApplyViewport: o.ApplyViewport,
	}
}

// =============================================================================
// Result - Render Outputs
// =============================================================================

// Result contains the output of one render request.
type Result struct {
	// ID uniquely identifies this render invocation.
	ID string

	// SlideHash is the content hash of the rendered document.
	SlideHash string

	// Data is the encoded output.
	Data []byte

	Format string
	Width  int
	Height int

	// Warnings describe non-fatal substitutions (fallback gradients).
	// Always empty on cache hits; warnings are a render-time artifact.
	Warnings []string

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks whether the output came from cache.
	CacheInfo CacheInfo
}

// Stats contains render execution statistics.
type Stats struct {
	RenderTime time.Duration
	TotalTime  time.Duration
}

// CacheInfo tracks cache participation for a render.
type CacheInfo struct {
	RenderHit bool // Whether the encoded output came from cache
}
