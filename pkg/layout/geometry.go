// Package layout implements the pure geometry and text layout math shared
// by every renderer backend.
//
// Both backends consume the same slide document through these functions,
// so layout decisions (rect placement, image scaling, line breaks, block
// positioning) are identical by construction; backends differ only in how
// the final primitives are drawn. Nothing here performs I/O or touches a
// drawing surface.
package layout

import (
	"math"

	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// Rect is an absolute pixel rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the rect's center point.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Resolve maps a relative box (fractions of the canvas) to an absolute
// pixel rect. Degenerate sizes produce zero-area rects, never faults.
func Resolve(x, y, w, h float64, canvas slide.CanvasSize) Rect {
	cw, ch := float64(canvas.Width), float64(canvas.Height)
	return Rect{
		X: x * cw,
		Y: y * ch,
		W: math.Max(0, w*cw),
		H: math.Max(0, h*ch),
	}
}

// ResolveLayer computes the absolute rect a background layer occupies.
// Image layers use X/Y as pan anchors inside the box (see PlaceImage), so
// their box is anchored at the canvas origin; color and gradient layers
// use X/Y as the rect position.
func ResolveLayer(l *slide.BackgroundLayer, canvas slide.CanvasSize) Rect {
	if l.Type == slide.LayerImage {
		return Resolve(0, 0, l.Width, l.Height, canvas)
	}
	return Resolve(l.X, l.Y, l.Width, l.Height, canvas)
}

// ResolveTextBox computes the absolute rect of a text box.
func ResolveTextBox(b *slide.TextBox, canvas slide.CanvasSize) Rect {
	return Resolve(b.X, b.Y, b.Width, b.Height, canvas)
}

// PlaceImage computes where a bitmap of imgW x imgH native pixels lands
// inside box under the given fit mode.
//
// Scaling per mode:
//   - cover: scale so the image covers the whole box, cropping overflow
//   - contain: scale so the image fits fully inside, possibly underfilling
//   - fill: stretch each axis independently, ignoring aspect ratio
//   - fit-width / fit-height: match exactly one axis, the other runs free
//
// anchorX/anchorY are anchor fractions, not translation deltas: the scaled
// image is offset by (boxW - scaledW) * anchorX (likewise Y), so 0 pins the
// leading edge, 0.5 centers, 1 pins the trailing edge, and out-of-range
// values pan beyond the edges for pan/zoom effects. zoom multiplies the
// scale before positioning; zoom <= 0 means 1.
//
// Degenerate inputs (zero-size image or box) yield a zero-area rect.
func PlaceImage(imgW, imgH int, box Rect, fit slide.FitMode, anchorX, anchorY, zoom float64) Rect {
	if imgW <= 0 || imgH <= 0 || box.Empty() {
		return Rect{X: box.X, Y: box.Y}
	}
	if zoom <= 0 {
		zoom = 1
	}

	iw, ih := float64(imgW), float64(imgH)
	scaleX := box.W / iw
	scaleY := box.H / ih

	var sw, sh float64
	switch fit {
	case slide.FitCover:
		s := math.Max(scaleX, scaleY) * zoom
		sw, sh = iw*s, ih*s
	case slide.FitContain:
		s := math.Min(scaleX, scaleY) * zoom
		sw, sh = iw*s, ih*s
	case slide.FitFill:
		sw, sh = box.W*zoom, box.H*zoom
	case slide.FitWidth:
		sw, sh = box.W*zoom, ih*scaleX*zoom
	case slide.FitHeight:
		sw, sh = iw*scaleY*zoom, box.H*zoom
	default:
		s := math.Max(scaleX, scaleY) * zoom
		sw, sh = iw*s, ih*s
	}

	return Rect{
		X: box.X + (box.W-sw)*anchorX,
		Y: box.Y + (box.H-sh)*anchorY,
		W: sw,
		H: sh,
	}
}

// ApplyViewport maps a rect through the preview view transform: zoom about
// the canvas origin, then offset. Exported pixels are unaffected unless the
// caller explicitly requests a viewport-relative render.
func ApplyViewport(r Rect, vp slide.Viewport) Rect {
	zoom := vp.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return Rect{
		X: r.X*zoom + vp.OffsetX,
		Y: r.Y*zoom + vp.OffsetY,
		W: r.W * zoom,
		H: r.H * zoom,
	}
}
