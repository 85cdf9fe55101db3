package raster

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/blend"
	"github.com/fogleman/gg"

	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// blendFn composites fg over bg with a separable blend formula.
type blendFn func(bg, fg image.Image) *image.RGBA

// blendFunc returns the compositor for a blend mode, or nil for normal
// source-over drawing. The non-separable modes (hue, saturation, color,
// luminosity) have no separable formula and degrade to normal.
func blendFunc(mode slide.BlendMode) blendFn {
	switch mode {
	case slide.BlendMultiply:
		return blend.Multiply
	case slide.BlendScreen:
		return blend.Screen
	case slide.BlendOverlay:
		return blend.Overlay
	case slide.BlendDarken:
		return blend.Darken
	case slide.BlendLighten:
		return blend.Lighten
	case slide.BlendDifference:
		return blend.Difference
	case slide.BlendExclusion:
		return blend.Exclusion
	default:
		return nil
	}
}

// composite draws a primitive on a scratch layer and blends it over the
// current bitmap with the active blend mode and opacity.
func (s *Surface) composite(fn blendFn, paint func(dc *gg.Context)) {
	scratch := image.NewRGBA(s.im.Bounds())
	dc := gg.NewContextForRGBA(scratch)
	s.replay(dc)
	paint(dc)

	out := fn(s.im, scratch)
	if s.cur.opacity < 1 {
		out = blend.Opacity(s.im, out, s.cur.opacity)
	}
	draw.Draw(s.im, s.im.Bounds(), out, image.Point{}, draw.Src)
}
