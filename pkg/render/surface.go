// Package render draws slide documents onto pluggable surfaces.
//
// The engine walks a slide in paint order (background layers by ascending
// z-index, then text boxes) and issues primitive calls against the Surface
// interface. All geometry and line breaking comes from pkg/layout, so two
// surfaces given the same slide receive the same primitives with the same
// coordinates; backends differ only in how a primitive becomes pixels or
// markup.
package render

import (
	"image"
	"image/color"

	"github.com/KudcraftsHQ/slidekit/pkg/fonts"
	"github.com/KudcraftsHQ/slidekit/pkg/layout"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// Shadow is a drop shadow applied to subsequent text primitives.
type Shadow struct {
	OffsetX float64
	OffsetY float64
	Blur    float64
	Color   color.NRGBA
}

// TextStyle carries everything a surface needs to draw one line of text.
type TextStyle struct {
	Asset         *fonts.Asset
	Size          float64
	Color         color.NRGBA
	LetterSpacing float64
	WordSpacing   float64
}

// Surface is the draw target abstraction shared by all backends.
//
// State calls (opacity, blend mode, shadow, rotation) apply to subsequent
// primitives and are scoped by Push/Pop pairs. Text coordinates address
// the baseline of the line's left edge.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (w, h int)

	// Push saves the current draw state; Pop restores it.
	Push()
	Pop()

	// Rotate applies a clockwise rotation in degrees about (cx, cy).
	Rotate(degrees, cx, cy float64)

	// Clip restricts subsequent primitives to r until the enclosing
	// Pop.
	Clip(r layout.Rect)

	// SetOpacity scales the alpha of subsequent primitives, 0 to 1.
	SetOpacity(alpha float64)

	// SetBlendMode selects the compositing operation for subsequent
	// primitives.
	SetBlendMode(mode slide.BlendMode)

	// SetShadow arms a drop shadow for subsequent text primitives;
	// nil disarms it.
	SetShadow(s *Shadow)

	FillRect(r layout.Rect, c color.NRGBA)
	FillRoundedRect(r layout.Rect, radius float64, c color.NRGBA)
	FillGradient(r layout.Rect, g *slide.Gradient)
	DrawImage(img image.Image, r layout.Rect)

	// FillText draws glyphs with their fill color. (x, y) is the
	// baseline origin.
	FillText(text string, x, y float64, style TextStyle)

	// StrokeText draws a glyph outline of the given stroke width behind
	// the fill. (x, y) is the baseline origin.
	StrokeText(text string, x, y, width float64, c color.NRGBA, style TextStyle)
}
